package statebind

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELValidatorOption configures the CEL validator.
type CELValidatorOption func(*celValidator)

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL validator.
// Registered functions are reachable through call(name, arg).
func CELWithFunctionRegistry(registry *FunctionRegistry) CELValidatorOption {
	return func(v *celValidator) {
		if registry == nil {
			return
		}
		v.registry = registry.Clone()
	}
}

// celValidator evaluates acceptance expressions using cel-go. The candidate
// value is bound to "value".
type celValidator struct {
	expression string
	program    celgo.Program
	registry   *FunctionRegistry
}

// NewCELValidator compiles expression into a Validator backed by cel-go. The
// expression sees the candidate as "value" and must evaluate to a boolean.
func NewCELValidator(expression string, opts ...CELValidatorOption) (Validator, error) {
	if expression == "" {
		return nil, wrapValidationError("cel", expression, fmt.Errorf("expression must not be empty"))
	}
	v := &celValidator{expression: expression}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}

	env, err := v.buildEnv()
	if err != nil {
		return nil, wrapValidationError("cel", expression, err)
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, wrapValidationError("cel", expression, issues.Err())
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, wrapValidationError("cel", expression, issues.Err())
	}
	program, err := env.Program(checked)
	if err != nil {
		return nil, wrapValidationError("cel", expression, err)
	}
	v.program = program
	return v, nil
}

// Validate implements Validator.
func (v *celValidator) Validate(value any) error {
	out, _, err := v.program.Eval(map[string]any{"value": value})
	if err != nil {
		return wrapValidationError("cel", v.expression, err)
	}
	verdict, err := resultToVerdict(out.Value())
	if err != nil {
		return wrapValidationError("cel", v.expression, err)
	}
	if !verdict {
		return wrapValidationError("cel", v.expression, errRejected)
	}
	return nil
}

func (v *celValidator) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("value", celgo.DynType),
	}
	if v.registry != nil {
		opts = append(opts, celgo.Function("call",
			celgo.Overload("call_string_dyn",
				[]*celgo.Type{celgo.StringType, celgo.DynType},
				celgo.DynType,
				celgo.BinaryBinding(v.callBinding()),
			),
		))
	}
	return celgo.NewEnv(opts...)
}

func (v *celValidator) callBinding() func(ref.Val, ref.Val) ref.Val {
	return func(name ref.Val, arg ref.Val) ref.Val {
		if v.registry == nil {
			return types.NewErr("statebind: function registry not configured")
		}
		fnName, ok := name.Value().(string)
		if !ok {
			return types.NewErr("statebind: call name must be string")
		}
		result, err := v.registry.Call(fnName, arg.Value())
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
