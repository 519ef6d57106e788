package statebind

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprValidatorOption configures an expr validator instance.
type ExprValidatorOption func(*exprValidator)

// ExprWithFunctionRegistry wires a FunctionRegistry into the expr validator.
func ExprWithFunctionRegistry(registry *FunctionRegistry) ExprValidatorOption {
	return func(v *exprValidator) {
		if registry == nil {
			return
		}
		v.registry = registry.Clone()
	}
}

// exprValidator evaluates acceptance expressions using
// github.com/expr-lang/expr. The candidate value is bound to "value".
type exprValidator struct {
	expression string
	program    *exprvm.Program
	registry   *FunctionRegistry
}

// NewExprValidator compiles expression into a Validator backed by
// expr-lang/expr. The expression sees the candidate as "value" and must
// evaluate to a boolean.
func NewExprValidator(expression string, opts ...ExprValidatorOption) (Validator, error) {
	if expression == "" {
		return nil, wrapValidationError("expr", expression, fmt.Errorf("expression must not be empty"))
	}
	v := &exprValidator{expression: expression}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}

	options := []exprlang.Option{
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	}
	for _, name := range v.registryNames() {
		options = append(options, exprlang.Function(name, v.registryFunction(name)))
	}
	program, err := exprlang.Compile(expression, options...)
	if err != nil {
		return nil, wrapValidationError("expr", expression, err)
	}
	v.program = program
	return v, nil
}

// Validate implements Validator.
func (v *exprValidator) Validate(value any) error {
	result, err := exprlang.Run(v.program, v.environment(value))
	if err != nil {
		return wrapValidationError("expr", v.expression, err)
	}
	verdict, err := resultToVerdict(result)
	if err != nil {
		return wrapValidationError("expr", v.expression, err)
	}
	if !verdict {
		return wrapValidationError("expr", v.expression, errRejected)
	}
	return nil
}

func (v *exprValidator) environment(value any) map[string]any {
	env := map[string]any{
		"value": value,
	}
	if v.registry != nil {
		env["call"] = func(name string, arguments ...any) (any, error) {
			return v.registry.Call(name, arguments...)
		}
		for _, name := range v.registry.Names() {
			fn := name
			env[fn] = func(arguments ...any) (any, error) {
				return v.registry.Call(fn, arguments...)
			}
		}
	}
	return env
}

func (v *exprValidator) registryNames() []string {
	if v == nil || v.registry == nil {
		return nil
	}
	return v.registry.Names()
}

func (v *exprValidator) registryFunction(name string) func(...any) (any, error) {
	if v == nil || v.registry == nil {
		return nil
	}
	return func(arguments ...any) (any, error) {
		return v.registry.Call(name, arguments...)
	}
}
