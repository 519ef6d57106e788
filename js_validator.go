//go:build js_eval

package statebind

import (
	"fmt"

	"github.com/dop251/goja"
)

// jsValidator evaluates acceptance expressions using goja. The candidate
// value is bound to "value".
type jsValidator struct {
	expression string
	program    *goja.Program
	registry   *FunctionRegistry
}

// NewJSValidator compiles expression into a Validator backed by goja. The
// expression sees the candidate as "value" and must evaluate to a boolean.
func NewJSValidator(expression string, opts ...JSValidatorOption) (Validator, error) {
	if expression == "" {
		return nil, wrapValidationError("js", expression, fmt.Errorf("expression must not be empty"))
	}
	cfg := applyJSValidatorOptions(opts)

	program, err := goja.Compile("", wrapJSExpression(expression), false)
	if err != nil {
		return nil, wrapValidationError("js", expression, err)
	}
	return &jsValidator{
		expression: expression,
		program:    program,
		registry:   cfg.registry,
	}, nil
}

func jsValidatorAvailable() bool {
	return true
}

// Validate implements Validator.
func (v *jsValidator) Validate(value any) error {
	vm := goja.New()
	v.injectContext(vm, value)
	result, err := vm.RunProgram(v.program)
	if err != nil {
		return wrapValidationError("js", v.expression, err)
	}
	verdict, err := resultToVerdict(result.Export())
	if err != nil {
		return wrapValidationError("js", v.expression, err)
	}
	if !verdict {
		return wrapValidationError("js", v.expression, errRejected)
	}
	return nil
}

func (v *jsValidator) injectContext(vm *goja.Runtime, value any) {
	vm.Set("value", value)
	if v.registry != nil {
		vm.Set("call", func(name string, arguments ...any) (any, error) {
			return v.registry.Call(name, arguments...)
		})
		for _, name := range v.registry.Names() {
			fn := name
			vm.Set(fn, func(arguments ...any) (any, error) {
				return v.registry.Call(fn, arguments...)
			})
		}
	}
}

func wrapJSExpression(expression string) string {
	return fmt.Sprintf("(function(){ return (%s); })()", expression)
}
