//go:build !js_eval

package statebind

import "fmt"

// NewJSValidator is unavailable without the js_eval build tag.
func NewJSValidator(expression string, opts ...JSValidatorOption) (Validator, error) {
	_ = applyJSValidatorOptions(opts)
	return nil, wrapValidationError("js", expression, fmt.Errorf("requires the js_eval build tag"))
}

func jsValidatorAvailable() bool {
	return false
}
