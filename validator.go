package statebind

import (
	"errors"
	"fmt"
)

// Validator checks a decoded or migrated value before the binding adopts it
// at load time. A non-nil error rejects the value in favour of the default.
type Validator interface {
	Validate(value any) error
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(value any) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(value any) error {
	if f == nil {
		return nil
	}
	return f(value)
}

// ValidationError captures validator metadata alongside the originating error.
type ValidationError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("statebind: %s validator %s: %v", e.Engine, describeExpression(e.Expr), e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapValidationError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		if valErr.Engine == "" {
			valErr.Engine = engine
		}
		if valErr.Expr == "" {
			valErr.Expr = expr
		}
		return valErr
	}

	return &ValidationError{
		Engine: engine,
		Expr:   expr,
		Err:    err,
	}
}

// errRejected is the terminal error for expressions that evaluate cleanly to
// false.
var errRejected = errors.New("value rejected")

func resultToVerdict(result any) (bool, error) {
	verdict, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("expression must yield a boolean, got %T", result)
	}
	return verdict, nil
}
