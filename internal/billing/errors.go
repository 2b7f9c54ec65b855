package billing

import "fmt"

// ValidationError reports a bad input value. It always names the offending
// field so the route layer can return a precise 400 body. Computation errors
// are deterministic and are never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalidf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Invalid builds a ValidationError for callers outside this package that
// validate request fields before reaching the billing math.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
