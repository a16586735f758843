package refdata

import "fmt"

const (
	CodeValidation  = "validation"
	CodeNotFound    = "not_found"
	CodeUnavailable = "unavailable"
	CodeInternal    = "internal"
)

// Error is the coded error shared by the engine and the HTTP layer.
// Unknown disease keys are NOT errors anywhere in the engine; this type
// covers malformed input, missing catalog entries on lookup endpoints,
// and reference-data load failures.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func statusForCode(code string) int {
	switch code {
	case CodeValidation:
		return 400
	case CodeNotFound:
		return 404
	case CodeUnavailable:
		return 503
	default:
		return 500
	}
}

func newError(code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Status:  statusForCode(code),
	}
}

func NewValidationError(format string, args ...any) error {
	return newError(CodeValidation, format, args...)
}

func NewNotFoundError(format string, args ...any) error {
	return newError(CodeNotFound, format, args...)
}

func NewInternalError(format string, args ...any) error {
	return newError(CodeInternal, format, args...)
}
