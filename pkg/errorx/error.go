package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string

	// Field is the name of the request field which failed the validation.
	Field string

	cause error
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func NewInvalidField(field, format string, a ...any) Error {
	return Error{Code: BadRequest, Message: fmt.Sprintf(format, a...), Field: field}
}

// Wrap returns an internal error carrying cause. Clients only see the generic
// message of Unknown and the type name of cause.
func Wrap(cause error) Error {
	if cause == nil {
		return Unknown
	}

	e := Unknown
	e.cause = cause
	return e
}

func (e Error) Error() string {
	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

// CauseType returns the Go type name of the wrapped cause, or of e itself if
// nothing is wrapped.
func (e Error) CauseType() string {
	if e.cause == nil {
		return fmt.Sprintf("%T", e)
	}

	return fmt.Sprintf("%T", e.cause)
}
