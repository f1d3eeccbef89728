package apperror

import "errors"

// Error kinds. Every error a use case returns to a handler wraps one of these.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrConflict       = errors.New("conflict")
)

// Error carries a client-facing message for one of the kinds above.
// Details, when set, is rendered as the error payload of the response.
type Error struct {
	Kind    error
	Message string
	Details interface{}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) WithDetails(details interface{}) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Details: details}
}

func NotFound(message string) *Error {
	return New(ErrNotFound, message)
}

func Forbidden(message string) *Error {
	return New(ErrForbidden, message)
}

func Validation(message string) *Error {
	return New(ErrValidation, message)
}

func Authentication(message string) *Error {
	return New(ErrAuthentication, message)
}

func Conflict(message string) *Error {
	return New(ErrConflict, message)
}

// KindOf returns the kind err wraps, or nil for unexpected errors.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrValidation, ErrAuthentication, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Details returns the payload attached to err, if any.
func Details(err error) interface{} {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

// Message returns the client-facing text of err, falling back to the kind text.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if kind := KindOf(err); kind != nil {
		return kind.Error()
	}
	return ""
}
