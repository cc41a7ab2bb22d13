package commpost

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// ECONTRACT reports a structural query that matched the wrong number of
	// elements, or a required attribute or region that is missing.
	ECONTRACT = "contract"

	// EINLINE reports an inline content shape the stringifier does not model.
	EINLINE = "inline"

	// ELOCALE reports a count that could not be parsed.
	ELOCALE = "locale"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// PostError attaches the id of the post being extracted to a failure.
type PostError struct {
	PostID string
	Err    error
}

func (e *PostError) Error() string {
	return fmt.Sprintf("post %s: %v", e.PostID, e.Err)
}

func (e *PostError) Unwrap() error {
	return e.Err
}
