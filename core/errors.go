package core

import (
	"errors"
	"fmt"
)

// Error codes of the mdlines packages.
const (
	NOERROR   int = 0
	EMISSING  int = 122 // unknown code language, no match for a query, unreadable file
	EINVALID  int = 123 // malformed input, bad configuration, line index out of range
	EINTERNAL int = 125 // failure inside a third-party component
)

var codeText = map[int]string{
	NOERROR:   "OK",
	EMISSING:  "not found",
	EINVALID:  "invalid",
	EINTERNAL: "internal error",
}

func errorText(code int) string {
	if t, ok := codeText[code]; ok {
		return t
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

// appError carries a code and a message for users on top of an
// underlying cause.
type appError struct {
	cause error
	code  int
	msg   string
}

var _ AppError = appError{}

func (e appError) Error() string {
	if e.msg == "" || e.msg == e.cause.Error() {
		return fmt.Sprintf("[%d] %v", e.code, e.cause)
	}
	return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
}

func (e appError) Unwrap() error       { return e.cause }
func (e appError) ErrorCode() int      { return e.code }
func (e appError) UserMessage() string { return e.msg }

// Is reports whether target is an application error with the same code.
// This makes errors.Is(err, core.ErrInvalid) work along a wrapped chain.
func (e appError) Is(target error) bool {
	t, ok := target.(appError)
	return ok && t.code == e.code && t.msg == errorText(t.code)
}

// Sentinels for errors.Is comparisons by code.
var (
	ErrMissing  = ErrorWithCode(nil, EMISSING)
	ErrInvalid  = ErrorWithCode(nil, EINVALID)
	ErrInternal = ErrorWithCode(nil, EINTERNAL)
)

// ErrorWithCode adds an error code to err's error chain.
// A nil err will be replaced by a generic error for code.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return appError{cause: err, code: code, msg: errorText(code)}
}

// WrapError wraps err, adding an error code and a user message.
// If err is nil, an error denoting code is created.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return appError{cause: err, code: code, msg: fmt.Sprintf(format, v...)}
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return appError{
		cause: errors.New(errorText(code)),
		code:  code,
		msg:   fmt.Sprintf(format, v...),
	}
}

// Code returns the code of the first application error in err's chain,
// EINTERNAL for foreign errors and NOERROR for nil.
func Code(err error) int {
	if err == nil {
		return NOERROR
	}
	var e AppError
	if errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// Foreign errors report the text of their code. If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e AppError
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}
