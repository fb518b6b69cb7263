package zerror

import (
	"errors"
	"fmt"
)

// ZError is a classified error: a Status for the kind of failure, a stable
// machine code and a human message, optionally wrapping the cause.
type ZError struct {
	parent error
	status Status
	code   string
	msg    string
}

// NewZError initializes a ZError instance.
//
// code example: PRODUCT_NOT_FOUND
func NewZError(parent error, status Status, code, msg string) ZError {
	return ZError{
		parent: parent,
		status: status,
		code:   code,
		msg:    msg,
	}
}

func (e ZError) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("Code=%s, Msg=%s, Parent=(%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("Code=%s, Msg=%s", e.code, e.msg)
}

// WrapParent attaches an underlying error to a copy of a predefined ZError.
func (e ZError) WrapParent(parent error) ZError {
	if parent == nil {
		return e
	}
	e.parent = parent
	return e
}

// WithMsg returns a copy of e carrying a more specific message.
func (e ZError) WithMsg(msg string) ZError {
	e.msg = msg
	return e
}

func (e ZError) Unwrap() error {
	return e.parent
}

// Is reports whether target is a ZError with the same code, so that
// errors.Is matches a wrapped copy against its predefined value.
func (e ZError) Is(target error) bool {
	var t ZError
	if !errors.As(target, &t) {
		return false
	}
	return t.code == e.code
}

func (e ZError) Status() Status {
	return e.status
}

func (e ZError) Code() string {
	return e.code
}

func (e ZError) Msg() string {
	return e.msg
}

func (e ZError) Parent() error {
	return e.parent
}

// StatusOf returns the status of the first ZError in err's chain, or
// StatusUnknown.
func StatusOf(err error) Status {
	var zErr ZError
	if errors.As(err, &zErr) {
		return zErr.Status()
	}
	return StatusUnknown
}

func NewNotFound(code, msg string) ZError {
	return NewZError(nil, StatusNotFound, code, msg)
}

func NewConflict(code, msg string) ZError {
	return NewZError(nil, StatusConflict, code, msg)
}

func NewValidationFailed(code, msg string) ZError {
	return NewZError(nil, StatusValidationFailed, code, msg)
}

func NewUnprocessable(code, msg string) ZError {
	return NewZError(nil, StatusUnprocessable, code, msg)
}

func NewPersistence(code, msg string) ZError {
	return NewZError(nil, StatusPersistence, code, msg)
}

func NewMalformedData(code, msg string) ZError {
	return NewZError(nil, StatusMalformedData, code, msg)
}

func NewInternal(code, msg string) ZError {
	return NewZError(nil, StatusInternal, code, msg)
}
