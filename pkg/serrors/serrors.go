// Package serrors defines the semantic error kinds surfaced by the forum
// services. Services attach a kind to the errors they return and the HTTP
// layer translates the kind into a status code; wrapped causes stay reachable
// through errors.Is and errors.As.
package serrors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind tags an error with the category the HTTP layer maps to a status code.
// Only values created by NewKind implement it.
type Kind interface {
	error
	isKind()
}

type kind string

func (k kind) Error() string { return string(k) }
func (k kind) isKind()       {}

// NewKind returns a comparable kind sentinel named name.
func NewKind(name string) Kind { return kind(name) }

var (
	// ErrNotFound: no user, community, post or comment has the given id.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized: missing, malformed or expired access token.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden: the caller does not own the post or comment being changed.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrBadRequest: input rejected by validation.
	ErrBadRequest = NewKind("BAD_REQUEST")
	// ErrConflict: a taken username or community name, or a community still
	// referenced by posts.
	ErrConflict = NewKind("CONFLICT")
	// ErrInternal is assumed for errors that carry no kind.
	ErrInternal = NewKind("INTERNAL")
)

// Error pairs a kind with a client-facing message and an optional cause.
// errors.Is and errors.As see both the kind and the cause.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With returns an error of kind k with a formatted message and no cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap returns an error of kind k wrapping err with a formatted message.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	return &Error{kind: k, err: err, msg: fmt.Sprintf(msgFmt, args...)}
}

// KindOnly returns an error that carries just k.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error renders "msg: cause", falling back to whichever part is present and
// finally to the kind name.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	parts := make([]string, 0, 2)
	if e.msg != "" {
		parts = append(parts, e.msg)
	}
	if e.err != nil {
		parts = append(parts, e.err.Error())
	}
	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	if e.kind != nil {
		return e.kind.Error()
	}

	return "unknown error"
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the kind or matches the cause chain.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}

	return (e.kind != nil && errors.Is(e.kind, target)) ||
		(e.err != nil && errors.Is(e.err, target))
}

// As assigns the kind or a matching error from the cause chain to target.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}

	return (e.kind != nil && errors.As(e.kind, target)) ||
		(e.err != nil && errors.As(e.err, target))
}

func (e *Error) Kind() Kind      { return e.kind }
func (e *Error) Message() string { return e.msg }
func (e *Error) Cause() error    { return e.err }

// KindOf returns the first kind in err's chain, or ErrInternal when there is
// none. A bare kind sentinel is its own kind.
func KindOf(err error) Kind {
	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return ErrInternal
}

// MessageOf returns the message of the outermost *Error in err's chain.
func MessageOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Message()
	}

	return ""
}
