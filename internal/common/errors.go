package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
)

// Kind classifies a failure so that outer layers can map it to a status
// code without parsing messages.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidCredentials
	KindPersistence
	KindCrypto
	KindInvalidToken
	KindDeliveryFailure
	KindPartialSignupFailure
	KindValidation
)

var kindNames = map[Kind]string{
	KindInternal:             "internal",
	KindNotFound:             "not_found",
	KindConflict:             "conflict",
	KindInvalidCredentials:   "invalid_credentials",
	KindPersistence:          "persistence",
	KindCrypto:               "crypto",
	KindInvalidToken:         "invalid_token",
	KindDeliveryFailure:      "delivery_failure",
	KindPartialSignupFailure: "partial_signup_failure",
	KindValidation:           "validation",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Error is the structured error returned by the service layer.
//
// Op names the flow that produced or re-wrapped the error (e.g. "auth.signup"),
// Msg is the human-readable message and Err the underlying cause, if any.
// Wrapping an *Error with Wrap keeps its Kind.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// E builds a new *Error of the given kind.
func E(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil {
		if e.Msg != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind with no message of
// its own, so that errors.Is(err, &Error{Kind: KindConflict}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Op == ""
}

// Wrap prefixes err with the flow name op. The kind of the innermost *Error
// is preserved; any other error becomes KindInternal.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Op: op, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal if err is not an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the innermost human-readable message of err.
func MessageOf(err error) string {
	msg := ""
	for err != nil {
		if e, ok := err.(*Error); ok && e.Msg != "" {
			msg = e.Msg
		}
		err = errors.Unwrap(err)
	}
	return msg
}
