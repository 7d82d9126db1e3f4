package auth

import "errors"

// Kind classifies authentication and authorization failures.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidCredentials
	KindUnauthorized
	KindForbidden
	KindInvalidAssertion
	KindConflict
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindInvalidAssertion:
		return "invalid_assertion"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error is a classified failure with a caller-facing detail and an optional cause.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Detail + ": " + e.Err.Error()
	}
	return e.Detail
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Detail: "Incorrect email or password"}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Detail: "Could not validate credentials"}
	ErrForbidden          = &Error{Kind: KindForbidden, Detail: "Not authorized"}
	ErrInvalidAssertion   = &Error{Kind: KindInvalidAssertion, Detail: "Google authentication failed"}
	ErrEmailTaken         = &Error{Kind: KindConflict, Detail: "Email already registered"}
	ErrProvisionConflict  = &Error{Kind: KindConflict, Detail: "Account provisioning conflict, retry login"}
	ErrInvalidRole        = &Error{Kind: KindValidation, Detail: "Invalid role"}
	ErrPasswordTooLong    = &Error{Kind: KindValidation, Detail: "Password must be at most 72 bytes"}
)

// KindOf returns the kind of err, KindInternal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// DetailOf returns the caller-facing detail of err.
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return "Internal server error"
}

func withCause(base *Error, cause error) *Error {
	return &Error{Kind: base.Kind, Detail: base.Detail, Err: cause}
}
