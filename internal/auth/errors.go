package auth

import (
	"github.com/cycle-nutrition/server/internal/schemas"
)

// Kind classifies an engine failure. The HTTP layer maps kinds to status
// codes; the engine itself never touches HTTP.
type Kind string

const (
	// KindValidation marks user-correctable input problems (bad email or
	// password format). Messages are specific to help correction.
	KindValidation Kind = "validation"
	// KindConflict marks a registration against an existing account.
	KindConflict Kind = "conflict"
	// KindAuthentication marks credential failures, unverified accounts and
	// expired sessions. Messages stay generic to avoid account enumeration.
	KindAuthentication Kind = "authentication"
	// KindToken marks malformed, expired or wrong-purpose tokens.
	KindToken Kind = "token"
	// KindDependency marks store or mail-gateway failures.
	KindDependency Kind = "dependency"
)

// Error is the failure value every engine operation returns. Public is safe
// to serialize to the client; cause carries the underlying error for logs.
type Error struct {
	Kind   Kind
	Public *schemas.CustomError
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Kind) + ": " + e.cause.Error()
	}
	return string(e.Kind) + ": " + e.Public.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func validationError(public *schemas.CustomError, cause error) *Error {
	return &Error{Kind: KindValidation, Public: public, cause: cause}
}

func conflictError(public *schemas.CustomError, cause error) *Error {
	return &Error{Kind: KindConflict, Public: public, cause: cause}
}

func authenticationError(public *schemas.CustomError, cause error) *Error {
	return &Error{Kind: KindAuthentication, Public: public, cause: cause}
}

func tokenError(public *schemas.CustomError, cause error) *Error {
	return &Error{Kind: KindToken, Public: public, cause: cause}
}

// dependencyError wraps any unexpected collaborator failure. The public
// message is always the generic one; the original error only reaches the
// audit log.
func dependencyError(cause error) *Error {
	return &Error{Kind: KindDependency, Public: schemas.InternalServerError, cause: cause}
}
