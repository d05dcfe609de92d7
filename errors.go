package users

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "INVALID_CREDENTIALS"
	TextCodeUserBlocked        = "USER_BLOCKED"
	TextCodeUnauthorized       = "INVALID_AUTH_CREDENTIALS"
	TextCodeAdminRequired      = "ADMIN_REQUIRED"
	TextCodeEmailTaken         = "EMAIL_ALREADY_REGISTERED"
	TextCodeUserNotFound       = "USER_NOT_FOUND"
	TextCodeEmptyUpdate        = "EMPTY_UPDATE"
	TextCodeInvalidResumeType  = "INVALID_RESUME_TYPE"
	TextCodeSelfTarget         = "CANNOT_ACT_ON_SELF"
	TextCodeTokenExpired       = "TOKEN_EXPIRED"
	TextCodeTokenMalformed     = "TOKEN_MALFORMED"
	TextCodeEmptyPassword      = "EMPTY_PASSWORD"
	TextCodePasswordMismatch   = "PASSWORD_MISMATCH"
)

// ErrInvalidCredentials covers both unknown email and wrong password; callers
// must not be able to tell which check failed.
var ErrInvalidCredentials = goerrors.New("Invalid email or password", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeBadRequest)

// ErrUserBlocked is returned for blocked accounts at sign-in and at the
// authorization gate.
var ErrUserBlocked = goerrors.New("User is blocked", goerrors.CategoryAuthz).
	WithTextCode(TextCodeUserBlocked).
	WithCode(goerrors.CodeForbidden)

// ErrUnauthorized covers missing, invalid, and expired tokens, and tokens
// whose subject no longer exists.
var ErrUnauthorized = goerrors.New("Invalid authentication credentials", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthorized).
	WithCode(goerrors.CodeUnauthorized)

// ErrAdminRequired is returned when a non-admin reaches a moderation endpoint.
var ErrAdminRequired = goerrors.New("Not authorized as admin", goerrors.CategoryAuthz).
	WithTextCode(TextCodeAdminRequired).
	WithCode(goerrors.CodeForbidden)

// ErrEmailTaken is the duplicate-registration conflict. The original service
// surfaced it as a 400, which clients depend on.
var ErrEmailTaken = goerrors.New("Email already registered", goerrors.CategoryConflict).
	WithTextCode(TextCodeEmailTaken).
	WithCode(goerrors.CodeBadRequest)

// ErrUserNotFound is returned when a moderation target is absent.
var ErrUserNotFound = goerrors.New("User not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrEmptyUpdate rejects profile updates that carry no fields.
var ErrEmptyUpdate = goerrors.New("No fields provided for update", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyUpdate).
	WithCode(goerrors.CodeBadRequest)

// ErrInvalidResumeType rejects resume uploads that are not application/pdf.
var ErrInvalidResumeType = goerrors.New("Only PDF files are allowed", goerrors.CategoryValidation).
	WithTextCode(TextCodeInvalidResumeType).
	WithCode(goerrors.CodeBadRequest)

// ErrTokenExpired is returned for structurally valid tokens past their expiry.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures, wrong signing methods, and tokens
// missing a subject claim.
var ErrTokenMalformed = goerrors.New("invalid authentication token", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoEmptyString rejects empty plaintext passwords before hashing.
var ErrNoEmptyString = goerrors.New("password must not be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the internal bcrypt mismatch; the sign-in
// path folds it into ErrInvalidCredentials before it reaches a caller.
var ErrMismatchedHashAndPassword = goerrors.New("password does not match", goerrors.CategoryAuth).
	WithTextCode(TextCodePasswordMismatch).
	WithCode(goerrors.CodeBadRequest)

// ErrCannotActOnSelf builds the self-protection error for admin moderation:
// an admin may never block, unblock, or remove their own account.
func ErrCannotActOnSelf(action string) *goerrors.Error {
	return goerrors.New(fmt.Sprintf("Cannot %s yourself", action), goerrors.CategoryValidation).
		WithTextCode(TextCodeSelfTarget).
		WithCode(goerrors.CodeBadRequest)
}
