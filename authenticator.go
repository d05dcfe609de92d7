package users

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// Auther is the authorization gate. Every authenticated request flows through
// CurrentUser, which is what makes blocking and removal effective even though
// issued tokens are never revoked.
type Auther struct {
	store      Store
	tokens     TokenService
	logger     Logger
	sessionTTL time.Duration
	now        func() time.Time
}

// NewAuthenticator returns a new Auther backed by the given store and token
// service.
func NewAuthenticator(store Store, tokens TokenService) *Auther {
	return &Auther{
		store:      store,
		tokens:     tokens,
		logger:     defLogger{},
		sessionTTL: SessionTokenTTL,
		now:        time.Now,
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// WithSessionTTL overrides the lifetime of tokens issued at sign-in.
func (a *Auther) WithSessionTTL(ttl time.Duration) *Auther {
	if ttl > 0 {
		a.sessionTTL = ttl
	}
	return a
}

// WithClock injects a custom clock (useful for tests).
func (a *Auther) WithClock(clock func() time.Time) *Auther {
	if clock != nil {
		a.now = clock
	}
	return a
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password produce the identical error so callers cannot probe which
// check failed. Blocked accounts are rejected before any token is signed.
// On success the record's last_login is set and profile completion is
// recomputed atomically with it.
func (a *Auther) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.store.Get(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			a.logger.Warn("Login failed: unknown email", "email", email)
			return "", ErrInvalidCredentials
		}
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		a.logger.Warn("Login failed: password mismatch", "email", email)
		return "", ErrInvalidCredentials
	}

	if user.Blocked {
		a.logger.Warn("Login rejected: user is blocked", "email", email)
		return "", ErrUserBlocked
	}

	loginAt := a.now().UTC()
	if _, err := a.store.Update(ctx, email, func(u *User) error {
		u.LastLogin = &loginAt
		u.RefreshProfileCompleted()
		return nil
	}); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to track successful login")
	}

	token, err := a.tokens.Issue(email, a.sessionTTL)
	if err != nil {
		a.logger.Error("Login token issue error", "error", err)
		return "", err
	}

	a.logger.Info("User signed in", "email", email)
	return token, nil
}

// CurrentUser resolves the account a raw bearer token belongs to. Invalid or
// expired tokens, and subjects that no longer exist, fail Unauthorized; a
// blocked subject fails Forbidden. The record is always re-read, never taken
// from the token.
func (a *Auther) CurrentUser(ctx context.Context, token string) (*User, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		a.logger.Warn("CurrentUser token validation failed", "error", err)
		return nil, ErrUnauthorized
	}

	user, err := a.store.Get(ctx, claims.Subject())
	if err != nil {
		if errors.IsNotFound(err) {
			// Covers accounts removed after the token was issued.
			a.logger.Warn("CurrentUser subject no longer exists", "email", claims.Subject())
			return nil, ErrUnauthorized
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve current user")
	}

	if user.Blocked {
		// Covers accounts blocked after the token was issued.
		a.logger.Warn("CurrentUser rejected: user is blocked", "email", user.Email)
		return nil, ErrUserBlocked
	}

	return user, nil
}

// CurrentAdmin resolves the current user and requires the admin role.
func (a *Auther) CurrentAdmin(ctx context.Context, token string) (*User, error) {
	user, err := a.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := RequireAdmin(user); err != nil {
		a.logger.Warn("CurrentAdmin rejected non-admin", "email", user.Email)
		return nil, err
	}

	return user, nil
}

// RequireAdmin enforces the role gate on an already-resolved user.
func RequireAdmin(user *User) error {
	if user == nil || !user.Role.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}
