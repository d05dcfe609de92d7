package users

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Context keys used to stash the authenticated account on the request.
const (
	ContextKeyUser  = "current_user"
	ContextKeyToken = "access_token"
)

// BearerScheme is the expected Authorization header prefix.
const BearerScheme = "Bearer"

// RouteAuthenticator wires the Auther into fiber middleware. Every protected
// route runs the full gate: extract bearer token, validate it, load the
// subject, reject blocked accounts.
type RouteAuthenticator struct {
	auth         *Auther
	Logger       Logger
	ErrorHandler func(c *fiber.Ctx, err error) error
}

func NewHTTPAuthenticator(auther *Auther) *RouteAuthenticator {
	a := &RouteAuthenticator{
		auth:   auther,
		Logger: defLogger{},
	}
	a.ErrorHandler = RespondError
	return a
}

// Protected returns middleware that requires a valid bearer token for a
// live, unblocked account.
func (a *RouteAuthenticator) Protected() fiber.Handler {
	return a.gate(func(user *User) error { return nil })
}

// AdminOnly returns middleware that additionally requires the admin role.
func (a *RouteAuthenticator) AdminOnly() fiber.Handler {
	return a.gate(RequireAdmin)
}

func (a *RouteAuthenticator) gate(check func(*User) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := BearerToken(c)
		if err != nil {
			a.Logger.Info("Missing or malformed bearer token", "path", c.Path())
			return a.ErrorHandler(c, err)
		}

		user, err := a.auth.CurrentUser(c.UserContext(), token)
		if err != nil {
			a.Logger.Info("Token rejected", "path", c.Path(), "error", err)
			return a.ErrorHandler(c, err)
		}

		if err := check(user); err != nil {
			a.Logger.Info("Access denied", "path", c.Path(), "email", user.Email, "error", err)
			return a.ErrorHandler(c, err)
		}

		c.Locals(ContextKeyUser, user)
		c.Locals(ContextKeyToken, token)
		return c.Next()
	}
}

// BearerToken extracts the token from the Authorization header. Any missing
// or malformed header yields ErrUnauthorized so callers cannot distinguish
// absent from broken credentials.
func BearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrUnauthorized
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, BearerScheme) || token == "" {
		return "", ErrUnauthorized
	}

	return strings.TrimSpace(token), nil
}

// CurrentUser returns the account the gate middleware stored on the request.
func CurrentUser(c *fiber.Ctx) *User {
	user, _ := c.Locals(ContextKeyUser).(*User)
	return user
}

// RespondError renders any error as the JSON shape clients expect:
// {"detail": message} with the rich error's status code. Validation errors
// additionally carry a field-to-message map under "errors".
func RespondError(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	body := fiber.Map{"detail": richErr.Message}
	if fields := richErr.ValidationMap(); len(fields) > 0 {
		body["errors"] = fields
	}

	return c.Status(status).JSON(body)
}
