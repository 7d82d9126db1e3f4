package jwt

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prudvireddyNS/mentor/pkg/auth"
)

const (
	localsUserID = "userId"
	localsUser   = "user"
)

// Authenticator resolves the user behind a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.User, error)
}

// Authorizer checks that a user holds a role.
type Authorizer interface {
	Authorize(user auth.User, required auth.Role) error
}

// NewAuthMiddleware returns a Fiber middleware that authenticates the Bearer token.
// On success it stores the user id (c.Locals("userId")) and the user (c.Locals("user")).
func NewAuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := bearerToken(c.Get(fiber.HeaderAuthorization))
		if tokenStr == "" {
			return unauthorized(c, auth.ErrUnauthorized.Detail)
		}
		user, err := authn.Authenticate(c.UserContext(), tokenStr)
		if err != nil {
			if auth.KindOf(err) == auth.KindUnauthorized {
				return unauthorized(c, auth.DetailOf(err))
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"detail": "Internal server error"})
		}
		c.Locals(localsUserID, user.ID.String())
		c.Locals(localsUser, user)
		return c.Next()
	}
}

// RequireRole must run after NewAuthMiddleware; it answers 403 with detail
// unless the current user has exactly the required role.
func RequireRole(authz Authorizer, role auth.Role, detail string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return unauthorized(c, auth.ErrUnauthorized.Detail)
		}
		if err := authz.Authorize(user, role); err != nil {
			msg := detail
			if msg == "" {
				msg = auth.DetailOf(err)
			}
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"detail": msg})
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by NewAuthMiddleware.
func CurrentUser(c *fiber.Ctx) (auth.User, bool) {
	user, ok := c.Locals(localsUser).(auth.User)
	return user, ok
}

// CurrentUserID returns the id of the user stored by NewAuthMiddleware.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, _ := c.Locals(localsUserID).(string)
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// bearerToken supports both "Bearer <token>" and "<token>" (no prefix).
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if parts := strings.SplitN(header, " ", 2); len(parts) == 2 {
		if strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		// Fallback: treat entire header as token (for non-standard clients)
	}
	return header
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"detail": detail})
}
