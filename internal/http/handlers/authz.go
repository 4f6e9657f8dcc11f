package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"petspa/internal/api"
	"petspa/internal/checkout"
	"petspa/internal/domain"
	applog "petspa/internal/log"
	"petspa/internal/session"
	"petspa/internal/store"
)

// guard bundles everything a handler needs to resolve and tear down sessions.
type guard struct {
	Auth  *session.Manager
	Carts *store.Stores
	Flows *checkout.Flows
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

// Attach resolves the sid cookie to a stored session and exposes it to
// downstream handlers and templates.
func Attach(auth *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if token, sess, ok := auth.Current(sid); ok {
				c.Locals("session", sess)
				c.Locals("token", token)
			}
		}
		return c.Next()
	}
}

func RequireUser(auth *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok, _ := c.Locals("token").(string); tok == "" {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

func RequireAdmin(auth *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := currentSession(c)
		if !ok || !sess.IsAdmin() {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		return c.Next()
	}
}

func currentToken(c *fiber.Ctx) string {
	tok, _ := c.Locals("token").(string)
	return tok
}

func currentSession(c *fiber.Ctx) (domain.Session, bool) {
	sess, ok := c.Locals("session").(domain.Session)
	return sess, ok
}

// expired401 tears down the local session after any 401 and sends the browser
// to the login page, unless it is already on the login or register routes.
func (g *guard) expired401(c *fiber.Ctx, err error) (bool, error) {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false, nil
	}
	sid := c.Cookies("sid")
	if sid != "" {
		g.Auth.Invalidate(sid)
		g.Carts.Drop(sid)
		g.Flows.Drop(sid)
	}
	applog.Security(c, "auth.expired", nil)
	if p := c.Path(); p == "/login" || p == "/register" {
		return true, render(c, "login", fiber.Map{"Err": "Your session has expired. Please log in again."})
	}
	return true, c.Redirect("/login")
}
