package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"petspa/internal/api"
	"petspa/internal/checkout"
	applog "petspa/internal/log"
	"petspa/internal/session"
	"petspa/internal/store"
	"petspa/internal/validate"
)

type AuthHandler struct {
	Auth  *session.Manager
	Carts *store.Stores
	Flows *checkout.Flows
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_email_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	sess, err := h.Auth.Login(c.UserContext(), sid, email, pass)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		if api.IsNetwork(err) {
			return c.Status(502).Render("login", fiber.Map{"Err": err.Error()})
		}
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email, "admin": sess.IsAdmin()})
	if sess.IsAdmin() {
		return c.Redirect("/admin")
	}
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	email, okEmail := validate.Email(c.FormValue("email"))
	name, okName := validate.Name(c.FormValue("name"))
	if !okEmail || !okName {
		return c.Status(400).Render("register", fiber.Map{"Err": "Please provide a valid name and email"})
	}
	if !validate.Password(c.FormValue("password")) {
		return c.Status(400).Render("register", fiber.Map{"Err": "Password must be 8-64 characters"})
	}

	req := api.RegisterRequest{
		Name:     name,
		Email:    email,
		Phone:    c.FormValue("phone"),
		Address:  c.FormValue("address"),
		Password: c.FormValue("password"),
	}
	if err := h.Auth.API.Register(c.UserContext(), req); err != nil {
		applog.Error(c, "auth.register.fail", err, map[string]any{"email": email})
		return c.Status(400).Render("register", fiber.Map{"Err": err.Error()})
	}
	applog.Audit(c, "auth.register", map[string]any{"email": email})
	return redirectMsg(c, "/login", "Registration successful! Please log in.")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	h.Carts.Drop(sid)
	h.Flows.Drop(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/")
}
