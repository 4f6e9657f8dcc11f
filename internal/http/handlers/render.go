package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"petspa/internal/domain"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if sess, ok := c.Locals("session").(domain.Session); ok {
		data["User"] = sess
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	} else if cookTok := c.Cookies("csrf_"); cookTok != "" {
		data["CSRFToken"] = cookTok
	}
	// Transient notices travel via query params across redirects.
	if msg := c.Query("msg"); msg != "" {
		data["Notice"] = msg
	}
	if e := c.Query("err"); e != "" {
		data["Alert"] = e
	}
	return c.Render(tmpl, data)
}

// redirectMsg/redirectErr carry a one-shot notification through a redirect.
func redirectMsg(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path + "?msg=" + url.QueryEscape(msg))
}

func redirectErr(c *fiber.Ctx, path string, err error) error {
	return c.Redirect(path + "?err=" + url.QueryEscape(err.Error()))
}
