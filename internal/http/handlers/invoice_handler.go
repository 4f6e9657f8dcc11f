package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petspa/internal/api"
	"petspa/internal/checkout"
	applog "petspa/internal/log"
	"petspa/internal/validate"
)

type InvoiceHandler struct {
	API *api.Client
	G   *guard
}

func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	invoices, err := h.API.Invoices(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "invoices.list.fail", err, nil)
		return render(c, "invoices", fiber.Map{"Invoices": nil, "Alert": err.Error()})
	}
	return render(c, "invoices", fiber.Map{"Invoices": invoices})
}

func (h *InvoiceHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Invoice not found"})
	}
	inv, err := h.API.Invoice(c.UserContext(), currentToken(c), id)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Invoice not found"})
	}
	return render(c, "invoice", fiber.Map{"Invoice": inv})
}

// PDF streams the server-rendered document; when the endpoint is missing the
// browser is sent to the local printable receipt instead.
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Invoice not found"})
	}
	data, err := h.API.InvoicePDF(c.UserContext(), currentToken(c), id)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		if api.IsNotFound(err) {
			applog.Info(c, "invoices.pdf.fallback", map[string]any{"invoice": id})
			return c.Redirect("/invoices/" + id + "/receipt")
		}
		applog.Error(c, "invoices.pdf.fail", err, map[string]any{"invoice": id})
		return redirectErr(c, "/invoices", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice-`+id+`.pdf"`)
	return c.Send(data)
}

// Receipt serves the self-contained printable document; the page invokes the
// browser print dialog itself. Convenience copy only, never authoritative.
func (h *InvoiceHandler) Receipt(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Invoice not found"})
	}
	inv, err := h.API.Invoice(c.UserContext(), currentToken(c), id)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Invoice not found"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return checkout.WriteReceipt(c.Response().BodyWriter(), inv)
}
