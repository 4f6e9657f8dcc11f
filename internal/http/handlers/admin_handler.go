package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"petspa/internal/api"
	"petspa/internal/booking"
	"petspa/internal/domain"
	applog "petspa/internal/log"
	"petspa/internal/validate"
)

// AdminHandler backs the staff dashboard. Every page talks straight to the
// remote API; the server enforces the ADMIN role on each endpoint, the
// RequireAdmin middleware only keeps honest browsers out.
type AdminHandler struct {
	API *api.Client
	G   *guard
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

func (h *AdminHandler) Clients(c *fiber.Ctx) error {
	clients, err := h.API.Clients(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.clients.list.fail", err, nil)
		return render(c, "admin_clients", fiber.Map{"Clients": nil, "Alert": err.Error()})
	}
	return render(c, "admin_clients", fiber.Map{"Clients": clients})
}

func (h *AdminHandler) DeleteClient(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.API.DeleteClient(c.UserContext(), currentToken(c), id); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.clients.delete.fail", err, map[string]any{"client": id})
		return redirectErr(c, "/admin/clients", err)
	}
	applog.Audit(c, "admin.clients.delete", map[string]any{"client": id})
	return redirectMsg(c, "/admin/clients", "Client removed")
}

func (h *AdminHandler) Services(c *fiber.Ctx) error {
	services, err := h.API.Services(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.services.list.fail", err, nil)
		return render(c, "admin_services", fiber.Map{"Services": nil, "Alert": err.Error()})
	}
	return render(c, "admin_services", fiber.Map{"Services": services})
}

func (h *AdminHandler) serviceForm(c *fiber.Ctx) (domain.Service, bool) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return domain.Service{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	if err != nil || price < 0 {
		return domain.Service{}, false
	}
	dur, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("durationMinutes")))
	return domain.Service{
		Name:            name,
		Description:     strings.TrimSpace(c.FormValue("description")),
		Price:           price,
		DurationMinutes: dur,
		Active:          c.FormValue("active") != "",
	}, true
}

func (h *AdminHandler) CreateService(c *fiber.Ctx) error {
	svc, ok := h.serviceForm(c)
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.API.CreateService(c.UserContext(), currentToken(c), svc); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.services.create.fail", err, nil)
		return redirectErr(c, "/admin/services", err)
	}
	applog.Audit(c, "admin.services.create", map[string]any{"name": svc.Name})
	return c.Redirect("/admin/services")
}

func (h *AdminHandler) UpdateService(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	svc, okForm := h.serviceForm(c)
	if !okID || !okForm {
		return c.Status(400).SendString("invalid input")
	}
	svc.ID = id
	if err := h.API.UpdateService(c.UserContext(), currentToken(c), svc); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.services.update.fail", err, map[string]any{"service": id})
		return redirectErr(c, "/admin/services", err)
	}
	applog.Audit(c, "admin.services.update", map[string]any{"service": id})
	return c.Redirect("/admin/services")
}

func (h *AdminHandler) DeleteService(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.API.DeleteService(c.UserContext(), currentToken(c), id); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return redirectErr(c, "/admin/services", err)
	}
	applog.Audit(c, "admin.services.delete", map[string]any{"service": id})
	return c.Redirect("/admin/services")
}

func (h *AdminHandler) Products(c *fiber.Ctx) error {
	products, err := h.API.Products(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.products.list.fail", err, nil)
		return render(c, "admin_products", fiber.Map{"Products": nil, "Alert": err.Error()})
	}
	return render(c, "admin_products", fiber.Map{"Products": products})
}

func (h *AdminHandler) productForm(c *fiber.Ctx) (domain.Product, bool) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return domain.Product{}, false
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue("price")), 64)
	if err != nil || price < 0 {
		return domain.Product{}, false
	}
	stock, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("stock")))
	if stock < 0 {
		stock = 0
	}
	return domain.Product{
		Name:        name,
		Description: strings.TrimSpace(c.FormValue("description")),
		Price:       price,
		Stock:       stock,
		ImageURL:    strings.TrimSpace(c.FormValue("imageUrl")),
	}, true
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	p, ok := h.productForm(c)
	if !ok {
		return c.Status(400).SendString("invalid input")
	}
	if err := h.API.CreateProduct(c.UserContext(), currentToken(c), p); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.products.create.fail", err, nil)
		return redirectErr(c, "/admin/products", err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"name": p.Name})
	return c.Redirect("/admin/products")
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	p, okForm := h.productForm(c)
	if !okID || !okForm {
		return c.Status(400).SendString("invalid input")
	}
	p.ID = id
	if err := h.API.UpdateProduct(c.UserContext(), currentToken(c), p); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return redirectErr(c, "/admin/products", err)
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.API.DeleteProduct(c.UserContext(), currentToken(c), id); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return redirectErr(c, "/admin/products", err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product": id})
	return c.Redirect("/admin/products")
}

// Appointments shows the whole book, grouped for the calendar as well.
func (h *AdminHandler) Appointments(c *fiber.Ctx) error {
	appts, err := h.API.Appointments(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.appointments.list.fail", err, nil)
		return render(c, "admin_appointments", fiber.Map{"Appointments": nil, "Alert": err.Error()})
	}
	return render(c, "admin_appointments", fiber.Map{
		"Appointments": appts,
		"Days":         booking.GroupByDay(appts),
	})
}

// InvoiceAppointment bills a completed appointment server-side.
func (h *AdminHandler) InvoiceAppointment(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	inv, err := h.API.InvoiceAppointment(c.UserContext(), currentToken(c), id)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.appointments.invoice.fail", err, map[string]any{"appointment": id})
		return redirectErr(c, "/admin/appointments", err)
	}
	applog.Audit(c, "admin.appointments.invoice", map[string]any{"appointment": id, "invoice": inv.ID})
	return redirectMsg(c, "/admin/invoices", "Invoice "+inv.Number+" created")
}

func (h *AdminHandler) Invoices(c *fiber.Ctx) error {
	invoices, err := h.API.Invoices(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.invoices.list.fail", err, nil)
		return render(c, "admin_invoices", fiber.Map{"Invoices": nil, "Alert": err.Error()})
	}
	return render(c, "admin_invoices", fiber.Map{"Invoices": invoices})
}

// MarkPaid is the one status transition an invoice allows from this side.
func (h *AdminHandler) MarkPaid(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.API.MarkInvoicePaid(c.UserContext(), currentToken(c), id); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "admin.invoices.pay.fail", err, map[string]any{"invoice": id})
		return redirectErr(c, "/admin/invoices", err)
	}
	applog.Audit(c, "admin.invoices.pay", map[string]any{"invoice": id})
	return redirectMsg(c, "/admin/invoices", "Invoice marked as paid")
}
