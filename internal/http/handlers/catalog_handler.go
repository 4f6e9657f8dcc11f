package handlers

import (
	"github.com/gofiber/fiber/v2"

	"petspa/internal/api"
	applog "petspa/internal/log"
	"petspa/internal/store"
)

type CatalogHandler struct {
	API   *api.Client
	Carts *store.Stores
	G     *guard
}

// Home shows the grooming services on offer. A failed fetch degrades to an
// empty list with an alert instead of a broken page.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	services, err := h.API.Services(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "home.services.fail", err, nil)
		return render(c, "home", fiber.Map{"Services": nil, "Alert": err.Error()})
	}
	return render(c, "home", fiber.Map{"Services": services})
}

// Products lists the shop catalog with add-to-cart forms. The cart badge comes
// from the session's mirror; a cart-load failure must not break the page.
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	token := currentToken(c)
	products, err := h.API.Products(c.UserContext(), token)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "products.list.fail", err, nil)
		return render(c, "products", fiber.Map{"Products": nil, "Alert": err.Error()})
	}

	cartCount := 0
	if token != "" {
		cart := h.Carts.ForSession(ensureSID(c))
		if err := cart.Reload(c.UserContext(), token); err != nil {
			if handled, resp := h.G.expired401(c, err); handled {
				return resp
			}
			// Badge failure alone must not break the catalog.
			applog.Error(c, "products.cart.fail", err, nil)
		}
		cartCount = cart.ItemCount()
	}
	return render(c, "products", fiber.Map{"Products": products, "CartCount": cartCount})
}
