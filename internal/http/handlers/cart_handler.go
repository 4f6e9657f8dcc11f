package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "petspa/internal/log"
	"petspa/internal/store"
	"petspa/internal/validate"
)

type CartHandler struct {
	Carts *store.Stores
	G     *guard
}

var errNotAuthenticated = errors.New("please log in to use the cart")

func (h *CartHandler) View(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	cart := h.Carts.ForSession(ensureSID(c))
	data := fiber.Map{}
	if err := cart.Reload(c.UserContext(), token); err != nil {
		// A rejected token tears the session down; any other failure
		// degrades to an empty cart with an alert.
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "cart.view.fail", err, nil)
		data["Alert"] = err.Error()
	}
	data["Items"] = cart.Items()
	data["Total"] = cart.Total()
	data["Count"] = cart.ItemCount()
	return render(c, "cart", data)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return redirectErr(c, "/products", errNotAuthenticated)
	}
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	cart := h.Carts.ForSession(ensureSID(c))
	if err := cart.AddItem(c.UserContext(), token, productID, qty); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
		return redirectErr(c, "/products", err)
	}
	applog.Info(c, "cart.add", map[string]any{"product": productID, "qty": qty})
	return redirectMsg(c, "/cart", "Added to cart")
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(c.FormValue("qty")))
	if err != nil {
		return c.Status(400).SendString("invalid qty")
	}

	// qty <= 0 removes the line inside the store; never stored as zero.
	cart := h.Carts.ForSession(ensureSID(c))
	if err := cart.UpdateQuantity(c.UserContext(), token, productID, qty); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "cart.update.fail", err, map[string]any{"product": productID, "qty": qty})
		return redirectErr(c, "/cart", err)
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	cart := h.Carts.ForSession(ensureSID(c))
	if err := cart.RemoveItem(c.UserContext(), token, productID); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
		return redirectErr(c, "/cart", err)
	}
	return redirectMsg(c, "/cart", "Item removed")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	cart := h.Carts.ForSession(ensureSID(c))
	if err := cart.Clear(c.UserContext(), token); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "cart.clear.fail", err, nil)
		return redirectErr(c, "/cart", err)
	}
	return redirectMsg(c, "/cart", "Cart cleared")
}
