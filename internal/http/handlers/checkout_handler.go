package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"petspa/internal/checkout"
	applog "petspa/internal/log"
	"petspa/internal/store"
	"petspa/internal/validate"
)

type CheckoutHandler struct {
	Flows *checkout.Flows
	Carts *store.Stores
	G     *guard
}

// Begin moves the flow to the summary stage. An empty cart bounces straight
// back without touching the network.
func (h *CheckoutHandler) Begin(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	flow := h.Flows.ForSession(ensureSID(c))
	if err := flow.EnterSummary(c.UserContext(), token); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "checkout.summary.fail", err, nil)
		return redirectErr(c, "/cart", err)
	}
	return c.Redirect("/checkout/summary")
}

func (h *CheckoutHandler) Summary(c *fiber.Ctx) error {
	flow := h.Flows.ForSession(ensureSID(c))
	sum := flow.Summary()
	if flow.Stage() != checkout.StageSummary || sum == nil {
		return c.Redirect("/cart")
	}
	return render(c, "checkout_summary", fiber.Map{
		"Summary":    sum,
		"StockError": !sum.StockAvailable,
	})
}

// Confirm submits the purchase. A stale summary with missing stock is refused
// before any network call; the user can still go back and adjust quantities.
func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	method, ok := validate.PaymentMethod(c.FormValue("paymentMethod"))
	if !ok {
		return redirectErr(c, "/checkout/summary", errors.New("please choose a payment method"))
	}

	flow := h.Flows.ForSession(ensureSID(c))
	inv, err := flow.Confirm(c.UserContext(), token, checkout.PaymentDetails{
		Method:          method,
		DeliveryAddress: c.FormValue("deliveryAddress"),
	})
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		if errors.Is(err, checkout.ErrOutOfStock) {
			applog.Security(c, "checkout.confirm.stock", nil)
			return redirectErr(c, "/checkout/summary", err)
		}
		applog.Error(c, "checkout.confirm.fail", err, nil)
		return redirectErr(c, "/checkout/summary", err)
	}

	applog.Audit(c, "checkout.confirm", map[string]any{"invoice": inv.ID, "total": inv.Total})
	return c.Redirect("/checkout/done")
}

// Done renders the confirmation message; the template carries a meta refresh
// that moves on to the invoice list after the fixed delay.
func (h *CheckoutHandler) Done(c *fiber.Ctx) error {
	flow := h.Flows.ForSession(ensureSID(c))
	inv := flow.Invoice()
	if flow.Stage() != checkout.StageConfirmation || inv == nil {
		return c.Redirect("/cart")
	}
	return render(c, "checkout_done", fiber.Map{
		"Invoice":      inv,
		"RedirectSecs": int(checkout.RedirectDelay.Seconds()),
	})
}

// Back returns to the cart stage unconditionally, discarding the summary.
func (h *CheckoutHandler) Back(c *fiber.Ctx) error {
	h.Flows.ForSession(ensureSID(c)).BackToCart()
	return c.Redirect("/cart")
}
