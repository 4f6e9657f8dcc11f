// Package checkout drives the three-step purchase flow: cart, server-computed
// summary, confirmation. Transitions are explicit methods on the Flow; there
// are no implicit jumps and no timers beyond the fixed post-confirmation
// redirect delay.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"petspa/internal/api"
	"petspa/internal/domain"
	applog "petspa/internal/log"
	"petspa/internal/store"
)

type Stage int

const (
	StageCart Stage = iota
	StageSummary
	StageConfirmation
)

func (s Stage) String() string {
	switch s {
	case StageSummary:
		return "summary"
	case StageConfirmation:
		return "confirmation"
	default:
		return "cart"
	}
}

// RedirectDelay is how long the confirmation page is shown before navigating
// to the invoice list.
const RedirectDelay = 3 * time.Second

var (
	ErrEmptyCart  = errors.New("your cart is empty")
	ErrNoSummary  = errors.New("no checkout summary loaded")
	ErrOutOfStock = errors.New("some items are no longer in stock")
)

type PaymentDetails struct {
	Method          string
	DeliveryAddress string
}

type Flow struct {
	api  *api.Client
	cart *store.CartStore

	// renderReceipt, when set, produces the printable receipt after a
	// confirmed purchase. Failures are logged, never fatal.
	renderReceipt func(domain.Invoice) error

	// mu serializes stage transitions; one flow is shared by every
	// concurrent request of the same browser session.
	mu      sync.Mutex
	stage   Stage
	summary *domain.CheckoutSummary
	invoice *domain.Invoice
}

func NewFlow(client *api.Client, cart *store.CartStore) *Flow {
	return &Flow{api: client, cart: cart, stage: StageCart}
}

func (f *Flow) OnConfirmed(render func(domain.Invoice) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renderReceipt = render
}

func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

func (f *Flow) Summary() *domain.CheckoutSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.summary
}

func (f *Flow) Invoice() *domain.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invoice
}

// EnterSummary moves cart -> summary. An empty local cart is rejected before
// any network call; otherwise the cart is re-fetched to catch concurrent
// changes and the server summary is loaded. Any failure keeps the flow in the
// cart stage.
func (f *Flow) EnterSummary(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cart.ItemCount() == 0 {
		return ErrEmptyCart
	}
	if err := f.cart.Reload(ctx, token); err != nil {
		return err
	}
	if f.cart.ItemCount() == 0 {
		return ErrEmptyCart
	}
	sum, err := f.api.CheckoutSummary(ctx, token)
	if err != nil {
		return err
	}
	f.summary = &sum
	f.stage = StageSummary
	return nil
}

// Confirm submits the purchase. It refuses without a summary or when the last
// fetched summary reported missing stock, making zero network calls in either
// case. On success the receipt render and cart clear are best-effort; the flow
// reaches confirmation regardless.
func (f *Flow) Confirm(ctx context.Context, token string, payment PaymentDetails) (*domain.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stage != StageSummary || f.summary == nil {
		return nil, ErrNoSummary
	}
	if !f.summary.StockAvailable {
		return nil, ErrOutOfStock
	}

	inv, err := f.api.ConfirmCheckout(ctx, token, api.ConfirmCheckoutRequest{
		PaymentMethod:   payment.Method,
		DeliveryAddress: payment.DeliveryAddress,
	})
	if err != nil {
		return nil, err
	}

	if f.renderReceipt != nil {
		if rerr := f.renderReceipt(inv); rerr != nil {
			applog.Base().WithField("invoice", inv.ID).WithField("err", rerr.Error()).Warn("checkout.receipt")
		}
	}
	if cerr := f.cart.Clear(ctx, token); cerr != nil {
		applog.Base().WithField("err", cerr.Error()).Warn("checkout.cart.clear")
	}

	f.invoice = &inv
	f.stage = StageConfirmation
	return &inv, nil
}

// BackToCart discards the summary unconditionally.
func (f *Flow) BackToCart() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summary = nil
	f.stage = StageCart
}
