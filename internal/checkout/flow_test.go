package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petspa/internal/api"
	"petspa/internal/domain"
	"petspa/internal/store"
)

// fakeCheckoutAPI serves the cart and checkout endpoints with canned state and
// counts every request so tests can assert which calls never happen.
type fakeCheckoutAPI struct {
	mu             sync.Mutex
	cart           domain.Cart
	stockAvailable bool
	hits           map[string]int
}

func newFakeCheckoutAPI() *fakeCheckoutAPI {
	return &fakeCheckoutAPI{stockAvailable: true, hits: map[string]int{}}
}

func (f *fakeCheckoutAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/cart":
			f.hits["cart"]++
			json.NewEncoder(w).Encode(f.cart)
		case r.Method == http.MethodDelete && r.URL.Path == "/cart":
			f.hits["clear"]++
			f.cart = domain.Cart{}
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/checkout/summary":
			f.hits["summary"]++
			total := 0.0
			for _, it := range f.cart.Items {
				total += it.Subtotal
			}
			json.NewEncoder(w).Encode(domain.CheckoutSummary{
				Items:          f.cart.Items,
				Total:          total,
				StockAvailable: f.stockAvailable,
				ClienteNombre:  "Ana",
				ClienteEmail:   "ana@example.com",
			})
		case r.URL.Path == "/checkout/confirm":
			f.hits["confirm"]++
			json.NewEncoder(w).Encode(domain.Invoice{
				ID: "inv-1", Number: "F-0001", Status: domain.InvoicePending, Total: 42,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeCheckoutAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[op]
}

func (f *fakeCheckoutAPI) setCart(items ...domain.CartItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cart = domain.Cart{Items: items}
}

func newTestFlow(t *testing.T) (*Flow, *store.CartStore, *fakeCheckoutAPI) {
	t.Helper()
	fake := newFakeCheckoutAPI()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := api.New(srv.URL)
	cart := store.NewCartStore(client)
	return NewFlow(client, cart), cart, fake
}

func item(id string, qty int, subtotal float64) domain.CartItem {
	return domain.CartItem{ProductID: id, Name: id, Quantity: qty, Subtotal: subtotal}
}

func TestEnterSummaryRejectsEmptyCartBeforeNetwork(t *testing.T) {
	flow, _, fake := newTestFlow(t)

	err := flow.EnterSummary(context.Background(), "tok")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, fake.count("cart"), "empty local cart must short-circuit")
	assert.Equal(t, 0, fake.count("summary"))
	assert.Equal(t, StageCart, flow.Stage())
}

func TestEnterSummaryCatchesConcurrentEmptying(t *testing.T) {
	flow, cart, fake := newTestFlow(t)
	ctx := context.Background()

	fake.setCart(item("p1", 1, 10))
	require.NoError(t, cart.Reload(ctx, "tok"))
	fake.setCart() // another tab emptied the cart meanwhile

	err := flow.EnterSummary(ctx, "tok")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, fake.count("summary"), "summary must not be fetched for an empty cart")
	assert.Equal(t, StageCart, flow.Stage())
}

func TestEnterSummaryLoadsServerSnapshot(t *testing.T) {
	flow, cart, fake := newTestFlow(t)
	ctx := context.Background()

	fake.setCart(item("p1", 2, 20), item("p2", 1, 5))
	require.NoError(t, cart.Reload(ctx, "tok"))

	require.NoError(t, flow.EnterSummary(ctx, "tok"))
	assert.Equal(t, StageSummary, flow.Stage())
	require.NotNil(t, flow.Summary())
	assert.Equal(t, 25.0, flow.Summary().Total)
	assert.True(t, flow.Summary().StockAvailable)
}

func TestConfirmWithoutSummaryMakesNoCalls(t *testing.T) {
	flow, _, fake := newTestFlow(t)

	_, err := flow.Confirm(context.Background(), "tok", PaymentDetails{Method: "CASH"})
	require.ErrorIs(t, err, ErrNoSummary)
	assert.Equal(t, 0, fake.count("confirm"))
}

func TestConfirmBlockedByStockMakesNoCalls(t *testing.T) {
	flow, cart, fake := newTestFlow(t)
	ctx := context.Background()

	fake.setCart(item("p1", 1, 10))
	require.NoError(t, cart.Reload(ctx, "tok"))
	fake.mu.Lock()
	fake.stockAvailable = false
	fake.mu.Unlock()
	require.NoError(t, flow.EnterSummary(ctx, "tok"))

	_, err := flow.Confirm(ctx, "tok", PaymentDetails{Method: "CARD"})
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 0, fake.count("confirm"), "stock block must cost zero network calls")
	assert.Equal(t, StageSummary, flow.Stage())
}

func TestConfirmReachesConfirmationAndClearsCart(t *testing.T) {
	flow, cart, fake := newTestFlow(t)
	ctx := context.Background()

	fake.setCart(item("p1", 2, 20))
	require.NoError(t, cart.Reload(ctx, "tok"))
	require.NoError(t, flow.EnterSummary(ctx, "tok"))

	var rendered *domain.Invoice
	flow.OnConfirmed(func(inv domain.Invoice) error {
		rendered = &inv
		return nil
	})

	inv, err := flow.Confirm(ctx, "tok", PaymentDetails{Method: "CASH", DeliveryAddress: "Calle 1"})
	require.NoError(t, err)
	assert.Equal(t, "F-0001", inv.Number)
	assert.Equal(t, StageConfirmation, flow.Stage())
	assert.Equal(t, 1, fake.count("clear"))
	assert.Empty(t, cart.Items())
	require.NotNil(t, rendered)
	assert.Equal(t, "inv-1", rendered.ID)
	require.NotNil(t, flow.Invoice())
}

func TestConfirmSurvivesReceiptFailure(t *testing.T) {
	flow, cart, fake := newTestFlow(t)
	ctx := context.Background()

	fake.setCart(item("p1", 1, 10))
	require.NoError(t, cart.Reload(ctx, "tok"))
	require.NoError(t, flow.EnterSummary(ctx, "tok"))
	flow.OnConfirmed(func(domain.Invoice) error { return errors.New("printer on fire") })

	_, err := flow.Confirm(ctx, "tok", PaymentDetails{Method: "CASH"})
	require.NoError(t, err, "receipt rendering is best-effort")
	assert.Equal(t, StageConfirmation, flow.Stage())
}

func TestBackToCartDiscardsSummary(t *testing.T) {
	flow, cart, fake := newTestFlow(t)
	ctx := context.Background()

	fake.setCart(item("p1", 1, 10))
	require.NoError(t, cart.Reload(ctx, "tok"))
	require.NoError(t, flow.EnterSummary(ctx, "tok"))

	flow.BackToCart()
	assert.Equal(t, StageCart, flow.Stage())
	assert.Nil(t, flow.Summary())
}

// One flow is shared by every concurrent request of a browser session, so a
// double-submit of checkout and back must not race on the stage fields.
func TestFlowConcurrentTransitions(t *testing.T) {
	flow, cart, fake := newTestFlow(t)
	ctx := context.Background()

	fake.setCart(item("p1", 1, 10))
	require.NoError(t, cart.Reload(ctx, "tok"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = flow.EnterSummary(ctx, "tok")
		}()
		go func() {
			defer wg.Done()
			flow.BackToCart()
		}()
		go func() {
			defer wg.Done()
			_ = flow.Stage()
			_ = flow.Summary()
			_ = flow.Invoice()
		}()
	}
	wg.Wait()

	// Whatever interleaving won, the flow is in a coherent stage: a summary
	// is present exactly when the stage says so.
	stage := flow.Stage()
	switch stage {
	case StageSummary:
		assert.NotNil(t, flow.Summary())
	case StageCart:
		assert.Nil(t, flow.Summary())
	default:
		t.Fatalf("unexpected stage %v", stage)
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "cart", StageCart.String())
	assert.Equal(t, "summary", StageSummary.String())
	assert.Equal(t, "confirmation", StageConfirmation.String())
}
