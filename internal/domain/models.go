package domain

// Shapes mirrored from the PetSPA REST API. Every entity here is authoritative
// on the server; the frontend only holds transient copies between requests.

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          bool    `json:"active"`
}

type Pet struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed"`
	Age      int    `json:"age"`
	PhotoURL string `json:"photoUrl"`
	ClientID string `json:"clientId"`
}

type Client struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// CheckoutSummary is the server-computed snapshot fetched at the start of the
// summary step. StockAvailable=false blocks confirmation.
type CheckoutSummary struct {
	Items          []CartItem `json:"items"`
	Total          float64    `json:"total"`
	StockAvailable bool       `json:"stockAvailable"`
	ClienteNombre  string     `json:"clienteNombre"`
	ClienteEmail   string     `json:"clienteEmail"`
}

const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
)

type Appointment struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // YYYY-MM-DD
	Time     string  `json:"time"` // HH:MM
	Status   string  `json:"status"`
	Pet      Pet     `json:"pet"`
	Service  Service `json:"service"`
	Client   Client  `json:"client"`
	Invoiced bool    `json:"invoiced"`
}

// CanModify reports whether the UI should offer edit/delete. Status transitions
// themselves are server-authoritative; this only disables the buttons.
func (a Appointment) CanModify() bool {
	return a.Status != AppointmentCompleted && a.Status != AppointmentCancelled
}

const (
	InvoicePending = "PENDING"
	InvoicePaid    = "PAID"
)

type InvoiceLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}

type Invoice struct {
	ID              string        `json:"id"`
	Number          string        `json:"number"`
	Date            string        `json:"date"`
	Status          string        `json:"status"`
	Total           float64       `json:"total"`
	Client          Client        `json:"client"`
	LineItems       []InvoiceLine `json:"lineItems"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	DeliveryAddress string        `json:"deliveryAddress,omitempty"`
}
