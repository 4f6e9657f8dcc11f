package api

import (
	"context"
	"net/http"
	"net/url"

	"petspa/internal/domain"
)

type AppointmentRequest struct {
	PetID     string `json:"petId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
}

func (c *Client) Appointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	var appts []domain.Appointment
	err := c.do(ctx, token, http.MethodGet, "/appointments", nil, &appts)
	return appts, err
}

// ValidateAvailability asks the server whether the requested slot is free.
// A 409 means the slot conflicts with an existing booking.
func (c *Client) ValidateAvailability(ctx context.Context, token string, req AppointmentRequest) error {
	return c.do(ctx, token, http.MethodPost, "/appointments/validate", req, nil)
}

func (c *Client) CreateAppointment(ctx context.Context, token string, req AppointmentRequest) (domain.Appointment, error) {
	var appt domain.Appointment
	err := c.do(ctx, token, http.MethodPost, "/appointments", req, &appt)
	return appt, err
}

func (c *Client) UpdateAppointment(ctx context.Context, token, id string, req AppointmentRequest) (domain.Appointment, error) {
	var appt domain.Appointment
	err := c.do(ctx, token, http.MethodPut, "/appointments/"+url.PathEscape(id), req, &appt)
	return appt, err
}

func (c *Client) DeleteAppointment(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil)
}

// InvoiceAppointment asks the server to bill a completed appointment.
func (c *Client) InvoiceAppointment(ctx context.Context, token, id string) (domain.Invoice, error) {
	var inv domain.Invoice
	err := c.do(ctx, token, http.MethodPost, "/appointments/"+url.PathEscape(id)+"/invoice", nil, &inv)
	return inv, err
}
