package handlers

import (
	"petspa/internal/api"
	"petspa/internal/booking"
	"petspa/internal/checkout"
	"petspa/internal/session"
	"petspa/internal/store"
)

type Deps struct {
	AuthHandler        *AuthHandler
	CatalogHandler     *CatalogHandler
	CartHandler        *CartHandler
	CheckoutHandler    *CheckoutHandler
	AppointmentHandler *AppointmentHandler
	PetHandler         *PetHandler
	InvoiceHandler     *InvoiceHandler
	AdminHandler       *AdminHandler
}

func NewDeps(client *api.Client, auth *session.Manager) *Deps {
	carts := store.NewStores(client)
	flows := checkout.NewFlows(client, carts)
	book := booking.NewFlow(client)

	guard := &guard{Auth: auth, Carts: carts, Flows: flows}

	return &Deps{
		AuthHandler:        &AuthHandler{Auth: auth, Carts: carts, Flows: flows},
		CatalogHandler:     &CatalogHandler{API: client, Carts: carts, G: guard},
		CartHandler:        &CartHandler{Carts: carts, G: guard},
		CheckoutHandler:    &CheckoutHandler{Flows: flows, Carts: carts, G: guard},
		AppointmentHandler: &AppointmentHandler{API: client, Booking: book, G: guard},
		PetHandler:         &PetHandler{API: client, G: guard},
		InvoiceHandler:     &InvoiceHandler{API: client, G: guard},
		AdminHandler:       &AdminHandler{API: client, G: guard},
	}
}
