// Package booking handles the appointment form flow: a server-side
// availability pre-check guards every create, and every edit that moves the
// slot. The create/update call is never attempted when validation rejects.
package booking

import (
	"context"
	"errors"
	"fmt"

	"petspa/internal/api"
	"petspa/internal/domain"
)

var (
	ErrNoPets       = errors.New("register a pet before booking an appointment")
	ErrNoServices   = errors.New("no services are currently available for booking")
	ErrSlotConflict = errors.New("that time slot is unavailable, please pick another")
)

type Flow struct {
	api *api.Client
}

func NewFlow(client *api.Client) *Flow {
	return &Flow{api: client}
}

// CanOpenForm checks the form's preconditions: at least one registered pet and
// one available service. The caller shows the returned message instead of the
// form.
func (f *Flow) CanOpenForm(pets []domain.Pet, services []domain.Service) error {
	if len(pets) == 0 {
		return ErrNoPets
	}
	available := false
	for _, s := range services {
		if s.Active {
			available = true
			break
		}
	}
	if !available {
		return ErrNoServices
	}
	return nil
}

// Create validates the slot first; a conflict surfaces as ErrSlotConflict and
// the appointment is never submitted.
func (f *Flow) Create(ctx context.Context, token string, req api.AppointmentRequest) (domain.Appointment, error) {
	if err := f.validate(ctx, token, req); err != nil {
		return domain.Appointment{}, err
	}
	return f.api.CreateAppointment(ctx, token, req)
}

// Update re-validates only when the date or time changed; an unchanged slot is
// trusted to still hold its original booking.
func (f *Flow) Update(ctx context.Context, token string, existing domain.Appointment, req api.AppointmentRequest) (domain.Appointment, error) {
	if !existing.CanModify() {
		return domain.Appointment{}, fmt.Errorf("a %s appointment cannot be changed", existing.Status)
	}
	if req.Date != existing.Date || req.Time != existing.Time {
		if err := f.validate(ctx, token, req); err != nil {
			return domain.Appointment{}, err
		}
	}
	return f.api.UpdateAppointment(ctx, token, existing.ID, req)
}

func (f *Flow) Delete(ctx context.Context, token string, existing domain.Appointment) error {
	if !existing.CanModify() {
		return fmt.Errorf("a %s appointment cannot be cancelled", existing.Status)
	}
	return f.api.DeleteAppointment(ctx, token, existing.ID)
}

func (f *Flow) validate(ctx context.Context, token string, req api.AppointmentRequest) error {
	err := f.api.ValidateAvailability(ctx, token, req)
	if err == nil {
		return nil
	}
	if api.IsConflict(err) {
		return ErrSlotConflict
	}
	return err
}
