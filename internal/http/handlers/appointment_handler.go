package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	"petspa/internal/api"
	"petspa/internal/booking"
	"petspa/internal/domain"
	applog "petspa/internal/log"
	"petspa/internal/validate"
)

type AppointmentHandler struct {
	API     *api.Client
	Booking *booking.Flow
	G       *guard
}

// mountData is the parallel fan-out done when an appointment page mounts.
// Each fetch is caught independently: one failure degrades that slice to
// empty without blocking the siblings.
type mountData struct {
	Appointments []domain.Appointment
	Pets         []domain.Pet
	Services     []domain.Service
	unauthorized error
}

func (h *AppointmentHandler) loadMount(ctx context.Context, c *fiber.Ctx, token string) mountData {
	var md mountData
	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		appts, err := h.API.Appointments(ctx, token)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			applog.Error(c, "appointments.list.fail", err, nil)
			md.noteUnauthorized(err)
			return
		}
		md.Appointments = appts
	}()
	go func() {
		defer wg.Done()
		pets, err := h.API.Pets(ctx, token)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			applog.Error(c, "pets.list.fail", err, nil)
			md.noteUnauthorized(err)
			return
		}
		md.Pets = pets
	}()
	go func() {
		defer wg.Done()
		services, err := h.API.Services(ctx, token)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			applog.Error(c, "services.list.fail", err, nil)
			md.noteUnauthorized(err)
			return
		}
		md.Services = services
	}()
	wg.Wait()
	return md
}

func (md *mountData) noteUnauthorized(err error) {
	if errors.Is(err, api.ErrUnauthorized) && md.unauthorized == nil {
		md.unauthorized = err
	}
}

func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	md := h.loadMount(c.UserContext(), c, currentToken(c))
	if md.unauthorized != nil {
		if handled, resp := h.G.expired401(c, md.unauthorized); handled {
			return resp
		}
	}
	return render(c, "appointments", fiber.Map{"Appointments": md.Appointments})
}

func (h *AppointmentHandler) Calendar(c *fiber.Ctx) error {
	md := h.loadMount(c.UserContext(), c, currentToken(c))
	if md.unauthorized != nil {
		if handled, resp := h.G.expired401(c, md.unauthorized); handled {
			return resp
		}
	}
	return render(c, "calendar", fiber.Map{"Days": booking.GroupByDay(md.Appointments)})
}

// NewForm opens the booking form only when the account has at least one pet
// and a service is available; otherwise it explains why instead.
func (h *AppointmentHandler) NewForm(c *fiber.Ctx) error {
	md := h.loadMount(c.UserContext(), c, currentToken(c))
	if md.unauthorized != nil {
		if handled, resp := h.G.expired401(c, md.unauthorized); handled {
			return resp
		}
	}
	if err := h.Booking.CanOpenForm(md.Pets, md.Services); err != nil {
		return redirectErr(c, "/appointments", err)
	}
	return render(c, "appointment_form", fiber.Map{"Pets": md.Pets, "Services": md.Services})
}

func (h *AppointmentHandler) formRequest(c *fiber.Ctx) (api.AppointmentRequest, error) {
	petID, okPet := validate.ID(c.FormValue("petId"))
	serviceID, okSvc := validate.ID(c.FormValue("serviceId"))
	date, okDate := validate.Date(c.FormValue("date"))
	tod, okTime := validate.TimeOfDay(c.FormValue("time"))
	if !okPet || !okSvc || !okDate || !okTime {
		return api.AppointmentRequest{}, errors.New("please fill in pet, service, date and time")
	}
	return api.AppointmentRequest{PetID: petID, ServiceID: serviceID, Date: date, Time: tod}, nil
}

func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	req, err := h.formRequest(c)
	if err != nil {
		return redirectErr(c, "/appointments/new", err)
	}

	appt, err := h.Booking.Create(c.UserContext(), token, req)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		if errors.Is(err, booking.ErrSlotConflict) {
			applog.Info(c, "appointments.slot.conflict", map[string]any{"date": req.Date, "time": req.Time})
			return redirectErr(c, "/appointments/new", err)
		}
		applog.Error(c, "appointments.create.fail", err, nil)
		return redirectErr(c, "/appointments/new", err)
	}
	applog.Audit(c, "appointments.create", map[string]any{"appointment": appt.ID})
	return redirectMsg(c, "/appointments", "Appointment booked")
}

func (h *AppointmentHandler) findAppointment(ctx context.Context, token, id string) (domain.Appointment, error) {
	appts, err := h.API.Appointments(ctx, token)
	if err != nil {
		return domain.Appointment{}, err
	}
	for _, a := range appts {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Appointment{}, errors.New("appointment not found")
}

func (h *AppointmentHandler) EditForm(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Appointment not found"})
	}
	appt, err := h.findAppointment(c.UserContext(), token, id)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Appointment not found"})
	}
	if !appt.CanModify() {
		return redirectErr(c, "/appointments", errors.New("this appointment can no longer be changed"))
	}

	md := h.loadMount(c.UserContext(), c, token)
	return render(c, "appointment_form", fiber.Map{
		"Appointment": appt,
		"Pets":        md.Pets,
		"Services":    md.Services,
	})
}

func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	req, err := h.formRequest(c)
	if err != nil {
		return redirectErr(c, "/appointments/"+id+"/edit", err)
	}
	existing, err := h.findAppointment(c.UserContext(), token, id)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return redirectErr(c, "/appointments", err)
	}

	if _, err := h.Booking.Update(c.UserContext(), token, existing, req); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		if errors.Is(err, booking.ErrSlotConflict) {
			return redirectErr(c, "/appointments/"+id+"/edit", err)
		}
		applog.Error(c, "appointments.update.fail", err, map[string]any{"appointment": id})
		return redirectErr(c, "/appointments/"+id+"/edit", err)
	}
	applog.Audit(c, "appointments.update", map[string]any{"appointment": id})
	return redirectMsg(c, "/appointments", "Appointment updated")
}

// Delete cancels an appointment; the form posts only after the confirm dialog.
func (h *AppointmentHandler) Delete(c *fiber.Ctx) error {
	token := currentToken(c)
	if token == "" {
		return c.Redirect("/login")
	}
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	existing, err := h.findAppointment(c.UserContext(), token, id)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		return redirectErr(c, "/appointments", err)
	}
	if err := h.Booking.Delete(c.UserContext(), token, existing); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "appointments.delete.fail", err, map[string]any{"appointment": id})
		return redirectErr(c, "/appointments", err)
	}
	applog.Audit(c, "appointments.delete", map[string]any{"appointment": id})
	return redirectMsg(c, "/appointments", "Appointment cancelled")
}
