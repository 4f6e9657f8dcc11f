package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"petspa/internal/api"
	applog "petspa/internal/log"
	"petspa/internal/validate"
)

type PetHandler struct {
	API *api.Client
	G   *guard
}

func (h *PetHandler) List(c *fiber.Ctx) error {
	pets, err := h.API.Pets(c.UserContext(), currentToken(c))
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "pets.list.fail", err, nil)
		return render(c, "pets", fiber.Map{"Pets": nil, "Alert": err.Error()})
	}
	return render(c, "pets", fiber.Map{"Pets": pets})
}

func (h *PetHandler) petRequest(c *fiber.Ctx) (api.PetRequest, error) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return api.PetRequest{}, errors.New("pet name is required")
	}
	age, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("age")))
	if age < 0 {
		age = 0
	}
	return api.PetRequest{
		Name:    name,
		Species: strings.TrimSpace(c.FormValue("species")),
		Breed:   strings.TrimSpace(c.FormValue("breed")),
		Age:     age,
	}, nil
}

func (h *PetHandler) Create(c *fiber.Ctx) error {
	token := currentToken(c)
	req, err := h.petRequest(c)
	if err != nil {
		return redirectErr(c, "/pets", err)
	}
	pet, err := h.API.CreatePet(c.UserContext(), token, req)
	if err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "pets.create.fail", err, nil)
		return redirectErr(c, "/pets", err)
	}

	// Photo is optional; a failed upload does not fail the registration.
	if file, ferr := c.FormFile("photo"); ferr == nil && file != nil {
		src, oerr := file.Open()
		if oerr == nil {
			defer src.Close()
			if uerr := h.API.UploadPetPhoto(c.UserContext(), token, pet.ID, file.Filename, src); uerr != nil {
				applog.Error(c, "pets.photo.fail", uerr, map[string]any{"pet": pet.ID})
			}
		}
	}

	applog.Audit(c, "pets.create", map[string]any{"pet": pet.ID})
	return redirectMsg(c, "/pets", "Pet registered")
}

func (h *PetHandler) Update(c *fiber.Ctx) error {
	token := currentToken(c)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	req, err := h.petRequest(c)
	if err != nil {
		return redirectErr(c, "/pets", err)
	}
	if _, err := h.API.UpdatePet(c.UserContext(), token, id, req); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "pets.update.fail", err, map[string]any{"pet": id})
		return redirectErr(c, "/pets", err)
	}
	return redirectMsg(c, "/pets", "Pet updated")
}

func (h *PetHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.API.DeletePet(c.UserContext(), currentToken(c), id); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "pets.delete.fail", err, map[string]any{"pet": id})
		return redirectErr(c, "/pets", err)
	}
	applog.Audit(c, "pets.delete", map[string]any{"pet": id})
	return redirectMsg(c, "/pets", "Pet removed")
}

func (h *PetHandler) UploadPhoto(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	file, err := c.FormFile("photo")
	if err != nil {
		return redirectErr(c, "/pets", errors.New("choose a photo to upload"))
	}
	src, err := file.Open()
	if err != nil {
		return redirectErr(c, "/pets", err)
	}
	defer src.Close()

	if err := h.API.UploadPetPhoto(c.UserContext(), currentToken(c), id, file.Filename, src); err != nil {
		if handled, resp := h.G.expired401(c, err); handled {
			return resp
		}
		applog.Error(c, "pets.photo.fail", err, map[string]any{"pet": id})
		return redirectErr(c, "/pets", err)
	}
	return redirectMsg(c, "/pets", "Photo updated")
}
