package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"petspa/internal/domain"
)

type PetRequest struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	Age     int    `json:"age"`
}

func (c *Client) Pets(ctx context.Context, token string) ([]domain.Pet, error) {
	var pets []domain.Pet
	err := c.do(ctx, token, http.MethodGet, "/pets", nil, &pets)
	return pets, err
}

func (c *Client) CreatePet(ctx context.Context, token string, req PetRequest) (domain.Pet, error) {
	var pet domain.Pet
	err := c.do(ctx, token, http.MethodPost, "/pets", req, &pet)
	return pet, err
}

func (c *Client) UpdatePet(ctx context.Context, token, id string, req PetRequest) (domain.Pet, error) {
	var pet domain.Pet
	err := c.do(ctx, token, http.MethodPut, "/pets/"+url.PathEscape(id), req, &pet)
	return pet, err
}

func (c *Client) DeletePet(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, nil)
}

// UploadPetPhoto sends the photo as multipart form data under the "photo" field.
func (c *Client) UploadPetPhoto(ctx context.Context, token, petID, filename string, photo io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, photo); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	path := "/pets/" + url.PathEscape(petID) + "/photo"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return netError("pets", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return c.statusError("pets", path, resp)
	}
	return nil
}
