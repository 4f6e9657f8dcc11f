package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"petspa/internal/domain"
)

var errMalformedToken = errors.New("malformed token")

// DecodeToken reads the payload of a JWT without verifying its signature.
// The result is display-only; the remote API verifies the token on every call.
func DecodeToken(token string) (domain.Session, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return domain.Session{}, errMalformedToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return domain.Session{}, errMalformedToken
	}

	var claims struct {
		Sub      string   `json:"sub"`
		ID       string   `json:"id"`
		Username string   `json:"username"`
		Email    string   `json:"email"`
		Role     string   `json:"role"`
		Roles    []string `json:"roles"`
	}
	if err := json.Unmarshal(raw, &claims); err != nil {
		return domain.Session{}, errMalformedToken
	}

	s := domain.Session{
		ID:       claims.ID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
		Roles:    claims.Roles,
	}
	if s.ID == "" {
		s.ID = claims.Sub
	}
	if s.Username == "" {
		s.Username = claims.Sub
	}
	if s.Email == "" && strings.Contains(claims.Sub, "@") {
		s.Email = claims.Sub
	}
	return s, nil
}

// FromEmail builds a best-effort session for tokens that cannot be decoded,
// so a login with an opaque token still renders a usable page.
func FromEmail(email string) domain.Session {
	username := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		username = email[:i]
	}
	return domain.Session{Username: username, Email: email, Role: "CLIENT"}
}
