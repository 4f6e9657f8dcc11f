package domain

import "strings"

// Session is the identity derived from the bearer token. It is display-only:
// the remote API remains the authorization boundary on every call.
type Session struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Roles    []string `json:"roles"`
}

func (s Session) IsAdmin() bool {
	if strings.EqualFold(s.Role, "ADMIN") {
		return true
	}
	for _, r := range s.Roles {
		if strings.EqualFold(r, "ADMIN") || strings.EqualFold(r, "ROLE_ADMIN") {
			return true
		}
	}
	return false
}
