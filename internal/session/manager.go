// Package session derives identity from the bearer token issued by the remote
// API and keeps it bound to the browser's sid cookie.
package session

import (
	"context"

	"petspa/internal/api"
	"petspa/internal/domain"
	applog "petspa/internal/log"
)

type Manager struct {
	API   *api.Client
	Store *Store
}

func NewManager(client *api.Client, store *Store) *Manager {
	return &Manager{API: client, Store: store}
}

// Login authenticates against the remote API and binds the returned token to
// the session id. An undecodable token degrades to a best-effort session built
// from the login email instead of failing the login.
func (m *Manager) Login(ctx context.Context, sid, email, password string) (domain.Session, error) {
	token, err := m.API.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, err
	}
	sess, err := DecodeToken(token)
	if err != nil {
		applog.Base().WithField("email", email).Warn("session.token.undecodable")
		sess = FromEmail(email)
	}
	if err := m.Store.Bind(sid, token, sess); err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// Current resolves the sid cookie to a token and session; ok is false for
// anonymous visitors.
func (m *Manager) Current(sid string) (string, domain.Session, bool) {
	if sid == "" {
		return "", domain.Session{}, false
	}
	return m.Store.Get(sid)
}

func (m *Manager) Logout(sid string) error {
	return m.Store.Delete(sid)
}

// Invalidate drops the stored token, used when any call returns 401.
func (m *Manager) Invalidate(sid string) {
	_ = m.Store.Delete(sid)
}
