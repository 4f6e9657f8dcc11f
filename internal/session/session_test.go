package session

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"petspa/internal/api"
	"petspa/internal/domain"
)

func jwtWith(payload string) string {
	head := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return head + "." + body + ".sig"
}

func TestDecodeTokenReadsClaims(t *testing.T) {
	tok := jwtWith(`{"sub":"u1","username":"ana","email":"ana@example.com","role":"CLIENT","roles":["CLIENT"]}`)
	sess, err := DecodeToken(tok)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if sess.ID != "u1" || sess.Username != "ana" || sess.Email != "ana@example.com" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if sess.IsAdmin() {
		t.Fatalf("CLIENT session reported as admin")
	}
}

func TestDecodeTokenSubFallbacks(t *testing.T) {
	tok := jwtWith(`{"sub":"ana@example.com","role":"ADMIN"}`)
	sess, err := DecodeToken(tok)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if sess.ID != "ana@example.com" || sess.Username != "ana@example.com" || sess.Email != "ana@example.com" {
		t.Fatalf("sub fallbacks not applied: %+v", sess)
	}
	if !sess.IsAdmin() {
		t.Fatalf("ADMIN session not recognized")
	}
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	for _, tok := range []string{
		"",
		"opaque-token",
		"a.b",
		"x.!!!.z",
		jwtWith(`not json`),
	} {
		if _, err := DecodeToken(tok); err == nil {
			t.Errorf("DecodeToken(%q) succeeded, want error", tok)
		}
	}
}

func TestFromEmail(t *testing.T) {
	sess := FromEmail("ana@example.com")
	if sess.Username != "ana" || sess.Email != "ana@example.com" || sess.Role != "CLIENT" {
		t.Fatalf("unexpected session %+v", sess)
	}
	if got := FromEmail("noatsign"); got.Username != "noatsign" {
		t.Fatalf("Username = %q, want full input when no @", got.Username)
	}
}

func TestStoreBindGetDelete(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	sess := domain.Session{ID: "u1", Username: "ana", Email: "ana@example.com", Role: "CLIENT", Roles: []string{"CLIENT", "VIP"}}
	if err := store.Bind("sid-1", "tok-1", sess); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	tok, got, ok := store.Get("sid-1")
	if !ok || tok != "tok-1" {
		t.Fatalf("Get = (%q, ok=%v)", tok, ok)
	}
	if got.ID != "u1" {
		t.Fatalf("user id lost across Bind/Get: %+v", got)
	}
	if got.Username != "ana" || len(got.Roles) != 2 || got.Roles[1] != "VIP" {
		t.Fatalf("unexpected session %+v", got)
	}

	// Rebinding the same sid replaces the token.
	if err := store.Bind("sid-1", "tok-2", sess); err != nil {
		t.Fatalf("rebind: %v", err)
	}
	tok, _, _ = store.Get("sid-1")
	if tok != "tok-2" {
		t.Fatalf("token after rebind = %q, want tok-2", tok)
	}

	if err := store.Delete("sid-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, ok := store.Get("sid-1"); ok {
		t.Fatalf("session still present after delete")
	}
}

func TestStoreGetUnknownSid(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, _, ok := store.Get("never-seen"); ok {
		t.Fatalf("unknown sid reported as present")
	}
}

func TestManagerLoginDecodableToken(t *testing.T) {
	tok := jwtWith(`{"sub":"u1","username":"ana","email":"ana@example.com","role":"CLIENT"}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"` + tok + `"}`))
	}))
	defer srv.Close()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	m := NewManager(api.New(srv.URL), store)

	sess, err := m.Login(context.Background(), "sid-1", "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Username != "ana" {
		t.Fatalf("session %+v", sess)
	}
	gotTok, gotSess, ok := m.Current("sid-1")
	if !ok || gotTok != tok {
		t.Fatalf("Current = (%q, ok=%v)", gotTok, ok)
	}
	if gotSess.ID != "u1" {
		t.Fatalf("user id not persisted for later requests: %+v", gotSess)
	}
}

func TestManagerLoginOpaqueTokenFallsBackToEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"opaque-session-token"}`))
	}))
	defer srv.Close()

	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	m := NewManager(api.New(srv.URL), store)

	sess, err := m.Login(context.Background(), "sid-1", "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Username != "ana" || sess.Role != "CLIENT" {
		t.Fatalf("fallback session %+v", sess)
	}
}

func TestManagerInvalidateDropsToken(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	m := NewManager(nil, store)
	if err := store.Bind("sid-1", "tok", domain.Session{Username: "ana"}); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	m.Invalidate("sid-1")
	if _, _, ok := m.Current("sid-1"); ok {
		t.Fatalf("session survived invalidation")
	}
}

func TestManagerCurrentEmptySid(t *testing.T) {
	m := NewManager(nil, nil)
	if _, _, ok := m.Current(""); ok {
		t.Fatalf("empty sid resolved to a session")
	}
}
