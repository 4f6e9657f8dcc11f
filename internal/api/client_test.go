package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoSetsBearerHeader(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.FetchCart(context.Background(), "tok-123"); err != nil {
		t.Fatalf("FetchCart: %v", err)
	}
	if got != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want %q", got, "Bearer tok-123")
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	if _, err := c.Products(context.Background(), ""); err != nil {
		t.Fatalf("Products: %v", err)
	}
	if got != "" {
		t.Fatalf("Authorization = %q, want empty", got)
	}
}

func TestDo401BecomesErrUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.FetchCart(context.Background(), "stale")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestDoExtractsServerMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"stock agotado"}`, "stock agotado"},
		{"message field", `{"message":"bad slot"}`, "bad slot"},
		{"mensaje field", `{"mensaje":"horario ocupado"}`, "horario ocupado"},
		{"garbage body", `<html>boom</html>`, "the request conflicts with the current state"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			err := c.ValidateAvailability(context.Background(), "t", AppointmentRequest{})
			var ae *APIError
			if !errors.As(err, &ae) {
				t.Fatalf("err = %v, want *APIError", err)
			}
			if ae.Message != tc.want {
				t.Fatalf("Message = %q, want %q", ae.Message, tc.want)
			}
			if !IsConflict(err) {
				t.Fatalf("IsConflict(%v) = false", err)
			}
		})
	}
}

func TestDoNotFoundClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Invoice(context.Background(), "t", "nope")
	if !IsNotFound(err) {
		t.Fatalf("IsNotFound(%v) = false", err)
	}
	if IsConflict(err) {
		t.Fatalf("IsConflict(%v) = true", err)
	}
}

func TestDoConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL)
	_, err := c.FetchCart(context.Background(), "t")
	if !IsNetwork(err) {
		t.Fatalf("IsNetwork(%v) = false", err)
	}
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if ne.Timeout {
		t.Fatalf("connection refused classified as timeout")
	}
}

func TestResourceOf(t *testing.T) {
	cases := map[string]string{
		"/cart":                 "cart",
		"/cart/items/p1":        "cart",
		"/appointments/x/edit":  "appointments",
		"/products?active=true": "products",
		"/":                     "api",
	}
	for path, want := range cases {
		if got := resourceOf(path); got != want {
			t.Errorf("resourceOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoginReturnsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"token":"jwt-abc"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	tok, err := c.Login(context.Background(), "a@b.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tok != "jwt-abc" {
		t.Fatalf("token = %q, want %q", tok, "jwt-abc")
	}
}
