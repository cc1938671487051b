package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matiasleandrokruk/tripgen/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/tripgen/internal/api/middleware"
	pkgauth "github.com/matiasleandrokruk/tripgen/pkg/auth"
)

// ===== HELPER =====

func newIssuer(t *testing.T, expiry time.Duration) *pkgauth.Issuer {
	t.Helper()
	iss, err := pkgauth.NewIssuer("test-secret-key-32-chars-min!!!", expiry)
	if err != nil {
		t.Fatalf("NewIssuer() error = %v", err)
	}
	return iss
}

// nextHandler returns an http.Handler that sets called=true and records the context.
func nextHandler(called *bool, capturedCtx *context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if capturedCtx != nil {
			*capturedCtx = r.Context()
		}
		w.WriteHeader(http.StatusOK)
	})
}

// makeRequest creates a GET request with an optional raw Authorization header.
func makeRequest(authorization string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/batches", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

// ===== TESTS: REJECTED =====

func TestAuth_Rejects(t *testing.T) {
	t.Parallel()

	iss := newIssuer(t, time.Hour)
	valid, _, err := iss.GenerateJWT("mobile-app")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	cases := map[string]string{
		"no header":     "",
		"empty bearer":  "Bearer ",
		"wrong scheme":  "Basic dXNlcjpwYXNz",
		"lowercase":     "bearer " + valid,
		"garbage token": "Bearer not.a.real.jwt",
		"tampered":      "Bearer " + valid[:len(valid)-10] + "TAMPERED!!",
	}
	for name, header := range cases {
		called := false
		handler := middleware.Auth(iss)(nextHandler(&called, nil))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, makeRequest(header))

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d; want %d", name, rr.Code, http.StatusUnauthorized)
		}
		if called {
			t.Errorf("%s: next handler should NOT be called", name)
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: Content-Type = %q", name, ct)
		}
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	t.Parallel()

	// Sign with another issuer whose expiry is already behind us.
	expired, _, err := newIssuer(t, time.Nanosecond).GenerateJWT("mobile-app")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	time.Sleep(1100 * time.Millisecond)

	called := false
	rr := httptest.NewRecorder()
	middleware.Auth(newIssuer(t, time.Hour))(nextHandler(&called, nil)).ServeHTTP(rr, makeRequest("Bearer "+expired))

	if rr.Code != http.StatusUnauthorized || called {
		t.Errorf("status = %d, called = %v; want 401 and not called", rr.Code, called)
	}
}

// ===== TESTS: ACCEPTED =====

func TestAuth_ValidToken_InjectsClientID(t *testing.T) {
	t.Parallel()

	iss := newIssuer(t, time.Hour)
	token, _, err := iss.GenerateJWT("mobile-app")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	called := false
	var ctx context.Context
	rr := httptest.NewRecorder()
	middleware.Auth(iss)(nextHandler(&called, &ctx)).ServeHTTP(rr, makeRequest("Bearer "+token))

	if rr.Code != http.StatusOK || !called {
		t.Fatalf("status = %d, called = %v; want 200 and called", rr.Code, called)
	}
	if got := ctxkeys.String(ctx, ctxkeys.ClientID); got != "mobile-app" {
		t.Errorf("client id in context = %q; want mobile-app", got)
	}
}
