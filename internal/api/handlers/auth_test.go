package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	pkgauth "github.com/matiasleandrokruk/tripgen/pkg/auth"
)

type stubIssuer struct {
	err     error
	lastFor string
}

func (s *stubIssuer) GenerateJWT(clientID string) (string, time.Time, error) {
	s.lastFor = clientID
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "signed.jwt.token", time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func newTestAuthHandler(t *testing.T, issuer TokenIssuer) *AuthHandler {
	t.Helper()
	hash, err := pkgauth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return NewAuthHandler(issuer, "mobile-app", hash)
}

func TestAuthHandler_Token_200(t *testing.T) {
	t.Parallel()

	issuer := &stubIssuer{}
	h := newTestAuthHandler(t, issuer)

	rr := postJSON(t, h.Token, `{"clientId":"mobile-app","clientSecret":"s3cret"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp TokenResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "signed.jwt.token" || resp.ExpiresAt.Year() != 2030 {
		t.Errorf("unexpected response %+v", resp)
	}
	if issuer.lastFor != "mobile-app" {
		t.Errorf("token issued for %q", issuer.lastFor)
	}
}

func TestAuthHandler_Token_Errors(t *testing.T) {
	t.Parallel()

	h := newTestAuthHandler(t, &stubIssuer{})
	cases := map[string]struct {
		body string
		want int
	}{
		"invalid json":   {`{`, http.StatusBadRequest},
		"missing secret": {`{"clientId":"mobile-app"}`, http.StatusBadRequest},
		"wrong client":   {`{"clientId":"other","clientSecret":"s3cret"}`, http.StatusUnauthorized},
		"wrong secret":   {`{"clientId":"mobile-app","clientSecret":"nope"}`, http.StatusUnauthorized},
		"oversized body": {`{"clientId":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, http.StatusRequestEntityTooLarge},
	}
	for name, tc := range cases {
		if rr := postJSON(t, h.Token, tc.body); rr.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", name, tc.want, rr.Code)
		}
	}

	failing := newTestAuthHandler(t, &stubIssuer{err: errors.New("sign")})
	if rr := postJSON(t, failing.Token, `{"clientId":"mobile-app","clientSecret":"s3cret"}`); rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on signing failure, got %d", rr.Code)
	}
}
