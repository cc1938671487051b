package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	pkgauth "github.com/matiasleandrokruk/tripgen/pkg/auth"
)

// TokenIssuer signs tokens for a client id. *pkgauth.Issuer satisfies it.
type TokenIssuer interface {
	GenerateJWT(clientID string) (string, time.Time, error)
}

// AuthHandler exchanges the configured client credentials for a JWT.
type AuthHandler struct {
	issuer     TokenIssuer
	clientID   string
	secretHash string
}

// NewAuthHandler creates an AuthHandler for one client. secretHash is a
// bcrypt hash of the client secret.
func NewAuthHandler(issuer TokenIssuer, clientID, secretHash string) *AuthHandler {
	return &AuthHandler{issuer: issuer, clientID: clientID, secretHash: secretHash}
}

// TokenRequest is the request body for POST /auth/token.
type TokenRequest struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// TokenResponse is returned after a successful exchange.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Token handles POST /auth/token.
//
// Response codes:
//   - 200 OK: credentials accepted
//   - 400 Bad Request: invalid JSON or missing fields
//   - 413 Request Entity Too Large: body over MaxBodyBytes
//   - 401 Unauthorized: unknown client or wrong secret (not distinguished)
//   - 500 Internal Server Error: signing failed
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		writeError(w, http.StatusBadRequest, "clientId and clientSecret are required")
		return
	}

	idOK := subtle.ConstantTimeCompare([]byte(req.ClientID), []byte(h.clientID)) == 1
	secretOK := pkgauth.VerifyPassword(h.secretHash, req.ClientSecret)
	if !idOK || !secretOK {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := h.issuer.GenerateJWT(req.ClientID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token, ExpiresAt: expiresAt})
}
