package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
)

// AuthHandler exposes the current-user endpoint behind token verification.
type AuthHandler struct {
	tokenAuth *jwtauth.JWTAuth
}

// NewAuthHandler creates an auth handler with an HS256 verifier.
func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{
		tokenAuth: jwtauth.New("HS256", []byte(secret), nil),
	}
}

// Routes returns the authenticated routes
func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(jwtauth.Verifier(h.tokenAuth))
	r.Use(jwtauth.Authenticator)
	r.Get("/", h.CurrentUser)

	return r
}

// CurrentUser returns the claims of the verified token
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	render.JSON(w, r, claims)
}
