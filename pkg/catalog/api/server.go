package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

// Router assembles the full HTTP surface: middleware stack, health check,
// product routes and the authenticated current-user endpoint.
func Router(service catalog.Service, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", handleHealth)

	r.Mount("/products", NewProductHandler(service).Routes())
	if jwtSecret != "" {
		r.Mount("/user", NewAuthHandler(jwtSecret).Routes())
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}
