package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

// MessageResponse is the envelope for operations returning only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse is the envelope for creation responses.
type DataResponse struct {
	Message string          `json:"message"`
	Data    catalog.Product `json:"data"`
}

// UpdatedResponse is the envelope for update responses.
type UpdatedResponse struct {
	Message string          `json:"message"`
	Updated catalog.Product `json:"updated"`
}

// ErrorResponse is the envelope for failed requests. Errors carries
// field-level messages for validation failures.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// renderError maps a service error onto the HTTP error taxonomy: field-level
// validation failures, not-found, and everything else as a server error.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *catalog.ValidationError
	switch {
	case errors.As(err, &vErr):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ErrorResponse{Message: "Validation failed", Errors: vErr.Fields})
	case errors.Is(err, catalog.ErrProductNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, ErrorResponse{Message: "Product not found"})
	default:
		slog.Error("Request failed", "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Message: "Internal server error"})
	}
}
