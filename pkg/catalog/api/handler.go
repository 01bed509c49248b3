package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

// ProductHandler handles HTTP requests for products using pkg/catalog
type ProductHandler struct {
	service  catalog.Service
	validate *validator.Validate
}

// NewProductHandler creates a new product handler
func NewProductHandler(service catalog.Service) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// Routes returns the routes for products
func (h *ProductHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListProducts)
	r.Post("/", h.CreateProduct)
	r.Get("/{id}", h.GetProduct)
	r.Post("/{id}/update", h.UpdateProduct)
	r.Delete("/{id}", h.DeleteProduct)

	return r
}

// ListProducts returns every stored product
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, products)
}

// GetProduct retrieves a product by ID
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.JSON(w, r, product)
}

// CreateProduct creates a new product from a multipart payload
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, closeFiles, err := parseCreateRequest(r, h.validate)
	if err != nil {
		renderError(w, r, err)
		return
	}
	defer closeFiles()

	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create product", "error", err)
		renderError(w, r, err)
		return
	}

	slog.Info("Product created", "product_id", product.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, DataResponse{Message: "Product created successfully", Data: product})
}

// UpdateProduct applies a partial update to a product
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, closeFiles, err := parseUpdateRequest(r, h.validate)
	if err != nil {
		renderError(w, r, err)
		return
	}
	defer closeFiles()

	product, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		slog.Error("Failed to update product", "product_id", id, "error", err)
		renderError(w, r, err)
		return
	}

	slog.Info("Product updated", "product_id", id)
	render.JSON(w, r, UpdatedResponse{Message: "Product updated successfully", Updated: product})
}

// DeleteProduct removes a product and its image blobs
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		slog.Error("Failed to delete product", "product_id", id, "error", err)
		renderError(w, r, err)
		return
	}

	slog.Info("Product deleted", "product_id", id)
	render.JSON(w, r, MessageResponse{Message: "Product deleted successfully"})
}
