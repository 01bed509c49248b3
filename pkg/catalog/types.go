package catalog

import (
	"fmt"
	"strings"
)

// Collection and folder names used for product persistence.
const (
	ProductCollection = "products"
	ProductFolder     = "products"
)

// Record is a schemaless document as stored in the document store.
// The document id is always present under the "id" key.
type Record = map[string]any

// Product is the persisted representation of one product.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
}

// ProductFromRecord converts a document-store record into a Product.
func ProductFromRecord(rec Record) Product {
	p := Product{Images: []string{}}
	if v, ok := rec["id"].(string); ok {
		p.ID = v
	}
	if v, ok := rec["name"].(string); ok {
		p.Name = v
	}
	if v, ok := rec["description"].(string); ok {
		p.Description = &v
	}
	switch v := rec["price"].(type) {
	case float64:
		p.Price = v
	case int:
		p.Price = float64(v)
	case int32:
		p.Price = float64(v)
	case int64:
		p.Price = float64(v)
	}
	p.Images = imagesFromRecord(rec)
	return p
}

// imagesFromRecord reads the images list from a record, tolerating both
// []string and the []any the document stores decode into.
func imagesFromRecord(rec Record) []string {
	switch v := rec["images"].(type) {
	case []string:
		return v
	case []any:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				urls = append(urls, s)
			}
		}
		return urls
	default:
		return []string{}
	}
}

// Condition is a single query filter applied to a collection scan.
type Condition struct {
	Field string
	Op    string
	Value any
}

// Operators recognized by DocumentStore.Query. Conditions carrying anything
// else are skipped.
const (
	OpEqual          = "=="
	OpNotEqual       = "!="
	OpLess           = "<"
	OpLessOrEqual    = "<="
	OpGreater        = ">"
	OpGreaterOrEqual = ">="
	OpIn             = "in"
)

// CreateProductRequest carries a validated creation payload.
type CreateProductRequest struct {
	Name        string   `validate:"required,max=255"`
	Description *string  `validate:"omitempty"`
	Price       float64  `validate:"gte=0"`
	Images      []Upload `validate:"-"`
}

// UpdateProductRequest carries a validated partial update. Nil scalar fields
// are left untouched in the stored document.
type UpdateProductRequest struct {
	Name          *string  `validate:"omitempty,max=255"`
	Description   *string  `validate:"omitempty"`
	Price         *float64 `validate:"omitempty,gte=0"`
	Images        []Upload `validate:"-"`
	ReplaceImages bool
}

// ParseBoolToken resolves the replace_images form token. The accepted set
// mirrors common truthy/falsy form values; anything else is rejected.
func ParseBoolToken(token string) (bool, error) {
	switch strings.ToLower(token) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBoolToken, token)
	}
}
