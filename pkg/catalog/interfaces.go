package catalog

import (
	"context"
	"io"
)

// Upload is one file supplied with a create or update request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// BlobStore defines the interface for object storage backends.
//
// Keys follow the layout folder/referenceID/filename. Upload assigns a
// collision-resistant filename and returns a publicly readable URL; Delete
// derives the key back from such a URL.
type BlobStore interface {
	// Upload stores the file under folder/referenceID and returns its public
	// URL. A nil-content upload is a no-op returning an empty URL.
	Upload(ctx context.Context, file *Upload, folder, referenceID string) (string, error)

	// Delete removes the blob a previously returned URL points to. It reports
	// false without error when the URL is empty or the blob does not exist.
	Delete(ctx context.Context, url, folder, referenceID string) (bool, error)
}

// DocumentStore defines the interface for schemaless document persistence
// addressed by collection name and document id.
type DocumentStore interface {
	// Create allocates a new id, stores it inside the record under "id",
	// writes the full record and returns it.
	Create(ctx context.Context, collection string, data Record) (Record, error)

	// All returns every document in the collection with its id merged into
	// the returned data. Order is whatever the underlying store yields.
	All(ctx context.Context, collection string) ([]Record, error)

	// Get returns the document at id, or ErrDocumentNotFound.
	Get(ctx context.Context, collection, id string) (Record, error)

	// Update applies a field-path-wise partial update (dotted paths allowed)
	// and returns the post-update snapshot, or ErrDocumentNotFound.
	Update(ctx context.Context, collection, id string, fields map[string]any) (Record, error)

	// Delete removes the document. Deleting an absent document is not an error.
	Delete(ctx context.Context, collection, id string) error

	// Query applies each condition as a comparison filter and returns the
	// matching documents keyed by id. Malformed conditions are skipped.
	Query(ctx context.Context, collection string, conds []Condition) (map[string]Record, error)
}

// Service is the product resource controller.
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
