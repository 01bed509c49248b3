package catalog

import (
	"context"
	"errors"
	"fmt"
)

// service implements the Service interface
type service struct {
	documents  DocumentStore
	blobs      BlobStore
	collection string
	folder     string
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithDocumentStore sets the document store for the service
func WithDocumentStore(store DocumentStore) Option {
	return func(s *service) {
		s.documents = store
	}
}

// WithBlobStore sets the blob store for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobs = store
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		collection: ProductCollection,
		folder:     ProductFolder,
	}

	for _, option := range options {
		option(s)
	}

	if s.documents == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if s.blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// ListProducts returns every stored product. Order is whatever the document
// store yields.
func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	records, err := s.documents.All(ctx, s.collection)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(records))
	for _, rec := range records {
		products = append(products, ProductFromRecord(rec))
	}
	return products, nil
}

// GetProduct returns the product at id, or ErrProductNotFound.
func (s *service) GetProduct(ctx context.Context, id string) (Product, error) {
	rec, err := s.documents.Get(ctx, s.collection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return ProductFromRecord(rec), nil
}

// CreateProduct persists a new product. The document is created first so the
// images upload under an id that already exists, then the uploaded URL list
// is written back.
func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (Product, error) {
	data := Record{
		"name":   req.Name,
		"price":  req.Price,
		"images": []string{},
	}
	if req.Description != nil {
		data["description"] = *req.Description
	}

	rec, err := s.documents.Create(ctx, s.collection, data)
	if err != nil {
		return Product{}, err
	}
	id, _ := rec["id"].(string)

	if len(req.Images) == 0 {
		return ProductFromRecord(rec), nil
	}

	urls := make([]string, 0, len(req.Images))
	for i := range req.Images {
		url, err := s.blobs.Upload(ctx, &req.Images[i], s.folder, id)
		if err != nil {
			return Product{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		if url != "" {
			urls = append(urls, url)
		}
	}

	rec, err = s.documents.Update(ctx, s.collection, id, map[string]any{"images": urls})
	if err != nil {
		return Product{}, err
	}
	return ProductFromRecord(rec), nil
}

// UpdateProduct applies a partial update and reconciles the image blobs.
//
// Existing images are cleared only when the replace flag is set AND new files
// were actually supplied; a bare replace flag leaves the list untouched.
func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (Product, error) {
	current, err := s.documents.Get(ctx, s.collection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}

	images := imagesFromRecord(current)

	if len(req.Images) > 0 && req.ReplaceImages {
		for _, url := range images {
			if _, err := s.blobs.Delete(ctx, url, s.folder, id); err != nil {
				return Product{}, err
			}
		}
		images = []string{}
	}

	for i := range req.Images {
		url, err := s.blobs.Upload(ctx, &req.Images[i], s.folder, id)
		if err != nil {
			return Product{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		if url != "" {
			images = append(images, url)
		}
	}

	fields := map[string]any{"images": images}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}

	rec, err := s.documents.Update(ctx, s.collection, id, fields)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return Product{}, ErrProductNotFound
		}
		return Product{}, err
	}
	return ProductFromRecord(rec), nil
}

// DeleteProduct removes the product's image blobs and then its document.
// Blobs go first so an interrupted delete cannot leave reachable URLs behind;
// there is no transaction spanning the two stores.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	rec, err := s.documents.Get(ctx, s.collection, id)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	for _, url := range imagesFromRecord(rec) {
		if _, err := s.blobs.Delete(ctx, url, s.folder, id); err != nil {
			return err
		}
	}

	return s.documents.Delete(ctx, s.collection, id)
}
