package memory

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

// Backend is an in-memory implementation of the catalog.BlobStore interface
type Backend struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string][]byte
	seq     int64
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		baseURL: "memory://bucket",
		objects: make(map[string][]byte),
	}
}

// Upload stores the file under folder/referenceID and returns a synthetic
// public URL. A nil file or nil content is a no-op.
func (b *Backend) Upload(ctx context.Context, file *catalog.Upload, folder, referenceID string) (string, error) {
	if file == nil || file.Content == nil {
		return "", nil
	}

	data, err := io.ReadAll(file.Content)
	if err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	name := fmt.Sprintf("%d%d_%s", time.Now().UnixNano(), b.seq, path.Base(file.Filename))
	key := fmt.Sprintf("%s/%s/%s", folder, referenceID, name)
	b.objects[key] = data

	return b.baseURL + "/" + key, nil
}

// Delete removes the blob the URL points to. Reports false without error
// when the URL is empty or the blob does not exist.
func (b *Backend) Delete(ctx context.Context, rawURL, folder, referenceID string) (bool, error) {
	if rawURL == "" {
		return false, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false, err
	}
	key := fmt.Sprintf("%s/%s/%s", folder, referenceID, path.Base(u.Path))

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[key]; !exists {
		return false, nil
	}

	delete(b.objects, key)
	return true, nil
}

// Exists reports whether a blob is stored at the key the URL maps to.
func (b *Backend) Exists(rawURL, folder, referenceID string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	key := fmt.Sprintf("%s/%s/%s", folder, referenceID, path.Base(u.Path))

	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.objects[key]
	return exists
}

// Len returns the number of stored blobs.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
