package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

// Store is an in-memory implementation of the catalog.DocumentStore
// interface, used in tests and local development.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]catalog.Record
}

// NewStore creates a new in-memory document store
func NewStore() *Store {
	return &Store{
		collections: make(map[string]map[string]catalog.Record),
	}
}

func (s *Store) collection(name string) map[string]catalog.Record {
	col, ok := s.collections[name]
	if !ok {
		col = make(map[string]catalog.Record)
		s.collections[name] = col
	}
	return col
}

// Create allocates a new id, writes it into the record under "id" and stores
// a copy of the record.
func (s *Store) Create(ctx context.Context, collection string, data catalog.Record) (catalog.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	doc := deepCopy(data)
	doc["id"] = id
	s.collection(collection)[id] = doc

	return deepCopy(doc), nil
}

// All returns a copy of every stored document.
func (s *Store) All(ctx context.Context, collection string) ([]catalog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col := s.collections[collection]
	records := make([]catalog.Record, 0, len(col))
	for _, doc := range col {
		records = append(records, deepCopy(doc))
	}
	return records, nil
}

// Get returns the document at id, or catalog.ErrDocumentNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) (catalog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, catalog.ErrDocumentNotFound
	}
	return deepCopy(doc), nil
}

// Update applies a field-path-wise partial update. Dotted paths address
// nested maps, creating intermediate maps as needed.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) (catalog.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, catalog.ErrDocumentNotFound
	}

	for path, value := range fields {
		if path == "id" {
			continue
		}
		setPath(doc, strings.Split(path, "."), value)
	}

	return deepCopy(doc), nil
}

// Delete removes the document. Deleting an absent document is not an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)
	return nil
}

// Query applies each condition as a comparison filter. Conditions with an
// empty field or an unrecognized operator are silently skipped.
func (s *Store) Query(ctx context.Context, collection string, conds []catalog.Condition) (map[string]catalog.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[string]catalog.Record)
	for id, doc := range s.collections[collection] {
		if matches(doc, conds) {
			results[id] = deepCopy(doc)
		}
	}
	return results, nil
}

// Len returns the number of documents in a collection.
func (s *Store) Len(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

func matches(doc catalog.Record, conds []catalog.Condition) bool {
	for _, c := range conds {
		if c.Field == "" {
			continue
		}

		actual, ok := lookupPath(doc, strings.Split(c.Field, "."))

		switch c.Op {
		case catalog.OpEqual:
			if !ok || compare(actual, c.Value) != 0 {
				return false
			}
		case catalog.OpNotEqual:
			if ok && compare(actual, c.Value) == 0 {
				return false
			}
		case catalog.OpLess:
			if !ok || compare(actual, c.Value) >= 0 {
				return false
			}
		case catalog.OpLessOrEqual:
			if !ok || compare(actual, c.Value) > 0 {
				return false
			}
		case catalog.OpGreater:
			if !ok || compare(actual, c.Value) <= 0 {
				return false
			}
		case catalog.OpGreaterOrEqual:
			if !ok || compare(actual, c.Value) < 0 {
				return false
			}
		case catalog.OpIn:
			if !ok || !containedIn(actual, c.Value) {
				return false
			}
		default:
			// unrecognized operator, skip the condition
		}
	}
	return true
}

// compare orders two scalar values: numbers numerically, everything else by
// string equality (returning 1 on mismatch).
func compare(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}

	if a == b {
		return 0
	}
	return 1
}

func containedIn(actual, set any) bool {
	items, ok := set.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if compare(actual, item) == 0 {
			return true
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func setPath(doc map[string]any, path []string, value any) {
	for len(path) > 1 {
		next, ok := doc[path[0]].(map[string]any)
		if !ok {
			next = make(map[string]any)
			doc[path[0]] = next
		}
		doc = next
		path = path[1:]
	}
	doc[path[0]] = value
}

func lookupPath(doc map[string]any, path []string) (any, bool) {
	for len(path) > 1 {
		next, ok := doc[path[0]].(map[string]any)
		if !ok {
			return nil, false
		}
		doc = next
		path = path[1:]
	}
	v, ok := doc[path[0]]
	return v, ok
}

func deepCopy(doc catalog.Record) catalog.Record {
	out := make(catalog.Record, len(doc))
	for k, v := range doc {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopy(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = copyValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}
