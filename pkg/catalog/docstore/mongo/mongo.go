package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codebykenth/product-catalog/pkg/catalog"
)

// Connect initializes a MongoDB client and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// Store is a MongoDB implementation of the catalog.DocumentStore interface.
// Document ids are uuid strings stored as _id and mirrored under "id" in the
// document body.
type Store struct {
	db *mongo.Database
}

// NewStore creates a document store over the given database handle.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Create allocates a new id, writes it into the record under "id" and
// persists the full record.
func (s *Store) Create(ctx context.Context, collection string, data catalog.Record) (catalog.Record, error) {
	id := uuid.New().String()

	doc := bson.M{"_id": id, "id": id}
	for k, v := range data {
		if k == "_id" || k == "id" {
			continue
		}
		doc[k] = v
	}

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return nil, &catalog.DocumentError{Collection: collection, ID: id, Op: "create", Err: err}
	}

	return recordFromDoc(doc), nil
}

// All returns every document in the collection with its id merged into the
// returned data.
func (s *Store) All(ctx context.Context, collection string) ([]catalog.Record, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, &catalog.DocumentError{Collection: collection, Op: "all", Err: err}
	}
	defer cursor.Close(ctx)

	var records []catalog.Record
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, &catalog.DocumentError{Collection: collection, Op: "all", Err: err}
		}
		records = append(records, recordFromDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, &catalog.DocumentError{Collection: collection, Op: "all", Err: err}
	}

	return records, nil
}

// Get returns the document at id, or catalog.ErrDocumentNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) (catalog.Record, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrDocumentNotFound
		}
		return nil, &catalog.DocumentError{Collection: collection, ID: id, Op: "get", Err: err}
	}
	return recordFromDoc(doc), nil
}

// Update applies a field-path-wise partial update ($set semantics, dotted
// paths allowed) and returns the post-update snapshot.
func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) (catalog.Record, error) {
	set := bson.M{}
	for k, v := range fields {
		if k == "_id" || k == "id" {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		// Mongo rejects an empty $set; a no-op update is just a read.
		return s.Get(ctx, collection, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bson.M
	err := s.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalog.ErrDocumentNotFound
		}
		return nil, &catalog.DocumentError{Collection: collection, ID: id, Op: "update", Err: err}
	}
	return recordFromDoc(doc), nil
}

// Delete removes the document. Deleting an absent document is not an error.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return &catalog.DocumentError{Collection: collection, ID: id, Op: "delete", Err: err}
	}
	return nil
}

// Query applies each condition as a comparison filter and returns the
// matching documents keyed by id. Conditions with an empty field or an
// unrecognized operator are silently skipped.
func (s *Store) Query(ctx context.Context, collection string, conds []catalog.Condition) (map[string]catalog.Record, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filterFromConditions(conds))
	if err != nil {
		return nil, &catalog.DocumentError{Collection: collection, Op: "query", Err: err}
	}
	defer cursor.Close(ctx)

	results := make(map[string]catalog.Record)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, &catalog.DocumentError{Collection: collection, Op: "query", Err: err}
		}
		rec := recordFromDoc(doc)
		if id, ok := rec["id"].(string); ok {
			results[id] = rec
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, &catalog.DocumentError{Collection: collection, Op: "query", Err: err}
	}

	return results, nil
}

// filterFromConditions translates conditions into a bson filter document.
func filterFromConditions(conds []catalog.Condition) bson.M {
	filter := bson.M{}
	for _, c := range conds {
		if c.Field == "" {
			continue
		}

		var op string
		switch c.Op {
		case catalog.OpEqual:
			op = "$eq"
		case catalog.OpNotEqual:
			op = "$ne"
		case catalog.OpLess:
			op = "$lt"
		case catalog.OpLessOrEqual:
			op = "$lte"
		case catalog.OpGreater:
			op = "$gt"
		case catalog.OpGreaterOrEqual:
			op = "$gte"
		case catalog.OpIn:
			op = "$in"
		default:
			continue
		}

		clause, ok := filter[c.Field].(bson.M)
		if !ok {
			clause = bson.M{}
			filter[c.Field] = clause
		}
		clause[op] = c.Value
	}
	return filter
}

// recordFromDoc normalizes a decoded document: _id is dropped and mirrored
// under "id".
func recordFromDoc(doc bson.M) catalog.Record {
	rec := catalog.Record{}
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		rec[k] = v
	}
	if _, ok := rec["id"]; !ok {
		if id, ok := doc["_id"].(string); ok {
			rec["id"] = id
		}
	}
	// bson decodes arrays as primitive.A; keep records plain.
	if arr, ok := rec["images"].(bson.A); ok {
		rec["images"] = []any(arr)
	}
	return rec
}
