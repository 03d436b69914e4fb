package chromemdb

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"
)

// Hit is one similarity-search result. Distance is 1 - cosine similarity,
// so lower means more relevant.
type Hit struct {
	ID       int64
	Distance float64
}

// Index wraps a chromem-go collection keyed by stringified product id. The
// backing store is persistent, so the index survives process restarts.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewIndex opens (or creates) the persistent database at dbPath and the
// named collection. Pass inMemory=true for tests.
func NewIndex(dbPath, collectionName string, inMemory bool) (*Index, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	return &Index{db: db, collection: collection}, nil
}

// Upsert stores one document per product id, replacing any existing entry
// with the same id. ids, documents and vectors must be parallel slices.
// A failed batch may be partially applied; re-running indexing is
// idempotent per id.
func (x *Index) Upsert(ctx context.Context, ids []int64, documents []string, vectors [][]float32) error {
	if len(ids) != len(documents) || len(ids) != len(vectors) {
		return fmt.Errorf("mismatched batch: %d ids, %d documents, %d vectors", len(ids), len(documents), len(vectors))
	}
	if len(ids) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(ids))
	for i, id := range ids {
		docs[i] = chromem.Document{
			ID:        strconv.FormatInt(id, 10),
			Content:   documents[i],
			Embedding: vectors[i],
		}
	}

	if err := x.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

// Query returns up to topK hits ascending by distance. An empty collection
// yields no hits rather than an error.
func (x *Index) Query(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	count := x.collection.Count()
	if count == 0 || topK <= 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := x.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: vector,
		NResults:       topK,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		id, err := strconv.ParseInt(r.ID, 10, 64)
		if err != nil {
			// not a product document; skip rather than fail the query
			log.Warn().Str("id", r.ID).Msg("Skipping non-numeric index id")
			continue
		}
		hits = append(hits, Hit{ID: id, Distance: 1 - float64(r.Similarity)})
	}
	return hits, nil
}

// Count reports how many documents the collection holds.
func (x *Index) Count() int {
	return x.collection.Count()
}
