package pinecone

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/kgraph/vector"
)

const (
	// DefaultBatchSize bounds upsert request size. Pinecone accepts at
	// most a few hundred vectors per request; 100 matches its guidance.
	DefaultBatchSize = 100

	// defaultTopK is used when a caller passes a non-positive bound.
	defaultTopK = 10
)

// Config holds everything needed to open a namespace-bound store.
type Config struct {
	// APIKey authenticates against the Pinecone API. Required.
	APIKey string

	// IndexName identifies the serverless index. Required.
	IndexName string

	// Namespace is the partition this store is bound to. Required.
	Namespace string

	// BatchSize caps vectors per upsert request. Defaults to
	// DefaultBatchSize when non-positive.
	BatchSize int
}

// Validate checks required fields and normalizes the batch size.
// All configuration problems surface here, before any connection
// is attempted.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyRequired
	}
	if c.IndexName == "" {
		return ErrIndexNameRequired
	}
	if c.Namespace == "" {
		return ErrNamespaceRequired
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	return nil
}

// Store implements vector.Store on a single Pinecone namespace.
type Store struct {
	conn      indexConn
	namespace string
	batchSize int
	logger    *slog.Logger
}

var _ vector.Store = (*Store)(nil)

// newStore is an internal constructor that returns the concrete type.
// Tests use it to inject a fake connection.
func newStore(conn indexConn, namespace string, batchSize int) *Store {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Store{
		conn:      conn,
		namespace: namespace,
		batchSize: batchSize,
		logger:    slog.Default().With("component", "pinecone-store", "namespace", namespace),
	}
}

// New opens a store bound to the configured namespace.
//
// Returns vector.Store interface to enforce abstraction.
func New(ctx context.Context, cfg Config) (vector.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	conn, err := dial(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := newStore(conn, cfg.Namespace, cfg.BatchSize)
	store.logger.Info("connected to index", "index", cfg.IndexName)
	return store, nil
}

// Namespace returns the partition key this store writes to.
func (s *Store) Namespace() string {
	return s.namespace
}

// Upsert writes records to the namespace in batches. Records with empty
// embeddings are dropped silently; a single malformed record must not abort
// ingestion of the rest. Each batch is an independent commit, so a failure
// leaves earlier batches in place.
func (s *Store) Upsert(ctx context.Context, records map[string]*vector.Record) error {
	batch := make([]upsertItem, 0, s.batchSize)

	for id, record := range records {
		if record == nil || len(record.Values) == 0 {
			s.logger.Debug("skipping record without embedding", "id", id)
			continue
		}

		batch = append(batch, upsertItem{
			Id:       id,
			Values:   record.Values,
			Metadata: vector.EncodeContent(record.Content, record.Metadata),
		})

		if len(batch) >= s.batchSize {
			if err := s.commit(ctx, batch); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		return s.commit(ctx, batch)
	}
	return nil
}

// commit sends one batch to the remote service.
func (s *Store) commit(ctx context.Context, batch []upsertItem) error {
	if err := s.conn.Upsert(ctx, batch); err != nil {
		s.logger.Error("failed to upsert batch", "count", len(batch), "err", err)
		return fmt.Errorf("pinecone: upsert %d vectors to %q: %w", len(batch), s.namespace, err)
	}
	s.logger.Debug("upserted batch", "count", len(batch))
	return nil
}

// Query runs a similarity search against the namespace, requesting stored
// values and metadata. The backend's score order is preserved. A remote
// failure is logged and degrades to an empty result set so that one
// partition's outage cannot fail a multi-partition retrieval.
func (s *Store) Query(ctx context.Context, values []float32, topK int) ([]*vector.Match, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	found, err := s.conn.Query(ctx, values, topK)
	if err != nil {
		s.logger.Error("vector query failed, returning no results", "topK", topK, "err", err)
		return []*vector.Match{}, nil
	}

	matches := make([]*vector.Match, 0, len(found))
	for _, m := range found {
		content, metadata := vector.DecodeContent(m.Metadata)
		matches = append(matches, &vector.Match{
			Id:       m.Id,
			Values:   m.Values,
			Score:    m.Score,
			Content:  content,
			Metadata: metadata,
		})
	}
	return matches, nil
}

// Delete removes records by ID. Best-effort cleanup: failures are logged,
// not propagated.
func (s *Store) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	if err := s.conn.Delete(ctx, ids); err != nil {
		s.logger.Error("failed to delete vectors", "count", len(ids), "err", err)
		return nil
	}
	s.logger.Debug("deleted vectors", "count", len(ids))
	return nil
}

// Close releases the index connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
