package vector

import "context"

// Record is a vector to be written to a Store. Content travels with the
// record so results can be rendered without a secondary lookup.
type Record struct {
	// Id uniquely identifies the record within its partition.
	Id string

	// Values is the embedding. Records with an empty embedding are
	// silently skipped by Upsert.
	Values []float32

	// Content is the human-readable payload behind the vector.
	Content string

	// Metadata holds additional attributes. Values must be JSON-compatible
	// scalars, since backends carry them in a metadata side-channel.
	Metadata map[string]any
}

// Match is a single similarity-search result.
type Match struct {
	Id string

	// Values is the stored embedding, when the backend returns it.
	Values []float32

	// Score is the similarity score as reported by the backend.
	Score float32

	// Content is the payload recovered from the metadata side-channel.
	Content string

	// Metadata is the remaining attributes, with the content key removed.
	Metadata map[string]any
}

// Store provides vector storage for a single partition.
// Implementations must be thread-safe and support concurrent access.
type Store interface {
	// Namespace returns the partition key this store writes to.
	Namespace() string

	// Upsert writes records in batches. Records with empty embeddings are
	// dropped without error. If a batch commit fails the error propagates;
	// batches already committed are not rolled back.
	Upsert(ctx context.Context, records map[string]*Record) error

	// Query runs a similarity search and returns up to topK matches in the
	// backend's score order. Remote failures degrade to an empty result,
	// never an error.
	Query(ctx context.Context, values []float32, topK int) ([]*Match, error)

	// Delete removes records by ID. Best-effort: failures are logged,
	// not returned.
	Delete(ctx context.Context, ids ...string) error

	// Close releases the backend connection.
	Close() error
}
