package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer generates chat completions. It is used to synthesize answers
// from retrieved context.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends a system prompt and a user prompt to the model and
	// returns the generated text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GraphExtractor extracts knowledge-graph structure from text.
// Implementations must be thread-safe for concurrent use.
type GraphExtractor interface {
	// ExtractGraph analyzes text and extracts the entities it mentions and
	// the relations between them. Returns an empty graph if nothing is found.
	// Returns an error if extraction fails.
	ExtractGraph(ctx context.Context, text string) (*ExtractedGraph, error)
}

// ExtractedGraph is the structure a GraphExtractor finds in a piece of text.
type ExtractedGraph struct {
	Entities  []ExtractedEntity
	Relations []ExtractedRelation
}

// ExtractedEntity is an entity identified in text.
type ExtractedEntity struct {
	// Name is the entity identifier in lowercase, 1-4 words.
	// Example: "eiffel tower", "european commission"
	Name string

	// Type categorizes the entity (e.g., "organization", "place", "concept").
	Type string

	// Description summarizes what the text says about the entity.
	Description string
}

// ExtractedRelation is a directed relation between two extracted entities.
type ExtractedRelation struct {
	// Source and Target name the related entities. They should match the
	// Name of entities in the same ExtractedGraph.
	Source string
	Target string

	// Description summarizes the relation as stated in the text.
	Description string

	// Strength is a score from 1-10 indicating how strongly the text
	// supports the relation.
	Strength int
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Completer returns the chat completion service.
	Completer() Completer

	// GraphExtractor returns the graph extraction service.
	GraphExtractor() GraphExtractor

	// Close releases resources held by the provider and its services.
	Close() error
}
