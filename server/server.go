package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/poiesic/kgraph/core"
)

// Engine answers natural-language queries and removes indexed documents.
type Engine interface {
	Query(ctx context.Context, query string, mode core.QueryMode) (string, error)
	DeleteDocument(ctx context.Context, docID string) error
}

// EngineSource yields the query engine, building it on first use.
type EngineSource interface {
	Engine(ctx context.Context) (Engine, error)
	Ready() bool
	Workdir() string
}

// Ingestor queues a document for background indexing.
type Ingestor interface {
	Submit(text string, md *core.DocumentMetadata) error
}

// Server handles the HTTP API.
type Server struct {
	source   EngineSource
	ingestor Ingestor
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a server over the given engine source and ingestor.
func New(source EngineSource, ingestor Ingestor, opts ...Option) (*Server, error) {
	if source == nil {
		return nil, ErrEngineSourceRequired
	}
	if ingestor == nil {
		return nil, ErrIngestorRequired
	}

	s := &Server{
		source:   source,
		ingestor: ingestor,
		logger:   slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler returns the HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ingest", s.handleIngest)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("DELETE /documents/{id}", s.handleDelete)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleHealth)
	return mux
}
