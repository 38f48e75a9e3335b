package ingest

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/kgraph/core"
)

// Inserter indexes a single document.
type Inserter interface {
	Insert(ctx context.Context, text string) error
}

// Source resolves the inserter on demand. Resolution may build the engine,
// so it happens inside the worker task rather than at submission time.
type Source interface {
	Inserter(ctx context.Context) (Inserter, error)
}

// Orchestrator queues documents for background indexing on a bounded
// worker pool.
type Orchestrator struct {
	source Source
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent indexing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}

		if o.pool != nil {
			o.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates an ingestion orchestrator backed by source.
func NewOrchestrator(source Source, opts ...Option) (*Orchestrator, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		source: source,
		pool:   pool,
		logger: slog.Default().With("component", "ingest"),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Submit queues a document for indexing and returns once the work is
// accepted by the pool. Indexing errors are logged with the document's
// source and filename but never reach the caller.
func (o *Orchestrator) Submit(text string, md *core.DocumentMetadata) error {
	if md == nil {
		md = &core.DocumentMetadata{}
	}
	source := md.Source
	filename := md.Filename
	enriched := EnrichText(text, md)

	return o.pool.Submit(func() {
		ctx := context.Background()
		start := time.Now()

		inserter, err := o.source.Inserter(ctx)
		if err != nil {
			o.logger.Error("engine unavailable, dropping document",
				"source", source, "filename", filename, "err", err)
			return
		}

		if err := inserter.Insert(ctx, enriched); err != nil {
			o.logger.Error("failed to index document",
				"source", source, "filename", filename, "err", err)
			return
		}

		o.logger.Info("document indexed",
			"source", source, "filename", filename, "elapsed", time.Since(start))
	})
}

// EnrichText prepends the summary and keyword metadata to the document
// body so they are indexed alongside it. Empty metadata fields are
// omitted; with no metadata at all the text is returned unchanged.
func EnrichText(text string, md *core.DocumentMetadata) string {
	if md == nil {
		return text
	}

	var parts []string
	if md.Summary != "" {
		parts = append(parts, "Summary: "+md.Summary)
	}
	if len(md.Keywords) > 0 {
		parts = append(parts, "Keywords: "+md.Keywords.Join())
	}
	if len(parts) == 0 {
		return text
	}

	parts = append(parts, text)
	return strings.Join(parts, "\n\n")
}

// Release shuts down the worker pool. Queued work that has not started
// is discarded. The orchestrator should not be used after Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
