package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/poiesic/kgraph/ai"
	"github.com/poiesic/kgraph/core"
	"github.com/poiesic/kgraph/graphstore"
	"github.com/poiesic/kgraph/vector"
)

// Engine indexes documents into a knowledge graph backed by three vector
// partitions plus local topology storage, and answers queries against it.
type Engine struct {
	workdir       string
	provider      ai.AIProvider
	embedder      ai.Embedder
	completer     ai.Completer
	extractor     ai.GraphExtractor
	entities      vector.Store
	relationships vector.Store
	chunks        vector.Store
	graph         *graphstore.Store
	chunkSize     int
	chunkOverlap  int
	topK          int
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithChunking overrides the document splitting parameters.
func WithChunking(size, overlap int) Option {
	return func(e *Engine) error {
		if size > 0 {
			e.chunkSize = size
		}
		if overlap >= 0 && overlap < e.chunkSize {
			e.chunkOverlap = overlap
		}
		return nil
	}
}

// WithTopK overrides the per-partition result bound used during queries.
func WithTopK(topK int) Option {
	return func(e *Engine) error {
		if topK > 0 {
			e.topK = topK
		}
		return nil
	}
}

// New creates an engine from its collaborators. The three stores are the
// named per-domain bindings; each must already be bound to its partition.
func New(
	workdir string,
	provider ai.AIProvider,
	entities, relationships, chunks vector.Store,
	graph *graphstore.Store,
	opts ...Option,
) (*Engine, error) {
	if workdir == "" {
		return nil, ErrWorkdirRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if entities == nil || relationships == nil || chunks == nil {
		return nil, ErrStoreRequired
	}
	if graph == nil {
		return nil, ErrGraphStoreRequired
	}

	e := &Engine{
		workdir:       workdir,
		provider:      provider,
		embedder:      provider.Embedder(),
		completer:     provider.Completer(),
		extractor:     provider.GraphExtractor(),
		entities:      entities,
		relationships: relationships,
		chunks:        chunks,
		graph:         graph,
		chunkSize:     defaultChunkSize,
		chunkOverlap:  defaultChunkOverlap,
		topK:          10,
		logger:        slog.Default().With("component", "engine"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Workdir returns the engine's working directory.
func (e *Engine) Workdir() string {
	return e.workdir
}

// Insert indexes a document: splits it into chunks, embeds and upserts the
// chunks, extracts entities and relations per chunk, merges them into the
// graph topology, upserts their vectors, and records the document.
//
// Write failures propagate to the caller. Per-chunk extraction failures are
// logged and skipped so one bad chunk does not abort the whole document.
func (e *Engine) Insert(ctx context.Context, text string) error {
	pieces := splitText(text, e.chunkSize, e.chunkOverlap)
	if len(pieces) == 0 {
		return core.ErrEmptyDocument
	}

	docID := core.DocumentID(text)
	start := time.Now()
	e.logger.Info("indexing document", "doc", docID, "chunks", len(pieces))

	chunkIDs, err := e.insertChunks(ctx, docID, pieces)
	if err != nil {
		return err
	}

	entityIDs, relationIDs, err := e.insertGraph(ctx, docID, pieces)
	if err != nil {
		return err
	}

	doc := &core.Document{
		Id:          docID,
		Content:     text,
		ChunkIds:    chunkIDs,
		EntityIds:   entityIDs,
		RelationIds: relationIDs,
	}
	if err := e.graph.PutDocument(ctx, doc); err != nil {
		return fmt.Errorf("engine: persist document %s: %w", docID, err)
	}

	e.logger.Info("document indexed",
		"doc", docID,
		"chunks", len(chunkIDs),
		"entities", len(entityIDs),
		"relations", len(relationIDs),
		"elapsed", time.Since(start))
	return nil
}

// insertChunks embeds the chunk texts and upserts them to the chunk partition.
func (e *Engine) insertChunks(ctx context.Context, docID string, pieces []string) ([]string, error) {
	embeddings, err := e.embedder.EmbedTexts(ctx, pieces)
	if err != nil {
		return nil, fmt.Errorf("engine: embed %d chunks: %w", len(pieces), err)
	}
	if len(embeddings) != len(pieces) {
		return nil, fmt.Errorf("engine: embedder returned %d vectors for %d chunks", len(embeddings), len(pieces))
	}

	records := make(map[string]*vector.Record, len(pieces))
	chunkIDs := make([]string, 0, len(pieces))
	for i, piece := range pieces {
		id := core.ChunkID(piece)
		chunkIDs = append(chunkIDs, id)
		records[id] = &vector.Record{
			Id:      id,
			Values:  embeddings[i],
			Content: piece,
			Metadata: map[string]any{
				"doc_id":      docID,
				"chunk_index": i,
			},
		}
	}

	if err := e.chunks.Upsert(ctx, records); err != nil {
		return nil, err
	}
	return chunkIDs, nil
}

// insertGraph extracts entities and relations from each chunk, merges them
// into local topology, and upserts their vectors.
func (e *Engine) insertGraph(ctx context.Context, docID string, pieces []string) ([]string, []string, error) {
	entities := make(map[string]*core.Entity)
	relations := make(map[string]*core.Relation)

	for i, piece := range pieces {
		extracted, err := e.extractor.ExtractGraph(ctx, piece)
		if err != nil {
			e.logger.Warn("graph extraction failed for chunk, skipping",
				"doc", docID, "chunk", i, "err", err)
			continue
		}

		for _, ent := range extracted.Entities {
			merged, err := e.graph.MergeEntity(ctx, &core.Entity{
				Name:        ent.Name,
				Type:        ent.Type,
				Description: ent.Description,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("engine: merge entity %q: %w", ent.Name, err)
			}
			entities[merged.Id] = merged
		}

		for _, rel := range extracted.Relations {
			merged, err := e.graph.MergeRelation(ctx, &core.Relation{
				Source:      rel.Source,
				Target:      rel.Target,
				Description: rel.Description,
				Strength:    rel.Strength,
			})
			if err != nil {
				return nil, nil, fmt.Errorf("engine: merge relation %s -> %s: %w", rel.Source, rel.Target, err)
			}
			relations[merged.Id] = merged
		}
	}

	entityIDs, err := e.upsertEntities(ctx, docID, entities)
	if err != nil {
		return nil, nil, err
	}
	relationIDs, err := e.upsertRelations(ctx, docID, relations)
	if err != nil {
		return nil, nil, err
	}
	return entityIDs, relationIDs, nil
}

func (e *Engine) upsertEntities(ctx context.Context, docID string, entities map[string]*core.Entity) ([]string, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(entities))
	texts := make([]string, 0, len(entities))
	ordered := make([]*core.Entity, 0, len(entities))
	for id, ent := range entities {
		ids = append(ids, id)
		texts = append(texts, ent.Name+"\n"+ent.Description)
		ordered = append(ordered, ent)
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("engine: embed %d entities: %w", len(texts), err)
	}

	records := make(map[string]*vector.Record, len(ordered))
	for i, ent := range ordered {
		records[ids[i]] = &vector.Record{
			Id:      ids[i],
			Values:  embeddings[i],
			Content: texts[i],
			Metadata: map[string]any{
				"doc_id":      docID,
				"entity_name": ent.Name,
				"entity_type": ent.Type,
			},
		}
	}

	if err := e.entities.Upsert(ctx, records); err != nil {
		return nil, err
	}
	return ids, nil
}

func (e *Engine) upsertRelations(ctx context.Context, docID string, relations map[string]*core.Relation) ([]string, error) {
	if len(relations) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(relations))
	texts := make([]string, 0, len(relations))
	ordered := make([]*core.Relation, 0, len(relations))
	for id, rel := range relations {
		ids = append(ids, id)
		texts = append(texts, rel.Source+" -> "+rel.Target+"\n"+rel.Description)
		ordered = append(ordered, rel)
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("engine: embed %d relations: %w", len(texts), err)
	}

	records := make(map[string]*vector.Record, len(ordered))
	for i, rel := range ordered {
		records[ids[i]] = &vector.Record{
			Id:      ids[i],
			Values:  embeddings[i],
			Content: texts[i],
			Metadata: map[string]any{
				"doc_id": docID,
				"source": rel.Source,
				"target": rel.Target,
			},
		}
	}

	if err := e.relationships.Upsert(ctx, records); err != nil {
		return nil, err
	}
	return ids, nil
}

// Query answers a natural-language question. The mode selects which
// partitions contribute context: local uses entities (plus their graph
// neighborhood), global uses relationships, hybrid uses both. Text chunks
// contribute in every mode. Partition outages degrade to missing sections
// rather than failures; only embedding or completion errors propagate.
func (e *Engine) Query(ctx context.Context, query string, mode core.QueryMode) (string, error) {
	values, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		return "", fmt.Errorf("engine: embed query: %w", err)
	}

	var sections []string

	if mode == core.QueryModeLocal || mode == core.QueryModeHybrid {
		if section := e.entityContext(ctx, values); section != "" {
			sections = append(sections, section)
		}
	}
	if mode == core.QueryModeGlobal || mode == core.QueryModeHybrid {
		if section := e.relationContext(ctx, values); section != "" {
			sections = append(sections, section)
		}
	}
	if section := e.chunkContext(ctx, values); section != "" {
		sections = append(sections, section)
	}

	answer, err := e.completer.Complete(ctx, answerSystemPrompt, buildAnswerPrompt(query, sections))
	if err != nil {
		return "", fmt.Errorf("engine: generate answer: %w", err)
	}
	return answer, nil
}

// entityContext retrieves matching entities and their graph neighborhood.
func (e *Engine) entityContext(ctx context.Context, values []float32) string {
	matches, err := e.entities.Query(ctx, values, e.topK)
	if err != nil || len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("-- Entities --\n")
	for _, m := range matches {
		b.WriteString(m.Content)
		b.WriteString("\n")

		name, _ := m.Metadata["entity_name"].(string)
		if name == "" {
			continue
		}
		neighbors, err := e.graph.RelationsForEntity(ctx, name)
		if err != nil {
			e.logger.Warn("failed to load entity neighborhood", "entity", name, "err", err)
			continue
		}
		for _, rel := range neighbors {
			b.WriteString("  related: " + rel.Source + " -> " + rel.Target + ": " + rel.Description + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// relationContext retrieves matching relation descriptions.
func (e *Engine) relationContext(ctx context.Context, values []float32) string {
	matches, err := e.relationships.Query(ctx, values, e.topK)
	if err != nil || len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("-- Relations --\n")
	for _, m := range matches {
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// chunkContext retrieves matching source text chunks.
func (e *Engine) chunkContext(ctx context.Context, values []float32) string {
	matches, err := e.chunks.Query(ctx, values, e.topK)
	if err != nil || len(matches) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("-- Source text --\n")
	for _, m := range matches {
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// DeleteDocument removes a document record and its chunk vectors. Entity
// and relation vectors are left in place since they may be shared with
// other documents. Vector deletion is best-effort by contract.
func (e *Engine) DeleteDocument(ctx context.Context, docID string) error {
	doc, err := e.graph.GetDocument(ctx, docID)
	if err != nil {
		return err
	}

	if err := e.chunks.Delete(ctx, doc.ChunkIds...); err != nil {
		e.logger.Warn("failed to delete chunk vectors", "doc", docID, "err", err)
	}

	return e.graph.DeleteDocument(ctx, docID)
}

// Close releases the engine's stores and provider.
func (e *Engine) Close() error {
	var firstErr error
	for _, store := range []vector.Store{e.entities, e.relationships, e.chunks} {
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := e.graph.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := e.provider.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
