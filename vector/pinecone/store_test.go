package pinecone

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/poiesic/kgraph/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn implements indexConn for testing.
type fakeConn struct {
	upserts     [][]upsertItem
	upsertErr   error
	failOnBatch int // 1-based batch number to fail on, 0 means use upsertErr for all
	queryResult []queryMatch
	queryErr    error
	deleted     [][]string
	deleteErr   error
	closed      bool
}

func (f *fakeConn) Upsert(ctx context.Context, items []upsertItem) error {
	batch := make([]upsertItem, len(items))
	copy(batch, items)
	f.upserts = append(f.upserts, batch)

	if f.failOnBatch > 0 && len(f.upserts) == f.failOnBatch {
		return errors.New("upsert failed")
	}
	if f.failOnBatch == 0 {
		return f.upsertErr
	}
	return nil
}

func (f *fakeConn) Query(ctx context.Context, values []float32, topK int) ([]queryMatch, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryResult, nil
}

func (f *fakeConn) Delete(ctx context.Context, ids []string) error {
	f.deleted = append(f.deleted, ids)
	return f.deleteErr
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func makeRecords(n int) map[string]*vector.Record {
	records := make(map[string]*vector.Record, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("rec-%03d", i)
		records[id] = &vector.Record{
			Id:      id,
			Values:  []float32{float32(i), 1.0},
			Content: fmt.Sprintf("content %d", i),
		}
	}
	return records
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid",
			cfg:  Config{APIKey: "key", IndexName: "idx", Namespace: "ns"},
		},
		{
			name:    "missing api key",
			cfg:     Config{IndexName: "idx", Namespace: "ns"},
			wantErr: ErrAPIKeyRequired,
		},
		{
			name:    "missing index name",
			cfg:     Config{APIKey: "key", Namespace: "ns"},
			wantErr: ErrIndexNameRequired,
		},
		{
			name:    "missing namespace",
			cfg:     Config{APIKey: "key", IndexName: "idx"},
			wantErr: ErrNamespaceRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_DefaultsBatchSize(t *testing.T) {
	cfg := Config{APIKey: "key", IndexName: "idx", Namespace: "ns"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)

	cfg = Config{APIKey: "key", IndexName: "idx", Namespace: "ns", BatchSize: -5}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
}

func TestStore_Upsert_Batches(t *testing.T) {
	conn := &fakeConn{}
	store := newStore(conn, "ns", 100)

	records := makeRecords(250)
	require.NoError(t, store.Upsert(context.Background(), records))

	require.Len(t, conn.upserts, 3)

	seen := map[string]bool{}
	total := 0
	for _, batch := range conn.upserts {
		assert.LessOrEqual(t, len(batch), 100)
		for _, item := range batch {
			seen[item.Id] = true
			total++
		}
	}
	assert.Equal(t, 250, total)
	for id := range records {
		assert.True(t, seen[id], "record %s was never upserted", id)
	}
}

func TestStore_Upsert_SkipsEmptyEmbeddings(t *testing.T) {
	conn := &fakeConn{}
	store := newStore(conn, "ns", 100)

	records := makeRecords(9)
	records["rec-bad"] = &vector.Record{Id: "rec-bad", Content: "no embedding"}
	records["rec-nil"] = nil

	require.NoError(t, store.Upsert(context.Background(), records))

	require.Len(t, conn.upserts, 1)
	assert.Len(t, conn.upserts[0], 9)
	for _, item := range conn.upserts[0] {
		assert.NotEqual(t, "rec-bad", item.Id)
	}
}

func TestStore_Upsert_PropagatesFailure(t *testing.T) {
	conn := &fakeConn{upsertErr: errors.New("quota exceeded")}
	store := newStore(conn, "ns", 100)

	err := store.Upsert(context.Background(), makeRecords(10))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestStore_Upsert_MidBatchFailureStopsEarly(t *testing.T) {
	conn := &fakeConn{failOnBatch: 2}
	store := newStore(conn, "ns", 100)

	err := store.Upsert(context.Background(), makeRecords(250))

	require.Error(t, err)
	assert.Len(t, conn.upserts, 2)
}

func TestStore_Upsert_EncodesContent(t *testing.T) {
	conn := &fakeConn{}
	store := newStore(conn, "ns", 100)

	records := map[string]*vector.Record{
		"rec-1": {
			Id:       "rec-1",
			Values:   []float32{0.1},
			Content:  "the content",
			Metadata: map[string]any{"doc_id": "doc-1"},
		},
	}
	require.NoError(t, store.Upsert(context.Background(), records))

	require.Len(t, conn.upserts, 1)
	require.Len(t, conn.upserts[0], 1)

	metadata := conn.upserts[0][0].Metadata
	assert.Equal(t, "the content", metadata["__content__"])
	assert.Equal(t, "doc-1", metadata["doc_id"])
}

func TestStore_Query_DecodesMatches(t *testing.T) {
	conn := &fakeConn{
		queryResult: []queryMatch{
			{Id: "a", Score: 0.9, Metadata: map[string]any{"__content__": "first", "doc_id": "d1"}},
			{Id: "b", Score: 0.7, Metadata: map[string]any{"__content__": "second"}},
		},
	}
	store := newStore(conn, "ns", 100)

	matches, err := store.Query(context.Background(), []float32{0.1, 0.2}, 5)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].Id)
	assert.Equal(t, "first", matches[0].Content)
	assert.Equal(t, map[string]any{"doc_id": "d1"}, matches[0].Metadata)
	assert.Equal(t, "b", matches[1].Id)
	assert.Equal(t, float32(0.7), matches[1].Score)
}

func TestStore_Query_DegradesToEmptyOnFailure(t *testing.T) {
	conn := &fakeConn{queryErr: errors.New("connection reset")}
	store := newStore(conn, "ns", 100)

	matches, err := store.Query(context.Background(), []float32{0.1}, 5)

	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestStore_Delete_SwallowsFailure(t *testing.T) {
	conn := &fakeConn{deleteErr: errors.New("not found")}
	store := newStore(conn, "ns", 100)

	err := store.Delete(context.Background(), "a", "b")

	assert.NoError(t, err)
	require.Len(t, conn.deleted, 1)
	assert.Equal(t, []string{"a", "b"}, conn.deleted[0])
}

func TestStore_Delete_NoIDsIsNoop(t *testing.T) {
	conn := &fakeConn{}
	store := newStore(conn, "ns", 100)

	require.NoError(t, store.Delete(context.Background()))
	assert.Empty(t, conn.deleted)
}

func TestStore_Close(t *testing.T) {
	conn := &fakeConn{}
	store := newStore(conn, "ns", 100)

	require.NoError(t, store.Close())
	assert.True(t, conn.closed)
}

func TestStore_Namespace(t *testing.T) {
	store := newStore(&fakeConn{}, "graph_chunks", 100)
	assert.Equal(t, "graph_chunks", store.Namespace())
}
