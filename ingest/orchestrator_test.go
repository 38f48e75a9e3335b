package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/kgraph/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testInserter implements Inserter, recording inserted texts.
type testInserter struct {
	mu        sync.Mutex
	texts     []string
	insertErr error
	done      chan struct{}
}

func newTestInserter() *testInserter {
	return &testInserter{done: make(chan struct{}, 16)}
}

func (ti *testInserter) Insert(ctx context.Context, text string) error {
	ti.mu.Lock()
	ti.texts = append(ti.texts, text)
	ti.mu.Unlock()
	ti.done <- struct{}{}
	return ti.insertErr
}

func (ti *testInserter) inserted() []string {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	out := make([]string, len(ti.texts))
	copy(out, ti.texts)
	return out
}

// testSource implements Source.
type testSource struct {
	inserter *testInserter
	err      error
}

func (ts *testSource) Inserter(ctx context.Context) (Inserter, error) {
	if ts.err != nil {
		return nil, ts.err
	}
	return ts.inserter, nil
}

func waitForInsert(t *testing.T, inserter *testInserter) {
	t.Helper()
	select {
	case <-inserter.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for background insert")
	}
}

func TestNewOrchestrator_RequiresSource(t *testing.T) {
	_, err := NewOrchestrator(nil)
	assert.ErrorIs(t, err, ErrSourceRequired)
}

func TestSubmit_IndexesInBackground(t *testing.T) {
	inserter := newTestInserter()
	orchestrator, err := NewOrchestrator(&testSource{inserter: inserter}, WithPoolSize(1))
	require.NoError(t, err)
	defer orchestrator.Release()

	require.NoError(t, orchestrator.Submit("the document body", nil))
	waitForInsert(t, inserter)

	texts := inserter.inserted()
	require.Len(t, texts, 1)
	assert.Equal(t, "the document body", texts[0])
}

func TestSubmit_EnrichesWithMetadata(t *testing.T) {
	inserter := newTestInserter()
	orchestrator, err := NewOrchestrator(&testSource{inserter: inserter}, WithPoolSize(1))
	require.NoError(t, err)
	defer orchestrator.Release()

	md := &core.DocumentMetadata{
		Source:   "upload",
		Filename: "notes.txt",
		Summary:  "meeting notes",
		Keywords: core.KeywordList{"planning", "q3"},
	}
	require.NoError(t, orchestrator.Submit("the document body", md))
	waitForInsert(t, inserter)

	texts := inserter.inserted()
	require.Len(t, texts, 1)
	assert.Equal(t, "Summary: meeting notes\n\nKeywords: planning, q3\n\nthe document body", texts[0])
}

func TestSubmit_InsertFailureIsSwallowed(t *testing.T) {
	inserter := newTestInserter()
	inserter.insertErr = errors.New("index unavailable")
	orchestrator, err := NewOrchestrator(&testSource{inserter: inserter}, WithPoolSize(1))
	require.NoError(t, err)
	defer orchestrator.Release()

	require.NoError(t, orchestrator.Submit("the document body", nil))
	waitForInsert(t, inserter)
}

func TestSubmit_SourceFailureIsSwallowed(t *testing.T) {
	orchestrator, err := NewOrchestrator(&testSource{err: errors.New("engine down")}, WithPoolSize(1))
	require.NoError(t, err)
	defer orchestrator.Release()

	assert.NoError(t, orchestrator.Submit("the document body", nil))
}

func TestSubmit_AfterRelease(t *testing.T) {
	inserter := newTestInserter()
	orchestrator, err := NewOrchestrator(&testSource{inserter: inserter})
	require.NoError(t, err)

	orchestrator.Release()

	assert.Error(t, orchestrator.Submit("the document body", nil))
}

func TestEnrichText(t *testing.T) {
	tests := []struct {
		name string
		text string
		md   *core.DocumentMetadata
		want string
	}{
		{
			name: "nil metadata",
			text: "body",
			md:   nil,
			want: "body",
		},
		{
			name: "empty metadata",
			text: "body",
			md:   &core.DocumentMetadata{Source: "upload", Filename: "f.txt"},
			want: "body",
		},
		{
			name: "summary only",
			text: "body",
			md:   &core.DocumentMetadata{Summary: "a summary"},
			want: "Summary: a summary\n\nbody",
		},
		{
			name: "keywords only",
			text: "body",
			md:   &core.DocumentMetadata{Keywords: core.KeywordList{"a", "b"}},
			want: "Keywords: a, b\n\nbody",
		},
		{
			name: "summary and keywords",
			text: "body",
			md:   &core.DocumentMetadata{Summary: "s", Keywords: core.KeywordList{"a"}},
			want: "Summary: s\n\nKeywords: a\n\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnrichText(tt.text, tt.md))
		})
	}
}
