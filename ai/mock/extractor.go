package mock

import (
	"context"

	"github.com/poiesic/kgraph/ai"
)

// MockGraphExtractor is a test double for ai.GraphExtractor.
type MockGraphExtractor struct {
	// ExtractGraphFunc is called by ExtractGraph if set.
	// If nil, returns an empty graph.
	ExtractGraphFunc func(ctx context.Context, text string) (*ai.ExtractedGraph, error)

	callCount int
}

// NewMockGraphExtractor creates a mock extractor that returns empty graphs.
func NewMockGraphExtractor() *MockGraphExtractor {
	return &MockGraphExtractor{}
}

// ExtractGraph returns the injected graph or an empty one.
func (m *MockGraphExtractor) ExtractGraph(ctx context.Context, text string) (*ai.ExtractedGraph, error) {
	m.callCount++

	if m.ExtractGraphFunc != nil {
		return m.ExtractGraphFunc(ctx, text)
	}
	return &ai.ExtractedGraph{}, nil
}

// CallCount returns the number of times ExtractGraph was called.
func (m *MockGraphExtractor) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGraphExtractor) Reset() {
	m.callCount = 0
	m.ExtractGraphFunc = nil
}
