package mock

import "github.com/poiesic/kgraph/ai"

// MockProvider aggregates mock AI services.
type MockProvider struct {
	embedder  *MockEmbedder
	completer *MockCompleter
	extractor *MockGraphExtractor
}

// NewMockProvider creates a provider backed by default mocks.
//
// Returns ai.AIProvider since it's the primary entry point; use the
// GetMock* accessors when a test needs the concrete types.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		completer: NewMockCompleter(),
		extractor: NewMockGraphExtractor(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Completer returns the mock completion service.
func (p *MockProvider) Completer() ai.Completer {
	return p.completer
}

// GraphExtractor returns the mock extraction service.
func (p *MockProvider) GraphExtractor() ai.GraphExtractor {
	return p.extractor
}

// Close implements ai.AIProvider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete mock for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockCompleter returns the concrete mock for test assertions.
func (p *MockProvider) GetMockCompleter() *MockCompleter {
	return p.completer
}

// GetMockExtractor returns the concrete mock for test assertions.
func (p *MockProvider) GetMockExtractor() *MockGraphExtractor {
	return p.extractor
}
