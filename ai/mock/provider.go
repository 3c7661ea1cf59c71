package mock

import (
	"github.com/poiesic/textgraph/ai"
)

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	embedder ai.Embedder
	closed   bool
}

var _ ai.Provider = (*MockProvider)(nil)

// NewMockProvider creates a provider backed by a default MockEmbedder.
func NewMockProvider() *MockProvider {
	return &MockProvider{embedder: NewMockEmbedder()}
}

// NewMockProviderWithEmbedder creates a provider backed by the given embedder.
func NewMockProviderWithEmbedder(embedder ai.Embedder) *MockProvider {
	return &MockProvider{embedder: embedder}
}

// Embedder returns the embedding service.
func (m *MockProvider) Embedder() ai.Embedder {
	return m.embedder
}

// Close marks the provider closed.
func (m *MockProvider) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockProvider) Closed() bool {
	return m.closed
}
