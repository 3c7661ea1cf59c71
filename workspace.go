// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package textgraph

import (
	"context"
	"log/slog"

	"github.com/poiesic/textgraph/ai"
	"github.com/poiesic/textgraph/ai/openai"
	"github.com/poiesic/textgraph/core"
	"github.com/poiesic/textgraph/embedding"
	"github.com/poiesic/textgraph/graph"
	"github.com/poiesic/textgraph/search"
	"github.com/poiesic/textgraph/storage"
	"github.com/poiesic/textgraph/storage/badger"
)

// Workspace is the top-level entry point. It owns the storage backend, the
// item repository, the AI provider, and the graph and search services.
type Workspace struct {
	backend      *badger.Backend
	itemRepo     storage.ItemRepository
	provider     ai.Provider
	graphService *graph.Service
	searchReg    *search.Registry
	logger       *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	aiConfig *ai.Config
	inMemory bool
	provider ai.Provider
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.aiConfig = config
	}
}

// WithInMemory keeps all item storage in memory; nothing touches disk and
// the path argument is ignored.
func WithInMemory() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.inMemory = true
	}
}

// WithProvider substitutes the embedding provider, bypassing the openai
// client construction. Used mainly for testing with mock providers.
func WithProvider(provider ai.Provider) WorkspaceOption {
	return func(o *workspaceOptions) {
		o.provider = provider
	}
}

// NewWorkspace opens a workspace backed by storage at filePath.
func NewWorkspace(filePath string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	itemRepo := badger.NewItemRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			itemRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	graphService, err := graph.NewService()
	if err != nil {
		provider.Close()
		itemRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Workspace{
		backend:      backend,
		itemRepo:     itemRepo,
		provider:     provider,
		graphService: graphService,
		searchReg:    search.NewRegistry(),
		logger:       slog.Default(),
	}, nil
}

// Close releases the provider, repositories, and storage backend.
func (w *Workspace) Close() error {
	if err := w.provider.Close(); err != nil {
		w.logger.Error("error closing AI provider", "err", err)
	}

	if err := w.itemRepo.Close(); err != nil {
		w.logger.Error("error closing item repository", "err", err)
		return err
	}

	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ItemRepository exposes the underlying item repository.
func (w *Workspace) ItemRepository() storage.ItemRepository {
	return w.itemRepo
}

// GraphService exposes the graph assembly and analytics service.
func (w *Workspace) GraphService() *graph.Service {
	return w.graphService
}

// SearchRegistry exposes the search strategy registry.
func (w *Workspace) SearchRegistry() *search.Registry {
	return w.searchReg
}

// AddItems validates and stores items.
func (w *Workspace) AddItems(ctx context.Context, items ...*core.Item) error {
	for _, item := range items {
		if err := core.ValidateItem(item); err != nil {
			return err
		}
	}
	return w.itemRepo.PutItems(ctx, items...)
}

// EmbedItems runs the embedding pipeline over all stored items that lack an
// embedding and persists the results.
func (w *Workspace) EmbedItems(ctx context.Context, config *embedding.Config, opts ...embedding.Option) (*embedding.Report, error) {
	items, err := w.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*core.Item
	for _, item := range items {
		if !item.HasEmbedding() {
			pending = append(pending, item)
		}
	}

	pipeline, err := embedding.NewPipeline(w.provider.Embedder(), config, opts...)
	if err != nil {
		return nil, err
	}

	report, err := pipeline.Run(ctx, pending)
	if err != nil {
		return report, err
	}

	var embedded []*core.Item
	for _, item := range pending {
		if item.HasEmbedding() {
			embedded = append(embedded, item)
		}
	}
	if len(embedded) > 0 {
		if err := w.itemRepo.PutItems(ctx, embedded...); err != nil {
			return report, err
		}
	}
	return report, nil
}

// GenerateGraph builds a graph over all stored items with the named
// connection strategy.
func (w *Workspace) GenerateGraph(ctx context.Context, strategyName string, opts *graph.Options) (*core.Graph, error) {
	items, err := w.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return w.graphService.GenerateGraph(items, strategyName, opts)
}

// Search runs the named search strategy over all stored items.
func (w *Workspace) Search(ctx context.Context, strategyName string, q *core.QueryContext) ([]*core.SearchResult, error) {
	items, err := w.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return w.searchReg.Search(strategyName, items, q)
}

// MultiSearch fans the query out over several strategies concurrently.
// An empty strategy list runs every registered strategy.
func (w *Workspace) MultiSearch(ctx context.Context, q *core.QueryContext, strategies ...string) (map[string][]*core.SearchResult, error) {
	items, err := w.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	searcher, err := search.NewMultiSearcher(w.searchReg)
	if err != nil {
		return nil, err
	}
	defer searcher.Release()

	return searcher.Search(items, q, strategies...), nil
}
