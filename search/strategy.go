package search

import (
	"fmt"
	"sort"
	"sync"

	"github.com/poiesic/textgraph/core"
)

// Strategy ranks items against a query. Results are capped at the query's
// MaxResults and ordered by descending score. Implementations construct
// fresh results per call and never mutate the item slice.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string

	// Search ranks the items against the query context.
	Search(items []*core.Item, q *core.QueryContext) ([]*core.SearchResult, error)
}

// Registry resolves search strategy names to implementations.
// Registries are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry preloaded with the built-in strategies:
// text, fuzzy, category, semantic.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}
	for _, s := range []Strategy{
		&Text{},
		&Fuzzy{},
		&Category{},
		&Semantic{},
	} {
		r.strategies[s.Name()] = s
	}
	return r
}

// Register adds a custom strategy. Returns ErrStrategyExists if the name
// is already taken.
func (r *Registry) Register(s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.strategies[s.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrStrategyExists, s.Name())
	}
	r.strategies[s.Name()] = s
	return nil
}

// Get resolves a strategy by name. Returns ErrUnknownStrategy for
// unrecognized names.
func (r *Registry) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Search dispatches a query to the named strategy. The query context is
// validated and normalized before the strategy runs.
func (r *Registry) Search(name string, items []*core.Item, q *core.QueryContext) ([]*core.SearchResult, error) {
	strategy, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	if err := core.ValidateQueryContext(q); err != nil {
		return nil, err
	}

	// Work on a normalized copy so concurrent callers can share a context.
	normalized := *q
	normalized.Normalize()

	return strategy.Search(items, &normalized)
}

// rankAndCap sorts results by descending score and truncates to maxResults.
// Equal scores keep input order.
func rankAndCap(results []*core.SearchResult, maxResults int) []*core.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}
