package search

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/textgraph/core"
)

// MultiSearcher fans a query out to several strategies at once over a
// worker pool and collects a strategy-name -> results mapping. Individual
// strategy failures are logged and replaced by empty result sets, so one
// broken strategy cannot abort a multi-strategy query.
type MultiSearcher struct {
	registry *Registry
	pool     *ants.Pool
	logger   *slog.Logger
}

// MultiOption configures a MultiSearcher.
type MultiOption func(*MultiSearcher) error

// WithPoolSize sets the worker pool size for concurrent strategy runs.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) MultiOption {
	return func(m *MultiSearcher) error {
		if size < 1 {
			size = 1
		}

		if m.pool != nil {
			m.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		m.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) MultiOption {
	return func(m *MultiSearcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMultiSearcher creates a multi-strategy searcher over the registry.
func NewMultiSearcher(registry *Registry, opts ...MultiOption) (*MultiSearcher, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	m := &MultiSearcher{
		registry: registry,
		pool:     pool,
		logger:   slog.Default().With("component", "multi-searcher"),
	}

	for _, opt := range opts {
		if optErr := opt(m); optErr != nil {
			m.Release()
			return nil, optErr
		}
	}

	return m, nil
}

// Search runs the named strategies against the items. Strategies that fail
// contribute an empty result set; the error is logged, not surfaced.
// Passing no names runs every registered strategy.
func (m *MultiSearcher) Search(items []*core.Item, q *core.QueryContext, strategies ...string) map[string][]*core.SearchResult {
	return m.SearchWithMonitor(items, q, nil, strategies...)
}

// SearchWithMonitor runs the named strategies with observability hooks.
func (m *MultiSearcher) SearchWithMonitor(items []*core.Item, q *core.QueryContext, monitor Monitor, strategies ...string) map[string][]*core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if len(strategies) == 0 {
		strategies = m.registry.Names()
	}

	monitor.Start(q.Query, strategies)

	results := make(map[string][]*core.SearchResult, len(strategies))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range strategies {
		wg.Add(1)
		name := name
		err := m.pool.Submit(func() {
			defer wg.Done()

			hits, err := m.registry.Search(name, items, q)
			if err != nil {
				m.logger.Warn("search strategy failed", "strategy", name, "err", err)
				monitor.StrategyFailed(name, err)
				hits = []*core.SearchResult{}
			} else {
				monitor.StrategyResults(name, hits)
			}

			mu.Lock()
			results[name] = hits
			mu.Unlock()
		})
		if err != nil {
			// Pool rejected the task; record an empty result set.
			wg.Done()
			m.logger.Warn("search strategy not scheduled", "strategy", name, "err", err)
			monitor.StrategyFailed(name, err)
			mu.Lock()
			results[name] = []*core.SearchResult{}
			mu.Unlock()
		}
	}

	wg.Wait()
	monitor.Finish(results)
	return results
}

// Release releases the worker pool.
// The searcher should not be used after calling Release.
func (m *MultiSearcher) Release() {
	if m.pool != nil {
		m.pool.Release()
	}
}
