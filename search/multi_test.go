package search

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/textgraph/core"
)

// failing is a strategy stub that always errors.
type failing struct{}

func (f *failing) Name() string { return "failing" }

func (f *failing) Search(items []*core.Item, q *core.QueryContext) ([]*core.SearchResult, error) {
	return nil, errors.New("strategy blew up")
}

// recordingMonitor captures monitor callbacks for assertions.
type recordingMonitor struct {
	mu       sync.Mutex
	started  []string
	failed   []string
	resulted []string
	finished bool
}

func (m *recordingMonitor) Start(query string, strategies []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = strategies
}

func (m *recordingMonitor) StrategyResults(name string, results []*core.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resulted = append(m.resulted, name)
}

func (m *recordingMonitor) StrategyFailed(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = append(m.failed, name)
}

func (m *recordingMonitor) Finish(results map[string][]*core.SearchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = true
}

func TestMultiSearcher(t *testing.T) {
	t.Run("fans out over all strategies by default", func(t *testing.T) {
		searcher, err := NewMultiSearcher(NewRegistry())
		require.NoError(t, err)
		defer searcher.Release()

		results := searcher.Search(testItems(), core.NewQueryContext("felines"))
		assert.Len(t, results, 4, "one result set per registered strategy")
		assert.NotEmpty(t, results["text"])
		assert.NotNil(t, results["semantic"])
		assert.Empty(t, results["semantic"])
	})

	t.Run("explicit strategy subset", func(t *testing.T) {
		searcher, err := NewMultiSearcher(NewRegistry())
		require.NoError(t, err)
		defer searcher.Release()

		results := searcher.Search(testItems(), core.NewQueryContext("felines"), "text", "fuzzy")
		assert.Len(t, results, 2)
	})

	t.Run("failing strategy contributes an empty set", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.Register(&failing{}))

		searcher, err := NewMultiSearcher(registry)
		require.NoError(t, err)
		defer searcher.Release()

		monitor := &recordingMonitor{}
		results := searcher.SearchWithMonitor(testItems(), core.NewQueryContext("felines"), monitor, "text", "failing")

		require.Len(t, results, 2)
		assert.NotEmpty(t, results["text"])
		assert.NotNil(t, results["failing"])
		assert.Empty(t, results["failing"])

		assert.Equal(t, []string{"failing"}, monitor.failed)
		assert.Equal(t, []string{"text"}, monitor.resulted)
		assert.True(t, monitor.finished)
	})

	t.Run("nil registry rejected", func(t *testing.T) {
		_, err := NewMultiSearcher(nil)
		assert.ErrorIs(t, err, ErrRegistryRequired)
	})

	t.Run("custom pool size", func(t *testing.T) {
		searcher, err := NewMultiSearcher(NewRegistry(), WithPoolSize(2))
		require.NoError(t, err)
		defer searcher.Release()

		results := searcher.Search(testItems(), core.NewQueryContext("felines"))
		assert.Len(t, results, 4)
	})
}
