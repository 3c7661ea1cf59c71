package search

import (
	"github.com/poiesic/textgraph/core"
)

// Monitor provides hooks to observe a multi-strategy search.
// Implement this interface to track per-strategy progress and failures.
type Monitor interface {
	Start(query string, strategies []string)
	StrategyResults(strategy string, results []*core.SearchResult)
	StrategyFailed(strategy string, err error)
	Finish(results map[string][]*core.SearchResult)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)                         {}
func (n *noopMonitor) StrategyResults(_ string, _ []*core.SearchResult)   {}
func (n *noopMonitor) StrategyFailed(_ string, _ error)                   {}
func (n *noopMonitor) Finish(_ map[string][]*core.SearchResult)           {}
