package search

import (
	"github.com/poiesic/textgraph/core"
)

// Semantic is a declared-but-unimplemented strategy: it satisfies the
// common contract and always returns no results. A full implementation
// would embed the query, compare it against item embeddings by cosine
// similarity, and gate results on the query's SemanticThreshold.
type Semantic struct{}

func (s *Semantic) Name() string {
	return "semantic"
}

func (s *Semantic) Search(items []*core.Item, q *core.QueryContext) ([]*core.SearchResult, error) {
	return []*core.SearchResult{}, nil
}
