package search

import (
	"strings"

	"github.com/poiesic/textgraph/core"
)

// Category-first scores.
const (
	categoryExactScore     = 1.0
	categorySubstringScore = 0.8
	categoryTextFallback   = 0.6
)

// Category matches the category field first: an exact category match scores
// 1.0, a substring match 0.8. Items without any category signal fall back
// to a 0.6 text substring match.
type Category struct{}

func (s *Category) Name() string {
	return "category"
}

func (s *Category) Search(items []*core.Item, q *core.QueryContext) ([]*core.SearchResult, error) {
	query := fold(strings.TrimSpace(q.Query), q.CaseSensitive)
	if query == "" {
		return nil, nil
	}

	var results []*core.SearchResult
	for _, item := range items {
		category := fold(item.Category, q.CaseSensitive)

		var result *core.SearchResult
		switch {
		case category != "" && category == query:
			result = &core.SearchResult{
				Item:        item,
				Score:       categoryExactScore,
				MatchType:   core.MatchExact,
				MatchedText: item.Category,
			}
		case category != "" && strings.Contains(category, query):
			result = &core.SearchResult{
				Item:        item,
				Score:       categorySubstringScore,
				MatchType:   core.MatchPartial,
				MatchedText: item.Category,
			}
		default:
			folded := fold(item.Text, q.CaseSensitive)
			if idx := strings.Index(folded, query); idx >= 0 {
				result = &core.SearchResult{
					Item:        item,
					Score:       categoryTextFallback,
					MatchType:   core.MatchPartial,
					MatchedText: snippet(item.Text, idx, len(query)),
				}
			}
		}

		if result != nil {
			results = append(results, result)
		}
	}

	return rankAndCap(results, q.MaxResults), nil
}
