package search

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/poiesic/textgraph/core"
)

// Fuzzy strategy thresholds.
const (
	fuzzyMinScore   = 0.3 // results below this are discarded
	fuzzyExactScore = 0.8 // results above this count as exact matches
)

// Fuzzy scores items by edit distance for typo tolerance. Per enabled
// field: 1.0 on exact equality, 0.8 on substring containment, otherwise
// 1 minus the normalized Levenshtein distance. The best field wins.
type Fuzzy struct{}

func (s *Fuzzy) Name() string {
	return "fuzzy"
}

func (s *Fuzzy) Search(items []*core.Item, q *core.QueryContext) ([]*core.SearchResult, error) {
	query := fold(strings.TrimSpace(q.Query), q.CaseSensitive)
	if query == "" {
		return nil, nil
	}

	var results []*core.SearchResult
	for _, item := range items {
		best := 0.0
		matched := ""

		consider := func(value string) {
			if value == "" {
				return
			}
			if score := fuzzyScore(fold(value, q.CaseSensitive), query); score > best {
				best = score
				matched = value
			}
		}

		if q.HasField(core.FieldText) {
			consider(item.Text)
		}
		if q.HasField(core.FieldCategory) {
			consider(item.Category)
		}
		if q.HasField(core.FieldMetadata) {
			for _, value := range item.Metadata {
				consider(value)
			}
		}

		if best < fuzzyMinScore {
			continue
		}

		matchType := core.MatchPartial
		if best > fuzzyExactScore {
			matchType = core.MatchExact
		}

		results = append(results, &core.SearchResult{
			Item:        item,
			Score:       best,
			MatchType:   matchType,
			MatchedText: matched,
		})
	}

	return rankAndCap(results, q.MaxResults), nil
}

// fuzzyScore rates the similarity of a field value against the query.
func fuzzyScore(value, query string) float64 {
	if value == query {
		return 1.0
	}
	if strings.Contains(value, query) || strings.Contains(query, value) {
		return 0.8
	}

	distance := levenshtein.ComputeDistance(value, query)
	longest := len(value)
	if len(query) > longest {
		longest = len(query)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(distance)/float64(longest)
}
