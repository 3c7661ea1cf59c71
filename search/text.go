package search

import (
	"strings"

	"github.com/poiesic/textgraph/core"
)

// Per-term text field scores, from strongest signal to weakest.
const (
	scoreFullMatch      = 1.0
	scoreWordMatch      = 0.8
	scorePrefixMatch    = 0.6
	scoreSubstringMatch = 0.4
)

// Text scores items by exact and partial term matching across the enabled
// fields, with highlight snippets.
//
// Per query term the text field awards 1.0 for an exact full-text match,
// 0.8 for a word-boundary match, 0.6 for a word-prefix match and 0.4 for
// any substring match, averaged across terms. The category field scores 1.0
// on a substring match; metadata scores 0.5 per matching field, weighted
// down by 0.7. The final score fuses the field signals as
// 0.7*max + 0.3*avg over the fields that matched.
type Text struct{}

func (s *Text) Name() string {
	return "text"
}

func (s *Text) Search(items []*core.Item, q *core.QueryContext) ([]*core.SearchResult, error) {
	query := fold(strings.TrimSpace(q.Query), q.CaseSensitive)
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil, nil
	}

	var results []*core.SearchResult
	for _, item := range items {
		var fieldScores []float64
		var snippets []string
		textMatched := false
		exact := false

		if q.HasField(core.FieldText) {
			score, snips, allTerms := s.scoreTextField(item.Text, query, terms, q.CaseSensitive)
			if score > 0 {
				fieldScores = append(fieldScores, score)
				snippets = append(snippets, snips...)
				textMatched = true
				exact = allTerms
			}
		}

		if q.HasField(core.FieldCategory) && item.Category != "" {
			if strings.Contains(fold(item.Category, q.CaseSensitive), query) {
				fieldScores = append(fieldScores, 1.0)
				snippets = append(snippets, item.Category)
				textMatched = true
			}
		}

		metadataOnly := false
		if q.HasField(core.FieldMetadata) && len(item.Metadata) > 0 {
			score, snips := s.scoreMetadataField(item.Metadata, query, q.CaseSensitive)
			if score > 0 {
				fieldScores = append(fieldScores, score)
				snippets = append(snippets, snips...)
				metadataOnly = !textMatched
			}
		}

		if len(fieldScores) == 0 {
			continue
		}

		matchType := core.MatchPartial
		if exact {
			matchType = core.MatchExact
		} else if metadataOnly {
			matchType = core.MatchMetadata
		}

		results = append(results, &core.SearchResult{
			Item:        item,
			Score:       fuseFieldScores(fieldScores),
			MatchType:   matchType,
			MatchedText: strings.Join(snippets, " … "),
		})
	}

	return rankAndCap(results, q.MaxResults), nil
}

// scoreTextField scores the text field per term and collects highlight
// snippets. allTerms reports whether every term appears verbatim in the
// text, which makes the match exact.
func (s *Text) scoreTextField(text, query string, terms []string, caseSensitive bool) (float64, []string, bool) {
	folded := fold(text, caseSensitive)
	words := tokenize(folded)

	var sum float64
	var snippets []string
	allTerms := true

	fullMatch := folded == query

	for _, term := range terms {
		var termScore float64
		switch {
		case fullMatch:
			termScore = scoreFullMatch
		case wordMatch(words, term):
			termScore = scoreWordMatch
		case prefixMatch(words, term):
			termScore = scorePrefixMatch
		case strings.Contains(folded, term):
			termScore = scoreSubstringMatch
		}

		if termScore == 0 {
			allTerms = false
			continue
		}

		sum += termScore
		if idx := strings.Index(folded, term); idx >= 0 {
			snippets = append(snippets, snippet(text, idx, len(term)))
		}
	}

	return sum / float64(len(terms)), snippets, allTerms
}

// scoreMetadataField awards 0.5 per metadata field whose value contains the
// query, capped at 1.0 and weighted down by 0.7 for combination with the
// other field signals.
func (s *Text) scoreMetadataField(metadata map[string]string, query string, caseSensitive bool) (float64, []string) {
	matches := 0
	var snippets []string
	for key, value := range metadata {
		if strings.Contains(fold(value, caseSensitive), query) {
			matches++
			snippets = append(snippets, key+": "+value)
		}
	}
	if matches == 0 {
		return 0, nil
	}

	score := 0.5 * float64(matches)
	if score > 1.0 {
		score = 1.0
	}
	return score * 0.7, snippets
}

// fuseFieldScores combines the per-field signals: 0.7 times the strongest
// field plus 0.3 times the average of the fields that matched.
func fuseFieldScores(scores []float64) float64 {
	max, sum := 0.0, 0.0
	for _, score := range scores {
		if score > max {
			max = score
		}
		sum += score
	}
	return 0.7*max + 0.3*sum/float64(len(scores))
}

// punctuation trimmed from word edges during tokenization.
const wordTrimSet = ".,!?;:'\"-()[]{}"

func fold(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// tokenize splits text into words with edge punctuation trimmed.
func tokenize(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, field := range fields {
		if cleaned := strings.Trim(field, wordTrimSet); cleaned != "" {
			words = append(words, cleaned)
		}
	}
	return words
}

func wordMatch(words []string, term string) bool {
	for _, word := range words {
		if word == term {
			return true
		}
	}
	return false
}

func prefixMatch(words []string, term string) bool {
	for _, word := range words {
		if strings.HasPrefix(word, term) {
			return true
		}
	}
	return false
}

// snippetContext is how many characters of context a highlight keeps on
// each side of the match.
const snippetContext = 24

// snippet extracts the matched region of text with surrounding context.
func snippet(text string, idx, length int) string {
	start := idx - snippetContext
	if start < 0 {
		start = 0
	}
	end := idx + length + snippetContext
	if end > len(text) {
		end = len(text)
	}

	out := text[start:end]
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out = out + "…"
	}
	return out
}
