package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Item represents a labeled text record.
// It may be enriched with an embedding vector by the embedding pipeline;
// it is immutable otherwise.
type Item struct {
	Id        string            `json:"id"`
	Text      string            `json:"text"`
	Category  string            `json:"category,omitempty"`  // Optional grouping label
	Embedding []float32         `json:"embedding,omitempty"` // Embedding vector for similarity computation (populated by the pipeline)
	Metadata  map[string]string `json:"metadata,omitempty"`  // Optional metadata (e.g., "timestamp", "source", "author")
}

// HasEmbedding reports whether the item carries an embedding vector.
func (it *Item) HasEmbedding() bool {
	return len(it.Embedding) > 0
}

// PairKey generates a deterministic key for an unordered id pair using BLAKE2b hashing.
// Both orderings of the same two ids produce the same key, so it serves as a
// canonical identity for undirected links.
func PairKey(a, b string) uint64 {
	if b < a {
		a, b = b, a
	}
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(a))
	h.Write([]byte{0})
	h.Write([]byte(b))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Node is an embedded item plus derived presentation attributes.
// Nodes are recomputed on every graph generation and never mutated afterwards.
type Node struct {
	Item  *Item   `json:"item"`
	Size  float64 `json:"size"`  // Bounded function of text length and metadata richness
	Color string  `json:"color"` // Category palette lookup with a default fallback
}

// Link is an undirected weighted relation between two items.
type Link struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Similarity float64 `json:"similarity"` // True cosine similarity of the endpoint embeddings
	Distance   float64 `json:"distance"`   // Strictly decreasing function of Similarity
}

// Key returns the canonical unordered pair key for the link endpoints.
func (l *Link) Key() uint64 {
	return PairKey(l.Source, l.Target)
}

// Graph holds the nodes and links produced by a graph generation call.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Links []*Link `json:"links"`
}

// Node returns the node with the given item id, or nil if absent.
func (g *Graph) Node(id string) *Node {
	for _, node := range g.Nodes {
		if node.Item.Id == id {
			return node
		}
	}
	return nil
}

// MatchType classifies how a search result matched the query.
type MatchType string

const (
	MatchExact    MatchType = "exact"
	MatchPartial  MatchType = "partial"
	MatchMetadata MatchType = "metadata"
	MatchSemantic MatchType = "semantic"
)

// Field identifies a searchable item field.
type Field string

const (
	FieldText     Field = "text"
	FieldCategory Field = "category"
	FieldMetadata Field = "metadata"
)

// SearchResult represents a search hit with its relevance score.
// Results are constructed fresh per search call and never mutated.
type SearchResult struct {
	Item        *Item     `json:"item"`
	Score       float64   `json:"score"`
	MatchType   MatchType `json:"matchType"`
	MatchedText string    `json:"matchedText,omitempty"` // Concatenated highlight snippets
}

// QueryContext carries a search query and its options.
type QueryContext struct {
	Query             string
	MaxResults        int
	CaseSensitive     bool
	Fields            []Field
	SemanticThreshold float64
}

// NewQueryContext creates a QueryContext with default options:
// up to 5 results, case-insensitive, all fields enabled, semantic threshold 0.7.
func NewQueryContext(query string) *QueryContext {
	return &QueryContext{
		Query:             query,
		MaxResults:        5,
		CaseSensitive:     false,
		Fields:            []Field{FieldText, FieldCategory, FieldMetadata},
		SemanticThreshold: 0.7,
	}
}

// HasField reports whether the given field is enabled for searching.
func (q *QueryContext) HasField(f Field) bool {
	for _, field := range q.Fields {
		if field == f {
			return true
		}
	}
	return false
}

// Normalize fills in unset options with their defaults.
func (q *QueryContext) Normalize() {
	if q.MaxResults <= 0 {
		q.MaxResults = 5
	}
	if len(q.Fields) == 0 {
		q.Fields = []Field{FieldText, FieldCategory, FieldMetadata}
	}
	if q.SemanticThreshold <= 0 {
		q.SemanticThreshold = 0.7
	}
}
