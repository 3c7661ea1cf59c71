package graph

import (
	"sort"

	"github.com/poiesic/textgraph/core"
	"github.com/poiesic/textgraph/vector"
)

// Candidate is a scored unordered pair of nodes, identified by their
// indexes into the node slice handed to the enumerator.
type Candidate struct {
	I, J       int
	Similarity float64
}

// Enumerator produces candidate pairs ordered by descending similarity.
// It isolates the O(n²·d) cost center so the exhaustive scan can be swapped
// for an approximate nearest-neighbor index without touching strategy logic.
type Enumerator func(nodes []*core.Node, noiseFloor float64) []Candidate

// EnumeratePairs is the exhaustive enumerator: it computes the cosine
// similarity of every unordered pair with both embeddings present, keeps
// pairs strictly above the noise floor, and sorts descending. Pairs with
// mismatched vector lengths are excluded, not errored. Equal similarities
// keep first-encountered pair order.
func EnumeratePairs(nodes []*core.Node, noiseFloor float64) []Candidate {
	var candidates []Candidate

	for i := 0; i < len(nodes); i++ {
		if !nodes[i].Item.HasEmbedding() {
			continue
		}
		for j := i + 1; j < len(nodes); j++ {
			if !nodes[j].Item.HasEmbedding() {
				continue
			}

			similarity, err := vector.Cosine(nodes[i].Item.Embedding, nodes[j].Item.Embedding)
			if err != nil {
				// Mismatched dimensions: exclude the pair
				continue
			}
			if similarity <= noiseFloor {
				continue
			}

			candidates = append(candidates, Candidate{I: i, J: j, Similarity: similarity})
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Similarity > candidates[b].Similarity
	})

	return candidates
}

// neighborsByNode groups candidates into a per-node list, preserving the
// descending order of the input. Each candidate appears in the lists of both
// of its endpoints.
func neighborsByNode(candidates []Candidate, nodeCount int) [][]Candidate {
	lists := make([][]Candidate, nodeCount)
	for _, cand := range candidates {
		lists[cand.I] = append(lists[cand.I], cand)
		lists[cand.J] = append(lists[cand.J], cand)
	}
	return lists
}

// other returns the candidate endpoint that is not the given node index.
func (c Candidate) other(node int) int {
	if c.I == node {
		return c.J
	}
	return c.I
}
