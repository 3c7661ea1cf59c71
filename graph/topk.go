package graph

import (
	"fmt"

	"github.com/poiesic/textgraph/core"
)

var topkDistance = distanceParams{base: 30, spread: 70}

// TopK links every node to its k most similar neighbors. A node can end up
// with more than k links when it is also chosen by its neighbors; the k
// bound applies to each node's own contribution.
type TopK struct {
	// K is the number of neighbors each node contributes.
	K int

	// Enumerate overrides the pairwise enumerator. Nil uses EnumeratePairs.
	Enumerate Enumerator
}

func (s *TopK) Name() string {
	return fmt.Sprintf("topk%d", s.K)
}

func (s *TopK) Generate(nodes []*core.Node, opts *Options) ([]*core.Link, error) {
	opts = opts.normalized()

	candidates := s.enumerator()(nodes, opts.NoiseFloor)
	perNode := neighborsByNode(candidates, len(nodes))

	set := newLinkSet()
	for i, node := range nodes {
		taken := 0
		for _, cand := range perNode[i] {
			if taken >= s.K {
				break
			}
			other := nodes[cand.other(i)]
			set.add(node.Item.Id, other.Item.Id, cand.Similarity, topkDistance)
			taken++
		}
	}

	return set.list(), nil
}

func (s *TopK) enumerator() Enumerator {
	if s.Enumerate != nil {
		return s.Enumerate
	}
	return EnumeratePairs
}
