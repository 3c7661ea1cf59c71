package graph

import (
	"math"

	"github.com/poiesic/textgraph/core"
)

var categoryDistance = distanceParams{base: 30, spread: 70}

// categoryDiffQuota is how many different-category links each node contributes.
const categoryDiffQuota = 2

// Category encodes a soft clustering prior: each node links to its best
// same-category neighbors plus a couple of different-category ones, without
// hard-partitioning the graph. The same-category quota is
// round(3 * CategoryWeight), minimum 1.
type Category struct {
	Enumerate Enumerator
}

func (s *Category) Name() string {
	return "category"
}

func (s *Category) Generate(nodes []*core.Node, opts *Options) ([]*core.Link, error) {
	opts = opts.normalized()

	candidates := s.enumerator()(nodes, opts.NoiseFloor)
	perNode := neighborsByNode(candidates, len(nodes))

	sameQuota := int(math.Round(3 * opts.CategoryWeight))
	if sameQuota < 1 {
		sameQuota = 1
	}

	set := newLinkSet()
	for i, node := range nodes {
		sameTaken, diffTaken := 0, 0
		for _, cand := range perNode[i] {
			if sameTaken >= sameQuota && diffTaken >= categoryDiffQuota {
				break
			}

			other := nodes[cand.other(i)]
			if other.Item.Category == node.Item.Category {
				if sameTaken >= sameQuota {
					continue
				}
				sameTaken++
			} else {
				if diffTaken >= categoryDiffQuota {
					continue
				}
				diffTaken++
			}

			set.add(node.Item.Id, other.Item.Id, cand.Similarity, categoryDistance)
		}
	}

	return set.list(), nil
}

func (s *Category) enumerator() Enumerator {
	if s.Enumerate != nil {
		return s.Enumerate
	}
	return EnumeratePairs
}
