package graph

import (
	"github.com/poiesic/textgraph/core"
)

var adaptiveDistance = distanceParams{base: 25, spread: 75}

// adaptiveSampleSize is how many of a node's best candidates feed the
// neighborhood-density estimate.
const adaptiveSampleSize = 10

// Adaptive derives a per-node link budget from local neighborhood density:
// nodes embedded in a dense neighborhood get fewer, higher-confidence links;
// sparse nodes get more, looser links. The budget is 3 links above the dense
// tier, 5 above the medium tier, else 7, with a similarity floor of
// max(AdaptiveMinFloor, avg/2).
type Adaptive struct {
	Enumerate Enumerator
}

func (s *Adaptive) Name() string {
	return "adaptive"
}

func (s *Adaptive) Generate(nodes []*core.Node, opts *Options) ([]*core.Link, error) {
	opts = opts.normalized()

	candidates := s.enumerator()(nodes, opts.NoiseFloor)
	perNode := neighborsByNode(candidates, len(nodes))

	set := newLinkSet()
	for i, node := range nodes {
		list := perNode[i]
		if len(list) == 0 {
			continue
		}

		sample := list
		if len(sample) > adaptiveSampleSize {
			sample = sample[:adaptiveSampleSize]
		}
		var sum float64
		for _, cand := range sample {
			sum += cand.Similarity
		}
		avg := sum / float64(len(sample))

		count := 7
		switch {
		case avg > opts.AdaptiveDenseAvg:
			count = 3
		case avg > opts.AdaptiveMediumAvg:
			count = 5
		}

		minThreshold := opts.AdaptiveMinFloor
		if half := avg * 0.5; half > minThreshold {
			minThreshold = half
		}

		taken := 0
		for _, cand := range list {
			if taken >= count || cand.Similarity < minThreshold {
				break
			}
			other := nodes[cand.other(i)]
			set.add(node.Item.Id, other.Item.Id, cand.Similarity, adaptiveDistance)
			taken++
		}
	}

	return set.list(), nil
}

func (s *Adaptive) enumerator() Enumerator {
	if s.Enumerate != nil {
		return s.Enumerate
	}
	return EnumeratePairs
}
