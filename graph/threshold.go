package graph

import (
	"github.com/poiesic/textgraph/core"
)

var thresholdDistance = distanceParams{base: 20, spread: 80}

// Threshold links every pair whose similarity is at or above the floor,
// independent of any per-node limit. The floor comes from Options.Threshold
// (default 0.7).
type Threshold struct {
	Enumerate Enumerator
}

func (s *Threshold) Name() string {
	return "threshold"
}

func (s *Threshold) Generate(nodes []*core.Node, opts *Options) ([]*core.Link, error) {
	opts = opts.normalized()

	candidates := s.enumerator()(nodes, opts.NoiseFloor)

	set := newLinkSet()
	for _, cand := range candidates {
		if cand.Similarity < opts.Threshold {
			// Candidates are sorted descending; everything after is below too.
			break
		}
		set.add(nodes[cand.I].Item.Id, nodes[cand.J].Item.Id, cand.Similarity, thresholdDistance)
	}

	return set.list(), nil
}

func (s *Threshold) enumerator() Enumerator {
	if s.Enumerate != nil {
		return s.Enumerate
	}
	return EnumeratePairs
}
