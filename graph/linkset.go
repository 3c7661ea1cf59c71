package graph

import (
	"github.com/poiesic/textgraph/core"
)

// distanceParams are the per-strategy constants of the link distance
// formula distance = base + (1 - similarity) * spread.
type distanceParams struct {
	base   float64
	spread float64
}

// linkSet accumulates undirected links, deduplicating by the canonical
// unordered pair key. Insertion order is preserved so strategy output is
// deterministic.
type linkSet struct {
	links map[uint64]*core.Link
	order []uint64
}

func newLinkSet() *linkSet {
	return &linkSet{links: make(map[uint64]*core.Link)}
}

// add inserts a link between two item ids unless it is a self-link or the
// unordered pair is already present. Reports whether a link was inserted.
func (s *linkSet) add(source, target string, similarity float64, dist distanceParams) bool {
	if source == target {
		return false
	}

	key := core.PairKey(source, target)
	if _, ok := s.links[key]; ok {
		return false
	}

	s.links[key] = &core.Link{
		Source:     source,
		Target:     target,
		Similarity: similarity,
		Distance:   dist.base + (1-similarity)*dist.spread,
	}
	s.order = append(s.order, key)
	return true
}

// contains reports whether the unordered pair already has a link.
func (s *linkSet) contains(a, b string) bool {
	_, ok := s.links[core.PairKey(a, b)]
	return ok
}

// list returns the links in insertion order.
func (s *linkSet) list() []*core.Link {
	out := make([]*core.Link, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.links[key])
	}
	return out
}
