package graph

import (
	"github.com/poiesic/textgraph/core"
)

var communityDistance = distanceParams{base: 25, spread: 75}

// Community strategy constants. Like the adaptive tiers these are empirical
// defaults, not derived values.
const (
	communityJoinThreshold   = 0.6
	communityIntraThreshold  = 0.3
	communityBridgeThreshold = 0.4
)

// Community groups nodes by greedy similarity clustering, links
// within-community pairs above the intra threshold, and bridges each pair
// of communities with their single strongest cross pair above the bridge
// threshold.
type Community struct {
	Enumerate Enumerator
}

func (s *Community) Name() string {
	return "community"
}

func (s *Community) Generate(nodes []*core.Node, opts *Options) ([]*core.Link, error) {
	opts = opts.normalized()

	candidates := s.enumerator()(nodes, opts.NoiseFloor)

	// Pair similarity lookup for the greedy pass.
	sims := make(map[[2]int]float64, len(candidates))
	for _, cand := range candidates {
		sims[[2]int{cand.I, cand.J}] = cand.Similarity
	}
	pairSim := func(a, b int) (float64, bool) {
		if b < a {
			a, b = b, a
		}
		sim, ok := sims[[2]int{a, b}]
		return sim, ok
	}

	// Greedy clustering: each node joins the first community whose
	// representative (its first member) is similar enough, else starts
	// its own.
	community := make([]int, len(nodes))
	var representatives []int
	for i, node := range nodes {
		if !node.Item.HasEmbedding() {
			community[i] = -1
			continue
		}

		community[i] = -1
		for c, rep := range representatives {
			if sim, ok := pairSim(i, rep); ok && sim > communityJoinThreshold {
				community[i] = c
				break
			}
		}
		if community[i] == -1 {
			community[i] = len(representatives)
			representatives = append(representatives, i)
		}
	}

	set := newLinkSet()

	// Within-community links.
	for _, cand := range candidates {
		ci, cj := community[cand.I], community[cand.J]
		if ci < 0 || cj < 0 || ci != cj {
			continue
		}
		if cand.Similarity <= communityIntraThreshold {
			continue
		}
		set.add(nodes[cand.I].Item.Id, nodes[cand.J].Item.Id, cand.Similarity, communityDistance)
	}

	// One bridge per community pair: candidates are sorted descending, so
	// the first cross pair seen for a community pair is the strongest.
	bridged := make(map[[2]int]bool)
	for _, cand := range candidates {
		ci, cj := community[cand.I], community[cand.J]
		if ci < 0 || cj < 0 || ci == cj {
			continue
		}
		if cand.Similarity <= communityBridgeThreshold {
			continue
		}
		if cj < ci {
			ci, cj = cj, ci
		}
		if bridged[[2]int{ci, cj}] {
			continue
		}
		bridged[[2]int{ci, cj}] = true
		set.add(nodes[cand.I].Item.Id, nodes[cand.J].Item.Id, cand.Similarity, communityDistance)
	}

	return set.list(), nil
}

func (s *Community) enumerator() Enumerator {
	if s.Enumerate != nil {
		return s.Enumerate
	}
	return EnumeratePairs
}
