package graph

import (
	"sort"
	"strconv"
	"time"

	"github.com/poiesic/textgraph/core"
)

var temporalDistance = distanceParams{base: 30, spread: 70}

// temporalQuota is how many temporally ranked links each node contributes.
const temporalQuota = 5

// temporalFields are tried in order when extracting a timestamp from item
// metadata; the first value that parses wins.
var temporalFields = []string{"timestamp", "created_at", "date", "time"}

var temporalLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Temporal ranks each node's candidates by a blend of temporal proximity
// (40%) and content similarity (60%) within a time window. Pairs outside
// the window, or involving a node without a parseable timestamp, are
// skipped. Emitted links still carry the true cosine similarity so distance
// stays deterministic for downstream consumers.
type Temporal struct {
	Enumerate Enumerator
}

func (s *Temporal) Name() string {
	return "temporal"
}

func (s *Temporal) Generate(nodes []*core.Node, opts *Options) ([]*core.Link, error) {
	opts = opts.normalized()

	timestamps := make([]time.Time, len(nodes))
	hasTime := make([]bool, len(nodes))
	for i, node := range nodes {
		if ts, ok := extractTimestamp(node.Item.Metadata); ok {
			timestamps[i] = ts
			hasTime[i] = true
		}
	}

	candidates := s.enumerator()(nodes, opts.NoiseFloor)
	perNode := neighborsByNode(candidates, len(nodes))

	type ranked struct {
		cand    Candidate
		blended float64
	}

	set := newLinkSet()
	window := opts.TimeWindow.Seconds()
	for i, node := range nodes {
		if !hasTime[i] {
			continue
		}

		var scored []ranked
		for _, cand := range perNode[i] {
			j := cand.other(i)
			if !hasTime[j] {
				continue
			}
			gap := timestamps[i].Sub(timestamps[j]).Abs().Seconds()
			if gap > window {
				continue
			}
			proximity := 1 - gap/window
			scored = append(scored, ranked{
				cand:    cand,
				blended: 0.6*cand.Similarity + 0.4*proximity,
			})
		}

		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].blended > scored[b].blended
		})

		taken := 0
		for _, r := range scored {
			if taken >= temporalQuota {
				break
			}
			other := nodes[r.cand.other(i)]
			set.add(node.Item.Id, other.Item.Id, r.cand.Similarity, temporalDistance)
			taken++
		}
	}

	return set.list(), nil
}

func (s *Temporal) enumerator() Enumerator {
	if s.Enumerate != nil {
		return s.Enumerate
	}
	return EnumeratePairs
}

// extractTimestamp pulls a timestamp out of item metadata, trying the known
// field names in order. Values may be RFC 3339, date-only, date-time, or
// unix seconds.
func extractTimestamp(metadata map[string]string) (time.Time, bool) {
	for _, field := range temporalFields {
		raw, ok := metadata[field]
		if !ok || raw == "" {
			continue
		}
		for _, layout := range temporalLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts, true
			}
		}
		if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC(), true
		}
	}
	return time.Time{}, false
}
