package graph

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/textgraph/core"
)

// testNode builds a node around a raw embedding.
func testNode(id string, embedding []float32) *core.Node {
	return &core.Node{
		Item: &core.Item{
			Id:        id,
			Text:      "text for " + id,
			Embedding: embedding,
		},
	}
}

// angleNode builds a node whose 2D embedding sits at the given angle, so
// pairwise cosine similarity is exactly cos(delta).
func angleNode(id string, angle float64) *core.Node {
	return testNode(id, []float32{float32(math.Cos(angle)), float32(math.Sin(angle))})
}

// assertWellFormed checks the guarantees every strategy shares: no self
// links and no duplicate undirected pairs.
func assertWellFormed(t *testing.T, links []*core.Link) {
	t.Helper()
	seen := make(map[uint64]bool)
	for _, link := range links {
		assert.NotEqual(t, link.Source, link.Target, "self link")
		key := link.Key()
		assert.False(t, seen[key], "duplicate pair %s-%s", link.Source, link.Target)
		seen[key] = true
	}
}

func TestEnumeratePairs(t *testing.T) {
	t.Run("skips nodes without embeddings", func(t *testing.T) {
		nodes := []*core.Node{
			angleNode("a", 0),
			testNode("bare", nil),
			angleNode("b", 0.1),
		}
		candidates := EnumeratePairs(nodes, 0.05)
		require.Len(t, candidates, 1)
		assert.Equal(t, 0, candidates[0].I)
		assert.Equal(t, 2, candidates[0].J)
	})

	t.Run("applies noise floor", func(t *testing.T) {
		nodes := []*core.Node{
			angleNode("a", 0),
			angleNode("b", math.Pi/2), // orthogonal, similarity 0
		}
		assert.Empty(t, EnumeratePairs(nodes, 0.05))
	})

	t.Run("sorted descending", func(t *testing.T) {
		nodes := []*core.Node{
			angleNode("a", 0),
			angleNode("b", 0.2),
			angleNode("c", 0.8),
		}
		candidates := EnumeratePairs(nodes, 0.05)
		require.NotEmpty(t, candidates)
		for i := 1; i < len(candidates); i++ {
			assert.GreaterOrEqual(t, candidates[i-1].Similarity, candidates[i].Similarity)
		}
	})

	t.Run("excludes mismatched dimensions", func(t *testing.T) {
		nodes := []*core.Node{
			testNode("a", []float32{1, 0}),
			testNode("b", []float32{1, 0, 0}),
		}
		assert.Empty(t, EnumeratePairs(nodes, 0.05))
	})
}

func TestTopK(t *testing.T) {
	// Fan of close angles: every pair clears the noise floor.
	nodes := []*core.Node{
		angleNode("a", 0),
		angleNode("b", 0.1),
		angleNode("c", 0.2),
		angleNode("d", 0.3),
		angleNode("e", 0.4),
	}

	t.Run("per node contribution bound", func(t *testing.T) {
		s := &TopK{K: 2}
		links, err := s.Generate(nodes, DefaultOptions())
		require.NoError(t, err)
		assertWellFormed(t, links)

		// n nodes picking at most K neighbors each yields at most n*K links.
		assert.LessOrEqual(t, len(links), len(nodes)*2)
		assert.NotEmpty(t, links)
	})

	t.Run("larger k yields at least as many links", func(t *testing.T) {
		small, err := (&TopK{K: 1}).Generate(nodes, DefaultOptions())
		require.NoError(t, err)
		large, err := (&TopK{K: 4}).Generate(nodes, DefaultOptions())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(large), len(small))
	})

	t.Run("name includes k", func(t *testing.T) {
		assert.Equal(t, "topk3", (&TopK{K: 3}).Name())
	})
}

func TestThreshold(t *testing.T) {
	nodes := []*core.Node{
		angleNode("a", 0),
		angleNode("b", 0.1), // sim(a,b) = cos(0.1) ≈ 0.995
		angleNode("c", 1.2), // sim(a,c) = cos(1.2) ≈ 0.362
	}

	t.Run("links pairs at or above threshold", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Threshold = 0.9

		links, err := (&Threshold{}).Generate(nodes, opts)
		require.NoError(t, err)
		assertWellFormed(t, links)

		require.Len(t, links, 1)
		assert.Equal(t, core.PairKey("a", "b"), links[0].Key())
		assert.InDelta(t, math.Cos(0.1), links[0].Similarity, 1e-4)
	})

	t.Run("similarity is the true cosine", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Threshold = 0.3

		links, err := (&Threshold{}).Generate(nodes, opts)
		require.NoError(t, err)
		for _, link := range links {
			assert.Greater(t, link.Similarity, 0.3)
			assert.LessOrEqual(t, link.Similarity, 1.0)
		}
	})

	t.Run("stricter threshold yields a subset", func(t *testing.T) {
		loose := DefaultOptions()
		loose.Threshold = 0.3
		strict := DefaultOptions()
		strict.Threshold = 0.9

		looseLinks, err := (&Threshold{}).Generate(nodes, loose)
		require.NoError(t, err)
		strictLinks, err := (&Threshold{}).Generate(nodes, strict)
		require.NoError(t, err)

		looseKeys := make(map[uint64]bool, len(looseLinks))
		for _, link := range looseLinks {
			looseKeys[link.Key()] = true
		}
		for _, link := range strictLinks {
			assert.True(t, looseKeys[link.Key()], "strict link %s-%s missing from loose set", link.Source, link.Target)
		}
	})

	t.Run("distance decreases with similarity", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Threshold = 0.3

		links, err := (&Threshold{}).Generate(nodes, opts)
		require.NoError(t, err)
		require.Len(t, links, 3)
		for _, link := range links {
			expected := 20 + (1-link.Similarity)*80
			assert.InDelta(t, expected, link.Distance, 1e-9)
		}
	})
}

func TestAdaptive(t *testing.T) {
	t.Run("respects similarity floor", func(t *testing.T) {
		var nodes []*core.Node
		for i := 0; i < 12; i++ {
			nodes = append(nodes, angleNode(fmt.Sprintf("n%d", i), float64(i)*0.12))
		}

		links, err := (&Adaptive{}).Generate(nodes, DefaultOptions())
		require.NoError(t, err)
		assertWellFormed(t, links)

		for _, link := range links {
			assert.GreaterOrEqual(t, link.Similarity, 0.3, "below the adaptive floor")
		}
	})

	t.Run("dense neighborhoods link fewer neighbors per node", func(t *testing.T) {
		// All nodes nearly identical: per-node average is high, so each
		// node contributes at most 3 links.
		var nodes []*core.Node
		for i := 0; i < 8; i++ {
			nodes = append(nodes, angleNode(fmt.Sprintf("n%d", i), float64(i)*0.01))
		}

		links, err := (&Adaptive{}).Generate(nodes, DefaultOptions())
		require.NoError(t, err)
		assertWellFormed(t, links)
		assert.LessOrEqual(t, len(links), len(nodes)*3)
	})
}

func TestCategory(t *testing.T) {
	nodes := []*core.Node{
		angleNode("a1", 0),
		angleNode("a2", 0.1),
		angleNode("a3", 0.2),
		angleNode("b1", 0.3),
		angleNode("b2", 0.4),
	}
	nodes[0].Item.Category = "alpha"
	nodes[1].Item.Category = "alpha"
	nodes[2].Item.Category = "alpha"
	nodes[3].Item.Category = "beta"
	nodes[4].Item.Category = "beta"

	links, err := (&Category{}).Generate(nodes, DefaultOptions())
	require.NoError(t, err)
	assertWellFormed(t, links)
	require.NotEmpty(t, links)

	byCategory := func(id string) string {
		for _, node := range nodes {
			if node.Item.Id == id {
				return node.Item.Category
			}
		}
		return ""
	}

	var same, cross int
	for _, link := range links {
		if byCategory(link.Source) == byCategory(link.Target) {
			same++
		} else {
			cross++
		}
	}
	assert.Greater(t, same, 0, "expected same-category links")
	assert.Greater(t, cross, 0, "expected cross-category links")
}

func TestTemporal(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	stamped := func(id string, angle float64, offset time.Duration) *core.Node {
		node := angleNode(id, angle)
		node.Item.Metadata = map[string]string{
			"timestamp": base.Add(offset).Format(time.RFC3339),
		}
		return node
	}

	t.Run("links pairs within the window", func(t *testing.T) {
		nodes := []*core.Node{
			stamped("a", 0, 0),
			stamped("b", 0.1, time.Hour),
			stamped("c", 0.2, 2*time.Hour),
		}

		links, err := (&Temporal{}).Generate(nodes, DefaultOptions())
		require.NoError(t, err)
		assertWellFormed(t, links)
		assert.NotEmpty(t, links)

		// Emitted similarity is the content cosine, not the blended rank.
		for _, link := range links {
			assert.LessOrEqual(t, link.Similarity, 1.0)
			assert.Greater(t, link.Similarity, 0.9)
		}
	})

	t.Run("ignores pairs outside the window", func(t *testing.T) {
		opts := DefaultOptions()
		opts.TimeWindow = time.Hour

		nodes := []*core.Node{
			stamped("a", 0, 0),
			stamped("b", 0.1, 48*time.Hour),
		}

		links, err := (&Temporal{}).Generate(nodes, opts)
		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("ignores nodes without parseable timestamps", func(t *testing.T) {
		a := angleNode("a", 0)
		a.Item.Metadata = map[string]string{"timestamp": "not a time"}
		nodes := []*core.Node{a, stamped("b", 0.1, 0)}

		links, err := (&Temporal{}).Generate(nodes, DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, links)
	})
}

func TestCommunity(t *testing.T) {
	// Two tight clusters far apart in angle, close within.
	nodes := []*core.Node{
		angleNode("x1", 0),
		angleNode("x2", 0.05),
		angleNode("x3", 0.1),
		angleNode("y1", 1.0),
		angleNode("y2", 1.05),
		angleNode("y3", 1.1),
	}

	links, err := (&Community{}).Generate(nodes, DefaultOptions())
	require.NoError(t, err)
	assertWellFormed(t, links)
	require.NotEmpty(t, links)

	cluster := func(id string) byte { return id[0] }

	var bridges int
	for _, link := range links {
		if cluster(link.Source) != cluster(link.Target) {
			bridges++
			// cos(~1.0 rad) ≈ 0.54 > bridge threshold
			assert.Greater(t, link.Similarity, communityBridgeThreshold)
		}
	}
	assert.Equal(t, 1, bridges, "exactly one bridge between the two communities")
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	t.Run("built-ins registered", func(t *testing.T) {
		for _, name := range []string{"topk3", "topk5", "topk10", "threshold", "adaptive", "category", "temporal", "community"} {
			s, err := registry.Get(name)
			require.NoError(t, err, name)
			assert.Equal(t, name, s.Name())
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := registry.Get("voronoi")
		assert.ErrorIs(t, err, ErrUnknownStrategy)
	})

	t.Run("duplicate registration rejected", func(t *testing.T) {
		err := registry.Register(&Threshold{})
		assert.ErrorIs(t, err, ErrStrategyExists)
	})

	t.Run("custom strategy", func(t *testing.T) {
		err := registry.Register(&TopK{K: 7})
		require.NoError(t, err)
		s, err := registry.Get("topk7")
		require.NoError(t, err)
		assert.Equal(t, "topk7", s.Name())
	})
}
