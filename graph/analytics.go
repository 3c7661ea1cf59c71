package graph

import (
	"fmt"
	"sort"

	"github.com/poiesic/textgraph/core"
	"github.com/poiesic/textgraph/vector"
)

// Neighbor pairs a directly connected node with the link that connects it.
type Neighbor struct {
	Node *core.Node
	Link *core.Link
}

// Distribution summarizes per-node link counts.
type Distribution struct {
	Buckets map[string]int // "0", "1-2", "3-5", "6-10", "10+"
	Mean    float64
	Min     int
	Max     int
}

// adjacency builds a node-id -> links index for a graph.
func adjacency(g *core.Graph) map[string][]*core.Link {
	adj := make(map[string][]*core.Link, len(g.Nodes))
	for _, node := range g.Nodes {
		adj[node.Item.Id] = nil
	}
	for _, link := range g.Links {
		adj[link.Source] = append(adj[link.Source], link)
		adj[link.Target] = append(adj[link.Target], link)
	}
	return adj
}

// Neighborhood returns the nodes directly linked to the given node together
// with the connecting links, sorted by similarity descending.
func Neighborhood(g *core.Graph, nodeId string) ([]Neighbor, error) {
	if g.Node(nodeId) == nil {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, nodeId)
	}

	byId := make(map[string]*core.Node, len(g.Nodes))
	for _, node := range g.Nodes {
		byId[node.Item.Id] = node
	}

	var neighbors []Neighbor
	for _, link := range g.Links {
		var otherId string
		switch nodeId {
		case link.Source:
			otherId = link.Target
		case link.Target:
			otherId = link.Source
		default:
			continue
		}
		if other, ok := byId[otherId]; ok {
			neighbors = append(neighbors, Neighbor{Node: other, Link: link})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Link.Similarity > neighbors[j].Link.Similarity
	})

	return neighbors, nil
}

// ShortestPath finds the shortest node sequence between two nodes using an
// unweighted breadth-first search over the link adjacency. Returns [from]
// when from == to, and ErrNoPath when the nodes are disconnected.
func ShortestPath(g *core.Graph, fromId, toId string) ([]string, error) {
	if g.Node(fromId) == nil {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, fromId)
	}
	if g.Node(toId) == nil {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, toId)
	}
	if fromId == toId {
		return []string{fromId}, nil
	}

	adj := adjacency(g)
	parent := map[string]string{fromId: fromId}
	queue := []string{fromId}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, link := range adj[current] {
			next := link.Target
			if next == current {
				next = link.Source
			}
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current

			if next == toId {
				// Walk back to build the path.
				path := []string{toId}
				for at := toId; at != fromId; {
					at = parent[at]
					path = append(path, at)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path, nil
			}
			queue = append(queue, next)
		}
	}

	return nil, fmt.Errorf("%w: %q to %q", ErrNoPath, fromId, toId)
}

// IsConnected reports whether a depth-first traversal from an arbitrary
// node visits every node. Empty and single-node graphs are connected.
func IsConnected(g *core.Graph) bool {
	if len(g.Nodes) <= 1 {
		return true
	}

	adj := adjacency(g)
	visited := make(map[string]bool, len(g.Nodes))
	stack := []string{g.Nodes[0].Item.Id}
	visited[g.Nodes[0].Item.Id] = true

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, link := range adj[current] {
			next := link.Target
			if next == current {
				next = link.Source
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}

	return len(visited) == len(g.Nodes)
}

// Density returns linkCount / (n*(n-1)/2) for n > 1, else 0.
func Density(g *core.Graph) float64 {
	n := len(g.Nodes)
	if n <= 1 {
		return 0
	}
	possible := float64(n*(n-1)) / 2
	return float64(len(g.Links)) / possible
}

// ConnectionDistribution builds a histogram of per-node link counts.
func ConnectionDistribution(g *core.Graph) Distribution {
	dist := Distribution{
		Buckets: map[string]int{"0": 0, "1-2": 0, "3-5": 0, "6-10": 0, "10+": 0},
	}
	if len(g.Nodes) == 0 {
		return dist
	}

	adj := adjacency(g)
	total := 0
	first := true
	for _, node := range g.Nodes {
		count := len(adj[node.Item.Id])
		total += count

		switch {
		case count == 0:
			dist.Buckets["0"]++
		case count <= 2:
			dist.Buckets["1-2"]++
		case count <= 5:
			dist.Buckets["3-5"]++
		case count <= 10:
			dist.Buckets["6-10"]++
		default:
			dist.Buckets["10+"]++
		}

		if first || count < dist.Min {
			dist.Min = count
		}
		if count > dist.Max {
			dist.Max = count
		}
		first = false
	}

	dist.Mean = float64(total) / float64(len(g.Nodes))
	return dist
}

// FindSimilarNodes ranks all other embedded nodes by direct cosine
// similarity to the target, independent of any assembled graph. Nodes below
// minSimilarity or with mismatched dimensions are excluded.
func FindSimilarNodes(target *core.Node, all []*core.Node, maxResults int, minSimilarity float64) []Neighbor {
	if target == nil || !target.Item.HasEmbedding() {
		return nil
	}

	var similar []Neighbor
	for _, node := range all {
		if node.Item.Id == target.Item.Id || !node.Item.HasEmbedding() {
			continue
		}
		similarity, err := vector.Cosine(target.Item.Embedding, node.Item.Embedding)
		if err != nil || similarity < minSimilarity {
			continue
		}
		similar = append(similar, Neighbor{
			Node: node,
			Link: &core.Link{
				Source:     target.Item.Id,
				Target:     node.Item.Id,
				Similarity: similarity,
				Distance:   topkDistance.base + (1-similarity)*topkDistance.spread,
			},
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Link.Similarity > similar[j].Link.Similarity
	})

	if maxResults > 0 && len(similar) > maxResults {
		similar = similar[:maxResults]
	}
	return similar
}
