package graph

import (
	"hash/fnv"

	"github.com/poiesic/textgraph/core"
)

// Node size bounds. Size grows with text length and metadata richness but
// stays within the bounds so rendering remains stable.
const (
	nodeMinSize = 8.0
	nodeMaxSize = 30.0
)

// defaultColor is used for items without a category.
const defaultColor = "#94a3b8"

// palette holds the category colors; a category maps to a deterministic
// palette entry by hash.
var palette = []string{
	"#2563eb",
	"#dc2626",
	"#16a34a",
	"#d97706",
	"#7c3aed",
	"#db2777",
	"#0891b2",
	"#65a30d",
	"#ea580c",
	"#4f46e5",
}

// buildNode derives the presentation attributes for an item.
func buildNode(item *core.Item) *core.Node {
	return &core.Node{
		Item:  item,
		Size:  nodeSize(item),
		Color: nodeColor(item.Category),
	}
}

func nodeSize(item *core.Item) float64 {
	size := nodeMinSize + float64(len(item.Text))/40 + 2*float64(len(item.Metadata))
	if size > nodeMaxSize {
		size = nodeMaxSize
	}
	return size
}

func nodeColor(category string) string {
	if category == "" {
		return defaultColor
	}
	h := fnv.New32a()
	h.Write([]byte(category))
	return palette[h.Sum32()%uint32(len(palette))]
}
