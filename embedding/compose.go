package embedding

import (
	"strings"

	"github.com/poiesic/textgraph/core"
)

// composeInput combines an item's text, category, and the selected metadata
// fields into the single string submitted to the embedding provider.
func composeInput(item *core.Item, metadataFields []string) string {
	parts := []string{item.Text}

	if item.Category != "" {
		parts = append(parts, "category: "+item.Category)
	}

	for _, field := range metadataFields {
		if value, ok := item.Metadata[field]; ok && value != "" {
			parts = append(parts, field+": "+value)
		}
	}

	return strings.Join(parts, "\n")
}
