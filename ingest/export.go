package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/textgraph/core"
)

// ExportItemsJSON writes items to w as an indented JSON array with full
// fidelity; ParseJSON reads the output back losslessly.
func ExportItemsJSON(w io.Writer, items []*core.Item) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(items); err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	return nil
}

// ExportGraphJSON writes an assembled graph to w as indented JSON.
func ExportGraphJSON(w io.Writer, graph *core.Graph) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return nil
}

// ExportResultsJSON writes search results to w as indented JSON.
func ExportResultsJSON(w io.Writer, results []*core.SearchResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("encoding search results: %w", err)
	}
	return nil
}

// ExportItemsCSV writes items to w as CSV with a header row. Embeddings and
// metadata are flattened to JSON-encoded strings, the form ParseCSV accepts.
func ExportItemsCSV(w io.Writer, items []*core.Item) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"id", "text", "category", "embedding", "metadata"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, item := range items {
		embedding := ""
		if item.HasEmbedding() {
			data, err := json.Marshal(item.Embedding)
			if err != nil {
				return fmt.Errorf("encoding embedding for %s: %w", item.Id, err)
			}
			embedding = string(data)
		}

		metadata := ""
		if len(item.Metadata) > 0 {
			data, err := json.Marshal(item.Metadata)
			if err != nil {
				return fmt.Errorf("encoding metadata for %s: %w", item.Id, err)
			}
			metadata = string(data)
		}

		row := []string{item.Id, item.Text, item.Category, embedding, metadata}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", item.Id, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
