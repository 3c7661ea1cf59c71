// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/poiesic/textgraph/core"
)

// Input format names accepted by Parse.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatText = "text"
)

// minTextLength is the minimum trimmed text length for a usable record.
const minTextLength = 3

// reservedFields are the item fields recognized by name; everything else in
// a record is folded into metadata.
var reservedFields = map[string]bool{
	"id":        true,
	"text":      true,
	"category":  true,
	"embedding": true,
	"metadata":  true,
}

// Parse reads items from r in the named format.
// Returns ErrUnknownFormat for an unrecognized format name and ErrEmptyInput
// when no record survives validation.
func Parse(r io.Reader, format string) ([]*core.Item, error) {
	var (
		items []*core.Item
		err   error
	)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		items, err = ParseJSON(r)
	case FormatCSV:
		items, err = ParseCSV(r)
	case FormatText:
		items, err = ParseText(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}
	return items, nil
}

// ParseJSON reads items from a JSON array of objects. Recognized fields are
// id, text, category, embedding, and metadata; remaining scalar fields are
// folded into metadata. Records without usable text are skipped.
func ParseJSON(r io.Reader) ([]*core.Item, error) {
	var records []map[string]any
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding json input: %w", err)
	}

	var items []*core.Item
	for _, record := range records {
		text := strings.TrimSpace(stringField(record, "text"))
		if len(text) < minTextLength {
			continue
		}

		item := &core.Item{
			Id:        strings.TrimSpace(stringField(record, "id")),
			Text:      text,
			Category:  strings.TrimSpace(stringField(record, "category")),
			Embedding: parseEmbedding(record["embedding"]),
			Metadata:  parseMetadata(record["metadata"]),
		}
		if item.Id == "" {
			item.Id = syntheticId(len(items))
		}

		// Fold unrecognized scalar fields into metadata.
		for field, value := range record {
			if reservedFields[field] {
				continue
			}
			str, ok := stringifyScalar(value)
			if !ok {
				continue
			}
			if item.Metadata == nil {
				item.Metadata = make(map[string]string)
			}
			item.Metadata[field] = str
		}

		items = append(items, item)
	}
	return items, nil
}

// ParseCSV reads items from CSV input with a header row. The embedding and
// metadata columns hold JSON-encoded values; extra columns are folded into
// metadata. Records without usable text are skipped.
func ParseCSV(r io.Reader) ([]*core.Item, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decoding csv input: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingHeader
	}

	header := make([]string, len(rows[0]))
	textColumn := -1
	for i, name := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(name))
		if header[i] == "text" {
			textColumn = i
		}
	}
	if textColumn == -1 {
		return nil, ErrMissingHeader
	}

	var items []*core.Item
	for _, row := range rows[1:] {
		record := make(map[string]any, len(header))
		for i, value := range row {
			if i < len(header) && header[i] != "" {
				record[header[i]] = value
			}
		}

		text := strings.TrimSpace(stringField(record, "text"))
		if len(text) < minTextLength {
			continue
		}

		item := &core.Item{
			Id:        strings.TrimSpace(stringField(record, "id")),
			Text:      text,
			Category:  strings.TrimSpace(stringField(record, "category")),
			Embedding: parseEmbedding(record["embedding"]),
			Metadata:  parseMetadata(record["metadata"]),
		}
		if item.Id == "" {
			item.Id = syntheticId(len(items))
		}

		for field, value := range record {
			if reservedFields[field] {
				continue
			}
			str, ok := stringifyScalar(value)
			if !ok || str == "" {
				continue
			}
			if item.Metadata == nil {
				item.Metadata = make(map[string]string)
			}
			item.Metadata[field] = str
		}

		items = append(items, item)
	}
	return items, nil
}

// ParseText reads items from plain text, one item per non-empty line.
// All ids are synthetic; lines shorter than the minimum length are skipped.
func ParseText(r io.Reader) ([]*core.Item, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var items []*core.Item
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if len(text) < minTextLength {
			continue
		}
		items = append(items, &core.Item{
			Id:   syntheticId(len(items)),
			Text: text,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text input: %w", err)
	}
	return items, nil
}

// syntheticId produces a positional default id for records that carry none.
func syntheticId(position int) string {
	return fmt.Sprintf("item-%d", position+1)
}

// stringField extracts a string-valued field, or "" when absent or non-string.
func stringField(record map[string]any, field string) string {
	if value, ok := record[field].(string); ok {
		return value
	}
	return ""
}

// parseEmbedding accepts an embedding as a JSON array or a JSON-encoded
// string. Anything unparseable yields nil, never an error.
func parseEmbedding(value any) []float32 {
	switch v := value.(type) {
	case []any:
		embedding := make([]float32, 0, len(v))
		for _, element := range v {
			number, ok := element.(float64)
			if !ok {
				return nil
			}
			embedding = append(embedding, float32(number))
		}
		if len(embedding) == 0 {
			return nil
		}
		return embedding
	case string:
		var embedding []float32
		if err := json.Unmarshal([]byte(v), &embedding); err != nil {
			return nil
		}
		if len(embedding) == 0 {
			return nil
		}
		return embedding
	default:
		return nil
	}
}

// parseMetadata accepts metadata as a JSON object or a JSON-encoded string.
// Scalar values are stringified; structured values and parse failures are
// dropped silently.
func parseMetadata(value any) map[string]string {
	var raw map[string]any

	switch v := value.(type) {
	case map[string]any:
		raw = v
	case string:
		if err := json.Unmarshal([]byte(v), &raw); err != nil {
			return nil
		}
	default:
		return nil
	}

	if len(raw) == 0 {
		return nil
	}

	metadata := make(map[string]string, len(raw))
	for field, fieldValue := range raw {
		if str, ok := stringifyScalar(fieldValue); ok {
			metadata[field] = str
		}
	}
	if len(metadata) == 0 {
		return nil
	}
	return metadata
}

// stringifyScalar converts a JSON scalar to its string form.
// Structured values report false.
func stringifyScalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}
