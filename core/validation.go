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


package core

import (
	"fmt"
	"strings"
)

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Text must not be empty after trimming
//
// NOT validated (populated by the pipeline or optional):
//   - Embedding (can be empty until the embedding pipeline runs)
//   - Category and Metadata (optional)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if item.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyItemId)
	}

	if strings.TrimSpace(item.Text) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyText)
	}

	return nil
}

// ValidateQueryContext validates a QueryContext according to domain rules.
//
// Validation rules:
//   - Query must not be empty after trimming
//   - Fields must name known fields
//
// Unset numeric options are not an error; Normalize fills in defaults.
func ValidateQueryContext(q *QueryContext) error {
	if q == nil {
		return fmt.Errorf("%w: query context is nil", ErrInvalidQuery)
	}

	if strings.TrimSpace(q.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQuery)
	}

	for _, f := range q.Fields {
		switch f {
		case FieldText, FieldCategory, FieldMetadata:
		default:
			return fmt.Errorf("%w: %w: %q", ErrInvalidQuery, ErrUnknownField, f)
		}
	}

	return nil
}
