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


package storage

import (
	"context"

	"github.com/poiesic/textgraph/core"
)

// ItemRepository provides operations for managing items.
// Implementations must be thread-safe and support concurrent access.
type ItemRepository interface {
	// PutItems inserts or replaces one or more items, keyed by item id.
	PutItems(ctx context.Context, items ...*core.Item) error

	// GetItem retrieves a single item by id.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id string) (*core.Item, error)

	// GetItems retrieves multiple items by their ids.
	// Returns only the items that exist (no error for missing items).
	GetItems(ctx context.Context, ids ...string) ([]*core.Item, error)

	// ListItems retrieves all stored items, ordered by id.
	ListItems(ctx context.Context) ([]*core.Item, error)

	// ListItemsByCategory retrieves all items with the given category,
	// ordered by id.
	ListItemsByCategory(ctx context.Context, category string) ([]*core.Item, error)

	// DeleteItems removes items by their ids.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteItems(ctx context.Context, ids ...string) error

	// Count returns the number of stored items.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
