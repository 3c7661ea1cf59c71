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


package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/textgraph/core"
	"github.com/poiesic/textgraph/storage"
)

func setupRepository(t *testing.T) storage.ItemRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, repo.Close())
		require.NoError(t, backend.Close())
	})
	return repo
}

func storedItem(id, category string) *core.Item {
	return &core.Item{
		Id:        id,
		Text:      "text for " + id,
		Category:  category,
		Embedding: []float32{0.25, 0.5, 0.75},
		Metadata:  map[string]string{"source": "test"},
	}
}

func TestItemRepositoryPutGet(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	original := storedItem("a", "alpha")
	require.NoError(t, repo.PutItems(ctx, original))

	t.Run("round trip", func(t *testing.T) {
		got, err := repo.GetItem(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, original.Id, got.Id)
		assert.Equal(t, original.Text, got.Text)
		assert.Equal(t, original.Category, got.Category)
		assert.Equal(t, original.Embedding, got.Embedding)
		assert.Equal(t, original.Metadata, got.Metadata)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := repo.GetItem(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("replace on re-put", func(t *testing.T) {
		updated := storedItem("a", "alpha")
		updated.Text = "updated text"
		require.NoError(t, repo.PutItems(ctx, updated))

		got, err := repo.GetItem(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "updated text", got.Text)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestItemRepositoryGetItems(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	require.NoError(t, repo.PutItems(ctx,
		storedItem("a", "alpha"),
		storedItem("b", "beta"),
	))

	items, err := repo.GetItems(ctx, "a", "missing", "b")
	require.NoError(t, err)
	require.Len(t, items, 2, "missing ids are skipped")
	assert.Equal(t, "a", items[0].Id)
	assert.Equal(t, "b", items[1].Id)
}

func TestItemRepositoryListItems(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	t.Run("empty store", func(t *testing.T) {
		items, err := repo.ListItems(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	// Insert out of id order; listing is key-ordered.
	require.NoError(t, repo.PutItems(ctx,
		storedItem("c", ""),
		storedItem("a", "alpha"),
		storedItem("b", "beta"),
	))

	t.Run("ordered by id", func(t *testing.T) {
		items, err := repo.ListItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "a", items[0].Id)
		assert.Equal(t, "b", items[1].Id)
		assert.Equal(t, "c", items[2].Id)
	})
}

func TestItemRepositoryListItemsByCategory(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	require.NoError(t, repo.PutItems(ctx,
		storedItem("a", "alpha"),
		storedItem("b", "beta"),
		storedItem("c", "alpha"),
		storedItem("d", ""),
	))

	t.Run("matching category", func(t *testing.T) {
		items, err := repo.ListItemsByCategory(ctx, "alpha")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "a", items[0].Id)
		assert.Equal(t, "c", items[1].Id)
	})

	t.Run("unknown category", func(t *testing.T) {
		items, err := repo.ListItemsByCategory(ctx, "gamma")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("index follows category change", func(t *testing.T) {
		moved := storedItem("a", "beta")
		require.NoError(t, repo.PutItems(ctx, moved))

		alphas, err := repo.ListItemsByCategory(ctx, "alpha")
		require.NoError(t, err)
		require.Len(t, alphas, 1)
		assert.Equal(t, "c", alphas[0].Id)

		betas, err := repo.ListItemsByCategory(ctx, "beta")
		require.NoError(t, err)
		require.Len(t, betas, 2)
		assert.Equal(t, "a", betas[0].Id)
		assert.Equal(t, "b", betas[1].Id)
	})
}

func TestItemRepositoryDeleteItems(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	require.NoError(t, repo.PutItems(ctx,
		storedItem("a", "alpha"),
		storedItem("b", "alpha"),
	))

	t.Run("removes item and index entry", func(t *testing.T) {
		require.NoError(t, repo.DeleteItems(ctx, "a"))

		_, err := repo.GetItem(ctx, "a")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		remaining, err := repo.ListItemsByCategory(ctx, "alpha")
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, "b", remaining[0].Id)
	})

	t.Run("missing id", func(t *testing.T) {
		err := repo.DeleteItems(ctx, "a")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestItemRepositoryCount(t *testing.T) {
	ctx := context.Background()
	repo := setupRepository(t)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.PutItems(ctx,
		storedItem("a", "alpha"),
		storedItem("b", ""),
	))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, repo.DeleteItems(ctx, "b"))

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
