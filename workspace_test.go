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


package textgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/textgraph/ai/mock"
	"github.com/poiesic/textgraph/core"
	"github.com/poiesic/textgraph/embedding"
	"github.com/poiesic/textgraph/graph"
)

func setupWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws, err := NewWorkspace("",
		WithInMemory(),
		WithProvider(mock.NewMockProvider()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, ws.Close())
	})
	return ws
}

func TestWorkspaceAddItems(t *testing.T) {
	ctx := context.Background()
	ws := setupWorkspace(t)

	t.Run("stores valid items", func(t *testing.T) {
		err := ws.AddItems(ctx,
			&core.Item{Id: "a", Text: "cats are small mammals"},
			&core.Item{Id: "b", Text: "dogs are loyal companions"},
		)
		require.NoError(t, err)

		count, err := ws.ItemRepository().Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("rejects invalid items before storing", func(t *testing.T) {
		err := ws.AddItems(ctx,
			&core.Item{Id: "c", Text: "a valid item text"},
			&core.Item{Id: "d", Text: "   "},
		)
		require.ErrorIs(t, err, core.ErrEmptyText)

		_, err = ws.ItemRepository().GetItem(ctx, "c")
		assert.Error(t, err, "nothing from a rejected batch is stored")
	})
}

func TestWorkspaceEmbedItems(t *testing.T) {
	ctx := context.Background()
	ws := setupWorkspace(t)

	preEmbedded := &core.Item{
		Id: "done", Text: "already embedded item",
		Embedding: []float32{1, 0, 0},
	}
	require.NoError(t, ws.AddItems(ctx,
		&core.Item{Id: "a", Text: "cats are small mammals"},
		&core.Item{Id: "b", Text: "dogs are loyal companions"},
		preEmbedded,
	))

	report, err := ws.EmbedItems(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Requested, "items with embeddings are skipped")
	assert.Equal(t, 2, report.Embedded)
	assert.Equal(t, 0, report.Missing)
	assert.Equal(t, 1, report.Batches)

	t.Run("embeddings persisted", func(t *testing.T) {
		items, err := ws.ItemRepository().ListItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		for _, item := range items {
			assert.True(t, item.HasEmbedding(), "item %s has no embedding", item.Id)
		}
	})

	t.Run("untouched embedding survives", func(t *testing.T) {
		got, err := ws.ItemRepository().GetItem(ctx, "done")
		require.NoError(t, err)
		assert.Equal(t, preEmbedded.Embedding, got.Embedding)
	})

	t.Run("nothing pending", func(t *testing.T) {
		report, err := ws.EmbedItems(ctx, embedding.DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 0, report.Requested)
		assert.Equal(t, 0, report.Batches)
	})
}

func TestWorkspaceGenerateGraph(t *testing.T) {
	ctx := context.Background()
	ws := setupWorkspace(t)

	require.NoError(t, ws.AddItems(ctx,
		&core.Item{Id: "cats", Text: "cats are small mammals", Category: "animals",
			Embedding: []float32{1, 0.1}},
		&core.Item{Id: "dogs", Text: "dogs are loyal companions", Category: "animals",
			Embedding: []float32{1, 0.2}},
		&core.Item{Id: "space", Text: "rockets leave the atmosphere", Category: "science",
			Embedding: []float32{0, 1}},
	))

	opts := graph.DefaultOptions()
	opts.Threshold = 0.5

	g, err := ws.GenerateGraph(ctx, "threshold", opts)
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 3)
	require.Len(t, g.Links, 1)
	assert.Equal(t, core.PairKey("cats", "dogs"), g.Links[0].Key())

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := ws.GenerateGraph(ctx, "voronoi", nil)
		assert.ErrorIs(t, err, graph.ErrUnknownStrategy)
	})
}

func TestWorkspaceSearch(t *testing.T) {
	ctx := context.Background()
	ws := setupWorkspace(t)

	require.NoError(t, ws.AddItems(ctx,
		&core.Item{Id: "cats", Text: "cats are small mammals", Category: "animals"},
		&core.Item{Id: "dogs", Text: "dogs are loyal companions", Category: "animals"},
		&core.Item{Id: "space", Text: "rockets leave the atmosphere", Category: "science"},
	))

	t.Run("single strategy", func(t *testing.T) {
		results, err := ws.Search(ctx, "text", core.NewQueryContext("mammals"))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "cats", results[0].Item.Id)
	})

	t.Run("multi search fans out", func(t *testing.T) {
		results, err := ws.MultiSearch(ctx, core.NewQueryContext("animals"), "text", "category")
		require.NoError(t, err)
		require.Len(t, results, 2)

		category := results["category"]
		require.Len(t, category, 2)
		assert.Equal(t, core.MatchExact, category[0].MatchType)
	})
}
