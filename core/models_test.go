package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKey(t *testing.T) {
	t.Run("order independent", func(t *testing.T) {
		assert.Equal(t, PairKey("a", "b"), PairKey("b", "a"))
		assert.Equal(t, PairKey("item-1", "item-42"), PairKey("item-42", "item-1"))
	})

	t.Run("distinct pairs get distinct keys", func(t *testing.T) {
		keys := map[uint64]bool{
			PairKey("a", "b"): true,
			PairKey("a", "c"): true,
			PairKey("b", "c"): true,
		}
		assert.Len(t, keys, 3)
	})

	t.Run("separator prevents boundary collisions", func(t *testing.T) {
		// "ab"+"c" and "a"+"bc" concatenate identically without a separator
		assert.NotEqual(t, PairKey("ab", "c"), PairKey("a", "bc"))
	})
}

func TestLinkKey(t *testing.T) {
	forward := &Link{Source: "x", Target: "y"}
	backward := &Link{Source: "y", Target: "x"}
	assert.Equal(t, forward.Key(), backward.Key())
}

func TestItemHasEmbedding(t *testing.T) {
	item := &Item{Id: "a", Text: "hello"}
	assert.False(t, item.HasEmbedding())

	item.Embedding = []float32{0.1, 0.2}
	assert.True(t, item.HasEmbedding())
}

func TestGraphNode(t *testing.T) {
	g := &Graph{
		Nodes: []*Node{
			{Item: &Item{Id: "a", Text: "first"}},
			{Item: &Item{Id: "b", Text: "second"}},
		},
	}

	require.NotNil(t, g.Node("b"))
	assert.Equal(t, "second", g.Node("b").Item.Text)
	assert.Nil(t, g.Node("missing"))
}

func TestNewQueryContext(t *testing.T) {
	q := NewQueryContext("hello")

	assert.Equal(t, "hello", q.Query)
	assert.Equal(t, 5, q.MaxResults)
	assert.False(t, q.CaseSensitive)
	assert.Equal(t, 0.7, q.SemanticThreshold)
	assert.True(t, q.HasField(FieldText))
	assert.True(t, q.HasField(FieldCategory))
	assert.True(t, q.HasField(FieldMetadata))
}

func TestQueryContextNormalize(t *testing.T) {
	q := &QueryContext{Query: "hello", MaxResults: -1}
	q.Normalize()

	assert.Equal(t, 5, q.MaxResults)
	assert.Len(t, q.Fields, 3)
	assert.Equal(t, 0.7, q.SemanticThreshold)
}

func TestQueryContextHasField(t *testing.T) {
	q := &QueryContext{Query: "x", Fields: []Field{FieldText}}
	assert.True(t, q.HasField(FieldText))
	assert.False(t, q.HasField(FieldMetadata))
}

func TestValidateItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateItem(&Item{Id: "a", Text: "hello world"}))
	})

	t.Run("nil item", func(t *testing.T) {
		err := ValidateItem(nil)
		assert.ErrorIs(t, err, ErrInvalidItem)
	})

	t.Run("empty id", func(t *testing.T) {
		err := ValidateItem(&Item{Text: "hello"})
		assert.ErrorIs(t, err, ErrEmptyItemId)
	})

	t.Run("whitespace text", func(t *testing.T) {
		err := ValidateItem(&Item{Id: "a", Text: "   \t  "})
		assert.ErrorIs(t, err, ErrEmptyText)
	})
}

func TestValidateQueryContext(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateQueryContext(NewQueryContext("hello")))
	})

	t.Run("empty query", func(t *testing.T) {
		err := ValidateQueryContext(&QueryContext{Query: "  "})
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("unknown field", func(t *testing.T) {
		err := ValidateQueryContext(&QueryContext{Query: "x", Fields: []Field{"body"}})
		assert.ErrorIs(t, err, ErrUnknownField)
	})
}
