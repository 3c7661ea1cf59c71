package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/textgraph/core"
)

func TestHeuristicCounter(t *testing.T) {
	counter := HeuristicCounter{}

	// words × 4/3, rounded up
	assert.Equal(t, 0, counter.Count(""))
	assert.Equal(t, 2, counter.Count("one"))
	assert.Equal(t, 4, counter.Count("one two three"))
	assert.Equal(t, 8, counter.Count("a b c d e f"))
}

func TestEstimateRun(t *testing.T) {
	items := []*core.Item{
		{Id: "a", Text: "one two three"}, // 4 tokens
		{Id: "b", Text: "one two three"}, // 4 tokens
		{Id: "c", Text: "one two three"}, // 4 tokens
	}

	config := &Config{BatchSize: 2, MaxAttempts: 3, UnitPrice: 0.5}
	est := EstimateRun(items, config)

	assert.Equal(t, 3, est.Items)
	assert.Equal(t, 2, est.Batches)
	assert.Equal(t, 12, est.Tokens)
	assert.InDelta(t, 12.0/1000*0.5, est.Cost, 1e-9)
}

func TestEstimateRun_Empty(t *testing.T) {
	est := EstimateRun(nil, DefaultConfig())
	assert.Zero(t, est.Items)
	assert.Zero(t, est.Batches)
	assert.Zero(t, est.Tokens)
	assert.Zero(t, est.Cost)
}

func TestEstimateRun_MetadataFields(t *testing.T) {
	items := []*core.Item{
		{Id: "a", Text: "one two", Metadata: map[string]string{"source": "wiki"}},
	}

	bare := EstimateRun(items, &Config{MaxAttempts: 3})
	withMeta := EstimateRun(items, &Config{MaxAttempts: 3, MetadataFields: []string{"source"}})
	assert.Greater(t, withMeta.Tokens, bare.Tokens, "selected metadata enters the input")
}

func TestComposeInput(t *testing.T) {
	item := &core.Item{
		Id:       "a",
		Text:     "hello world",
		Category: "greetings",
		Metadata: map[string]string{"source": "wiki", "author": "jane", "empty": ""},
	}

	t.Run("text only", func(t *testing.T) {
		bare := &core.Item{Id: "b", Text: "hello"}
		assert.Equal(t, "hello", composeInput(bare, nil))
	})

	t.Run("category appended", func(t *testing.T) {
		assert.Equal(t, "hello world\ncategory: greetings", composeInput(item, nil))
	})

	t.Run("selected metadata fields in order", func(t *testing.T) {
		input := composeInput(item, []string{"author", "source"})
		assert.Equal(t, "hello world\ncategory: greetings\nauthor: jane\nsource: wiki", input)
	})

	t.Run("missing and empty fields skipped", func(t *testing.T) {
		input := composeInput(item, []string{"empty", "absent"})
		assert.Equal(t, "hello world\ncategory: greetings", input)
	})
}

func TestRetryWithBackoff(t *testing.T) {
	retryAll := func(error) bool { return true }

	t.Run("first try success", func(t *testing.T) {
		calls := 0
		attempts, err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return nil
		}, 3, time.Millisecond, retryAll, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("eventual success", func(t *testing.T) {
		calls := 0
		attempts, err := RetryWithBackoff(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, 5, time.Millisecond, retryAll, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("exhaustion returns the last error", func(t *testing.T) {
		expected := errors.New("persistent")
		attempts, err := RetryWithBackoff(context.Background(), func() error {
			return expected
		}, 3, time.Millisecond, retryAll, nil)
		require.Error(t, err)
		assert.Equal(t, expected, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("non retryable stops immediately", func(t *testing.T) {
		calls := 0
		attempts, err := RetryWithBackoff(context.Background(), func() error {
			calls++
			return errors.New("fatal")
		}, 5, time.Millisecond, func(error) bool { return false }, nil)
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, calls)
	})

	t.Run("backoff doubles", func(t *testing.T) {
		var delays []time.Duration
		_, err := RetryWithBackoff(context.Background(), func() error {
			return errors.New("transient")
		}, 3, 10*time.Millisecond, retryAll, func(attempt int, delay time.Duration) {
			delays = append(delays, delay)
		})
		require.Error(t, err)
		require.Len(t, delays, 2)
		assert.Equal(t, 10*time.Millisecond, delays[0])
		assert.Equal(t, 20*time.Millisecond, delays[1])
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		attempts, err := RetryWithBackoff(ctx, func() error {
			return errors.New("never reached")
		}, 3, time.Millisecond, retryAll, nil)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, attempts)
	})

	t.Run("invalid max attempts", func(t *testing.T) {
		_, err := RetryWithBackoff(context.Background(), func() error { return nil }, 0, time.Millisecond, retryAll, nil)
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
	})
}
