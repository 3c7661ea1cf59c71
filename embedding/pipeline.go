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


package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/textgraph/ai"
	"github.com/poiesic/textgraph/core"
	"github.com/poiesic/textgraph/vector"
)

// providerBatchLimit is the external provider's maximum inputs per call.
const providerBatchLimit = 50

// Config holds configuration for a pipeline run.
type Config struct {
	// BatchSize is the number of items submitted per provider call.
	// Values above the provider limit of 50 are clamped. Default: 50
	BatchSize int

	// MaxAttempts is the total submission attempts per batch, including
	// the first. Only rate-limit failures are retried. Default: 3
	MaxAttempts int

	// RetryDelay is the base delay for exponential backoff. Default: 1s
	RetryDelay time.Duration

	// BatchPause is the fixed delay between successful batches, inserted
	// to stay under provider rate limits. Default: 200ms
	BatchPause time.Duration

	// UnitPrice is the provider's price per 1000 tokens, used for the
	// pre-run cost estimate. Default: 0.0001
	UnitPrice float64

	// MetadataFields are the metadata fields composed into the embedding
	// input alongside text and category.
	MetadataFields []string

	// Counter estimates token usage. Nil uses HeuristicCounter.
	Counter TokenCounter
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:   providerBatchLimit,
		MaxAttempts: 3,
		RetryDelay:  1 * time.Second,
		BatchPause:  200 * time.Millisecond,
		UnitPrice:   0.0001,
	}
}

func (c *Config) batchSize() int {
	if c.BatchSize <= 0 || c.BatchSize > providerBatchLimit {
		return providerBatchLimit
	}
	return c.BatchSize
}

func (c *Config) counter() TokenCounter {
	if c.Counter == nil {
		return HeuristicCounter{}
	}
	return c.Counter
}

// Report summarizes a pipeline run.
type Report struct {
	Requested int // items submitted to the run
	Embedded  int // items that received an embedding
	Missing   int // items left unembedded by short provider responses
	Batches   int // batches successfully completed
	Estimate  Estimate
}

// Pipeline embeds items in rate-limited, retryable batches.
type Pipeline struct {
	embedder ai.Embedder
	config   *Config
	monitor  Monitor
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithMonitor sets a progress monitor.
// Default is a no-op monitor.
func WithMonitor(monitor Monitor) Option {
	return func(p *Pipeline) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		p.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline around the given embedder.
// A nil config uses DefaultConfig().
func NewPipeline(embedder ai.Embedder, config *Config, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.MaxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}

	p := &Pipeline{
		embedder: embedder,
		config:   config,
		monitor:  &noopMonitor{},
		logger:   slog.Default().With("component", "embedding-pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Estimate projects the token count and cost of a run without calling the
// provider.
func (p *Pipeline) Estimate(items []*core.Item) Estimate {
	return EstimateRun(items, p.config)
}

// Run embeds all the given items, attaching vectors in place. The item
// slice must not be mutated by the caller until Run returns.
//
// Embeddings committed by earlier batches are preserved when a later batch
// fails. The run succeeds even if some items end up without an embedding;
// callers must check per-item coverage downstream.
func (p *Pipeline) Run(ctx context.Context, items []*core.Item) (*Report, error) {
	report := &Report{Requested: len(items)}

	p.monitor.Progress(StagePreparing, preparingPercent,
		fmt.Sprintf("preparing %d items", len(items)))

	if len(items) == 0 {
		p.monitor.Progress(StageComplete, completePercent, "nothing to embed")
		return report, nil
	}

	inputs := make([]string, len(items))
	for i, item := range items {
		inputs[i] = composeInput(item, p.config.MetadataFields)
	}

	report.Estimate = p.Estimate(items)
	p.logger.Info("estimated run",
		"items", report.Estimate.Items,
		"tokens", report.Estimate.Tokens,
		"cost", report.Estimate.Cost)

	batchSize := p.config.batchSize()
	totalBatches := (len(items) + batchSize - 1) / batchSize
	p.monitor.Progress(StageBatching, batchingPercent,
		fmt.Sprintf("split into %d batches of up to %d items", totalBatches, batchSize))

	for batch := 0; batch < totalBatches; batch++ {
		// Cancellation is honored only at batch boundaries so no batch is
		// ever half-applied.
		select {
		case <-ctx.Done():
			p.monitor.Progress(StageFailed, submitPercent(batch, totalBatches), "run canceled")
			return report, ctx.Err()
		default:
		}

		start := batch * batchSize
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batchItems := items[start:end]
		batchInputs := inputs[start:end]

		p.monitor.Progress(StageSubmitting, submitPercent(batch, totalBatches),
			fmt.Sprintf("submitting batch %d/%d (%d items)", batch+1, totalBatches, len(batchItems)))

		var vectors [][]float32
		attempts, err := RetryWithBackoff(ctx, func() error {
			var opErr error
			vectors, opErr = p.embedder.EmbedTexts(ctx, batchInputs)
			return opErr
		}, p.config.MaxAttempts, p.config.RetryDelay, ai.IsRateLimit, func(attempt int, delay time.Duration) {
			p.monitor.Progress(StageRetrying, submitPercent(batch, totalBatches),
				fmt.Sprintf("batch %d/%d rate limited, retrying in %s (attempt %d/%d)",
					batch+1, totalBatches, delay, attempt+1, p.config.MaxAttempts))
		})

		if err != nil {
			batchErr := &BatchError{Batch: batch, Attempts: attempts, Err: err}
			p.logger.Error("batch failed", "batch", batch, "attempts", attempts, "err", err)
			p.monitor.Progress(StageFailed, submitPercent(batch, totalBatches), batchErr.Error())
			return report, batchErr
		}

		embedded := p.applyBatch(batch, batchItems, vectors, report)
		p.logger.Debug("batch complete", "batch", batch, "embedded", embedded, "attempts", attempts)
		report.Batches++

		// Pace between batches to stay under provider rate limits.
		if batch < totalBatches-1 && p.config.BatchPause > 0 {
			timer := time.NewTimer(p.config.BatchPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				p.monitor.Progress(StageFailed, submitPercent(batch+1, totalBatches), "run canceled")
				return report, ctx.Err()
			case <-timer.C:
			}
		}
	}

	p.monitor.Progress(StageFinalizing, finalizingPercent,
		fmt.Sprintf("embedded %d/%d items", report.Embedded, report.Requested))
	p.monitor.Progress(StageComplete, completePercent,
		fmt.Sprintf("complete: %d items embedded in %d batches", report.Embedded, report.Batches))

	return report, nil
}

// applyBatch writes vectors back onto items by positional offset. A short
// provider response leaves the remaining items unembedded; the discrepancy
// is logged, not fatal.
func (p *Pipeline) applyBatch(batch int, items []*core.Item, vectors [][]float32, report *Report) int {
	count := len(vectors)
	if count > len(items) {
		count = len(items)
	}

	for i := 0; i < count; i++ {
		items[i].Embedding = vector.Normalize(vectors[i])
	}
	report.Embedded += count

	if count < len(items) {
		missing := len(items) - count
		report.Missing += missing
		p.logger.Warn("provider returned fewer embeddings than requested",
			"batch", batch, "requested", len(items), "returned", count, "missing", missing)
	}

	return count
}
