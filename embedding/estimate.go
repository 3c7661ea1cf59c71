package embedding

import (
	"strings"

	"github.com/pkoukk/tiktoken-go"
	"github.com/poiesic/textgraph/core"
)

// TokenCounter estimates how many tokens a text consumes at the provider.
type TokenCounter interface {
	Count(text string) int
}

// HeuristicCounter approximates tokens as words × 4/3. It is provider
// agnostic and needs no encoding tables, which makes it the default for
// pre-run cost estimates.
type HeuristicCounter struct{}

func (HeuristicCounter) Count(text string) int {
	words := len(strings.Fields(text))
	return (words*4 + 2) / 3
}

// TiktokenCounter counts tokens exactly with a BPE encoding, for callers
// that want provider-accurate estimates.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for the given encoding name,
// e.g. "cl100k_base" or "o200k_base".
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return &TiktokenCounter{enc: enc}, nil
}

func (c *TiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// Estimate is the pre-run token and cost projection of a pipeline run.
// Callers may abort based on it before any provider call is made.
type Estimate struct {
	Items   int
	Batches int
	Tokens  int
	Cost    float64 // currency units, Tokens/1000 × unit price
}

// EstimateRun projects the token count and cost of embedding the items
// under the given configuration without calling the provider.
func EstimateRun(items []*core.Item, config *Config) Estimate {
	if config == nil {
		config = DefaultConfig()
	}
	counter := config.counter()
	batchSize := config.batchSize()

	est := Estimate{Items: len(items)}
	for _, item := range items {
		est.Tokens += counter.Count(composeInput(item, config.MetadataFields))
	}
	est.Cost = float64(est.Tokens) / 1000 * config.UnitPrice
	if len(items) > 0 {
		est.Batches = (len(items) + batchSize - 1) / batchSize
	}
	return est
}
