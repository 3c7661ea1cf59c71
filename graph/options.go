package graph

import "time"

// Options holds tunables recognized by the connection strategies.
// Unset fields take the documented defaults; strategies never mutate the
// caller's Options value.
type Options struct {
	// Threshold is the similarity floor used by the threshold strategy.
	// Default: 0.7
	Threshold float64

	// CategoryWeight scales the same-category link quota of the category
	// strategy. The quota is round(3 * CategoryWeight), minimum 1.
	// Default: 1.0 (three same-category links per node)
	CategoryWeight float64

	// NoiseFloor is the minimum similarity retained during pairwise
	// enumeration. Pairs at or below it are discarded as noise.
	// Default: 0.05
	NoiseFloor float64

	// TimeWindow bounds the temporal strategy: only pairs whose timestamps
	// are within the window are considered. Default: 30 days
	TimeWindow time.Duration

	// AdaptiveDenseAvg and AdaptiveMediumAvg are the neighborhood-density
	// tiers of the adaptive strategy. A node whose top-10 mean similarity
	// exceeds the dense tier gets 3 links, the medium tier 5, else 7.
	// Defaults: 0.7 and 0.5. These values are empirical, not derived.
	AdaptiveDenseAvg  float64
	AdaptiveMediumAvg float64

	// AdaptiveMinFloor is the lowest similarity floor the adaptive strategy
	// will accept; the effective floor is max(AdaptiveMinFloor, avg/2).
	// Default: 0.3
	AdaptiveMinFloor float64
}

// DefaultOptions returns an Options with the documented defaults.
func DefaultOptions() *Options {
	return &Options{
		Threshold:         0.7,
		CategoryWeight:    1.0,
		NoiseFloor:        0.05,
		TimeWindow:        30 * 24 * time.Hour,
		AdaptiveDenseAvg:  0.7,
		AdaptiveMediumAvg: 0.5,
		AdaptiveMinFloor:  0.3,
	}
}

// normalized returns a copy with zero fields replaced by defaults.
func (o *Options) normalized() *Options {
	defaults := DefaultOptions()
	if o == nil {
		return defaults
	}

	out := *o
	if out.Threshold == 0 {
		out.Threshold = defaults.Threshold
	}
	if out.CategoryWeight == 0 {
		out.CategoryWeight = defaults.CategoryWeight
	}
	if out.NoiseFloor == 0 {
		out.NoiseFloor = defaults.NoiseFloor
	}
	if out.TimeWindow == 0 {
		out.TimeWindow = defaults.TimeWindow
	}
	if out.AdaptiveDenseAvg == 0 {
		out.AdaptiveDenseAvg = defaults.AdaptiveDenseAvg
	}
	if out.AdaptiveMediumAvg == 0 {
		out.AdaptiveMediumAvg = defaults.AdaptiveMediumAvg
	}
	if out.AdaptiveMinFloor == 0 {
		out.AdaptiveMinFloor = defaults.AdaptiveMinFloor
	}
	return &out
}
