// Package stats aggregates nanosecond latency samples into summary
// statistics for presentation and comparison.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds aggregate latency statistics over a set of nanosecond
// samples.
type Summary struct {
	// Count is the number of samples aggregated.
	Count int
	// Total is the sum of all samples in nanoseconds.
	Total int64
	// Min and Max are the extreme samples in nanoseconds.
	Min int64
	Max int64
	// Mean is the arithmetic mean in nanoseconds.
	Mean float64
	// StdDev is the sample standard deviation in nanoseconds.
	StdDev float64
	// P50, P95 and P99 are empirical quantiles in nanoseconds.
	P50 int64
	P95 int64
	P99 int64
}

// Summarize computes a Summary over the given samples. A nil or empty input
// yields the zero Summary.
func Summarize(samples []int64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(samples))
	var total int64
	min, max := samples[0], samples[0]
	for i, s := range samples {
		xs[i] = float64(s)
		total += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	sort.Float64s(xs)

	sum := Summary{
		Count: len(samples),
		Total: total,
		Min:   min,
		Max:   max,
		Mean:  stat.Mean(xs, nil),
		P50:   int64(stat.Quantile(0.50, stat.Empirical, xs, nil)),
		P95:   int64(stat.Quantile(0.95, stat.Empirical, xs, nil)),
		P99:   int64(stat.Quantile(0.99, stat.Empirical, xs, nil)),
	}
	if len(samples) > 1 {
		sum.StdDev = stat.StdDev(xs, nil)
	}
	return sum
}
