package evaluation

import "math"

// MetricStats summarizes one metric across batches.
type MetricStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// runningStat accumulates count, sum, sum of squares, min and max so batch
// results can be folded in streaming order without keeping the value list.
type runningStat struct {
	count int
	sum   float64
	sumSq float64
	min   float64
	max   float64
}

func (r *runningStat) add(v float64) {
	if r.count == 0 || v < r.min {
		r.min = v
	}
	if r.count == 0 || v > r.max {
		r.max = v
	}
	r.count++
	r.sum += v
	r.sumSq += v * v
}

func (r *runningStat) mean() float64 {
	if r.count == 0 {
		return 0
	}
	return r.sum / float64(r.count)
}

// std is the Bessel-corrected sample standard deviation, zero below two
// values.
func (r *runningStat) std() float64 {
	if r.count < 2 {
		return 0
	}
	mean := r.mean()
	variance := (r.sumSq - float64(r.count)*mean*mean) / float64(r.count-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func (r *runningStat) stats() MetricStats {
	return MetricStats{
		Mean: r.mean(),
		Std:  r.std(),
		Min:  r.min,
		Max:  r.max,
	}
}
