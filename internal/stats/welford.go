package stats

import "math"

// Welford maintains running mean and variance for one metric using Welford's
// online algorithm. The zero value is an empty accumulator. Fields are
// exported so aggregates round-trip through JSON persistence.
type Welford struct {
	N    int64   `json:"n"`
	Mean float64 `json:"mean"`
	M2   float64 `json:"m2"`
}

// Update folds a new observation into the running statistics. O(1), no
// allocation.
func (w *Welford) Update(x float64) {
	w.N++
	delta := x - w.Mean
	w.Mean += delta / float64(w.N)
	delta2 := x - w.Mean
	w.M2 += delta * delta2
}

// Merge combines two accumulators using the parallel variance formula.
// The result is identical (up to float rounding) to folding both sides'
// observations one at a time into a single accumulator, and the operation
// is associative and commutative. Neither input is mutated.
func Merge(a, b Welford) Welford {
	if a.N == 0 {
		return b
	}
	if b.N == 0 {
		return a
	}
	n := a.N + b.N
	delta := b.Mean - a.Mean
	return Welford{
		N:    n,
		Mean: (float64(a.N)*a.Mean + float64(b.N)*b.Mean) / float64(n),
		M2:   a.M2 + b.M2 + delta*delta*float64(a.N)*float64(b.N)/float64(n),
	}
}

// Variance returns the population variance M2/n, or 0 with fewer than two
// observations.
func (w Welford) Variance() float64 {
	if w.N < 2 {
		return 0
	}
	return w.M2 / float64(w.N)
}

// StdDev returns the population standard deviation.
func (w Welford) StdDev() float64 {
	return math.Sqrt(w.Variance())
}

// ZScore returns how many standard deviations x sits from the mean, or 0
// when the distribution is degenerate.
func (w Welford) ZScore(x float64) float64 {
	sd := w.StdDev()
	if sd == 0 {
		return 0
	}
	return (x - w.Mean) / sd
}
