package arclen

import "fmt"

// Invert returns the u-parameter at which the cumulative arc length reaches
// length. It interpolates linearly between the two samples bracketing
// length. Lengths below the first or above the last sample are extrapolated
// from the outermost pair of samples, not clamped.
func (tbl *Table) Invert(length float64) (float64, error) {
	if len(tbl.samples) < 2 {
		return 0, fmt.Errorf("%w, have %d", ErrTooFewSamples, len(tbl.samples))
	}
	i := tbl.search(length)
	a, b := tbl.samples[i], tbl.samples[i+1]
	if a.Length == b.Length { // zero-length bracket
		return a.U, nil
	}
	ratio := (length - a.Length) / (b.Length - a.Length)
	return a.U + (b.U-a.U)*ratio, nil
}

// search finds the index i of the bracket [i, i+1] containing length, or the
// bracket nearest to it. The search is bounded to Len() iterations.
//
// A sample with exactly the requested length is selected directly. Else the
// bracket [a,b] is narrowed until b-a = 1, and a is selected.
func (tbl *Table) search(length float64) int {
	a, b := 0, len(tbl.samples)-1
	c := 0
	for i, n := 0, len(tbl.samples); i < n; i++ {
		pivot := (a + b) / 2
		if tbl.samples[pivot].Length == length {
			c = pivot
			break
		} else if b-a == 1 {
			c = a
			break
		} else if tbl.samples[pivot].Length < length {
			a = pivot
		} else {
			b = pivot
		}
	}
	return c
}
