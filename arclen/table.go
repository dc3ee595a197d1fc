// Package arclen measures arc length along an iso-curve of a surface and
// inverts it, mapping a length back to a u-parameter.
//
// A Table holds N samples at u = i/N, i = 1…N, each carrying the cumulative
// length of the polyline from u = 0 up to the sample. There is no explicit
// sample for u = 0; lengths below the first sample are extrapolated from the
// first two samples.
//
// Tables are meant to be owned by a single client. Rebuild reallocates,
// RefreshLengths recomputes the lengths in place, so the table can be kept
// across evaluations and only pays for reallocation when the sample count
// changes.
package arclen

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/surfattach/surface"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'surfattach.arclen'
func tracer() tracing.Trace {
	return tracing.Select("surfattach.arclen")
}

var (
	// ErrTooFewSamples indicates a table too short for inverting lengths.
	ErrTooFewSamples = errors.New("arc length table needs at least 2 samples")
	// ErrSurface indicates a failed surface evaluation while measuring lengths.
	ErrSurface = errors.New("surface evaluation failed while measuring arc length")
)

// Sample is a table entry: the cumulative arc length from the domain origin
// up to parameter U.
type Sample struct {
	Length float64
	U      float64
}

// Table is a monotonic sequence of arc length samples.
type Table struct {
	samples     []Sample
	allocations int // number of calls to Rebuild
}

// NewTable creates an empty table. Call Rebuild before using it.
func NewTable() *Table {
	return &Table{}
}

// Rebuild clears and reallocates the table to n samples at u = (i+1)/n,
// with all lengths set to 0.
func (tbl *Table) Rebuild(n int) {
	if n < 0 {
		n = 0
	}
	tbl.samples = make([]Sample, n)
	for i := range tbl.samples {
		tbl.samples[i] = Sample{U: (float64(i) + 1.0) / float64(n)}
	}
	tbl.allocations++
	tracer().Debugf("arc length table reallocated to %d samples", n)
}

// RefreshLengths measures the polyline through the surface points at
// (Sample.U, v) and stores the running total in every sample. The first
// segment starts at (0, v). This takes Len()+1 surface evaluations.
//
// If the surface fails, all lengths are reset to 0 and the error is returned.
func (tbl *Table) RefreshLengths(s surface.Evaluator, v float64) error {
	a, err := surface.Position(s, 0, v)
	if err != nil {
		tbl.reset()
		return fmt.Errorf("%w at u=0: %w", ErrSurface, err)
	}
	length := 0.0
	for i := range tbl.samples {
		b, err := surface.Position(s, tbl.samples[i].U, v)
		if err != nil {
			tbl.reset()
			return fmt.Errorf("%w at u=%g: %w", ErrSurface, tbl.samples[i].U, err)
		}
		length += r3.Norm(r3.Sub(b, a))
		tbl.samples[i].Length = length
		a = b
	}
	tracer().Debugf("measured length %g over %d samples at v=%g", length, len(tbl.samples), v)
	return nil
}

func (tbl *Table) reset() {
	for i := range tbl.samples {
		tbl.samples[i].Length = 0
	}
}

// Len returns the number of samples.
func (tbl *Table) Len() int {
	return len(tbl.samples)
}

// Total returns the cumulative length of the last sample, 0 for an empty
// table.
func (tbl *Table) Total() float64 {
	if len(tbl.samples) == 0 {
		return 0
	}
	return tbl.samples[len(tbl.samples)-1].Length
}

// Sample returns sample i.
func (tbl *Table) Sample(i int) Sample {
	return tbl.samples[i]
}

// Samples returns a copy of all samples.
func (tbl *Table) Samples() []Sample {
	s := make([]Sample, len(tbl.samples))
	copy(s, tbl.samples)
	return s
}

// Allocations returns how often the table has been reallocated.
func (tbl *Table) Allocations() int {
	return tbl.allocations
}
