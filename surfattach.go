/*
Package surfattach computes rigid placement frames at points along the
u-direction of a parametric surface.

A placement coordinate may be read as a raw fraction of the surface's
parametric domain, or it may be remapped to a fraction of true arc length
(or to a fixed absolute arc length) measured along one iso-curve of the
surface. This lets clients distribute markers evenly by distance rather
than by the surface's internal parameterization.

This package holds the numeric helpers and the 4x4 matrix type shared by the
sub-packages. The surface capability lives in package surface, the arc length
table in package arclen and the attachment engine in package attach.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package surfattach

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'surfattach'
func tracer() tracing.Trace {
	return tracing.Select("surfattach")
}

// === Numeric Helpers =======================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = math.Pi / 180

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Clamp restricts n to [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, n))
}
