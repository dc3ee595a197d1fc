package attach

import (
	"math"

	"github.com/npillmayer/surfattach/arclen"
)

// WrapOffset adds offset to u and wraps the sum into one unit period.
// Negative sums wrap from the end of the domain, i.e. -0.2 becomes 0.8.
//
// A raw u of exactly 1 stays at the end of the domain instead of wrapping to
// its start, for any integer offset.
func WrapOffset(u, offset float64) float64 {
	sum := u + offset
	var w float64
	if sum >= 0 {
		w = math.Mod(sum, 1.0)
	} else {
		w = 1.0 - math.Mod(1.0-sum, 1.0)
	}
	if u == 1.0 && w == 0.0 {
		w = 1.0
	}
	return w
}

// Reverse flips u to 1-u.
func Reverse(u float64) float64 {
	return 1.0 - u
}

// LengthRatio is the fraction of the total length a request of u = 1
// reaches. It is 1 except for FixedLength with a static length shorter than
// the total length.
func LengthRatio(genus Genus, staticLength, totalLength float64) float64 {
	if genus == FixedLength && staticLength < totalLength {
		return staticLength / totalLength
	}
	return 1.0
}

// Remap turns the raw u-coordinate of a request into the u-parameter the
// surface is sampled at. Steps are applied in order: offset with seam
// wraparound, reversal, and for length modes the inversion of the arc
// length measured in tbl.
//
// tbl is not used for parametric placement and may be nil then. If the
// measured total length is 0, the length remap is skipped.
func Remap(rawU float64, cfg Config, tbl *arclen.Table) (float64, error) {
	u := WrapOffset(rawU, cfg.Offset)
	if cfg.Reverse {
		u = Reverse(u)
	}
	if !cfg.Genus.IsLengthMode() {
		return u, nil
	}
	total := 0.0
	if tbl != nil {
		total = tbl.Total()
	}
	if total == 0 {
		tracer().Debugf("zero arc length, keeping u=%g", u)
		return u, nil
	}
	target := total * (u * LengthRatio(cfg.Genus, cfg.StaticLength, total))
	effective, err := tbl.Invert(target)
	if err != nil {
		return u, err
	}
	tracer().Debugf("u=%g -> length %g of %g -> u=%g", rawU, target, total, effective)
	return effective, nil
}
