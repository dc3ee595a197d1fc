package surfattach

import (
	"fmt"
	"math"
)

// === Parameter Pairs =======================================================

// Pair is a point (u,v) in the parametric domain of a surface.
type Pair complex128

// P is a quick notation for contructing a pair from floats.
func P(u, v float64) Pair {
	return Pair(complex(u, v))
}

// U is the u-part of a pair.
func (p Pair) U() float64 {
	return real(p)
}

// V is the v-part of a pair.
func (p Pair) V() float64 {
	return imag(p)
}

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", p.U(), p.V())
}

// Equal compares two pairs, up to ε.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.U()-p2.U()) && Is0(p.V()-p2.V())
}

// IsNaN is a predicate: has p an undefined part?
func (p Pair) IsNaN() bool {
	return math.IsNaN(p.U()) || math.IsNaN(p.V())
}
