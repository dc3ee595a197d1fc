// Package surface defines the surface evaluation capability consumed by the
// attachment engine, together with a couple of reference surfaces.
//
// An Evaluator is a pure function of (u, v). Implementations expect a
// parametric domain normalized to [0,1]×[0,1]; surfaces with a different native
// range must be re-parameterized before they are handed to the engine.
//
// The reference surfaces of this package deliver unit tangents and a unit
// normal, oriented such that (TangentU, Normal, TangentV) is a right-handed
// basis wherever the two tangents are orthogonal.
package surface

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r3"
)

// tracer writes to trace with key 'surfattach.surface'
func tracer() tracing.Trace {
	return tracing.Select("surfattach.surface")
}

// ErrOutOfDomain indicates an evaluation outside of the valid parameter range.
var ErrOutOfDomain = errors.New("parameter out of surface domain")

// Evaluation is the local differential data of a surface at (u, v),
// given in world space.
type Evaluation struct {
	Position r3.Vec
	TangentU r3.Vec
	TangentV r3.Vec
	Normal   r3.Vec
}

// Evaluator is the surface evaluation capability.
// Implementations must be free of side effects, i.e. safe for
// concurrent use.
type Evaluator interface {
	Evaluate(u, v float64) (Evaluation, error)
}

// EvaluatorFunc adapts an ordinary function to the Evaluator interface.
type EvaluatorFunc func(u, v float64) (Evaluation, error)

// Evaluate calls f(u, v).
func (f EvaluatorFunc) Evaluate(u, v float64) (Evaluation, error) {
	return f(u, v)
}

// Position evaluates s at (u, v) and returns the position only.
func Position(s Evaluator, u, v float64) (r3.Vec, error) {
	e, err := s.Evaluate(u, v)
	return e.Position, err
}

// Strict wraps an evaluator so that parameters outside of [0,1]×[0,1]
// (with a tolerance of tol) are rejected with ErrOutOfDomain.
func Strict(s Evaluator, tol float64) Evaluator {
	return EvaluatorFunc(func(u, v float64) (Evaluation, error) {
		if u < -tol || u > 1+tol || v < -tol || v > 1+tol {
			tracer().Errorf("evaluation at (%g,%g) rejected", u, v)
			return Evaluation{}, fmt.Errorf("%w: (%g,%g)", ErrOutOfDomain, u, v)
		}
		return s.Evaluate(u, v)
	})
}

// orient computes the unit normal tv × tu, so that (tu, n, tv) is
// right-handed.
func orient(tu, tv r3.Vec) r3.Vec {
	return unit(r3.Cross(tv, tu))
}

func unit(v r3.Vec) r3.Vec {
	if n := r3.Norm(v); n > 0 {
		return r3.Scale(1/n, v)
	}
	return v
}
