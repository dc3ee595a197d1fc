package surface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Plane is the parallelogram
//
//	P(u,v) = Origin + u⋅U + v⋅V
//
// Arc length along u is linear in u.
type Plane struct {
	Origin r3.Vec
	U, V   r3.Vec
}

var _ Evaluator = Plane{}

// Evaluate returns the differential data of the plane at (u, v).
func (pl Plane) Evaluate(u, v float64) (Evaluation, error) {
	p := r3.Add(pl.Origin, r3.Add(r3.Scale(u, pl.U), r3.Scale(v, pl.V)))
	tu, tv := unit(pl.U), unit(pl.V)
	return Evaluation{
		Position: p,
		TangentU: tu,
		TangentV: tv,
		Normal:   orient(tu, tv),
	}, nil
}

// EllipticCylinder is a sector of a cylinder with elliptic cross-section:
//
//	P(u,v) = Center + cos(θ)⋅A + sin(θ)⋅B + v⋅Axis,  θ = u⋅Sweep
//
// A and B are the semi-axes and should be perpendicular to each other and
// to Axis. Unless |A| = |B|, arc length along u is not linear in u.
type EllipticCylinder struct {
	Center r3.Vec
	A, B   r3.Vec
	Axis   r3.Vec
	Sweep  float64 // in radians
}

var _ Evaluator = EllipticCylinder{}

// Evaluate returns the differential data of the cylinder at (u, v).
func (cy EllipticCylinder) Evaluate(u, v float64) (Evaluation, error) {
	sin, cos := math.Sincos(u * cy.Sweep)
	p := r3.Add(cy.Center, r3.Add(r3.Add(r3.Scale(cos, cy.A), r3.Scale(sin, cy.B)), r3.Scale(v, cy.Axis)))
	du := r3.Scale(cy.Sweep, r3.Add(r3.Scale(-sin, cy.A), r3.Scale(cos, cy.B)))
	tu, tv := unit(du), unit(cy.Axis)
	return Evaluation{
		Position: p,
		TangentU: tu,
		TangentV: tv,
		Normal:   orient(tu, tv),
	}, nil
}

// CubicBez is a cubic Bézier curve in 3D.
type CubicBez struct {
	P0, P1, P2, P3 r3.Vec
}

// Eval evaluates the curve at t.
func (cb CubicBez) Eval(t float64) r3.Vec {
	mt := 1.0 - t
	a := r3.Scale(mt*mt*mt, cb.P0)
	b := r3.Scale(mt*mt*3.0, cb.P1)
	c := r3.Scale(mt*3.0, cb.P2)
	v := r3.Add(a, r3.Scale(t, r3.Add(b, r3.Scale(t, r3.Add(c, r3.Scale(t, cb.P3))))))
	return v
}

// Deriv evaluates the first derivative of the curve at t.
func (cb CubicBez) Deriv(t float64) r3.Vec {
	mt := 1.0 - t
	d0 := r3.Scale(3, r3.Sub(cb.P1, cb.P0))
	d1 := r3.Scale(3, r3.Sub(cb.P2, cb.P1))
	d2 := r3.Scale(3, r3.Sub(cb.P3, cb.P2))
	return r3.Add(r3.Scale(mt*mt, d0), r3.Add(r3.Scale(2*mt*t, d1), r3.Scale(t*t, d2)))
}

// Extrusion sweeps a cubic profile curve along a direction:
//
//	P(u,v) = Profile(u) + v⋅Direction
//
// Uneven control point spacing on the profile makes the parameterization
// non-uniform in arc length.
type Extrusion struct {
	Profile   CubicBez
	Direction r3.Vec
}

var _ Evaluator = Extrusion{}

// Evaluate returns the differential data of the extrusion at (u, v).
func (ex Extrusion) Evaluate(u, v float64) (Evaluation, error) {
	p := r3.Add(ex.Profile.Eval(u), r3.Scale(v, ex.Direction))
	tu, tv := unit(ex.Profile.Deriv(u)), unit(ex.Direction)
	return Evaluation{
		Position: p,
		TangentU: tu,
		TangentV: tv,
		Normal:   orient(tu, tv),
	}, nil
}
