package surface

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestPlane(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pl := Plane{U: r3.Vec{X: 10}, V: r3.Vec{Z: 10}}
	e, err := pl.Evaluate(0.5, 0.25)
	require.NoError(t, err)
	diff(t, Evaluation{
		Position: r3.Vec{X: 5, Z: 2.5},
		TangentU: r3.Vec{X: 1},
		TangentV: r3.Vec{Z: 1},
		Normal:   r3.Vec{Y: 1},
	}, e, approx)
}

func TestCylinderPosition(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cy := EllipticCylinder{
		A:     r3.Vec{X: 2},
		B:     r3.Vec{Y: 1},
		Axis:  r3.Vec{Z: 3},
		Sweep: math.Pi,
	}
	e, err := cy.Evaluate(0.5, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, e.Position.X, 1e-12)
	assert.InDelta(t, 1.0, e.Position.Y, 1e-12)
	assert.InDelta(t, 3.0, e.Position.Z, 1e-12)
	assert.InDelta(t, -1.0, e.TangentU.X, 1e-12) // moving from +y towards -x
	assert.InDelta(t, 1.0, r3.Norm(e.Normal), 1e-12)
	assert.InDelta(t, 0.0, r3.Dot(e.Normal, e.TangentU), 1e-12)
	assert.InDelta(t, 0.0, r3.Dot(e.Normal, e.TangentV), 1e-12)
}

func TestExtrusionEndpoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ex := Extrusion{
		Profile: CubicBez{
			P0: r3.Vec{},
			P1: r3.Vec{X: 0.1},
			P2: r3.Vec{X: 0.2},
			P3: r3.Vec{X: 3},
		},
		Direction: r3.Vec{Z: 1},
	}
	e0, _ := ex.Evaluate(0, 0)
	e1, _ := ex.Evaluate(1, 1)
	diff(t, r3.Vec{}, e0.Position, approx)
	diff(t, r3.Vec{X: 3, Z: 1}, e1.Position, approx)
	// the profile above moves slowly at first, so half the parameter range
	// covers much less than half of the length
	mid, _ := ex.Evaluate(0.5, 0)
	assert.Less(t, mid.Position.X, 1.0)
	diff(t, r3.Vec{X: 1}, e0.TangentU, approx)
	diff(t, r3.Vec{Y: 1}, e0.Normal, approx)
}

func TestCubicDeriv(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	cb := CubicBez{P0: r3.Vec{}, P1: r3.Vec{X: 1, Y: 2}, P2: r3.Vec{X: 3, Y: 2}, P3: r3.Vec{X: 4}}
	const h = 1e-6
	for _, x := range []float64{0.1, 0.5, 0.9} {
		num := r3.Scale(1/(2*h), r3.Sub(cb.Eval(x+h), cb.Eval(x-h)))
		diff(t, num, cb.Deriv(x), cmpopts.EquateApprox(0, 1e-6))
	}
}

func TestStrictRejectsOutOfDomain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := Strict(Plane{U: r3.Vec{X: 1}, V: r3.Vec{Y: 1}}, 1e-9)
	_, err := s.Evaluate(0.5, 0.5)
	assert.NoError(t, err)
	_, err = s.Evaluate(1.5, 0.5)
	assert.True(t, errors.Is(err, ErrOutOfDomain), "expected ErrOutOfDomain, got %v", err)
	_, err = Position(s, 0.5, -0.1)
	assert.True(t, errors.Is(err, ErrOutOfDomain), "expected ErrOutOfDomain, got %v", err)
}
