package attach

import (
	"github.com/npillmayer/surfattach"
	"github.com/npillmayer/surfattach/surface"
	"gonum.org/v1/gonum/spatial/r3"
)

// Result is the placement of one attachment, in the parent's space.
type Result struct {
	U, V        float64          // effective surface parameters
	Translation r3.Vec
	Rotation    surfattach.Euler // XYZ order, radians
}

// Frame returns the local frame of s at (u, v): the basis rows are the
// u-tangent, the normal and the v-tangent, in this order, and the translation
// row is the surface point. Vectors are used as delivered by s.
func Frame(s surface.Evaluator, u, v float64) (surfattach.Matrix, error) {
	e, err := s.Evaluate(u, v)
	if err != nil {
		return surfattach.Identity(), err
	}
	return surfattach.FrameMatrix(e.TangentU, e.Normal, e.TangentV, e.Position), nil
}

// BuildFrame places an attachment at (u, v) of s. The local frame is brought
// into the parent's space by right-multiplying parentInverse, and then
// decomposed into translation and rotation (see surfattach.Matrix.Decompose).
func BuildFrame(s surface.Evaluator, u, v float64, parentInverse surfattach.Matrix) (Result, error) {
	local, err := Frame(s, u, v)
	if err != nil {
		return Result{U: u, V: v}, err
	}
	d := local.Mul(parentInverse).Decompose()
	return Result{
		U:           u,
		V:           v,
		Translation: d.Translation,
		Rotation:    d.Rotation,
	}, nil
}
