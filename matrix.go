package surfattach

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrSingular indicates a matrix which cannot be inverted.
var ErrSingular = errors.New("matrix is singular")

// === Affine Transformations in 3D ==========================================

// Matrix is a 4x4 transformation matrix, flattened by rows.
//
// Points are row vectors which get multiplied from the left, i.e. p' = p·M.
// The upper 3x3 block holds the basis vectors as rows, the last row holds
// the translation. Combining M·N therefore applies M first, then N.
type Matrix [16]float64

// Identity transform. Will transform a point onto itself.
func Identity() Matrix {
	var m Matrix
	m.set(0, 0, 1)
	m.set(1, 1, 1)
	m.set(2, 2, 1)
	m.set(3, 3, 1)
	return m
}

// Translation transform. Translate a point by v.
func Translation(v r3.Vec) Matrix {
	m := Identity()
	m.set(3, 0, v.X)
	m.set(3, 1, v.Y)
	m.set(3, 2, v.Z)
	return m
}

// FrameMatrix creates a matrix with basis rows x, y, z and translation row o.
// The basis vectors are taken as they are, without normalization.
func FrameMatrix(x, y, z, o r3.Vec) Matrix {
	return Matrix{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		o.X, o.Y, o.Z, 1,
	}
}

// NewMatrix creates a matrix from 16 values, rows first.
func NewMatrix(values []float64) (Matrix, error) {
	var m Matrix
	if len(values) != len(m) {
		return Identity(), fmt.Errorf("matrix needs %d values, got %d", len(m), len(values))
	}
	copy(m[:], values)
	return m, nil
}

func (m Matrix) get(row, col int) float64 {
	return m[row*4+col]
}

func (m *Matrix) set(row, col int, value float64) {
	m[row*4+col] = value
}

// Row returns the first three components of row i.
func (m Matrix) Row(i int) r3.Vec {
	return r3.Vec{X: m.get(i, 0), Y: m.get(i, 1), Z: m.get(i, 2)}
}

func (m Matrix) dense() *mat.Dense {
	data := make([]float64, len(m))
	copy(data, m[:])
	return mat.NewDense(4, 4, data)
}

func fromDense(d mat.Matrix) Matrix {
	var m Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m.set(row, col, d.At(row, col))
		}
	}
	return m
}

// Mul combines two transformations to a new one, m first, then n.
// Neither argument is changed.
func (m Matrix) Mul(n Matrix) Matrix {
	var prod mat.Dense
	prod.Mul(m.dense(), n.dense())
	return fromDense(&prod)
}

// Inverse returns the inverse transformation.
func (m Matrix) Inverse() (Matrix, error) {
	if m.Det() == 0 {
		tracer().Errorf("cannot invert %s: determinant is 0", m)
		return Identity(), fmt.Errorf("%w: determinant is 0", ErrSingular)
	}
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		tracer().Errorf("cannot invert %s: %v", m, err)
		return Identity(), fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return fromDense(&inv), nil
}

// Det returns the determinant.
func (m Matrix) Det() float64 {
	return mat.Det(m.dense())
}

// Translation is the translation part of m.
func (m Matrix) Translation() r3.Vec {
	return m.Row(3)
}

// Equal compares two matrices element-wise, up to ε.
func (m Matrix) Equal(n Matrix) bool {
	for i := range m {
		if !Is0(m[i] - n[i]) {
			return false
		}
	}
	return true
}

// Debug Stringer for a matrix.
func (m Matrix) String() string {
	return fmt.Sprintf("[%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g|%g,%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7],
		m[8], m[9], m[10], m[11], m[12], m[13], m[14], m[15])
}

// === Decomposition =========================================================

// Euler is a rotation given as three angles in radians, applied in XYZ order:
// first around the x-axis, then y, then z.
type Euler struct {
	X, Y, Z float64
}

// Degrees returns the angles converted to degrees.
func (e Euler) Degrees() (float64, float64, float64) {
	return e.X / Deg2Rad, e.Y / Deg2Rad, e.Z / Deg2Rad
}

// EulerMatrix returns the rotation matrix Rx·Ry·Rz for e.
func EulerMatrix(e Euler) Matrix {
	sa, ca := math.Sincos(e.X)
	sb, cb := math.Sincos(e.Y)
	sc, cc := math.Sincos(e.Z)
	rx := FrameMatrix(r3.Vec{X: 1}, r3.Vec{Y: ca, Z: sa}, r3.Vec{Y: -sa, Z: ca}, r3.Vec{})
	ry := FrameMatrix(r3.Vec{X: cb, Z: -sb}, r3.Vec{Y: 1}, r3.Vec{X: sb, Z: cb}, r3.Vec{})
	rz := FrameMatrix(r3.Vec{X: cc, Y: sc}, r3.Vec{X: -sc, Y: cc}, r3.Vec{Z: 1}, r3.Vec{})
	return rx.Mul(ry).Mul(rz)
}

// Decomposition holds the parts of a transformation matrix.
type Decomposition struct {
	Translation r3.Vec
	Rotation    Euler
	Scale       r3.Vec
}

// Decompose splits m into translation, XYZ Euler rotation and scale.
//
// The basis rows are orthonormalized in x, y, z order (Gram-Schmidt); shear
// is discarded. A matrix with negative determinant gets its z-scale negated.
func (m Matrix) Decompose() Decomposition {
	x, y, z := m.Row(0), m.Row(1), m.Row(2)
	var d Decomposition
	d.Translation = m.Translation()
	d.Scale.X, x = normalize(x)
	y = r3.Sub(y, r3.Scale(r3.Dot(y, x), x))
	d.Scale.Y, y = normalize(y)
	z = r3.Sub(z, r3.Add(r3.Scale(r3.Dot(z, x), x), r3.Scale(r3.Dot(z, y), y)))
	d.Scale.Z, z = normalize(z)
	if r3.Dot(r3.Cross(x, y), z) < 0 {
		d.Scale.Z = -d.Scale.Z
		z = r3.Scale(-1, z)
	}
	d.Rotation = eulerXYZ(x, y, z)
	return d
}

// normalize returns the length of v and v scaled to unit length.
// Vectors of length 0 are returned unchanged.
func normalize(v r3.Vec) (float64, r3.Vec) {
	l := r3.Norm(v)
	if Is0(l) {
		return 0, v
	}
	return l, r3.Scale(1/l, v)
}

// Extract XYZ angles from orthonormal rows of Rx·Ry·Rz.
func eulerXYZ(x, y, z r3.Vec) Euler {
	sb := Clamp(-x.Z, -1, 1)
	b := math.Asin(sb)
	if math.Abs(sb) < 1-Epsilon {
		return Euler{
			X: math.Atan2(y.Z, z.Z),
			Y: b,
			Z: math.Atan2(x.Y, x.X),
		}
	}
	// gimbal lock: z-rotation is folded into x
	if sb > 0 {
		return Euler{X: math.Atan2(y.X, y.Y), Y: b}
	}
	return Euler{X: math.Atan2(-y.X, y.Y), Y: b}
}
