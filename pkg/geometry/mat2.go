package geometry

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Mat2 is a 2x2 matrix with columns (A, B) and (C, D):
//
//	| A  C |
//	| B  D |
//
// so that M*v = (A*x + C*y, B*x + D*y). It may be singular.
type Mat2 struct {
	A, B, C, D float64
}

// NewMat2 creates a matrix from its four components.
func NewMat2(a, b, c, d float64) Mat2 {
	return Mat2{A: a, B: b, C: c, D: d}
}

// NewMat2FromRows creates a matrix from its two row vectors.
func NewMat2FromRows(row0, row1 Vec2d) Mat2 {
	return Mat2{A: row0.X, C: row0.Y, B: row1.X, D: row1.Y}
}

// Identity returns the identity matrix.
func Identity() Mat2 {
	return Scale(1, 1)
}

// ZeroMat returns the null matrix.
func ZeroMat() Mat2 {
	return Mat2{}
}

// Scale returns a scale matrix.
func Scale(sx, sy float64) Mat2 {
	return Mat2{A: sx, D: sy}
}

// UniformScale returns Scale(s, s).
func UniformScale(s float64) Mat2 {
	return Scale(s, s)
}

// Rotation returns the counter-clockwise rotation by angle (radians).
func Rotation(angle float64) Mat2 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Mat2{A: cos, B: sin, C: -sin, D: cos}
}

// RotationDegrees is Rotation in degrees.
func RotationDegrees(angle float64) Mat2 {
	return Rotation(angle * DegreesToRads)
}

// Projection returns the rank-1 projector onto the direction at angle (radians).
func Projection(angle float64) Mat2 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	diag := cos * sin
	return Mat2{A: cos * cos, B: diag, C: diag, D: sin * sin}
}

// ProjectionDegrees is Projection in degrees.
func ProjectionDegrees(angle float64) Mat2 {
	return Projection(angle * DegreesToRads)
}

func (m Mat2) String() string {
	return fmt.Sprintf("Mat2(%g, %g, %g, %g)", m.A, m.B, m.C, m.D)
}

// ---------------------------------------------------------------------
// Properties
// ---------------------------------------------------------------------

// Trace is A + D.
func (m Mat2) Trace() float64 {
	return m.A + m.D
}

// Determinant is A*D - B*C.
func (m Mat2) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Rows returns the two row vectors.
func (m Mat2) Rows() (Vec2d, Vec2d) {
	return Vec2d{m.A, m.C}, Vec2d{m.B, m.D}
}

// Cols returns the two column vectors.
func (m Mat2) Cols() (Vec2d, Vec2d) {
	return Vec2d{m.A, m.B}, Vec2d{m.C, m.D}
}

// Flat returns A, B, C, D in that order.
func (m Mat2) Flat() [4]float64 {
	return [4]float64{m.A, m.B, m.C, m.D}
}

// Eigenvalues solves det(M - λI) = 0 in closed form.
// A negative discriminant gives a complex-conjugate pair.
func (m Mat2) Eigenvalues() (complex128, complex128) {
	disc := (m.A-m.D)*(m.A-m.D) + 4*m.B*m.C
	root := cmplx.Sqrt(complex(disc, 0))
	tr := complex(m.Trace(), 0)
	return (tr + root) / 2, (tr - root) / 2
}

// Eigenvectors returns the unit eigenvectors matching Eigenvalues, in the same order.
// Complex eigenvalues yield ErrComplexEigen.
func (m Mat2) Eigenvectors() (Vec2d, Vec2d, error) {
	l1, l2 := m.Eigenvalues()
	if imag(l1) != 0 || imag(l2) != 0 {
		return Vec2d{}, Vec2d{}, fmt.Errorf("eigenvectors of %s: %w", m, ErrComplexEigen)
	}
	v1 := m.eigenvector(real(l1), UnitX())
	v2 := m.eigenvector(real(l2), UnitY())
	return v1, v2, nil
}

// eigenvector solves (M - λI)v = 0 from the first row, or from the second
// when the first row vanishes (λ == A and C == 0). A scalar matrix accepts
// any vector, fallback is returned then. "Vanishes" is measured against the
// largest entry so the result does not depend on the matrix scale.
func (m Mat2) eigenvector(lambda float64, fallback Vec2d) Vec2d {
	scale := max(math.Abs(m.A), math.Abs(m.B), math.Abs(m.C), math.Abs(m.D), math.Abs(lambda))
	limit := (Epsilon * scale) * (Epsilon * scale)
	v := Vec2d{m.C, lambda - m.A}
	if v.LengthSqrd() <= limit {
		v = Vec2d{lambda - m.D, m.B}
	}
	if v.LengthSqrd() <= limit {
		return fallback
	}
	return v.Div(v.Length())
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// ---------------------------------------------------------------------

// Add returns m + other.
func (m Mat2) Add(other Mat2) Mat2 {
	return Mat2{m.A + other.A, m.B + other.B, m.C + other.C, m.D + other.D}
}

// Sub returns m - other.
func (m Mat2) Sub(other Mat2) Mat2 {
	return Mat2{m.A - other.A, m.B - other.B, m.C - other.C, m.D - other.D}
}

// MulScalar scales every component.
func (m Mat2) MulScalar(s float64) Mat2 {
	return Mat2{m.A * s, m.B * s, m.C * s, m.D * s}
}

// DivScalar divides every component.
func (m Mat2) DivScalar(s float64) Mat2 {
	return Mat2{m.A / s, m.B / s, m.C / s, m.D / s}
}

// Mul returns the product m*other: other is applied first.
func (m Mat2) Mul(other Mat2) Mat2 {
	return Mat2{
		A: m.A*other.A + m.C*other.B,
		B: m.B*other.A + m.D*other.B,
		C: m.A*other.C + m.C*other.D,
		D: m.B*other.C + m.D*other.D,
	}
}

// TransformVector returns m*v.
func (m Mat2) TransformVector(v Vec2d) Vec2d {
	return Vec2d{m.A*v.X + m.C*v.Y, m.B*v.X + m.D*v.Y}
}

// MutateVector replaces *v by m*v.
func (m Mat2) MutateVector(v *Vec2d) {
	*v = m.TransformVector(*v)
}

// Inverse returns adj(m)/det(m).
// There is no singularity guard: a zero determinant gives Inf/NaN components.
// Use CheckedInverse when the matrix may be singular.
func (m Mat2) Inverse() Mat2 {
	det := m.Determinant()
	return Mat2{m.D / det, -m.B / det, -m.C / det, m.A / det}
}

// CheckedInverse is Inverse returning ErrSingular for a zero determinant.
func (m Mat2) CheckedInverse() (Mat2, error) {
	if m.Determinant() == 0 {
		return Mat2{}, fmt.Errorf("inverse of %s: %w", m, ErrSingular)
	}
	return m.Inverse(), nil
}

// InterpolateTo blends every component: m*(1-t) + other*t.
func (m Mat2) InterpolateTo(other Mat2, t float64) Mat2 {
	return m.MulScalar(1 - t).Add(other.MulScalar(t))
}

// ---------------------------------------------------------------------
// Rotation and transposition
// ---------------------------------------------------------------------

// Rotated returns Rotation(angle)*m.
func (m Mat2) Rotated(angle float64) Mat2 {
	return Rotation(angle).Mul(m)
}

// RotatedDegrees is Rotated in degrees.
func (m Mat2) RotatedDegrees(angle float64) Mat2 {
	return m.Rotated(angle * DegreesToRads)
}

// Rotate replaces m by Rotation(angle)*m.
func (m *Mat2) Rotate(angle float64) {
	*m = m.Rotated(angle)
}

// RotateDegrees is Rotate in degrees.
func (m *Mat2) RotateDegrees(angle float64) {
	m.Rotate(angle * DegreesToRads)
}

// Transposed returns a transposed copy.
func (m Mat2) Transposed() Mat2 {
	return Mat2{m.A, m.C, m.B, m.D}
}

// T is Transposed.
func (m Mat2) T() Mat2 {
	return m.Transposed()
}

// Transpose swaps B and C in place.
func (m *Mat2) Transpose() {
	m.B, m.C = m.C, m.B
}

// ---------------------------------------------------------------------
// Comparison and indexing
// ---------------------------------------------------------------------

// Equal compares all components exactly.
func (m Mat2) Equal(other Mat2) bool {
	return m == other
}

// Similar reports whether every component differs by at most tol.
func (m Mat2) Similar(other Mat2, tol float64) bool {
	return math.Abs(m.A-other.A) <= tol && math.Abs(m.B-other.B) <= tol &&
		math.Abs(m.C-other.C) <= tol && math.Abs(m.D-other.D) <= tol
}

// Row returns row i: (A, C) for 0 and (B, D) for 1.
func (m Mat2) Row(i int) (Vec2d, error) {
	switch i {
	case 0:
		return Vec2d{m.A, m.C}, nil
	case 1:
		return Vec2d{m.B, m.D}, nil
	}
	return Vec2d{}, fmt.Errorf("matrix row %d: %w", i, ErrIndexOutOfRange)
}

// Col returns column i: (A, B) for 0 and (C, D) for 1.
func (m Mat2) Col(i int) (Vec2d, error) {
	switch i {
	case 0:
		return Vec2d{m.A, m.B}, nil
	case 1:
		return Vec2d{m.C, m.D}, nil
	}
	return Vec2d{}, fmt.Errorf("matrix column %d: %w", i, ErrIndexOutOfRange)
}

// At returns the component at (row, col).
func (m Mat2) At(row, col int) (float64, error) {
	p, err := m.component(row, col)
	if err != nil {
		return 0, err
	}
	return *p, nil
}

// SetAt sets the component at (row, col).
func (m *Mat2) SetAt(row, col int, value float64) error {
	p, err := m.component(row, col)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

func (m *Mat2) component(row, col int) (*float64, error) {
	switch {
	case row == 0 && col == 0:
		return &m.A, nil
	case row == 0 && col == 1:
		return &m.C, nil
	case row == 1 && col == 0:
		return &m.B, nil
	case row == 1 && col == 1:
		return &m.D, nil
	}
	return nil, fmt.Errorf("matrix index (%d, %d): %w", row, col, ErrIndexOutOfRange)
}
