package geometry

import (
	"fmt"
	"math"
)

// Transform is a 2D affine map v -> M*v + t, stored as
//
//	| A  C  Tx |
//	| B  D  Ty |
//
// Composition is not commutative: see Compose.
type Transform struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Affine is the normal-form constructor from a linear part and a translation.
func Affine(m Mat2, translation Vec2d) Transform {
	return Transform{A: m.A, B: m.B, C: m.C, D: m.D, Tx: translation.X, Ty: translation.Y}
}

// IdentityTransform maps every vector to itself.
func IdentityTransform() Transform {
	return Affine(Identity(), Vec2d{})
}

// Translation is a pure translation.
func Translation(t Vec2d) Transform {
	return Affine(Identity(), t)
}

// RotationTransform rotates by angle (radians) then translates.
func RotationTransform(angle float64, translation Vec2d) Transform {
	return Affine(Rotation(angle), translation)
}

// RotationTransformDegrees is RotationTransform in degrees.
func RotationTransformDegrees(angle float64, translation Vec2d) Transform {
	return RotationTransform(angle*DegreesToRads, translation)
}

// ProjectionTransform projects onto the direction at angle (radians) then translates.
func ProjectionTransform(angle float64, translation Vec2d) Transform {
	return Affine(Projection(angle), translation)
}

// ScaleTransform scales then translates.
func ScaleTransform(sx, sy float64, translation Vec2d) Transform {
	return Affine(Scale(sx, sy), translation)
}

// SimilarityParams describes a similarity: rotation, uniform scale and translation.
// Angle is in radians unless Degrees is set. A zero Scale means 1.
type SimilarityParams struct {
	Scale       float64
	Angle       float64
	Degrees     bool
	Translation Vec2d
}

// Similarity builds the transform that rotates, then scales, then translates.
// The translation is scaled along with the linear part.
func Similarity(p SimilarityParams) Transform {
	angle := p.Angle
	if p.Degrees {
		angle *= DegreesToRads
	}
	m := Rotation(angle)
	t := p.Translation
	if p.Scale != 0 {
		t = t.Mul(p.Scale)
		m = UniformScale(p.Scale).Mul(m)
	}
	return Affine(m, t)
}

func (t Transform) String() string {
	return fmt.Sprintf("Transform(%g, %g, %g, %g, %g, %g)", t.A, t.B, t.C, t.D, t.Tx, t.Ty)
}

// Matrix returns the linear part.
func (t Transform) Matrix() Mat2 {
	return Mat2{t.A, t.B, t.C, t.D}
}

// Vector returns the translation.
func (t Transform) Vector() Vec2d {
	return Vec2d{t.Tx, t.Ty}
}

// SetMatrix replaces the linear part.
func (t *Transform) SetMatrix(m Mat2) {
	t.A, t.B, t.C, t.D = m.A, m.B, m.C, m.D
}

// SetVector replaces the translation.
func (t *Transform) SetVector(v Vec2d) {
	t.Tx, t.Ty = v.X, v.Y
}

// Compose returns t∘other: other is applied first, then t.
func (t Transform) Compose(other Transform) Transform {
	m := t.Matrix()
	return Affine(m.Mul(other.Matrix()), t.Vector().Add(m.TransformVector(other.Vector())))
}

// MulMat2 returns t∘M, applying the linear map m first.
func (t Transform) MulMat2(m Mat2) Transform {
	return t.Compose(Affine(m, Vec2d{}))
}

// MulTransform returns M∘t, applying t first then the linear map m.
func (m Mat2) MulTransform(t Transform) Transform {
	return Affine(m, Vec2d{}).Compose(t)
}

// TransformVector returns M*v + t.
func (t Transform) TransformVector(v Vec2d) Vec2d {
	return t.Matrix().TransformVector(v).Add(t.Vector())
}

// MutateVector replaces *v by its image.
func (t Transform) MutateVector(v *Vec2d) {
	*v = t.TransformVector(*v)
}

// Translated adds v to the translation, in the target frame.
func (t Transform) Translated(v Vec2d) Transform {
	return Affine(t.Matrix(), t.Vector().Add(v))
}

// TranslatedLocal translates by v in the source frame: t∘Translation(v).
func (t Transform) TranslatedLocal(v Vec2d) Transform {
	m := t.Matrix()
	return Affine(m, t.Vector().Add(m.TransformVector(v)))
}

// Inverse returns the transform undoing t, or ErrSingular.
func (t Transform) Inverse() (Transform, error) {
	inv, err := t.Matrix().CheckedInverse()
	if err != nil {
		return Transform{}, err
	}
	return Affine(inv, inv.TransformVector(t.Vector()).Neg()), nil
}

// Equal compares all six components exactly.
func (t Transform) Equal(other Transform) bool {
	return t == other
}

// Similar reports whether every component differs by at most tol.
func (t Transform) Similar(other Transform, tol float64) bool {
	return t.Matrix().Similar(other.Matrix(), tol) &&
		math.Abs(t.Tx-other.Tx) <= tol && math.Abs(t.Ty-other.Ty) <= tol
}
