package geometry

import (
	"fmt"
	"math"
)

const (
	// Epsilon is the tolerance used by the approximate comparisons of this package.
	Epsilon = 1e-9

	// AngleTolerance is how far a cosine may drift past ±1 before GetAngleBetween
	// stops treating it as round-off.
	AngleTolerance = 1e-6

	RadsToDegrees = 180 / math.Pi
	DegreesToRads = math.Pi / 180
)

// Vec2d represents a 2D vector or point in cartesian space.
// Public fields keep literal initialization short: v := Vec2d{1, 2}.
// Methods with a value receiver never modify v; the pointer-receiver
// mutators (Rotate, AddInPlace, SetLength...) change it in place.
type Vec2d struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// NewVec2d creates a new Vec2d.
func NewVec2d(x, y float64) Vec2d {
	return Vec2d{X: x, Y: y}
}

// Polar creates a vector from its length and angle (radians).
func Polar(length, angle float64) Vec2d {
	x := length * math.Cos(angle)
	y := length * math.Sin(angle)

	// cos(pi/2) is not exactly zero, snap relative to length
	snap := Epsilon * math.Abs(length)
	if math.Abs(x) < snap {
		x = 0
	}
	if math.Abs(y) < snap {
		y = 0
	}
	return Vec2d{X: x, Y: y}
}

// UnitX is the unit vector along x.
func UnitX() Vec2d { return Vec2d{1, 0} }

// UnitY is the unit vector along y.
func UnitY() Vec2d { return Vec2d{0, 1} }

// ZeroVec is the null vector.
func ZeroVec() Vec2d { return Vec2d{} }

// String implements the fmt.Stringer interface.
func (v Vec2d) String() string {
	return fmt.Sprintf("Vec2d(%g, %g)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic Operations
// ---------------------------------------------------------------------

// Add adds two vectors and returns the result.
func (v Vec2d) Add(other Vec2d) Vec2d {
	return Vec2d{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts the other vector from the current vector.
func (v Vec2d) Sub(other Vec2d) Vec2d {
	return Vec2d{v.X - other.X, v.Y - other.Y}
}

// Neg returns the opposite vector.
func (v Vec2d) Neg() Vec2d {
	return Vec2d{-v.X, -v.Y}
}

// Pos returns a copy of v (unary plus).
func (v Vec2d) Pos() Vec2d {
	return Vec2d{v.X, v.Y}
}

// Mul scales the vector by a scalar value.
func (v Vec2d) Mul(scalar float64) Vec2d {
	return Vec2d{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar.
// Like float division it yields ±Inf/NaN components when scalar is zero.
func (v Vec2d) Div(scalar float64) Vec2d {
	return v.Mul(1 / scalar)
}

// AddInPlace is the += operator.
func (v *Vec2d) AddInPlace(other Vec2d) {
	v.X += other.X
	v.Y += other.Y
}

// SubInPlace is the -= operator.
func (v *Vec2d) SubInPlace(other Vec2d) {
	v.X -= other.X
	v.Y -= other.Y
}

// MulInPlace is the *= operator.
func (v *Vec2d) MulInPlace(scalar float64) {
	v.X *= scalar
	v.Y *= scalar
}

// DivInPlace is the /= operator.
func (v *Vec2d) DivInPlace(scalar float64) {
	v.MulInPlace(1 / scalar)
}

// ---------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------

// Dot calculates the dot product of two vectors.
func (v Vec2d) Dot(other Vec2d) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross calculates the 2D scalar cross product (z-component of 3D cross product).
func (v Vec2d) Cross(other Vec2d) float64 {
	return v.X*other.Y - v.Y*other.X
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LengthSqrd is the squared magnitude, cheaper than Length for comparisons.
func (v Vec2d) LengthSqrd() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length is the magnitude of the vector.
func (v Vec2d) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// SetLength rescales v in place, keeping its angle.
// A zero vector stays zero since it has no direction.
func (v *Vec2d) SetLength(length float64) {
	l := v.Length()
	if l == 0 {
		return
	}
	v.MulInPlace(length / l)
}

// Normalized returns a unit vector in the same direction.
// The zero vector has no direction and yields ErrZeroLength.
func (v Vec2d) Normalized() (Vec2d, error) {
	l := v.Length()
	if l == 0 {
		return Vec2d{}, fmt.Errorf("normalize %s: %w", v, ErrZeroLength)
	}
	return v.Div(l), nil
}

// Unit is an alias of Normalized.
func (v Vec2d) Unit() (Vec2d, error) {
	return v.Normalized()
}

// NormalizeReturnLength normalizes v in place and returns its previous length.
func (v *Vec2d) NormalizeReturnLength() (float64, error) {
	l := v.Length()
	if l == 0 {
		return 0, fmt.Errorf("normalize %s: %w", *v, ErrZeroLength)
	}
	v.DivInPlace(l)
	return l, nil
}

// ---------------------------------------------------------------------
// Angles
// ---------------------------------------------------------------------

// Angle returns the angle (radians) relative to the X-axis, in (-Pi, Pi].
func (v Vec2d) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleDegrees is Angle in degrees.
func (v Vec2d) AngleDegrees() float64 {
	return RadsToDegrees * v.Angle()
}

// SetAngle rotates v in place so that its angle becomes angle, keeping its length.
func (v *Vec2d) SetAngle(angle float64) {
	*v = Polar(v.Length(), angle)
}

// SetAngleDegrees is SetAngle in degrees.
func (v *Vec2d) SetAngleDegrees(angle float64) {
	v.SetAngle(angle * DegreesToRads)
}

// GetAngleBetween returns the unsigned angle (radians) between v and other.
// A zero-length operand has no direction and yields ErrZeroLength.
func (v Vec2d) GetAngleBetween(other Vec2d) (float64, error) {
	lv, lo := v.Length(), other.Length()
	if lv == 0 || lo == 0 {
		return 0, fmt.Errorf("angle between %s and %s: %w", v, other, ErrZeroLength)
	}
	cos := v.Dot(other) / lv / lo

	// round-off may push |cos| slightly over 1, outside the domain of Acos
	if math.Abs(cos-1) < AngleTolerance {
		cos = 1
	} else if math.Abs(cos+1) < AngleTolerance {
		cos = -1
	}
	return math.Acos(cos), nil
}

// GetAngleDegreesBetween is GetAngleBetween in degrees.
func (v Vec2d) GetAngleDegreesBetween(other Vec2d) (float64, error) {
	a, err := v.GetAngleBetween(other)
	return RadsToDegrees * a, err
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// GetDistance calculates the Euclidean distance to another vector.
func (v Vec2d) GetDistance(other Vec2d) float64 {
	return v.Sub(other).Length()
}

// GetDistSqrd calculates the squared Euclidean distance to another vector.
func (v Vec2d) GetDistSqrd(other Vec2d) float64 {
	return v.Sub(other).LengthSqrd()
}

// InterpolateTo blends v toward other: v*(1-t) + other*t.
// t outside [0, 1] extrapolates.
func (v Vec2d) InterpolateTo(other Vec2d, t float64) Vec2d {
	return v.Mul(1 - t).Add(other.Mul(t))
}

// Perpendicular returns v rotated 90 degrees counter-clockwise.
func (v Vec2d) Perpendicular() Vec2d {
	return Vec2d{-v.Y, v.X}
}

// PerpendicularNormal is the normalized Perpendicular.
func (v Vec2d) PerpendicularNormal() (Vec2d, error) {
	return v.Perpendicular().Normalized()
}

// Projection projects v onto other.
func (v Vec2d) Projection(other Vec2d) Vec2d {
	return other.Mul(v.Dot(other) / other.LengthSqrd())
}

// Rotated returns v rotated by angle (radians) around the origin.
func (v Vec2d) Rotated(angle float64) Vec2d {
	cosTheta := math.Cos(angle)
	sinTheta := math.Sin(angle)
	return Vec2d{
		X: v.X*cosTheta - v.Y*sinTheta,
		Y: v.X*sinTheta + v.Y*cosTheta,
	}
}

// RotatedDegrees is Rotated in degrees.
func (v Vec2d) RotatedDegrees(angle float64) Vec2d {
	return v.Rotated(angle * DegreesToRads)
}

// Rotate rotates v in place by angle (radians).
func (v *Vec2d) Rotate(angle float64) {
	*v = v.Rotated(angle)
}

// RotateDegrees rotates v in place by angle (degrees).
func (v *Vec2d) RotateDegrees(angle float64) {
	v.Rotate(angle * DegreesToRads)
}

// RotateAround rotates the vector by angle (radians) around a specific center point.
func (v Vec2d) RotateAround(angle float64, center Vec2d) Vec2d {
	return v.Sub(center).Rotated(angle).Add(center)
}

// ---------------------------------------------------------------------
// Comparison and indexing
// ---------------------------------------------------------------------

// Equal compares both components exactly.
func (v Vec2d) Equal(other Vec2d) bool {
	return v.X == other.X && v.Y == other.Y
}

// Similar reports whether both components differ by at most tol.
func (v Vec2d) Similar(other Vec2d, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol && math.Abs(v.Y-other.Y) <= tol
}

// At returns component i (0 for X, 1 for Y).
func (v Vec2d) At(i int) (float64, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	}
	return 0, fmt.Errorf("vector index %d: %w", i, ErrIndexOutOfRange)
}

// SetAt sets component i (0 for X, 1 for Y).
func (v *Vec2d) SetAt(i int, value float64) error {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		return fmt.Errorf("vector index %d: %w", i, ErrIndexOutOfRange)
	}
	return nil
}
