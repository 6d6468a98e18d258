package geometry

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// AsVec2d coerces vector-like values to a Vec2d.
// Accepted: Vec2d, *Vec2d, [2]float64, [2]int, a []float64 of length 2 and cp.Vector.
func AsVec2d(obj any) (Vec2d, error) {
	switch v := obj.(type) {
	case Vec2d:
		return v, nil
	case *Vec2d:
		if v != nil {
			return *v, nil
		}
	case [2]float64:
		return Vec2d{v[0], v[1]}, nil
	case [2]int:
		return Vec2d{float64(v[0]), float64(v[1])}, nil
	case []float64:
		if len(v) == 2 {
			return Vec2d{v[0], v[1]}, nil
		}
		return Vec2d{}, fmt.Errorf("cannot convert []float64 of length %d to Vec2d: %w", len(v), ErrConversion)
	case cp.Vector:
		return Vec2d{v.X, v.Y}, nil
	}
	return Vec2d{}, fmt.Errorf("cannot convert %T to Vec2d: %w", obj, ErrConversion)
}

// AsMat2 coerces matrix-like values to a Mat2.
// Accepted: Mat2, *Mat2, [2][2]float64 given as rows and [4]float64 given as A, B, C, D.
func AsMat2(obj any) (Mat2, error) {
	switch m := obj.(type) {
	case Mat2:
		return m, nil
	case *Mat2:
		if m != nil {
			return *m, nil
		}
	case [2][2]float64:
		return NewMat2FromRows(Vec2d{m[0][0], m[0][1]}, Vec2d{m[1][0], m[1][1]}), nil
	case [4]float64:
		return Mat2{m[0], m[1], m[2], m[3]}, nil
	}
	return Mat2{}, fmt.Errorf("cannot convert %T to Mat2: %w", obj, ErrConversion)
}

// AsTransform coerces a value to a Transform.
// A Mat2 becomes a purely linear transform and anything AsVec2d accepts
// becomes a pure translation.
func AsTransform(obj any) (Transform, error) {
	switch t := obj.(type) {
	case Transform:
		return t, nil
	case *Transform:
		if t != nil {
			return *t, nil
		}
	case Mat2:
		return Affine(t, Vec2d{}), nil
	case *Mat2:
		if t != nil {
			return Affine(*t, Vec2d{}), nil
		}
	default:
		if v, err := AsVec2d(obj); err == nil {
			return Translation(v), nil
		}
	}
	return Transform{}, fmt.Errorf("cannot convert %T to Transform: %w", obj, ErrConversion)
}

// CP returns v as a chipmunk vector.
func (v Vec2d) CP() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// FromCP converts a chipmunk vector.
func FromCP(v cp.Vector) Vec2d {
	return Vec2d{v.X, v.Y}
}
