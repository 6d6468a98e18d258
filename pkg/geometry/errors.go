package geometry

import "errors"

// Sentinel errors returned by the geometry package.
// Callers match them with errors.Is; context is added with %w wrapping.
var (
	// ErrConversion is returned when a value cannot be coerced to Vec2d, Mat2 or Transform.
	ErrConversion = errors.New("geometry: unsupported conversion")

	// ErrIndexOutOfRange is returned by the component accessors (At, SetAt, Row, Col).
	ErrIndexOutOfRange = errors.New("geometry: index out of range")

	// ErrZeroLength is returned when a zero vector would have to be normalized.
	ErrZeroLength = errors.New("geometry: zero length vector")

	// ErrSingular is returned by the checked inverses when the determinant is zero.
	ErrSingular = errors.New("geometry: singular matrix")

	// ErrComplexEigen is returned by Eigenvectors when the eigenvalues are not real.
	ErrComplexEigen = errors.New("geometry: complex eigenvalues have no real eigenvectors")
)
