package physics

import "errors"

var (
	// ErrNotImplemented marks operations that exist in the API but are not supported yet.
	ErrNotImplemented = errors.New("physics: not implemented")
	// ErrCollisionNotImplemented is returned when no collider handles a pair of kinds.
	ErrCollisionNotImplemented = errors.New("physics: collision not implemented")
	ErrInvalidMass             = errors.New("physics: mass must be positive")
	ErrInvalidGeometry         = errors.New("physics: invalid geometry")
	ErrDuplicateBody           = errors.New("physics: body already in space")
)
