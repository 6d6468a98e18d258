package render

import "github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"

// Display is the host window state handed to code that needs it, captured
// once per frame by the host. It is a plain value: nothing reads the window
// behind the caller's back.
type Display struct {
	Width, Height  float64
	MouseX, MouseY float64
}

// Middle is the centre of the display.
func (d Display) Middle() geometry.Vec2d {
	return geometry.Vec2d{X: d.Width / 2, Y: d.Height / 2}
}

// MousePos is the pointer position in world coordinates.
func (d Display) MousePos() geometry.Vec2d {
	return geometry.Vec2d{X: d.MouseX, Y: d.MouseY}
}

// Contains reports whether p lies inside the display.
func (d Display) Contains(p geometry.Vec2d) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= d.Width && p.Y <= d.Height
}

// FlipY converts between world (y up) and screen (y down) coordinates.
// The conversion is its own inverse.
func (d Display) FlipY(y float64) float64 {
	return d.Height - y
}
