package screen

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
)

func TestToScreen(t *testing.T) {
	c := &Canvas{height: 480}
	tests := []struct {
		p    geometry.Vec2d
		x, y float32
	}{
		{geometry.Vec2d{X: 0, Y: 0}, 0, 480},
		{geometry.Vec2d{X: 10, Y: 480}, 10, 0},
		{geometry.Vec2d{X: 320, Y: 100}, 320, 380},
	}
	for _, tt := range tests {
		x, y := c.toScreen(tt.p)
		if x != tt.x || y != tt.y {
			t.Errorf("toScreen(%v) = (%v, %v), want (%v, %v)", tt.p, x, y, tt.x, tt.y)
		}
	}
}
