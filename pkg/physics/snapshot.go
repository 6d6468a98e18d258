package physics

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

// Snapshot is a frozen deep copy of a space, safe to hand to another goroutine.
type Snapshot struct {
	Time        float64
	Bodies      []Body
	Fingerprint uint64
}

// Snapshot copies the current state.
func (s *Space) Snapshot() *Snapshot {
	bodies := make([]Body, len(s.bodies))
	for i, b := range s.bodies {
		bodies[i] = b.Clone()
	}
	return &Snapshot{Time: s.time, Bodies: bodies, Fingerprint: s.Fingerprint()}
}

// Draw renders the frozen bodies.
func (snap *Snapshot) Draw(c render.Canvas, background *color.RGBA) {
	if background != nil {
		c.Clear(*background)
	}
	for _, b := range snap.Bodies {
		b.Draw(c)
	}
}

// Fingerprint hashes the clock and the kinematic state of every body in
// insertion order. IDs are left out, so two runs with the same inputs give
// the same value.
func (s *Space) Fingerprint() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.time))
	_, _ = d.Write(buf)
	for _, b := range s.bodies {
		base := b.Base()
		buf = buf[:0]
		buf = append(buf, byte(b.Kind()))
		for _, f := range []float64{base.Position.X, base.Position.Y, base.Velocity.X, base.Velocity.Y} {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
		_, _ = d.Write(buf)
	}
	return d.Sum64()
}
