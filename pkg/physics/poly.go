package physics

import (
	"fmt"
	"math"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

// Poly is a convex polygon. Vertices are offsets from the body position,
// which is the centroid, wound counter-clockwise.
type Poly struct {
	BaseBody
	Vertices []geometry.Vec2d
}

// NewPoly creates a convex polygon from world vertices in either winding.
// Collinear, concave or self-intersecting outlines are rejected.
func NewPoly(vertices []geometry.Vec2d, opts ...BodyOption) (*Poly, error) {
	n := len(vertices)
	if n < 3 {
		return nil, fmt.Errorf("polygon with %d vertices: %w", n, ErrInvalidGeometry)
	}
	verts := slices.Clone(vertices)
	if signedArea(verts) < 0 {
		slices.Reverse(verts)
	}
	if !isConvex(verts) {
		return nil, fmt.Errorf("polygon is not strictly convex: %w", ErrInvalidGeometry)
	}

	cpVerts := make([]cp.Vector, n)
	for i, v := range verts {
		cpVerts[i] = v.CP()
	}
	centroid := geometry.FromCP(cp.CentroidForPoly(n, cpVerts))
	for i := range verts {
		verts[i] = verts[i].Sub(centroid)
	}

	base, err := newBaseBody(append([]BodyOption{At(centroid)}, opts...))
	if err != nil {
		return nil, fmt.Errorf("poly: %w", err)
	}
	return &Poly{BaseBody: base, Vertices: verts}, nil
}

// NewRegularPoly creates a regular polygon with n sides inscribed in a circle of radius.
func NewRegularPoly(n int, radius float64, opts ...BodyOption) (*Poly, error) {
	if n < 3 || !(radius > 0) {
		return nil, fmt.Errorf("regular polygon (%d, %g): %w", n, radius, ErrInvalidGeometry)
	}
	verts := make([]geometry.Vec2d, n)
	for i := range verts {
		verts[i] = geometry.Polar(radius, 2*math.Pi*float64(i)/float64(n))
	}
	return NewPoly(verts, opts...)
}

// WorldVertices returns the vertices in world coordinates.
func (p *Poly) WorldVertices() []geometry.Vec2d {
	out := make([]geometry.Vec2d, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = p.Position.Add(v)
	}
	return out
}

func (p *Poly) Kind() Kind { return KindPoly }
func (p *Poly) Base() *BaseBody { return &p.BaseBody }

func (p *Poly) Left() float64 {
	minX, _, _, _ := p.bounds()
	return p.Position.X + minX
}

func (p *Poly) Right() float64 {
	_, _, maxX, _ := p.bounds()
	return p.Position.X + maxX
}

func (p *Poly) Top() float64 {
	_, _, _, maxY := p.bounds()
	return p.Position.Y + maxY
}

func (p *Poly) Bottom() float64 {
	_, minY, _, _ := p.bounds()
	return p.Position.Y + minY
}

// bounds of the vertex offsets.
func (p *Poly) bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, v := range p.Vertices {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}

func (p *Poly) Area() float64 {
	return math.Abs(cp.AreaForPoly(len(p.Vertices), p.cpVertices(), 0))
}

func (p *Poly) Moment() float64 {
	return cp.MomentForPoly(p.Mass, len(p.Vertices), p.cpVertices(), cp.Vector{}, 0)
}

func (p *Poly) Draw(r render.Canvas) {
	render.Polyline(r, p.WorldVertices(), 1, p.Color)
}

func (p *Poly) Clone() Body {
	return &Poly{BaseBody: p.clone(), Vertices: slices.Clone(p.Vertices)}
}

func (p *Poly) hull() hull {
	return hull{verts: p.WorldVertices()}
}

func (p *Poly) cpVertices() []cp.Vector {
	out := make([]cp.Vector, len(p.Vertices))
	for i, v := range p.Vertices {
		out[i] = v.CP()
	}
	return out
}

// signedArea is positive for counter-clockwise outlines.
func signedArea(verts []geometry.Vec2d) float64 {
	var sum float64
	for i, v := range verts {
		sum += v.Cross(verts[(i+1)%len(verts)])
	}
	return sum / 2
}

// isConvex expects a counter-clockwise outline. Every vertex must turn left,
// relative to its edge lengths, and the turns must add up to one revolution,
// which rules out self-intersecting stars.
func isConvex(verts []geometry.Vec2d) bool {
	n := len(verts)
	var turning float64
	for i := range n {
		a, b, c := verts[i], verts[(i+1)%n], verts[(i+2)%n]
		e1, e2 := b.Sub(a), c.Sub(b)
		cross := e1.Cross(e2)
		if cross <= geometry.Epsilon*e1.Length()*e2.Length() {
			return false
		}
		turning += math.Atan2(cross, e1.Dot(e2))
	}
	return math.Abs(turning-2*math.Pi) < geometry.AngleTolerance
}
