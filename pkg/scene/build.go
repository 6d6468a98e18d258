package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
)

// Built is the result of populating a space.
type Built struct {
	Bodies []physics.Body
	// Named holds bodies that carry a name. Replicated bodies are named
	// "<name>-<i>".
	Named map[string]physics.Body
	// Scripts lists the scripted force functions, to poll their errors.
	Scripts []*ScriptForce
}

// SpaceOptions are the scene's overrides, to be applied after the run
// configuration's options.
func (sc *Scene) SpaceOptions() []physics.Option {
	if sc.Space == nil {
		return nil
	}
	var opts []physics.Option
	if sc.Space.Damping != nil {
		opts = append(opts, physics.WithDamping(*sc.Space.Damping))
	}
	if sc.Space.Gravity != nil {
		opts = append(opts, physics.WithGravity(sc.Space.Gravity.Vec()))
	}
	if sc.Space.Restitution != nil {
		opts = append(opts, physics.WithRestitution(*sc.Space.Restitution))
	}
	if m := sc.Space.Margins; m != nil {
		opts = append(opts, physics.WithMargins(physics.Margins{
			Left: m.Left, Right: m.Right, Top: m.Top, Bottom: m.Bottom,
		}))
	}
	return opts
}

// NewSpace creates a space from base options plus the scene's overrides and
// fills it.
func (sc *Scene) NewSpace(base ...physics.Option) (*physics.Space, *Built, error) {
	opts := append(append([]physics.Option{}, base...), sc.SpaceOptions()...)
	s := physics.NewSpace(opts...)
	built, err := sc.Populate(s)
	if err != nil {
		return nil, nil, err
	}
	return s, built, nil
}

// Populate adds the scene's bodies to s in declaration order.
func (sc *Scene) Populate(s *physics.Space) (*Built, error) {
	built := &Built{Named: make(map[string]physics.Body)}

	for i, spec := range sc.Bodies {
		count := max(spec.Count, 1)
		var step geometry.Vec2d
		if spec.Step != nil {
			step = spec.Step.Vec()
		}

		for n := range count {
			body, script, err := sc.buildBody(spec)
			if err != nil {
				return nil, fmt.Errorf("scene: body %d (%s): %w", i, spec.Kind, err)
			}
			body.Base().Position.AddInPlace(step.Mul(float64(n)))
			if err := s.Add(body); err != nil {
				return nil, fmt.Errorf("scene: body %d (%s): %w", i, spec.Kind, err)
			}
			built.Bodies = append(built.Bodies, body)
			if script != nil {
				built.Scripts = append(built.Scripts, script)
			}

			if spec.Name == "" {
				continue
			}
			name := spec.Name
			if count > 1 {
				name = fmt.Sprintf("%s-%d", spec.Name, n)
			}
			if _, dup := built.Named[name]; dup {
				return nil, fmt.Errorf("%w: duplicate body name %q", ErrInvalidScene, name)
			}
			built.Named[name] = body
		}
	}

	for i, pair := range sc.Pairs {
		a, okA := built.Named[pair.A]
		b, okB := built.Named[pair.B]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: gravity pair %d: unknown body %q or %q", ErrInvalidScene, i, pair.A, pair.B)
		}
		alpha := pair.Alpha
		if alpha == 0 {
			alpha = 2
		}
		onA, onB := physics.GravityPair(a, b, pair.G, alpha)
		a.Base().ForceFunc = physics.SumForces(a.Base().ForceFunc, onA)
		b.Base().ForceFunc = physics.SumForces(b.Base().ForceFunc, onB)
	}
	return built, nil
}

func (sc *Scene) buildBody(spec BodySpec) (physics.Body, *ScriptForce, error) {
	opts, script, err := sc.bodyOptions(spec)
	if err != nil {
		return nil, nil, err
	}

	kind, ok := physics.ParseKind(spec.Kind)
	if !ok {
		return nil, nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidScene, spec.Kind)
	}

	var body physics.Body
	switch kind {
	case physics.KindCircle:
		body, err = physics.NewCircle(spec.Radius, opts...)
	case physics.KindAABB:
		if spec.Min == nil || spec.Max == nil {
			return nil, nil, fmt.Errorf("%w: aabb needs min and max", ErrInvalidScene)
		}
		body, err = physics.NewAABB(spec.Min.X, spec.Min.Y, spec.Max.X, spec.Max.Y, opts...)
	case physics.KindSegment:
		if spec.A == nil || spec.B == nil {
			return nil, nil, fmt.Errorf("%w: segment needs a and b", ErrInvalidScene)
		}
		body, err = physics.NewSegment(spec.A.Vec(), spec.B.Vec(), spec.Thickness, opts...)
	case physics.KindPoly:
		if spec.Sides > 0 {
			body, err = physics.NewRegularPoly(spec.Sides, spec.Radius, opts...)
			break
		}
		verts := make([]geometry.Vec2d, len(spec.Vertices))
		for i, v := range spec.Vertices {
			verts[i] = v.Vec()
		}
		body, err = physics.NewPoly(verts, opts...)
	}
	if err != nil {
		return nil, nil, err
	}
	return body, script, nil
}

func (sc *Scene) bodyOptions(spec BodySpec) ([]physics.BodyOption, *ScriptForce, error) {
	var opts []physics.BodyOption
	if spec.Position != nil {
		opts = append(opts, physics.At(spec.Position.Vec()))
	}
	if spec.Velocity != nil {
		opts = append(opts, physics.WithVelocity(spec.Velocity.Vec()))
	}
	if spec.Mass != nil {
		opts = append(opts, physics.WithMass(*spec.Mass))
	}
	if spec.Color != "" {
		c, err := ParseColor(spec.Color)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, physics.WithColor(c))
	}
	if spec.Damping != nil {
		opts = append(opts, physics.WithBodyDamping(*spec.Damping))
	}
	if spec.Gravity != nil {
		opts = append(opts, physics.WithBodyGravity(spec.Gravity.Vec()))
	}
	if spec.Restitution != nil {
		opts = append(opts, physics.WithBodyRestitution(*spec.Restitution))
	}

	if spec.Force == nil {
		return opts, nil, nil
	}
	fn, script, err := sc.forceFunc(*spec.Force)
	if err != nil {
		return nil, nil, err
	}
	return append(opts, physics.WithForceFunc(fn)), script, nil
}

func (sc *Scene) forceFunc(f ForceSpec) (physics.ForceFunc, *ScriptForce, error) {
	switch f.Type {
	case "central", "spring":
		if f.Center == nil {
			return nil, nil, fmt.Errorf("%w: %s force needs a center", ErrInvalidScene, f.Type)
		}
		if f.Type == "central" {
			return physics.CentralForce(f.Center.Vec(), f.K), nil, nil
		}
		return physics.Spring(f.Center.Vec(), f.K), nil, nil
	case "script":
		src := f.Script
		if f.ScriptFile != "" {
			path := f.ScriptFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(sc.dir, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, fmt.Errorf("scene: load script %s: %w", path, err)
			}
			src = string(data)
		}
		if src == "" {
			return nil, nil, fmt.Errorf("%w: script force without source", ErrInvalidScene)
		}
		script, err := NewScriptForce(src, f.Params)
		if err != nil {
			return nil, nil, err
		}
		return script.Force, script, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown force type %q", ErrInvalidScene, f.Type)
	}
}
