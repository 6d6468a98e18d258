package scene

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
)

// Variables a force script can read. It writes its answer into fx and fy.
var scriptInputs = []string{"x", "y", "vx", "vy", "mass", "t"}

// ScriptForce is a force function written in tengo:
//
//	math := import("math")
//	r := math.sqrt(x*x + y*y)
//	fx = -k * x / r
//	fy = -k * y / r
//
// Params become extra read-only globals. Only the math module can be imported.
type ScriptForce struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
	err      error
}

func NewScriptForce(src string, params map[string]float64) (*ScriptForce, error) {
	script := tengo.NewScript([]byte(src))
	for _, name := range append(scriptInputs, "fx", "fy") {
		if err := script.Add(name, 0.0); err != nil {
			return nil, fmt.Errorf("%w: script global %s: %v", ErrInvalidScene, name, err)
		}
	}
	for name, v := range params {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("%w: script param %s: %v", ErrInvalidScene, name, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile force script: %v", ErrInvalidScene, err)
	}
	return &ScriptForce{compiled: compiled}, nil
}

// Force evaluates the script for b. A failing run yields a zero force and is
// remembered for Err.
func (f *ScriptForce) Force(b physics.Body, t float64) geometry.Vec2d {
	f.mu.Lock()
	defer f.mu.Unlock()

	base := b.Base()
	inputs := []float64{base.Position.X, base.Position.Y, base.Velocity.X, base.Velocity.Y, base.Mass, t}
	for i, name := range scriptInputs {
		if err := f.compiled.Set(name, inputs[i]); err != nil {
			f.err = err
			return geometry.Vec2d{}
		}
	}
	_ = f.compiled.Set("fx", 0.0)
	_ = f.compiled.Set("fy", 0.0)

	if err := f.compiled.Run(); err != nil {
		f.err = err
		return geometry.Vec2d{}
	}
	return geometry.Vec2d{X: f.compiled.Get("fx").Float(), Y: f.compiled.Get("fy").Float()}
}

// Err returns the last runtime error, if any.
func (f *ScriptForce) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}
