// Package scene describes the initial content of a space in YAML and builds
// it. A scene lists bodies (with optional replication), space overrides,
// force fields and gravitating pairs:
//
//	name: orbit
//	space:
//	  gravity: [0, 0]
//	bodies:
//	  - name: planet
//	    kind: circle
//	    radius: 3
//	    position: [170, 90]
//	    velocity: [0, 40]
//	    force: {type: central, center: [120, 90], k: 1600}
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScene reports a scene whose content cannot be built.
var ErrInvalidScene = errors.New("scene: invalid scene")

type Scene struct {
	Name   string     `yaml:"name"`
	Space  *SpaceSpec `yaml:"space"`
	Bodies []BodySpec `yaml:"bodies"`
	Pairs  []PairSpec `yaml:"gravityPairs"`

	// dir resolves relative script files.
	dir string
}

// SpaceSpec overrides the run configuration; absent keys keep it.
type SpaceSpec struct {
	Damping     *float64     `yaml:"damping"`
	Gravity     *Point       `yaml:"gravity"`
	Restitution *float64     `yaml:"restitution"`
	Margins     *MarginsSpec `yaml:"margins"`
}

type MarginsSpec struct {
	Left   *float64 `yaml:"left"`
	Right  *float64 `yaml:"right"`
	Top    *float64 `yaml:"top"`
	Bottom *float64 `yaml:"bottom"`
}

// BodySpec describes one body, or Count copies of it shifted by Step.
// Which geometry keys apply depends on Kind:
//
//	circle   radius
//	aabb     min, max (world corners)
//	segment  a, b, thickness
//	poly     vertices, or sides and radius
type BodySpec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	Radius    float64 `yaml:"radius"`
	Min       *Point  `yaml:"min"`
	Max       *Point  `yaml:"max"`
	A         *Point  `yaml:"a"`
	B         *Point  `yaml:"b"`
	Thickness float64 `yaml:"thickness"`
	Vertices  []Point `yaml:"vertices"`
	Sides     int     `yaml:"sides"`

	Position *Point   `yaml:"position"`
	Velocity *Point   `yaml:"velocity"`
	Mass     *float64 `yaml:"mass"`
	Color    string   `yaml:"color"`

	Damping     *float64 `yaml:"damping"`
	Gravity     *Point   `yaml:"gravity"`
	Restitution *float64 `yaml:"restitution"`

	Force *ForceSpec `yaml:"force"`

	Count int    `yaml:"count"`
	Step  *Point `yaml:"step"`
}

// ForceSpec selects a force function: central, spring or script.
type ForceSpec struct {
	Type       string             `yaml:"type"`
	Center     *Point             `yaml:"center"`
	K          float64            `yaml:"k"`
	Script     string             `yaml:"script"`
	ScriptFile string             `yaml:"scriptFile"`
	Params     map[string]float64 `yaml:"params"`
}

// PairSpec makes two named bodies attract each other.
type PairSpec struct {
	A     string  `yaml:"a"`
	B     string  `yaml:"b"`
	G     float64 `yaml:"g"`
	Alpha float64 `yaml:"alpha"`
}

// Point is written either [x, y] or {x: .., y: ..}.
type Point geometry.Vec2d

func (p Point) Vec() geometry.Vec2d { return geometry.Vec2d(p) }

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("%w: line %d: point needs 2 coordinates, got %d", ErrInvalidScene, value.Line, len(xy))
		}
		*p = Point{X: xy[0], Y: xy[1]}
		return nil
	case yaml.MappingNode:
		var xy struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := value.Decode(&xy); err != nil {
			return err
		}
		*p = Point{X: xy.X, Y: xy.Y}
		return nil
	default:
		return fmt.Errorf("%w: line %d: point must be [x, y] or {x, y}", ErrInvalidScene, value.Line)
	}
}

// Load reads and parses a scene file.
func Load(filename string) (*Scene, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", filename, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", filename, err)
	}
	sc.dir = filepath.Dir(filename)
	return sc, nil
}

// Parse decodes a scene. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	var sc Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScene)
		}
		return nil, err
	}
	return &sc, nil
}
