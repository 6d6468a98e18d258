// Package config loads the JSON run configuration shared by the host programs.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
)

//go:embed schema.json
var schemaSource string

const schemaURL = "mem://go-rigid2d/config.schema.json"

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Margins are optional world coordinates; a nil side is open.
type Margins struct {
	Left   *float64 `json:"left,omitempty"`
	Right  *float64 `json:"right,omitempty"`
	Top    *float64 `json:"top,omitempty"`
	Bottom *float64 `json:"bottom,omitempty"`
}

type Config struct {
	// Window
	WindowWidth    int `json:"windowWidth"`
	WindowHeight   int `json:"windowHeight"`
	TicksPerSecond int `json:"ticksPerSecond"`
	SubSteps       int `json:"subSteps"` // physics steps per tick

	// Space parameters
	Damping     float64 `json:"damping"`
	Gravity     Vec     `json:"gravity"`
	Restitution float64 `json:"restitution"`
	Margins     Margins `json:"margins"`

	// Logging
	LogLevel    string `json:"logLevel"`
	LogEncoding string `json:"logEncoding"`
	DebugActors bool   `json:"debugActors"`

	// Scene
	Scene      string `json:"scene"`
	WatchScene bool   `json:"watchScene"`
	ShowPanel  bool   `json:"showPanel"`
}

func DefaultConfig() *Config {
	return &Config{
		WindowWidth:    800,
		WindowHeight:   600,
		TicksPerSecond: 60,
		SubSteps:       1,
		Damping:        0,
		Gravity:        Vec{X: 0, Y: -300},
		Restitution:    1,
		LogLevel:       "info",
		LogEncoding:    "console",
		ShowPanel:      true,
	}
}

// TimeStep is the physics step length: one tick split into SubSteps.
func (c *Config) TimeStep() float64 {
	subSteps := max(c.SubSteps, 1)
	tps := max(c.TicksPerSecond, 1)
	return 1 / float64(tps*subSteps)
}

// WindowMargins closes the four sides of the window.
func (c *Config) WindowMargins() Margins {
	left, bottom := 0.0, 0.0
	right, top := float64(c.WindowWidth), float64(c.WindowHeight)
	return Margins{Left: &left, Right: &right, Top: &top, Bottom: &bottom}
}

// SpaceOptions converts the space parameters into physics options.
// A nil logger leaves the space silent.
func (c *Config) SpaceOptions(logger *zap.Logger) []physics.Option {
	opts := []physics.Option{
		physics.WithDamping(c.Damping),
		physics.WithGravity(geometry.Vec2d{X: c.Gravity.X, Y: c.Gravity.Y}),
		physics.WithRestitution(c.Restitution),
		physics.WithMargins(physics.Margins{
			Left:   c.Margins.Left,
			Right:  c.Margins.Right,
			Top:    c.Margins.Top,
			Bottom: c.Margins.Bottom,
		}),
	}
	if logger != nil {
		opts = append(opts, physics.WithLogger(logger))
	}
	return opts
}

// LoadConfig loads configuration from a JSON file and validates it against
// the embedded schema. Keys missing from the file keep their DefaultConfig value.
func LoadConfig(configFile string) (*Config, error) {
	sch, err := jsonschema.CompileString(schemaURL, schemaSource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return load(configFile, sch)
}

// LoadConfigWithSchema is LoadConfig with the schema read from schemaFile.
func LoadConfigWithSchema(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return load(configFile, sch)
}

func load(configFile string, sch *jsonschema.Schema) (*Config, error) {
	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
