package world

import (
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
)

// The world actor speaks protobuf well-known types:
//
//	*durationpb.Duration  advance the simulation by this much
//	*structpb.Struct      a command, selected by its "op" field
const (
	OpParams = "params" // damping, restitution, gravityX, gravityY, paused
	OpSpawn  = "spawn"  // kind, x, y, size
	OpReset  = "reset"  // rebuild the space from the current scene
	OpLoad   = "load"   // path: switch to another scene file
	OpStatus = "status" // answered with a status struct
)

// Tick asks for dt of simulated time.
func Tick(dt time.Duration) *durationpb.Duration {
	return durationpb.New(dt)
}

// Params are the live-tunable space parameters. Nil fields are left alone.
type Params struct {
	Damping     *float64
	Restitution *float64
	Gravity     *geometry.Vec2d
	Paused      *bool
}

func ParamsMessage(p Params) *structpb.Struct {
	fields := map[string]*structpb.Value{"op": structpb.NewStringValue(OpParams)}
	if p.Damping != nil {
		fields["damping"] = structpb.NewNumberValue(*p.Damping)
	}
	if p.Restitution != nil {
		fields["restitution"] = structpb.NewNumberValue(*p.Restitution)
	}
	if p.Gravity != nil {
		fields["gravityX"] = structpb.NewNumberValue(p.Gravity.X)
		fields["gravityY"] = structpb.NewNumberValue(p.Gravity.Y)
	}
	if p.Paused != nil {
		fields["paused"] = structpb.NewBoolValue(*p.Paused)
	}
	return &structpb.Struct{Fields: fields}
}

// SpawnMessage asks for a new body of the given kind centred on at.
// Size is the radius for circles and polygons, the side for boxes and the
// length for segments.
func SpawnMessage(kind physics.Kind, at geometry.Vec2d, size float64) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"op":   structpb.NewStringValue(OpSpawn),
		"kind": structpb.NewStringValue(kind.String()),
		"x":    structpb.NewNumberValue(at.X),
		"y":    structpb.NewNumberValue(at.Y),
		"size": structpb.NewNumberValue(size),
	}}
}

func ResetMessage() *structpb.Struct {
	return op(OpReset)
}

func LoadMessage(path string) *structpb.Struct {
	msg := op(OpLoad)
	msg.Fields["path"] = structpb.NewStringValue(path)
	return msg
}

func StatusMessage() *structpb.Struct {
	return op(OpStatus)
}

func op(name string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{"op": structpb.NewStringValue(name)}}
}

// Status is the decoded answer to StatusMessage.
type Status struct {
	Time        float64
	Bodies      int
	Paused      bool
	Fingerprint string
	Scene       string
}

// DecodeStatus reads a status struct produced by the world actor.
func DecodeStatus(s *structpb.Struct) (Status, error) {
	if s == nil {
		return Status{}, fmt.Errorf("nil status")
	}
	f := s.GetFields()
	if f["op"].GetStringValue() != OpStatus {
		return Status{}, fmt.Errorf("not a status message: %q", f["op"].GetStringValue())
	}
	return Status{
		Time:        f["time"].GetNumberValue(),
		Bodies:      int(f["bodies"].GetNumberValue()),
		Paused:      f["paused"].GetBoolValue(),
		Fingerprint: f["fingerprint"].GetStringValue(),
		Scene:       f["scene"].GetStringValue(),
	}, nil
}

func numberField(s *structpb.Struct, name string) (float64, bool) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, false
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false
	}
	return n.NumberValue, true
}
