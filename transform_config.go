package spatialmath

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Transform type names accepted in configs.
const (
	IdentityTransformType    = "identity"
	AxisAngleTransformType   = "axis_angle"
	EulerAnglesTransformType = "euler_angles"
	PoseTransformType        = "pose"
)

// TransformConfig holds a transform deserialized from JSON, with the value
// left raw until the type tag selects how to parse it.
type TransformConfig struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type translationConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (c translationConfig) vector() r3.Vector {
	return r3.Vector{X: c.X, Y: c.Y, Z: c.Z}
}

type axisAngleConfig struct {
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Z        float64           `json:"z"`
	ThetaDeg float64           `json:"th"`
	Offset   translationConfig `json:"offset"`
}

type eulerAnglesConfig struct {
	Yaw    float64           `json:"yaw"`
	Pitch  float64           `json:"pitch"`
	Roll   float64           `json:"roll"`
	Offset translationConfig `json:"offset"`
}

type poseConfig struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
}

// ParseTransformConfig builds the transform a config describes. An empty
// type, or an empty config, is the identity.
func ParseTransformConfig(cfg TransformConfig) (*AffineTransform, error) {
	switch cfg.Type {
	case "", IdentityTransformType:
		offset := translationConfig{}
		if err := unmarshalValue(cfg.Value, &offset); err != nil {
			return nil, err
		}
		return &AffineTransform{rot: NewIdentityMatrix3(), offset: offset.vector()}, nil
	case AxisAngleTransformType:
		aa := axisAngleConfig{}
		if err := unmarshalValue(cfg.Value, &aa); err != nil {
			return nil, err
		}
		axis := r3.Vector{X: aa.X, Y: aa.Y, Z: aa.Z}
		return NewTransformFromAxisAngle(aa.Offset.vector(), axis, aa.ThetaDeg), nil
	case EulerAnglesTransformType:
		ea := eulerAnglesConfig{}
		if err := unmarshalValue(cfg.Value, &ea); err != nil {
			return nil, err
		}
		return NewTransformFromAngles(ea.Offset.vector(), ea.Yaw, ea.Pitch, ea.Roll), nil
	case PoseTransformType:
		pc := poseConfig{}
		if err := unmarshalValue(cfg.Value, &pc); err != nil {
			return nil, err
		}
		return NewTransformFromPose(NewPose(r3.Vector{X: pc.X, Y: pc.Y, Z: pc.Z}, pc.Yaw, pc.Pitch)), nil
	default:
		return nil, errors.Errorf("transform type %s not recognized", cfg.Type)
	}
}

func unmarshalValue(raw json.RawMessage, into interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, into)
}
