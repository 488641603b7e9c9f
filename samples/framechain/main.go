// Package main composes a chain of reference frames from a JSON config and
// reports where each frame's origin and forward direction land in world
// coordinates.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/utils"

	"github.com/framekit/spatialmath"
)

var logger = golog.NewDevelopmentLogger("framechain")

// a turret on a vehicle: the vehicle is posed in the world, the turret is
// mounted a little above and ahead of the vehicle origin, swung 90 degrees.
const defaultChain = `[
	{"name": "vehicle", "type": "pose", "value": {"x": 10, "y": 0, "z": 5, "yaw": 45, "pitch": 0}},
	{"name": "turret", "type": "axis_angle", "value": {"y": 1, "th": 90, "offset": {"y": 1.5, "z": 2}}}
]`

type frameConfig struct {
	Name string `json:"name"`
	spatialmath.TransformConfig
}

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	flag.Parse()

	raw := []byte(defaultChain)
	if flag.Arg(0) != "" {
		var err error
		raw, err = os.ReadFile(flag.Arg(0))
		if err != nil {
			return err
		}
	}

	var frames []frameConfig
	if err := json.Unmarshal(raw, &frames); err != nil {
		return err
	}

	chain := spatialmath.NewIdentityTransform()
	for _, frame := range frames {
		tf, err := spatialmath.ParseTransformConfig(frame.TransformConfig)
		if err != nil {
			return err
		}
		chain = chain.Mul(tf)

		origin := chain.ToWorld(r3.Vector{})
		forward := chain.ToWorldAxis(r3.Vector{Z: 1})
		logger.Infow("frame in world coordinates",
			"frame", frame.Name,
			"origin", origin,
			"forward", forward,
		)
	}

	return nil
}
