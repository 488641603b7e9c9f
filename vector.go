package spatialmath

import (
	"github.com/golang/geo/r3"

	"github.com/framekit/spatialmath/utils"
)

// R3VectorAlmostEqual returns whether each component of the two vectors is
// within epsilon of its counterpart.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return utils.Float64AlmostEqual(a.X, b.X, epsilon) &&
		utils.Float64AlmostEqual(a.Y, b.Y, epsilon) &&
		utils.Float64AlmostEqual(a.Z, b.Z, epsilon)
}
