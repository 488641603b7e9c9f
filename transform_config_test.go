package spatialmath

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"go.viam.com/utils"
)

func TestParseTransformConfig(t *testing.T) {
	file, err := os.Open("data/transforms.json")
	test.That(t, err, test.ShouldBeNil)
	defer utils.UncheckedErrorFunc(file.Close)

	data, err := io.ReadAll(file)
	test.That(t, err, test.ShouldBeNil)
	var testMap map[string]json.RawMessage
	err = json.Unmarshal(data, &testMap)
	test.That(t, err, test.ShouldBeNil)

	// config with an unknown transform type
	cfg := TransformConfig{}
	err = json.Unmarshal(testMap["wrong"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	_, err = ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldBeError, errors.New("transform type oiler_angles not recognized"))

	// config with a good type but a bad value
	cfg = TransformConfig{}
	err = json.Unmarshal(testMap["wrongvalue"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	_, err = ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot unmarshal string")

	// an empty config is the identity
	cfg = TransformConfig{}
	err = json.Unmarshal(testMap["empty"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	tf, err := ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tf.AlmostEqual(NewIdentityTransform(), 0), test.ShouldBeTrue)

	cfg = TransformConfig{}
	err = json.Unmarshal(testMap["identity"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	tf, err = ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tf.AlmostEqual(NewIdentityTransform(), 0), test.ShouldBeTrue)

	// identity with an offset is a pure translation
	cfg = TransformConfig{}
	err = json.Unmarshal(testMap["offsetonly"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	tf, err = ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	assertVectorsAlmostEqual(t, tf.ToWorld(r3.Vector{}), r3.Vector{X: 10})

	cfg = TransformConfig{}
	err = json.Unmarshal(testMap["axisangle"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	tf, err = ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	assertVectorsAlmostEqual(t, tf.ToWorld(r3.Vector{Z: 1}), r3.Vector{X: 11})

	cfg = TransformConfig{}
	err = json.Unmarshal(testMap["euler"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	tf, err = ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	assertVectorsAlmostEqual(t, tf.ToWorldAxis(r3.Vector{Z: 1}), NewPose(r3.Vector{}, 4, 5).Forward())

	cfg = TransformConfig{}
	err = json.Unmarshal(testMap["pose"], &cfg)
	test.That(t, err, test.ShouldBeNil)
	tf, err = ParseTransformConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	want := NewTransformFromPose(NewPose(r3.Vector{X: 1, Y: 2, Z: 3}, 4, 5))
	test.That(t, tf.AlmostEqual(want, 1e-12), test.ShouldBeTrue)
}
