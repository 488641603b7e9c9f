package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegRadConversion(t *testing.T) {
	test.That(t, DegToRad(0), test.ShouldAlmostEqual, 0)
	test.That(t, DegToRad(90), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, DegToRad(-90), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, RadToDeg(math.Pi), test.ShouldAlmostEqual, 180)

	for _, deg := range []float64{0, 1, 4, 5, 36, 51, 90, 179.5, 360, -723} {
		test.That(t, RadToDeg(DegToRad(deg)), test.ShouldAlmostEqual, deg)
	}
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-10, 1e-9), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1+1e-8, 1e-9), test.ShouldBeFalse)
	test.That(t, Float64AlmostEqual(-5, -5, 0), test.ShouldBeTrue)
}

func TestSquare(t *testing.T) {
	test.That(t, Square(3), test.ShouldEqual, 9)
	test.That(t, Square(-0.5), test.ShouldEqual, 0.25)
}
