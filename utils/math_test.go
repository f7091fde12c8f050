package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, DegToRad(0), test.ShouldEqual, 0)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(123.4)), test.ShouldAlmostEqual, 123.4)
}

func TestModAngDeg(t *testing.T) {
	test.That(t, ModAngDeg(370), test.ShouldAlmostEqual, 10)
	test.That(t, ModAngDeg(-10), test.ShouldAlmostEqual, 350)
	test.That(t, ModAngDeg(360), test.ShouldAlmostEqual, 0)
	test.That(t, ModAngDeg(125), test.ShouldAlmostEqual, 125)
}
