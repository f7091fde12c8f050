package placement

import (
	"math"
	"testing"

	"go.viam.com/test"
	"golang.org/x/exp/rand"
)

func TestOrientationJitterShared(t *testing.T) {
	jitter := NewOrientationJitter(true, rand.NewSource(5))
	angles := jitter.Angles(4)
	test.That(t, angles, test.ShouldHaveLength, 4)
	for _, a := range angles[1:] {
		test.That(t, a, test.ShouldAlmostEqual, angles[0])
	}
}

func TestOrientationJitterIndependent(t *testing.T) {
	jitter := NewOrientationJitter(false, rand.NewSource(5))
	angles := jitter.Angles(100)
	distinct := map[float64]struct{}{}
	for _, a := range angles {
		distinct[a] = struct{}{}
	}
	test.That(t, len(distinct), test.ShouldBeGreaterThan, 90)
}

func TestOrientationJitterRange(t *testing.T) {
	jitter := NewOrientationJitter(false, rand.NewSource(17))
	var sumAbs float64
	const trials = 10000
	for i := 0; i < trials; i++ {
		a := jitter.sample()
		test.That(t, a, test.ShouldBeGreaterThanOrEqualTo, -math.Pi)
		test.That(t, a, test.ShouldBeLessThanOrEqualTo, math.Pi)
		sumAbs += math.Abs(a)
	}
	// kappa=4 concentrates draws well inside the circle; the mean absolute
	// deviation of the distribution is about 0.4 radians
	test.That(t, sumAbs/trials, test.ShouldBeLessThan, 0.8)
}

func TestOrientationJitterZeroKappa(t *testing.T) {
	jitter := NewOrientationJitter(false, rand.NewSource(23))
	jitter.Kappa = 0
	var sum float64
	const trials = 10000
	for i := 0; i < trials; i++ {
		a := jitter.sample()
		test.That(t, a, test.ShouldBeGreaterThanOrEqualTo, -math.Pi)
		test.That(t, a, test.ShouldBeLessThanOrEqualTo, math.Pi)
		sum += a
	}
	test.That(t, math.Abs(sum/trials), test.ShouldBeLessThan, 0.1)
}
