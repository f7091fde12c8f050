package placement

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"golang.org/x/exp/rand"

	"github.com/depthsynth/depthsynth/utils"
)

func TestZoneCheckValid(t *testing.T) {
	zone := NewZone(r3.Vector{X: 1, Y: 2})
	test.That(t, zone.CheckValid(), test.ShouldBeNil)
	test.That(t, zone.SafeRadius, test.ShouldAlmostEqual, 2.0)
	test.That(t, zone.OuterRadius, test.ShouldAlmostEqual, 6.5)

	bad := zone
	bad.OuterRadius = bad.SafeRadius
	test.That(t, errors.Is(bad.CheckValid(), ErrInvalidZone), test.ShouldBeTrue)

	bad = zone
	bad.SafeRadius = -1
	test.That(t, errors.Is(bad.CheckValid(), ErrInvalidZone), test.ShouldBeTrue)

	bad = zone
	bad.MinHeight = 2
	bad.MaxHeight = 1
	test.That(t, errors.Is(bad.CheckValid(), ErrInvalidZone), test.ShouldBeTrue)

	_, err := NewSampler(bad, rand.NewSource(1))
	test.That(t, errors.Is(err, ErrInvalidZone), test.ShouldBeTrue)
}

func TestPosesCountBound(t *testing.T) {
	sampler, err := NewSampler(NewZone(r3.Vector{}), rand.NewSource(1))
	test.That(t, err, test.ShouldBeNil)

	_, err = sampler.Poses(0.9, 1.5, 4)
	test.That(t, errors.Is(err, ErrTooManyCameras), test.ShouldBeTrue)
	_, err = sampler.Poses(0.9, 1.5, 0)
	test.That(t, errors.Is(err, ErrTooManyCameras), test.ShouldBeTrue)
	_, err = sampler.Poses(1.5, 0.9, 2)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPosesSectorInvariant(t *testing.T) {
	zone := NewZone(r3.Vector{X: 3, Y: -2})
	for seed := uint64(0); seed < 50; seed++ {
		sampler, err := NewSampler(zone, rand.NewSource(seed))
		test.That(t, err, test.ShouldBeNil)
		poses, err := sampler.Poses(0.9, 1.5, 3)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, poses, test.ShouldHaveLength, 3)

		for i, pose := range poses {
			dx := pose.Position.X - zone.ReferencePoint.X
			dy := pose.Position.Y - zone.ReferencePoint.Y
			azimuth := utils.ModAngDeg(utils.RadToDeg(math.Atan2(dy, dx)))
			test.That(t, azimuth, test.ShouldBeGreaterThanOrEqualTo, 120.*float64(i))
			test.That(t, azimuth, test.ShouldBeLessThan, 120.*float64(i+1))
		}
	}
}

func TestPosesRanges(t *testing.T) {
	zone := NewZone(r3.Vector{X: 1, Y: 1})
	sampler, err := NewSampler(zone, rand.NewSource(7))
	test.That(t, err, test.ShouldBeNil)

	hip, neck := 0.95, 1.47
	for trial := 0; trial < 10000; trial++ {
		poses, err := sampler.Poses(hip, neck, 1)
		test.That(t, err, test.ShouldBeNil)
		pose := poses[0]

		test.That(t, pose.LookAt.X, test.ShouldAlmostEqual, zone.ReferencePoint.X)
		test.That(t, pose.LookAt.Y, test.ShouldAlmostEqual, zone.ReferencePoint.Y)
		test.That(t, pose.LookAt.Z, test.ShouldBeGreaterThanOrEqualTo, hip)
		test.That(t, pose.LookAt.Z, test.ShouldBeLessThanOrEqualTo, neck)

		test.That(t, pose.Position.Z, test.ShouldBeGreaterThanOrEqualTo, zone.MinHeight)
		test.That(t, pose.Position.Z, test.ShouldBeLessThanOrEqualTo, zone.MaxHeight)

		dx := pose.Position.X - zone.ReferencePoint.X
		dy := pose.Position.Y - zone.ReferencePoint.Y
		radius := math.Hypot(dx, dy)
		test.That(t, radius, test.ShouldBeGreaterThanOrEqualTo, zone.SafeRadius)
		test.That(t, radius, test.ShouldBeLessThanOrEqualTo, zone.OuterRadius)
	}
}

func TestGridPositions(t *testing.T) {
	zone := NewZone(r3.Vector{X: 10, Y: 20})
	sampler, err := NewSampler(zone, rand.NewSource(3))
	test.That(t, err, test.ShouldBeNil)

	params := GridParams{DimX: 4, DimY: 4, StepX: 2, StepY: 2, MinZ: 0.5, MaxZ: 1.5}
	positions := sampler.GridPositions(params)
	// three samples per axis: -2, 0, 2
	test.That(t, positions, test.ShouldHaveLength, 9)
	for _, pos := range positions {
		test.That(t, math.Abs(pos.X-zone.ReferencePoint.X), test.ShouldBeLessThanOrEqualTo, params.DimX/2)
		test.That(t, math.Abs(pos.Y-zone.ReferencePoint.Y), test.ShouldBeLessThanOrEqualTo, params.DimY/2)
		test.That(t, pos.Z, test.ShouldBeGreaterThanOrEqualTo, params.MinZ)
		test.That(t, pos.Z, test.ShouldBeLessThanOrEqualTo, params.MaxZ)
	}
	test.That(t, positions[0].X, test.ShouldAlmostEqual, 8)
	test.That(t, positions[len(positions)-1].X, test.ShouldAlmostEqual, 12)
}

func TestCompanionPosition(t *testing.T) {
	sampler, err := NewSampler(NewZone(r3.Vector{}), rand.NewSource(11))
	test.That(t, err, test.ShouldBeNil)

	base := r3.Vector{X: 1, Y: 2, Z: 0}
	for trial := 0; trial < 1000; trial++ {
		fixed := sampler.CompanionPosition(base, true, 1.5)
		test.That(t, fixed.Sub(base).Norm(), test.ShouldAlmostEqual, 1.5)
		test.That(t, fixed.Z, test.ShouldAlmostEqual, base.Z)

		loose := sampler.CompanionPosition(base, false, 1.5)
		test.That(t, loose.X-base.X, test.ShouldBeGreaterThanOrEqualTo, 0.4)
		test.That(t, loose.X-base.X, test.ShouldBeLessThanOrEqualTo, 1.5)
		test.That(t, loose.Y-base.Y, test.ShouldBeGreaterThanOrEqualTo, 0.4)
		test.That(t, loose.Y-base.Y, test.ShouldBeLessThanOrEqualTo, 1.5)
	}
}

func TestJitteredReference(t *testing.T) {
	sampler, err := NewSampler(NewZone(r3.Vector{}), rand.NewSource(13))
	test.That(t, err, test.ShouldBeNil)

	base := r3.Vector{X: -1, Y: 4, Z: 0.2}
	for trial := 0; trial < 1000; trial++ {
		moved := sampler.JitteredReference(base, 0.3)
		test.That(t, moved.X-base.X, test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, moved.X-base.X, test.ShouldBeLessThanOrEqualTo, 0.3)
		test.That(t, moved.Y-base.Y, test.ShouldBeGreaterThanOrEqualTo, 0)
		test.That(t, moved.Y-base.Y, test.ShouldBeLessThanOrEqualTo, 0.3)
		test.That(t, moved.Z, test.ShouldAlmostEqual, base.Z)
	}
}
