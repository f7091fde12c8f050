package placement

import (
	"math"

	"github.com/golang/geo/r3"
)

// minCompanionOffset keeps a second subject from being placed inside the
// first when the separation is drawn per axis.
const minCompanionOffset = 0.4

// JitteredReference perturbs a subject position by up to maxOffset along the
// ground axes so repeated captures do not reuse the exact same spot.
func (s *Sampler) JitteredReference(base r3.Vector, maxOffset float64) r3.Vector {
	return r3.Vector{
		X: base.X + s.uniform(0, maxOffset),
		Y: base.Y + s.uniform(0, maxOffset),
		Z: base.Z,
	}
}

// CompanionPosition places a second subject relative to the first without
// collision. With fixedDistance the companion sits exactly distance away at a
// uniformly random bearing; otherwise each ground axis offset is drawn from
// [minCompanionOffset, distance].
func (s *Sampler) CompanionPosition(base r3.Vector, fixedDistance bool, distance float64) r3.Vector {
	if fixedDistance {
		angle := s.uniform(-math.Pi, math.Pi)
		return r3.Vector{
			X: base.X + distance*math.Cos(angle),
			Y: base.Y + distance*math.Sin(angle),
			Z: base.Z,
		}
	}
	return r3.Vector{
		X: base.X + s.uniform(minCompanionOffset, distance),
		Y: base.Y + s.uniform(minCompanionOffset, distance),
		Z: base.Z,
	}
}
