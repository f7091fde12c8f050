package placement

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/depthsynth/depthsynth/utils"
)

// MaxCameras bounds how many cameras a single request may place around the
// subject; the 120 degree sectors only tile the circle up to three.
const MaxCameras = 3

// ErrTooManyCameras is when a placement request exceeds MaxCameras.
var ErrTooManyCameras = errors.New("requested camera count is out of range")

const sectorWidthDeg = 120.

// Pose pairs a camera position with the world point it should aim at. Poses
// are ephemeral; each one is consumed immediately to build a camera model.
type Pose struct {
	Position r3.Vector
	LookAt   r3.Vector
}

// Sampler draws randomized camera poses from a recording zone. The random
// source is explicit so callers can seed it for reproducible runs; a nil
// source falls back to the shared global one.
type Sampler struct {
	zone Zone
	src  rand.Source
}

// NewSampler validates the zone and returns a sampler over it.
func NewSampler(zone Zone, src rand.Source) (*Sampler, error) {
	if err := zone.CheckValid(); err != nil {
		return nil, err
	}
	return &Sampler{zone: zone, src: src}, nil
}

// Zone returns the zone being sampled.
func (s *Sampler) Zone() Zone {
	return s.zone
}

func (s *Sampler) uniform(low, high float64) float64 {
	if low == high {
		return low
	}
	dist := distuv.Uniform{Min: low, Max: high, Src: s.src}
	return dist.Rand()
}

// Poses generates count camera poses around the zone's reference point, one
// per 120 degree azimuth sector starting at 0 so that simultaneously placed
// cameras keep an angular spread. Camera height is drawn from the zone's
// height range and the radial distance from the annulus; the look-at point
// sits above the reference point at a height drawn from
// [hipHeight, neckHeight], independent of the camera's own height.
func (s *Sampler) Poses(hipHeight, neckHeight float64, count int) ([]Pose, error) {
	if count < 1 || count > MaxCameras {
		return nil, errors.Wrapf(ErrTooManyCameras, "requested %d, supported 1 to %d", count, MaxCameras)
	}
	if neckHeight < hipHeight {
		return nil, errors.Errorf("neck height %v below hip height %v", neckHeight, hipHeight)
	}

	ref := s.zone.ReferencePoint
	activeRadius := s.zone.OuterRadius - s.zone.SafeRadius

	poses := make([]Pose, 0, count)
	for i := 0; i < count; i++ {
		azimuth := s.uniform(sectorWidthDeg*float64(i), sectorWidthDeg*float64(i+1))
		rad := utils.DegToRad(azimuth)
		radius := s.zone.SafeRadius + s.uniform(0, activeRadius)

		poses = append(poses, Pose{
			Position: r3.Vector{
				X: ref.X + radius*math.Cos(rad),
				Y: ref.Y + radius*math.Sin(rad),
				Z: s.uniform(s.zone.MinHeight, s.zone.MaxHeight),
			},
			LookAt: r3.Vector{
				X: ref.X,
				Y: ref.Y,
				Z: s.uniform(hipHeight, neckHeight),
			},
		})
	}
	return poses, nil
}

// GridParams describes a rectangular grid of positions centered on the
// zone's reference point, used to scatter static scene props such as the
// transparent enclosure walls.
type GridParams struct {
	DimX  float64
	DimY  float64
	StepX float64
	StepY float64
	MinZ  float64
	MaxZ  float64
}

// GridPositions lays out a centered grid of (x, y) positions over the zone
// with a uniformly random height per cell.
func (s *Sampler) GridPositions(params GridParams) []r3.Vector {
	ref := s.zone.ReferencePoint
	xs := gridAxis(params.DimX, params.StepX)
	ys := gridAxis(params.DimY, params.StepY)
	positions := make([]r3.Vector, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			positions = append(positions, r3.Vector{
				X: ref.X + x,
				Y: ref.Y + y,
				Z: s.uniform(params.MinZ, params.MaxZ),
			})
		}
	}
	return positions
}

// gridAxis spaces values step apart across [-length/2, length/2], shifted by
// half the division residue so the grid stays centered.
func gridAxis(length, step float64) []float64 {
	residue := math.Mod(length, step) / 2
	n := int(math.Trunc(length/step)) + 1
	values := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		values = append(values, float64(i)*step+residue-length/2)
	}
	return values
}
