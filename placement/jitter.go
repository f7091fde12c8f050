package placement

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultJitterKappa is the von Mises concentration used to perturb subject
// orientations between frames; kappa=4 keeps most draws within about 60
// degrees of facing forward.
const DefaultJitterKappa = 4.0

// OrientationJitter draws per-frame rotation perturbations for the subjects
// in a scene from a von Mises distribution centered on zero. When
// SharedAcrossModels is set every subject in a frame turns by the same angle;
// otherwise each gets an independent draw.
type OrientationJitter struct {
	Kappa              float64
	SharedAcrossModels bool
	src                rand.Source
}

// NewOrientationJitter returns a jitter source with the default
// concentration.
func NewOrientationJitter(shared bool, src rand.Source) *OrientationJitter {
	return &OrientationJitter{
		Kappa:              DefaultJitterKappa,
		SharedAcrossModels: shared,
		src:                src,
	}
}

// Angles returns one rotation angle in radians per subject for a single
// frame.
func (j *OrientationJitter) Angles(n int) []float64 {
	angles := make([]float64, n)
	shared := j.sample()
	for i := range angles {
		if j.SharedAcrossModels {
			angles[i] = shared
		} else {
			angles[i] = j.sample()
		}
	}
	return angles
}

func (j *OrientationJitter) uniform01() float64 {
	dist := distuv.Uniform{Min: 0, Max: 1, Src: j.src}
	return dist.Rand()
}

// sample draws from a von Mises distribution with mean zero using the
// Best-Fisher rejection scheme. Zero concentration degenerates to a uniform
// angle.
func (j *OrientationJitter) sample() float64 {
	if j.Kappa == 0 {
		dist := distuv.Uniform{Min: -math.Pi, Max: math.Pi, Src: j.src}
		return dist.Rand()
	}

	tau := 1 + math.Sqrt(1+4*j.Kappa*j.Kappa)
	rho := (tau - math.Sqrt(2*tau)) / (2 * j.Kappa)
	r := (1 + rho*rho) / (2 * rho)

	var f float64
	for {
		z := math.Cos(math.Pi * j.uniform01())
		f = (1 + r*z) / (r + z)
		c := j.Kappa * (r - f)
		u := j.uniform01()
		if c*(2-c) > u || math.Log(c/u)+1 >= c {
			break
		}
	}
	if j.uniform01() < 0.5 {
		return -math.Acos(f)
	}
	return math.Acos(f)
}
