// Package landmark projects named world-space character landmarks through a
// camera model and bridges the results into annotation bone records.
package landmark

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/depthsynth/depthsynth/annotation"
	"github.com/depthsynth/depthsynth/camera"
)

// Landmark is one named point of interest on a character as reported by the
// host scene per frame. Skeletal landmarks carry their bone's local 4x4
// transform plus head and tail world points; eye landmarks only have a
// location.
type Landmark struct {
	Name      string
	Eye       bool
	Location  r3.Vector
	Transform *mat.Dense
	Head      r3.Vector
	Tail      r3.Vector
}

// NewSkeletal builds a skeletal landmark.
func NewSkeletal(name string, location r3.Vector, transform *mat.Dense, head, tail r3.Vector) Landmark {
	return Landmark{
		Name:      name,
		Location:  location,
		Transform: transform,
		Head:      head,
		Tail:      tail,
	}
}

// NewEye builds a synthetic eye landmark; its head and tail collapse onto
// the location.
func NewEye(name string, location r3.Vector) Landmark {
	return Landmark{
		Name:     name,
		Eye:      true,
		Location: location,
		Head:     location,
		Tail:     location,
	}
}

// Projection is a landmark tracked across all three coordinate spaces for one
// camera. The camera-space coordinates are not serialized but are kept so
// callers can filter landmarks behind the image plane.
type Projection struct {
	Landmark   Landmark
	Image      r2.Point
	ImageHead  r2.Point
	ImageTail  r2.Point
	Camera     r3.Vector
	CameraHead r3.Vector
	CameraTail r3.Vector
}

// Project runs every landmark through the camera model, preserving input
// order. It is a pure function and safe to call concurrently for independent
// persons and frames.
func Project(model *camera.Model, landmarks []Landmark) []Projection {
	projections := make([]Projection, 0, len(landmarks))
	for _, lm := range landmarks {
		projections = append(projections, Projection{
			Landmark:   lm,
			Image:      model.WorldToImage(lm.Location),
			ImageHead:  model.WorldToImage(lm.Head),
			ImageTail:  model.WorldToImage(lm.Tail),
			Camera:     model.WorldToCamera(lm.Location),
			CameraHead: model.WorldToCamera(lm.Head),
			CameraTail: model.WorldToCamera(lm.Tail),
		})
	}
	return projections
}

// BoneRecord converts a single projection into its annotation form.
func (p Projection) BoneRecord() annotation.BoneRecord {
	kind := annotation.SkeletalBone
	if p.Landmark.Eye {
		kind = annotation.EyeBone
	}
	return annotation.BoneRecord{
		Name:      p.Landmark.Name,
		Kind:      kind,
		World:     p.Landmark.Location,
		Transform: p.Landmark.Transform,
		WorldHead: p.Landmark.Head,
		WorldTail: p.Landmark.Tail,
		Image:     p.Image,
		ImageHead: p.ImageHead,
		ImageTail: p.ImageTail,
	}
}

// RecordBones projects the landmarks and appends the resulting bone records
// to the person, in order.
func RecordBones(person *annotation.PersonRecord, model *camera.Model, landmarks []Landmark) error {
	for _, projection := range Project(model, landmarks) {
		if err := person.AddBone(projection.BoneRecord()); err != nil {
			return err
		}
	}
	return nil
}
