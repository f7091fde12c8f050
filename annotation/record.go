// Package annotation accumulates a capture session's camera, frame, person,
// and bone records and serializes them into the annotation XML format
// consumed downstream.
package annotation

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/depthsynth/depthsynth/camera"
)

// The synthetic eye landmark names. Eye records always close out a person's
// bone list, in this order.
const (
	EyeOneName = "Eye1"
	EyeTwoName = "Eye2"
)

// BoneKind tags a BoneRecord as either a true skeletal joint or a synthetic
// eye landmark; the two carry different fields and serialize differently.
type BoneKind int

// The bone record variants.
const (
	SkeletalBone BoneKind = iota
	EyeBone
)

// BoneRecord is one landmark of one person in one frame, tracked across
// world and image space. Skeletal bones additionally carry their local 4x4
// transform and head/tail world points; eye records only have a location, so
// their head/tail fields repeat it.
type BoneRecord struct {
	Name      string
	Kind      BoneKind
	World     r3.Vector
	Transform *mat.Dense // 4x4 local transform, skeletal bones only
	WorldHead r3.Vector
	WorldTail r3.Vector
	Image     r2.Point
	ImageHead r2.Point
	ImageTail r2.Point
}

// FileReference pairs the character asset with the motion sequence that
// animated it.
type FileReference struct {
	ID        int
	ModelFile string
	MocapFile string
}

// CameraRecord is the full calibration snapshot of the single camera a
// session was captured with.
type CameraRecord struct {
	Width            int
	Height           int
	Scale            float64
	PixelAspectRatio float64
	LensMM           float64
	SensorWidthMM    float64
	SensorHeightMM   float64
	Position         r3.Vector
	Euler            r3.Vector
	K                *mat.Dense
	R                *mat.Dense
	T                r3.Vector
	P                *mat.Dense
	World            *mat.Dense
}

// NewCameraRecord snapshots a camera model into its serializable form.
func NewCameraRecord(model *camera.Model) CameraRecord {
	intrinsics := model.Intrinsics()
	return CameraRecord{
		Width:            intrinsics.Width,
		Height:           intrinsics.Height,
		Scale:            intrinsics.Scale,
		PixelAspectRatio: intrinsics.PixelAspectRatio,
		LensMM:           intrinsics.LensMM,
		SensorWidthMM:    intrinsics.SensorWidthMM,
		SensorHeightMM:   intrinsics.SensorHeightMM,
		Position:         model.Position(),
		Euler:            model.EulerAngles(),
		K:                model.K(),
		R:                model.R(),
		T:                model.T(),
		P:                model.P(),
		World:            model.WorldMatrix(),
	}
}

// FrameRecord is one animation frame's worth of person records, in scene
// discovery order.
type FrameRecord struct {
	ID      int
	Persons []PersonRecord
}
