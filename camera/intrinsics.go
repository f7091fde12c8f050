// Package camera implements a pinhole camera model: intrinsic calibration,
// look-at extrinsics, and world-to-image projection in the computer-vision
// convention (X right, Y down, Z forward).
package camera

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SensorFit selects which physical sensor dimension is held fixed when the
// image aspect ratio differs from the sensor aspect ratio.
type SensorFit string

// The supported sensor-fit modes. Auto behaves like Horizontal for the
// calibration formulas.
const (
	FitAuto       SensorFit = "AUTO"
	FitHorizontal SensorFit = "HORIZONTAL"
	FitVertical   SensorFit = "VERTICAL"
)

// ErrInvalidIntrinsics is when camera intrinsic parameters are missing or malformed.
var ErrInvalidIntrinsics = errors.New("camera intrinsic parameters are not valid")

// NewInvalidIntrinsicsError is used when a set of intrinsics fails validation.
func NewInvalidIntrinsicsError(msg string) error {
	return errors.Wrap(ErrInvalidIntrinsics, msg)
}

// Intrinsics holds the physical lens and sensor parameters necessary to build
// a calibration matrix for a perspective projection of a 3D scene onto a 2D
// image plane.
type Intrinsics struct {
	Name             string    `json:"name"`
	LensMM           float64   `json:"lens_mm"`
	SensorWidthMM    float64   `json:"sensor_width_mm"`
	SensorHeightMM   float64   `json:"sensor_height_mm"`
	Width            int       `json:"width_px"`
	Height           int       `json:"height_px"`
	Scale            float64   `json:"scale"`
	PixelAspectRatio float64   `json:"pixel_aspect_ratio"`
	Fit              SensorFit `json:"sensor_fit"`
}

// CheckValid checks if the fields for Intrinsics have valid inputs.
func (params *Intrinsics) CheckValid() error {
	if params == nil {
		return NewInvalidIntrinsicsError("intrinsics do not exist")
	}
	if params.Width <= 0 || params.Height <= 0 {
		return NewInvalidIntrinsicsError(fmt.Sprintf("invalid image size (%#v, %#v)", params.Width, params.Height))
	}
	if params.LensMM <= 0 {
		return NewInvalidIntrinsicsError(fmt.Sprintf("invalid focal length %#v", params.LensMM))
	}
	if params.SensorWidthMM <= 0 || params.SensorHeightMM <= 0 {
		return NewInvalidIntrinsicsError(fmt.Sprintf("invalid sensor size (%#v, %#v)", params.SensorWidthMM, params.SensorHeightMM))
	}
	if params.Scale <= 0 {
		return NewInvalidIntrinsicsError(fmt.Sprintf("invalid resolution scale %#v", params.Scale))
	}
	if params.PixelAspectRatio <= 0 {
		return NewInvalidIntrinsicsError(fmt.Sprintf("invalid pixel aspect ratio %#v", params.PixelAspectRatio))
	}
	switch params.Fit {
	case FitAuto, FitHorizontal, FitVertical:
	default:
		return NewInvalidIntrinsicsError(fmt.Sprintf("invalid sensor fit %q", params.Fit))
	}
	return nil
}

// PixelScales returns the per-axis pixel densities (s_u, s_v) in px/mm. The
// fixed sensor dimension depends on the fit mode; the other dimension is
// effectively stretched by the pixel aspect ratio.
func (params *Intrinsics) PixelScales() (float64, float64) {
	w := float64(params.Width) * params.Scale
	h := float64(params.Height) * params.Scale
	if params.Fit == FitVertical {
		return w / params.SensorWidthMM / params.PixelAspectRatio, h / params.SensorHeightMM
	}
	return w / params.SensorWidthMM, h * params.PixelAspectRatio / params.SensorHeightMM
}

// CalibrationMatrix builds the 3x3 upper-triangular matrix K from the
// intrinsics. Skew is always zero and the principal point sits at the image
// center.
func (params *Intrinsics) CalibrationMatrix() *mat.Dense {
	su, sv := params.PixelScales()
	alphaU := params.LensMM * su
	alphaV := params.LensMM * sv
	u0 := float64(params.Width) * params.Scale / 2.
	v0 := float64(params.Height) * params.Scale / 2.
	return mat.NewDense(3, 3, []float64{
		alphaU, 0, u0,
		0, alphaV, v0,
		0, 0, 1,
	})
}
