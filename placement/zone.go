// Package placement generates randomized camera poses inside an annular
// recording zone around a subject.
package placement

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Default zone geometry in meters, chosen so a standing subject fills a
// reasonable share of the image from anywhere in the annulus.
const (
	DefaultSafeRadius  = 2.0
	DefaultOuterRadius = 6.5
	DefaultMinHeight   = 1.0
	DefaultMaxHeight   = 1.80
)

// ErrInvalidZone is when recording zone parameters do not describe a usable annulus.
var ErrInvalidZone = errors.New("recording zone parameters are not valid")

// NewInvalidZoneError is used when a zone fails validation.
func NewInvalidZoneError(msg string) error {
	return errors.Wrap(ErrInvalidZone, msg)
}

// Zone is the annular region around a reference point within which cameras
// may be placed. SafeRadius keeps cameras off the subject; OuterRadius bounds
// how far away they drift. Heights are absolute world Z values.
type Zone struct {
	ReferencePoint r3.Vector
	SafeRadius     float64
	OuterRadius    float64
	MinHeight      float64
	MaxHeight      float64
}

// NewZone returns a zone with the default geometry centered on the given
// reference point.
func NewZone(referencePoint r3.Vector) Zone {
	return Zone{
		ReferencePoint: referencePoint,
		SafeRadius:     DefaultSafeRadius,
		OuterRadius:    DefaultOuterRadius,
		MinHeight:      DefaultMinHeight,
		MaxHeight:      DefaultMaxHeight,
	}
}

// CheckValid checks if the fields for Zone have valid inputs.
func (z Zone) CheckValid() error {
	if z.SafeRadius < 0 {
		return NewInvalidZoneError(fmt.Sprintf("negative safe radius %#v", z.SafeRadius))
	}
	if z.OuterRadius <= z.SafeRadius {
		return NewInvalidZoneError(fmt.Sprintf("outer radius %#v does not exceed safe radius %#v", z.OuterRadius, z.SafeRadius))
	}
	if z.MaxHeight < z.MinHeight {
		return NewInvalidZoneError(fmt.Sprintf("height range (%#v, %#v) is inverted", z.MinHeight, z.MaxHeight))
	}
	return nil
}
