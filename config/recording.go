package config

import (
	"encoding/xml"
	"os"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/depthsynth/depthsynth/camera"
)

// Airlock parameterizes the transparent enclosure scattered around the
// recording zone: its footprint, the grid step between wall segments, the
// height range, and the per-wall transparencies.
type Airlock struct {
	DimX  float64
	DimY  float64
	MinZ  float64
	MaxZ  float64
	StepX float64
	StepY float64

	WallATransparency float64
	WallBTransparency float64
	WallCTransparency float64
	WallDTransparency float64
}

// Recording is the recording-manager configuration: where the subjects
// stand, the enclosure around them, and the sensors to simulate.
type Recording struct {
	ReferencePoint r3.Vector
	Airlock        Airlock
	Cameras        []camera.Intrinsics
}

type valueAttr struct {
	Value float64 `xml:"value,attr"`
}

type stringValueAttr struct {
	Value string `xml:"value,attr"`
}

type recordingDoc struct {
	ReferencePoint struct {
		X float64 `xml:"x,attr"`
		Y float64 `xml:"y,attr"`
		Z float64 `xml:"z,attr"`
	} `xml:"referencepoint"`
	Airlock struct {
		DimX valueAttr `xml:"dimx"`
		DimY valueAttr `xml:"dimy"`
		DimZ struct {
			Min float64 `xml:"minValue,attr"`
			Max float64 `xml:"maxValue,attr"`
		} `xml:"dimz"`
		StepX     valueAttr `xml:"stepx"`
		StepY     valueAttr `xml:"stepy"`
		Materials struct {
			WallA struct {
				Transparency float64 `xml:"transparency,attr"`
			} `xml:"walla"`
			WallB struct {
				Transparency float64 `xml:"transparency,attr"`
			} `xml:"wallb"`
			WallC struct {
				Transparency float64 `xml:"transparency,attr"`
			} `xml:"wallc"`
			WallD struct {
				Transparency float64 `xml:"transparency,attr"`
			} `xml:"walld"`
		} `xml:"materials"`
	} `xml:"airlock"`
	Cameras []cameraDoc `xml:"cameras>camera"`
}

type cameraDoc struct {
	Name                 string          `xml:"name,attr"`
	LensMM               valueAttr       `xml:"lensmm"`
	WidthPx              valueAttr       `xml:"widthpx"`
	HeightPx             valueAttr       `xml:"heightpx"`
	WidthCCDMM           valueAttr       `xml:"widthccdmm"`
	HeightCCDMM          valueAttr       `xml:"heightccdmm"`
	SensorFit            stringValueAttr `xml:"sensorfit"`
	ResolutionPercentage valueAttr       `xml:"resolutionpercentage"`
}

// intrinsics derives a renderable sensor description from its configured
// parameters: the render scale comes from the resolution percentage, pixel
// aspect stays square, and the sensor height is re-derived from the sensor
// width and the image aspect so pixels stay square on the sensor too. The
// configured heightccdmm is a default the derivation overrides.
func (c cameraDoc) intrinsics() (camera.Intrinsics, error) {
	width := int(c.WidthPx.Value)
	height := int(c.HeightPx.Value)
	if height <= 0 || width <= 0 {
		return camera.Intrinsics{}, errors.Errorf("camera %q has invalid resolution %dx%d", c.Name, width, height)
	}
	intrinsics := camera.Intrinsics{
		Name:             c.Name,
		LensMM:           c.LensMM.Value,
		SensorWidthMM:    c.WidthCCDMM.Value,
		SensorHeightMM:   c.WidthCCDMM.Value / (float64(width) / float64(height)),
		Width:            width,
		Height:           height,
		Scale:            c.ResolutionPercentage.Value / 100.,
		PixelAspectRatio: 1,
		Fit:              camera.SensorFit(c.SensorFit.Value),
	}
	if err := intrinsics.CheckValid(); err != nil {
		return camera.Intrinsics{}, errors.Wrapf(err, "camera %q", c.Name)
	}
	return intrinsics, nil
}

// ReadRecording loads a recording-manager configuration document.
func ReadRecording(path string, logger golog.Logger) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read recording configuration %q", path)
	}
	var doc recordingDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "cannot parse recording configuration %q", path)
	}
	if len(doc.Cameras) == 0 {
		return nil, errors.Errorf("recording configuration %q defines no cameras", path)
	}

	rec := &Recording{
		ReferencePoint: r3.Vector{X: doc.ReferencePoint.X, Y: doc.ReferencePoint.Y, Z: doc.ReferencePoint.Z},
		Airlock: Airlock{
			DimX:              doc.Airlock.DimX.Value,
			DimY:              doc.Airlock.DimY.Value,
			MinZ:              doc.Airlock.DimZ.Min,
			MaxZ:              doc.Airlock.DimZ.Max,
			StepX:             doc.Airlock.StepX.Value,
			StepY:             doc.Airlock.StepY.Value,
			WallATransparency: doc.Airlock.Materials.WallA.Transparency,
			WallBTransparency: doc.Airlock.Materials.WallB.Transparency,
			WallCTransparency: doc.Airlock.Materials.WallC.Transparency,
			WallDTransparency: doc.Airlock.Materials.WallD.Transparency,
		},
	}
	for _, cam := range doc.Cameras {
		intrinsics, err := cam.intrinsics()
		if err != nil {
			return nil, errors.Wrapf(err, "recording configuration %q", path)
		}
		rec.Cameras = append(rec.Cameras, intrinsics)
		logger.Infow("camera configured",
			"name", intrinsics.Name,
			"lens_mm", intrinsics.LensMM,
			"resolution", []int{intrinsics.Width, intrinsics.Height},
			"scale", intrinsics.Scale)
	}
	logger.Infow("recording configuration loaded",
		"reference_point", rec.ReferencePoint,
		"cameras", len(rec.Cameras))
	return rec, nil
}
