package annotation

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// The structs below detail the annotation XML layout. Child order follows
// struct field order, which the format relies on; none of it may be
// reordered.

type axisValue struct {
	XMLName xml.Name
	Value   string `xml:"value,attr"`
}

type vectorNode struct {
	XMLName   xml.Name
	Dimension int `xml:"dimension,attr"`
	Axes      []axisValue
}

type matrixRow struct {
	XMLName xml.Name
	Value   string `xml:"value,attr"`
}

type matrixNode struct {
	XMLName  xml.Name
	Rows     int `xml:"rows,attr"`
	Cols     int `xml:"cols,attr"`
	RowNodes []matrixRow
}

type resolutionNode struct {
	XMLName     xml.Name `xml:"resolution"`
	Width       int      `xml:"width,attr"`
	Height      int      `xml:"height,attr"`
	Scale       string   `xml:"scale,attr"`
	AspectRatio string   `xml:"aspectratio,attr"`
}

type physicalNode struct {
	XMLName     xml.Name `xml:"physical"`
	LensMM      string   `xml:"lensmm,attr"`
	WidthCCDMM  string   `xml:"widthccdmm,attr"`
	HeightCCDMM string   `xml:"heightccdmm,attr"`
}

type sceneCameraNode struct {
	XMLName       xml.Name `xml:"scenecamera"`
	WorldPos      vectorNode
	RotEuler      vectorNode
	Resolution    resolutionNode
	Physical      physicalNode
	Calibration   matrixNode
	CoordRotation matrixNode
	Translation   vectorNode
	Projection    matrixNode
	MatrixWorld   matrixNode
}

type namedFile struct {
	Name string `xml:"name,attr"`
}

type filesNode struct {
	XMLName   xml.Name  `xml:"files"`
	ID        int       `xml:"id,attr"`
	ModelFile namedFile `xml:"modelFile"`
	MocapFile namedFile `xml:"mocapFile"`
}

type skeletalBoneNode struct {
	XMLName     xml.Name `xml:"bone"`
	Name        string   `xml:"name,attr"`
	WorldVector vectorNode
	BoneMatrix  matrixNode
	ImageVector vectorNode
	WorldTail   vectorNode
	ImgTail     vectorNode
	WorldHead   vectorNode
	ImgHead     vectorNode
}

type eyeBoneNode struct {
	XMLName     xml.Name `xml:"bone"`
	Name        string   `xml:"name,attr"`
	WorldVector vectorNode
	WorldHead   vectorNode
	WorldTail   vectorNode
	ImageVector vectorNode
	ImgTail     vectorNode
	ImgHead     vectorNode
}

type bonesNode struct {
	XMLName xml.Name `xml:"bones"`
	Bones   []interface{}
}

type personNode struct {
	XMLName       xml.Name `xml:"Person"`
	ID            int      `xml:"id,attr"`
	ColorMaterial string   `xml:"colormaterial,attr"`
	ModelName     string   `xml:"modelname,attr"`
	MocapSeq      string   `xml:"mocapseq,attr"`
	Bones         bonesNode
}

type frameNode struct {
	XMLName xml.Name `xml:"frame"`
	ID      int      `xml:"id,attr"`
	Persons []personNode
}

type animationNode struct {
	XMLName xml.Name `xml:"animation"`
	Frames  []frameNode
}

type annotationsDoc struct {
	XMLName   xml.Name `xml:"Annotations"`
	Files     []filesNode
	Camera    sceneCameraNode
	Animation animationNode
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newVectorNode(name string, axisNames []string, values []float64) vectorNode {
	node := vectorNode{
		XMLName:   xml.Name{Local: name},
		Dimension: len(values),
	}
	for i, v := range values {
		node.Axes = append(node.Axes, axisValue{
			XMLName: xml.Name{Local: axisNames[i]},
			Value:   formatFloat(v),
		})
	}
	return node
}

func newWorldNode(name string, v r3.Vector) vectorNode {
	return newVectorNode(name, []string{"x", "y", "z"}, []float64{v.X, v.Y, v.Z})
}

func newImageNode(name string, p r2.Point) vectorNode {
	return newVectorNode(name, []string{"x", "y"}, []float64{p.X, p.Y})
}

func newMatrixNode(name string, m mat.Matrix) matrixNode {
	rows, cols := m.Dims()
	node := matrixNode{
		XMLName: xml.Name{Local: name},
		Rows:    rows,
		Cols:    cols,
	}
	for i := 0; i < rows; i++ {
		entries := make([]string, 0, cols)
		for j := 0; j < cols; j++ {
			entries = append(entries, formatFloat(m.At(i, j)))
		}
		node.RowNodes = append(node.RowNodes, matrixRow{
			XMLName: xml.Name{Local: "row_" + strconv.Itoa(i)},
			Value:   strings.Join(entries, " "),
		})
	}
	return node
}

func newSceneCameraNode(camera *CameraRecord) sceneCameraNode {
	rt := mat.NewDense(3, 4, nil)
	rt.Slice(0, 3, 0, 3).(*mat.Dense).Copy(camera.R)
	rt.Set(0, 3, camera.T.X)
	rt.Set(1, 3, camera.T.Y)
	rt.Set(2, 3, camera.T.Z)
	return sceneCameraNode{
		WorldPos: newWorldNode("worldpos", camera.Position),
		RotEuler: newVectorNode("roteuler", []string{"yaw", "pitch", "roll"},
			[]float64{camera.Euler.X, camera.Euler.Y, camera.Euler.Z}),
		Resolution: resolutionNode{
			Width:       camera.Width,
			Height:      camera.Height,
			Scale:       formatFloat(camera.Scale),
			AspectRatio: formatFloat(camera.PixelAspectRatio),
		},
		Physical: physicalNode{
			LensMM:      formatFloat(camera.LensMM),
			WidthCCDMM:  formatFloat(camera.SensorWidthMM),
			HeightCCDMM: formatFloat(camera.SensorHeightMM),
		},
		Calibration:   newMatrixNode("calibrationmatrix", camera.K),
		CoordRotation: newMatrixNode("coordrotationmatrix", camera.R),
		Translation:   newWorldNode("translationvector", camera.T),
		Projection:    newMatrixNode("projectionmatrix", camera.P),
		MatrixWorld:   newMatrixNode("matrixworld", camera.World),
	}
}

func newBoneNode(bone BoneRecord) interface{} {
	if bone.Kind == EyeBone {
		return eyeBoneNode{
			Name:        bone.Name,
			WorldVector: newWorldNode("worldvector", bone.World),
			WorldHead:   newWorldNode("worldheadvector", bone.WorldHead),
			WorldTail:   newWorldNode("worldtailvector", bone.WorldTail),
			ImageVector: newImageNode("imagevector", bone.Image),
			ImgTail:     newImageNode("imgtailvector", bone.ImageTail),
			ImgHead:     newImageNode("imgheadvector", bone.ImageHead),
		}
	}
	return skeletalBoneNode{
		Name:        bone.Name,
		WorldVector: newWorldNode("worldvector", bone.World),
		BoneMatrix:  newMatrixNode("bonematrix", bone.Transform),
		ImageVector: newImageNode("imagevector", bone.Image),
		WorldTail:   newWorldNode("worldtailvector", bone.WorldTail),
		ImgTail:     newImageNode("imgtailvector", bone.ImageTail),
		WorldHead:   newWorldNode("worldheadvector", bone.WorldHead),
		ImgHead:     newImageNode("imgheadvector", bone.ImageHead),
	}
}

// Serialize encodes a completed session as the annotation XML document. The
// session must have its camera set and no frame mid-accumulation.
func Serialize(s *Session) ([]byte, error) {
	if s.camera == nil {
		return nil, ErrCameraNotSet
	}
	if s.current != nil {
		return nil, errors.Wrapf(ErrFrameInProgress, "frame %d still open", s.current.ID)
	}

	doc := annotationsDoc{Camera: newSceneCameraNode(s.camera)}
	for _, ref := range s.files {
		doc.Files = append(doc.Files, filesNode{
			ID:        ref.ID,
			ModelFile: namedFile{Name: ref.ModelFile},
			MocapFile: namedFile{Name: ref.MocapFile},
		})
	}
	for _, frame := range s.frames {
		fNode := frameNode{ID: frame.ID}
		for _, person := range frame.Persons {
			pNode := personNode{
				ID:            person.ID,
				ColorMaterial: person.ColorMaterial,
				ModelName:     person.ModelName,
				MocapSeq:      person.MocapSequence,
			}
			for _, bone := range person.bones {
				pNode.Bones.Bones = append(pNode.Bones.Bones, newBoneNode(bone))
			}
			fNode.Persons = append(fNode.Persons, pNode)
		}
		doc.Animation.Frames = append(doc.Animation.Frames, fNode)
	}

	body, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode annotation document")
	}
	return append([]byte(xml.Header), body...), nil
}
