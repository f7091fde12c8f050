package camera

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// flipYZ converts rotations and translations from the graphics camera
// convention (X right, Y up, Z backward) to the computer-vision one
// (X right, Y down, Z forward).
var flipYZ = mat.NewDense(3, 3, []float64{
	1, 0, 0,
	0, -1, 0,
	0, 0, -1,
})

// Model is a fully calibrated pinhole camera at a fixed pose. All matrices
// are derived once at construction; a Model is immutable and safe for
// concurrent use.
type Model struct {
	intrinsics Intrinsics
	position   r3.Vector
	lookAt     r3.Vector

	objRot *mat.Dense // camera object rotation, graphics convention, columns are the camera axes
	k      *mat.Dense // 3x3 calibration
	rot    *mat.Dense // 3x3 world-to-camera rotation, CV convention
	trans  r3.Vector  // translation paired with rot
	rt     *mat.Dense // 3x4 [R|T]
	proj   *mat.Dense // 3x4 K*[R|T]
}

// NewModel builds a camera model at the given world position, oriented so the
// optical axis passes through lookAt with the image upright relative to world
// +Z. The position and look-at point must be distinct.
func NewModel(intrinsics Intrinsics, position, lookAt r3.Vector) (*Model, error) {
	if err := intrinsics.CheckValid(); err != nil {
		return nil, err
	}
	dir := lookAt.Sub(position)
	if dir.Norm() == 0 {
		return nil, NewInvalidIntrinsicsError("camera position and look-at point coincide")
	}
	m := &Model{
		intrinsics: intrinsics,
		position:   position,
		lookAt:     lookAt,
		k:          intrinsics.CalibrationMatrix(),
		objRot:     trackRotation(dir),
	}
	m.computeExtrinsics()
	m.computeProjection()
	return m, nil
}

// trackRotation orients the canonical camera basis (forward -Z, up +Y) so
// that -Z points along dir, keeping +Y as upright as world +Z allows. The
// returned columns are the camera's axes expressed in world coordinates.
func trackRotation(dir r3.Vector) *mat.Dense {
	backward := dir.Mul(-1).Normalize()
	up := r3.Vector{X: 0, Y: 0, Z: 1}
	// if the view is (anti)parallel to world +Z, fall back to world +Y
	right := up.Cross(backward)
	if right.Norm() < 1e-12 {
		up = r3.Vector{X: 0, Y: 1, Z: 0}
		right = up.Cross(backward)
	}
	right = right.Normalize()
	trueUp := backward.Cross(right)
	return mat.NewDense(3, 3, []float64{
		right.X, trueUp.X, backward.X,
		right.Y, trueUp.Y, backward.Y,
		right.Z, trueUp.Z, backward.Z,
	})
}

func (m *Model) computeExtrinsics() {
	var worldToCam mat.Dense
	worldToCam.CloneFrom(m.objRot.T())
	var rot mat.Dense
	rot.Mul(flipYZ, &worldToCam)
	m.rot = &rot

	pos := mat.NewVecDense(3, []float64{m.position.X, m.position.Y, m.position.Z})
	var t mat.VecDense
	t.MulVec(&rot, pos)
	m.trans = r3.Vector{X: -t.AtVec(0), Y: -t.AtVec(1), Z: -t.AtVec(2)}

	rt := mat.NewDense(3, 4, nil)
	rt.Slice(0, 3, 0, 3).(*mat.Dense).Copy(&rot)
	rt.Set(0, 3, m.trans.X)
	rt.Set(1, 3, m.trans.Y)
	rt.Set(2, 3, m.trans.Z)
	m.rt = rt
}

func (m *Model) computeProjection() {
	proj := mat.NewDense(3, 4, nil)
	proj.Mul(m.k, m.rt)
	m.proj = proj
}

// Intrinsics returns the parameters the model was built from.
func (m *Model) Intrinsics() Intrinsics {
	return m.intrinsics
}

// Position returns the camera's world position.
func (m *Model) Position() r3.Vector {
	return m.position
}

// LookAt returns the world point the optical axis passes through.
func (m *Model) LookAt() r3.Vector {
	return m.lookAt
}

// K returns a copy of the 3x3 calibration matrix.
func (m *Model) K() *mat.Dense {
	return mat.DenseCopyOf(m.k)
}

// R returns a copy of the 3x3 world-to-camera rotation in the CV convention.
func (m *Model) R() *mat.Dense {
	return mat.DenseCopyOf(m.rot)
}

// T returns the translation vector paired with R.
func (m *Model) T() r3.Vector {
	return m.trans
}

// RT returns a copy of the 3x4 extrinsic matrix [R|T].
func (m *Model) RT() *mat.Dense {
	return mat.DenseCopyOf(m.rt)
}

// P returns a copy of the 3x4 projection matrix K*[R|T].
func (m *Model) P() *mat.Dense {
	return mat.DenseCopyOf(m.proj)
}

// WorldMatrix returns the camera object's 4x4 world transform in the graphics
// convention, rotation basis in the upper-left block and position in the last
// column.
func (m *Model) WorldMatrix() *mat.Dense {
	world := mat.NewDense(4, 4, nil)
	world.Slice(0, 3, 0, 3).(*mat.Dense).Copy(m.objRot)
	world.Set(0, 3, m.position.X)
	world.Set(1, 3, m.position.Y)
	world.Set(2, 3, m.position.Z)
	world.Set(3, 3, 1)
	return world
}

// EulerAngles returns the camera object's orientation as intrinsic XYZ Euler
// angles in radians.
func (m *Model) EulerAngles() r3.Vector {
	rot := m.objRot
	cy := math.Hypot(rot.At(0, 0), rot.At(1, 0))
	if cy < 1e-10 {
		return r3.Vector{
			X: math.Atan2(-rot.At(1, 2), rot.At(1, 1)),
			Y: math.Atan2(-rot.At(2, 0), cy),
			Z: 0,
		}
	}
	return r3.Vector{
		X: math.Atan2(rot.At(2, 1), rot.At(2, 2)),
		Y: math.Atan2(-rot.At(2, 0), cy),
		Z: math.Atan2(rot.At(1, 0), rot.At(0, 0)),
	}
}

// WorldToCamera transforms a world-space point into camera space (CV
// convention, Z forward), with no perspective division.
func (m *Model) WorldToCamera(pt r3.Vector) r3.Vector {
	var res mat.VecDense
	res.MulVec(m.rt, mat.NewVecDense(4, []float64{pt.X, pt.Y, pt.Z, 1}))
	return r3.Vector{X: res.AtVec(0), Y: res.AtVec(1), Z: res.AtVec(2)}
}

// WorldToImage projects a world-space point onto the image plane via the full
// projection matrix and perspective division. Points at zero homogeneous
// depth come back with non-finite coordinates; callers are expected to detect
// and filter those rather than have them swallowed here.
func (m *Model) WorldToImage(pt r3.Vector) r2.Point {
	var res mat.VecDense
	res.MulVec(m.proj, mat.NewVecDense(4, []float64{pt.X, pt.Y, pt.Z, 1}))
	z := res.AtVec(2)
	return r2.Point{X: res.AtVec(0) / z, Y: res.AtVec(1) / z}
}

// ProjectsInFront reports whether the point sits strictly in front of the
// image plane, guarding against the degenerate projections WorldToImage
// passes through.
func (m *Model) ProjectsInFront(pt r3.Vector) bool {
	return m.WorldToCamera(pt).Z > 0
}
