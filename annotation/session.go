package annotation

import (
	"github.com/pkg/errors"
)

// Precondition errors surfaced by the session and person builders. These mark
// programming errors in the driver, not recoverable conditions.
var (
	ErrCameraAlreadySet = errors.New("camera record was already set for this session")
	ErrCameraNotSet     = errors.New("no camera record has been set")
	ErrNoOpenFrame      = errors.New("no frame is in progress")
	ErrFrameInProgress  = errors.New("a frame is already in progress")
	ErrFrameOutOfOrder  = errors.New("frame ids must form a contiguous increasing range")
	ErrDuplicateBone    = errors.New("bone name was already recorded for this person")
	ErrEyeOrder         = errors.New("eye records must come last, as Eye1 then Eye2")
)

// PersonRecord accumulates the bone records of one character in one frame.
// Bones append in discovery order; eyes are forced to the tail of the list.
type PersonRecord struct {
	ID            int
	ColorMaterial string
	ModelName     string
	MocapSequence string

	bones []BoneRecord
	names map[string]struct{}
	eyes  int
}

// NewPersonRecord starts a person record for the given character identity.
func NewPersonRecord(id int, colorMaterial, modelName, mocapSequence string) *PersonRecord {
	return &PersonRecord{
		ID:            id,
		ColorMaterial: colorMaterial,
		ModelName:     modelName,
		MocapSequence: mocapSequence,
		names:         map[string]struct{}{},
	}
}

// AddBone appends a bone record, enforcing unique names and that the two eye
// records arrive after every skeletal bone, Eye1 before Eye2.
func (p *PersonRecord) AddBone(bone BoneRecord) error {
	if _, ok := p.names[bone.Name]; ok {
		return errors.Wrap(ErrDuplicateBone, bone.Name)
	}
	switch bone.Kind {
	case SkeletalBone:
		if p.eyes > 0 {
			return errors.Wrapf(ErrEyeOrder, "skeletal bone %q after eye records", bone.Name)
		}
		if bone.Transform == nil {
			return errors.Errorf("skeletal bone %q is missing its local transform", bone.Name)
		}
	case EyeBone:
		expected := EyeOneName
		if p.eyes == 1 {
			expected = EyeTwoName
		}
		if p.eyes >= 2 || bone.Name != expected {
			return errors.Wrapf(ErrEyeOrder, "unexpected eye record %q", bone.Name)
		}
		p.eyes++
	default:
		return errors.Errorf("unknown bone kind %d", bone.Kind)
	}
	p.names[bone.Name] = struct{}{}
	p.bones = append(p.bones, bone)
	return nil
}

// Bones returns the accumulated bone records in insertion order.
func (p *PersonRecord) Bones() []BoneRecord {
	return p.bones
}

// Session is the append-only record of one capture: the asset files in play,
// the camera snapshot, and every completed frame. It keeps an implicit
// current-frame cursor, so a session must not be fed by more than one
// goroutine.
type Session struct {
	files   []FileReference
	camera  *CameraRecord
	frames  []FrameRecord
	current *FrameRecord
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// AddFileReference registers a character asset / motion sequence pairing,
// assigning it the next one-based id.
func (s *Session) AddFileReference(modelFile, mocapFile string) {
	s.files = append(s.files, FileReference{
		ID:        len(s.files) + 1,
		ModelFile: modelFile,
		MocapFile: mocapFile,
	})
}

// SetCamera records the capture camera. It may be called exactly once, and
// must happen before the first frame completes.
func (s *Session) SetCamera(record CameraRecord) error {
	if s.camera != nil {
		return ErrCameraAlreadySet
	}
	s.camera = &record
	return nil
}

// BeginFrame opens a frame accumulator for the given id. Frame ids must
// continue the contiguous range of frames already recorded.
func (s *Session) BeginFrame(id int) error {
	if s.current != nil {
		return errors.Wrapf(ErrFrameInProgress, "frame %d still open", s.current.ID)
	}
	if n := len(s.frames); n > 0 && id != s.frames[n-1].ID+1 {
		return errors.Wrapf(ErrFrameOutOfOrder, "got %d after %d", id, s.frames[n-1].ID)
	}
	s.current = &FrameRecord{ID: id}
	return nil
}

// AddPerson appends a completed person record to the open frame.
func (s *Session) AddPerson(person *PersonRecord) error {
	if s.current == nil {
		return ErrNoOpenFrame
	}
	s.current.Persons = append(s.current.Persons, *person)
	return nil
}

// EndFrame commits the open frame to the session. A camera record must be in
// place by the time the first frame completes.
func (s *Session) EndFrame() error {
	if s.current == nil {
		return ErrNoOpenFrame
	}
	if s.camera == nil {
		return ErrCameraNotSet
	}
	s.frames = append(s.frames, *s.current)
	s.current = nil
	return nil
}

// Files returns the registered file references.
func (s *Session) Files() []FileReference {
	return s.files
}

// Camera returns the camera record, or nil if none was set.
func (s *Session) Camera() *CameraRecord {
	return s.camera
}

// Frames returns the committed frames in id order.
func (s *Session) Frames() []FrameRecord {
	return s.frames
}
