package motion

import (
	"github.com/go-gl/mathgl/mgl64"

	"solar-system-scene/models"
)

// Snapshot is an immutable copy of the motion state after a frame.
type Snapshot struct {
	Frame  uint64      `json:"frame" yaml:"frame"`
	Time   float64     `json:"time" yaml:"time"`
	Bodies []BodyState `json:"bodies" yaml:"bodies"`
}

// BodyState is one body inside a Snapshot.
type BodyState struct {
	Name     string     `json:"name" yaml:"name"`
	Position mgl64.Vec3 `json:"position" yaml:"position,flow"`
	Rotation float64    `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// Body returns the state of the named body.
func (s *Snapshot) Body(name string) (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return BodyState{}, false
}

// At computes the positions of all bodies at time t without any frame
// history. Rotation is left at zero since it depends on the frame count.
func At(bodies []models.Body, speedMultiplier, t float64) (*Snapshot, error) {
	sys, err := NewSystem(bodies, speedMultiplier, 0)
	if err != nil {
		return nil, err
	}
	sys.Advance(t)
	return sys.Snapshot(0, t), nil
}
