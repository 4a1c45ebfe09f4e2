package motion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"solar-system-scene/models"
)

// ErrNoSun is returned when the body list has no orbital center.
var ErrNoSun = errors.New("motion: no sun in body list")

// Body is the mutable motion state of one catalogue body.
type Body struct {
	models.Body

	// Position is the current world position.
	Position mgl64.Vec3

	// Rotation is the accumulated axial rotation in radians. It is never
	// wrapped; use Orientation for an engine-facing angle.
	Rotation float64
}

// Orientation returns the rotation reduced to [0, 2π).
func (b *Body) Orientation() float64 {
	return Wrap(b.Rotation)
}

// System holds the motion state of every body in the scene.
type System struct {
	Bodies []*Body
	Sun    *Body

	// SpeedMultiplier is k in θ = t·k·s.
	SpeedMultiplier float64

	// RotationStep is added to every body's rotation once per frame.
	RotationStep float64
}

// NewSystem creates a system from the given bodies. The sun is placed at the
// world origin and every other body at its t = 0 orbit position.
func NewSystem(bodies []models.Body, speedMultiplier, rotationStep float64) (*System, error) {
	sys := &System{
		SpeedMultiplier: speedMultiplier,
		RotationStep:    rotationStep,
	}
	for _, b := range bodies {
		mb := &Body{Body: b}
		if b.IsSun() {
			if sys.Sun != nil {
				return nil, fmt.Errorf("motion: duplicate sun %q", b.Name)
			}
			sys.Sun = mb
		}
		sys.Bodies = append(sys.Bodies, mb)
	}
	if sys.Sun == nil {
		return nil, ErrNoSun
	}
	sys.Advance(0)
	return sys, nil
}

// Body returns the body with the given name.
func (s *System) Body(name string) (*Body, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Rotate adds one rotation step to every body, including the sun.
func (s *System) Rotate() {
	for _, b := range s.Bodies {
		b.Rotation += s.RotationStep
	}
}

// Advance moves every orbiting body to its position at time t, relative to
// the sun's current position.
func (s *System) Advance(t float64) {
	center := s.Sun.Position
	for _, b := range s.Bodies {
		if b == s.Sun {
			continue
		}
		b.Position = Position(t, s.SpeedMultiplier, b.RevolutionSpeed, b.OrbitRadius, center)
	}
}

// Step performs one frame of motion: rotation first, then orbits.
func (s *System) Step(t float64) {
	s.Rotate()
	s.Advance(t)
}

// Snapshot copies the current state.
func (s *System) Snapshot(frame uint64, t float64) *Snapshot {
	snap := &Snapshot{
		Frame:  frame,
		Time:   t,
		Bodies: make([]BodyState, 0, len(s.Bodies)),
	}
	for _, b := range s.Bodies {
		snap.Bodies = append(snap.Bodies, BodyState{
			Name:     b.Name,
			Position: b.Position,
			Rotation: b.Rotation,
		})
	}
	return snap
}
