package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"solar-system-scene/engine"
	"solar-system-scene/motion"
)

// Body ties a body's motion state to its scene node.
type Body struct {
	*motion.Body
	Node engine.Node
}

// Ring is a decorative orbit ring. It never changes after composition.
type Ring struct {
	Body         string
	Inner, Outer float64
	Node         engine.Node
}

// State is the scene graph and everything that changes per frame. There is
// one State per session; it is owned by the frame driver and lent to the
// motion model and the viewport adapter.
type State struct {
	Motion *motion.System
	Bodies []*Body
	Rings  []Ring

	Skybox engine.Node
	Light  engine.Node

	Camera   engine.Camera
	Controls engine.Controls
	Renderer engine.Renderer
}

// Body returns the named body.
func (st *State) Body(name string) (*Body, bool) {
	for _, b := range st.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Sync copies motion positions and rotations onto the scene nodes.
func (st *State) Sync() {
	for _, b := range st.Bodies {
		b.Node.SetPosition(b.Position)
		b.Node.SetRotation(mgl64.Vec3{0, b.Orientation(), 0})
	}
}
