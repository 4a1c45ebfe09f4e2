// Package engine defines what the scene needs from a 3D rendering engine:
// a scene graph with sphere, box and ring meshes, textured lit and unlit
// materials, a point light, a perspective camera, orbit controls and a
// renderer.
//
// Implementations live in sub-packages: headless keeps everything in memory,
// xyzengine draws through cogentcore's xyz scene graph.
package engine

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Side selects which faces of a mesh are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

func (s Side) String() string {
	switch s {
	case BackSide:
		return "back"
	case DoubleSide:
		return "double"
	default:
		return "front"
	}
}

// Material describes the surface of a mesh.
type Material struct {
	// Texture is an image path; empty for a plain color.
	Texture string

	// Color is used when there is no texture, or when it fails to load.
	Color color.RGBA

	// Unlit surfaces ignore scene lights and are always fully visible.
	Unlit bool

	Side Side
}

// Node is an object placed in the scene graph.
type Node interface {
	Name() string
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)

	// Rotation returns Euler angles in radians, applied in X, Y, Z order.
	Rotation() mgl64.Vec3
	SetRotation(r mgl64.Vec3)
}

// Camera is a perspective camera.
type Camera interface {
	Node

	// LookAt orients the camera toward target with +Y up.
	LookAt(target mgl64.Vec3)
	Aspect() float64
	SetAspect(aspect float64)

	// UpdateProjection must be called after changing the aspect ratio.
	UpdateProjection()
}

// Controls move the camera from user input (drag to orbit, scroll to zoom).
type Controls interface {
	// Update applies buffered input to the camera.
	Update()
}

// Renderer draws the scene from the camera onto its output surface.
type Renderer interface {
	Size() (width, height int)
	SetSize(width, height int)
	Render()
}

// Engine builds the scene graph. Every Add method adds the object to the
// single scene owned by the engine.
type Engine interface {
	AddSphere(name string, radius float64, segments int, mat Material) Node

	// AddBox adds a box whose six faces use the given materials in the order
	// +X, -X, +Y, -Y, +Z, -Z.
	AddBox(name string, width, height, depth float64, faces []Material) Node

	// AddRing adds a flat annulus in the XY plane.
	AddRing(name string, inner, outer float64, segments int, mat Material) Node

	// AddPointLight adds an omnidirectional light. A distance of 0 means
	// the light does not fade with distance.
	AddPointLight(name string, pos mgl64.Vec3, intensity, distance float64) Node

	NewCamera(fov, aspect, near, far float64) Camera
	NewControls(cam Camera, minDistance, maxDistance float64) Controls
	Renderer() Renderer
}
