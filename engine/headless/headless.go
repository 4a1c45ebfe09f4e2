// Package headless is an in-memory engine. It keeps the scene graph and
// counts renders without drawing anything, which makes it suitable for tests
// and for running the motion model behind the HTTP API.
package headless

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"solar-system-scene/engine"
)

// Kind is the type of a scene node.
type Kind string

const (
	KindSphere Kind = "sphere"
	KindBox    Kind = "box"
	KindRing   Kind = "ring"
	KindLight  Kind = "light"
	KindCamera Kind = "camera"
)

// Node is a scene node.
type Node struct {
	kind     Kind
	name     string
	pos      mgl64.Vec3
	rot      mgl64.Vec3
	Size     mgl64.Vec3 // radius, box extents, or ring inner/outer
	Segments int
	Material []engine.Material

	// Intensity and Distance are set for lights.
	Intensity float64
	Distance  float64
}

func (n *Node) Kind() Kind               { return n.kind }
func (n *Node) Name() string             { return n.name }
func (n *Node) Position() mgl64.Vec3     { return n.pos }
func (n *Node) SetPosition(p mgl64.Vec3) { n.pos = p }
func (n *Node) Rotation() mgl64.Vec3     { return n.rot }
func (n *Node) SetRotation(r mgl64.Vec3) { n.rot = r }

// Camera is a perspective camera.
type Camera struct {
	Node
	FOV, Near, Far float64
	Target         mgl64.Vec3

	aspect      float64
	Projections int // number of UpdateProjection calls
}

func (c *Camera) LookAt(target mgl64.Vec3) { c.Target = target }
func (c *Camera) Aspect() float64          { return c.aspect }
func (c *Camera) SetAspect(aspect float64) { c.aspect = aspect }
func (c *Camera) UpdateProjection()        { c.Projections++ }

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.pos.Sub(c.Target).Len()
}

// Controls keep the camera distance inside the zoom bounds. Input is fed
// with Zoom and applied on Update.
type Controls struct {
	Camera                   *Camera
	MinDistance, MaxDistance float64
	Updates                  int

	zoom float64
}

// Zoom buffers a change of camera distance; positive values move away from
// the target.
func (c *Controls) Zoom(delta float64) {
	c.zoom += delta
}

func (c *Controls) Update() {
	c.Updates++
	cam := c.Camera
	offset := cam.pos.Sub(cam.Target)
	dist := offset.Len()
	want := mgl64.Clamp(dist+c.zoom, c.MinDistance, c.MaxDistance)
	c.zoom = 0
	if dist == 0 || want == dist {
		return
	}
	cam.pos = cam.Target.Add(offset.Mul(want / dist))
}

// Renderer counts frames.
type Renderer struct {
	Width, Height int
	Frames        int
}

func (r *Renderer) Size() (int, int) { return r.Width, r.Height }
func (r *Renderer) SetSize(w, h int) { r.Width, r.Height = w, h }
func (r *Renderer) Render()          { r.Frames++ }

// Engine holds the whole scene in memory.
type Engine struct {
	Nodes    []*Node
	Camera   *Camera
	Controls *Controls
	renderer Renderer

	log []string
}

// New returns an empty engine.
func New() *Engine {
	return &Engine{}
}

// Node returns the node with the given name, or nil.
func (e *Engine) Node(name string) *Node {
	for _, n := range e.Nodes {
		if n.name == name {
			return n
		}
	}
	return nil
}

// NodesOf returns all nodes of the given kind in insertion order.
func (e *Engine) NodesOf(kind Kind) []*Node {
	var out []*Node
	for _, n := range e.Nodes {
		if n.kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Log returns one line per construction call, in call order.
func (e *Engine) Log() string {
	return strings.Join(e.log, "\n") + "\n"
}

func (e *Engine) logf(format string, args ...any) {
	e.log = append(e.log, fmt.Sprintf(format, args...))
}

func (e *Engine) add(n *Node) *Node {
	e.Nodes = append(e.Nodes, n)
	return n
}

func (e *Engine) AddSphere(name string, radius float64, segments int, mat engine.Material) engine.Node {
	e.logf("sphere %s r=%g segs=%d %s", name, radius, segments, describe(mat))
	return e.add(&Node{
		kind:     KindSphere,
		name:     name,
		Size:     mgl64.Vec3{radius, radius, radius},
		Segments: segments,
		Material: []engine.Material{mat},
	})
}

func (e *Engine) AddBox(name string, width, height, depth float64, faces []engine.Material) engine.Node {
	e.logf("box %s %gx%gx%g faces=%d", name, width, height, depth, len(faces))
	for i, f := range faces {
		e.logf("  face %d %s", i, describe(f))
	}
	return e.add(&Node{
		kind:     KindBox,
		name:     name,
		Size:     mgl64.Vec3{width, height, depth},
		Material: faces,
	})
}

func (e *Engine) AddRing(name string, inner, outer float64, segments int, mat engine.Material) engine.Node {
	e.logf("ring %s inner=%g outer=%g segs=%d %s", name, inner, outer, segments, describe(mat))
	return e.add(&Node{
		kind:     KindRing,
		name:     name,
		Size:     mgl64.Vec3{inner, outer, 0},
		Segments: segments,
		Material: []engine.Material{mat},
	})
}

func (e *Engine) AddPointLight(name string, pos mgl64.Vec3, intensity, distance float64) engine.Node {
	e.logf("light %s pos=%s intensity=%g distance=%g", name, vec(pos), intensity, distance)
	return e.add(&Node{
		kind:      KindLight,
		name:      name,
		pos:       pos,
		Intensity: intensity,
		Distance:  distance,
	})
}

func (e *Engine) NewCamera(fov, aspect, near, far float64) engine.Camera {
	e.logf("camera fov=%g aspect=%g near=%g far=%g", fov, aspect, near, far)
	e.Camera = &Camera{
		Node:   Node{kind: KindCamera, name: "camera"},
		FOV:    fov,
		Near:   near,
		Far:    far,
		aspect: aspect,
	}
	return e.Camera
}

func (e *Engine) NewControls(cam engine.Camera, minDistance, maxDistance float64) engine.Controls {
	e.logf("controls min=%g max=%g", minDistance, maxDistance)
	e.Controls = &Controls{
		Camera:      cam.(*Camera),
		MinDistance: minDistance,
		MaxDistance: maxDistance,
	}
	return e.Controls
}

func (e *Engine) Renderer() engine.Renderer {
	return &e.renderer
}

// Frames returns the number of rendered frames.
func (e *Engine) Frames() int {
	return e.renderer.Frames
}

func describe(m engine.Material) string {
	lit := "lit"
	if m.Unlit {
		lit = "unlit"
	}
	tex := m.Texture
	if tex == "" {
		tex = "-"
	}
	return fmt.Sprintf("tex=%s color=#%02x%02x%02x %s side=%s", tex, m.Color.R, m.Color.G, m.Color.B, lit, m.Side)
}

func vec(v mgl64.Vec3) string {
	return fmt.Sprintf("(%g,%g,%g)", v.X(), v.Y(), v.Z())
}
