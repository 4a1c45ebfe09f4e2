// Package xyzengine implements engine.Engine on a cogentcore xyz scene.
package xyzengine

import (
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/go-gl/mathgl/mgl64"

	"solar-system-scene/engine"
)

// Engine adds nodes to an xyz.Scene. It is not safe for concurrent use; GUI
// callers hold the scene widget's lock while stepping.
type Engine struct {
	sc       *xyz.Scene
	renderer *Renderer
	camera   *Camera
}

// New returns an engine drawing into sc. render is called for every frame
// and should mark the hosting widget for redraw.
func New(sc *xyz.Scene, render func()) *Engine {
	return &Engine{
		sc:       sc,
		renderer: &Renderer{render: render},
	}
}

// Scene returns the underlying xyz scene.
func (e *Engine) Scene() *xyz.Scene {
	return e.sc
}

func vec3(v mgl64.Vec3) math32.Vector3 {
	return math32.Vec3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func fromVec3(v math32.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

func degrees(r mgl64.Vec3) (x, y, z float32) {
	return float32(mgl64.RadToDeg(r.X())), float32(mgl64.RadToDeg(r.Y())), float32(mgl64.RadToDeg(r.Z()))
}

// solid is a Node backed by an xyz.Solid.
type solid struct {
	name string
	sld  *xyz.Solid
	rot  mgl64.Vec3
}

func (n *solid) Name() string             { return n.name }
func (n *solid) Position() mgl64.Vec3     { return fromVec3(n.sld.Pose.Pos) }
func (n *solid) SetPosition(p mgl64.Vec3) { n.sld.Pose.Pos = vec3(p) }
func (n *solid) Rotation() mgl64.Vec3     { return n.rot }

func (n *solid) SetRotation(r mgl64.Vec3) {
	n.rot = r
	n.sld.SetEulerRotation(degrees(r))
}

// group is a Node made of several solids that move together.
type group struct {
	name string
	grp  *xyz.Group
	rot  mgl64.Vec3
}

func (n *group) Name() string             { return n.name }
func (n *group) Position() mgl64.Vec3     { return fromVec3(n.grp.Pose.Pos) }
func (n *group) SetPosition(p mgl64.Vec3) { n.grp.Pose.Pos = vec3(p) }
func (n *group) Rotation() mgl64.Vec3     { return n.rot }

func (n *group) SetRotation(r mgl64.Vec3) {
	n.rot = r
	n.grp.SetEulerRotation(degrees(r))
}

// light is a Node backed by an xyz.PointLight.
type light struct {
	name string
	pl   *xyz.PointLight
}

func (n *light) Name() string             { return n.name }
func (n *light) Position() mgl64.Vec3     { return fromVec3(n.pl.Pos) }
func (n *light) SetPosition(p mgl64.Vec3) { n.pl.Pos = vec3(p) }
func (n *light) Rotation() mgl64.Vec3     { return mgl64.Vec3{} }
func (n *light) SetRotation(mgl64.Vec3)   {}

// applyMaterial sets color, texture, face culling and, for unlit
// materials, an emissive color so the surface stays visible without light.
func (e *Engine) applyMaterial(sld *xyz.Solid, name string, m engine.Material) {
	sld.SetColor(m.Color)
	if m.Unlit {
		sld.SetEmissive(m.Color)
	}
	if m.Texture != "" {
		if tex := xyz.NewTextureFile(e.sc, name+"-tex", m.Texture); tex != nil {
			sld.SetTexture(tex)
		}
	}
	switch m.Side {
	case engine.FrontSide:
		sld.Material.CullBack, sld.Material.CullFront = true, false
	case engine.BackSide:
		sld.Material.CullBack, sld.Material.CullFront = false, true
	case engine.DoubleSide:
		sld.Material.CullBack, sld.Material.CullFront = false, false
	}
}

func (e *Engine) AddSphere(name string, radius float64, segments int, mat engine.Material) engine.Node {
	mesh := xyz.NewSphere(e.sc, name+"-mesh", float32(radius), segments)
	sld := xyz.NewSolid(e.sc).SetMesh(mesh)
	sld.SetName(name)
	e.applyMaterial(sld, name, mat)
	return &solid{name: name, sld: sld}
}

// boxFaces lists the face normals of a box in engine order.
var boxFaces = []struct {
	axis math32.Dims
	sign float32
}{
	{math32.X, 1}, {math32.X, -1},
	{math32.Y, 1}, {math32.Y, -1},
	{math32.Z, 1}, {math32.Z, -1},
}

// AddBox builds the box from one plane per face, since an xyz solid has a
// single material. Back-side faces point inward.
func (e *Engine) AddBox(name string, width, height, depth float64, faces []engine.Material) engine.Node {
	grp := xyz.NewGroup(e.sc)
	grp.SetName(name)
	half := [3]float32{float32(width / 2), float32(height / 2), float32(depth / 2)}
	for i, f := range boxFaces {
		if i >= len(faces) {
			break
		}
		w, h := float32(width), float32(height)
		switch f.axis {
		case math32.X:
			w, h = float32(depth), float32(height)
		case math32.Y:
			w, h = float32(width), float32(depth)
		}
		faceName := fmt.Sprintf("%s-face%d", name, i)
		mesh := xyz.NewPlane(e.sc, faceName+"-mesh", w, h)
		mesh.NormAxis = f.axis
		mesh.NormNeg = (f.sign < 0) != (faces[i].Side == engine.BackSide)

		sld := xyz.NewSolid(grp).SetMesh(mesh)
		sld.SetName(faceName)
		var pos math32.Vector3
		pos.SetDim(f.axis, f.sign*half[f.axis])
		sld.Pose.Pos = pos

		// The plane normal already faces the requested side.
		mat := faces[i]
		mat.Side = engine.DoubleSide
		e.applyMaterial(sld, faceName, mat)
	}
	return &group{name: name, grp: grp}
}

func (e *Engine) AddRing(name string, inner, outer float64, segments int, mat engine.Material) engine.Node {
	geom, err := engine.RingGeometry(inner, outer, segments)
	if err != nil {
		panic(fmt.Sprintf("xyzengine: ring %s: %v", name, err))
	}
	mesh := &xyz.GenMesh{
		Vertex:   math32.ArrayF32(geom.Vertex),
		Normal:   math32.ArrayF32(geom.Normal),
		TexCoord: math32.ArrayF32(geom.TexCoord),
		Index:    math32.ArrayU32(geom.Index),
	}
	mesh.Name = name + "-mesh"
	e.sc.SetMesh(mesh)

	sld := xyz.NewSolid(e.sc).SetMesh(mesh)
	sld.SetName(name)
	e.applyMaterial(sld, name, mat)
	return &solid{name: name, sld: sld}
}

func (e *Engine) AddPointLight(name string, pos mgl64.Vec3, intensity, distance float64) engine.Node {
	pl := xyz.NewPointLight(e.sc, name, float32(intensity), xyz.DirectSun)
	pl.Pos = vec3(pos)
	if distance == 0 {
		pl.LinDecay, pl.QuadDecay = 0, 0
	} else {
		// Fall to about 1% of full intensity at distance.
		pl.LinDecay, pl.QuadDecay = 0, float32(99/(distance*distance))
	}
	return &light{name: name, pl: pl}
}

func (e *Engine) NewCamera(fov, aspect, near, far float64) engine.Camera {
	cam := &e.sc.Camera
	cam.FOV = float32(fov)
	cam.Aspect = float32(aspect)
	cam.Near = float32(near)
	cam.Far = float32(far)
	e.camera = &Camera{cam: cam, aspect: aspect}
	return e.camera
}

func (e *Engine) NewControls(cam engine.Camera, minDistance, maxDistance float64) engine.Controls {
	return &Controls{
		cam: cam.(*Camera),
		min: float32(minDistance),
		max: float32(maxDistance),
	}
}

func (e *Engine) Renderer() engine.Renderer {
	return e.renderer
}

// Camera wraps the scene camera. The aspect is kept at full precision
// because the xyz camera stores it as float32.
type Camera struct {
	cam    *xyz.Camera
	rot    mgl64.Vec3
	aspect float64
}

func (c *Camera) Name() string             { return "camera" }
func (c *Camera) Position() mgl64.Vec3     { return fromVec3(c.cam.Pose.Pos) }
func (c *Camera) SetPosition(p mgl64.Vec3) { c.cam.Pose.Pos = vec3(p) }
func (c *Camera) Rotation() mgl64.Vec3     { return c.rot }
func (c *Camera) Aspect() float64          { return c.aspect }
func (c *Camera) UpdateProjection()        { c.cam.UpdateMatrix() }

func (c *Camera) SetAspect(aspect float64) {
	c.aspect = aspect
	c.cam.Aspect = float32(aspect)
}

func (c *Camera) SetRotation(r mgl64.Vec3) {
	c.rot = r
	c.cam.Pose.SetEulerRotation(degrees(r))
}

func (c *Camera) LookAt(target mgl64.Vec3) {
	c.cam.LookAt(vec3(target), math32.Vec3(0, 1, 0))
}

// Controls bound the zoom of the scene's built-in mouse navigation.
type Controls struct {
	cam      *Camera
	min, max float32
}

func (c *Controls) Update() {
	cam := c.cam.cam
	offset := cam.Pose.Pos.Sub(cam.Target)
	dist := offset.Length()
	if dist == 0 {
		return
	}
	want := math32.Clamp(dist, c.min, c.max)
	if want == dist {
		return
	}
	cam.Pose.Pos = cam.Target.Add(offset.MulScalar(want / dist))
	cam.UpdateMatrix()
}

// Renderer asks the hosting widget to redraw.
type Renderer struct {
	width, height int
	render        func()
	frames        int
}

func (r *Renderer) Size() (int, int) { return r.width, r.height }
func (r *Renderer) SetSize(w, h int) { r.width, r.height = w, h }

func (r *Renderer) Render() {
	r.frames++
	if r.render != nil {
		r.render()
	}
}

// Frames returns the number of Render calls.
func (r *Renderer) Frames() int {
	return r.frames
}
