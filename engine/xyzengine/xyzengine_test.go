package xyzengine

import (
	"image/color"
	"math"
	"testing"

	"cogentcore.org/core/xyz"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-system-scene/engine"
)

func TestEngine_Sphere(t *testing.T) {
	e := New(xyz.NewScene(), nil)
	grey := color.RGBA{128, 128, 128, 255}
	n := e.AddSphere("earth", 4, 32, engine.Material{Color: grey})

	n.SetPosition(mgl64.Vec3{70, 0, 0})
	assert.Equal(t, mgl64.Vec3{70, 0, 0}, n.Position())

	n.SetRotation(mgl64.Vec3{0, 0.5, 0})
	assert.Equal(t, mgl64.Vec3{0, 0.5, 0}, n.Rotation())
	assert.Equal(t, "earth", n.Name())

	sld := n.(*solid).sld
	assert.Equal(t, grey, sld.Material.Color)
	assert.True(t, sld.Material.CullBack)
}

func TestEngine_UnlitDoubleSide(t *testing.T) {
	e := New(xyz.NewScene(), nil)
	c := color.RGBA{128, 128, 128, 255}
	n := e.AddRing("earth-orbit", 69.9, 70, 16, engine.Material{Color: c, Unlit: true, Side: engine.DoubleSide})

	sld := n.(*solid).sld
	assert.Equal(t, c, sld.Material.Emissive)
	assert.False(t, sld.Material.CullBack)
	assert.False(t, sld.Material.CullFront)
	assert.NotNil(t, e.Scene().MeshByName("earth-orbit-mesh"))
}

func TestEngine_Box(t *testing.T) {
	e := New(xyz.NewScene(), nil)
	faces := make([]engine.Material, 6)
	for i := range faces {
		faces[i] = engine.Material{Unlit: true, Side: engine.BackSide}
	}
	n := e.AddBox("skybox", 1000, 1000, 1000, faces)

	grp := n.(*group).grp
	require.Equal(t, 6, grp.NumChildren())
	first := grp.Child(0).(*xyz.Solid)
	assert.InDelta(t, 500, first.Pose.Pos.X, 1e-3)
}

func TestEngine_Light(t *testing.T) {
	e := New(xyz.NewScene(), nil)
	n := e.AddPointLight("sun-light", mgl64.Vec3{1, 2, 3}, 1, 0)

	pl := n.(*light).pl
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, n.Position())
	assert.Zero(t, pl.LinDecay)
	assert.Zero(t, pl.QuadDecay)
}

func TestCamera_Controls(t *testing.T) {
	e := New(xyz.NewScene(), nil)
	cam := e.NewCamera(85, 2, 0.1, 1000)
	cam.SetPosition(mgl64.Vec3{0, 0, 5})
	cam.LookAt(mgl64.Vec3{})
	ctl := e.NewControls(cam, 12, 1000)

	ctl.Update()
	assert.InDelta(t, 12, cam.Position().Len(), 1e-4)

	cam.SetAspect(1.5)
	cam.UpdateProjection()
	assert.InDelta(t, 1.5, cam.Aspect(), 1e-6)
}

func TestCamera_AspectPrecision(t *testing.T) {
	e := New(xyz.NewScene(), nil)
	aspect := 1366.0 / 768.0
	cam := e.NewCamera(85, aspect, 0.1, 1000)
	assert.Equal(t, aspect, cam.Aspect())

	aspect = 1920.0 / 1080.0
	cam.SetAspect(aspect)
	assert.Equal(t, aspect, cam.Aspect())
	assert.Equal(t, float32(aspect), e.Scene().Camera.Aspect)
}

func TestRenderer(t *testing.T) {
	calls := 0
	e := New(xyz.NewScene(), func() { calls++ })
	r := e.Renderer()
	r.SetSize(640, 480)
	r.Render()

	w, h := r.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, e.renderer.Frames())
}

func TestDegrees(t *testing.T) {
	x, y, z := degrees(mgl64.Vec3{math.Pi / 2, math.Pi, 0})
	assert.InDelta(t, 90, x, 1e-4)
	assert.InDelta(t, 180, y, 1e-4)
	assert.Zero(t, z)
}
