package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar-system-scene/config"
	"solar-system-scene/engine"
	"solar-system-scene/engine/headless"
)

func compose(t *testing.T) (*headless.Engine, *State) {
	t.Helper()
	eng := headless.New()
	st, err := NewComposer(eng, config.Default()).Compose(800, 600)
	require.NoError(t, err)
	return eng, st
}

func TestCompose_Default(t *testing.T) {
	eng, _ := compose(t)

	g := goldie.New(t)
	g.Assert(t, t.Name(), []byte(eng.Log()))
}

func TestCompose_Nodes(t *testing.T) {
	eng, st := compose(t)

	assert.Len(t, eng.NodesOf(headless.KindSphere), 9)
	assert.Len(t, eng.NodesOf(headless.KindRing), 8)
	assert.Len(t, eng.NodesOf(headless.KindLight), 1)
	assert.Len(t, eng.NodesOf(headless.KindBox), 1)
	assert.Len(t, st.Bodies, 9)
	assert.Len(t, st.Rings, 8)

	for _, r := range st.Rings {
		assert.InDelta(t, 0.1, r.Outer-r.Inner, 1e-9, r.Body)
		assert.Equal(t, mgl64.Vec3{math.Pi / 2, 0, 0}, r.Node.Rotation(), r.Body)
		assert.Equal(t, mgl64.Vec3{}, r.Node.Position(), r.Body)
	}

	box := eng.Node("skybox")
	require.NotNil(t, box)
	require.Len(t, box.Material, 6)
	for _, m := range box.Material {
		assert.Equal(t, engine.BackSide, m.Side)
		assert.True(t, m.Unlit)
	}

	sun := eng.Node("sun")
	require.NotNil(t, sun)
	assert.True(t, sun.Material[0].Unlit)
	assert.False(t, eng.Node("earth").Material[0].Unlit)
}

func TestCompose_InitialPositions(t *testing.T) {
	eng, st := compose(t)

	earth, ok := st.Body("earth")
	require.True(t, ok)
	assert.InDelta(t, 70, earth.Position.X(), 1e-9)
	assert.InDelta(t, 0, earth.Position.Z(), 1e-9)
	assert.Equal(t, earth.Position, eng.Node("earth").Position())
	assert.Equal(t, mgl64.Vec3{}, eng.Node("sun").Position())
}

func TestCompose_Camera(t *testing.T) {
	eng, st := compose(t)

	cam := eng.Camera
	require.NotNil(t, cam)
	assert.Equal(t, mgl64.Vec3{0, 0, 100}, cam.Position())
	assert.Equal(t, mgl64.Vec3{}, cam.Target)
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-12)
	assert.Equal(t, 12.0, eng.Controls.MinDistance)
	assert.Equal(t, 1000.0, eng.Controls.MaxDistance)

	w, h := st.Renderer.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestCompose_Once(t *testing.T) {
	c := NewComposer(headless.New(), config.Default())
	_, err := c.Compose(800, 600)
	require.NoError(t, err)

	_, err = c.Compose(800, 600)
	assert.ErrorIs(t, err, ErrAlreadyComposed)
}

func TestCompose_ZeroHeight(t *testing.T) {
	eng := headless.New()
	_, err := NewComposer(eng, config.Default()).Compose(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, eng.Camera.Aspect())
}

func TestCompose_BadColor(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.RingColor = "grey"

	_, err := NewComposer(headless.New(), cfg).Compose(800, 600)
	assert.Error(t, err)
}

func TestState_Sync(t *testing.T) {
	eng, st := compose(t)

	for i := 0; i < 3; i++ {
		st.Motion.Step(1000)
	}
	st.Sync()

	earth, _ := st.Body("earth")
	node := eng.Node("earth")
	assert.Equal(t, earth.Position, node.Position())
	assert.InDelta(t, 0.015, node.Rotation().Y(), 1e-12)
	assert.InDelta(t, 70*math.Cos(1), node.Position().X(), 1e-9)
}
