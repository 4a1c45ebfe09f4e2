// Package scene builds the solar-system scene graph.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"solar-system-scene/config"
	"solar-system-scene/engine"
	"solar-system-scene/motion"
)

// ErrAlreadyComposed is returned by a second Compose on the same Composer.
var ErrAlreadyComposed = errors.New("scene: already composed")

// Composer builds the scene once on an engine.
type Composer struct {
	eng      engine.Engine
	cfg      *config.Config
	composed bool
}

// NewComposer returns a composer for the given engine and configuration.
func NewComposer(eng engine.Engine, cfg *config.Config) *Composer {
	return &Composer{eng: eng, cfg: cfg}
}

// Compose builds the skybox, one sphere per body, the sun light, one ring per
// orbit, the camera, the controls and sizes the renderer to width x height.
// Bodies start at their t = 0 positions.
func (c *Composer) Compose(width, height int) (*State, error) {
	if c.composed {
		return nil, ErrAlreadyComposed
	}
	cfg := c.cfg

	sys, err := motion.NewSystem(cfg.Bodies, cfg.Motion.SpeedMultiplier, cfg.Motion.RotationStep)
	if err != nil {
		return nil, err
	}
	ringColor, err := parseColor(cfg.Scene.RingColor)
	if err != nil {
		return nil, fmt.Errorf("ring color: %w", err)
	}
	bodyColors := make([]color.RGBA, len(sys.Bodies))
	for i, b := range sys.Bodies {
		if bodyColors[i], err = parseColor(b.Color); err != nil {
			return nil, fmt.Errorf("body %s: %w", b.Name, err)
		}
	}

	st := &State{Motion: sys}
	st.Camera = c.eng.NewCamera(cfg.Camera.FOV, aspect(width, height), cfg.Camera.Near, cfg.Camera.Far)
	st.Skybox = c.addSkybox()

	for i, b := range sys.Bodies {
		mat := engine.Material{
			Texture: cfg.AssetPath(b.Texture),
			Color:   bodyColors[i],
			Unlit:   b.Unlit,
		}
		node := c.eng.AddSphere(b.Name, b.Radius, cfg.Scene.SphereSegments, mat)
		st.Bodies = append(st.Bodies, &Body{Body: b, Node: node})
	}

	sun := sys.Sun.Position
	st.Light = c.eng.AddPointLight("sun-light", sun, cfg.Scene.LightIntensity, cfg.Scene.LightDistance)

	ringMat := engine.Material{Color: ringColor, Unlit: true, Side: engine.DoubleSide}
	for _, b := range sys.Bodies {
		if b == sys.Sun {
			continue
		}
		outer := b.OrbitRadius
		inner := outer - cfg.Scene.RingWidth
		node := c.eng.AddRing(b.Name+"-orbit", inner, outer, cfg.Scene.RingSegments, ringMat)
		node.SetRotation(mgl64.Vec3{math.Pi / 2, 0, 0})
		node.SetPosition(sun)
		st.Rings = append(st.Rings, Ring{Body: b.Name, Inner: inner, Outer: outer, Node: node})
	}

	st.Renderer = c.eng.Renderer()
	st.Renderer.SetSize(width, height)

	st.Camera.SetPosition(mgl64.Vec3{0, 0, cfg.Camera.Distance})
	st.Camera.LookAt(sun)
	st.Controls = c.eng.NewControls(st.Camera, cfg.Camera.MinDistance, cfg.Camera.MaxDistance)

	st.Sync()
	c.composed = true
	return st, nil
}

func (c *Composer) addSkybox() engine.Node {
	faces := make([]engine.Material, len(c.cfg.Scene.SkyboxFaces))
	for i, f := range c.cfg.Scene.SkyboxFaces {
		faces[i] = engine.Material{
			Texture: c.cfg.AssetPath(f),
			Color:   color.RGBA{255, 255, 255, 255},
			Unlit:   true,
			Side:    engine.BackSide,
		}
	}
	size := c.cfg.Scene.SkyboxSize
	return c.eng.AddBox("skybox", size, size, size, faces)
}

func aspect(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}

// parseColor parses a hex color such as "#808080". An empty string is white.
func parseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{255, 255, 255, 255}, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}
