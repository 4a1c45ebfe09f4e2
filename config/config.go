// Package config holds the scene constants and the optional file that
// overrides them.
package config

import (
	"errors"
	"fmt"

	"solar-system-scene/models"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full runtime configuration. The zero value is not usable;
// start from Default.
type Config struct {
	// Assets is the directory texture and audio paths are relative to.
	Assets string `yaml:"assets" toml:"assets"`

	Bodies []models.Body `yaml:"bodies" toml:"bodies"`
	Motion MotionConfig  `yaml:"motion" toml:"motion"`
	Scene  SceneConfig   `yaml:"scene" toml:"scene"`
	Camera CameraConfig  `yaml:"camera" toml:"camera"`
	Frame  FrameConfig   `yaml:"frame" toml:"frame"`
	Audio  AudioConfig   `yaml:"audio" toml:"audio"`
	Server ServerConfig  `yaml:"server" toml:"server"`
}

type MotionConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"`
	RotationStep    float64 `yaml:"rotation_step" toml:"rotation_step"`
}

type SceneConfig struct {
	SphereSegments int      `yaml:"sphere_segments" toml:"sphere_segments"`
	RingWidth      float64  `yaml:"ring_width" toml:"ring_width"`
	RingSegments   int      `yaml:"ring_segments" toml:"ring_segments"`
	RingColor      string   `yaml:"ring_color" toml:"ring_color"`
	SkyboxSize     float64  `yaml:"skybox_size" toml:"skybox_size"`
	SkyboxFaces    []string `yaml:"skybox_faces" toml:"skybox_faces"`

	// LightIntensity and LightDistance configure the sun's point light.
	// A distance of 0 means the light never fades out.
	LightIntensity float64 `yaml:"light_intensity" toml:"light_intensity"`
	LightDistance  float64 `yaml:"light_distance" toml:"light_distance"`
}

type CameraConfig struct {
	FOV         float64 `yaml:"fov" toml:"fov"` // degrees
	Near        float64 `yaml:"near" toml:"near"`
	Far         float64 `yaml:"far" toml:"far"`
	Distance    float64 `yaml:"distance" toml:"distance"` // initial distance on +z
	MinDistance float64 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance" toml:"max_distance"`
}

type FrameConfig struct {
	FPS float64 `yaml:"fps" toml:"fps"`
}

type AudioConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Track   string `yaml:"track" toml:"track"`
	Prompt  string `yaml:"prompt" toml:"prompt"`
}

type ServerConfig struct {
	Addr         string   `yaml:"addr" toml:"addr"`
	AllowOrigins []string `yaml:"allow_origins" toml:"allow_origins"`

	// RequestsPerSecond and Burst limit API requests per client address.
	RequestsPerSecond float64 `yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int     `yaml:"burst" toml:"burst"`

	// StreamFPS caps how many snapshots per second a stream client receives.
	StreamFPS float64 `yaml:"stream_fps" toml:"stream_fps"`
}

// Default returns the built-in scene.
func Default() *Config {
	return &Config{
		Assets: ".",
		Bodies: models.GetSolarSystemBodies(),
		Motion: MotionConfig{
			SpeedMultiplier: models.OrbitSpeedMultiplier,
			RotationStep:    models.RotationSpeed,
		},
		Scene: SceneConfig{
			SphereSegments: models.SphereSegments,
			RingWidth:      models.RingWidth,
			RingSegments:   models.RingSegments,
			RingColor:      "#808080",
			SkyboxSize:     models.SkyboxSize,
			SkyboxFaces:    append([]string(nil), models.SkyboxFaces...),
			LightIntensity: 1,
			LightDistance:  0,
		},
		Camera: CameraConfig{
			FOV:         85,
			Near:        0.1,
			Far:         1000,
			Distance:    100,
			MinDistance: 12,
			MaxDistance: 1000,
		},
		Frame: FrameConfig{FPS: 60},
		Audio: AudioConfig{
			Enabled: true,
			Track:   models.BackgroundTrack,
			Prompt:  "Click anywhere to start the music!",
		},
		Server: ServerConfig{
			Addr:              ":8080",
			AllowOrigins:      []string{"http://localhost:4200"},
			RequestsPerSecond: 20,
			Burst:             40,
			StreamFPS:         10,
		},
	}
}

// Validate checks the invariants the scene relies on.
func (c *Config) Validate() error {
	sun := 0
	names := make(map[string]bool, len(c.Bodies))
	for _, b := range c.Bodies {
		switch {
		case b.Name == "":
			return fmt.Errorf("%w: body without a name", ErrInvalidConfig)
		case names[b.Name]:
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidConfig, b.Name)
		case b.Radius <= 0:
			return fmt.Errorf("%w: body %q: radius must be positive", ErrInvalidConfig, b.Name)
		case b.OrbitRadius < 0 || b.RevolutionSpeed < 0:
			return fmt.Errorf("%w: body %q: orbit radius and speed must not be negative", ErrInvalidConfig, b.Name)
		}
		names[b.Name] = true
		if b.IsSun() {
			sun++
			if b.OrbitRadius != 0 || b.RevolutionSpeed != 0 {
				return fmt.Errorf("%w: the sun does not revolve", ErrInvalidConfig)
			}
		} else if b.OrbitRadius <= c.Scene.RingWidth {
			return fmt.Errorf("%w: body %q: orbit radius must exceed ring width %g", ErrInvalidConfig, b.Name, c.Scene.RingWidth)
		}
	}
	if sun != 1 {
		return fmt.Errorf("%w: expected exactly one %q, found %d", ErrInvalidConfig, models.SunName, sun)
	}
	if c.Motion.SpeedMultiplier <= 0 || c.Motion.RotationStep <= 0 {
		return fmt.Errorf("%w: motion speed multiplier and rotation step must be positive", ErrInvalidConfig)
	}
	if c.Scene.RingWidth <= 0 {
		return fmt.Errorf("%w: ring width must be positive", ErrInvalidConfig)
	}
	if c.Scene.SkyboxSize <= 0 {
		return fmt.Errorf("%w: skybox size must be positive", ErrInvalidConfig)
	}
	if len(c.Scene.SkyboxFaces) != 6 {
		return fmt.Errorf("%w: skybox needs 6 faces, got %d", ErrInvalidConfig, len(c.Scene.SkyboxFaces))
	}
	if c.Scene.SphereSegments < 3 || c.Scene.RingSegments < 3 {
		return fmt.Errorf("%w: sphere and ring need at least 3 segments", ErrInvalidConfig)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes near=%g far=%g", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		return fmt.Errorf("%w: camera distance bounds [%g, %g]", ErrInvalidConfig, c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Frame.FPS <= 0 {
		return fmt.Errorf("%w: frame fps must be positive", ErrInvalidConfig)
	}
	if c.Server.StreamFPS <= 0 {
		return fmt.Errorf("%w: stream fps must be positive", ErrInvalidConfig)
	}
	if c.Server.RequestsPerSecond <= 0 || c.Server.Burst <= 0 {
		return fmt.Errorf("%w: request rate and burst must be positive", ErrInvalidConfig)
	}
	return nil
}
