package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads the file at path on top of Default. The format is chosen by
// extension: .yaml, .yml or .toml. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
		return nil, fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Lists in the file replace the defaults instead of extending them.
	bodies, faces, origins := cfg.Bodies, cfg.Scene.SkyboxFaces, cfg.Server.AllowOrigins
	cfg.Bodies, cfg.Scene.SkyboxFaces, cfg.Server.AllowOrigins = nil, nil, nil

	if ext == ".toml" {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Bodies == nil {
		cfg.Bodies = bodies
	}
	if cfg.Scene.SkyboxFaces == nil {
		cfg.Scene.SkyboxFaces = faces
	}
	if cfg.Server.AllowOrigins == nil {
		cfg.Server.AllowOrigins = origins
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// AssetPath resolves a path relative to the assets directory.
func (c *Config) AssetPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Assets, rel)
}
