package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Body represents a celestial body in the scene
type Body struct {
	Name            string  `json:"name" yaml:"name" toml:"name"`
	Radius          float64 `json:"radius" yaml:"radius" toml:"radius"`                               // render units
	OrbitRadius     float64 `json:"orbit_radius" yaml:"orbit_radius" toml:"orbit_radius"`             // render units, 0 for the sun
	RevolutionSpeed float64 `json:"revolution_speed" yaml:"revolution_speed" toml:"revolution_speed"` // multiplied by OrbitSpeedMultiplier
	Texture         string  `json:"texture" yaml:"texture" toml:"texture"`                            // relative to the assets directory
	Color           string  `json:"color" yaml:"color" toml:"color"`                                  // hex color
	Unlit           bool    `json:"unlit" yaml:"unlit" toml:"unlit"`                                  // self-illuminated, ignores scene lights
	Description     string  `json:"description" yaml:"description" toml:"description"`
}

// DisplayName returns the title-cased name, e.g. "Mercury".
func (b Body) DisplayName() string {
	return cases.Title(language.English).String(b.Name)
}

// IsSun reports whether b is the orbital center of the scene.
func (b Body) IsSun() bool {
	return b.Name == SunName
}

// Revolves reports whether b moves along an orbit.
func (b Body) Revolves() bool {
	return b.RevolutionSpeed > 0 && b.OrbitRadius > 0
}

// FindBody returns the body with the given name, ignoring case.
func FindBody(bodies []Body, name string) (Body, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, b := range bodies {
		if strings.ToLower(b.Name) == name {
			return b, true
		}
	}
	return Body{}, false
}

// GetSolarSystemBodies returns the sun and the eight planets with the
// stylized scene constants. The values are tuned for the look of the scene,
// not for astronomical accuracy.
func GetSolarSystemBodies() []Body {
	return []Body{
		{
			Name:        "sun",
			Radius:      20,
			Texture:     "img/sun_hd.jpg",
			Color:       "#FDB813",
			Unlit:       true,
			Description: "The star at the center of the scene and its only light source.",
		},
		{
			Name:            "mercury",
			Radius:          2,
			OrbitRadius:     50,
			RevolutionSpeed: 2,
			Texture:         "img/mercury_hd.jpg",
			Color:           "#B5B5B5",
			Description:     "Smallest planet and the fastest around the sun.",
		},
		{
			Name:            "venus",
			Radius:          3,
			OrbitRadius:     60,
			RevolutionSpeed: 1.5,
			Texture:         "img/venus_hd.jpg",
			Color:           "#E8CDA2",
			Description:     "Hottest planet, wrapped in thick clouds.",
		},
		{
			Name:            "earth",
			Radius:          4,
			OrbitRadius:     70,
			RevolutionSpeed: 1,
			Texture:         "img/earth_hd.jpg",
			Color:           "#2E86AB",
			Description:     "Home. Its revolution speed is the unit for the others.",
		},
		{
			Name:            "mars",
			Radius:          3.5,
			OrbitRadius:     80,
			RevolutionSpeed: 0.8,
			Texture:         "img/mars_hd.jpg",
			Color:           "#C1440E",
			Description:     "The red planet.",
		},
		{
			Name:            "jupiter",
			Radius:          10,
			OrbitRadius:     100,
			RevolutionSpeed: 0.7,
			Texture:         "img/jupiter_hd.jpg",
			Color:           "#C88B3A",
			Description:     "Largest planet, a gas giant with a long-lived storm.",
		},
		{
			Name:            "saturn",
			Radius:          8,
			OrbitRadius:     120,
			RevolutionSpeed: 0.6,
			Texture:         "img/saturn_hd.jpg",
			Color:           "#E4D191",
			Description:     "Gas giant known for its ring system.",
		},
		{
			Name:            "uranus",
			Radius:          6,
			OrbitRadius:     140,
			RevolutionSpeed: 0.5,
			Texture:         "img/uranus_hd.jpg",
			Color:           "#7DE8E8",
			Description:     "Ice giant that rotates on its side.",
		},
		{
			Name:            "neptune",
			Radius:          5,
			OrbitRadius:     160,
			RevolutionSpeed: 0.4,
			Texture:         "img/neptune_hd.jpg",
			Color:           "#3F54BA",
			Description:     "Outermost planet, with the strongest winds.",
		},
	}
}
