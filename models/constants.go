package models

// SunName is the name of the body every orbit is centered on.
const SunName = "sun"

const (
	// OrbitSpeedMultiplier scales elapsed milliseconds into orbit angle.
	OrbitSpeedMultiplier = 0.001

	// RotationSpeed is the axial rotation added to every body each frame, in radians.
	RotationSpeed = 0.005

	// RingWidth is the difference between outer and inner radius of an orbit ring.
	RingWidth = 0.1

	RingSegments   = 64
	SphereSegments = 100

	// SkyboxSize is the edge length of the skybox cube.
	SkyboxSize = 1000
)

// Skybox faces in the order front, back, up, down, right, left.
var SkyboxFaces = []string{
	"img/skybox/space_ft.png",
	"img/skybox/space_bk.png",
	"img/skybox/space_up.png",
	"img/skybox/space_dn.png",
	"img/skybox/space_rt.png",
	"img/skybox/space_lf.png",
}

// BackgroundTrack is the looping audio track, relative to the assets directory.
const BackgroundTrack = "audio/background.mp3"
