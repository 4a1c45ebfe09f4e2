// Package viewport keeps the camera and renderer matched to the size of the
// visible surface.
package viewport

import "solar-system-scene/scene"

// Resize sets the camera aspect to width/height and the renderer size to
// width x height. It reports whether anything changed: repeating the current
// renderer size is a no-op, and non-positive sizes (a minimized window) are
// ignored. The aspect always follows the size, so the size alone decides.
func Resize(st *scene.State, width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if w, h := st.Renderer.Size(); w == width && h == height {
		return false
	}
	st.Camera.SetAspect(float64(width) / float64(height))
	st.Camera.UpdateProjection()
	st.Renderer.SetSize(width, height)
	return true
}
