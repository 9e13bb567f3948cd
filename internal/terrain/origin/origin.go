// Package origin implements floating-origin re-centering: once the
// viewpoint drifts far enough from the coordinate origin, the whole
// scene is translated back so render-space coordinates stay small and
// float precision stays uniform.
package origin

import (
	gmath "github.com/Faultbox/terrastream/pkg/math"
)

// Shifter tracks the accumulated offset between world space and render
// space. World = render + Offset().
type Shifter struct {
	threshold float32
	offset    gmath.Vec3
}

// New creates a shifter that re-centers once the render-space viewpoint
// magnitude reaches threshold.
func New(threshold float32) *Shifter {
	return &Shifter{threshold: threshold}
}

// Check inspects the render-space viewpoint position. When its magnitude
// exceeds the threshold it returns the translation the host must
// subtract from every scene object within the current tick, and records
// it in the accumulated offset. Returns false when no shift is due.
//
// The host must apply the returned delta to everything it renders in the
// same tick; a partial shift shows up as visible jitter between objects.
func (s *Shifter) Check(viewpoint gmath.Vec3) (gmath.Vec3, bool) {
	if viewpoint.Length() < s.threshold {
		return gmath.Vec3{}, false
	}
	s.offset = s.offset.Add(viewpoint)
	return viewpoint, true
}

// Offset returns the accumulated world-space offset of the render
// origin.
func (s *Shifter) Offset() gmath.Vec3 {
	return s.offset
}

// ToWorld converts a render-space position to world space.
func (s *Shifter) ToWorld(p gmath.Vec3) gmath.Vec3 {
	return p.Add(s.offset)
}

// ToRender converts a world-space position to render space.
func (s *Shifter) ToRender(p gmath.Vec3) gmath.Vec3 {
	return p.Sub(s.offset)
}
