// Package cull runs the frustum visibility sweep over resident terrain
// regions.
package cull

import (
	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/stream"
	gmath "github.com/Faultbox/terrastream/pkg/math"
)

// Bounds fixes the vertical extent and padding of region bounding boxes.
type Bounds struct {
	RegionExtent float32 // world units per region edge
	MaxHeight    float32 // maxStep times step height
	SkirtDepth   float32
	Padding      float32
}

// Culler tests resident regions against the view frustum and toggles
// their visibility through the registry. The sweep is time-sliced: each
// call processes a bounded batch from a snapshot of the registry, so
// registration changes mid-sweep are picked up on the next snapshot
// rather than racing the iteration.
type Culler struct {
	registry *stream.Registry
	bounds   Bounds
	batch    int
	pending  []grid.RegionCoord
}

// New creates a culler processing batch regions per Sweep call.
func New(registry *stream.Registry, bounds Bounds, batch int) *Culler {
	if batch < 1 {
		batch = 1
	}
	return &Culler{registry: registry, bounds: bounds, batch: batch}
}

// Sweep advances the visibility sweep by one batch and reports whether
// the current snapshot still has regions left. A fresh snapshot is taken
// when the previous one is exhausted. Region bounds are shifted by
// offset so they land in the same render space the frustum was extracted
// from. Visibility transitions reach the renderable exactly once per
// entry or exit.
func (cl *Culler) Sweep(fr *gmath.Frustum, offset gmath.Vec3) bool {
	if len(cl.pending) == 0 {
		cl.pending = cl.registry.Coords()
	}

	n := cl.batch
	if n > len(cl.pending) {
		n = len(cl.pending)
	}
	for _, c := range cl.pending[:n] {
		min, max := cl.regionBounds(c, offset)
		cl.registry.SetVisible(c, fr.IntersectsAABB(min, max))
	}
	cl.pending = cl.pending[n:]
	return len(cl.pending) > 0
}

// regionBounds computes the render-space AABB for a region: its world
// footprint, the full elevation range plus skirt below, padded on all
// sides.
func (cl *Culler) regionBounds(c grid.RegionCoord, offset gmath.Vec3) (gmath.Vec3, gmath.Vec3) {
	b := cl.bounds
	x0 := float32(c.X)*b.RegionExtent - offset.X
	z0 := float32(c.Z)*b.RegionExtent - offset.Z

	min := gmath.Vec3{
		X: x0 - b.Padding,
		Y: -b.SkirtDepth - b.Padding - offset.Y,
		Z: z0 - b.Padding,
	}
	max := gmath.Vec3{
		X: x0 + b.RegionExtent + b.Padding,
		Y: b.MaxHeight + b.Padding - offset.Y,
		Z: z0 + b.RegionExtent + b.Padding,
	}
	return min, max
}
