package cull

import (
	"testing"

	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/stream"
	gmath "github.com/Faultbox/terrastream/pkg/math"
)

type stubRenderable struct {
	visible bool
	toggles int
}

func (r *stubRenderable) SetVisible(v bool) {
	r.visible = v
	r.toggles++
}

func (r *stubRenderable) Release() {}

func register(reg *stream.Registry, c grid.RegionCoord) *stubRenderable {
	r := &stubRenderable{}
	reg.Register(c, &stream.ChunkRecord{Step: 1, State: stream.StateHidden, Renderable: r})
	return r
}

// testFrustum looks down negative Z from the origin.
func testFrustum() gmath.Frustum {
	proj := gmath.Perspective(1.2, 1, 0.5, 500)
	return gmath.FrustumFromMatrix(proj)
}

func sweepAll(cl *Culler, fr *gmath.Frustum, offset gmath.Vec3) {
	for cl.Sweep(fr, offset) {
	}
}

func TestSweepTogglesVisibility(t *testing.T) {
	reg := stream.NewRegistry()
	bounds := Bounds{RegionExtent: 16, MaxHeight: 8, SkirtDepth: 2, Padding: 1}
	cl := New(reg, bounds, 8)

	ahead := register(reg, grid.RegionCoord{X: 0, Z: -2})
	aside := register(reg, grid.RegionCoord{X: 40, Z: -2})
	behind := register(reg, grid.RegionCoord{X: 0, Z: 4})

	fr := testFrustum()
	sweepAll(cl, &fr, gmath.Vec3{})

	if !ahead.visible {
		t.Error("region in front of the camera not visible")
	}
	if aside.visible {
		t.Error("region far off axis marked visible")
	}
	if behind.visible {
		t.Error("region behind the camera marked visible")
	}
}

func TestSweepNotifiesOncePerTransition(t *testing.T) {
	reg := stream.NewRegistry()
	cl := New(reg, Bounds{RegionExtent: 16, MaxHeight: 8, SkirtDepth: 2, Padding: 1}, 8)

	ahead := register(reg, grid.RegionCoord{X: 0, Z: -2})

	fr := testFrustum()
	sweepAll(cl, &fr, gmath.Vec3{})
	sweepAll(cl, &fr, gmath.Vec3{})
	sweepAll(cl, &fr, gmath.Vec3{})

	if ahead.toggles != 1 {
		t.Errorf("renderable toggled %d times across repeated sweeps, want 1", ahead.toggles)
	}

	// Shifting the world out of view is an exit transition, seen once.
	sweepAll(cl, &fr, gmath.Vec3{X: 1000})
	sweepAll(cl, &fr, gmath.Vec3{X: 1000})
	if ahead.visible {
		t.Error("region still visible after moving out of the frustum")
	}
	if ahead.toggles != 2 {
		t.Errorf("renderable toggled %d times, want 2", ahead.toggles)
	}
}

func TestSweepIsTimeSliced(t *testing.T) {
	reg := stream.NewRegistry()
	cl := New(reg, Bounds{RegionExtent: 16, MaxHeight: 8, SkirtDepth: 2, Padding: 1}, 2)

	for i := -3; i <= 3; i++ {
		register(reg, grid.RegionCoord{X: i, Z: -2})
	}

	fr := testFrustum()
	steps := 0
	for cl.Sweep(&fr, gmath.Vec3{}) {
		steps++
	}
	// 7 regions at 2 per batch: three calls report remaining work.
	if steps != 3 {
		t.Errorf("sweep reported pending work %d times, want 3", steps)
	}
}
