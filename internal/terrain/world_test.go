package terrain

import (
	"os"
	"testing"

	"github.com/Faultbox/terrastream/internal/logger"
	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/mesh"
	"github.com/Faultbox/terrastream/internal/terrain/stream"
	gmath "github.com/Faultbox/terrastream/pkg/math"
)

func TestMain(m *testing.M) {
	if err := logger.InitWithFileConfig("error", logger.FileConfig{}, false); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

type recordingRenderable struct {
	visible  bool
	released bool
}

func (r *recordingRenderable) SetVisible(v bool) { r.visible = v }
func (r *recordingRenderable) Release()          { r.released = true }

type recordingHost struct {
	spawned map[grid.RegionCoord]*recordingRenderable
}

func newRecordingHost() *recordingHost {
	return &recordingHost{spawned: make(map[grid.RegionCoord]*recordingRenderable)}
}

func (h *recordingHost) Spawn(c grid.RegionCoord, g *mesh.Geometry) stream.Renderable {
	r := &recordingRenderable{}
	h.spawned[c] = r
	return r
}

func testConfig() Config {
	cfg := DefaultTerrainConfig()
	cfg.RegionSize = 8
	cfg.ViewRadius = 1
	cfg.LODNear = 1
	cfg.LODFar = 1
	cfg.CullBatch = 4
	return cfg
}

func drainWorld(t *testing.T, w *World) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if !w.Step() {
			return
		}
	}
	t.Fatal("world did not go idle")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.RegionSize = 10 },
		func(c *Config) { c.TileSize = 0 },
		func(c *Config) { c.Noise.Octaves = 0 },
		func(c *Config) { c.LODFar = c.LODNear - 1 },
		func(c *Config) { c.ViewRadius = 0 },
	}
	for i, mutate := range bad {
		cfg := testConfig()
		mutate(&cfg)
		if _, err := New(cfg, newRecordingHost()); err == nil {
			t.Errorf("case %d: invalid config accepted", i)
		}
	}
}

func TestStreamingLifecycle(t *testing.T) {
	host := newRecordingHost()
	w, err := New(testConfig(), host)
	if err != nil {
		t.Fatal(err)
	}

	drainWorld(t, w)

	if w.Resident() != 9 {
		t.Fatalf("resident regions = %d, want 9", w.Resident())
	}

	origin := grid.RegionCoord{}
	if !w.HasActiveChunk(origin) || !w.HasTileData(origin) || !w.IsSanitized(origin) {
		t.Fatal("origin region not fully streamed in")
	}

	h := w.ElevationAt(3, 4)
	maxStep := testConfig().MaxStep
	if h < 0 || h > maxStep {
		t.Fatalf("elevation %d outside [0, %d]", h, maxStep)
	}

	w.Purge(origin)
	if w.HasActiveChunk(origin) {
		t.Error("purged region still has an active chunk")
	}
	if w.HasTileData(origin) {
		t.Error("purged region still has tile data")
	}
	if w.IsSanitized(origin) {
		t.Error("purged region still marked sanitized")
	}
	if !host.spawned[origin].released {
		t.Error("purged region's renderable not released")
	}
	if w.ElevationAt(3, 4) != 0 {
		t.Error("expected provisional zero elevation for purged region")
	}

	w.RequestRebuild(origin)
	drainWorld(t, w)
	if !w.HasActiveChunk(origin) {
		t.Error("rebuild request did not restore the region")
	}
}

func TestNotifyVisibilityChanged(t *testing.T) {
	host := newRecordingHost()
	w, err := New(testConfig(), host)
	if err != nil {
		t.Fatal(err)
	}
	drainWorld(t, w)

	origin := grid.RegionCoord{}
	w.NotifyVisibilityChanged(origin, true)
	if !host.spawned[origin].visible {
		t.Error("renderable not shown after visibility notification")
	}
	w.NotifyVisibilityChanged(origin, false)
	if host.spawned[origin].visible {
		t.Error("renderable still shown after hide notification")
	}
}

func TestSweepThroughFacade(t *testing.T) {
	host := newRecordingHost()
	w, err := New(testConfig(), host)
	if err != nil {
		t.Fatal(err)
	}
	drainWorld(t, w)

	// A frustum looking straight down from above the streamed block sees
	// the regions around the viewpoint.
	extent := float32(8) * testConfig().TileSize
	eye := gmath.Vec3{X: extent / 2, Y: 200, Z: extent / 2}
	view := gmath.LookAt(eye, gmath.Vec3{X: extent / 2, Y: 0, Z: extent / 2}, gmath.Vec3{Z: -1})
	proj := gmath.Perspective(1.2, 1, 0.5, 1000)
	fr := gmath.FrustumFromMatrix(proj.Mul(view))

	for w.Sweep(&fr) {
	}

	if !host.spawned[grid.RegionCoord{}].visible {
		t.Error("region under the camera not visible after sweep")
	}
}

func TestOriginShiftThroughFacade(t *testing.T) {
	w, err := New(testConfig(), newRecordingHost())
	if err != nil {
		t.Fatal(err)
	}

	if _, shifted := w.CheckOriginShift(gmath.Vec3{X: 10}); shifted {
		t.Error("origin shift triggered near the origin")
	}

	pos := gmath.Vec3{X: 600, Z: 800}
	delta, shifted := w.CheckOriginShift(pos)
	if !shifted {
		t.Fatal("origin shift not triggered past the threshold")
	}
	if delta != pos {
		t.Errorf("shift delta = %v, want %v", delta, pos)
	}
	if w.OriginOffset() != pos {
		t.Errorf("accumulated offset = %v, want %v", w.OriginOffset(), pos)
	}
}
