package terrain

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/terrastream/internal/terrain/cull"
	"github.com/Faultbox/terrastream/internal/terrain/elevation"
	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/mesh"
	"github.com/Faultbox/terrastream/internal/terrain/origin"
	"github.com/Faultbox/terrastream/internal/terrain/stitch"
	"github.com/Faultbox/terrastream/internal/terrain/stream"
	gmath "github.com/Faultbox/terrastream/pkg/math"
)

// World is the facade the hosting application drives. All methods are
// meant to be called from the one tick goroutine; the pipeline is
// cooperative, not parallel.
//
// Positions crossing this API are in render space (post origin shift);
// the world converts to global cell coordinates internally.
type World struct {
	cfg      Config
	store    *elevation.Store
	registry *stream.Registry
	sched    *stream.Scheduler
	culler   *cull.Culler
	shifter  *origin.Shifter
}

// New validates the configuration and assembles the pipeline. Spawned
// renderables are handed to host.
func New(cfg Config, host stream.Host) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	field := elevation.NewField(elevation.FieldParams{
		Seed:        cfg.Noise.Seed,
		Frequency:   cfg.Noise.Frequency,
		Octaves:     cfg.Noise.Octaves,
		Persistence: cfg.Noise.Persistence,
		Lacunarity:  cfg.Noise.Lacunarity,
	})
	store := elevation.NewStore(cfg.RegionSize, cfg.MaxStep, field)
	stitcher := stitch.New(store)
	builder := mesh.NewBuilder(mesh.Params{
		RegionSize: cfg.RegionSize,
		TileSize:   cfg.TileSize,
		StepHeight: cfg.StepHeight,
		SkirtDepth: cfg.SkirtDepth,
	}, mesh.NewTopologyCache())
	registry := stream.NewRegistry()
	sched := stream.NewScheduler(stream.Params{
		ViewRadius: cfg.ViewRadius,
		LODNear:    cfg.LODNear,
		LODFar:     cfg.LODFar,
	}, store, stitcher, builder, registry, host)

	extent := float32(cfg.RegionSize) * cfg.TileSize
	culler := cull.New(registry, cull.Bounds{
		RegionExtent: extent,
		MaxHeight:    float32(cfg.MaxStep) * cfg.StepHeight,
		SkirtDepth:   cfg.SkirtDepth,
		Padding:      cfg.CullPadding,
	}, cfg.CullBatch)

	return &World{
		cfg:      cfg,
		store:    store,
		registry: registry,
		sched:    sched,
		culler:   culler,
		shifter:  origin.New(cfg.OriginThreshold),
	}, nil
}

// ElevationAt returns the elevation step at a global cell coordinate, or
// a provisional 0 if that region has not streamed in yet. Callers must
// tolerate the zero; it self-corrects once the scheduler catches up.
func (w *World) ElevationAt(gx, gz int) int {
	return w.store.ElevationAt(gx, gz)
}

// SurfaceHeight returns the terrain surface height, in render space,
// under a render-space position.
func (w *World) SurfaceHeight(pos gmath.Vec3) float32 {
	p := w.shifter.ToWorld(pos)
	gx := int(math32.Floor(p.X / w.cfg.TileSize))
	gz := int(math32.Floor(p.Z / w.cfg.TileSize))
	h := float32(w.store.ElevationAt(gx, gz)) * w.cfg.StepHeight
	return h - w.shifter.Offset().Y
}

// SetViewpoint re-aims streaming at a render-space viewpoint position.
func (w *World) SetViewpoint(pos gmath.Vec3) {
	p := w.shifter.ToWorld(pos)
	extent := float32(w.cfg.RegionSize) * w.cfg.TileSize
	c := grid.RegionCoord{
		X: int(math32.Floor(p.X / extent)),
		Z: int(math32.Floor(p.Z / extent)),
	}
	w.sched.SetViewpoint(c)
}

// Step advances the streaming pipeline by one bounded unit of work and
// reports whether more is pending. Call repeatedly per tick up to a
// frame budget.
func (w *World) Step() bool {
	return w.sched.Step()
}

// Sweep advances the visibility sweep against the current view frustum,
// reporting whether the sweep snapshot still has regions left.
func (w *World) Sweep(fr *gmath.Frustum) bool {
	return w.culler.Sweep(fr, w.shifter.Offset())
}

// CheckOriginShift inspects the render-space viewpoint and returns the
// translation to subtract from every scene object this tick, if a
// floating-origin shift is due.
func (w *World) CheckOriginShift(viewpoint gmath.Vec3) (gmath.Vec3, bool) {
	return w.shifter.Check(viewpoint)
}

// OriginOffset returns the accumulated world offset of the render
// origin.
func (w *World) OriginOffset() gmath.Vec3 {
	return w.shifter.Offset()
}

// RequestRebuild queues a region for a fresh mesh build.
func (w *World) RequestRebuild(c grid.RegionCoord) {
	w.sched.RequestRebuild(c)
}

// NotifyVisibilityChanged lets the host force a region's visibility
// state, bypassing the frustum sweep.
func (w *World) NotifyVisibilityChanged(c grid.RegionCoord, visible bool) {
	w.registry.SetVisible(c, visible)
}

// HasActiveChunk reports whether a region currently owns a renderable.
func (w *World) HasActiveChunk(c grid.RegionCoord) bool {
	return w.registry.Has(c)
}

// HasTileData reports whether a region's elevation grid is resident.
func (w *World) HasTileData(c grid.RegionCoord) bool {
	return w.store.Has(c)
}

// IsSanitized reports whether a region has been stitched since
// generation.
func (w *World) IsSanitized(c grid.RegionCoord) bool {
	return w.sched.Sanitized(c)
}

// Purge drops one region's renderable, elevation data and stitch mark.
func (w *World) Purge(c grid.RegionCoord) {
	w.sched.Purge(c)
}

// Resident returns the number of regions with live renderables.
func (w *World) Resident() int {
	return w.registry.Len()
}
