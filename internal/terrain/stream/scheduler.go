package stream

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terrastream/internal/logger"
	"github.com/Faultbox/terrastream/internal/terrain/elevation"
	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/mesh"
	"github.com/Faultbox/terrastream/internal/terrain/stitch"
)

// Host turns built geometry into something the renderer owns. Spawned
// renderables start hidden; the visibility sweep toggles them. Spawning
// at a coordinate that already has a live renderable replaces it for a
// LOD rebuild, and the replacement must inherit the old one's visual
// state so a region that stayed on screen does not re-enter visibility.
type Host interface {
	Spawn(c grid.RegionCoord, g *mesh.Geometry) Renderable
}

// Params configures the scheduler's streaming radii. Distances are in
// regions, Chebyshev metric. Regions within LODNear of the viewpoint
// build at full resolution, within LODFar at half, beyond that at
// quarter.
type Params struct {
	ViewRadius int
	LODNear    int
	LODFar     int
}

// Scheduler drives the streaming pipeline. Each Step call performs one
// bounded unit of work: one row of the desired-region sweep, one queued
// build, or one purge scan. It is single-threaded by design; an external
// tick driver calls Step until it reports idle or the frame budget runs
// out.
type Scheduler struct {
	params   Params
	store    *elevation.Store
	stitcher *stitch.Stitcher
	builder  *mesh.Builder
	registry *Registry
	host     Host

	queue     *buildQueue
	sanitized map[grid.RegionCoord]struct{}
	center    grid.RegionCoord
	sweepRow  int
}

// NewScheduler wires the pipeline together. The desired-region sweep
// starts immediately around the zero region; call SetViewpoint before
// the first Step to aim it elsewhere.
func NewScheduler(p Params, store *elevation.Store, st *stitch.Stitcher, b *mesh.Builder, reg *Registry, host Host) *Scheduler {
	return &Scheduler{
		params:    p,
		store:     store,
		stitcher:  st,
		builder:   b,
		registry:  reg,
		host:      host,
		queue:     newBuildQueue(),
		sanitized: make(map[grid.RegionCoord]struct{}),
		sweepRow:  -p.ViewRadius,
	}
}

// SetViewpoint re-centers streaming on a new viewpoint region. A region
// change restarts the desired-region sweep and reorders the pending
// queue; staying within the same region is a no-op.
func (s *Scheduler) SetViewpoint(center grid.RegionCoord) {
	if center == s.center {
		return
	}
	s.center = center
	s.sweepRow = -s.params.ViewRadius
	s.queue.Retarget(center)
	logger.Debug("viewpoint region changed",
		zap.Int("x", center.X),
		zap.Int("z", center.Z))
}

// Step advances the pipeline by one unit of work and reports whether
// more work is pending. Idle means the desired set is resident, the
// queue is drained and nothing needed purging.
func (s *Scheduler) Step() bool {
	if s.sweepRow <= s.params.ViewRadius {
		s.sweepOneRow()
		return true
	}

	if c, ok := s.queue.Pop(); ok {
		// Stale check at dequeue time is the cancellation mechanism:
		// regions the viewpoint left behind are dropped unbuilt.
		if s.center.Chebyshev(c) > s.params.ViewRadius+1 {
			return true
		}
		s.build(c)
		return true
	}

	return s.purge()
}

// sweepOneRow scans one row of the desired-region block, queueing
// regions with no live renderable and regions whose resident LOD no
// longer matches their distance tier.
func (s *Scheduler) sweepOneRow() {
	r := s.params.ViewRadius
	for dx := -r; dx <= r; dx++ {
		c := s.center.Offset(dx, s.sweepRow)
		if s.queue.Contains(c) {
			continue
		}
		rec, resident := s.registry.Record(c)
		if !resident || rec.Step != s.lodStep(c) {
			s.queue.Push(c)
		}
	}
	s.sweepRow++
}

// lodStep selects the resolution stride for a region by its Chebyshev
// distance from the viewpoint region.
func (s *Scheduler) lodStep(c grid.RegionCoord) int {
	switch d := s.center.Chebyshev(c); {
	case d <= s.params.LODNear:
		return 1
	case d <= s.params.LODFar:
		return 2
	default:
		return 4
	}
}

// build runs the full pipeline for one region: raw generation and
// stitching across its 3x3 neighborhood, then a mesh build at the
// distance-selected resolution.
func (s *Scheduler) build(c grid.RegionCoord) {
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			s.store.Generate(c.Offset(dx, dz))
		}
	}
	for dz := -1; dz <= 1; dz++ {
		for dx := -1; dx <= 1; dx++ {
			n := c.Offset(dx, dz)
			if _, ok := s.sanitized[n]; ok {
				continue
			}
			s.stitcher.Sanitize(n)
			s.sanitized[n] = struct{}{}
		}
	}

	rec, resident := s.registry.Record(c)
	if !resident {
		// Zero record: StateUnbuilt until the first build lands.
		s.registry.Register(c, &ChunkRecord{})
	}
	wasVisible := resident && rec.State == StateVisible
	s.registry.Update(c, func(r *ChunkRecord) { r.State = StateBuilding })

	step := s.lodStep(c)
	hood := s.store.Neighborhood(c)
	g := s.builder.Build(step, hood, rec.Geometry)
	rend := s.host.Spawn(c, g)
	if wasVisible {
		// Keep the region on screen across a LOD rebuild. This is not a
		// visibility entry: the host inherited the old renderable's
		// state, so no fade-in replays.
		rend.SetVisible(true)
	}
	s.registry.Update(c, func(r *ChunkRecord) {
		old := r.Renderable
		r.Step = step
		r.Geometry = g
		r.Renderable = rend
		r.State = StateHidden
		if wasVisible {
			r.State = StateVisible
		}
		if old != nil {
			old.Release()
		}
	})
}

// purge releases every generated region beyond the retention radius,
// discarding its elevation grid and stitch mark so a later revisit
// regenerates from scratch. The scan walks the store, not the registry:
// halo grids generated for neighborhood stitching never own a renderable
// but still hold memory. Reports whether anything was released.
func (s *Scheduler) purge() bool {
	purged := 0
	for _, c := range s.store.Coords() {
		if s.center.Chebyshev(c) <= s.params.ViewRadius+2 {
			continue
		}
		s.Purge(c)
		purged++
	}
	return purged > 0
}

// Purge atomically drops one region: renderable, elevation grid and
// sanitization mark all go together.
func (s *Scheduler) Purge(c grid.RegionCoord) {
	if rend := s.registry.Unregister(c); rend != nil {
		rend.Release()
	}
	s.store.Remove(c)
	delete(s.sanitized, c)
	logger.Debug("region purged", zap.Int("x", c.X), zap.Int("z", c.Z))
}

// RequestRebuild queues a resident region for a fresh build, for hosts
// that invalidated its geometry externally.
func (s *Scheduler) RequestRebuild(c grid.RegionCoord) {
	s.queue.Push(c)
}

// Sanitized reports whether the region has been stitched since it was
// last generated.
func (s *Scheduler) Sanitized(c grid.RegionCoord) bool {
	_, ok := s.sanitized[c]
	return ok
}

// Pending returns the number of queued builds.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}
