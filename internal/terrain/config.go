// Package terrain assembles the streaming heightfield pipeline behind a
// single facade: elevation storage, boundary stitching, LOD mesh
// building, streaming scheduling, visibility culling and floating-origin
// re-centering.
package terrain

import "fmt"

// NoiseConfig parameterizes the deterministic elevation field.
type NoiseConfig struct {
	Seed        int64   `yaml:"seed"`
	Frequency   float64 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// Config holds all terrain settings. Read once at startup; the pipeline
// does not support reconfiguration while running.
type Config struct {
	RegionSize int     `yaml:"region_size"` // cells per region edge
	TileSize   float32 `yaml:"tile_size"`   // world units per cell
	StepHeight float32 `yaml:"step_height"` // world units per elevation step
	MaxStep    int     `yaml:"max_step"`    // highest elevation step

	Noise NoiseConfig `yaml:"noise"`

	ViewRadius int `yaml:"view_radius"` // streamed block half-width, in regions
	LODNear    int `yaml:"lod_near"`    // full resolution within this region distance
	LODFar     int `yaml:"lod_far"`     // half resolution within this region distance

	SkirtDepth      float32 `yaml:"skirt_depth"`
	OriginThreshold float32 `yaml:"origin_threshold"`
	CullBatch       int     `yaml:"cull_batch"`
	CullPadding     float32 `yaml:"cull_padding"`
}

// DefaultTerrainConfig returns terrain settings tuned for the stock
// viewer.
func DefaultTerrainConfig() Config {
	return Config{
		RegionSize: 16,
		TileSize:   2,
		StepHeight: 1,
		MaxStep:    7,
		Noise: NoiseConfig{
			Seed:        1337,
			Frequency:   0.012,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2.0,
		},
		ViewRadius:      5,
		LODNear:         2,
		LODFar:          3,
		SkirtDepth:      2,
		OriginThreshold: 512,
		CullBatch:       16,
		CullPadding:     1,
	}
}

// Validate checks the configuration invariants. Violations are
// programmer or config-file errors surfaced at startup, never recovered
// at runtime.
func (c Config) Validate() error {
	if c.RegionSize <= 0 {
		return fmt.Errorf("region_size must be positive, got %d", c.RegionSize)
	}
	// All three LOD strides (1, 2, 4) must evenly divide the region.
	if c.RegionSize%4 != 0 {
		return fmt.Errorf("region_size must be a multiple of 4, got %d", c.RegionSize)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("tile_size must be positive, got %v", c.TileSize)
	}
	if c.StepHeight <= 0 {
		return fmt.Errorf("step_height must be positive, got %v", c.StepHeight)
	}
	if c.MaxStep < 1 || c.MaxStep > 255 {
		return fmt.Errorf("max_step must be in [1, 255], got %d", c.MaxStep)
	}
	if c.Noise.Frequency <= 0 {
		return fmt.Errorf("noise frequency must be positive, got %v", c.Noise.Frequency)
	}
	if c.Noise.Octaves < 1 {
		return fmt.Errorf("noise octaves must be at least 1, got %d", c.Noise.Octaves)
	}
	if c.Noise.Persistence <= 0 || c.Noise.Lacunarity <= 0 {
		return fmt.Errorf("noise persistence and lacunarity must be positive, got %v and %v",
			c.Noise.Persistence, c.Noise.Lacunarity)
	}
	if c.ViewRadius < 1 {
		return fmt.Errorf("view_radius must be at least 1, got %d", c.ViewRadius)
	}
	if c.LODNear < 0 || c.LODFar < c.LODNear {
		return fmt.Errorf("lod thresholds must satisfy 0 <= lod_near <= lod_far, got %d and %d",
			c.LODNear, c.LODFar)
	}
	if c.SkirtDepth < 0 {
		return fmt.Errorf("skirt_depth must not be negative, got %v", c.SkirtDepth)
	}
	if c.OriginThreshold <= 0 {
		return fmt.Errorf("origin_threshold must be positive, got %v", c.OriginThreshold)
	}
	if c.CullBatch < 1 {
		return fmt.Errorf("cull_batch must be at least 1, got %d", c.CullBatch)
	}
	return nil
}
