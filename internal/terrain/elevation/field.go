package elevation

import (
	"github.com/aquilax/go-perlin"
)

// Sampler produces a normalized noise value in [0, 1) for a global cell.
type Sampler interface {
	At(gx, gz int) float64
}

// Field is a deterministic 2D value-noise field backed by perlin noise.
// The same seed and parameters always produce the same elevations, so a
// purged region regenerates identically.
type Field struct {
	noise     *perlin.Perlin
	frequency float64
}

// FieldParams configures a noise field.
type FieldParams struct {
	Seed        int64
	Frequency   float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// NewField creates a noise field. Parameters are validated by the terrain
// config before construction; out-of-range values here are programmer error.
func NewField(p FieldParams) *Field {
	return &Field{
		noise:     perlin.NewPerlin(p.Persistence, p.Lacunarity, int32(p.Octaves), p.Seed),
		frequency: p.Frequency,
	}
}

// At implements Sampler. Perlin output is roughly [-1, 1]; remap to [0, 1)
// and clamp the tails so quantization never leaves the step range.
func (f *Field) At(gx, gz int) float64 {
	v := f.noise.Noise2D(float64(gx)*f.frequency, float64(gz)*f.frequency)
	v = v*0.5 + 0.5
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return 0.999999
	}
	return v
}
