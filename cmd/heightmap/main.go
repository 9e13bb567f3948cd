// Package main renders a block of generated terrain to a PNG, for
// inspecting noise parameters and stitch behavior without launching the
// viewer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/Faultbox/terrastream/internal/terrain"
	"github.com/Faultbox/terrastream/internal/terrain/elevation"
	"github.com/Faultbox/terrastream/internal/terrain/grid"
	"github.com/Faultbox/terrastream/internal/terrain/stitch"
)

func main() {
	var (
		out     = flag.String("out", "terrain.png", "output PNG path")
		radius  = flag.Int("radius", 8, "rendered block half-width, in regions")
		seed    = flag.Int64("seed", 0, "noise seed (0 keeps the default)")
		freq    = flag.Float64("frequency", 0, "noise frequency (0 keeps the default)")
		stitchM = flag.Bool("stitch", true, "run boundary stitching before rendering")
	)
	flag.Parse()

	cfg := terrain.DefaultTerrainConfig()
	if *seed != 0 {
		cfg.Noise.Seed = *seed
	}
	if *freq > 0 {
		cfg.Noise.Frequency = *freq
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	img := render(cfg, *radius, *stitchM)

	file, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("wrote %s (%d x %d cells)\n", *out,
		img.Bounds().Dx(), img.Bounds().Dy())
}

// render generates and optionally stitches every region in the block,
// then maps elevation steps to color bands.
func render(cfg terrain.Config, radius int, stitched bool) image.Image {
	field := elevation.NewField(elevation.FieldParams{
		Seed:        cfg.Noise.Seed,
		Frequency:   cfg.Noise.Frequency,
		Octaves:     cfg.Noise.Octaves,
		Persistence: cfg.Noise.Persistence,
		Lacunarity:  cfg.Noise.Lacunarity,
	})
	store := elevation.NewStore(cfg.RegionSize, cfg.MaxStep, field)
	stitcher := stitch.New(store)

	for z := -radius; z <= radius; z++ {
		for x := -radius; x <= radius; x++ {
			store.Generate(grid.RegionCoord{X: x, Z: z})
		}
	}
	if stitched {
		for z := -radius; z <= radius; z++ {
			for x := -radius; x <= radius; x++ {
				stitcher.Sanitize(grid.RegionCoord{X: x, Z: z})
			}
		}
	}

	side := (2*radius + 1) * cfg.RegionSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	low := [3]float32{0.20, 0.34, 0.18}
	high := [3]float32{0.62, 0.58, 0.51}

	for pz := 0; pz < side; pz++ {
		for px := 0; px < side; px++ {
			gx := px - radius*cfg.RegionSize
			gz := pz - radius*cfg.RegionSize
			h := store.ElevationAt(gx, gz)
			t := float32(h) / float32(cfg.MaxStep)

			img.Set(px, side-1-pz, color.RGBA{
				R: lerpByte(low[0], high[0], t),
				G: lerpByte(low[1], high[1], t),
				B: lerpByte(low[2], high[2], t),
				A: 255,
			})
		}
	}
	return img
}

func lerpByte(a, b, t float32) byte {
	v := a + (b-a)*t
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return byte(v * 255)
}
