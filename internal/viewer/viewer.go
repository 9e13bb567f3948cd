// Package viewer implements the interactive terrain viewer loop.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrastream/internal/config"
	"github.com/Faultbox/terrastream/internal/engine/camera"
	"github.com/Faultbox/terrastream/internal/engine/input"
	"github.com/Faultbox/terrastream/internal/engine/renderer"
	"github.com/Faultbox/terrastream/internal/engine/scene"
	"github.com/Faultbox/terrastream/internal/engine/window"
	"github.com/Faultbox/terrastream/internal/logger"
	"github.com/Faultbox/terrastream/internal/terrain"
	"github.com/Faultbox/terrastream/pkg/math"
)

// stepBudget caps streaming pipeline steps per frame so heavy build
// bursts cannot stall rendering.
const stepBudget = 8

// Viewer is the main application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FlyCamera
	scene    *scene.TerrainScene
	world    *terrain.World

	mouseCaptured bool
}

// New creates the viewer: window and GL context first, then the terrain
// pipeline wired to the scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{cfg: cfg}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "Terrastream",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	extent := float32(cfg.Terrain.RegionSize) * cfg.Terrain.TileSize
	maxHeight := float32(cfg.Terrain.MaxStep) * cfg.Terrain.StepHeight
	v.scene, err = scene.New(extent, maxHeight)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	v.world, err = terrain.New(cfg.Terrain, v.scene)
	if err != nil {
		v.scene.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to create terrain: %w", err)
	}

	v.camera = camera.NewFlyCamera()
	v.camera.MoveSpeed = cfg.Camera.MoveSpeed
	v.camera.FastFactor = cfg.Camera.FastFactor
	v.camera.Sensitivity = cfg.Camera.Sensitivity
	v.camera.Position = math.Vec3{X: extent / 2, Y: maxHeight + 12, Z: extent / 2}

	v.input = input.New()
	v.setMouseCaptured(true)

	logger.Info("viewer initialized",
		zap.Int("region_size", cfg.Terrain.RegionSize),
		zap.Int("view_radius", cfg.Terrain.ViewRadius),
		zap.Int64("seed", cfg.Terrain.Noise.Seed),
	)
	return v, nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		v.updateCamera(dt)

		// Streaming and visibility are cooperative: a bounded number of
		// pipeline steps, then one sweep batch per frame.
		v.world.SetViewpoint(v.camera.Position)
		for i := 0; i < stepBudget && v.world.Step(); i++ {
		}

		if delta, ok := v.world.CheckOriginShift(v.camera.Position); ok {
			v.scene.ShiftOrigin(delta)
			v.camera.ApplyShift(delta)
			logger.Info("origin shifted",
				zap.Float32("x", delta.X),
				zap.Float32("y", delta.Y),
				zap.Float32("z", delta.Z))
		}

		proj := math.Perspective(v.cfg.Camera.FOV, v.renderer.AspectRatio(),
			v.cfg.Camera.NearPlane, v.cfg.Camera.FarPlane)
		viewProj := proj.Mul(v.camera.ViewMatrix())
		frustum := math.FrustumFromMatrix(viewProj)
		v.world.Sweep(&frustum)

		v.renderer.Begin()
		v.scene.Draw(viewProj, dt)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.cfg.Graphics.ShowFPS {
				v.window.SetTitle(fmt.Sprintf("Terrastream - %d fps, %d regions",
					frameCount, v.world.Resident()))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(event.Width, event.Height)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				v.running = false
			case sdl.SCANCODE_F1:
				v.renderer.ToggleWireframe()
			case sdl.SCANCODE_TAB:
				v.setMouseCaptured(!v.mouseCaptured)
			}
		}
	}
}

func (v *Viewer) updateCamera(dt float32) {
	if v.mouseCaptured {
		dx, dy := v.input.MouseDelta()
		v.camera.HandleMouse(float32(dx), float32(dy))
	}

	var forward, right, up float32
	if v.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_SPACE) {
		up++
	}
	if v.input.IsKeyHeld(sdl.SCANCODE_LCTRL) {
		up--
	}
	fast := v.input.IsKeyHeld(sdl.SCANCODE_LSHIFT)
	v.camera.Move(forward, right, up, fast, dt)

	// Keep the camera out of the ground.
	floor := v.world.SurfaceHeight(v.camera.Position) + 1.5
	if v.camera.Position.Y < floor {
		v.camera.Position.Y = floor
	}
}

func (v *Viewer) setMouseCaptured(captured bool) {
	v.mouseCaptured = captured
	v.window.CaptureMouse(captured)
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.scene != nil {
		v.scene.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
