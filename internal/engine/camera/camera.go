// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/terrastream/pkg/math"
)

// FlyCamera is a free-flying first-person camera.
type FlyCamera struct {
	Position math.Vec3

	// Orientation
	Yaw   float32 // radians, 0 looks down -Z
	Pitch float32 // radians, clamped short of straight up/down

	// Tuning
	MoveSpeed   float32 // world units per second
	FastFactor  float32 // multiplier while sprinting
	Sensitivity float32 // radians per mouse count
}

// NewFlyCamera creates a fly camera with default settings.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Position:    math.Vec3{Y: 20},
		Pitch:       -0.3,
		MoveSpeed:   24,
		FastFactor:  4,
		Sensitivity: 0.0025,
	}
}

// Forward returns the view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	cp := math32.Cos(c.Pitch)
	return math.Vec3{
		X: cp * math32.Sin(c.Yaw),
		Y: math32.Sin(c.Pitch),
		Z: -cp * math32.Cos(c.Yaw),
	}
}

// Right returns the strafe direction.
func (c *FlyCamera) Right() math.Vec3 {
	return math.Vec3{
		X: math32.Cos(c.Yaw),
		Z: math32.Sin(c.Yaw),
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	target := c.Position.Add(c.Forward())
	return math.LookAt(c.Position, target, math.Vec3{Y: 1})
}

// HandleMouse updates orientation from relative mouse motion.
func (c *FlyCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity

	const maxPitch = 1.55
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}

// Move translates the camera along its local axes. forward/right/up are
// -1..1 inputs, dt is the frame time in seconds.
func (c *FlyCamera) Move(forward, right, up float32, fast bool, dt float32) {
	speed := c.MoveSpeed
	if fast {
		speed *= c.FastFactor
	}

	delta := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math.Vec3{Y: up})
	if l := delta.Length(); l > 0 {
		c.Position = c.Position.Add(delta.Scale(speed * dt / l))
	}
}

// ApplyShift translates the camera for a floating-origin shift.
func (c *FlyCamera) ApplyShift(delta math.Vec3) {
	c.Position = c.Position.Sub(delta)
}
