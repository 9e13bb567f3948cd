// Package config handles viewer configuration loading and management.
package config

import "github.com/Faultbox/terrastream/internal/terrain"

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Terrain  terrain.Config `yaml:"terrain"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
}

// CameraConfig holds fly-camera settings.
type CameraConfig struct {
	MoveSpeed   float32 `yaml:"move_speed"`   // world units per second
	FastFactor  float32 `yaml:"fast_factor"`  // speed multiplier while sprinting
	Sensitivity float32 `yaml:"sensitivity"`  // radians per mouse count
	FOV         float32 `yaml:"fov"`          // vertical field of view, radians
	NearPlane   float32 `yaml:"near_plane"`
	FarPlane    float32 `yaml:"far_plane"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ShowFPS:    false,
		},
		Camera: CameraConfig{
			MoveSpeed:   24,
			FastFactor:  4,
			Sensitivity: 0.0025,
			FOV:         1.1,
			NearPlane:   0.5,
			FarPlane:    1200,
		},
		Terrain: terrain.DefaultTerrainConfig(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
