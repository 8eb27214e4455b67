// Package config loads and persists studio preferences as YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 720
	DefaultTargetFPS    = 60
)

type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Scene  SceneConfig  `yaml:"scene"`
}

type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

type CameraConfig struct {
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	MinPolar        float32 `yaml:"min_polar"`
	MaxPolar        float32 `yaml:"max_polar"`
	MinAzimuth      float32 `yaml:"min_azimuth"`
	MaxAzimuth      float32 `yaml:"max_azimuth"`
	Fovy            float32 `yaml:"fovy"`
	OrbitSpeed      float32 `yaml:"orbit_speed"`
	ZoomFactor      float32 `yaml:"zoom_factor"`
	AutoRotateSpeed float32 `yaml:"auto_rotate_speed"`
}

type SceneConfig struct {
	// Path is loaded on startup when the file exists, and is the target
	// of quick-save.
	Path string `yaml:"path"`
	// Watch reloads the scene file when it changes on disk.
	Watch bool `yaml:"watch"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     DefaultWindowWidth,
			Height:    DefaultWindowHeight,
			Title:     "Physics Studio",
			TargetFPS: DefaultTargetFPS,
		},
		Camera: CameraConfig{
			MinDistance:     2,
			MaxDistance:     60,
			MinPolar:        5,
			MaxPolar:        89,
			Fovy:            45,
			OrbitSpeed:      0.35,
			ZoomFactor:      1.1,
			AutoRotateSpeed: 10,
		},
		Scene: SceneConfig{
			Path:  "scene.json",
			Watch: true,
		},
	}
}

// Load reads a YAML config, filling unspecified fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns defaults when the file does not exist; any other
// failure is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configs the studio could not start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d invalid", c.Window.Width, c.Window.Height)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		return fmt.Errorf("camera distance bounds [%v, %v] invalid",
			c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Camera.MinPolar < 0 || c.Camera.MaxPolar > 180 || c.Camera.MaxPolar < c.Camera.MinPolar {
		return fmt.Errorf("camera polar bounds [%v, %v] invalid",
			c.Camera.MinPolar, c.Camera.MaxPolar)
	}
	if c.Camera.ZoomFactor <= 1 {
		return fmt.Errorf("zoom factor %v must be > 1", c.Camera.ZoomFactor)
	}
	return nil
}
