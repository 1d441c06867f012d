package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"quickfx/internal/util"
)

// Config represents the main configuration
type Config struct {
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Logging   LoggingConfig   `yaml:"logging"`
	Materials MaterialsConfig `yaml:"materials"`
	Outline   OutlineConfig   `yaml:"outline"`
	Blinker   BlinkerConfig   `yaml:"blinker"`
}

// GraphicsConfig contains window and frame loop configuration
type GraphicsConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FrameRate int    `yaml:"framerate"`
	Headless  bool   `yaml:"headless"` // no window, no GL
	Title     string `yaml:"title"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // optional, console only when empty
}

// MaterialsConfig points at an optional material template file merged
// over the builtin templates
type MaterialsConfig struct {
	Path string `yaml:"path"`
}

// OutlineConfig contains the outline effect parameters
type OutlineConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Target        string  `yaml:"target"` // path below the scene root
	Mode          string  `yaml:"mode"`
	Color         Color   `yaml:"color"`
	Width         float32 `yaml:"width"`
	Show          bool    `yaml:"show"`
	SmoothNormals bool    `yaml:"smooth_normals"`
	Precompute    bool    `yaml:"precompute"`
}

// BlinkerConfig contains the color blinker effect parameters
type BlinkerConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Target      string  `yaml:"target"`
	Direction   string  `yaml:"direction"`
	Color       Color   `yaml:"color"`
	Speed       float32 `yaml:"speed"`
	CyclePeriod float32 `yaml:"cycle_period"`
	Show        bool    `yaml:"show"`
}

// DefaultOutlineConfig returns the outline defaults
func DefaultOutlineConfig() OutlineConfig {
	return OutlineConfig{
		Enabled:       true,
		Mode:          "outline_all",
		Color:         White,
		Width:         2,
		Show:          true,
		SmoothNormals: true,
	}
}

// DefaultBlinkerConfig returns the blinker defaults
func DefaultBlinkerConfig() BlinkerConfig {
	return BlinkerConfig{
		Enabled:     true,
		Direction:   "y_positive",
		Color:       White,
		Speed:       1.5,
		CyclePeriod: 2,
		Show:        true,
	}
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:     1024,
			Height:    768,
			FrameRate: 60,
			Title:     "quickfx",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Outline: DefaultOutlineConfig(),
		Blinker: DefaultBlinkerConfig(),
	}
}

// LoadConfig loads the configuration from a file. The defaults are
// returned together with the error when the file cannot be read.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return config, fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := util.CreateDirIfNotExist(filePath); err != nil {
		return err
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
