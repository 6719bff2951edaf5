// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	World    WorldConfig    `yaml:"world"`
	Editor   EditorConfig   `yaml:"editor"`
	Sun      SunConfig      `yaml:"sun"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width            int  `yaml:"width"`
	Height           int  `yaml:"height"`
	Fullscreen       bool `yaml:"fullscreen"`
	VSync            bool `yaml:"vsync"`
	ShadowResolution int  `yaml:"shadow_resolution"`
	ShadowsEnabled   bool `yaml:"shadows_enabled"`
}

// WorldConfig holds chunk dimensions and the startup world file.
type WorldConfig struct {
	Size       float32 `yaml:"size"`       // world-space edge length
	Resolution int     `yaml:"resolution"` // height samples per edge
	File       string  `yaml:"file"`       // world file loaded at startup, empty for a flat chunk
}

// EditorConfig holds sculpting tool defaults.
type EditorConfig struct {
	BrushRadius   float32 `yaml:"brush_radius"`
	BrushStrength float32 `yaml:"brush_strength"`
	ShowGrid      bool    `yaml:"show_grid"`
}

// SunConfig holds the directional light angles in degrees.
type SunConfig struct {
	Azimuth   float32 `yaml:"azimuth"`   // 0-360 around the vertical axis
	Elevation float32 `yaml:"elevation"` // 10-80 above the horizon
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
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			ShadowResolution: 2048,
			ShadowsEnabled:   true,
		},
		World: WorldConfig{
			Size:       64,
			Resolution: 65,
			File:       "",
		},
		Editor: EditorConfig{
			BrushRadius:   5,
			BrushStrength: 0.4,
			ShowGrid:      true,
		},
		Sun: SunConfig{
			Azimuth:   135,
			Elevation: 45,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
