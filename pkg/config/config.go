// Package config holds the tunable constants of the network visualization.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full configuration surface.
type Config struct {
	Scene   SceneConfig   `toml:"scene"`
	Cascade CascadeConfig `toml:"cascade"`
	Forces  ForcesConfig  `toml:"forces"`
	Render  RenderConfig  `toml:"render"`
}

// SceneConfig controls graph synthesis.
type SceneConfig struct {
	Nodes              int      `toml:"nodes"`
	Links              int      `toml:"links"`
	StreaksPerNode     int      `toml:"streaks_per_node"`
	StreakMaxLength    float64  `toml:"streak_max_length"`
	StreakMaxDistRatio float64  `toml:"streak_max_dist_ratio"`
	StreakOpacityMin   float64  `toml:"streak_opacity_min"`
	StreakOpacitySpan  float64  `toml:"streak_opacity_span"`
	MaxRadiusFraction  float64  `toml:"max_radius_fraction"`
	CenterBias         float64  `toml:"center_bias"`
	WarmPalette        []string `toml:"warm_palette"`
	CoolPalette        []string `toml:"cool_palette"`
}

// CascadeConfig controls the falling binary columns.
type CascadeConfig struct {
	Columns     int      `toml:"columns"`
	Rows        int      `toml:"rows"`
	Palette     []string `toml:"palette"`
	OpacityMin  float64  `toml:"opacity_min"`
	OpacitySpan float64  `toml:"opacity_span"`
	BaseDelay   float64  `toml:"base_delay"` // seconds
	Stagger     float64  `toml:"stagger"`    // seconds per column
	Jitter      float64  `toml:"jitter"`     // seconds
	Period      float64  `toml:"period"`     // seconds per fall
	FontSize    float64  `toml:"font_size"`
}

// ForcesConfig controls the layout simulation.
type ForcesConfig struct {
	LinkDistance         float64 `toml:"link_distance"`
	Charge               float64 `toml:"charge"`
	Theta                float64 `toml:"theta"`
	CenterStrength       float64 `toml:"center_strength"`
	AxisStrength         float64 `toml:"axis_strength"`
	ResizeCenterStrength float64 `toml:"resize_center_strength"`
	ResizeAxisStrength   float64 `toml:"resize_axis_strength"`
	CollisionPadding     float64 `toml:"collision_padding"`
	Alpha                float64 `toml:"alpha"`
	AlphaDecay           float64 `toml:"alpha_decay"`
	ResizeAlpha          float64 `toml:"resize_alpha"`
	DragAlpha            float64 `toml:"drag_alpha"`
	VelocityDecay        float64 `toml:"velocity_decay"`
}

// RenderConfig controls styling and host integration.
type RenderConfig struct {
	MountID     string  `toml:"mount_id"`
	Background  string  `toml:"background"`
	NodeBlur    float64 `toml:"node_blur"`
	LinkBlur    float64 `toml:"link_blur"`
	LinkWidth   float64 `toml:"link_width"`
	StreakWidth float64 `toml:"streak_width"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Scene: SceneConfig{
			Nodes:              160,
			Links:              420,
			StreaksPerNode:     9,
			StreakMaxLength:    140,
			StreakMaxDistRatio: 0.7,
			StreakOpacityMin:   0.06,
			StreakOpacitySpan:  0.1,
			MaxRadiusFraction:  0.55,
			CenterBias:         0.55,
			// gold, amber, cream, soft orange
			WarmPalette: []string{"#D4AF37", "#C9A227", "#E6B800", "#F4E4BC", "#FFE4B5", "#B8860B", "#E8A87C", "#E07B5B", "#D4A574", "#FF8C42"},
			// burgundy, copper, terracotta, brown, rust
			CoolPalette: []string{"#6B3A3A", "#8B4513", "#A67B5B", "#8B7355", "#C4A574", "#6B5344", "#9B6B5B", "#8B5A2B", "#A0522D", "#BC8F8F"},
		},
		Cascade: CascadeConfig{
			Columns:     35,
			Rows:        80,
			Palette:     []string{"#8B7355", "#6B5344", "#7D6B5A", "#9B7B5B", "#8B5A2B", "#6B4423", "#7A6B5E"},
			OpacityMin:  0.18,
			OpacitySpan: 0.2,
			BaseDelay:   12,
			Stagger:     0.8,
			Jitter:      10,
			Period:      30,
			FontSize:    12,
		},
		Forces: ForcesConfig{
			LinkDistance:         70,
			Charge:               -50,
			Theta:                0.9,
			CenterStrength:       0.2,
			AxisStrength:         0.06,
			ResizeCenterStrength: 0.15,
			ResizeAxisStrength:   0.04,
			CollisionPadding:     3,
			Alpha:                0.5,
			AlphaDecay:           0,
			ResizeAlpha:          0.3,
			DragAlpha:            0.3,
			VelocityDecay:        0.4,
		},
		Render: RenderConfig{
			MountID:     "network-bg",
			Background:  "#0D0B09",
			NodeBlur:    3,
			LinkBlur:    1,
			LinkWidth:   0.35,
			StreakWidth: 0.2,
		},
	}
}

// Load reads a TOML file over the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes the config as TOML.
func Write(w io.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.Scene.Nodes < 0:
		return fmt.Errorf("%w: scene.nodes must not be negative", ErrInvalid)
	case c.Scene.Links < 0:
		return fmt.Errorf("%w: scene.links must not be negative", ErrInvalid)
	case c.Scene.StreaksPerNode < 0:
		return fmt.Errorf("%w: scene.streaks_per_node must not be negative", ErrInvalid)
	case c.Scene.StreakMaxLength < 0:
		return fmt.Errorf("%w: scene.streak_max_length must not be negative", ErrInvalid)
	case c.Scene.MaxRadiusFraction < 0:
		return fmt.Errorf("%w: scene.max_radius_fraction must not be negative", ErrInvalid)
	case c.Scene.CenterBias <= 0:
		return fmt.Errorf("%w: scene.center_bias must be positive", ErrInvalid)
	case len(c.Scene.WarmPalette) == 0 || len(c.Scene.CoolPalette) == 0:
		return fmt.Errorf("%w: scene palettes must not be empty", ErrInvalid)
	case c.Cascade.Columns < 0 || c.Cascade.Rows < 0:
		return fmt.Errorf("%w: cascade dimensions must not be negative", ErrInvalid)
	case len(c.Cascade.Palette) == 0:
		return fmt.Errorf("%w: cascade.palette must not be empty", ErrInvalid)
	case c.Cascade.Period <= 0:
		return fmt.Errorf("%w: cascade.period must be positive", ErrInvalid)
	case c.Cascade.FontSize <= 0:
		return fmt.Errorf("%w: cascade.font_size must be positive", ErrInvalid)
	case c.Forces.VelocityDecay < 0 || c.Forces.VelocityDecay > 1:
		return fmt.Errorf("%w: forces.velocity_decay must be within [0,1]", ErrInvalid)
	case c.Forces.AlphaDecay < 0 || c.Forces.AlphaDecay > 1:
		return fmt.Errorf("%w: forces.alpha_decay must be within [0,1]", ErrInvalid)
	case c.Forces.Alpha < 0:
		return fmt.Errorf("%w: forces.alpha must not be negative", ErrInvalid)
	case c.Render.MountID == "":
		return fmt.Errorf("%w: render.mount_id must be set", ErrInvalid)
	}
	return nil
}
