package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Display     DisplayConfig     `yaml:"display"`
	Signal      SignalConfig      `yaml:"signal"`
	Interaction InteractionConfig `yaml:"interaction"`
}

// DisplayConfig contains canvas geometry and channel layout parameters.
type DisplayConfig struct {
	Width           float64 `yaml:"width"`
	InitialHeight   float64 `yaml:"initial_height"`
	Padding         float64 `yaml:"padding"`       // Margin around the plot area (px)
	TotalTime       int     `yaml:"total_time"`    // Number of time steps per channel (ms)
	TickInterval    int     `yaml:"tick_interval"` // Time axis label spacing (ms)
	BandInset       float64 `yaml:"band_inset"`    // Subtracted from the nominal pitch to get band height (px)
	UnitSpacing     float64 `yaml:"unit_spacing"`  // Gap between bands at multiplier 1.0 (px)
	ClickInsetY     float64 `yaml:"click_inset_y"`
	ClickInsetX     float64 `yaml:"click_inset_x"`
	ClickWidthInset float64 `yaml:"click_width_inset"`
	Channels        int     `yaml:"channels"`
	ChannelChoices  []int   `yaml:"channel_choices"`
	ChannelPrefix   string  `yaml:"channel_prefix"`
}

// SignalConfig contains synthetic waveform parameters.
type SignalConfig struct {
	Generator       string        `yaml:"generator"` // "sine" or "ecg"
	Amplitude       float64       `yaml:"amplitude"`
	Period          float64       `yaml:"period"` // Samples per half cycle
	Noise           float64       `yaml:"noise"`
	Speed           float64       `yaml:"speed"`            // Offset advance per regeneration
	AnimateInterval time.Duration `yaml:"animate_interval"` // 0 disables scrolling
}

// InteractionConfig contains pointer gesture parameters.
type InteractionConfig struct {
	HoldDelay   time.Duration `yaml:"hold_delay"`
	SettleDelay time.Duration `yaml:"settle_delay"`
	DragScale   float64       `yaml:"drag_scale"` // Pixels of pointer travel per spacing unit
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:           1200,
			InitialHeight:   602,
			Padding:         50,
			TotalTime:       1000,
			TickInterval:    100,
			BandInset:       20,
			UnitSpacing:     20,
			ClickInsetY:     20,
			ClickInsetX:     50,
			ClickWidthInset: 100,
			Channels:        5,
			ChannelChoices:  []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			ChannelPrefix:   "CH",
		},
		Signal: SignalConfig{
			Generator: "sine",
			Amplitude: 20,
			Period:    40,
			Noise:     5,
			Speed:     2,
		},
		Interaction: InteractionConfig{
			HoldDelay:   500 * time.Millisecond,
			SettleDelay: 200 * time.Millisecond,
			DragScale:   50,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports geometry that cannot produce a drawable plot.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.Channels < 1 {
		errs = append(errs, fmt.Errorf("channels must be at least 1, got %d", c.Display.Channels))
	}
	if c.Display.TotalTime < 1 {
		errs = append(errs, fmt.Errorf("total_time must be at least 1, got %d", c.Display.TotalTime))
	}
	if c.Display.Width <= 2*c.Display.Padding {
		errs = append(errs, fmt.Errorf("width %.0f leaves no room inside padding %.0f", c.Display.Width, c.Display.Padding))
	}
	if c.Display.InitialHeight <= 2*c.Display.Padding {
		errs = append(errs, fmt.Errorf("initial_height %.0f leaves no room inside padding %.0f", c.Display.InitialHeight, c.Display.Padding))
	}
	if c.Interaction.DragScale <= 0 {
		errs = append(errs, fmt.Errorf("drag_scale must be positive, got %f", c.Interaction.DragScale))
	}
	if c.Display.TickInterval < 0 {
		errs = append(errs, fmt.Errorf("tick_interval must not be negative, got %d", c.Display.TickInterval))
	}
	if c.Interaction.HoldDelay <= 0 {
		errs = append(errs, fmt.Errorf("hold_delay must be positive, got %s", c.Interaction.HoldDelay))
	}
	if c.Interaction.SettleDelay <= 0 {
		errs = append(errs, fmt.Errorf("settle_delay must be positive, got %s", c.Interaction.SettleDelay))
	}
	if c.Signal.Noise < 0 {
		errs = append(errs, fmt.Errorf("noise must not be negative, got %f", c.Signal.Noise))
	}
	if c.Signal.Period <= 0 {
		errs = append(errs, fmt.Errorf("period must be positive, got %f", c.Signal.Period))
	}
	switch c.Signal.Generator {
	case "sine", "ecg":
	default:
		errs = append(errs, fmt.Errorf("unknown generator %q", c.Signal.Generator))
	}
	return errors.Join(errs...)
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Display.Width == 0 {
		c.Display.Width = def.Display.Width
	}
	if c.Display.InitialHeight == 0 {
		c.Display.InitialHeight = def.Display.InitialHeight
	}
	if c.Display.Padding == 0 {
		c.Display.Padding = def.Display.Padding
	}
	if c.Display.TotalTime == 0 {
		c.Display.TotalTime = def.Display.TotalTime
	}
	if c.Display.TickInterval == 0 {
		c.Display.TickInterval = def.Display.TickInterval
	}
	if c.Display.BandInset == 0 {
		c.Display.BandInset = def.Display.BandInset
	}
	if c.Display.UnitSpacing == 0 {
		c.Display.UnitSpacing = def.Display.UnitSpacing
	}
	if c.Display.ClickInsetY == 0 {
		c.Display.ClickInsetY = def.Display.ClickInsetY
	}
	if c.Display.ClickInsetX == 0 {
		c.Display.ClickInsetX = def.Display.ClickInsetX
	}
	if c.Display.ClickWidthInset == 0 {
		c.Display.ClickWidthInset = def.Display.ClickWidthInset
	}
	if c.Display.Channels == 0 {
		c.Display.Channels = def.Display.Channels
	}
	if len(c.Display.ChannelChoices) == 0 {
		c.Display.ChannelChoices = def.Display.ChannelChoices
	}
	if c.Display.ChannelPrefix == "" {
		c.Display.ChannelPrefix = def.Display.ChannelPrefix
	}

	if c.Signal.Generator == "" {
		c.Signal.Generator = def.Signal.Generator
	}
	if c.Signal.Amplitude == 0 {
		c.Signal.Amplitude = def.Signal.Amplitude
	}
	if c.Signal.Period == 0 {
		c.Signal.Period = def.Signal.Period
	}

	if c.Interaction.HoldDelay == 0 {
		c.Interaction.HoldDelay = def.Interaction.HoldDelay
	}
	if c.Interaction.SettleDelay == 0 {
		c.Interaction.SettleDelay = def.Interaction.SettleDelay
	}
	if c.Interaction.DragScale == 0 {
		c.Interaction.DragScale = def.Interaction.DragScale
	}
}
