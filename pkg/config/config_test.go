package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, float64(1200), cfg.Display.Width)
	assert.Equal(t, float64(602), cfg.Display.InitialHeight)
	assert.Equal(t, float64(50), cfg.Display.Padding)
	assert.Equal(t, 1000, cfg.Display.TotalTime)
	assert.Equal(t, 5, cfg.Display.Channels)
	assert.Len(t, cfg.Display.ChannelChoices, 10)
	assert.Equal(t, "sine", cfg.Signal.Generator)
	assert.Equal(t, 500*time.Millisecond, cfg.Interaction.HoldDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.Interaction.SettleDelay)
	assert.Equal(t, float64(50), cfg.Interaction.DragScale)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, 5, cfg.Display.Channels)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
display:
  width: 800
  initial_height: 400
  channels: 3
  channel_prefix: "A"

signal:
  generator: ecg
  noise: 0.5
  animate_interval: 50ms

interaction:
  hold_delay: 300ms
  settle_delay: 100ms
  drag_scale: 25
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, float64(800), cfg.Display.Width)
	assert.Equal(t, float64(400), cfg.Display.InitialHeight)
	assert.Equal(t, 3, cfg.Display.Channels)
	assert.Equal(t, "A", cfg.Display.ChannelPrefix)
	assert.Equal(t, "ecg", cfg.Signal.Generator)
	assert.Equal(t, 0.5, cfg.Signal.Noise)
	assert.Equal(t, 50*time.Millisecond, cfg.Signal.AnimateInterval)
	assert.Equal(t, 300*time.Millisecond, cfg.Interaction.HoldDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.Interaction.SettleDelay)
	assert.Equal(t, float64(25), cfg.Interaction.DragScale)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidGeometry(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("display:\n  width: 90\n  padding: 50\nsignal:\n  generator: square\n")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "width")
	assert.Contains(t, err.Error(), "square")
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
display:
  channels: 8
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, 8, cfg.Display.Channels)
	assert.Equal(t, float64(1200), cfg.Display.Width)                   // default
	assert.Equal(t, 500*time.Millisecond, cfg.Interaction.HoldDelay)     // default
	assert.Equal(t, float64(20), cfg.Signal.Amplitude)                   // default
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, cfg.Display.ChannelChoices) // default
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Display.Channels = 7
	cfg.Signal.Generator = "ecg"

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Display.Channels)
	assert.Equal(t, "ecg", loaded.Signal.Generator)
	assert.Equal(t, cfg.Interaction, loaded.Interaction)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "no channels", mutate: func(c *Config) { c.Display.Channels = 0 }, wantErr: true},
		{name: "no time", mutate: func(c *Config) { c.Display.TotalTime = 0 }, wantErr: true},
		{name: "short canvas", mutate: func(c *Config) { c.Display.InitialHeight = 100 }, wantErr: true},
		{name: "zero drag scale", mutate: func(c *Config) { c.Interaction.DragScale = 0 }, wantErr: true},
		{name: "negative hold delay", mutate: func(c *Config) { c.Interaction.HoldDelay = -time.Millisecond }, wantErr: true},
		{name: "zero hold delay", mutate: func(c *Config) { c.Interaction.HoldDelay = 0 }, wantErr: true},
		{name: "negative settle delay", mutate: func(c *Config) { c.Interaction.SettleDelay = -time.Second }, wantErr: true},
		{name: "negative noise", mutate: func(c *Config) { c.Signal.Noise = -1 }, wantErr: true},
		{name: "negative tick interval", mutate: func(c *Config) { c.Display.TickInterval = -100 }, wantErr: true},
		{name: "noise free", mutate: func(c *Config) { c.Signal.Noise = 0 }},
		{name: "zero period", mutate: func(c *Config) { c.Signal.Period = 0 }, wantErr: true},
		{name: "unknown generator", mutate: func(c *Config) { c.Signal.Generator = "square" }, wantErr: true},
		{name: "ecg generator", mutate: func(c *Config) { c.Signal.Generator = "ecg" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
