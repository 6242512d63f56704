package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/wavefield/internal/waves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Preset != "default" {
		t.Errorf("expected preset default, got %s", cfg.Preset)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Seed != nil {
		t.Error("seed should be unset by default")
	}
	if cfg.Waves != waves.DefaultParams() {
		t.Error("wave params should match simulation defaults")
	}
	require.NoError(t, cfg.Validate())
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("storm")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Waves.WaveAmpX != 32 {
		t.Errorf("expected amp 32, got %f", cfg.Waves.WaveAmpX)
	}
	if cfg.Preset != "storm" {
		t.Errorf("expected preset name storm, got %s", cfg.Preset)
	}

	// presets hand out independent copies
	cfg.Waves.WaveAmpX = 1
	assert.Equal(t, 32.0, GetPreset("storm").Waves.WaveAmpX)
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	_, ok := PresetParams("nonexistent")
	assert.False(t, ok)
}

func TestPresetsValid(t *testing.T) {
	names := ListPresets()
	assert.Equal(t, []string{"calm", "default", "dense", "still", "storm"}, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, GetPreset(name).Validate())
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavefield.yaml")

	cfg := GetPreset("calm")
	seed := 42.0
	cfg.Seed = &seed
	cfg.Width = 640
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 300\nwaves:\n  damping: 0.9\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cfg.Width)
	assert.Equal(t, 0.9, cfg.Waves.Damping)
	assert.Equal(t, 8.0, cfg.Waves.XGap)
	assert.Equal(t, DefaultHeight, cfg.Height)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromViperDefaults(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)

	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFromViperFileEnvAndPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavefield.yaml")
	body := "preset: storm\nseed: 7\nheight: 200\nwaves:\n  max_offset: 40\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	t.Setenv("WAVEFIELD_WIDTH", "512")

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "storm", cfg.Preset)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, 7.0, *cfg.Seed)
	assert.Equal(t, 512.0, cfg.Width, "env overrides file")
	assert.Equal(t, 200.0, cfg.Height)
	assert.Equal(t, 40.0, cfg.Waves.MaxOffset, "file overrides preset")
	assert.Equal(t, 32.0, cfg.Waves.WaveAmpX, "preset overrides defaults")
}

func TestFromViperUnknownPreset(t *testing.T) {
	t.Setenv("WAVEFIELD_PRESET", "hurricane")
	v, err := NewViper("")
	require.NoError(t, err)

	_, err = FromViper(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative frames", func(c *Config) { c.Frames = -3 }},
		{"bad damping", func(c *Config) { c.Waves.Damping = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateRender(t *testing.T) {
	tests := []struct {
		name     string
		frames   int
		realtime bool
		wantErr  bool
	}{
		{"finite headless", 10, false, false},
		{"unbounded headless", 0, false, true},
		{"unbounded realtime", 0, true, false},
		{"negative realtime", -1, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Frames = tt.frames
			err := cfg.ValidateRender(tt.realtime)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
