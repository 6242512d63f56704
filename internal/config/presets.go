package config

import (
	"sort"

	"github.com/san-kum/wavefield/internal/waves"
)

var Presets = map[string]func(*Config){
	"default": func(*Config) {},
	"calm": func(c *Config) {
		c.Waves.WaveTimeX = 0.004
		c.Waves.WaveTimeY = 0.002
		c.Waves.WaveAmpX = 12
		c.Waves.WaveAmpY = 5
		c.Waves.ForceScale = 0.0004
		c.Cursor.Speed = 0.5
	},
	"storm": func(c *Config) {
		c.Waves.WaveTimeX = 0.016
		c.Waves.WaveTimeY = 0.010
		c.Waves.WaveTurn = 12
		c.Waves.WaveAmpX = 32
		c.Waves.WaveAmpY = 14
		c.Waves.ForceScale = 0.0016
		c.Waves.Damping = 0.95
		c.Cursor.Path = "zigzag"
		c.Cursor.Speed = 2.5
	},
	"dense": func(c *Config) {
		c.Waves.XGap = 4
		c.Waves.YGap = 6
		c.Waves.Workers = 4
		c.Render.StrokeWidth = 0.5
	},
	"still": func(c *Config) {
		c.Waves.WaveTimeX = 0
		c.Waves.WaveTimeY = 0
		c.Cursor.Path = "none"
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Preset = name
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PresetParams is a shortcut for the wave parameters of a preset.
func PresetParams(name string) (waves.Params, bool) {
	cfg := GetPreset(name)
	if cfg == nil {
		return waves.Params{}, false
	}
	return cfg.Waves, true
}
