package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/wavefield/internal/waves"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 1280.0
	DefaultHeight  = 720.0
	DefaultFPS     = 60.0
	DefaultFrames  = 300
	DefaultStroke  = "#00ffcc"
	DefaultPreset  = "default"
	EnvPrefix      = "WAVEFIELD"
	DefaultLogName = "wavefield"
)

type Config struct {
	Preset string       `yaml:"preset" mapstructure:"preset"`
	Seed   *float64     `yaml:"seed,omitempty" mapstructure:"seed"`
	Width  float64      `yaml:"width" mapstructure:"width"`
	Height float64      `yaml:"height" mapstructure:"height"`
	FPS    float64      `yaml:"fps" mapstructure:"fps"`
	Frames int          `yaml:"frames" mapstructure:"frames"`
	Cursor CursorConfig `yaml:"cursor" mapstructure:"cursor"`
	Render RenderConfig `yaml:"render" mapstructure:"render"`
	Waves  waves.Params `yaml:"waves" mapstructure:"waves"`
	Logger LoggerConfig `yaml:"logger" mapstructure:"logger"`
}

// CursorConfig scripts pointer input for headless runs.
type CursorConfig struct {
	Path   string  `yaml:"path" mapstructure:"path"`
	Speed  float64 `yaml:"speed" mapstructure:"speed"`
	Radius float64 `yaml:"radius" mapstructure:"radius"`
}

type RenderConfig struct {
	Stroke      string  `yaml:"stroke" mapstructure:"stroke"`
	StrokeWidth float64 `yaml:"stroke_width" mapstructure:"stroke_width"`
}

// LoggerConfig controls the zap logger.
type LoggerConfig struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	AddSource   bool   `yaml:"add_source" mapstructure:"add_source"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	LogFile     string `yaml:"log_file" mapstructure:"log_file"`
	MaxSize     int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups  int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge      int    `yaml:"max_age" mapstructure:"max_age"`
	Compress    bool   `yaml:"compress" mapstructure:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: DefaultPreset,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Frames: DefaultFrames,
		Cursor: CursorConfig{
			Path:   "circle",
			Speed:  1.0,
			Radius: 0.3,
		},
		Render: RenderConfig{
			Stroke:      DefaultStroke,
			StrokeWidth: 1,
		},
		Waves: waves.DefaultParams(),
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: DefaultLogName,
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetDefaults registers every default with v so env overrides resolve
// even for keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	setDefaults(v, DefaultConfig())
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("preset", d.Preset)
	v.SetDefault("width", d.Width)
	v.SetDefault("height", d.Height)
	v.SetDefault("fps", d.FPS)
	v.SetDefault("frames", d.Frames)

	v.SetDefault("cursor.path", d.Cursor.Path)
	v.SetDefault("cursor.speed", d.Cursor.Speed)
	v.SetDefault("cursor.radius", d.Cursor.Radius)

	v.SetDefault("render.stroke", d.Render.Stroke)
	v.SetDefault("render.stroke_width", d.Render.StrokeWidth)

	w := d.Waves
	for key, val := range map[string]any{
		"x_gap": w.XGap, "y_gap": w.YGap, "margin": w.Margin,
		"wave_time_x": w.WaveTimeX, "wave_time_y": w.WaveTimeY,
		"wave_scale_x": w.WaveScaleX, "wave_scale_y": w.WaveScaleY,
		"wave_turn": w.WaveTurn, "wave_amp_x": w.WaveAmpX, "wave_amp_y": w.WaveAmpY,
		"min_radius": w.MinRadius, "falloff_freq": w.FalloffFreq, "force_scale": w.ForceScale,
		"stiffness": w.Stiffness, "damping": w.Damping, "step_scale": w.StepScale,
		"max_offset": w.MaxOffset, "smoothing": w.Smoothing, "max_velocity": w.MaxVelocity,
		"workers": w.Workers,
	} {
		v.SetDefault("waves."+key, val)
	}

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.service_name", d.Logger.ServiceName)
	v.SetDefault("logger.max_size", d.Logger.MaxSize)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age", d.Logger.MaxAge)
}

// NewViper returns a viper instance with defaults and WAVEFIELD_* env
// binding. When path is set the file is read as YAML.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

// FromViper decodes the merged configuration. A named preset replaces the
// defaults, so explicit keys from file, env or flags still win over it.
func FromViper(v *viper.Viper) (*Config, error) {
	if name := v.GetString("preset"); name != "" && name != DefaultPreset {
		p := GetPreset(name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
		}
		setDefaults(v, p)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// An unchanged --seed flag still decodes as 0; only an explicit seed counts.
	cfg.Seed = nil
	if v.IsSet("seed") {
		seed := v.GetFloat64("seed")
		cfg.Seed = &seed
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("size must not be negative, got %gx%g", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %g", c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", c.Frames)
	}
	return c.Waves.Validate()
}

// ValidateRender also requires a finite frame count for a headless render.
// Only a wall-clock paced render may run until interrupted.
func (c *Config) ValidateRender(realtime bool) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Frames == 0 && !realtime {
		return fmt.Errorf("frames must be positive unless rendering in realtime")
	}
	return nil
}
