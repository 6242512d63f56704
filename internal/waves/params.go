package waves

import "fmt"

// Params collects every tunable constant of the field.
type Params struct {
	// grid layout
	XGap   float64 `yaml:"x_gap" mapstructure:"x_gap"`
	YGap   float64 `yaml:"y_gap" mapstructure:"y_gap"`
	Margin float64 `yaml:"margin" mapstructure:"margin"`

	// noise-driven wave
	WaveTimeX  float64 `yaml:"wave_time_x" mapstructure:"wave_time_x"`
	WaveTimeY  float64 `yaml:"wave_time_y" mapstructure:"wave_time_y"`
	WaveScaleX float64 `yaml:"wave_scale_x" mapstructure:"wave_scale_x"`
	WaveScaleY float64 `yaml:"wave_scale_y" mapstructure:"wave_scale_y"`
	WaveTurn   float64 `yaml:"wave_turn" mapstructure:"wave_turn"`
	WaveAmpX   float64 `yaml:"wave_amp_x" mapstructure:"wave_amp_x"`
	WaveAmpY   float64 `yaml:"wave_amp_y" mapstructure:"wave_amp_y"`

	// cursor force
	MinRadius   float64 `yaml:"min_radius" mapstructure:"min_radius"`
	FalloffFreq float64 `yaml:"falloff_freq" mapstructure:"falloff_freq"`
	ForceScale  float64 `yaml:"force_scale" mapstructure:"force_scale"`

	// spring integration
	Stiffness float64 `yaml:"stiffness" mapstructure:"stiffness"`
	Damping   float64 `yaml:"damping" mapstructure:"damping"`
	StepScale float64 `yaml:"step_scale" mapstructure:"step_scale"`
	MaxOffset float64 `yaml:"max_offset" mapstructure:"max_offset"`

	// cursor smoothing
	Smoothing   float64 `yaml:"smoothing" mapstructure:"smoothing"`
	MaxVelocity float64 `yaml:"max_velocity" mapstructure:"max_velocity"`

	// Workers > 1 splits each step across goroutines.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

func DefaultParams() Params {
	return Params{
		XGap:   8,
		YGap:   10,
		Margin: 100,

		WaveTimeX:  0.008,
		WaveTimeY:  0.004,
		WaveScaleX: 0.003,
		WaveScaleY: 0.002,
		WaveTurn:   8,
		WaveAmpX:   20,
		WaveAmpY:   8,

		MinRadius:   200,
		FalloffFreq: 0.002,
		ForceScale:  0.0008,

		Stiffness: 0.008,
		Damping:   0.92,
		StepScale: 1.5,
		MaxOffset: 80,

		Smoothing:   0.1,
		MaxVelocity: 100,

		Workers: 1,
	}
}

func (p Params) Validate() error {
	if p.XGap <= 0 || p.YGap <= 0 {
		return fmt.Errorf("%w: gaps must be positive, got %g x %g", ErrInvalidParams, p.XGap, p.YGap)
	}
	if p.Margin < 0 {
		return fmt.Errorf("%w: margin must not be negative, got %g", ErrInvalidParams, p.Margin)
	}
	if p.MinRadius <= 0 {
		return fmt.Errorf("%w: min radius must be positive, got %g", ErrInvalidParams, p.MinRadius)
	}
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("%w: damping must be in (0, 1], got %g", ErrInvalidParams, p.Damping)
	}
	if p.MaxOffset <= 0 {
		return fmt.Errorf("%w: max offset must be positive, got %g", ErrInvalidParams, p.MaxOffset)
	}
	if p.Smoothing <= 0 || p.Smoothing > 1 {
		return fmt.Errorf("%w: smoothing must be in (0, 1], got %g", ErrInvalidParams, p.Smoothing)
	}
	if p.MaxVelocity < 0 {
		return fmt.Errorf("%w: max velocity must not be negative, got %g", ErrInvalidParams, p.MaxVelocity)
	}
	return nil
}
