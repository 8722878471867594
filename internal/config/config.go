package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxParticles = 2000
	DefaultTypeCount    = 5
	DefaultWorldSize    = 800.0
	DefaultFixedStepMS  = 16.0
	DefaultDamping      = 0.98
	DefaultElasticity   = 0.8
	DefaultCount        = 800
)

// Config describes a whole simulation setup: world extents, store
// sizing, clock rate, integrator settings, and the rule preset to
// install at startup.
type Config struct {
	MaxParticles int     `yaml:"max_particles"`
	TypeCount    int     `yaml:"type_count"`
	Count        int     `yaml:"count"`
	Seed         int64   `yaml:"seed"`
	FixedStepMS  float64 `yaml:"fixed_step_ms"`
	TimeScale    float64 `yaml:"time_scale"`

	World      WorldConfig      `yaml:"world"`
	Integrator IntegratorConfig `yaml:"integrator"`
	Rules      RulesConfig      `yaml:"rules"`
	Forces     ForcesConfig     `yaml:"forces"`
}

type WorldConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type IntegratorConfig struct {
	Scheme     string  `yaml:"scheme"`
	Boundary   string  `yaml:"boundary"`
	Damping    float64 `yaml:"damping"`
	SubSteps   int     `yaml:"sub_steps"`
	Elasticity float64 `yaml:"elasticity"`
}

// RulesConfig names either a built-in preset or "random", in which
// case RandomStrength and ActivationDistance feed the generator.
type RulesConfig struct {
	Preset             string  `yaml:"preset"`
	RandomStrength     float64 `yaml:"random_strength"`
	ActivationDistance float64 `yaml:"activation_distance"`
}

type ForcesConfig struct {
	GravityY float64 `yaml:"gravity_y"`
	Drag     float64 `yaml:"drag"`
	Vortex   float64 `yaml:"vortex"`
}

func DefaultConfig() *Config {
	return &Config{
		MaxParticles: DefaultMaxParticles,
		TypeCount:    DefaultTypeCount,
		Count:        DefaultCount,
		FixedStepMS:  DefaultFixedStepMS,
		TimeScale:    1,
		World: WorldConfig{
			Width:  DefaultWorldSize,
			Height: DefaultWorldSize,
		},
		Integrator: IntegratorConfig{
			Scheme:     "euler",
			Boundary:   "wrap",
			Damping:    DefaultDamping,
			SubSteps:   1,
			Elasticity: DefaultElasticity,
		},
		Rules: RulesConfig{
			Preset:             "random",
			RandomStrength:     1.0,
			ActivationDistance: 60,
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
