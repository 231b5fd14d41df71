package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.005
	DefaultDuration    = 10.0
	DefaultSampleEvery = 10
	DefaultModel       = "chain_cavity"
	DefaultIntegrator  = "rk4"
)

type Config struct {
	Model       string             `yaml:"model"`
	Integrator  string             `yaml:"integrator"`
	Dt          float64            `yaml:"dt"`
	Duration    float64            `yaml:"duration"`
	SampleEvery int                `yaml:"sample_every"`
	Adaptive    bool               `yaml:"adaptive"`
	Tolerance   float64            `yaml:"tolerance"`
	Observables []string           `yaml:"observables"`
	Params      map[string]float64 `yaml:"params"`
	Figure      FigureConfig       `yaml:"figure"`
	CSV         bool               `yaml:"csv"`
}

type FigureConfig struct {
	Disable bool    `yaml:"disable"`
	Width   float64 `yaml:"width"`  // inches
	Height  float64 `yaml:"height"` // inches
}

func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Integrator:  DefaultIntegrator,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
		CSV:         true,
		Figure: FigureConfig{
			Width:  10,
			Height: 8,
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
