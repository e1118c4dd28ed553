package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 100.0
	DefaultIP3      = 0.3
	DefaultC        = 0.2
	DefaultH        = 0.2
)

type Config struct {
	Model      string       `yaml:"model"`
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
	Duration   float64      `yaml:"duration"`
	Param      float64      `yaml:"param"`
	InitState  []float64    `yaml:"init_state"`
	Sweep      *SweepConfig `yaml:"sweep,omitempty"`
}

// SweepConfig describes one bifurcation sweep window. Relax is in
// samples; a negative value counts back from the end of the trace.
type SweepConfig struct {
	ParStart     float64 `yaml:"par_start"`
	ParStop      float64 `yaml:"par_stop"`
	ParTot       int     `yaml:"par_tot"`
	Relax        int     `yaml:"relax"`
	StateIndex   int     `yaml:"state_index"`
	Continuation bool    `yaml:"continuation"`
	Strict       bool    `yaml:"strict"`
	Workers      int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "lirinzel",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Param:      DefaultIP3,
		InitState:  []float64{DefaultC, DefaultH},
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
