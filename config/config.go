// Package config loads engine configuration from YAML, following the
// teacher's LoadConfig shape (a File/Config pair unmarshaled with
// yaml.v2, zero values defaulted after unmarshal).
package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/agm-labs/abr/agent"
	"github.com/agm-labs/abr/contraction"
)

// File is the on-disk document shape: a single top-level key wrapping
// the engine's settings, mirroring the teacher's almOperator envelope.
type File struct {
	Engine Config `yaml:"engine"`
}

// Config holds the options of spec §6's configuration table plus
// contraction_algorithm, which selects partial-meet or linear
// contraction.
type Config struct {
	ProverTimeoutMS      int    `yaml:"prover_timeout_ms"`
	NormalizerTimeoutMS  int    `yaml:"normalizer_timeout_ms"`
	MaxClauses           int    `yaml:"max_clauses"`
	MaxIterations        int    `yaml:"max_iterations"`
	RemainderSearchCap   int    `yaml:"remainder_search_cap"`
	DefaultSelector      string `yaml:"default_selector"`
	TieBreak             string `yaml:"tie_break"`
	ContractionAlgorithm string `yaml:"contraction_algorithm"`
}

// LoadConfig reads and parses the YAML file at cfgPath, defaulting any
// zero-valued option to spec §6's stated default.
func LoadConfig(cfgPath string) (*Config, error) {
	f, err := os.Open(os.ExpandEnv(cfgPath))
	if err != nil {
		return nil, errors.Wrapf(err, "opening config file %q", cfgPath)
	}
	defer f.Close()

	d, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %q", cfgPath)
	}

	var cfgFile File
	if err := yaml.Unmarshal(d, &cfgFile); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %q", cfgPath)
	}

	cfg := &cfgFile.Engine
	applyDefaults(cfg)
	return cfg, nil
}

// Default returns spec §6's default configuration, for callers that
// have no config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.ProverTimeoutMS <= 0 {
		cfg.ProverTimeoutMS = 10000
	}
	if cfg.NormalizerTimeoutMS <= 0 {
		cfg.NormalizerTimeoutMS = 5000
	}
	if cfg.MaxClauses <= 0 {
		cfg.MaxClauses = 10000
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 100
	}
	if cfg.RemainderSearchCap <= 0 {
		cfg.RemainderSearchCap = 20
	}
	if cfg.DefaultSelector == "" {
		cfg.DefaultSelector = string(contraction.SelectAll)
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = string(contraction.TieBreakLexicographic)
	}
	if cfg.ContractionAlgorithm == "" {
		cfg.ContractionAlgorithm = string(contraction.AlgorithmPartialMeet)
	}
}

// AgentConfig translates a loaded Config into an agent.Config.
func (cfg *Config) AgentConfig() agent.Config {
	return agent.Config{
		ProverTimeout:        time.Duration(cfg.ProverTimeoutMS) * time.Millisecond,
		NormalizerTimeout:    time.Duration(cfg.NormalizerTimeoutMS) * time.Millisecond,
		MaxClauses:           cfg.MaxClauses,
		MaxIterations:        cfg.MaxIterations,
		RemainderSearchCap:   cfg.RemainderSearchCap,
		DefaultSelector:      contraction.Selector(cfg.DefaultSelector),
		TieBreak:             contraction.TieBreak(cfg.TieBreak),
		ContractionAlgorithm: contraction.Algorithm(cfg.ContractionAlgorithm),
	}
}
