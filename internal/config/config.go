// Package config loads the fathomtune CLI's configuration: a YAML file
// (optional), overridden by FATHOMTUNE_-prefixed environment variables,
// validated with struct tags before use.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"
)

// TuneConfig holds the tuning CLI's configuration (spec §4.7).
type TuneConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity.
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// CorpusPath points at the directory of labeled fixture documents
	// the tune and validate subcommands train and score against.
	CorpusPath string `koanf:"corpus_path" validate:"required"`

	// CoefficientsPath is where tuned coefficients are written (tune)
	// or read from (validate, cluster-preview).
	CoefficientsPath string `koanf:"coefficients_path" validate:"required"`

	// InitialTemperature, CoolingSteps, CoolingFraction, and
	// StepsPerTemp configure the annealing schedule (spec §4.5).
	InitialTemperature float64 `koanf:"initial_temperature" validate:"required,gt=0"`
	CoolingSteps       int     `koanf:"cooling_steps" validate:"required,gte=1"`
	CoolingFraction    float64 `koanf:"cooling_fraction" validate:"required,gt=0,lt=1"`
	StepsPerTemp       int     `koanf:"steps_per_temp" validate:"required,gte=1"`

	// SplittingDistance is the default bestCluster cutoff used by
	// cluster-preview when no ruleset-specific override applies.
	SplittingDistance float64 `koanf:"splitting_distance" validate:"required,gt=0"`
}

func defaults() TuneConfig {
	return TuneConfig{
		Env:                "prod",
		LogLevel:           "info",
		CorpusPath:         "./corpus",
		CoefficientsPath:   "./coefficients.yaml",
		InitialTemperature: 5000,
		CoolingSteps:       5000,
		CoolingFraction:    0.95,
		StepsPerTemp:       1000,
		SplittingDistance:  4,
	}
}

// Load reads configFile (if non-empty) as YAML, layers
// FATHOMTUNE_-prefixed environment variables on top, and validates the
// result. An empty configFile is not an error; defaults plus env vars
// alone are a valid configuration. A non-empty configFile that cannot be
// loaded (including one that does not exist) is an error.
func Load(configFile string) (*TuneConfig, error) {
	k := koanf.New(".")
	var errs error

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("loading defaults: %w", err))
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("loading config file %s: %w", configFile, err))
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: "FATHOMTUNE_",
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, "FATHOMTUNE_")), value
		},
	}), nil)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("loading env: %w", err))
	}
	if errs != nil {
		return nil, errs
	}

	var cfg TuneConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}
