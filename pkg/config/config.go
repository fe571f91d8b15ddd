// Package config loads engine settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"stundenplan/internal/schedule"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log    LogConfig
	Solver SolverConfig

	// Schedule carries the term weights and parameters handed to the
	// compiler.
	Schedule schedule.Config
}

type LogConfig struct {
	Level  string
	Format string
}

type SolverConfig struct {
	TimeLimit    time.Duration
	FindConflict bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	cfg.Env = v.GetString("ENV")
	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}
	cfg.Solver = SolverConfig{
		TimeLimit:    parseDuration(v.GetString("SOLVER_TIME_LIMIT"), 0),
		FindConflict: v.GetBool("SOLVER_FIND_CONFLICT"),
	}

	cfg.Schedule = schedule.DefaultConfig()
	switch strings.ToLower(v.GetString("COVERAGE_MODE")) {
	case "once":
		cfg.Schedule.Coverage = schedule.CoverAtLeastOnce
	case "soft":
		cfg.Schedule.Coverage = schedule.CoverSoft
	default:
		cfg.Schedule.Coverage = schedule.CoverExact
	}
	cfg.Schedule.DropPenalty = v.GetFloat64("DROP_PENALTY")
	cfg.Schedule.Params.MaxConsecutive = v.GetInt("MAX_CONSECUTIVE")
	cfg.Schedule.Params.MinFreeDays = v.GetInt("MIN_FREE_DAYS")
	cfg.Schedule.Params.LateSlotsPerDay = v.GetInt("LATE_SLOTS_PER_DAY")
	cfg.Schedule.Params.MaxClassesPerDay = v.GetInt("MAX_CLASSES_PER_DAY")

	if err := cfg.ApplyWeights(v.GetString("WEIGHTS")); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyWeights layers a "NAME=value,NAME=value" override list on top of the
// configured soft-term weights. A zero weight disables the term. Unknown term
// names are rejected.
func (cfg *Config) ApplyWeights(raw string) error {
	overrides, err := parseWeights(raw)
	if err != nil {
		return err
	}
	for name, weight := range overrides {
		if _, known := cfg.Schedule.Weights[name]; !known {
			return fmt.Errorf("unknown soft term %q in WEIGHTS", name)
		}
		cfg.Schedule.Weights[name] = weight
		cfg.Schedule.Enabled[name] = weight != 0
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("SOLVER_TIME_LIMIT", "")
	v.SetDefault("SOLVER_FIND_CONFLICT", true)

	v.SetDefault("COVERAGE_MODE", "exact")
	v.SetDefault("DROP_PENALTY", 1e6)
	v.SetDefault("MAX_CONSECUTIVE", 3)
	v.SetDefault("MIN_FREE_DAYS", 1)
	v.SetDefault("LATE_SLOTS_PER_DAY", 1)
	v.SetDefault("MAX_CLASSES_PER_DAY", 3)
	v.SetDefault("WEIGHTS", "")
}

// parseWeights reads "NAME=value,NAME=value" override lists.
func parseWeights(raw string) (map[string]float64, error) {
	weights := map[string]float64{}
	if strings.TrimSpace(raw) == "" {
		return weights, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("invalid weight override %q", pair)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight override %q: %w", pair, err)
		}
		weights[strings.ToUpper(strings.TrimSpace(name))] = weight
	}
	return weights, nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
