// Package config resolves fluxion settings from defaults, an optional YAML
// file and FLUXION_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	DBPath         string `mapstructure:"db"`
	RoutineFile    string `mapstructure:"routine_file"`
	DailyGoalMin   int    `mapstructure:"daily_goal_min"`
	LogUseCases    bool   `mapstructure:"log_use_cases"`
	APIAddr        string `mapstructure:"api_addr"`
	ExtendMinutes  int    `mapstructure:"extend_minutes"`
	DefaultTarget  int    `mapstructure:"default_target_min"`
	ConfigFileUsed string `mapstructure:"-"`
}

// Dir returns ~/.fluxion, or ./.fluxion when no home directory is known.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fluxion"
	}
	return filepath.Join(home, ".fluxion")
}

// FilePath is the default location of the optional config file.
func FilePath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DBPath:        filepath.Join(Dir(), "fluxion.db"),
		DailyGoalMin:  120,
		APIAddr:       "127.0.0.1:7420",
		ExtendMinutes: 5,
		DefaultTarget: 30,
	}
}

// Load merges the default config file (if present) and the environment
// over the defaults.
func Load() (*Config, error) {
	return LoadFrom(FilePath())
}

// LoadFrom is Load with an explicit config file path. A missing file is not
// an error.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return err
	}
	cfg.ConfigFileUsed = path
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FLUXION_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FLUXION_ROUTINE_FILE"); v != "" {
		cfg.RoutineFile = v
	}
	if v := os.Getenv("FLUXION_DAILY_GOAL_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DailyGoalMin = n
		}
	}
	if v := os.Getenv("FLUXION_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FLUXION_API_ADDR"); v != "" {
		cfg.APIAddr = v
	}
	if v := os.Getenv("FLUXION_EXTEND_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ExtendMinutes = n
		}
	}
	if v := os.Getenv("FLUXION_DEFAULT_TARGET_MIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultTarget = n
		}
	}
}
