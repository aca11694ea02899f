package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Ossianbb/WorkoutTimer/internal/workout"
)

// Config holds application settings: the values pre-filled into the setup
// form and the file locations the app writes to.
type Config struct {
	DefaultWorkSeconds          int    `mapstructure:"default_work_seconds"`
	DefaultRestExerciseSeconds  int    `mapstructure:"default_rest_exercise_seconds"`
	DefaultRestCircuitSeconds   int    `mapstructure:"default_rest_circuit_seconds"`
	DefaultTransitionSeconds    int    `mapstructure:"default_transition_seconds"`
	DefaultRepeats              int    `mapstructure:"default_repeats"`
	PresetFile                  string `mapstructure:"preset_file"`
	LogFile                     string `mapstructure:"log_file"`
	LogMaxSizeMB                int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups               int    `mapstructure:"log_max_backups"`
}

// appDir returns the per-user directory the app keeps its files in
func appDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".workout-timer")
}

// Load resolves settings from flags, environment (WORKOUT_TIMER_ prefix), and
// an optional YAML config file, in that order of precedence. A missing config
// file is fine; an unparseable one is an error. Numeric values below their
// documented minimums are clamped rather than rejected.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("workout-timer", pflag.ContinueOnError)
	configFile := flags.String("config", "", "path to config file")
	flags.Int("default-work-seconds", 0, "default exercise duration in seconds")
	flags.Int("default-repeats", 0, "default circuit repeat count")
	flags.String("preset-file", "", "path to the preset store")
	flags.String("log-file", "", "path to the log file")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	v := viper.New()
	v.SetDefault("default_work_seconds", 45)
	v.SetDefault("default_rest_exercise_seconds", 15)
	v.SetDefault("default_rest_circuit_seconds", 60)
	v.SetDefault("default_transition_seconds", 30)
	v.SetDefault("default_repeats", 3)
	v.SetDefault("preset_file", filepath.Join(appDir(), "presets.yaml"))
	v.SetDefault("log_file", filepath.Join(appDir(), "workout-timer.log"))
	v.SetDefault("log_max_size_mb", 5)
	v.SetDefault("log_max_backups", 2)

	v.SetEnvPrefix("WORKOUT_TIMER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(appDir())
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	bindFlag(v, flags, "default-work-seconds", "default_work_seconds")
	bindFlag(v, flags, "default-repeats", "default_repeats")
	bindFlag(v, flags, "preset-file", "preset_file")
	bindFlag(v, flags, "log-file", "log_file")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.clamp()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// bindFlag registers a flag override only when the flag was actually set, so
// flag zero values do not mask config file or env settings
func bindFlag(v *viper.Viper, flags *pflag.FlagSet, flagName, key string) {
	if flag := flags.Lookup(flagName); flag != nil && flag.Changed {
		v.Set(key, flag.Value.String())
	}
}

func (c *Config) clamp() {
	if c.DefaultWorkSeconds < workout.MinWorkSeconds {
		c.DefaultWorkSeconds = workout.MinWorkSeconds
	}
	if c.DefaultRestExerciseSeconds < 0 {
		c.DefaultRestExerciseSeconds = 0
	}
	if c.DefaultRestCircuitSeconds < 0 {
		c.DefaultRestCircuitSeconds = 0
	}
	if c.DefaultTransitionSeconds < 0 {
		c.DefaultTransitionSeconds = 0
	}
	if c.DefaultRepeats < workout.MinRepeats {
		c.DefaultRepeats = workout.MinRepeats
	}
	if c.LogMaxSizeMB < 1 {
		c.LogMaxSizeMB = 1
	}
	if c.LogMaxBackups < 0 {
		c.LogMaxBackups = 0
	}
}

func (c *Config) validate() error {
	if c.PresetFile == "" {
		return fmt.Errorf("preset_file is required")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file is required")
	}
	return nil
}
