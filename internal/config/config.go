// Package config provides Viper-based configuration loading for the fight
// simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a zap sink: "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// MatchConfig bounds a match.
type MatchConfig struct {
	RoundsToWin int `mapstructure:"rounds_to_win"`
	MaxRounds   int `mapstructure:"max_rounds"`
	TurnLimit   int `mapstructure:"turn_limit"`
	// Seed fixes the random source; 0 uses crypto/rand.
	Seed uint64 `mapstructure:"seed"`
}

// AIConfig selects and tunes the CPU strategy.
type AIConfig struct {
	// Strategy is "random" or "tactical".
	Strategy       string  `mapstructure:"strategy"`
	FinisherHealth int     `mapstructure:"finisher_health"`
	CriticalRatio  float64 `mapstructure:"critical_ratio"`
}

// ContentConfig locates fighter and script content on disk.
type ContentConfig struct {
	FightersDir string `mapstructure:"fighters_dir"`
	// ScriptsDir is optional; empty disables scripted archetypes.
	ScriptsDir string `mapstructure:"scripts_dir"`
}

// ScriptingConfig bounds Lua execution.
type ScriptingConfig struct {
	// InstructionLimit is the opcode budget per script load or hook call.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// ConsoleConfig controls terminal presentation.
type ConsoleConfig struct {
	Color bool `mapstructure:"color"`
	// TurnDelay pauses between CPU-only turns so the fight can be followed.
	TurnDelay time.Duration `mapstructure:"turn_delay"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Match     MatchConfig     `mapstructure:"match"`
	AI        AIConfig        `mapstructure:"ai"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Console   ConsoleConfig   `mapstructure:"console"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateLogging(c.Logging),
		validateMatch(c.Match),
		validateAI(c.AI),
		validateContent(c.Content),
		validateScripting(c.Scripting),
		validateConsole(c.Console),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateMatch(m MatchConfig) error {
	var errs []string
	if m.RoundsToWin < 1 {
		errs = append(errs, fmt.Sprintf("match.rounds_to_win must be >= 1, got %d", m.RoundsToWin))
	}
	if m.MaxRounds < m.RoundsToWin {
		errs = append(errs, fmt.Sprintf("match.max_rounds must be >= match.rounds_to_win, got %d < %d", m.MaxRounds, m.RoundsToWin))
	}
	if m.TurnLimit < 1 {
		errs = append(errs, fmt.Sprintf("match.turn_limit must be >= 1, got %d", m.TurnLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateAI(a AIConfig) error {
	var errs []string
	validStrategies := map[string]bool{"random": true, "tactical": true}
	if !validStrategies[a.Strategy] {
		errs = append(errs, fmt.Sprintf("ai.strategy must be one of [random, tactical], got %q", a.Strategy))
	}
	if a.FinisherHealth < 0 {
		errs = append(errs, fmt.Sprintf("ai.finisher_health must be >= 0, got %d", a.FinisherHealth))
	}
	if a.CriticalRatio < 0 || a.CriticalRatio > 1 {
		errs = append(errs, fmt.Sprintf("ai.critical_ratio must be within [0, 1], got %g", a.CriticalRatio))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.FightersDir == "" {
		return errors.New("content.fighters_dir must not be empty")
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 1 {
		return fmt.Errorf("scripting.instruction_limit must be >= 1, got %d", s.InstructionLimit)
	}
	return nil
}

func validateConsole(c ConsoleConfig) error {
	if c.TurnDelay < 0 {
		return errors.New("console.turn_delay must not be negative")
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and
// environment overrides only.
//
// Precondition: path must be empty or a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with FIGHT_ prefix
	v.SetEnvPrefix("FIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("match.rounds_to_win", 2)
	v.SetDefault("match.max_rounds", 9)
	v.SetDefault("match.turn_limit", 30)
	v.SetDefault("match.seed", 0)

	v.SetDefault("ai.strategy", "tactical")
	v.SetDefault("ai.finisher_health", 50)
	v.SetDefault("ai.critical_ratio", 0.3)

	v.SetDefault("content.fighters_dir", "content/fighters")
	v.SetDefault("content.scripts_dir", "content/scripts")

	v.SetDefault("scripting.instruction_limit", 100000)

	v.SetDefault("console.color", true)
	v.SetDefault("console.turn_delay", "0s")
}
