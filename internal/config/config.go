// Package config holds the runtime configuration for bpvc, loaded from a
// config file, environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the fully-resolved configuration for one invocation.
type Config struct {
	ContextLines int  `mapstructure:"context_lines"`
	Backup       bool `mapstructure:"backup"`
	AssumeYes    bool `mapstructure:"assume_yes"`
	Plain        bool `mapstructure:"plain"`
	Debug        bool `mapstructure:"debug"`
}

// Global is the configuration in effect for this process. Commands set it
// once at startup; logger and formatting helpers read it.
var Global Config

// IsPlain reports whether colored/symbol output is disabled.
func IsPlain() bool {
	return Global.Plain
}

// IsDebug reports whether debug logging is enabled.
func IsDebug() bool {
	return Global.Debug
}

// Load reads configuration with the precedence: defaults < config file <
// BPVC_* environment variables. A missing config file is not an error; an
// unreadable or invalid one is.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("context_lines", 3)
	v.SetDefault("backup", false)
	v.SetDefault("assume_yes", false)
	v.SetDefault("plain", false)
	v.SetDefault("debug", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	for _, dir := range configDirs() {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("BPVC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ContextLines < 0 {
		return Config{}, fmt.Errorf("context_lines must be >= 0, got %d", cfg.ContextLines)
	}
	return cfg, nil
}

// configDirs lists the directories searched for config.toml, highest
// precedence first.
func configDirs() []string {
	var dirs []string
	if env := os.Getenv("BPVC_CONFIG_DIR"); env != "" {
		dirs = append(dirs, env)
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userDir, "bpvc"))
	}
	return dirs
}
