// Package config loads process configuration for the longfellow CLIs from
// flags, environment variables, and defaults, following the
// pflag+viper+mapstructure pattern the teacher's cmd/davinci-sequencer uses,
// adapted to bind against a cobra command's own flag set rather than the
// global flag.CommandLine so multiple subcommands can each carry their own
// config.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel  = "info"
	defaultLogOutput = "stdout"
	defaultDatadir   = ".longfellow"
	defaultSystem    = "mdoc"
	defaultTimeout   = 30 * time.Second
)

// LogConfig holds logging configuration, mirroring the teacher's LogConfig.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Config holds the configuration shared by the longfellow CLIs.
type Config struct {
	Log     LogConfig
	Datadir string        `mapstructure:"datadir"`
	System  string        `mapstructure:"system"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RegisterFlags adds this package's flags to fs (typically a cobra
// command's cmd.Flags()), so Load can later bind and unmarshal them.
func RegisterFlags(fs *flag.FlagSet) {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		userHomeDir = "."
	}
	defaultDatadirPath := filepath.Join(userHomeDir, defaultDatadir)

	fs.StringP("log.level", "l", defaultLogLevel, "log level (debug, info, warn, error, fatal)")
	fs.StringP("log.output", "o", defaultLogOutput, "log output (stdout, stderr or filepath)")
	fs.StringP("datadir", "d", defaultDatadirPath, "data directory for circuit artifacts")
	fs.StringP("system", "s", defaultSystem, "zkspec system name (e.g. mdoc)")
	fs.Duration("timeout", defaultTimeout, "operation timeout")
}

// Load binds fs's flags (already parsed by cobra) plus environment
// variables under envPrefix, and unmarshals the result into a Config.
func Load(fs *flag.FlagSet, envPrefix string) (*Config, error) {
	v := viper.New()

	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		userHomeDir = "."
	}
	defaultDatadirPath := filepath.Join(userHomeDir, defaultDatadir)

	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)
	v.SetDefault("datadir", defaultDatadirPath)
	v.SetDefault("system", defaultSystem)
	v.SetDefault("timeout", defaultTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: error binding flags: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: error unmarshaling config: %w", err)
	}
	return cfg, nil
}
