// Package config loads vsdxstruct settings from a config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by viper.
const EnvPrefix = "VSDXSTRUCT"

// Config is the root configuration.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig names the console color of each log level.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// ExtractionConfig controls what is extracted from a drawing.
type ExtractionConfig struct {
	// Mode is light, standard or verbose.
	Mode string `mapstructure:"mode" yaml:"mode"`
	// Workers bounds the number of shapes compiled concurrently.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// Markup enables HTML text markup. Unset follows the mode.
	Markup *bool `mapstructure:"markup" yaml:"markup"`
	// Data enables shape data export. Unset follows the mode.
	Data *bool `mapstructure:"data" yaml:"data"`
}

// OutputConfig controls serialization.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "vsdxstruct")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")

	// -- Extraction --
	v.SetDefault("extraction.mode", "standard")
	v.SetDefault("extraction.workers", 4)

	// -- Output --
	v.SetDefault("output.format", "json")
	v.SetDefault("output.pretty", false)
}

// NewViper returns a viper instance with defaults, the environment and the
// config file search path set up. cfgFile, when not empty, overrides the
// search.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("expanding config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("vsdxstruct")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".vsdxstruct"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return v, nil
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Logger.LogFile != "" {
		path, err := homedir.Expand(cfg.Logger.LogFile)
		if err != nil {
			return nil, fmt.Errorf("expanding log file path: %w", err)
		}
		cfg.Logger.LogFile = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// NewDefaultConfig returns the configuration with every default applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := NewConfigFromViper(v)
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	switch c.Extraction.Mode {
	case "light", "standard", "verbose":
	default:
		return fmt.Errorf("extraction.mode must be light, standard or verbose, got %q", c.Extraction.Mode)
	}
	if c.Extraction.Workers <= 0 {
		return fmt.Errorf("extraction.workers must be a positive integer")
	}
	switch c.Output.Format {
	case "json", "xlsx":
	default:
		return fmt.Errorf("output.format must be json or xlsx, got %q", c.Output.Format)
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be json or console, got %q", c.Logger.Format)
	}
	return nil
}
