// Package config provides configuration management for the website tooling
// using Viper for loading from files, environment variables, and
// command-line flags.
//
// Values come from .crabbysite.yml, CRABBYSITE_ environment variables and
// flags bound by the cmd package. Load applies defaults and validates the
// result.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	siteerrors "github.com/crabby-lang/website/internal/errors"
	"github.com/crabby-lang/website/internal/logging"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "CRABBYSITE"

type Config struct {
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Site        SiteConfig        `mapstructure:"site" yaml:"site"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Development DevelopmentConfig `mapstructure:"development" yaml:"development"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port" yaml:"port"`
	Host           string   `mapstructure:"host" yaml:"host"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type SiteConfig struct {
	Title        string `mapstructure:"title" yaml:"title"`
	Tagline      string `mapstructure:"tagline" yaml:"tagline"`
	FeaturesFile string `mapstructure:"features_file" yaml:"features_file"`
	AssetsDir    string `mapstructure:"assets_dir" yaml:"assets_dir"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type DevelopmentConfig struct {
	HotReload bool `mapstructure:"hot_reload" yaml:"hot_reload"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("site.title", "Crabby")
	v.SetDefault("site.tagline", "A simple, efficient and versatile programming language")
	v.SetDefault("site.features_file", "")
	v.SetDefault("site.assets_dir", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("development.hot_reload", true)
}

// LoadFrom reads the configuration from v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, siteerrors.NewConfigError(siteerrors.CodeInvalidConfig, "decoding configuration").WithCause(err)
	}

	// Flags bound as "log-level" sit outside the logging section.
	if v.IsSet("log-level") && v.GetString("log-level") != "" {
		config.Logging.Level = v.GetString("log-level")
	}
	if v.IsSet("log-format") && v.GetString("log-format") != "" {
		config.Logging.Format = v.GetString("log-format")
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Addr returns host:port for the preview server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LoggerConfig converts the logging section for logging.NewLogger.
func (c *Config) LoggerConfig() *logging.LoggerConfig {
	level, _ := logging.ParseLevel(c.Logging.Level)
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = c.Logging.Format
	return lc
}

// validateConfig validates configuration values for security and correctness
func validateConfig(config *Config) error {
	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := validateSiteConfig(&config.Site); err != nil {
		return fmt.Errorf("site config: %w", err)
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

var dangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}

func validateServerConfig(config *ServerConfig) error {
	// 0 lets the OS pick a port, which tests rely on.
	if config.Port < 0 || config.Port > 65535 {
		return siteerrors.NewConfigError(siteerrors.CodeInvalidConfig,
			fmt.Sprintf("port %d is not in valid range 0-65535", config.Port)).
			WithContext("port", config.Port)
	}

	for _, char := range dangerousChars {
		if strings.Contains(config.Host, char) {
			return siteerrors.NewConfigError(siteerrors.CodeInvalidConfig,
				fmt.Sprintf("host contains dangerous character: %s", char))
		}
	}

	return nil
}

func validateSiteConfig(config *SiteConfig) error {
	if config.FeaturesFile != "" {
		if err := validatePath(config.FeaturesFile); err != nil {
			return fmt.Errorf("features_file: %w", err)
		}
	}
	if config.AssetsDir != "" {
		if err := validatePath(config.AssetsDir); err != nil {
			return fmt.Errorf("assets_dir: %w", err)
		}
	}
	return nil
}

func validateLoggingConfig(config *LoggingConfig) error {
	if _, err := logging.ParseLevel(config.Level); err != nil {
		return siteerrors.NewConfigError(siteerrors.CodeInvalidConfig, err.Error())
	}
	switch config.Format {
	case "", "text", "json":
		return nil
	default:
		return siteerrors.NewConfigError(siteerrors.CodeInvalidConfig,
			fmt.Sprintf("unknown log format %q (supported: text, json)", config.Format))
	}
}

// validatePath validates a file path for security
func validatePath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return siteerrors.NewConfigError(siteerrors.CodeInvalidConfig, "path contains traversal").WithPath(path)
	}

	for _, char := range dangerousChars[:len(dangerousChars)-1] {
		if strings.Contains(cleanPath, char) {
			return siteerrors.NewConfigError(siteerrors.CodeInvalidConfig,
				fmt.Sprintf("path contains dangerous character: %s", char)).WithPath(path)
		}
	}

	return nil
}
