// Package config loads regform settings from a YAML file and REGFORM_
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. REGFORM_SERVER_ADDR.
const EnvPrefix = "REGFORM"

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Catalog    CatalogConfig    `mapstructure:"catalog" yaml:"catalog"`
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation"`
	Session    SessionConfig    `mapstructure:"session" yaml:"session"`
	Theme      ThemeConfig      `mapstructure:"theme" yaml:"theme"`
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	// AllowedOrigins are host patterns accepted on the live endpoint besides
	// same-origin requests. "*" disables the check.
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ReadLimit      int64    `mapstructure:"read_limit" yaml:"read_limit"`
}

type CatalogConfig struct {
	// Path to a locations YAML file. Empty uses the embedded catalog.
	Path string `mapstructure:"path" yaml:"path"`
}

type ValidationConfig struct {
	// Strict enables email, phone and age format checks.
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// StrictOptions rejects select values outside the current options.
	StrictOptions bool     `mapstructure:"strict_options" yaml:"strict_options"`
	Genders       []string `mapstructure:"genders" yaml:"genders"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl" yaml:"ttl"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval" yaml:"janitor_interval"`
}

// ThemeConfig names the theme and its password strength colours.
type ThemeConfig struct {
	Name     string         `mapstructure:"name" yaml:"name"`
	Strength StrengthColors `mapstructure:"strength" yaml:"strength"`
}

type StrengthColors struct {
	Weak   string `mapstructure:"weak" yaml:"weak"`
	Medium string `mapstructure:"medium" yaml:"medium"`
	Strong string `mapstructure:"strong" yaml:"strong"`
}

// Tokens flattens the theme into go-theme style token names.
func (t ThemeConfig) Tokens() map[string]string {
	tokens := make(map[string]string, 3)
	for name, value := range map[string]string{
		"strength.weak":   t.Strength.Weak,
		"strength.medium": t.Strength.Medium,
		"strength.strong": t.Strength.Strong,
	} {
		if strings.TrimSpace(value) != "" {
			tokens[name] = value
		}
	}
	return tokens
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers every key so environment overrides resolve during
// Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.read_limit", 64<<10)

	v.SetDefault("catalog.path", "")

	v.SetDefault("validation.strict", false)
	v.SetDefault("validation.strict_options", false)
	v.SetDefault("validation.genders", []string{"Male", "Female", "Other"})

	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.janitor_interval", "1m")

	v.SetDefault("theme.name", "default")
	v.SetDefault("theme.strength.weak", "")
	v.SetDefault("theme.strength.medium", "")
	v.SetDefault("theme.strength.strong", "")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "regform")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
}

// NewDefaultConfig returns the configuration with only defaults applied.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: unmarshal defaults: %v", err))
	}
	return &cfg
}

// BindEnv enables REGFORM_ prefixed overrides on v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper binds the environment, unmarshals and validates.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	BindEnv(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}

// NewViper returns a viper instance with defaults applied and path (or
// ./regform.yaml when empty and present) read on top.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("regform")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}
	return v, nil
}

// Load is NewViper followed by NewConfigFromViper.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return NewConfigFromViper(v)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ReadLimit <= 0 {
		errs = append(errs, errors.New("server.read_limit must be positive"))
	}
	if c.Session.TTL < 0 {
		errs = append(errs, errors.New("session.ttl must not be negative"))
	}
	if c.Session.JanitorInterval <= 0 {
		errs = append(errs, errors.New("session.janitor_interval must be positive"))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logger.format %q must be console or json", c.Logger.Format))
	}
	return errors.Join(errs...)
}
