// Package config defines the portsight configuration model: defaults,
// YAML loading, and validation. The CLI layers viper on top for config
// file discovery and environment overrides; this package owns the
// structure and the rules.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "github.com/portsight/portsight/internal/errors"
	"github.com/portsight/portsight/internal/scanning"
)

const (
	configDirPerm  = 0755
	configFilePerm = 0644
)

// Duration wraps time.Duration so YAML configs can use human-readable
// values like "500ms" or "2s".
type Duration time.Duration

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts either a duration string or raw nanoseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return apperrors.NewConfigFieldError(apperrors.CodeValidation,
				"invalid duration", "timeout", s)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return apperrors.NewConfigFieldError(apperrors.CodeValidation,
			"invalid duration", "timeout", value.Value)
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the complete portsight configuration.
type Config struct {
	Scanning ScanningConfig `yaml:"scanning" json:"scanning"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Output   OutputConfig   `yaml:"output" json:"output"`
}

// ScanningConfig holds scan engine settings.
type ScanningConfig struct {
	// Default port profile used when no explicit ports are given.
	DefaultProfile string `yaml:"default_profile" json:"default_profile" validate:"omitempty,oneof=recon core full"`

	// Per-probe timeout.
	Timeout Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`

	// Maximum in-flight probes per target.
	Concurrency int `yaml:"concurrency" json:"concurrency" validate:"gte=1,lte=4096"`

	// Maximum targets scanned at once.
	TargetConcurrency int `yaml:"target_concurrency" json:"target_concurrency" validate:"gte=1,lte=256"`

	// Banner read budget in bytes; 0 disables banner capture.
	BannerBytes int `yaml:"banner_bytes" json:"banner_bytes" validate:"gte=0,lte=4096"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`
	Output string `yaml:"output" json:"output"`
}

// OutputConfig holds report rendering settings.
type OutputConfig struct {
	// Format selects the default renderer: text or json.
	Format string `yaml:"format" json:"format" validate:"oneof=text json"`

	// ServiceScheme forces the scheme for exported service URLs;
	// empty means infer from the port.
	ServiceScheme string `yaml:"service_scheme" json:"service_scheme" validate:"omitempty,oneof=http https"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scanning: ScanningConfig{
			DefaultProfile:    "recon",
			Timeout:           Duration(scanning.DefaultTimeout),
			Concurrency:       scanning.DefaultConcurrency,
			TargetConcurrency: scanning.DefaultTargetConcurrency,
			BannerBytes:       scanning.DefaultBannerBytes,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, starting from defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.WrapConfigError(apperrors.CodeFileNotFound,
			"failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, apperrors.WrapConfigError(apperrors.CodeConfiguration,
			"failed to parse config file", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return apperrors.WrapConfigError(apperrors.CodeConfiguration,
			"failed to create config directory", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return apperrors.WrapConfigError(apperrors.CodeConfiguration,
			"failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, configFilePerm); err != nil {
		return apperrors.WrapConfigError(apperrors.CodeConfiguration,
			"failed to write config file", err)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return apperrors.NewConfigFieldError(apperrors.CodeValidation,
				fmt.Sprintf("constraint %q violated", first.Tag()),
				first.Namespace(), first.Value())
		}
		return apperrors.WrapConfigError(apperrors.CodeValidation,
			"configuration validation failed", err)
	}
	return nil
}

// EngineConfig converts the scanning section into a scan engine
// configuration.
func (c *Config) EngineConfig() scanning.Config {
	return scanning.Config{
		Timeout:           c.Scanning.Timeout.Std(),
		Concurrency:       c.Scanning.Concurrency,
		TargetConcurrency: c.Scanning.TargetConcurrency,
		BannerBytes:       c.Scanning.BannerBytes,
	}
}
