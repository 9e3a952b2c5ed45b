// Package config loads procargs settings from a YAML file and PROCARGS_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Batch      BatchConfig      `yaml:"batch"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=panic fatal error warn warning info debug trace"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type ExtractionConfig struct {
	// MaxStringBytes caps the command line and image path buffers copied
	// from a target process.
	MaxStringBytes int `yaml:"max_string_bytes" validate:"min=2,max=65535"`

	// VerifyPathToken splits arguments at the command line's own program
	// token when it does not match the image path.
	VerifyPathToken bool `yaml:"verify_path_token"`
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency" validate:"min=1,max=256"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromBytes loads configuration from bytes without applying environment
// overrides.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Extraction.MaxStringBytes == 0 {
		cfg.Extraction.MaxStringBytes = 0xFFFE
	}
	if cfg.Batch.Concurrency == 0 {
		cfg.Batch.Concurrency = 8
	}
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PROCARGS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("PROCARGS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv("PROCARGS_MAX_STRING_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PROCARGS_MAX_STRING_BYTES: %w", err)
		}
		cfg.Extraction.MaxStringBytes = n
	}
	if v := os.Getenv("PROCARGS_VERIFY_PATH_TOKEN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PROCARGS_VERIFY_PATH_TOKEN: %w", err)
		}
		cfg.Extraction.VerifyPathToken = b
	}
	if v := os.Getenv("PROCARGS_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PROCARGS_CONCURRENCY: %w", err)
		}
		cfg.Batch.Concurrency = n
	}
	return nil
}

// Validate checks field ranges and enumerations. The first failing field
// is reported by its YAML path.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(yamlName)
	if err := validate.Struct(c); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) && len(validateErrs) > 0 {
			fe := validateErrs[0]
			return fmt.Errorf("invalid %s %v: must satisfy %s=%s", trimRoot(fe.Namespace()), fe.Value(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func yamlName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func trimRoot(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
