// Package config provides configuration loading and validation for AI Shield.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/aishield/internal/apperrors"
)

// Defaults applied when the config file omits a value.
const (
	DefaultOutputDir   = "."
	DefaultMaxRequests = 50
	DefaultWindow      = 60 * time.Second
)

// Config is the application configuration.
type Config struct {
	S3        *S3Config       `yaml:"s3,omitempty"`
	AWS       AWSConfig       `yaml:"aws,omitempty"`
	Template  string          `yaml:"template,omitempty"`
	OutputDir string          `yaml:"output_dir,omitempty" validate:"required"`
	Formats   []string        `yaml:"formats,omitempty" validate:"min=1,dive,oneof=json yaml html pdf"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds how often one caller may run an audit.
type RateLimitConfig struct {
	MaxRequests int           `yaml:"max_requests" validate:"gte=1"`
	Window      time.Duration `yaml:"window" validate:"gte=1s"`
}

// S3Config is where exported reports are published.
type S3Config struct {
	Bucket string `yaml:"bucket" validate:"required,min=3,max=63"`
	Prefix string `yaml:"prefix,omitempty"`
	Region string `yaml:"region,omitempty"`
}

// AWSConfig selects credentials for the IAM probe and S3 publishing.
type AWSConfig struct {
	Profile string `yaml:"profile,omitempty"`
	Region  string `yaml:"region,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Formats:   []string{"json"},
		RateLimit: RateLimitConfig{
			MaxRequests: DefaultMaxRequests,
			Window:      DefaultWindow,
		},
	}
}

// LoadConfig reads a YAML configuration file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted source (config file)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, apperrors.WrapConfiguration("read config", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.WrapConfiguration("parse config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	for i, f := range c.Formats {
		c.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return apperrors.Configuration("validate config",
				fmt.Sprintf("%s failed %s validation", yamlPath(fe.Namespace()), fe.Tag()))
		}
		return apperrors.WrapConfiguration("validate config", err)
	}
	return nil
}

// yamlPath turns "Config.RateLimit.MaxRequests" into "rate_limit.max_requests".
func yamlPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		parts[i] = snake(p)
	}
	return strings.Join(parts, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prev := s[i-1]
			if prev < 'A' || prev > 'Z' {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
