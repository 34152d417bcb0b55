package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/icons"
)

var validate = validator.New()

// Config is the iconc configuration. Values come from the YAML file, then
// ICONC_* environment variables, then command-line flags. Variable names
// derive from field names: ICONC_START_LINE, ICONC_PREVIEW_PATH.
type Config struct {
	// Input is the file holding one icon segment.
	Input string `yaml:"input" validate:"required"`
	// Output is the pixmap text destination; empty or "-" means stdout.
	Output string `yaml:"output"`
	// StartLine is the rule-file line of the segment's first line.
	StartLine int `yaml:"start_line" split_words:"true" validate:"gte=1"`
	// Height forces the icon height; 0 derives it from the segment.
	Height int `yaml:"height" validate:"omitempty,oneof=7 15 31"`
	// Seed makes minted symbols reproducible; 0 picks a random seed.
	Seed uint64 `yaml:"seed"`
	// Colors are fallback colours by state, normally taken from @COLORS.
	Colors   map[int]string `yaml:"colors" ignored:"true"`
	Preview  PreviewConfig  `yaml:"preview"`
	LogLevel string         `yaml:"log_level" split_words:"true" validate:"oneof=debug info warn error"`
}

// PreviewConfig controls the optional image and terminal previews.
type PreviewConfig struct {
	Path       string `yaml:"path" validate:"omitempty,endswith=.png|endswith=.bmp"`
	Scale      int    `yaml:"scale" validate:"gte=1,lte=64"`
	Background string `yaml:"background"` // BMP only
	Terminal   bool   `yaml:"terminal"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		StartLine: 1,
		Preview: PreviewConfig{
			Scale:      8,
			Background: "000000",
		},
		LogLevel: "warn",
	}
}

// isUnknownFieldError returns true if the error is from yaml.Decoder.KnownFields(true)
// detecting an unrecognized key.
func isUnknownFieldError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found in type")
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults. Load does not validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			if !isUnknownFieldError(err) {
				return nil, fmt.Errorf("config parse error: %w", err)
			}
			slog.Warn("config has unknown fields (ignored)", "err", err)
			cfg = DefaultConfig()
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config parse error: %w", err)
			}
		}
	}

	if err := envconfig.Process("iconc", cfg); err != nil {
		return nil, fmt.Errorf("config env error: %w", err)
	}
	return cfg, nil
}

// Validate checks all Config fields and returns a multi-error report.
// Call this after flag overrides have been applied.
func (c *Config) Validate() error {
	var errs []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs = append(errs, fmt.Sprintf("%s: failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}

	for state, color := range c.Colors {
		if state < 1 || state > 255 {
			errs = append(errs, fmt.Sprintf("colors.%d: state must be 1-255", state))
		}
		if _, err := icons.NormalizeHex(color); err != nil {
			errs = append(errs, fmt.Sprintf("colors.%d: %v", state, err))
		}
	}
	if _, err := icons.NormalizeHex(c.Preview.Background); err != nil {
		errs = append(errs, fmt.Sprintf("preview.background: %v", err))
	}

	if len(errs) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for i, e := range errs {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, e)
	}
	return errors.New(sb.String())
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
