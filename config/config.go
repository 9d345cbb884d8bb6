// Package config loads encoding runs from YAML files.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/poiesic/vecpack/compress"
	"github.com/poiesic/vecpack/core"
	"github.com/poiesic/vecpack/encode"
	"gopkg.in/yaml.v3"
)

// Store kinds accepted in the store field.
const (
	StoreFS     = "fs"
	StoreBadger = "badger"
)

// Config is the top-level configuration.
type Config struct {
	Input  string       `yaml:"input"`
	Output string       `yaml:"output"`
	Store  string       `yaml:"store"`
	Strict bool         `yaml:"strict"`
	Encode EncodeConfig `yaml:"encode"`
}

// EncodeConfig holds encoding parameters. Pointer fields distinguish an
// explicit zero from an omitted value.
type EncodeConfig struct {
	Mode           string `yaml:"mode"`
	ChunkSize      int    `yaml:"chunk_size"`
	Width          int    `yaml:"width"`
	Codec          string `yaml:"codec"`
	Level          *int   `yaml:"level"`
	Dimension      *int   `yaml:"dimension"`
	Verify         *bool  `yaml:"verify"`
	Workers        int    `yaml:"workers"`
	ReportInterval int    `yaml:"report_interval"`
	MaxErrors      *int   `yaml:"max_errors"`
}

// envVarPattern matches ${VAR} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} placeholders with environment variable values.
// Returns an error if any referenced variable is not set.
func expandEnvVars(data []byte) ([]byte, error) {
	var missing []string

	result := envVarPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		varName := envVarPattern.FindSubmatch(match)[1]
		val, ok := os.LookupEnv(string(varName))
		if !ok {
			missing = append(missing, string(varName))
			return match
		}
		return []byte(val)
	})

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return result, nil
}

// Default returns a Config with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Load reads and parses a config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses config from raw YAML bytes, expanding env vars and validating.
func Parse(data []byte) (*Config, error) {
	expanded, err := expandEnvVars(data)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	// Apply defaults
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func applyDefaults(cfg *Config) {
	d := encode.DefaultConfig()

	if cfg.Input == "" {
		cfg.Input = "concept_embeds.json"
	}
	if cfg.Output == "" {
		cfg.Output = "public/data/embeddings_chunks"
	}
	if cfg.Store == "" {
		cfg.Store = StoreFS
	}

	e := &cfg.Encode
	if e.Mode == "" {
		e.Mode = string(d.Mode)
	}
	if e.ChunkSize == 0 {
		e.ChunkSize = d.ChunkSize
	}
	if e.Width == 0 {
		e.Width = int(encode.DefaultWidth(core.Mode(e.Mode)))
	}
	if e.Codec == "" {
		e.Codec = encode.DefaultCodec(core.Mode(e.Mode))
	}
	if e.Level == nil {
		e.Level = intPtr(d.Level)
	}
	if e.Dimension == nil {
		e.Dimension = intPtr(d.Dimension)
	}
	if e.Verify == nil {
		e.Verify = boolPtr(d.Verify)
	}
	if e.Workers == 0 {
		e.Workers = d.Workers
	}
	if e.ReportInterval == 0 {
		e.ReportInterval = d.ReportInterval
	}
	if e.MaxErrors == nil {
		e.MaxErrors = intPtr(d.MaxErrors)
	}
}

// Validate checks a fully defaulted Config.
func (cfg *Config) Validate() error {
	switch cfg.Store {
	case StoreFS, StoreBadger:
	default:
		return fmt.Errorf("store must be %q or %q, got %q", StoreFS, StoreBadger, cfg.Store)
	}

	e := cfg.Encode
	if _, err := core.ParseMode(e.Mode); err != nil {
		return err
	}
	if _, err := core.ParseFloatWidth(e.Width); err != nil {
		return err
	}
	if _, err := compress.New(e.Codec, *e.Level); err != nil {
		return err
	}
	if e.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", e.ChunkSize)
	}
	if *e.Dimension < 0 {
		return fmt.Errorf("dimension must not be negative, got %d", *e.Dimension)
	}
	if e.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", e.Workers)
	}
	if e.ReportInterval < 0 {
		return fmt.Errorf("report_interval must be positive, got %d", e.ReportInterval)
	}
	if *e.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", *e.MaxErrors)
	}
	return nil
}

// EncodeConfig converts the file settings into an encode.Config.
// Call only on a Config returned by Load, Parse or Default.
func (cfg *Config) EncodeConfig() *encode.Config {
	e := cfg.Encode
	return &encode.Config{
		Mode:           core.Mode(e.Mode),
		ChunkSize:      e.ChunkSize,
		Width:          core.FloatWidth(e.Width),
		Codec:          e.Codec,
		Level:          *e.Level,
		Dimension:      *e.Dimension,
		Verify:         *e.Verify,
		Workers:        e.Workers,
		ReportInterval: e.ReportInterval,
		MaxErrors:      *e.MaxErrors,
	}
}
