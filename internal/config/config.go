package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/store"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when no --config flag is given
const DefaultPath = "datapoints.yaml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "DP_"

// Defaults
const (
	DefaultLatency  = 1500 * time.Millisecond
	DefaultUndoTTL  = 10 * time.Second
	DefaultPerPage  = 4
	DefaultBackend  = store.BackendMemory
	DefaultLogLevel = "info"
)

// Config is the effective application configuration
type Config struct {
	Latency time.Duration     `yaml:"latency"`
	UndoTTL time.Duration     `yaml:"undo_ttl"`
	PerPage int               `yaml:"per_page"`
	Backend string            `yaml:"backend"`
	Seed    []models.Record   `yaml:"seed"`
	Keymap  map[string]string `yaml:"keymap,omitempty"`
	Log     LogConfig         `yaml:"log"`
}

// LogConfig controls the zap logger. An empty File disables logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// envOverrides are the settings that can come from the environment
type envOverrides struct {
	Latency  time.Duration `env:"LATENCY"`
	UndoTTL  time.Duration `env:"UNDO_TTL"`
	PerPage  int           `env:"PER_PAGE"`
	Backend  string        `env:"BACKEND"`
	LogLevel string        `env:"LOG_LEVEL"`
	LogFile  string        `env:"LOG_FILE"`
}

// Options controls where Load looks
type Options struct {
	Path     string // YAML file; DefaultPath when empty
	Required bool   // fail if the YAML file does not exist
	EnvFile  string // dotenv file; ".env" when empty
}

// DefaultSeed returns the demo records loaded on startup
func DefaultSeed() []models.Record {
	return []models.Record{
		{Title: "Hello world", Description: "world hello"},
		{Title: "Some more data", Description: "world hello"},
	}
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Latency: DefaultLatency,
		UndoTTL: DefaultUndoTTL,
		PerPage: DefaultPerPage,
		Backend: DefaultBackend,
		Seed:    DefaultSeed(),
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// Load builds the configuration from defaults, the YAML file, the dotenv
// file and DP_* environment variables, in that order. Seed records without
// an ID get a fresh one.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	if err := cfg.readFile(path, opts.Required); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.fillSeedIDs()
	return cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	o := envOverrides{
		Latency:  c.Latency,
		UndoTTL:  c.UndoTTL,
		PerPage:  c.PerPage,
		Backend:  c.Backend,
		LogLevel: c.Log.Level,
		LogFile:  c.Log.File,
	}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	c.Latency = o.Latency
	c.UndoTTL = o.UndoTTL
	c.PerPage = o.PerPage
	c.Backend = o.Backend
	c.Log.Level = o.LogLevel
	c.Log.File = o.LogFile
	return nil
}

func (c *Config) fillSeedIDs() {
	for i := range c.Seed {
		if c.Seed[i].ID == "" {
			c.Seed[i].ID = uuid.NewString()
		}
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	var errs []error
	if c.Latency < 0 {
		errs = append(errs, fmt.Errorf("latency must not be negative: %s", c.Latency))
	}
	if c.UndoTTL < 0 {
		errs = append(errs, fmt.Errorf("undo_ttl must not be negative: %s", c.UndoTTL))
	}
	if c.PerPage <= 0 {
		errs = append(errs, fmt.Errorf("per_page must be positive: %d", c.PerPage))
	}
	if c.Backend != "" && !slices.Contains(store.Backends(), c.Backend) {
		errs = append(errs, fmt.Errorf("unknown backend %q (valid: %v)", c.Backend, store.Backends()))
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log level: %w", err))
		}
	}
	seen := make(map[string]bool, len(c.Seed))
	for _, r := range c.Seed {
		if r.ID != "" && seen[r.ID] {
			errs = append(errs, fmt.Errorf("duplicate seed id %q", r.ID))
		}
		seen[r.ID] = true
	}
	return errors.Join(errs...)
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
