package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the daemon configuration, loaded from a TOML file with
// sensible defaults when the file or a field is absent.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Receipts ReceiptsConfig `toml:"receipts"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"` // "json" or "text"
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Addr       string `toml:"addr"`
	MaxWorkers int    `toml:"max_workers"`
}

type ReceiptsConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoadConfig reads the TOML file at path. A missing file yields the
// defaults; a present but malformed file is an error. The PORT
// environment variable, when set, overrides the listen address for
// compatibility with platform process managers.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// run on defaults
	case err != nil:
		return nil, fmt.Errorf("failed to open config: %w", err)
	default:
		defer file.Close()
		if err := toml.NewDecoder(file).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Addr = ":" + port
	}
	if cfg.Server.MaxWorkers <= 0 {
		cfg.Server.MaxWorkers = defaultMaxWorkers
	}
	return cfg, nil
}

const defaultMaxWorkers = 64

func defaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  slog.LevelInfo,
			Format: "text",
		},
		Server: ServerConfig{
			Addr:       ":4000",
			MaxWorkers: defaultMaxWorkers,
		},
		Receipts: ReceiptsConfig{Enabled: true},
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
