package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrInvalidRoot is returned by Validate when the gallery root cannot be served.
var ErrInvalidRoot = errors.New("invalid gallery root")

type Config struct {
	Gallery GalleryConfig `yaml:"gallery"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

type GalleryConfig struct {
	Root string `yaml:"root"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"` // e.g. 5s
	PollInterval    time.Duration `yaml:"pollInterval"`    // page refresh, e.g. 1s
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text", "json"
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5001,
			ShutdownTimeout: 5 * time.Second,
			PollInterval:    time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ApplyEnv overrides fields from LIVEGALLERY_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("LIVEGALLERY_ROOT"); v != "" {
		c.Gallery.Root = v
	}
	if v := os.Getenv("LIVEGALLERY_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("LIVEGALLERY_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing LIVEGALLERY_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LIVEGALLERY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the gallery root and server settings and normalizes the
// root to an absolute, clean path.
func (c *Config) Validate() error {
	if c.Gallery.Root == "" {
		return fmt.Errorf("%w: no path given", ErrInvalidRoot)
	}

	abs, err := filepath.Abs(c.Gallery.Root)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}

	f, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoot, err)
	}
	f.Close()

	c.Gallery.Root = abs

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid shutdown timeout %s", c.Server.ShutdownTimeout)
	}
	if c.Server.PollInterval <= 0 {
		return fmt.Errorf("invalid poll interval %s", c.Server.PollInterval)
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
