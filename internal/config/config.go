// Package config implements loading and validation of the server
// configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables that override values from the config file.
const (
	EnvConfigFile = "SIMPLEHTTP_CONFIGFILE"
	EnvRoot       = "SIMPLEHTTP_ROOT"
	EnvPort       = "SIMPLEHTTP_PORT"
	EnvLogLevel   = "SIMPLEHTTP_LOG_LEVEL"
)

// Config is the server configuration. It is loaded once at startup and not
// modified afterwards.
type Config struct {
	Root            string            `json:"root" validate:"required"`
	Port            int               `json:"port" validate:"gte=0,lte=65535"`
	MimeTypes       map[string]string `json:"mimeTypes" validate:"dive,keys,startswith=.,endkeys,required"`
	IndexFiles      []string          `json:"indexFiles" validate:"dive,required,excludesall=/\\"`
	ReadTimeoutSec  int               `json:"readTimeoutSec" validate:"gte=0"`
	WriteTimeoutSec int               `json:"writeTimeoutSec" validate:"gte=0"`
	MaxConnections  int               `json:"maxConnections" validate:"gte=0"`
	Log             Log               `json:"log"`
	Data            Data              `json:"data"`
}

type Log struct {
	Level string `json:"level" validate:"oneof=debug info warn error"`
	Color bool   `json:"color"`
}

// Data names the JSON files the servlets load their records from. An empty
// path disables the corresponding servlet.
type Data struct {
	Books string `json:"books"`
	Buffy string `json:"buffy"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:            "files",
		Port:            8080,
		MimeTypes:       DefaultMimeTypes(),
		IndexFiles:      []string{"index.html", "index.htm", "default.html"},
		ReadTimeoutSec:  30,
		WriteTimeoutSec: 30,
		Log: Log{
			Level: "info",
			Color: true,
		},
		Data: Data{
			Books: "json/books.json",
			Buffy: "json/buffy.json",
		},
	}
}

// DefaultMimeTypes returns the built-in extension to content type mapping.
func DefaultMimeTypes() map[string]string {
	return map[string]string{
		".htm":  "text/html",
		".html": "text/html",
		".css":  "text/css",
		".js":   "application/javascript",
		".json": "application/json",
		".txt":  "text/plain",
		".xml":  "text/xml",
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".gif":  "image/gif",
		".svg":  "image/svg+xml",
		".ico":  "image/x-icon",
		".pdf":  "application/pdf",
		".zip":  "application/zip",
		".mp3":  "audio/mpeg",
		".mp4":  "video/mp4",
	}
}

// Load reads the JSON document at path on top of the defaults. Keys missing
// from the document keep their default value; a mimeTypes or indexFiles
// entry replaces the default list as a whole.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes a JSON document on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	cfg.MimeTypes = nil
	cfg.IndexFiles = nil

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", FormatError(data, err))
	}

	def := Default()
	if cfg.MimeTypes == nil {
		cfg.MimeTypes = def.MimeTypes
	}
	if cfg.IndexFiles == nil {
		cfg.IndexFiles = def.IndexFiles
	}

	return cfg, nil
}

// ApplyEnv overrides values from environment variables as returned by
// lookup, usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvRoot); ok && v != "" {
		c.Root = v
	}

	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvPort, v)
		}
		c.Port = port
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}

	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}

	return nil
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSec) * time.Second
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSec) * time.Second
}

// Addr is the listen address for Port on all interfaces.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
