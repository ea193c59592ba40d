package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/nayakiniki/Flickd/pkg/analyzer"
	"github.com/nayakiniki/Flickd/pkg/tagger"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Tagger   TaggerConfig   `json:"tagger"`
	Analyzer AnalyzerConfig `json:"analyzer"`
	Logging  LoggingConfig  `json:"logging"`
}

// ServerConfig holds configuration for the HTTP server
type ServerConfig struct {
	Host                string   `json:"host"`
	Port                int      `json:"port"`
	StaticDir           string   `json:"static_dir"`
	MaxUploadBytes      int64    `json:"max_upload_bytes"`
	ReadTimeoutSeconds  int      `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `json:"write_timeout_seconds"`
	AllowedOrigins      []string `json:"allowed_origins"`
}

// TaggerConfig holds configuration for tag generation. The defaults give
// two color tags and three to five object tags per image; other counts
// change those guarantees and are bounded by the size of each table.
type TaggerConfig struct {
	ProcessingDelayMs int    `json:"processing_delay_ms"`
	ColorCount        int    `json:"color_count"`
	MinObjects        int    `json:"min_objects"`
	MaxObjects        int    `json:"max_objects"`
	Seed              uint64 `json:"seed"` // 0 = unseeded
}

// AnalyzerConfig holds configuration for image decoding
type AnalyzerConfig struct {
	SupportedFormats []string `json:"supported_formats"`
	AutoOrient       bool     `json:"auto_orient"`
	Fingerprint      bool     `json:"fingerprint"`
	ExtractMetadata  bool     `json:"extract_metadata"`
	MaxPixels        int64    `json:"max_pixels"` // 0 = unlimited
}

// LoggingConfig holds configuration for the process logger
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8000,
			StaticDir:           "static",
			MaxUploadBytes:      10 << 20,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 60,
			AllowedOrigins:      []string{"*"},
		},
		Tagger: TaggerConfig{
			ProcessingDelayMs: 1000,
			ColorCount:        2,
			MinObjects:        3,
			MaxObjects:        5,
		},
		Analyzer: AnalyzerConfig{
			SupportedFormats: []string{"jpeg", "png", "gif", "bmp", "tiff", "webp"},
			AutoOrient:       false,
			Fingerprint:      true,
			ExtractMetadata:  true,
			MaxPixels:        analyzer.DefaultMaxPixels,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "flickd_tagging.log",
		},
	}
}

// Load builds the runtime configuration: defaults, then the optional JSON
// file, then a .env file and the PORT variable.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON file. Fields absent from
// the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}

	if c.Server.ReadTimeoutSeconds < 0 || c.Server.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}

	if c.Tagger.ProcessingDelayMs < 0 {
		return fmt.Errorf("tagger.processing_delay_ms cannot be negative")
	}

	if colors := len(tagger.ColorLabels()); c.Tagger.ColorCount < 1 || c.Tagger.ColorCount > colors {
		return fmt.Errorf("tagger.color_count must be between 1 and %d", colors)
	}

	if c.Tagger.MinObjects < 1 || c.Tagger.MinObjects > c.Tagger.MaxObjects {
		return fmt.Errorf("tagger.min_objects must be between 1 and tagger.max_objects")
	}

	if objects := len(tagger.ObjectLabels()); c.Tagger.MaxObjects > objects {
		return fmt.Errorf("tagger.max_objects cannot exceed %d", objects)
	}

	if len(c.Analyzer.SupportedFormats) == 0 {
		return fmt.Errorf("analyzer.supported_formats cannot be empty")
	}

	if c.Analyzer.MaxPixels < 0 {
		return fmt.Errorf("analyzer.max_pixels cannot be negative")
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ProcessingDelay returns the simulated latency as a duration
func (c *Config) ProcessingDelay() time.Duration {
	return time.Duration(c.Tagger.ProcessingDelayMs) * time.Millisecond
}

// AnalyzerOptions converts the analyzer section for pkg/analyzer
func (c *Config) AnalyzerOptions() analyzer.Config {
	return analyzer.Config{
		SupportedFormats: c.Analyzer.SupportedFormats,
		AutoOrient:       c.Analyzer.AutoOrient,
		Fingerprint:      c.Analyzer.Fingerprint,
		ExtractMetadata:  c.Analyzer.ExtractMetadata,
		MaxPixels:        c.Analyzer.MaxPixels,
	}
}

// TaggerOptions converts the tagger section for pkg/tagger
func (c *Config) TaggerOptions() tagger.Options {
	opts := tagger.Options{
		Delay:      c.ProcessingDelay(),
		ColorCount: c.Tagger.ColorCount,
		MinObjects: c.Tagger.MinObjects,
		MaxObjects: c.Tagger.MaxObjects,
	}
	if c.Tagger.Seed != 0 {
		opts.Sampler = tagger.NewSeededSampler(c.Tagger.Seed)
	}
	return opts
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "flickd", "config.json")
}
