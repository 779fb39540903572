package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/apptbill/internal/model"
)

// DefaultOutputName is the base name of the billing sheet, matching the download name.
const DefaultOutputName = "transformed_output"

// DefaultMaxUploadBytes bounds uploads accepted by the HTTP server.
const DefaultMaxUploadBytes int64 = 32 << 20

// Config holds all runtime configuration for an apptbill run.
type Config struct {
	ConfigFile     string
	FilePath       string
	OutPath        string
	OutputDir      string
	OutputFormat   string // "csv", "xlsx" or "parquet"; empty means from OutPath or csv
	LogFormat      string // "text" or "json"
	LogLevel       string
	Addr           string
	MaxUploadBytes int64
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	OutputFormat   string `yaml:"output_format"`
	OutputDir      string `yaml:"output_dir"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	LogLevel       string `yaml:"log_level"`
	Addr           string `yaml:"addr"`
}

// LoadEnv loads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// EnvOr returns the environment variable key, or def when unset or empty.
func EnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// LoadFromFile reads a YAML config file and fills in values not already set by flags.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if c.OutputFormat == "" {
		c.OutputFormat = yc.OutputFormat
	}
	if c.OutputDir == "" {
		c.OutputDir = yc.OutputDir
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = yc.MaxUploadBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = yc.LogLevel
	}
	if c.Addr == "" {
		c.Addr = yc.Addr
	}
	if c.OutputFormat != "" {
		if _, err := model.ParseFormat(c.OutputFormat); err != nil {
			return fmt.Errorf("config output_format: %w", err)
		}
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	if _, _, err := c.Output(); err != nil {
		return err
	}
	return nil
}

// Output resolves the output path and format. An explicit --out path decides the
// format by extension unless --format is given; otherwise the file is written to
// OutputDir as transformed_output.<format>.
func (c *Config) Output() (string, model.Format, error) {
	format := model.FormatCSV
	switch {
	case c.OutputFormat != "":
		f, err := model.ParseFormat(c.OutputFormat)
		if err != nil {
			return "", "", err
		}
		format = f
	case c.OutPath != "":
		f, err := model.FormatFromPath(c.OutPath)
		if err != nil {
			return "", "", err
		}
		format = f
	}
	if c.OutPath != "" {
		return c.OutPath, format, nil
	}
	return filepath.Join(c.OutputDir, DefaultOutputName+"."+string(format)), format, nil
}

// UploadLimit returns the maximum accepted upload size.
func (c *Config) UploadLimit() int64 {
	if c.MaxUploadBytes > 0 {
		return c.MaxUploadBytes
	}
	return DefaultMaxUploadBytes
}
