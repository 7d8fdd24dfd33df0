package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	} `yaml:"http"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
	Artifacts struct {
		Scaler     string `yaml:"scaler"`
		Classifier string `yaml:"classifier"`
		Watch      bool   `yaml:"watch"`
	} `yaml:"artifacts"`
	Cache struct {
		Size int `yaml:"size"`
	} `yaml:"cache"`
}

func Default() *Config {
	var c Config
	c.Http.Port = 8080
	c.Http.Timeout = 30 * time.Second
	c.Http.AllowedOrigins = []string{"*"}
	c.Http.MaxBodyBytes = 1 << 16
	c.Log.Level = "info"
	c.Log.MaxSizeMB = 100
	c.Log.MaxBackups = 3
	c.Log.MaxAgeDays = 28
	c.Artifacts.Scaler = "artifacts/scaler.json"
	c.Artifacts.Classifier = "artifacts/classifier.json"
	c.Cache.Size = 1024
	return &c
}

// Load decodes path over the defaults. When path does not exist and is
// relative, the parent directory is tried so the binary can run from cmd/.
// Relative artifact and log paths are resolved against the config file.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !filepath.IsAbs(path) {
		if _, perr := os.Stat(filepath.Join("..", path)); perr == nil {
			path = filepath.Join("..", path)
		}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	config.Artifacts.Scaler = resolve(dir, config.Artifacts.Scaler)
	config.Artifacts.Classifier = resolve(dir, config.Artifacts.Classifier)
	config.Log.File = resolve(dir, config.Log.File)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) Validate() error {
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return fmt.Errorf("http.port %d is invalid", c.Http.Port)
	}
	if c.Http.Timeout <= 0 {
		return errors.New("http.timeout must be positive")
	}
	if c.Artifacts.Scaler == "" || c.Artifacts.Classifier == "" {
		return errors.New("artifacts.scaler and artifacts.classifier are required")
	}
	if c.Cache.Size < 0 {
		return errors.New("cache.size must not be negative")
	}
	return nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
