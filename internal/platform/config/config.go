package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInput      = "test.txt"
	DefaultOutput     = "result.json"
	DefaultConfigName = "qbank.yaml"
	DefaultIndexPath  = ".qbank/qbank.db"
)

type Config struct {
	BaseDir              string
	InputPath            string
	OutputPath           string
	KeepInputOnSaveError bool
	LogLevel             string
	LogJSON              bool
	IndexEnabled         bool
	IndexPath            string
}

// Overrides carries flag values; empty or nil fields leave the file value alone.
type Overrides struct {
	InputPath  string
	OutputPath string
	LogLevel   string
	LogJSON    *bool
	Index      *bool
}

type fileConfig struct {
	Input                string `yaml:"input"`
	Output               string `yaml:"output"`
	KeepInputOnSaveError *bool  `yaml:"keep_input_on_save_error"`
	Log                  struct {
		Level string `yaml:"level"`
		JSON  *bool  `yaml:"json"`
	} `yaml:"log"`
	Index struct {
		Enabled *bool  `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"index"`
}

func New(baseDir string) (Config, error) {
	if strings.TrimSpace(baseDir) == "" {
		return Config{}, fmt.Errorf("base directory is required")
	}
	return Config{
		BaseDir:    baseDir,
		InputPath:  filepath.Join(baseDir, DefaultInput),
		OutputPath: filepath.Join(baseDir, DefaultOutput),
		LogLevel:   "info",
		IndexPath:  filepath.Join(baseDir, DefaultIndexPath),
	}, nil
}

// Load layers defaults, the optional YAML file at configPath and flag overrides.
// A missing config file is not an error.
func Load(baseDir, configPath string, overrides Overrides) (Config, error) {
	cfg, err := New(baseDir)
	if err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(configPath) != "" {
		if err := cfg.applyFile(cfg.resolve(configPath)); err != nil {
			return Config{}, err
		}
	}
	cfg.applyOverrides(overrides)
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if file.Input != "" {
		c.InputPath = c.resolve(file.Input)
	}
	if file.Output != "" {
		c.OutputPath = c.resolve(file.Output)
	}
	if file.KeepInputOnSaveError != nil {
		c.KeepInputOnSaveError = *file.KeepInputOnSaveError
	}
	if file.Log.Level != "" {
		c.LogLevel = file.Log.Level
	}
	if file.Log.JSON != nil {
		c.LogJSON = *file.Log.JSON
	}
	if file.Index.Enabled != nil {
		c.IndexEnabled = *file.Index.Enabled
	}
	if file.Index.Path != "" {
		c.IndexPath = c.resolve(file.Index.Path)
	}
	return nil
}

func (c *Config) applyOverrides(o Overrides) {
	if o.InputPath != "" {
		c.InputPath = c.resolve(o.InputPath)
	}
	if o.OutputPath != "" {
		c.OutputPath = c.resolve(o.OutputPath)
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogJSON != nil {
		c.LogJSON = *o.LogJSON
	}
	if o.Index != nil {
		c.IndexEnabled = *o.Index
	}
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}
