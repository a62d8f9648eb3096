package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project string        `yaml:"project"`
	Version int           `yaml:"version"`
	Dataset DatasetConfig `yaml:"dataset"`
	Assets  string        `yaml:"assets"`
	Output  string        `yaml:"output"`
	Workers int           `yaml:"workers"`
}

type DatasetConfig struct {
	// Driver selects the dataset source: parquet, sqlite or postgres.
	Driver string `yaml:"driver"`

	// Path is the dataset directory for the parquet driver.
	Path string `yaml:"path"`

	// DSN is the connection string for the sqlite and postgres drivers.
	DSN string `yaml:"dsn"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	switch cfg.Dataset.Driver {
	case "parquet":
		if strings.TrimSpace(cfg.Dataset.Path) == "" {
			return fmt.Errorf("dataset path is required for the parquet driver")
		}
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Dataset.DSN) == "" {
			return fmt.Errorf("dataset dsn is required for the %s driver", cfg.Dataset.Driver)
		}
	case "":
		return fmt.Errorf("dataset driver is required")
	default:
		return fmt.Errorf("unknown dataset driver: %s", cfg.Dataset.Driver)
	}

	if strings.TrimSpace(cfg.Assets) == "" {
		return fmt.Errorf("assets directory is required")
	}
	if strings.TrimSpace(cfg.Output) == "" {
		return fmt.Errorf("output directory is required")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}

	return nil
}
