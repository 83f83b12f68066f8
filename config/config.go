package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
	Cashier  string `yaml:"cashier" json:"cashier"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System SystemConfig `yaml:"system" json:"system"`
	Logger LoggerConfig `yaml:"logger" json:"logger"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Workdir:  "/var/tillpos",
			Location: "Local",
			Cashier:  "John Smith",
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
		},
	}
}

// LoadConfig reads a YAML config file, filling unset fields from
// defaults. An empty path or a missing file yields the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	def := DefaultConfig()
	if cfg.System.Workdir == "" {
		cfg.System.Workdir = def.System.Workdir
	}
	if cfg.System.Location == "" {
		cfg.System.Location = def.System.Location
	}
	if cfg.System.Cashier == "" {
		cfg.System.Cashier = def.System.Cashier
	}
	if cfg.Logger.Mode == "" {
		cfg.Logger.Mode = def.Logger.Mode
	}
	if cfg.Logger.FileEnable && cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "tillpos.log")
	}
	return cfg, nil
}
