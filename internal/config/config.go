// Package config loads the process-level configuration: a .moodr.yaml file
// in the home or working directory, overridable through MOODR_ environment
// variables. Per-journal settings live in the database, not here.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/sadopc/moodr/internal/store"
)

type Config struct {
	DBPath    string // database file, empty means the default location
	ExportDir string // where exports land, empty means the home directory
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("db", "")
	v.SetDefault("export_dir", "")
	v.SetConfigName(".moodr") // .yaml is implicit
	v.SetEnvPrefix("MOODR")
	v.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{
		DBPath:    v.GetString("db"),
		ExportDir: v.GetString("export_dir"),
	}, nil
}

// ResolveDBPath returns the configured database path, falling back to the
// default location under the user config dir.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return store.DefaultDBPath()
}

// ResolveExportDir returns the configured export directory, falling back to
// the home directory.
func (c *Config) ResolveExportDir() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
