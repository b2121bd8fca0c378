// ABOUTME: Coach configuration management with athlete profile settings.
// ABOUTME: JSON config file plus COACH_* environment variable overrides.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

// Config stores coach tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; coach.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/coach.
	DataDir string `json:"data_dir,omitempty" env:"COACH_DATA_DIR"`

	// Athlete physiology used by the load and prescription calculations.
	Age       int      `json:"age,omitempty" env:"COACH_AGE"`
	Sex       string   `json:"sex,omitempty" env:"COACH_SEX"` // "male" or "female"
	MaxHR     *float64 `json:"max_hr,omitempty" env:"COACH_MAX_HR"`
	RestingHR *float64 `json:"resting_hr,omitempty" env:"COACH_RESTING_HR"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// Profile builds the athlete profile the engine computes against.
func (c *Config) Profile() models.AthleteProfile {
	return models.AthleteProfile{
		Age:       c.Age,
		Male:      !strings.EqualFold(c.Sex, "female"),
		MaxHR:     models.FromPtr(c.MaxHR),
		RestingHR: models.FromPtr(c.RestingHR),
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite repository under the configured data dir.
func (c *Config) OpenStorage() (storage.Repository, error) {
	dbPath := filepath.Join(c.GetDataDir(), "coach.db")
	return storage.Open(dbPath)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "coach", "config.json")
}

// Load reads config from disk, then applies COACH_* environment
// overrides on top. Environment always wins.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
