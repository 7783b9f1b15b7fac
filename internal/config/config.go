package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/appneural/setup/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Dir returns the user settings directory (~/.appneural/). The global
// template store shares this directory; see the userdata package.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the settings file (~/.appneural/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the settings directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the settings file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// A missing settings file is fine; everything has a default.
	_ = viper.ReadInConfig()
}

// Get returns a settings value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a settings key-value pair and saves the file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	settingsFile := FilePath()

	if _, err := os.Stat(settingsFile); os.IsNotExist(err) {
		f, err := os.Create(settingsFile)
		if err != nil {
			return fmt.Errorf("creating settings file %s: %w", settingsFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(settingsFile); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}
