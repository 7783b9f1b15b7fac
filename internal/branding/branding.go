// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so renaming the product is an edit-and-rebuild.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	RolesFile   string `yaml:"roles_file"`
	ConfigFile  string `yaml:"config_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:     "setup",
			DisplayName: "AppNeural Setup",
			Description: "Developer environment bootstrapper for AppNeural workspaces",
			HomeDir:     ".appneural",
			EnvPrefix:   "APPNEURAL",
			GoModule:    "github.com/appneural/setup",
			RolesFile:   "appneural.roles.yaml",
			ConfigFile:  "appneural.config.json",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "setup").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".appneural").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "APPNEURAL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// RolesFile returns the workspace role manifest file name.
func RolesFile() string { load(); return defaults.RolesFile }

// ConfigFile returns the workspace persisted config file name.
func ConfigFile() string { load(); return defaults.ConfigFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "APPNEURAL_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
