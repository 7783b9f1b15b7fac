// Package config manages user-level settings stored at ~/.appneural/config.yaml,
// such as the preferred package manager or a custom template mirror. Workspace
// state lives elsewhere; this package only covers per-user preferences.
package config
