package toolchain

import (
	"os"
	"path/filepath"
)

// PackageManager identifies the node package manager used for installs and
// script runs.
type PackageManager string

// Supported package managers.
const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
)

// Lockfile names used as detection signals.
const (
	pnpmLockfile = "pnpm-lock.yaml"
	yarnLockfile = "yarn.lock"
)

// DetectPackageManager picks the package manager for a workspace. Lockfile
// presence is the primary signal; binary availability only gates the
// fallback to npm.
func (c *Checker) DetectPackageManager(dir string) PackageManager {
	if fileExists(filepath.Join(dir, pnpmLockfile)) {
		if _, err := c.LookPath(string(PNPM)); err == nil {
			return PNPM
		}
		return NPM
	}
	if fileExists(filepath.Join(dir, yarnLockfile)) {
		if _, err := c.LookPath(string(Yarn)); err == nil {
			return Yarn
		}
		return NPM
	}
	return NPM
}

// InstallArgs returns the dependency install arguments.
func (pm PackageManager) InstallArgs() []string {
	return []string{"install"}
}

// RunScriptArgs returns the arguments to run a package.json script. npm and
// pnpm tolerate absent scripts via --if-present; yarn has no equivalent, so
// an absent script surfaces as a non-zero exit the caller treats as
// non-fatal.
func (pm PackageManager) RunScriptArgs(script string) []string {
	if pm == Yarn {
		return []string{"run", script}
	}
	return []string{"run", script, "--if-present"}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
