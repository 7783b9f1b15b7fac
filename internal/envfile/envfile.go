// Package envfile generates the workspace .env from .env.example,
// injecting freshly generated secrets.
package envfile

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/appneural/setup/internal/platform"
)

// File names at the workspace root.
const (
	ExampleFile = ".env.example"
	TargetFile  = ".env"
)

// Secret keys injected on generation, each a 64-hex-character value.
var secretKeys = []string{"JWT_SECRET", "ENCRYPTION_KEY"}

// Entry is one key-value pair from an env file.
type Entry struct {
	Key   string
	Value string
}

// Parse reads an env file into ordered key-value entries, skipping blank
// lines and # comments. Lines split on the first = only, so values may
// contain = signs.
func Parse(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		entries = append(entries, Entry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return entries, nil
}

// Generate writes .env from .env.example in dir, overwriting secretKeys
// with fresh random values (and appending them when the example lacks
// them). Returns false with no error when the example file is absent.
func Generate(dir string) (bool, error) {
	examplePath := filepath.Join(dir, ExampleFile)
	if _, err := os.Stat(examplePath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", examplePath, err)
	}

	entries, err := Parse(examplePath)
	if err != nil {
		return false, err
	}

	secrets := make(map[string]string, len(secretKeys))
	for _, key := range secretKeys {
		secret, err := randomSecret()
		if err != nil {
			return false, err
		}
		secrets[key] = secret
	}

	var b strings.Builder
	seen := make(map[string]bool, len(entries))
	for _, entry := range entries {
		value := entry.Value
		if secret, ok := secrets[entry.Key]; ok {
			value = secret
		}
		seen[entry.Key] = true
		fmt.Fprintf(&b, "%s=%s\n", entry.Key, value)
	}
	for _, key := range secretKeys {
		if !seen[key] {
			fmt.Fprintf(&b, "%s=%s\n", key, secrets[key])
		}
	}

	targetPath := filepath.Join(dir, TargetFile)
	if err := os.WriteFile(targetPath, []byte(b.String()), 0600); err != nil {
		return false, fmt.Errorf("writing %s: %w", targetPath, err)
	}
	// The file holds secrets; re-apply the mode in case of a pre-existing .env.
	if err := platform.Chmod(targetPath, 0600); err != nil {
		return false, fmt.Errorf("restricting %s permissions: %w", targetPath, err)
	}
	return true, nil
}

// randomSecret returns 32 random bytes hex-encoded (64 characters).
func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
