package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FileName is the configuration file's on-disk name.
const FileName = "config.ini"

// ConfigDirPlaceholder is the token stored values may use to refer to
// the application's config directory, keeping persisted paths
// machine-independent.
const ConfigDirPlaceholder = "%CONFIG_DIR%"

// envConfigDir overrides the config directory when set. Useful for
// portable installs and tests.
const envConfigDir = "POMATIME_CONFIG_DIR"

// ConfigDir returns the application's configuration directory,
// creating it if needed.
func ConfigDir() (string, error) {
	if dir := os.Getenv(envConfigDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
		return dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "pomatime")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns the full path of the configuration file,
// creating its parent directory as needed.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// ExpandPath substitutes the config-dir placeholder in a stored path.
// Paths without the placeholder pass through unchanged.
func ExpandPath(stored, configDir string) string {
	if !strings.Contains(stored, ConfigDirPlaceholder) {
		return stored
	}
	expanded := strings.ReplaceAll(stored, ConfigDirPlaceholder, configDir)
	return filepath.Clean(expanded)
}

// ContractPath replaces a leading config-dir prefix with the
// placeholder, the inverse of ExpandPath.
func ContractPath(path, configDir string) string {
	if configDir == "" {
		return path
	}
	cleaned := filepath.Clean(path)
	dir := filepath.Clean(configDir)
	if strings.HasPrefix(cleaned, dir+string(filepath.Separator)) {
		rel := strings.TrimPrefix(cleaned, dir)
		return ConfigDirPlaceholder + filepath.ToSlash(rel)
	}
	return path
}
