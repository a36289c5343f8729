package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigDirEnvOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "portable")
	t.Setenv("POMATIME_CONFIG_DIR", dir)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if got != dir {
		t.Errorf("ConfigDir = %q, want %q", got, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("config dir not created: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POMATIME_CONFIG_DIR", dir)

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if got != filepath.Join(dir, FileName) {
		t.Errorf("DefaultPath = %q", got)
	}
}

func TestExpandContractRoundTrip(t *testing.T) {
	configDir := filepath.Join("home", "user", ".config", "pomatime")

	stored := "%CONFIG_DIR%/resources/fonts/Wallpoet Essence.ttf"
	expanded := ExpandPath(stored, configDir)
	want := filepath.Join(configDir, "resources", "fonts", "Wallpoet Essence.ttf")
	if expanded != want {
		t.Errorf("ExpandPath = %q, want %q", expanded, want)
	}

	if got := ContractPath(expanded, configDir); got != stored {
		t.Errorf("ContractPath = %q, want %q", got, stored)
	}
}

func TestExpandPathPassthrough(t *testing.T) {
	abs := filepath.Join("opt", "fonts", "x.ttf")
	if got := ExpandPath(abs, "cfg"); got != abs {
		t.Errorf("ExpandPath passthrough = %q", got)
	}
	if got := ContractPath(abs, filepath.Join("some", "where")); got != abs {
		t.Errorf("ContractPath passthrough = %q", got)
	}
}
