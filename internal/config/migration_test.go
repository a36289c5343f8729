package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pomatime/pomatime/internal/config/schema"
	"github.com/pomatime/pomatime/internal/config/store"
)

func newTestMigrator(t *testing.T, policy ResetPolicy) (*Migrator, *store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	st := store.New(path)
	return NewMigrator(st, policy, nil), st, path
}

func TestEnsureCurrentCreatesMissingFile(t *testing.T) {
	m, st, path := newTestMigrator(t, PolicyMigrate)

	result, err := m.EnsureCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if result != MigrationNone {
		t.Errorf("result = %v, want MigrationNone", result)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal("config file not created")
	}
	if got := st.ReadString(schema.SectionGeneral, "CONFIG_VERSION", ""); got != schema.Version {
		t.Errorf("CONFIG_VERSION = %q, want %q", got, schema.Version)
	}
}

func TestEnsureCurrentMatchingVersionNoOp(t *testing.T) {
	m, st, _ := newTestMigrator(t, PolicyForceReset)
	if _, err := m.EnsureCurrent(); err != nil {
		t.Fatal(err)
	}

	st.WriteString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", "#ABCDEF")
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}

	result, err := m.EnsureCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if result != MigrationNone {
		t.Errorf("result = %v, want MigrationNone", result)
	}
	st.Invalidate()
	if got := st.ReadString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", ""); got != "#ABCDEF" {
		t.Error("matching version must not touch the file")
	}
}

func TestMigratePreservesRecognizedValues(t *testing.T) {
	m, st, _ := newTestMigrator(t, PolicyMigrate)
	if _, err := m.EnsureCurrent(); err != nil {
		t.Fatal(err)
	}

	st.WriteString(schema.SectionGeneral, "CONFIG_VERSION", "0.9.0")
	st.WriteString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", "#ABCDEF")
	st.WriteString(schema.SectionTimer, "CLOCK_DEFAULT_START_TIME", "2700")
	st.WriteString(schema.SectionRecentFiles, "CLOCK_RECENT_FILE_2", "/tmp/notes.txt")
	st.WriteString("Legacy", "OBSOLETE_KEY", "junk")
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}
	st.Invalidate()

	result, err := m.EnsureCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if result != MigrationUpgraded {
		t.Fatalf("result = %v, want MigrationUpgraded", result)
	}

	st.Invalidate()
	if got := st.ReadString(schema.SectionGeneral, "CONFIG_VERSION", ""); got != schema.Version {
		t.Errorf("CONFIG_VERSION = %q, want %q", got, schema.Version)
	}
	if got := st.ReadString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", ""); got != "#ABCDEF" {
		t.Errorf("color = %q, want preserved #ABCDEF", got)
	}
	if got := st.ReadInt(schema.SectionTimer, "CLOCK_DEFAULT_START_TIME", 0); got != 2700 {
		t.Errorf("start time = %d, want preserved 2700", got)
	}
	if got := st.ReadString(schema.SectionRecentFiles, "CLOCK_RECENT_FILE_2", ""); got != "/tmp/notes.txt" {
		t.Errorf("recent file = %q, want preserved", got)
	}
	if st.HasKey("Legacy", "OBSOLETE_KEY") {
		t.Error("unrecognized key survived migration")
	}
	// Keys the old file lacked come back with defaults.
	if got := st.ReadString(schema.SectionDisplay, "WINDOW_SCALE", ""); got != "1.62" {
		t.Errorf("WINDOW_SCALE = %q, want default 1.62", got)
	}
}

func TestForceResetDiscardsEverything(t *testing.T) {
	m, st, path := newTestMigrator(t, PolicyForceReset)
	if _, err := m.EnsureCurrent(); err != nil {
		t.Fatal(err)
	}

	st.WriteString(schema.SectionGeneral, "CONFIG_VERSION", "0.9.0")
	st.WriteString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", "#ABCDEF")
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}
	st.Invalidate()

	result, err := m.EnsureCurrent()
	if err != nil {
		t.Fatal(err)
	}
	if result != MigrationReset {
		t.Fatalf("result = %v, want MigrationReset", result)
	}

	st.Invalidate()
	if got := st.ReadString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", ""); got != "#FFFFFF" {
		t.Errorf("color = %q, want factory default #FFFFFF", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "#ABCDEF") {
		t.Error("old value survived a forced reset")
	}
}

func TestRecognizedKey(t *testing.T) {
	cases := []struct {
		section, key string
		want         bool
	}{
		{schema.SectionDisplay, "CLOCK_TEXT_COLOR", true},
		{schema.SectionHotkeys, "HOTKEY_POMODORO", true},
		{schema.SectionRecentFiles, "CLOCK_RECENT_FILE_1", true},
		{schema.SectionRecentFiles, "CLOCK_RECENT_FILE_5", true},
		{schema.SectionRecentFiles, "CLOCK_RECENT_FILE_6", false},
		{schema.SectionRecentFiles, "CLOCK_RECENT_FILE_0", false},
		{schema.SectionRecentFiles, "SOMETHING_ELSE", false},
		{"Legacy", "OBSOLETE_KEY", false},
	}
	for _, tc := range cases {
		if got := recognizedKey(tc.section, tc.key); got != tc.want {
			t.Errorf("recognizedKey(%s, %s) = %v, want %v", tc.section, tc.key, got, tc.want)
		}
	}
}
