package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pomatime/pomatime/internal/config/schema"
	"github.com/pomatime/pomatime/internal/config/store"
)

func TestDefaultSnapshotMatchesSchema(t *testing.T) {
	snap := DefaultSnapshot()

	if snap.TextColor != "#FFFFFF" {
		t.Errorf("text color = %q", snap.TextColor)
	}
	if snap.BaseFontSize != 20 {
		t.Errorf("font size = %d", snap.BaseFontSize)
	}
	if snap.WindowScale != 1.62 {
		t.Errorf("window scale = %v", snap.WindowScale)
	}
	if !snap.WindowTopmost {
		t.Error("topmost should default on")
	}
	if got := FormatTimeList(snap.TimeOptions); got != "1500,600,300" {
		t.Errorf("time options = %q", got)
	}
	if got := FormatTimeList(snap.PomodoroTimes); got != "1500,300,1500,600" {
		t.Errorf("pomodoro times = %q", got)
	}
	if snap.AnimationSpeedMap[0] != 140 || snap.AnimationSpeedMap[9] != 500 {
		t.Errorf("speed map = %v", snap.AnimationSpeedMap)
	}
	for i := HotkeyIndex(0); i < HotkeyCount; i++ {
		if !snap.Hotkeys[i].IsZero() {
			t.Errorf("hotkey %d should default unbound", i)
		}
	}
}

func TestWriteDefaultFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := WriteDefaultFile(path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		"[General]",
		"CONFIG_VERSION=" + schema.Version,
		"[Display]",
		"CLOCK_TEXT_COLOR=#FFFFFF",
		"[Hotkeys]",
		"HOTKEY_POMODORO=None",
		"[RecentFiles]",
		"CLOCK_RECENT_FILE_5=",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("generated file missing %q", want)
		}
	}

	// The generated file must be readable by the store with every
	// default intact, help comments and all.
	st := store.New(path)
	if got := st.ReadInt(schema.SectionTimer, "CLOCK_DEFAULT_START_TIME", 0); got != 1500 {
		t.Errorf("start time reads back as %d", got)
	}
	if got := st.ReadString(schema.SectionColors, "COLOR_OPTIONS", ""); !strings.HasPrefix(got, "#FFFFFF,") {
		t.Errorf("palette reads back as %q", got)
	}
}

func TestWriteDefaultFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	if err := os.WriteFile(path, []byte("[Timer]\nCLOCK_DEFAULT_START_TIME=42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefaultFile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "=42") {
		t.Error("old content survived regeneration")
	}
}
