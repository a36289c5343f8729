package schema

import (
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	it, ok := Lookup(SectionTimer, "CLOCK_DEFAULT_START_TIME")
	if !ok {
		t.Fatal("expected CLOCK_DEFAULT_START_TIME to be in the table")
	}
	if it.Default != "1500" {
		t.Errorf("default = %q, want 1500", it.Default)
	}
	if it.Type != TypeInt {
		t.Errorf("type = %v, want TypeInt", it.Type)
	}

	if _, ok := Lookup(SectionTimer, "NO_SUCH_KEY"); ok {
		t.Error("expected lookup miss for unknown key")
	}
}

func TestDefaultFor(t *testing.T) {
	tests := []struct {
		section, key, want string
	}{
		{SectionGeneral, "CONFIG_VERSION", Version},
		{SectionGeneral, "FIRST_RUN", "TRUE"},
		{SectionDisplay, "CLOCK_TEXT_COLOR", "#FFFFFF"},
		{SectionDisplay, "CLOCK_WINDOW_POS_X", "-2"},
		{SectionDisplay, "WINDOW_SCALE", "1.62"},
		{SectionTimer, "CLOCK_TIME_OPTIONS", "1500,600,300"},
		{SectionPomodoro, "POMODORO_TIME_OPTIONS", "1500,300,1500,600"},
		{SectionNotification, "NOTIFICATION_TIMEOUT_MS", "3000"},
		{SectionHotkeys, "HOTKEY_POMODORO", "None"},
		{SectionAnimation, "ANIMATION_PATH", "__logo__"},
		{SectionGeneral, "MISSING", ""},
	}

	for _, tt := range tests {
		if got := DefaultFor(tt.section, tt.key); got != tt.want {
			t.Errorf("DefaultFor(%s, %s) = %q, want %q", tt.section, tt.key, got, tt.want)
		}
	}
}

func TestHotkeyKeys(t *testing.T) {
	keys := HotkeyKeys()
	if len(keys) != 12 {
		t.Fatalf("expected 12 hotkey entries, got %d", len(keys))
	}
	if keys[0] != "HOTKEY_SHOW_TIME" || keys[11] != "HOTKEY_CUSTOM_COUNTDOWN" {
		t.Errorf("unexpected hotkey ordering: first=%s last=%s", keys[0], keys[11])
	}
}

func TestSectionItemsOrder(t *testing.T) {
	display := SectionItems(SectionDisplay)
	if len(display) == 0 {
		t.Fatal("no display items")
	}
	if display[0].Key != "CLOCK_TEXT_COLOR" {
		t.Errorf("first display item = %s, want CLOCK_TEXT_COLOR", display[0].Key)
	}
}

func TestDefaultPaletteJoined(t *testing.T) {
	d := DefaultFor(SectionColors, "COLOR_OPTIONS")
	if !strings.HasPrefix(d, "#FFFFFF,#F9DB91") {
		t.Errorf("palette default starts %q", d[:20])
	}
	if got := len(strings.Split(d, ",")); got != 16 {
		t.Errorf("palette has %d entries, want 16", got)
	}
}
