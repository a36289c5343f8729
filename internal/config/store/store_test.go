package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "config.ini"))
}

func TestReadDefaultsWhenMissing(t *testing.T) {
	s := newTestStore(t)

	if got := s.ReadString("Display", "CLOCK_TEXT_COLOR", "#FFFFFF"); got != "#FFFFFF" {
		t.Errorf("ReadString default = %q", got)
	}
	if got := s.ReadInt("Timer", "CLOCK_DEFAULT_START_TIME", 1500); got != 1500 {
		t.Errorf("ReadInt default = %d", got)
	}
	if got := s.ReadBool("Display", "WINDOW_TOPMOST", true); !got {
		t.Error("ReadBool default = false, want true")
	}
	if got := s.ReadFloat("Display", "WINDOW_SCALE", 1.62); got != 1.62 {
		t.Errorf("ReadFloat default = %v", got)
	}
}

func TestWriteFlushReadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	s.WriteString("Display", "CLOCK_TEXT_COLOR", "#FF5E96")
	s.WriteInt("Timer", "CLOCK_DEFAULT_START_TIME", 600)
	s.WriteBool("Display", "WINDOW_TOPMOST", false)
	s.WriteFloat("Display", "WINDOW_SCALE", 2.5)
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	// Fresh store against the same file.
	s2 := New(s.Path())
	if got := s2.ReadString("Display", "CLOCK_TEXT_COLOR", ""); got != "#FF5E96" {
		t.Errorf("color = %q, want #FF5E96", got)
	}
	if got := s2.ReadInt("Timer", "CLOCK_DEFAULT_START_TIME", 0); got != 600 {
		t.Errorf("start time = %d, want 600", got)
	}
	if got := s2.ReadBool("Display", "WINDOW_TOPMOST", true); got {
		t.Error("topmost = true, want false")
	}
	if got := s2.ReadFloat("Display", "WINDOW_SCALE", 0); got != 2.5 {
		t.Errorf("scale = %v, want 2.5", got)
	}
}

func TestHashValuesSurviveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	palette := "#FFFFFF,#F9DB91,#FF5E96_#56C6FF"
	s.WriteString("Colors", "COLOR_OPTIONS", palette)
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	s2 := New(s.Path())
	if got := s2.ReadString("Colors", "COLOR_OPTIONS", ""); got != palette {
		t.Errorf("palette = %q, want %q", got, palette)
	}
}

func TestUpdateAtomicWritesThrough(t *testing.T) {
	s := newTestStore(t)

	if !s.UpdateStringAtomic("General", "LANGUAGE", "English") {
		t.Fatal("UpdateStringAtomic failed")
	}
	if !s.UpdateFloatAtomic("Display", "PLUGIN_SCALE", 1.25) {
		t.Fatal("UpdateFloatAtomic failed")
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "LANGUAGE") {
		t.Errorf("file missing key: %s", data)
	}
}

func TestUpdateBatchAtomicSingleTransaction(t *testing.T) {
	s := newTestStore(t)

	items := []KeyValue{
		{"Display", "MOVE_STEP_SMALL", "10"},
		{"Display", "MOVE_STEP_LARGE", "50"},
		{"Timer", "CLOCK_USE_24HOUR", "TRUE"},
	}
	if !s.UpdateBatchAtomic(items) {
		t.Fatal("UpdateBatchAtomic failed")
	}

	s2 := New(s.Path())
	if got := s2.ReadInt("Display", "MOVE_STEP_LARGE", 0); got != 50 {
		t.Errorf("MOVE_STEP_LARGE = %d, want 50", got)
	}
	if got := s2.ReadBool("Timer", "CLOCK_USE_24HOUR", false); !got {
		t.Error("CLOCK_USE_24HOUR = false, want true")
	}
}

func TestUpdateBatchAtomicPreservesForeignKeys(t *testing.T) {
	s := newTestStore(t)
	if !s.UpdateStringAtomic("General", "FIRST_RUN", "FALSE") {
		t.Fatal("seed write failed")
	}

	// A different store handle writes other keys; the first key must
	// survive because the batch re-reads under the lock.
	s2 := New(s.Path())
	if !s2.UpdateBatchAtomic([]KeyValue{{"Timer", "CLOCK_TIMEOUT_TEXT", "0"}}) {
		t.Fatal("batch write failed")
	}

	s3 := New(s.Path())
	if got := s3.ReadString("General", "FIRST_RUN", "missing"); got != "FALSE" {
		t.Errorf("FIRST_RUN = %q, want FALSE", got)
	}
}

func TestValueClip(t *testing.T) {
	s := newTestStore(t)

	long := strings.Repeat("x", MaxValueLen+200)
	s.WriteString("Timer", "CLOCK_TIMEOUT_TEXT", long)
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := New(s.Path()).ReadString("Timer", "CLOCK_TIMEOUT_TEXT", "")
	if len(got) != MaxValueLen {
		t.Errorf("stored value length = %d, want %d", len(got), MaxValueLen)
	}
}

func TestInvalidateDropsCache(t *testing.T) {
	s := newTestStore(t)
	if !s.UpdateStringAtomic("General", "LANGUAGE", "English") {
		t.Fatal("seed write failed")
	}

	// Warm the cache, then modify the file behind the store's back.
	if got := s.ReadString("General", "LANGUAGE", ""); got != "English" {
		t.Fatalf("LANGUAGE = %q", got)
	}
	other := New(s.Path())
	if !other.UpdateStringAtomic("General", "LANGUAGE", "Spanish") {
		t.Fatal("external write failed")
	}

	s.Invalidate()
	if got := s.ReadString("General", "LANGUAGE", ""); got != "Spanish" {
		t.Errorf("after Invalidate LANGUAGE = %q, want Spanish", got)
	}
}

func TestEntriesEnumeratesFileOrder(t *testing.T) {
	s := newTestStore(t)
	s.WriteString("General", "CONFIG_VERSION", "1.0.3")
	s.WriteString("Display", "CLOCK_TEXT_COLOR", "#FFFFFF")
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	entries := New(s.Path()).Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Section != "General" || entries[0].Key != "CONFIG_VERSION" {
		t.Errorf("first entry = %+v", entries[0])
	}
}

func TestRemoveFile(t *testing.T) {
	s := newTestStore(t)
	if !s.UpdateStringAtomic("General", "FIRST_RUN", "TRUE") {
		t.Fatal("seed write failed")
	}
	if err := s.RemoveFile(); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Error("config file still exists")
	}
	// Removing a missing file is not an error.
	if err := s.RemoveFile(); err != nil {
		t.Errorf("RemoveFile on missing file: %v", err)
	}
}
