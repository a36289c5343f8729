package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pomatime/pomatime/internal/config/schema"
	"github.com/pomatime/pomatime/internal/config/store"
)

func newTestWriter(t *testing.T) (*Writer, *store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	st := store.New(path)
	return NewWriter(st, filepath.Dir(path)), st, path
}

func TestCollectCoversEverySchemaItem(t *testing.T) {
	w, _, _ := newTestWriter(t)
	items := w.Collect(NewLiveState())

	want := len(schema.Items()) + schema.MaxRecentFiles
	if len(items) != want {
		t.Fatalf("collected %d items, want %d", len(items), want)
	}

	seen := make(map[string]string, len(items))
	for _, kv := range items {
		seen[kv.Section+"/"+kv.Key] = kv.Value
	}
	for _, item := range schema.Items() {
		if _, ok := seen[item.Section+"/"+item.Key]; !ok {
			t.Errorf("missing %s/%s", item.Section, item.Key)
		}
	}
	if seen["General/CONFIG_VERSION"] != schema.Version {
		t.Errorf("CONFIG_VERSION = %q", seen["General/CONFIG_VERSION"])
	}
	if seen["RecentFiles/CLOCK_RECENT_FILE_5"] != "" {
		t.Error("unused recent slot should be empty-padded")
	}
}

func TestCollectNeverEmitsOneShotAction(t *testing.T) {
	w, _, _ := newTestWriter(t)
	live := NewLiveState()
	live.TimeoutAction = ActionShutdown

	for _, kv := range w.Collect(live) {
		if kv.Key == "CLOCK_TIMEOUT_ACTION" && kv.Value != "MESSAGE" {
			t.Fatalf("one-shot action leaked to disk as %q", kv.Value)
		}
	}
	// Collection must not disarm the in-memory action.
	if live.TimeoutAction != ActionShutdown {
		t.Error("collect modified live state")
	}
}

func TestWriteAllRoundTripsThroughLoader(t *testing.T) {
	w, st, path := newTestWriter(t)
	live := NewLiveState()
	live.DefaultStartTime = 2700
	live.TextColor = "#ABCDEF"
	live.Language = "zh_CN"
	live.TimeOptions = []int{120, 45}
	hk, err := ParseHotkey("Ctrl+Shift+F1")
	if err != nil {
		t.Fatal(err)
	}
	live.Hotkeys[HotkeyPauseResume] = hk

	if !w.WriteAll(live) {
		t.Fatal("WriteAll failed")
	}

	snap := NewLoader(st, filepath.Dir(path)).Load()
	if snap.DefaultStartTime != 2700 {
		t.Errorf("start time = %d, want 2700", snap.DefaultStartTime)
	}
	if snap.TextColor != "#ABCDEF" {
		t.Errorf("text color = %q", snap.TextColor)
	}
	if snap.Language != "zh_CN" {
		t.Errorf("language = %q", snap.Language)
	}
	if len(snap.TimeOptions) != 2 || snap.TimeOptions[0] != 120 || snap.TimeOptions[1] != 45 {
		t.Errorf("time options = %v", snap.TimeOptions)
	}
	if snap.Hotkeys[HotkeyPauseResume] != hk {
		t.Errorf("hotkey = %v, want %v", snap.Hotkeys[HotkeyPauseResume], hk)
	}
}

func TestWriteAllPreservesFirstRunFlag(t *testing.T) {
	w, st, _ := newTestWriter(t)
	st.WriteString(schema.SectionGeneral, "FIRST_RUN", "FALSE")
	if err := st.Flush(); err != nil {
		t.Fatal(err)
	}

	if !w.WriteAll(NewLiveState()) {
		t.Fatal("WriteAll failed")
	}
	st.Invalidate()
	if got := st.ReadString(schema.SectionGeneral, "FIRST_RUN", ""); got != "FALSE" {
		t.Errorf("FIRST_RUN = %q, want FALSE", got)
	}
}

func TestWriteSectionOnlyTouchesThatSection(t *testing.T) {
	w, st, _ := newTestWriter(t)
	live := NewLiveState()
	if !w.WriteAll(live) {
		t.Fatal("seed write failed")
	}

	live.DefaultStartTime = 60
	live.TextColor = "#123456"
	if !w.WriteSection(live, schema.SectionTimer) {
		t.Fatal("WriteSection failed")
	}

	st.Invalidate()
	if got := st.ReadInt(schema.SectionTimer, "CLOCK_DEFAULT_START_TIME", 0); got != 60 {
		t.Errorf("start time = %d, want 60", got)
	}
	if got := st.ReadString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", ""); got != "#FFFFFF" {
		t.Errorf("display section touched, color = %q", got)
	}
}

func TestDirectSetters(t *testing.T) {
	w, st, _ := newTestWriter(t)
	live := NewLiveState()

	if !w.SetTopmost(live, false) {
		t.Fatal("SetTopmost failed")
	}
	st.Invalidate()
	if st.ReadBool(schema.SectionDisplay, "WINDOW_TOPMOST", true) {
		t.Error("topmost not persisted")
	}

	if !w.SetTimeoutWebsite(live, "https://example.com") {
		t.Fatal("SetTimeoutWebsite failed")
	}
	st.Invalidate()
	if got := st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_ACTION", ""); got != "OPEN_WEBSITE" {
		t.Errorf("action = %q, want OPEN_WEBSITE", got)
	}
	if live.TimeoutAction != ActionOpenWebsite {
		t.Error("live action not switched")
	}

	// Arming a one-shot keeps it live but persists MESSAGE.
	if !w.SetTimeoutAction(live, ActionRestart) {
		t.Fatal("SetTimeoutAction failed")
	}
	st.Invalidate()
	if got := st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_ACTION", ""); got != "MESSAGE" {
		t.Errorf("persisted action = %q, want MESSAGE", got)
	}
	if live.TimeoutAction != ActionRestart {
		t.Error("live one-shot disarmed")
	}

	if !w.SetTimeOptions(live, []int{300, 600, 900}) {
		t.Fatal("SetTimeOptions failed")
	}
	st.Invalidate()
	if got := st.ReadString(schema.SectionTimer, "CLOCK_TIME_OPTIONS", ""); got != "300,600,900" {
		t.Errorf("time options = %q", got)
	}
}

func TestTimeoutFilePathStoredWithPlaceholder(t *testing.T) {
	w, st, path := newTestWriter(t)
	dir := filepath.Dir(path)
	target := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	live := NewLiveState()
	if !w.SetTimeoutFile(live, target) {
		t.Fatal("SetTimeoutFile failed")
	}
	if live.TimeoutFilePath != target {
		t.Errorf("live path = %q, want %q", live.TimeoutFilePath, target)
	}

	st.Invalidate()
	stored := st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_FILE", "")
	if !strings.HasPrefix(stored, ConfigDirPlaceholder) {
		t.Errorf("stored path = %q, want %s prefix", stored, ConfigDirPlaceholder)
	}

	// The loader expands the placeholder back to the absolute path.
	if got := NewLoader(st, dir).Load().TimeoutFilePath; got != target {
		t.Errorf("loaded path = %q, want %q", got, target)
	}

	// A full save must not lose the contracted form either.
	if !w.WriteAll(live) {
		t.Fatal("WriteAll failed")
	}
	st.Invalidate()
	stored = st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_FILE", "")
	if !strings.HasPrefix(stored, ConfigDirPlaceholder) {
		t.Errorf("stored path after WriteAll = %q, want %s prefix", stored, ConfigDirPlaceholder)
	}
}

func TestValidatedCorrectionPersists(t *testing.T) {
	w, st, path := newTestWriter(t)

	snap := DefaultSnapshot()
	snap.DefaultStartTime = -10
	if !Validate(snap) {
		t.Fatal("out-of-range start time should report modified")
	}
	if snap.DefaultStartTime != 1500 {
		t.Fatalf("start time = %d, want 1500", snap.DefaultStartTime)
	}

	live := NewLiveState()
	Apply(live, snap, nil)
	if !w.WriteAll(live) {
		t.Fatal("WriteAll failed")
	}

	reloaded := NewLoader(st, filepath.Dir(path)).Load()
	if reloaded.DefaultStartTime != 1500 {
		t.Errorf("persisted start time = %d, want 1500", reloaded.DefaultStartTime)
	}
}
