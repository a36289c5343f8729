package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pomatime/pomatime/internal/config/schema"
)

// DefaultSnapshot builds a fully-populated snapshot from the schema
// defaults.
func DefaultSnapshot() *Snapshot {
	snap := &Snapshot{
		Language:             schema.DefaultFor(schema.SectionGeneral, "LANGUAGE"),
		TextColor:            schema.DefaultFor(schema.SectionDisplay, "CLOCK_TEXT_COLOR"),
		BaseFontSize:         defaultInt(schema.SectionDisplay, "CLOCK_BASE_FONT_SIZE"),
		FontFileName:         schema.DefaultFontFile,
		WindowPosX:           defaultInt(schema.SectionDisplay, "CLOCK_WINDOW_POS_X"),
		WindowPosY:           defaultInt(schema.SectionDisplay, "CLOCK_WINDOW_POS_Y"),
		WindowScale:          defaultFloat(schema.SectionDisplay, "WINDOW_SCALE"),
		PluginScale:          defaultFloat(schema.SectionDisplay, "PLUGIN_SCALE"),
		WindowTopmost:        true,
		WindowOpacity:        defaultInt(schema.SectionDisplay, "WINDOW_OPACITY"),
		MoveStepSmall:        defaultInt(schema.SectionDisplay, "MOVE_STEP_SMALL"),
		MoveStepLarge:        defaultInt(schema.SectionDisplay, "MOVE_STEP_LARGE"),
		OpacityStepNormal:    defaultInt(schema.SectionDisplay, "OPACITY_STEP_NORMAL"),
		OpacityStepFast:      defaultInt(schema.SectionDisplay, "OPACITY_STEP_FAST"),
		ScaleStepNormal:      defaultInt(schema.SectionDisplay, "SCALE_STEP_NORMAL"),
		ScaleStepFast:        defaultInt(schema.SectionDisplay, "SCALE_STEP_FAST"),
		DefaultStartTime:     defaultInt(schema.SectionTimer, "CLOCK_DEFAULT_START_TIME"),
		Use24Hour:            true,
		TimeFormat:           FormatDefault,
		TimeOptions:          ParseTimeList(schema.DefaultFor(schema.SectionTimer, "CLOCK_TIME_OPTIONS")),
		TimeoutText:          schema.DefaultFor(schema.SectionTimer, "CLOCK_TIMEOUT_TEXT"),
		TimeoutAction:        ActionMessage,
		StartupMode:          ModeShowTime,
		PomodoroTimes:        ParseTimeList(schema.DefaultFor(schema.SectionPomodoro, "POMODORO_TIME_OPTIONS")),
		PomodoroLoopCount:    defaultInt(schema.SectionPomodoro, "POMODORO_LOOP_COUNT"),
		TimeoutMessage:       schema.DefaultFor(schema.SectionNotification, "CLOCK_TIMEOUT_MESSAGE_TEXT"),
		NotificationType:     NotifyPomatime,
		ColorOptions:         append([]string(nil), schema.DefaultPalette...),
		AnimationPath:        schema.DefaultFor(schema.SectionAnimation, "ANIMATION_PATH"),
		AnimationSpeedMetric: MetricMemory,
	}

	snap.NotificationTimeoutMs = defaultInt(schema.SectionNotification, "NOTIFICATION_TIMEOUT_MS")
	snap.NotificationMaxOpacity = defaultInt(schema.SectionNotification, "NOTIFICATION_MAX_OPACITY")
	snap.NotificationSoundVolume = defaultInt(schema.SectionNotification, "NOTIFICATION_SOUND_VOLUME")
	snap.NotificationWindowX = defaultInt(schema.SectionNotification, "NOTIFICATION_WINDOW_X")
	snap.NotificationWindowY = defaultInt(schema.SectionNotification, "NOTIFICATION_WINDOW_Y")

	snap.AnimationSpeedDefault = defaultInt(schema.SectionAnimation, "ANIMATION_SPEED_DEFAULT")
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("ANIMATION_SPEED_MAP_%d", (i+1)*10)
		snap.AnimationSpeedMap[i] = defaultInt(schema.SectionAnimation, key)
	}
	snap.AnimationFolderInterval = defaultInt(schema.SectionAnimation, "ANIMATION_FOLDER_INTERVAL_MS")
	snap.AnimationMinInterval = defaultInt(schema.SectionAnimation, "ANIMATION_MIN_INTERVAL_MS")

	return snap
}

func defaultInt(section, key string) int {
	v, _ := strconv.Atoi(schema.DefaultFor(section, key))
	return v
}

func defaultFloat(section, key string) float64 {
	v, _ := strconv.ParseFloat(schema.DefaultFor(section, key), 64)
	return v
}

// ParseTimeList parses a bounded comma-separated list of positive
// integers, dropping malformed tokens rather than failing.
func ParseTimeList(raw string) []int {
	var out []int
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v <= 0 {
			continue
		}
		out = append(out, v)
		if len(out) == schema.MaxTimeOptions {
			break
		}
	}
	return out
}

// FormatTimeList renders a time list in its stored comma form.
func FormatTimeList(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

// WriteDefaultFile regenerates the config file with every schema
// default and the section help blocks, replacing whatever was there.
func WriteDefaultFile(path string) error {
	var b strings.Builder

	lastSection := ""
	items := schema.Items()
	for i, item := range items {
		if item.Section != lastSection {
			fmt.Fprintf(&b, "[%s]\n", item.Section)
			lastSection = item.Section
		}
		fmt.Fprintf(&b, "%s=%s\n", item.Key, item.Default)

		sectionEnds := i+1 >= len(items) || items[i+1].Section != item.Section
		if sectionEnds {
			writeSectionHelp(&b, item.Section)
		}
	}

	fmt.Fprintf(&b, "[%s]\n", schema.SectionRecentFiles)
	for i := 1; i <= schema.MaxRecentFiles; i++ {
		fmt.Fprintf(&b, "CLOCK_RECENT_FILE_%d=\n", i)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// writeSectionHelp emits the help comment block that follows certain
// sections in a freshly generated file.
func writeSectionHelp(b *strings.Builder, section string) {
	const rule = ";========================================================\n"

	switch section {
	case schema.SectionDisplay:
		b.WriteString(rule)
		b.WriteString("; Display section help (hot reload supported)\n")
		b.WriteString(rule)
		b.WriteString("; MOVE_STEP_SMALL: arrow key move step in edit mode (unit: pixels).\n")
		b.WriteString(";   Range: 1-500 pixels, default 10.\n")
		b.WriteString("; MOVE_STEP_LARGE: Ctrl+arrow key move step in edit mode (unit: pixels).\n")
		b.WriteString(";   Range: 1-500 pixels, default 50.\n")
		b.WriteString("; OPACITY_STEP_NORMAL / OPACITY_STEP_FAST: mouse wheel opacity step\n")
		b.WriteString(";   (Ctrl held for fast). Range: 1-100%, defaults 1% and 5%.\n")
		b.WriteString("; SCALE_STEP_NORMAL / SCALE_STEP_FAST: mouse wheel scale step\n")
		b.WriteString(";   (Ctrl held for fast). Range: 1-100%, defaults 10% and 15%.\n")
		b.WriteString(rule)

	case schema.SectionAnimation:
		b.WriteString(rule)
		b.WriteString("; Animation options help (hot reload supported)\n")
		b.WriteString(rule)
		b.WriteString("; ANIMATION_SPEED_DEFAULT: base speed scale (unit: percent).\n")
		b.WriteString(";   100 = 1x speed, 200 = 2x, 50 = 0.5x.\n")
		b.WriteString(";   Works with ANIMATION_SPEED_MAP_* breakpoints via linear interpolation.\n")
		b.WriteString("; ANIMATION_FOLDER_INTERVAL_MS: base playback interval (milliseconds).\n")
		b.WriteString(";   Higher = slower. Default 150ms. Suggested range: 50-500ms.\n")
		b.WriteString("; ANIMATION_MIN_INTERVAL_MS: optional minimum interval per frame.\n")
		b.WriteString(";   0 = use system default; N>0 enforces at least N ms per frame.\n")
		b.WriteString(rule)

	case schema.SectionHotkeys:
		b.WriteString(rule)
		b.WriteString("; Hotkeys section help (hot reload supported)\n")
		b.WriteString(rule)
		b.WriteString("; Format: KEY=Ctrl+Shift+Alt+Key  or  KEY=None  or  KEY=0xNN (hex code)\n")
		b.WriteString(";  - Modifiers: Ctrl, Shift, Alt (combine with '+')\n")
		b.WriteString(";  - Keys: A-Z, 0-9, F1..F24, Backspace, Tab, Enter, Esc, Space,\n")
		b.WriteString(";          PageUp, PageDown, End, Home, Left, Up, Right, Down, Insert, Delete,\n")
		b.WriteString(";          Num0..Num9, Num*, Num+, Num-, Num., Num/\n")
		b.WriteString(";  - Examples: Ctrl+Shift+K  |  Alt+F12  |  None  |  0x5B\n")
		b.WriteString(";  - Note: some combinations may be reserved by the system or other apps.\n")
		b.WriteString(rule)

	case schema.SectionColors:
		b.WriteString(rule)
		b.WriteString("; Colors section help (hot reload supported)\n")
		b.WriteString(rule)
		b.WriteString("; COLOR_OPTIONS: comma-separated quick color list used by dialogs/menus.\n")
		b.WriteString(";   Token format: #RRGGBB or RRGGBB (6 hex digits); gradients join\n")
		b.WriteString(";   stops with '_', e.g. #FF5E96_#56C6FF.\n")
		b.WriteString(rule)
	}
}
