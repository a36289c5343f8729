// Package schema defines the configuration metadata table: every
// persisted setting with its section, key, default value, and type.
// Other config components derive defaults, validation targets, and
// write ordering from this single table.
package schema

import "strings"

// Version is the configuration format version written to CONFIG_VERSION.
const Version = "1.0.3"

// Section names as they appear in the persisted file.
const (
	SectionGeneral      = "General"
	SectionDisplay      = "Display"
	SectionTimer        = "Timer"
	SectionPomodoro     = "Pomodoro"
	SectionNotification = "Notification"
	SectionColors       = "Colors"
	SectionHotkeys      = "Hotkeys"
	SectionRecentFiles  = "RecentFiles"
	SectionAnimation    = "Animation"
)

// ValueType classifies how a setting's raw string value is interpreted.
type ValueType int

const (
	// TypeString is a free-form string value.
	TypeString ValueType = iota
	// TypeInt is a decimal integer.
	TypeInt
	// TypeFloat is a decimal floating-point number.
	TypeFloat
	// TypeBool is TRUE or FALSE.
	TypeBool
	// TypeEnum is one of a fixed token set.
	TypeEnum
	// TypeHotkey is a human-readable key chord such as "Ctrl+Shift+F1".
	TypeHotkey
	// TypeCustom has bespoke parse/serialize logic (comma lists, paths).
	TypeCustom
)

// Item describes one persisted setting.
type Item struct {
	Section string
	Key     string
	Default string
	Type    ValueType
	// Comment is the human-readable description emitted into the
	// default file's help blocks.
	Comment string
}

// MaxTimeOptions caps quick-countdown and Pomodoro interval lists.
const MaxTimeOptions = 10

// MaxRecentFiles caps the persisted recent-file slots.
const MaxRecentFiles = 5

// DefaultFontFile is the font shipped with the application, addressed
// through the %CONFIG_DIR% placeholder the path provider expands.
const DefaultFontFile = "%CONFIG_DIR%/resources/fonts/Wallpoet Essence.ttf"

// DefaultPalette is the color palette written on first run.
var DefaultPalette = []string{
	"#FFFFFF", "#F9DB91", "#F4CAE0", "#FFB6C1",
	"#A8E7DF", "#A3CFB3", "#92CBFC", "#BDA5E7",
	"#9370DB", "#8C92CF", "#72A9A5", "#EB99A7",
	"#EB96BD", "#FFAE8B", "#FF7F50", "#CA6174",
}

// items is the full metadata table in persisted order. The writer and
// the default-file generator walk it front to back, so the order here
// is the order on disk.
var items = []Item{
	// General
	{SectionGeneral, "CONFIG_VERSION", Version, TypeString, "Configuration version"},
	{SectionGeneral, "LANGUAGE", "English", TypeEnum, "Language"},
	{SectionGeneral, "SHORTCUT_CHECK_DONE", "FALSE", TypeBool, "Desktop shortcut check completed"},
	{SectionGeneral, "FIRST_RUN", "TRUE", TypeBool, "First run flag"},
	{SectionGeneral, "FONT_LICENSE_ACCEPTED", "FALSE", TypeBool, "Font license accepted"},
	{SectionGeneral, "FONT_LICENSE_VERSION_ACCEPTED", "", TypeString, "Accepted license version"},

	// Display
	{SectionDisplay, "CLOCK_TEXT_COLOR", "#FFFFFF", TypeString, "Text color (hex)"},
	{SectionDisplay, "CLOCK_BASE_FONT_SIZE", "20", TypeInt, "Base font size (8-500)"},
	{SectionDisplay, "FONT_FILE_NAME", DefaultFontFile, TypeCustom, "Font file path"},
	{SectionDisplay, "CLOCK_WINDOW_POS_X", "-2", TypeInt, "Window X position (-2 = Auto/Golden Ratio, -1 = Center)"},
	{SectionDisplay, "CLOCK_WINDOW_POS_Y", "-1", TypeInt, "Window Y position"},
	{SectionDisplay, "WINDOW_SCALE", "1.62", TypeFloat, "Window scale factor (0.5-100.0)"},
	{SectionDisplay, "PLUGIN_SCALE", "1.0", TypeFloat, "Plugin mode scale factor (0.5-100.0)"},
	{SectionDisplay, "WINDOW_TOPMOST", "TRUE", TypeBool, "Always on top"},
	{SectionDisplay, "WINDOW_OPACITY", "100", TypeInt, "Window opacity (1-100)"},
	{SectionDisplay, "MOVE_STEP_SMALL", "10", TypeInt, "Arrow key move step (1-500 pixels)"},
	{SectionDisplay, "MOVE_STEP_LARGE", "50", TypeInt, "Ctrl+arrow key move step (1-500 pixels)"},
	{SectionDisplay, "OPACITY_STEP_NORMAL", "1", TypeInt, "Opacity scroll step (1-100)"},
	{SectionDisplay, "OPACITY_STEP_FAST", "5", TypeInt, "Opacity Ctrl+scroll step (1-100)"},
	{SectionDisplay, "SCALE_STEP_NORMAL", "10", TypeInt, "Scale scroll step (1-100)"},
	{SectionDisplay, "SCALE_STEP_FAST", "15", TypeInt, "Scale Ctrl+scroll step (1-100)"},

	// Timer
	{SectionTimer, "CLOCK_DEFAULT_START_TIME", "1500", TypeInt, "Default timer duration (seconds)"},
	{SectionTimer, "CLOCK_USE_24HOUR", "TRUE", TypeBool, "Use 24-hour format"},
	{SectionTimer, "CLOCK_SHOW_SECONDS", "FALSE", TypeBool, "Show seconds in clock mode"},
	{SectionTimer, "CLOCK_TIME_FORMAT", "DEFAULT", TypeEnum, "Time format style"},
	{SectionTimer, "CLOCK_SHOW_MILLISECONDS", "FALSE", TypeBool, "Show centiseconds"},
	{SectionTimer, "CLOCK_TIME_OPTIONS", "1500,600,300", TypeCustom, "Quick countdown presets"},
	{SectionTimer, "CLOCK_TIMEOUT_TEXT", "0", TypeString, "Timeout text"},
	{SectionTimer, "CLOCK_TIMEOUT_ACTION", "MESSAGE", TypeEnum, "Timeout action type"},
	{SectionTimer, "CLOCK_TIMEOUT_FILE", "", TypeString, "File to open on timeout"},
	{SectionTimer, "CLOCK_TIMEOUT_WEBSITE", "", TypeCustom, "Website to open on timeout"},
	{SectionTimer, "STARTUP_MODE", "SHOW_TIME", TypeString, "Startup mode"},

	// Pomodoro
	{SectionPomodoro, "POMODORO_TIME_OPTIONS", "1500,300,1500,600", TypeCustom, "Pomodoro time intervals"},
	{SectionPomodoro, "POMODORO_LOOP_COUNT", "1", TypeInt, "Cycles before long break"},

	// Notification
	{SectionNotification, "CLOCK_TIMEOUT_MESSAGE_TEXT", "Time's up!", TypeString, "Timeout message"},
	{SectionNotification, "NOTIFICATION_TIMEOUT_MS", "3000", TypeInt, "Notification display duration (0-60000 ms)"},
	{SectionNotification, "NOTIFICATION_MAX_OPACITY", "95", TypeInt, "Notification opacity (1-100)"},
	{SectionNotification, "NOTIFICATION_TYPE", "POMATIME", TypeEnum, "Notification display type"},
	{SectionNotification, "NOTIFICATION_SOUND_FILE", "", TypeString, "Notification sound file"},
	{SectionNotification, "NOTIFICATION_SOUND_VOLUME", "100", TypeInt, "Sound volume (0-100)"},
	{SectionNotification, "NOTIFICATION_DISABLED", "FALSE", TypeBool, "Disable all notifications"},
	{SectionNotification, "NOTIFICATION_WINDOW_X", "-1", TypeInt, "Notification window X position"},
	{SectionNotification, "NOTIFICATION_WINDOW_Y", "-1", TypeInt, "Notification window Y position"},
	{SectionNotification, "NOTIFICATION_WINDOW_WIDTH", "0", TypeInt, "Notification window width"},
	{SectionNotification, "NOTIFICATION_WINDOW_HEIGHT", "0", TypeInt, "Notification window height"},

	// Animation
	{SectionAnimation, "ANIMATION_PATH", "__logo__", TypeString, "Tray icon animation path"},
	{SectionAnimation, "ANIMATION_SPEED_METRIC", "MEMORY", TypeEnum, "Animation speed metric (MEMORY/CPU/TIMER)"},
	{SectionAnimation, "ANIMATION_SPEED_DEFAULT", "100", TypeInt, "Default animation speed percentage"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_10", "140", TypeString, "Speed at 10% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_20", "180", TypeString, "Speed at 20% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_30", "220", TypeString, "Speed at 30% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_40", "260", TypeString, "Speed at 40% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_50", "300", TypeString, "Speed at 50% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_60", "340", TypeString, "Speed at 60% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_70", "380", TypeString, "Speed at 70% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_80", "420", TypeString, "Speed at 80% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_90", "460", TypeString, "Speed at 90% metric"},
	{SectionAnimation, "ANIMATION_SPEED_MAP_100", "500", TypeString, "Speed at 100% metric"},
	{SectionAnimation, "ANIMATION_FOLDER_INTERVAL_MS", "150", TypeInt, "Folder animation interval"},
	{SectionAnimation, "ANIMATION_MIN_INTERVAL_MS", "0", TypeInt, "Minimum animation interval"},

	// Hotkeys
	{SectionHotkeys, "HOTKEY_SHOW_TIME", "None", TypeHotkey, "Show current time hotkey"},
	{SectionHotkeys, "HOTKEY_COUNT_UP", "None", TypeHotkey, "Count up mode hotkey"},
	{SectionHotkeys, "HOTKEY_COUNTDOWN", "None", TypeHotkey, "Countdown mode hotkey"},
	{SectionHotkeys, "HOTKEY_QUICK_COUNTDOWN1", "None", TypeHotkey, "Quick countdown 1 hotkey"},
	{SectionHotkeys, "HOTKEY_QUICK_COUNTDOWN2", "None", TypeHotkey, "Quick countdown 2 hotkey"},
	{SectionHotkeys, "HOTKEY_QUICK_COUNTDOWN3", "None", TypeHotkey, "Quick countdown 3 hotkey"},
	{SectionHotkeys, "HOTKEY_POMODORO", "None", TypeHotkey, "Pomodoro mode hotkey"},
	{SectionHotkeys, "HOTKEY_TOGGLE_VISIBILITY", "None", TypeHotkey, "Toggle visibility hotkey"},
	{SectionHotkeys, "HOTKEY_EDIT_MODE", "None", TypeHotkey, "Edit mode hotkey"},
	{SectionHotkeys, "HOTKEY_PAUSE_RESUME", "None", TypeHotkey, "Pause/resume hotkey"},
	{SectionHotkeys, "HOTKEY_RESTART_TIMER", "None", TypeHotkey, "Restart timer hotkey"},
	{SectionHotkeys, "HOTKEY_CUSTOM_COUNTDOWN", "None", TypeHotkey, "Custom countdown hotkey"},

	// Colors
	{SectionColors, "COLOR_OPTIONS", strings.Join(DefaultPalette, ","), TypeString, "Color palette"},

	// Recent files are dynamic (CLOCK_RECENT_FILE_1..N) and handled by
	// the writer, not the static table.
}

// Items returns the full metadata table in persisted order. The
// returned slice is shared; callers must not modify it.
func Items() []Item {
	return items
}

// SectionItems returns the table entries for one section, preserving
// table order.
func SectionItems(section string) []Item {
	var out []Item
	for _, it := range items {
		if it.Section == section {
			out = append(out, it)
		}
	}
	return out
}

// Lookup finds the metadata entry for a section/key pair.
func Lookup(section, key string) (Item, bool) {
	for _, it := range items {
		if it.Section == section && it.Key == key {
			return it, true
		}
	}
	return Item{}, false
}

// DefaultFor returns the default value for a section/key pair, or ""
// if the pair is not in the table.
func DefaultFor(section, key string) string {
	if it, ok := Lookup(section, key); ok {
		return it.Default
	}
	return ""
}

// HotkeyKeys returns the hotkey key names in persisted order.
func HotkeyKeys() []string {
	var out []string
	for _, it := range items {
		if it.Type == TypeHotkey {
			out = append(out, it.Key)
		}
	}
	return out
}
