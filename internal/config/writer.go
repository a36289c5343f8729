package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pomatime/pomatime/internal/config/schema"
	"github.com/pomatime/pomatime/internal/config/store"
)

// Writer serializes live state back to the file. Every write path
// goes through the store's batch primitive so a full save is one lock
// acquisition and one atomic rename. Paths under configDir are stored
// with the placeholder so the file stays machine-independent.
type Writer struct {
	store     *store.Store
	configDir string
}

func NewWriter(st *store.Store, configDir string) *Writer {
	return &Writer{store: st, configDir: configDir}
}

// Collect flattens live state into the full ordered key/value list:
// every schema item in table order, then the fixed recent-file slots,
// empty-padded. FIRST_RUN keeps whatever the file currently says, so
// a settings save never resurrects first-run behavior.
func (w *Writer) Collect(live *LiveState) []store.KeyValue {
	items := make([]store.KeyValue, 0, len(schema.Items())+schema.MaxRecentFiles)
	for _, item := range schema.Items() {
		items = append(items, store.KeyValue{
			Section: item.Section,
			Key:     item.Key,
			Value:   w.valueFor(live, item),
		})
	}
	items = append(items, recentFileSlots(live)...)
	return items
}

// WriteAll persists the entire live state in one transaction.
func (w *Writer) WriteAll(live *LiveState) bool {
	return w.store.UpdateBatchAtomic(w.Collect(live))
}

// WriteSection persists only the items belonging to one section,
// still as a single transaction. Used to commit one settings page.
func (w *Writer) WriteSection(live *LiveState, section string) bool {
	var filtered []store.KeyValue
	for _, kv := range w.Collect(live) {
		if kv.Section == section {
			filtered = append(filtered, kv)
		}
	}
	if len(filtered) == 0 {
		return false
	}
	return w.store.UpdateBatchAtomic(filtered)
}

func (w *Writer) valueFor(live *LiveState, item schema.Item) string {
	switch item.Section {
	case schema.SectionGeneral:
		return w.generalValue(live, item)
	case schema.SectionDisplay:
		return displayValue(live, item.Key)
	case schema.SectionTimer:
		return w.timerValue(live, item.Key)
	case schema.SectionPomodoro:
		if item.Key == "POMODORO_TIME_OPTIONS" {
			return FormatTimeList(live.PomodoroTimes)
		}
		return strconv.Itoa(live.PomodoroLoopCount)
	case schema.SectionNotification:
		return notificationValue(live, item.Key)
	case schema.SectionAnimation:
		return animationValue(live, item.Key)
	case schema.SectionHotkeys:
		for i, key := range schema.HotkeyKeys() {
			if key == item.Key && i < int(HotkeyCount) {
				return live.Hotkeys[i].String()
			}
		}
		return "None"
	case schema.SectionColors:
		return strings.Join(OrderPlainFirst(live.ColorOptions), ",")
	}
	return item.Default
}

func (w *Writer) generalValue(live *LiveState, item schema.Item) string {
	switch item.Key {
	case "CONFIG_VERSION":
		return schema.Version
	case "LANGUAGE":
		return live.Language
	case "SHORTCUT_CHECK_DONE":
		return formatBool(live.ShortcutCheckDone)
	case "FIRST_RUN":
		return w.store.ReadString(schema.SectionGeneral, "FIRST_RUN", item.Default)
	case "FONT_LICENSE_ACCEPTED":
		return formatBool(live.FontLicenseAccepted)
	case "FONT_LICENSE_VERSION_ACCEPTED":
		return live.FontLicenseVersion
	}
	return item.Default
}

func displayValue(live *LiveState, key string) string {
	switch key {
	case "CLOCK_TEXT_COLOR":
		return live.TextColor
	case "CLOCK_BASE_FONT_SIZE":
		return strconv.Itoa(live.BaseFontSize)
	case "FONT_FILE_NAME":
		return live.FontFileName
	case "CLOCK_WINDOW_POS_X":
		return strconv.Itoa(live.WindowPosX)
	case "CLOCK_WINDOW_POS_Y":
		return strconv.Itoa(live.WindowPosY)
	case "WINDOW_SCALE":
		return formatFloat(live.WindowScale)
	case "PLUGIN_SCALE":
		return formatFloat(live.PluginScale)
	case "WINDOW_TOPMOST":
		return formatBool(live.WindowTopmost)
	case "WINDOW_OPACITY":
		return strconv.Itoa(live.WindowOpacity)
	case "MOVE_STEP_SMALL":
		return strconv.Itoa(live.MoveStepSmall)
	case "MOVE_STEP_LARGE":
		return strconv.Itoa(live.MoveStepLarge)
	case "OPACITY_STEP_NORMAL":
		return strconv.Itoa(live.OpacityStepNormal)
	case "OPACITY_STEP_FAST":
		return strconv.Itoa(live.OpacityStepFast)
	case "SCALE_STEP_NORMAL":
		return strconv.Itoa(live.ScaleStepNormal)
	case "SCALE_STEP_FAST":
		return strconv.Itoa(live.ScaleStepFast)
	}
	return ""
}

func (w *Writer) timerValue(live *LiveState, key string) string {
	switch key {
	case "CLOCK_DEFAULT_START_TIME":
		return strconv.Itoa(live.DefaultStartTime)
	case "CLOCK_USE_24HOUR":
		return formatBool(live.Use24Hour)
	case "CLOCK_SHOW_SECONDS":
		return formatBool(live.ShowSeconds)
	case "CLOCK_TIME_FORMAT":
		return live.TimeFormat.String()
	case "CLOCK_SHOW_MILLISECONDS":
		return formatBool(live.ShowMilliseconds)
	case "CLOCK_TIME_OPTIONS":
		return FormatTimeList(live.TimeOptions)
	case "CLOCK_TIMEOUT_TEXT":
		return live.TimeoutText
	case "CLOCK_TIMEOUT_ACTION":
		// One-shot actions never round-trip to disk.
		action := live.TimeoutAction
		if action.IsOneShot() {
			action = ActionMessage
		}
		return action.String()
	case "CLOCK_TIMEOUT_FILE":
		return ContractPath(live.TimeoutFilePath, w.configDir)
	case "CLOCK_TIMEOUT_WEBSITE":
		return live.TimeoutWebsite
	case "STARTUP_MODE":
		return string(live.StartupMode)
	}
	return ""
}

func notificationValue(live *LiveState, key string) string {
	switch key {
	case "CLOCK_TIMEOUT_MESSAGE_TEXT":
		return live.TimeoutMessage
	case "NOTIFICATION_TIMEOUT_MS":
		return strconv.Itoa(live.NotificationTimeoutMs)
	case "NOTIFICATION_MAX_OPACITY":
		return strconv.Itoa(live.NotificationMaxOpacity)
	case "NOTIFICATION_TYPE":
		return live.NotificationType.String()
	case "NOTIFICATION_SOUND_FILE":
		return live.NotificationSoundFile
	case "NOTIFICATION_SOUND_VOLUME":
		return strconv.Itoa(live.NotificationSoundVolume)
	case "NOTIFICATION_DISABLED":
		return formatBool(live.NotificationDisabled)
	case "NOTIFICATION_WINDOW_X":
		return strconv.Itoa(live.NotificationWindowX)
	case "NOTIFICATION_WINDOW_Y":
		return strconv.Itoa(live.NotificationWindowY)
	case "NOTIFICATION_WINDOW_WIDTH":
		return strconv.Itoa(live.NotificationWindowW)
	case "NOTIFICATION_WINDOW_HEIGHT":
		return strconv.Itoa(live.NotificationWindowH)
	}
	return ""
}

func animationValue(live *LiveState, key string) string {
	switch key {
	case "ANIMATION_PATH":
		return live.AnimationPath
	case "ANIMATION_SPEED_METRIC":
		return live.AnimationSpeedMetric.String()
	case "ANIMATION_SPEED_DEFAULT":
		return strconv.Itoa(live.AnimationSpeedDefault)
	case "ANIMATION_FOLDER_INTERVAL_MS":
		return strconv.Itoa(live.AnimationFolderInterval)
	case "ANIMATION_MIN_INTERVAL_MS":
		return strconv.Itoa(live.AnimationMinInterval)
	}
	for i := range live.AnimationSpeedMap {
		if key == fmt.Sprintf("ANIMATION_SPEED_MAP_%d", (i+1)*10) {
			return strconv.Itoa(live.AnimationSpeedMap[i])
		}
	}
	return ""
}

func recentFileSlots(live *LiveState) []store.KeyValue {
	slots := make([]store.KeyValue, 0, schema.MaxRecentFiles)
	for i := 0; i < schema.MaxRecentFiles; i++ {
		value := ""
		if i < len(live.RecentFiles) {
			value = live.RecentFiles[i]
		}
		slots = append(slots, store.KeyValue{
			Section: schema.SectionRecentFiles,
			Key:     fmt.Sprintf("CLOCK_RECENT_FILE_%d", i+1),
			Value:   value,
		})
	}
	return slots
}

// SetTimeoutAction arms an action in live state and persists it. A
// one-shot action stays armed in memory but the file always records
// MESSAGE in its place.
func (w *Writer) SetTimeoutAction(live *LiveState, action TimeoutAction) bool {
	live.TimeoutAction = action
	persisted := action
	if persisted.IsOneShot() {
		persisted = ActionMessage
	}
	return w.store.UpdateStringAtomic(schema.SectionTimer, "CLOCK_TIMEOUT_ACTION", persisted.String())
}

// SetTimeoutFile persists the file target and switches the action to
// open it. Live state keeps the expanded path; the file gets the
// contracted form.
func (w *Writer) SetTimeoutFile(live *LiveState, path string) bool {
	live.TimeoutFilePath = path
	live.TimeoutAction = ActionOpenFile
	return w.store.UpdateBatchAtomic([]store.KeyValue{
		{Section: schema.SectionTimer, Key: "CLOCK_TIMEOUT_FILE", Value: ContractPath(path, w.configDir)},
		{Section: schema.SectionTimer, Key: "CLOCK_TIMEOUT_ACTION", Value: ActionOpenFile.String()},
	})
}

// SetTimeoutWebsite persists the URL target and switches the action
// to open it.
func (w *Writer) SetTimeoutWebsite(live *LiveState, url string) bool {
	live.TimeoutWebsite = url
	live.TimeoutAction = ActionOpenWebsite
	return w.store.UpdateBatchAtomic([]store.KeyValue{
		{Section: schema.SectionTimer, Key: "CLOCK_TIMEOUT_WEBSITE", Value: url},
		{Section: schema.SectionTimer, Key: "CLOCK_TIMEOUT_ACTION", Value: ActionOpenWebsite.String()},
	})
}

// SetTopmost flips the always-on-top flag and persists it.
func (w *Writer) SetTopmost(live *LiveState, topmost bool) bool {
	live.WindowTopmost = topmost
	return w.store.UpdateBoolAtomic(schema.SectionDisplay, "WINDOW_TOPMOST", topmost)
}

// SetTimeOptions replaces the quick-countdown presets and persists
// them, capped at the schema maximum.
func (w *Writer) SetTimeOptions(live *LiveState, options []int) bool {
	if len(options) > schema.MaxTimeOptions {
		options = options[:schema.MaxTimeOptions]
	}
	live.TimeOptions = append([]int(nil), options...)
	return w.store.UpdateStringAtomic(schema.SectionTimer, "CLOCK_TIME_OPTIONS", FormatTimeList(live.TimeOptions))
}

func formatBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
