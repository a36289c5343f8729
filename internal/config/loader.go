package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pomatime/pomatime/internal/config/schema"
	"github.com/pomatime/pomatime/internal/config/store"
	"github.com/pomatime/pomatime/internal/logging"
)

// Loader reads the persisted file into snapshots. It never fails: a
// missing or corrupt file yields a fully-defaulted snapshot.
type Loader struct {
	store     *store.Store
	configDir string
	logger    *logging.Logger

	// fileExists is swappable in tests.
	fileExists func(string) bool
}

// NewLoader creates a loader over the given store. configDir anchors
// placeholder expansion for stored paths.
func NewLoader(st *store.Store, configDir string) *Loader {
	return &Loader{
		store:     st,
		configDir: configDir,
		logger:    logging.Null,
		fileExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// SetLogger routes load diagnostics somewhere visible. Parse failures
// are never fatal, so the log is the only place they surface.
func (l *Loader) SetLogger(logger *logging.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Load builds a complete snapshot from the file. Every field is
// defaulted first, so partially-populated snapshots never escape.
func (l *Loader) Load() *Snapshot {
	snap := DefaultSnapshot()
	st := l.store

	// General
	snap.Language = st.ReadString(schema.SectionGeneral, "LANGUAGE", snap.Language)
	snap.ShortcutCheckDone = st.ReadBool(schema.SectionGeneral, "SHORTCUT_CHECK_DONE", snap.ShortcutCheckDone)
	snap.FontLicenseAccepted = st.ReadBool(schema.SectionGeneral, "FONT_LICENSE_ACCEPTED", snap.FontLicenseAccepted)
	snap.FontLicenseVersion = st.ReadString(schema.SectionGeneral, "FONT_LICENSE_VERSION_ACCEPTED", snap.FontLicenseVersion)

	// Display
	snap.TextColor = st.ReadString(schema.SectionDisplay, "CLOCK_TEXT_COLOR", snap.TextColor)
	snap.BaseFontSize = st.ReadInt(schema.SectionDisplay, "CLOCK_BASE_FONT_SIZE", snap.BaseFontSize)
	snap.WindowPosX = st.ReadInt(schema.SectionDisplay, "CLOCK_WINDOW_POS_X", snap.WindowPosX)
	snap.WindowPosY = st.ReadInt(schema.SectionDisplay, "CLOCK_WINDOW_POS_Y", snap.WindowPosY)
	snap.WindowScale = st.ReadFloat(schema.SectionDisplay, "WINDOW_SCALE", snap.WindowScale)
	snap.PluginScale = st.ReadFloat(schema.SectionDisplay, "PLUGIN_SCALE", snap.PluginScale)
	snap.WindowTopmost = st.ReadBool(schema.SectionDisplay, "WINDOW_TOPMOST", snap.WindowTopmost)
	snap.WindowOpacity = st.ReadInt(schema.SectionDisplay, "WINDOW_OPACITY", snap.WindowOpacity)
	snap.MoveStepSmall = st.ReadInt(schema.SectionDisplay, "MOVE_STEP_SMALL", snap.MoveStepSmall)
	snap.MoveStepLarge = st.ReadInt(schema.SectionDisplay, "MOVE_STEP_LARGE", snap.MoveStepLarge)
	snap.OpacityStepNormal = st.ReadInt(schema.SectionDisplay, "OPACITY_STEP_NORMAL", snap.OpacityStepNormal)
	snap.OpacityStepFast = st.ReadInt(schema.SectionDisplay, "OPACITY_STEP_FAST", snap.OpacityStepFast)
	snap.ScaleStepNormal = st.ReadInt(schema.SectionDisplay, "SCALE_STEP_NORMAL", snap.ScaleStepNormal)
	snap.ScaleStepFast = st.ReadInt(schema.SectionDisplay, "SCALE_STEP_FAST", snap.ScaleStepFast)
	l.resolveFont(snap)

	// Timer
	snap.DefaultStartTime = st.ReadInt(schema.SectionTimer, "CLOCK_DEFAULT_START_TIME", snap.DefaultStartTime)
	snap.Use24Hour = st.ReadBool(schema.SectionTimer, "CLOCK_USE_24HOUR", snap.Use24Hour)
	snap.ShowSeconds = st.ReadBool(schema.SectionTimer, "CLOCK_SHOW_SECONDS", snap.ShowSeconds)
	snap.TimeFormat = ParseTimeFormat(st.ReadString(schema.SectionTimer, "CLOCK_TIME_FORMAT", snap.TimeFormat.String()))
	snap.ShowMilliseconds = st.ReadBool(schema.SectionTimer, "CLOCK_SHOW_MILLISECONDS", snap.ShowMilliseconds)
	if raw := st.ReadString(schema.SectionTimer, "CLOCK_TIME_OPTIONS", ""); raw != "" {
		snap.TimeOptions = ParseTimeList(raw)
	}
	snap.TimeoutText = st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_TEXT", snap.TimeoutText)
	snap.TimeoutAction = ParseTimeoutAction(st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_ACTION", snap.TimeoutAction.String()))
	snap.TimeoutFilePath = ExpandPath(st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_FILE", snap.TimeoutFilePath), l.configDir)
	snap.TimeoutWebsite = st.ReadString(schema.SectionTimer, "CLOCK_TIMEOUT_WEBSITE", snap.TimeoutWebsite)
	snap.StartupMode = ParseStartupMode(st.ReadString(schema.SectionTimer, "STARTUP_MODE", string(snap.StartupMode)))

	// Pomodoro
	if raw := st.ReadString(schema.SectionPomodoro, "POMODORO_TIME_OPTIONS", ""); raw != "" {
		snap.PomodoroTimes = ParseTimeList(raw)
	}
	snap.PomodoroLoopCount = st.ReadInt(schema.SectionPomodoro, "POMODORO_LOOP_COUNT", snap.PomodoroLoopCount)

	// Notification
	snap.TimeoutMessage = st.ReadString(schema.SectionNotification, "CLOCK_TIMEOUT_MESSAGE_TEXT", snap.TimeoutMessage)
	snap.NotificationTimeoutMs = st.ReadInt(schema.SectionNotification, "NOTIFICATION_TIMEOUT_MS", snap.NotificationTimeoutMs)
	snap.NotificationMaxOpacity = st.ReadInt(schema.SectionNotification, "NOTIFICATION_MAX_OPACITY", snap.NotificationMaxOpacity)
	snap.NotificationType = ParseNotificationType(st.ReadString(schema.SectionNotification, "NOTIFICATION_TYPE", snap.NotificationType.String()))
	snap.NotificationSoundFile = st.ReadString(schema.SectionNotification, "NOTIFICATION_SOUND_FILE", snap.NotificationSoundFile)
	snap.NotificationSoundVolume = st.ReadInt(schema.SectionNotification, "NOTIFICATION_SOUND_VOLUME", snap.NotificationSoundVolume)
	snap.NotificationDisabled = st.ReadBool(schema.SectionNotification, "NOTIFICATION_DISABLED", snap.NotificationDisabled)
	snap.NotificationWindowX = st.ReadInt(schema.SectionNotification, "NOTIFICATION_WINDOW_X", snap.NotificationWindowX)
	snap.NotificationWindowY = st.ReadInt(schema.SectionNotification, "NOTIFICATION_WINDOW_Y", snap.NotificationWindowY)
	snap.NotificationWindowW = st.ReadInt(schema.SectionNotification, "NOTIFICATION_WINDOW_WIDTH", snap.NotificationWindowW)
	snap.NotificationWindowH = st.ReadInt(schema.SectionNotification, "NOTIFICATION_WINDOW_HEIGHT", snap.NotificationWindowH)

	// Colors
	if raw := st.ReadString(schema.SectionColors, "COLOR_OPTIONS", ""); raw != "" {
		if palette := ParsePalette(raw); len(palette) > 0 {
			snap.ColorOptions = palette
		}
	}

	// Hotkeys
	for i, key := range schema.HotkeyKeys() {
		if i >= int(HotkeyCount) {
			break
		}
		raw := st.ReadString(schema.SectionHotkeys, key, "None")
		h, err := ParseHotkey(raw)
		if err != nil {
			l.logger.Debug("%v", &ParseError{Section: schema.SectionHotkeys, Key: key, Value: raw, Err: err})
			h = Hotkey{}
		}
		snap.Hotkeys[i] = h
	}

	// Recent files: keep only entries that still exist on disk.
	snap.RecentFiles = snap.RecentFiles[:0]
	for i := 1; i <= schema.MaxRecentFiles; i++ {
		key := fmt.Sprintf("CLOCK_RECENT_FILE_%d", i)
		path := strings.TrimSpace(st.ReadString(schema.SectionRecentFiles, key, ""))
		if path != "" && l.fileExists(path) {
			snap.RecentFiles = append(snap.RecentFiles, path)
		}
	}

	// Animation
	snap.AnimationPath = st.ReadString(schema.SectionAnimation, "ANIMATION_PATH", snap.AnimationPath)
	snap.AnimationSpeedMetric = ParseAnimationMetric(st.ReadString(schema.SectionAnimation, "ANIMATION_SPEED_METRIC", snap.AnimationSpeedMetric.String()))
	snap.AnimationSpeedDefault = st.ReadInt(schema.SectionAnimation, "ANIMATION_SPEED_DEFAULT", snap.AnimationSpeedDefault)
	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("ANIMATION_SPEED_MAP_%d", (i+1)*10)
		snap.AnimationSpeedMap[i] = st.ReadInt(schema.SectionAnimation, key, snap.AnimationSpeedMap[i])
	}
	snap.AnimationFolderInterval = st.ReadInt(schema.SectionAnimation, "ANIMATION_FOLDER_INTERVAL_MS", snap.AnimationFolderInterval)
	snap.AnimationMinInterval = st.ReadInt(schema.SectionAnimation, "ANIMATION_MIN_INTERVAL_MS", snap.AnimationMinInterval)

	return snap
}

// resolveFont reads the stored font path, expands the config-dir
// placeholder, and derives the font's internal name. When the file
// cannot be found the internal name falls back to the bare filename
// without extension.
func (l *Loader) resolveFont(snap *Snapshot) {
	stored := l.store.ReadString(schema.SectionDisplay, "FONT_FILE_NAME", snap.FontFileName)
	snap.FontFileName = stored

	expanded := ExpandPath(stored, l.configDir)
	base := filepath.Base(expanded)
	snap.FontInternalName = strings.TrimSuffix(base, filepath.Ext(base))

	switch {
	case l.fileExists(expanded):
		snap.FontResolvedPath = expanded
	default:
		// Try the managed fonts directory under the config dir.
		managed := filepath.Join(l.configDir, "resources", "fonts", base)
		if l.fileExists(managed) {
			snap.FontResolvedPath = managed
		} else {
			snap.FontResolvedPath = ""
		}
	}
}
