package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pomatime/pomatime/internal/config/schema"
)

// Validation bounds.
const (
	minFontSize     = 8
	maxFontSize     = 500
	minScaleFactor  = 0.5
	maxScaleFactor  = 100.0
	minMoveStep     = 1
	maxMoveStep     = 500
	minStepPercent  = 1
	maxStepPercent  = 100
	minStartSeconds = 1
	maxStartSeconds = 86400
	maxNotifyMs     = 60000
)

// Validate checks every bounded field of the snapshot and repairs
// anything out of range, mutating the snapshot in place. It reports
// whether anything was changed so the caller can write the corrected
// values back.
func Validate(snap *Snapshot) bool {
	modified := false

	if validateFont(snap) {
		modified = true
	}
	if validateColor(snap) {
		modified = true
	}
	if validateTimer(snap) {
		modified = true
	}
	if validatePomodoro(snap) {
		modified = true
	}
	if validateNotification(snap) {
		modified = true
	}
	if validateWindow(snap) {
		modified = true
	}
	if validateTimeoutAction(snap) {
		modified = true
	}

	return modified
}

func validateFont(snap *Snapshot) bool {
	modified := false

	ext := strings.ToLower(filepath.Ext(snap.FontFileName))
	if ext != ".ttf" && ext != ".otf" && ext != ".ttc" {
		snap.FontFileName = schema.DefaultFontFile
		modified = true
	}

	// Below the minimum the value is junk and goes back to the
	// default; above the maximum it is merely excessive and clamps.
	if snap.BaseFontSize < minFontSize {
		snap.BaseFontSize = defaultInt(schema.SectionDisplay, "CLOCK_BASE_FONT_SIZE")
		modified = true
	} else if snap.BaseFontSize > maxFontSize {
		snap.BaseFontSize = maxFontSize
		modified = true
	}

	return modified
}

func validateColor(snap *Snapshot) bool {
	modified := false

	if IsGradientToken(snap.TextColor) {
		if !ValidPaletteToken(snap.TextColor) {
			snap.TextColor = schema.DefaultFor(schema.SectionDisplay, "CLOCK_TEXT_COLOR")
			modified = true
		}
	} else if normalized, err := ParseColor(snap.TextColor); err != nil {
		snap.TextColor = schema.DefaultFor(schema.SectionDisplay, "CLOCK_TEXT_COLOR")
		modified = true
	} else if normalized != snap.TextColor {
		snap.TextColor = normalized
		modified = true
	}

	if replaced := ReplaceBlack(snap.TextColor); replaced != snap.TextColor {
		snap.TextColor = replaced
		modified = true
	}

	return modified
}

func validateTimer(snap *Snapshot) bool {
	modified := false

	if snap.DefaultStartTime < minStartSeconds || snap.DefaultStartTime > maxStartSeconds {
		snap.DefaultStartTime = defaultInt(schema.SectionTimer, "CLOCK_DEFAULT_START_TIME")
		modified = true
	}

	if len(snap.TimeOptions) > schema.MaxTimeOptions {
		snap.TimeOptions = ParseTimeList(schema.DefaultFor(schema.SectionTimer, "CLOCK_TIME_OPTIONS"))
		modified = true
	}

	if ParseStartupMode(string(snap.StartupMode)) != snap.StartupMode {
		snap.StartupMode = ModeShowTime
		modified = true
	}

	return modified
}

func validatePomodoro(snap *Snapshot) bool {
	modified := false

	if len(snap.PomodoroTimes) > schema.MaxTimeOptions {
		snap.PomodoroTimes = ParseTimeList(schema.DefaultFor(schema.SectionPomodoro, "POMODORO_TIME_OPTIONS"))
		modified = true
	}

	if snap.PomodoroLoopCount < 1 {
		snap.PomodoroLoopCount = defaultInt(schema.SectionPomodoro, "POMODORO_LOOP_COUNT")
		modified = true
	}

	return modified
}

func validateNotification(snap *Snapshot) bool {
	modified := false

	if snap.NotificationTimeoutMs < 0 || snap.NotificationTimeoutMs > maxNotifyMs {
		snap.NotificationTimeoutMs = defaultInt(schema.SectionNotification, "NOTIFICATION_TIMEOUT_MS")
		modified = true
	}

	if clampInt(&snap.NotificationMaxOpacity, minStepPercent, maxStepPercent) {
		modified = true
	}
	if clampInt(&snap.NotificationSoundVolume, 0, 100) {
		modified = true
	}

	return modified
}

func validateWindow(snap *Snapshot) bool {
	modified := false

	if clampFloat(&snap.WindowScale, minScaleFactor, maxScaleFactor) {
		modified = true
	}
	if clampFloat(&snap.PluginScale, minScaleFactor, maxScaleFactor) {
		modified = true
	}
	if clampInt(&snap.WindowOpacity, 0, 100) {
		modified = true
	}
	if clampInt(&snap.MoveStepSmall, minMoveStep, maxMoveStep) {
		modified = true
	}
	if clampInt(&snap.MoveStepLarge, minMoveStep, maxMoveStep) {
		modified = true
	}
	if clampInt(&snap.OpacityStepNormal, minStepPercent, maxStepPercent) {
		modified = true
	}
	if clampInt(&snap.OpacityStepFast, minStepPercent, maxStepPercent) {
		modified = true
	}
	if clampInt(&snap.ScaleStepNormal, minStepPercent, maxStepPercent) {
		modified = true
	}
	if clampInt(&snap.ScaleStepFast, minStepPercent, maxStepPercent) {
		modified = true
	}

	return modified
}

// validateTimeoutAction enforces the one-shot safety rule: a
// destructive action (shutdown, restart, sleep) must never survive to
// be applied or written back. File and website targets must be usable
// or the action falls back to a plain message.
func validateTimeoutAction(snap *Snapshot) bool {
	modified := false

	if snap.TimeoutAction.IsOneShot() {
		snap.TimeoutAction = ActionMessage
		modified = true
	}

	if snap.TimeoutAction == ActionOpenFile {
		if snap.TimeoutFilePath == "" || !fileExists(snap.TimeoutFilePath) {
			snap.TimeoutAction = ActionMessage
			modified = true
		}
	}

	if snap.TimeoutAction == ActionOpenWebsite && strings.TrimSpace(snap.TimeoutWebsite) == "" {
		snap.TimeoutAction = ActionMessage
		modified = true
	}

	return modified
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func clampInt(v *int, lo, hi int) bool {
	switch {
	case *v < lo:
		*v = lo
	case *v > hi:
		*v = hi
	default:
		return false
	}
	return true
}

func clampFloat(v *float64, lo, hi float64) bool {
	switch {
	case *v < lo:
		*v = lo
	case *v > hi:
		*v = hi
	default:
		return false
	}
	return true
}
