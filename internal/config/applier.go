package config

import "time"

// Effect identifies a side effect the caller must execute after an
// apply. The applier only rewrites LiveState; anything that touches
// the window, fonts, hotkey registration, or the OS is reported back
// as an effect for the owning thread to run.
type Effect int

const (
	EffectRepositionWindow Effect = iota
	EffectApplyOpacity
	EffectApplyTopmost
	EffectReloadFont
	EffectRelabelUI
	EffectReregisterHotkeys
	EffectReloadAnimationPath
	EffectReloadAnimationSpeed
)

var effectNames = map[Effect]string{
	EffectRepositionWindow:     "reposition-window",
	EffectApplyOpacity:         "apply-opacity",
	EffectApplyTopmost:         "apply-topmost",
	EffectReloadFont:           "reload-font",
	EffectRelabelUI:            "relabel-ui",
	EffectReregisterHotkeys:    "reregister-hotkeys",
	EffectReloadAnimationPath:  "reload-animation-path",
	EffectReloadAnimationSpeed: "reload-animation-speed",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return "unknown"
}

// WindowProbe reports the window's current on-screen position. ok is
// false when no window exists yet, in which case the stored position
// is adopted unconditionally.
type WindowProbe interface {
	Position() (x, y int, ok bool)
}

// windowMoveTolerance is the pixel distance within which the stored
// position is considered current. A live position further away than
// this is a drag that has not been flushed to disk yet and wins over
// the snapshot.
const windowMoveTolerance = 10

// LiveState is the single mutable configuration the rest of the
// process reads. Only Apply and the writer's direct setters modify
// it, always under the owning service's mutex; other goroutines read
// detached copies taken with Clone.
type LiveState struct {
	Snapshot

	// Palette is the working color list, reallocated wholesale on
	// every apply so it can shrink between reloads.
	Palette []string

	// LastReload is bumped at the end of every successful apply.
	LastReload time.Time
}

// NewLiveState returns live state populated from built-in defaults.
func NewLiveState() *LiveState {
	live := &LiveState{Snapshot: *DefaultSnapshot()}
	live.Palette = rebuildPalette(live.ColorOptions)
	return live
}

// Clone returns a deep copy safe to read from any goroutine while the
// original continues to be rewritten by reloads.
func (l *LiveState) Clone() *LiveState {
	return &LiveState{
		Snapshot:   *l.Snapshot.Clone(),
		Palette:    append([]string(nil), l.Palette...),
		LastReload: l.LastReload,
	}
}

// Apply pushes a validated snapshot into live state in a fixed
// dependency order and returns the side effects the caller must
// execute. A nil snapshot is a no-op.
func Apply(live *LiveState, snap *Snapshot, probe WindowProbe) []Effect {
	if live == nil || snap == nil {
		return nil
	}

	var effects []Effect

	// General, except language. Language goes last because changing
	// it relabels the whole UI.
	language := live.Language
	live.ShortcutCheckDone = snap.ShortcutCheckDone
	live.FontLicenseAccepted = snap.FontLicenseAccepted
	live.FontLicenseVersion = snap.FontLicenseVersion

	effects = applyDisplay(live, snap, probe, effects)
	effects = applyTimer(live, snap, effects)

	live.PomodoroTimes = append([]int(nil), snap.PomodoroTimes...)
	live.PomodoroLoopCount = snap.PomodoroLoopCount

	applyNotification(live, snap)

	live.ColorOptions = append([]string(nil), snap.ColorOptions...)
	live.Palette = rebuildPalette(snap.ColorOptions)

	if live.Hotkeys != snap.Hotkeys {
		live.Hotkeys = snap.Hotkeys
		effects = append(effects, EffectReregisterHotkeys)
	}

	live.RecentFiles = append([]string(nil), snap.RecentFiles...)

	live.Language = snap.Language
	if snap.Language != language {
		effects = append(effects, EffectRelabelUI)
	}

	effects = applyAnimation(live, snap, effects)

	live.LastReload = time.Now()
	return effects
}

func applyDisplay(live *LiveState, snap *Snapshot, probe WindowProbe, effects []Effect) []Effect {
	fontChanged := snap.FontFileName != live.FontFileName ||
		snap.FontResolvedPath != live.FontResolvedPath

	live.TextColor = snap.TextColor
	live.BaseFontSize = snap.BaseFontSize
	live.FontFileName = snap.FontFileName
	live.FontInternalName = snap.FontInternalName
	live.FontResolvedPath = snap.FontResolvedPath
	if fontChanged {
		effects = append(effects, EffectReloadFont)
	}

	// Adopt the stored position only when the window has not moved
	// away from it. A fresh drag that has not reached the file yet
	// must not be undone by a reload.
	adopt := true
	if probe != nil {
		if x, y, ok := probe.Position(); ok {
			if abs(x-snap.WindowPosX) > windowMoveTolerance ||
				abs(y-snap.WindowPosY) > windowMoveTolerance {
				adopt = false
				live.WindowPosX = x
				live.WindowPosY = y
			}
		}
	}
	if adopt {
		live.WindowPosX = snap.WindowPosX
		live.WindowPosY = snap.WindowPosY
		effects = append(effects, EffectRepositionWindow)
	}

	live.WindowScale = snap.WindowScale
	live.PluginScale = snap.PluginScale

	if snap.WindowTopmost != live.WindowTopmost {
		live.WindowTopmost = snap.WindowTopmost
		effects = append(effects, EffectApplyTopmost)
	}
	if snap.WindowOpacity != live.WindowOpacity {
		live.WindowOpacity = snap.WindowOpacity
		effects = append(effects, EffectApplyOpacity)
	}

	live.MoveStepSmall = snap.MoveStepSmall
	live.MoveStepLarge = snap.MoveStepLarge
	live.OpacityStepNormal = snap.OpacityStepNormal
	live.OpacityStepFast = snap.OpacityStepFast
	live.ScaleStepNormal = snap.ScaleStepNormal
	live.ScaleStepFast = snap.ScaleStepFast

	return effects
}

func applyTimer(live *LiveState, snap *Snapshot, effects []Effect) []Effect {
	live.DefaultStartTime = snap.DefaultStartTime
	live.Use24Hour = snap.Use24Hour
	live.ShowSeconds = snap.ShowSeconds
	live.TimeFormat = snap.TimeFormat
	live.ShowMilliseconds = snap.ShowMilliseconds
	live.TimeOptions = append([]int(nil), snap.TimeOptions...)
	live.TimeoutText = snap.TimeoutText
	live.StartupMode = snap.StartupMode

	// A one-shot action lives only in memory, armed by the user for
	// this session. A reload must not silently disarm it, so the live
	// action wins until it fires.
	if !live.TimeoutAction.IsOneShot() {
		live.TimeoutAction = snap.TimeoutAction
		live.TimeoutFilePath = snap.TimeoutFilePath
		live.TimeoutWebsite = snap.TimeoutWebsite
	}

	return effects
}

func applyNotification(live *LiveState, snap *Snapshot) {
	live.TimeoutMessage = snap.TimeoutMessage
	live.NotificationTimeoutMs = snap.NotificationTimeoutMs
	live.NotificationMaxOpacity = snap.NotificationMaxOpacity
	live.NotificationType = snap.NotificationType
	live.NotificationSoundFile = snap.NotificationSoundFile
	live.NotificationSoundVolume = snap.NotificationSoundVolume
	live.NotificationDisabled = snap.NotificationDisabled
	live.NotificationWindowX = snap.NotificationWindowX
	live.NotificationWindowY = snap.NotificationWindowY
	live.NotificationWindowW = snap.NotificationWindowW
	live.NotificationWindowH = snap.NotificationWindowH
}

func applyAnimation(live *LiveState, snap *Snapshot, effects []Effect) []Effect {
	if snap.AnimationPath != live.AnimationPath {
		live.AnimationPath = snap.AnimationPath
		effects = append(effects, EffectReloadAnimationPath)
	}

	speedChanged := snap.AnimationSpeedMetric != live.AnimationSpeedMetric ||
		snap.AnimationSpeedDefault != live.AnimationSpeedDefault ||
		snap.AnimationSpeedMap != live.AnimationSpeedMap ||
		snap.AnimationFolderInterval != live.AnimationFolderInterval ||
		snap.AnimationMinInterval != live.AnimationMinInterval

	live.AnimationSpeedMetric = snap.AnimationSpeedMetric
	live.AnimationSpeedDefault = snap.AnimationSpeedDefault
	live.AnimationSpeedMap = snap.AnimationSpeedMap
	live.AnimationFolderInterval = snap.AnimationFolderInterval
	live.AnimationMinInterval = snap.AnimationMinInterval

	if speedChanged {
		effects = append(effects, EffectReloadAnimationSpeed)
	}
	return effects
}

// rebuildPalette allocates a fresh working palette from the stored
// tokens, normalizing plain colors and passing gradients through.
func rebuildPalette(tokens []string) []string {
	palette := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if IsGradientToken(tok) {
			palette = append(palette, tok)
			continue
		}
		palette = append(palette, NormalizeColor(tok))
	}
	return palette
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
