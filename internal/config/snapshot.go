package config

import "strings"

// TimeoutAction selects what happens when a countdown reaches zero.
type TimeoutAction int

const (
	ActionMessage TimeoutAction = iota
	ActionLock
	ActionShutdown
	ActionRestart
	ActionOpenFile
	ActionShowTime
	ActionCountUp
	ActionOpenWebsite
	ActionSleep
)

var timeoutActionNames = map[TimeoutAction]string{
	ActionMessage:     "MESSAGE",
	ActionLock:        "LOCK",
	ActionShutdown:    "SHUTDOWN",
	ActionRestart:     "RESTART",
	ActionOpenFile:    "OPEN_FILE",
	ActionShowTime:    "SHOW_TIME",
	ActionCountUp:     "COUNT_UP",
	ActionOpenWebsite: "OPEN_WEBSITE",
	ActionSleep:       "SLEEP",
}

// String returns the persisted token for the action.
func (a TimeoutAction) String() string {
	if s, ok := timeoutActionNames[a]; ok {
		return s
	}
	return "MESSAGE"
}

// IsOneShot reports whether the action is destructive enough that it
// must never survive a restart (shutdown, restart, sleep).
func (a TimeoutAction) IsOneShot() bool {
	return a == ActionShutdown || a == ActionRestart || a == ActionSleep
}

// ParseTimeoutAction maps a stored token to an action,
// case-insensitively. Unknown tokens fall back to ActionMessage.
func ParseTimeoutAction(s string) TimeoutAction {
	for a, name := range timeoutActionNames {
		if strings.EqualFold(s, name) {
			return a
		}
	}
	return ActionMessage
}

// TimeFormat selects how countdown digits are padded.
type TimeFormat int

const (
	FormatDefault TimeFormat = iota
	FormatZeroPadded
	FormatFullPadded
)

// String returns the persisted token for the format.
func (f TimeFormat) String() string {
	switch f {
	case FormatZeroPadded:
		return "ZERO_PADDED"
	case FormatFullPadded:
		return "FULL_PADDED"
	default:
		return "DEFAULT"
	}
}

// ParseTimeFormat maps a stored token to a format, case-insensitively.
func ParseTimeFormat(s string) TimeFormat {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ZERO_PADDED":
		return FormatZeroPadded
	case "FULL_PADDED":
		return FormatFullPadded
	default:
		return FormatDefault
	}
}

// NotificationType selects the notification surface.
type NotificationType int

const (
	// NotifyPomatime is the app's own toast window.
	NotifyPomatime NotificationType = iota
	// NotifySystemModal is a blocking system dialog.
	NotifySystemModal
	// NotifyOS uses the operating system notification center.
	NotifyOS
)

// String returns the persisted token for the type.
func (n NotificationType) String() string {
	switch n {
	case NotifySystemModal:
		return "SYSTEM_MODAL"
	case NotifyOS:
		return "OS"
	default:
		return "POMATIME"
	}
}

// ParseNotificationType maps a stored token to a type,
// case-insensitively.
func ParseNotificationType(s string) NotificationType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SYSTEM_MODAL":
		return NotifySystemModal
	case "OS":
		return NotifyOS
	default:
		return NotifyPomatime
	}
}

// StartupMode selects what the timer shows when the app starts.
type StartupMode string

const (
	ModeCountdown StartupMode = "COUNTDOWN"
	ModeCountUp   StartupMode = "COUNT_UP"
	ModeShowTime  StartupMode = "SHOW_TIME"
	ModeNoDisplay StartupMode = "NO_DISPLAY"
	ModePomodoro  StartupMode = "POMODORO"
)

// ParseStartupMode validates a stored token, falling back to
// ModeShowTime for anything unrecognized.
func ParseStartupMode(s string) StartupMode {
	switch m := StartupMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeCountdown, ModeCountUp, ModeShowTime, ModeNoDisplay, ModePomodoro:
		return m
	default:
		return ModeShowTime
	}
}

// AnimationMetric selects what drives tray animation speed.
type AnimationMetric int

const (
	MetricMemory AnimationMetric = iota
	MetricCPU
	MetricTimer
)

// String returns the persisted token for the metric.
func (m AnimationMetric) String() string {
	switch m {
	case MetricCPU:
		return "CPU"
	case MetricTimer:
		return "TIMER"
	default:
		return "MEMORY"
	}
}

// ParseAnimationMetric maps a stored token to a metric,
// case-insensitively.
func ParseAnimationMetric(s string) AnimationMetric {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CPU":
		return MetricCPU
	case "TIMER":
		return MetricTimer
	default:
		return MetricMemory
	}
}

// HotkeyIndex addresses one of the fixed hotkey bindings.
type HotkeyIndex int

const (
	HotkeyShowTime HotkeyIndex = iota
	HotkeyCountUp
	HotkeyCountdown
	HotkeyQuickCountdown1
	HotkeyQuickCountdown2
	HotkeyQuickCountdown3
	HotkeyPomodoro
	HotkeyToggleVisibility
	HotkeyEditMode
	HotkeyPauseResume
	HotkeyRestartTimer
	HotkeyCustomCountdown

	// HotkeyCount is the number of fixed bindings. Indexes align with
	// schema.HotkeyKeys order.
	HotkeyCount
)

// Snapshot is a flat, fully-populated view of the entire
// configuration at one instant. The loader always returns a complete
// snapshot; no other component ever sees a partially-built one.
type Snapshot struct {
	// General
	Language            string
	ShortcutCheckDone   bool
	FontLicenseAccepted bool
	FontLicenseVersion  string

	// Display
	TextColor        string
	BaseFontSize     int
	FontFileName     string
	FontInternalName string
	// FontResolvedPath is the absolute location of the font file when
	// it could be found, empty otherwise.
	FontResolvedPath  string
	WindowPosX        int
	WindowPosY        int
	WindowScale       float64
	PluginScale       float64
	WindowTopmost     bool
	WindowOpacity     int
	MoveStepSmall     int
	MoveStepLarge     int
	OpacityStepNormal int
	OpacityStepFast   int
	ScaleStepNormal   int
	ScaleStepFast     int

	// Timer
	DefaultStartTime int
	Use24Hour        bool
	ShowSeconds      bool
	TimeFormat       TimeFormat
	ShowMilliseconds bool
	TimeOptions      []int
	TimeoutText      string
	TimeoutAction    TimeoutAction
	TimeoutFilePath  string
	TimeoutWebsite   string
	StartupMode      StartupMode

	// Pomodoro
	PomodoroTimes     []int
	PomodoroLoopCount int

	// Notification
	TimeoutMessage          string
	NotificationTimeoutMs   int
	NotificationMaxOpacity  int
	NotificationType        NotificationType
	NotificationSoundFile   string
	NotificationSoundVolume int
	NotificationDisabled    bool
	NotificationWindowX     int
	NotificationWindowY     int
	NotificationWindowW     int
	NotificationWindowH     int

	// Colors. Raw palette tokens in stored order; gradient tokens are
	// underscore-joined hex stops.
	ColorOptions []string

	// Hotkeys, indexed by HotkeyIndex.
	Hotkeys [HotkeyCount]Hotkey

	// RecentFiles holds only entries whose file currently exists.
	RecentFiles []string

	// Animation
	AnimationPath         string
	AnimationSpeedMetric  AnimationMetric
	AnimationSpeedDefault int
	// AnimationSpeedMap holds the speed for each 10% metric bucket,
	// index 0 = 10% through index 9 = 100%.
	AnimationSpeedMap       [10]int
	AnimationFolderInterval int
	AnimationMinInterval    int
}

// Clone returns a deep copy. Slice-valued fields get their own backing
// arrays so the copy stays stable while the original keeps changing.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.TimeOptions = append([]int(nil), s.TimeOptions...)
	out.PomodoroTimes = append([]int(nil), s.PomodoroTimes...)
	out.ColorOptions = append([]string(nil), s.ColorOptions...)
	out.RecentFiles = append([]string(nil), s.RecentFiles...)
	return &out
}
