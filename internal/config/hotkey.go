package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Key codes compatible with the historical on-disk numeric format
// (low byte of the legacy 16-bit encoding).
const (
	keyF1  = 0x70
	keyF24 = 0x87
)

// Legacy modifier bits (high byte of the 16-bit encoding).
const (
	modShift = 0x01
	modCtrl  = 0x02
	modAlt   = 0x04
)

// Hotkey is one key chord. The zero value means unbound ("None").
type Hotkey struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	// Code is the virtual key code of the non-modifier key.
	Code byte
}

// namedKeys maps key codes to their persisted names for keys that are
// neither alphanumeric nor function keys.
var namedKeys = []struct {
	code byte
	name string
}{
	{0x08, "Backspace"},
	{0x09, "Tab"},
	{0x0D, "Enter"},
	{0x1B, "Esc"},
	{0x20, "Space"},
	{0x21, "PageUp"},
	{0x22, "PageDown"},
	{0x23, "End"},
	{0x24, "Home"},
	{0x25, "Left"},
	{0x26, "Up"},
	{0x27, "Right"},
	{0x28, "Down"},
	{0x2D, "Insert"},
	{0x2E, "Delete"},
	{0x60, "Num0"},
	{0x61, "Num1"},
	{0x62, "Num2"},
	{0x63, "Num3"},
	{0x64, "Num4"},
	{0x65, "Num5"},
	{0x66, "Num6"},
	{0x67, "Num7"},
	{0x68, "Num8"},
	{0x69, "Num9"},
	{0x6A, "Num*"},
	{0x6B, "Num+"},
	{0x6D, "Num-"},
	{0x6E, "Num."},
	{0x6F, "Num/"},
	{0xBA, ";"},
	{0xBB, "="},
	{0xBC, ","},
	{0xBD, "-"},
	{0xBE, "."},
	{0xBF, "/"},
	{0xC0, "`"},
	{0xDB, "["},
	{0xDC, "\\"},
	{0xDD, "]"},
	{0xDE, "'"},
}

// IsZero reports whether the hotkey is unbound.
func (h Hotkey) IsZero() bool {
	return !h.Ctrl && !h.Shift && !h.Alt && h.Code == 0
}

// Uint16 encodes the hotkey in the legacy numeric format: key code in
// the low byte, modifier bits in the high byte.
func (h Hotkey) Uint16() uint16 {
	var mod uint16
	if h.Shift {
		mod |= modShift
	}
	if h.Ctrl {
		mod |= modCtrl
	}
	if h.Alt {
		mod |= modAlt
	}
	return mod<<8 | uint16(h.Code)
}

// hotkeyFromUint16 decodes the legacy numeric format.
func hotkeyFromUint16(v uint16) Hotkey {
	mod := byte(v >> 8)
	return Hotkey{
		Shift: mod&modShift != 0,
		Ctrl:  mod&modCtrl != 0,
		Alt:   mod&modAlt != 0,
		Code:  byte(v),
	}
}

// String renders the persisted form: "Ctrl+Shift+F1", a bare key
// name, or "None" when unbound.
func (h Hotkey) String() string {
	if h.IsZero() {
		return "None"
	}

	var parts []string
	if h.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if h.Shift {
		parts = append(parts, "Shift")
	}
	if h.Alt {
		parts = append(parts, "Alt")
	}
	if h.Code != 0 {
		parts = append(parts, keyName(h.Code))
	}
	return strings.Join(parts, "+")
}

// keyName renders one key code.
func keyName(code byte) string {
	switch {
	case code >= 'A' && code <= 'Z', code >= '0' && code <= '9':
		return string(rune(code))
	case code >= keyF1 && code <= keyF24:
		return fmt.Sprintf("F%d", code-keyF1+1)
	}
	for _, k := range namedKeys {
		if k.code == code {
			return k.name
		}
	}
	return fmt.Sprintf("0x%02X", code)
}

// ParseHotkey parses the persisted hotkey grammar: "None", the legacy
// numeric encoding, or modifier-prefixed key names such as
// "Ctrl+Shift+F1". Unknown key names yield an unbound hotkey rather
// than an error for the chord's key part; a completely unparseable
// string returns ErrInvalidHotkey.
func ParseHotkey(s string) (Hotkey, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "None") {
		return Hotkey{}, nil
	}

	// Legacy numeric format.
	if s[0] >= '0' && s[0] <= '9' && !strings.Contains(s, "+") {
		v, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			return Hotkey{}, fmt.Errorf("%w: %q", ErrInvalidHotkey, s)
		}
		return hotkeyFromUint16(uint16(v)), nil
	}

	var h Hotkey
	var last string
	for _, token := range strings.Split(s, "+") {
		switch {
		case token == "":
		case strings.EqualFold(token, "Ctrl"):
			h.Ctrl = true
		case strings.EqualFold(token, "Shift"):
			h.Shift = true
		case strings.EqualFold(token, "Alt"):
			h.Alt = true
		default:
			last = token
		}
	}
	if last != "" {
		h.Code = keyCode(last)
	}
	if h.IsZero() {
		return Hotkey{}, fmt.Errorf("%w: %q", ErrInvalidHotkey, s)
	}
	return h, nil
}

// keyCode resolves one key name to its code, 0 when unknown.
func keyCode(name string) byte {
	if len(name) == 1 {
		ch := name[0]
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		if (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			return ch
		}
	}
	if len(name) >= 2 && (name[0] == 'F' || name[0] == 'f') {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 24 {
			return byte(keyF1 + n - 1)
		}
	}
	if strings.HasPrefix(name, "0x") || strings.HasPrefix(name, "0X") {
		if v, err := strconv.ParseUint(name[2:], 16, 8); err == nil {
			return byte(v)
		}
	}
	for _, k := range namedKeys {
		if strings.EqualFold(k.name, name) {
			return k.code
		}
	}
	return 0
}
