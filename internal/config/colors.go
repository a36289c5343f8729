package config

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// nearBlack replaces pure black, which the renderer's transparency
// color key would erase entirely.
const nearBlack = "#000001"

// cssColors maps recognized color names to hex.
var cssColors = map[string]string{
	"white":   "#FFFFFF",
	"black":   "#000000",
	"red":     "#FF0000",
	"lime":    "#00FF00",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"cyan":    "#00FFFF",
	"magenta": "#FF00FF",
	"silver":  "#C0C0C0",
	"gray":    "#808080",
	"maroon":  "#800000",
	"olive":   "#808000",
	"green":   "#008000",
	"purple":  "#800080",
	"teal":    "#008080",
	"navy":    "#000080",
	"orange":  "#FFA500",
	"pink":    "#FFC0CB",
	"brown":   "#A52A2A",
	"violet":  "#EE82EE",
	"indigo":  "#4B0082",
	"gold":    "#FFD700",
	"coral":   "#FF7F50",
	"salmon":  "#FA8072",
	"khaki":   "#F0E68C",
	"plum":    "#DDA0DD",
	"azure":   "#F0FFFF",
	"ivory":   "#FFFFF0",
	"wheat":   "#F5DEB3",
	"snow":    "#FFFAFA",
}

// NormalizeColor converts a color in any accepted form (CSS name,
// #RGB, #RRGGBB with or without '#', rgb(r,g,b)) into canonical
// uppercase #RRGGBB. Unrecognized input is returned trimmed but
// otherwise unchanged.
func NormalizeColor(input string) string {
	s := strings.TrimSpace(input)
	lower := strings.ToLower(s)

	if hex, ok := cssColors[lower]; ok {
		return hex
	}

	// rgb(r,g,b)
	if strings.HasPrefix(lower, "rgb") {
		var r, g, b int
		cleaned := strings.Map(func(c rune) rune {
			if c == ' ' || c == '\t' {
				return -1
			}
			return c
		}, lower)
		if n, err := fmt.Sscanf(cleaned, "rgb(%d,%d,%d)", &r, &g, &b); err == nil && n == 3 &&
			r >= 0 && r <= 255 && g >= 0 && g <= 255 && b >= 0 && b <= 255 {
			return fmt.Sprintf("#%02X%02X%02X", r, g, b)
		}
	}

	// Hex with or without '#', short or long form.
	hex := lower
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if c, err := colorful.Hex(hex); err == nil {
		return strings.ToUpper(c.Hex())
	}

	return s
}

// ParseColor normalizes a color token, returning ErrInvalidColor when
// the input does not reduce to a #RRGGBB value.
func ParseColor(input string) (string, error) {
	if !IsValidColor(input) {
		return "", fmt.Errorf("%q: %w", input, ErrInvalidColor)
	}
	return NormalizeColor(input), nil
}

// IsValidColor reports whether input normalizes to a #RRGGBB color.
func IsValidColor(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}
	n := NormalizeColor(input)
	if len(n) != 7 || n[0] != '#' {
		return false
	}
	_, err := colorful.Hex(n)
	return err == nil
}

// ReplaceBlack rewrites pure black to near-black so text stays
// visible over the transparency color key.
func ReplaceBlack(color string) string {
	if strings.EqualFold(color, "#000000") {
		return nearBlack
	}
	return color
}

// IsGradientToken reports whether a palette token is a gradient:
// underscore-joined hex stops, e.g. "#FF5E96_#56C6FF".
func IsGradientToken(token string) bool {
	return strings.Contains(token, "_")
}

// ValidPaletteToken reports whether a palette token is usable: either
// a valid plain color or a gradient whose every stop is valid.
func ValidPaletteToken(token string) bool {
	if !IsGradientToken(token) {
		return IsValidColor(token)
	}
	stops := strings.Split(token, "_")
	if len(stops) < 2 {
		return false
	}
	for _, stop := range stops {
		if !IsValidColor(stop) {
			return false
		}
	}
	return true
}

// ParsePalette splits a stored COLOR_OPTIONS value into trimmed,
// non-empty tokens.
func ParsePalette(raw string) []string {
	var out []string
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// OrderPlainFirst returns the palette with plain colors before
// gradients, preserving relative order within each group. The stored
// form uses this ordering for readability.
func OrderPlainFirst(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !IsGradientToken(tok) {
			out = append(out, tok)
		}
	}
	for _, tok := range tokens {
		if IsGradientToken(tok) {
			out = append(out, tok)
		}
	}
	return out
}
