package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches 3- or 6-digit hex colors with a leading hash.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a display color. Colors are stored and rendered
// as-is, so only hex notation is accepted; an empty color is allowed and
// means "use the palette default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (expected #rgb or #rrggbb)", color)
	}
	return nil
}

// ValidateHabitName validates a user-supplied habit name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateHabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "habit name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "habit name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "habit name contains invalid control characters")
		}
	}

	return nil
}

// ValidateCount validates a unit count supplied over an external surface
// (API query string, CLI flag). The solver itself tolerates any value, but
// callers asking for a negative pile almost certainly passed garbage.
func ValidateCount(count int) error {
	if count < 0 {
		return New(ErrCodeInvalidCount, "count cannot be negative: %d", count)
	}
	return nil
}

// ValidateFrame validates frame dimensions supplied over an external surface.
// Zero is permitted (it resolves to the zero layout); negative values and
// NaN-free enforcement are the caller's signal of a broken measurement.
func ValidateFrame(width, height float64) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidArea, "frame dimensions cannot be negative: %gx%g", width, height)
	}
	if math.IsNaN(width) || math.IsNaN(height) {
		return New(ErrCodeInvalidArea, "frame dimensions must be numbers")
	}
	return nil
}
