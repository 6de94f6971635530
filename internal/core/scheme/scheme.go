// Package scheme holds the small enums shared by the preparation stage and the
// transliteration engine
package scheme

import "strings"

// Direction selects which half of a transliteration table is used
type Direction uint8

const (
	// Forward converts native script toward the Latin romanisation
	Forward Direction = iota
	// Reverse converts the Latin romanisation back to native script
	Reverse
)

// ParseDirection is case-insensitive; anything other than "reverse" is Forward
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "reverse") {
		return Reverse
	}
	return Forward
}

// String returns "forward" or "reverse"
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Bicamerality classifies the case system of a table's target script
type Bicamerality string

const (
	// LatinOnly means only the Latin side distinguishes case
	LatinOnly Bicamerality = "latin-only"
	// Both means both scripts distinguish case
	Both Bicamerality = "both"
	// Other covers anything else (typically neither script)
	Other Bicamerality = "other"
)

// ParseBicamerality maps s to a known value; unknown input is LatinOnly
func ParseBicamerality(s string) (Bicamerality, bool) {
	switch Bicamerality(strings.ToLower(strings.TrimSpace(s))) {
	case LatinOnly:
		return LatinOnly, true
	case Both:
		return Both, true
	case Other:
		return Other, true
	default:
		return LatinOnly, false
	}
}
