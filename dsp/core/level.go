// Package core defines the shared types of the sample processing chain:
// the aggressiveness level selector and the sample domain constants.
package core

import "fmt"

// Level selects the aggressiveness of a low-pass filter family. Each family
// (the 8-bit one-pole and the 16-bit biquad) maps levels to its own alpha
// table; the values are not interchangeable between families.
type Level int

const (
	// LevelVerySoft applies minimal filtering.
	LevelVerySoft Level = iota
	// LevelSoft applies gentle filtering.
	LevelSoft
	// LevelMedium applies balanced filtering.
	LevelMedium
	// LevelFirm applies firm filtering.
	LevelFirm
	// LevelAggressive applies the strongest filtering.
	LevelAggressive
	// LevelCustom uses a caller-supplied alpha instead of a preset table.
	LevelCustom

	levelCount // sentinel for validation
)

var levelNames = [levelCount]string{
	"VerySoft", "Soft", "Medium", "Firm", "Aggressive", "Custom",
}

// String returns the name of the level.
func (l Level) String() string {
	if l >= 0 && l < levelCount {
		return levelNames[l]
	}
	return fmt.Sprintf("Level(%d)", l)
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l >= 0 && l < levelCount
}

// Presets returns the preset levels in order of increasing aggressiveness,
// excluding LevelCustom.
func Presets() []Level {
	return []Level{LevelVerySoft, LevelSoft, LevelMedium, LevelFirm, LevelAggressive}
}
