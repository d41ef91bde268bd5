package brief

import (
	"math"
	"time"
)

const lunarCycleDays = 29.53058867

// Reference new moon: 2024-01-11 11:57 UTC.
var newMoonEpoch = time.Date(2024, time.January, 11, 11, 57, 0, 0, time.UTC)

var moonPhases = []struct {
	limit float64
	name  string
	emoji string
}{
	{1.84566, "New Moon", "🌑"},
	{7.38264, "Waxing Crescent", "🌒"},
	{9.22831, "First Quarter", "🌓"},
	{14.76529, "Waxing Gibbous", "🌔"},
	{16.61096, "Full Moon", "🌕"},
	{22.14794, "Waning Gibbous", "🌖"},
	{23.99361, "Last Quarter", "🌗"},
}

// MoonPhase returns the phase name and emoji for the given instant,
// from its position in the synodic cycle.
func MoonPhase(now time.Time) (string, string) {
	days := now.Sub(newMoonEpoch).Hours() / 24

	position := math.Mod(days, lunarCycleDays)
	if position < 0 {
		position += lunarCycleDays
	}

	for _, p := range moonPhases {
		if position < p.limit {
			return p.name, p.emoji
		}
	}

	return "Waning Crescent", "🌘"
}
