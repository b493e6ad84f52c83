// Package stat holds the pure box-score arithmetic: counter lines, sparse
// deltas and the scoring modes that decide what a made shot is worth.
package stat

import "fmt"

// Key identifies a single tracked counter.
type Key string

const (
	LowAttempted  Key = "lowPA"
	LowMade       Key = "lowPM"
	HighAttempted Key = "highPA"
	HighMade      Key = "highPM"
	Assists       Key = "ast"
	Steals        Key = "stl"
	Blocks        Key = "blk"
	Rebounds      Key = "reb"
	Turnovers     Key = "to"
	ForcedTO      Key = "fto"
)

// keyCatalogue is the authoritative, ordered key set. Everything that walks
// "all keys" walks this slice so the set stays a configuration rather than a
// hardcoded struct shape.
var keyCatalogue = []Key{
	LowAttempted, LowMade,
	HighAttempted, HighMade,
	Assists, Steals, Blocks, Rebounds, Turnovers, ForcedTO,
}

// Keys returns the ordered catalogue of tracked counters.
func Keys() []Key {
	out := make([]Key, len(keyCatalogue))
	copy(out, keyCatalogue)

	return out
}

// Known reports whether key is part of the current catalogue. Unknown keys
// show up when decoding persisted games written by other schema versions.
func Known(key Key) bool {
	for _, known := range keyCatalogue {
		if known == key {
			return true
		}
	}

	return false
}

// Line is a full stat line. Counters never go negative.
type Line map[Key]int

// Delta is a sparse set of signed increments. Absent keys mean no change.
type Delta map[Key]int

// NewLine returns a line zeroed over the full key catalogue.
func NewLine() Line {
	line := make(Line, len(keyCatalogue))
	for _, key := range keyCatalogue {
		line[key] = 0
	}

	return line
}

// Clone returns an independent copy of the line.
func (l Line) Clone() Line {
	out := make(Line, len(l))
	for key, value := range l {
		out[key] = value
	}

	return out
}

// Apply adds direction*delta to the line, clamping every counter at zero.
// Undo uses direction -1, which makes it the exact inverse of the original
// application unless a counter was clamped in between.
func (l Line) Apply(delta Delta, direction int) {
	for _, key := range keyCatalogue {
		change, ok := delta[key]
		if !ok {
			continue
		}

		l[key] = max(0, l[key]+direction*change)
	}
}

// Mode selects the two shot tiers and their point weights.
type Mode string

const (
	// TwosAndThrees is regulation scoring, 2 point and 3 point shots.
	TwosAndThrees Mode = "twosAndThrees"
	// OnesAndTwos is street scoring, 1 point and 2 point shots.
	OnesAndTwos Mode = "onesAndTwos"
)

// DefaultMode is used whenever a persisted mode fails to decode.
const DefaultMode = TwosAndThrees

// Valid reports whether the mode is one of the known variants.
func (m Mode) Valid() bool {
	return m == TwosAndThrees || m == OnesAndTwos
}

// LowPoints is the value of a made low-tier shot.
func (m Mode) LowPoints() int {
	if m == OnesAndTwos {
		return 1
	}

	return 2
}

// HighPoints is the value of a made high-tier shot.
func (m Mode) HighPoints() int {
	if m == OnesAndTwos {
		return 2
	}

	return 3
}

// LowLabel is the display tag for the low shot tier, e.g. "2PT".
func (m Mode) LowLabel() string {
	return fmt.Sprintf("%dPT", m.LowPoints())
}

// HighLabel is the display tag for the high shot tier.
func (m Mode) HighLabel() string {
	return fmt.Sprintf("%dPT", m.HighPoints())
}

// Points computes the point total of a line under the given mode.
func Points(line Line, mode Mode) int {
	return line[LowMade]*mode.LowPoints() + line[HighMade]*mode.HighPoints()
}

// ShootingLine formats a made/attempted pair for display. It is a ratio for
// the eye, never a quotient, so zero attempts are fine.
func ShootingLine(made int, attempted int) string {
	return fmt.Sprintf("%d/%d", made, attempted)
}
