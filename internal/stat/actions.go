package stat

// Tone groups actions for presentation. Makes are good, misses are bad and
// events are neutral hustle stats.
type Tone int

const (
	ToneMake Tone = iota
	ToneMiss
	ToneEvent
)

// Action is one loggable event: a label, a shorthand for the activity log
// and the delta it applies to the selected player's line.
type Action struct {
	Label string
	Short string
	Tone  Tone
	Delta Delta
}

// Actions derives the full action catalogue for a scoring mode. The catalogue
// is rebuilt whenever the mode changes since labels carry the point values.
func Actions(mode Mode) []Action {
	low := mode.LowLabel()
	high := mode.HighLabel()

	return []Action{
		{
			Label: "+" + low + " Make",
			Short: low + "M",
			Tone:  ToneMake,
			Delta: Delta{LowAttempted: 1, LowMade: 1},
		},
		{
			Label: low + " Miss",
			Short: low + "X",
			Tone:  ToneMiss,
			Delta: Delta{LowAttempted: 1},
		},
		{
			Label: "+" + high + " Make",
			Short: high + "M",
			Tone:  ToneMake,
			Delta: Delta{HighAttempted: 1, HighMade: 1},
		},
		{
			Label: high + " Miss",
			Short: high + "X",
			Tone:  ToneMiss,
			Delta: Delta{HighAttempted: 1},
		},
		{Label: "Assist", Short: "AST", Tone: ToneEvent, Delta: Delta{Assists: 1}},
		{Label: "Rebound", Short: "REB", Tone: ToneEvent, Delta: Delta{Rebounds: 1}},
		{Label: "Steal", Short: "STL", Tone: ToneEvent, Delta: Delta{Steals: 1, ForcedTO: 1}},
		{Label: "Block", Short: "BLK", Tone: ToneEvent, Delta: Delta{Blocks: 1}},
		{Label: "Turnover", Short: "TO", Tone: ToneMiss, Delta: Delta{Turnovers: 1}},
	}
}
