package stat_test

import (
	"testing"

	"github.com/courtkeep/courtkeep/internal/stat"
	"github.com/stretchr/testify/require"
)

func TestApplyAndInverse(t *testing.T) {
	line := stat.NewLine()
	deltas := []stat.Delta{
		{stat.LowAttempted: 1, stat.LowMade: 1},
		{stat.HighAttempted: 1},
		{stat.Rebounds: 1},
		{stat.Assists: 1},
		{stat.LowAttempted: 1, stat.LowMade: 1},
	}

	for _, delta := range deltas {
		line.Apply(delta, 1)
	}

	require.Equal(t, 2, line[stat.LowMade])
	require.Equal(t, 2, line[stat.LowAttempted])
	require.Equal(t, 1, line[stat.HighAttempted])

	// Inverses in reverse order restore the zero line exactly, since nothing
	// clamped on the way up.
	for i := len(deltas) - 1; i >= 0; i-- {
		line.Apply(deltas[i], -1)
	}

	require.Equal(t, stat.NewLine(), line)
}

func TestApplyClampsAtZero(t *testing.T) {
	line := stat.NewLine()
	line.Apply(stat.Delta{stat.Rebounds: -3}, 1)
	require.Equal(t, 0, line[stat.Rebounds])

	line[stat.Turnovers] = 1
	line.Apply(stat.Delta{stat.Turnovers: 2}, -1)
	require.Equal(t, 0, line[stat.Turnovers])
}

func TestApplyIgnoresUnknownKeys(t *testing.T) {
	line := stat.NewLine()
	line.Apply(stat.Delta{stat.Key("fgm3_legacy"): 5, stat.Assists: 1}, 1)

	require.Equal(t, 1, line[stat.Assists])
	_, exists := line[stat.Key("fgm3_legacy")]
	require.False(t, exists)
}

func TestPoints(t *testing.T) {
	line := stat.NewLine()
	line[stat.LowMade] = 3
	line[stat.HighMade] = 2

	require.Equal(t, 12, stat.Points(line, stat.TwosAndThrees))
	require.Equal(t, 7, stat.Points(line, stat.OnesAndTwos))
}

func TestModeLabels(t *testing.T) {
	require.Equal(t, "2PT", stat.TwosAndThrees.LowLabel())
	require.Equal(t, "3PT", stat.TwosAndThrees.HighLabel())
	require.Equal(t, "1PT", stat.OnesAndTwos.LowLabel())
	require.Equal(t, "2PT", stat.OnesAndTwos.HighLabel())
}

func TestShootingLine(t *testing.T) {
	require.Equal(t, "0/0", stat.ShootingLine(0, 0))
	require.Equal(t, "3/7", stat.ShootingLine(3, 7))
}

func TestActionsFollowMode(t *testing.T) {
	for _, mode := range []stat.Mode{stat.TwosAndThrees, stat.OnesAndTwos} {
		actions := stat.Actions(mode)
		require.NotEmpty(t, actions)

		for _, action := range actions {
			require.NotEmpty(t, action.Label)
			require.NotEmpty(t, action.Delta)
			for key := range action.Delta {
				require.True(t, stat.Known(key), "action %s touches unknown key %s", action.Label, key)
			}
		}
	}

	require.Equal(t, "+2PT Make", stat.Actions(stat.TwosAndThrees)[0].Label)
	require.Equal(t, "+1PT Make", stat.Actions(stat.OnesAndTwos)[0].Label)
}
