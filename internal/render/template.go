package render

import (
	"html/template"
	"strings"

	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/stat"
)

var boxScoreTmpl = template.Must(template.New("boxscore").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #111111; color: #cccccc; margin: 0; padding: 24px; }
  h1 { font-size: 20px; margin: 0 0 16px 0; color: #f4722b; }
  h2 { font-size: 16px; margin: 20px 0 6px 0; }
  h2 span.pts { float: right; color: #f4722b; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th { text-align: right; color: #888888; font-weight: normal; padding: 4px 6px; border-bottom: 1px solid #3e3e3e; }
  th:first-child, td:first-child { text-align: left; }
  td { text-align: right; padding: 4px 6px; }
  tr:nth-child(even) td { background: #1a1a1a; }
  tr.total td { border-top: 1px solid #3e3e3e; font-weight: bold; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Teams}}
<h2>{{.Label}} <span class="pts">{{.Points}} PTS</span></h2>
<table>
<tr><th>Player</th><th>PTS</th><th>{{$.LowLabel}}</th><th>{{$.HighLabel}}</th><th>AST</th><th>STL</th><th>BLK</th><th>REB</th><th>TO</th></tr>
{{range .Players}}
<tr><td>{{.Name}}</td><td>{{.Points}}</td><td>{{.Low}}</td><td>{{.High}}</td><td>{{.Assists}}</td><td>{{.Steals}}</td><td>{{.Blocks}}</td><td>{{.Rebounds}}</td><td>{{.Turnovers}}</td></tr>
{{end}}
<tr class="total"><td>Total</td><td>{{.Points}}</td><td>{{.Low}}</td><td>{{.High}}</td><td>{{.Assists}}</td><td>{{.Steals}}</td><td>{{.Blocks}}</td><td>{{.Rebounds}}</td><td>{{.Turnovers}}</td></tr>
</table>
{{end}}
</body>
</html>`))

type playerRow struct {
	Name      string
	Points    int
	Low       string
	High      string
	Assists   int
	Steals    int
	Blocks    int
	Rebounds  int
	Turnovers int
}

type teamSection struct {
	Label     string
	Points    int
	Low       string
	High      string
	Assists   int
	Steals    int
	Blocks    int
	Rebounds  int
	Turnovers int
	Players   []playerRow
}

type boxScoreData struct {
	Title     string
	LowLabel  string
	HighLabel string
	Teams     []teamSection
}

func boxScoreHTML(mode stat.Mode, teams []game.Team) (string, error) {
	data := boxScoreData{
		LowLabel:  mode.LowLabel(),
		HighLabel: mode.HighLabel(),
	}

	var labels []string
	for _, team := range teams {
		labels = append(labels, team.Label)

		section := teamSection{
			Label:     team.Label,
			Points:    team.Points(mode),
			Low:       stat.ShootingLine(team.Total(stat.LowMade), team.Total(stat.LowAttempted)),
			High:      stat.ShootingLine(team.Total(stat.HighMade), team.Total(stat.HighAttempted)),
			Assists:   team.Total(stat.Assists),
			Steals:    team.Total(stat.Steals),
			Blocks:    team.Total(stat.Blocks),
			Rebounds:  team.Total(stat.Rebounds),
			Turnovers: team.Total(stat.Turnovers),
		}
		for _, player := range team.Players {
			section.Players = append(section.Players, playerRow{
				Name:      player.Name,
				Points:    player.Points(mode),
				Low:       stat.ShootingLine(player.Stats[stat.LowMade], player.Stats[stat.LowAttempted]),
				High:      stat.ShootingLine(player.Stats[stat.HighMade], player.Stats[stat.HighAttempted]),
				Assists:   player.Stats[stat.Assists],
				Steals:    player.Stats[stat.Steals],
				Blocks:    player.Stats[stat.Blocks],
				Rebounds:  player.Stats[stat.Rebounds],
				Turnovers: player.Stats[stat.Turnovers],
			})
		}

		data.Teams = append(data.Teams, section)
	}

	data.Title = strings.Join(labels, " vs ")
	if data.Title == "" {
		data.Title = "Box Score"
	}

	var b strings.Builder
	if err := boxScoreTmpl.Execute(&b, data); err != nil {
		return "", err
	}

	return b.String(), nil
}
