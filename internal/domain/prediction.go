package domain

import "time"

// Game is a normalized matchup from the weekly schedule.
type Game struct {
	ID           string
	Week         int
	HomeTeamID   string
	HomeTeamName string
	HomeTeamAbbr string
	AwayTeamID   string
	AwayTeamName string
	AwayTeamAbbr string
	Kickoff      time.Time
	Status       string
}

// HomeLabel returns the most readable identifier available for the home team.
func (g Game) HomeLabel() string {
	return firstNonEmpty(g.HomeTeamAbbr, g.HomeTeamName, g.HomeTeamID)
}

// AwayLabel returns the most readable identifier available for the away team.
func (g Game) AwayLabel() string {
	return firstNonEmpty(g.AwayTeamAbbr, g.AwayTeamName, g.AwayTeamID)
}

// TeamReport bundles everything gathered about one side of a matchup.
// Stats may be nil when the roster lookup failed; Info may be unenriched
// when article research produced nothing.
type TeamReport struct {
	Stats *Team    `json:"stats,omitempty"`
	Info  TeamInfo `json:"info"`
}

// Prediction is the model's verdict on a matchup. Probabilities are kept
// on the 0-1 scale after normalization.
type Prediction struct {
	HomeWinProbability float64 `json:"home_team_probability"`
	AwayWinProbability float64 `json:"away_team_probability"`
	HomeSummary        string  `json:"home_team_summary"`
	AwaySummary        string  `json:"away_team_summary"`
}

// Normalized converts percentage-scale probabilities (values above 1) to
// the 0-1 scale. Models answer on either scale depending on mood.
func (p Prediction) Normalized() Prediction {
	if p.HomeWinProbability > 1 {
		p.HomeWinProbability /= 100
	}
	if p.AwayWinProbability > 1 {
		p.AwayWinProbability /= 100
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
