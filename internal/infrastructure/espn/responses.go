package espn

import (
	"encoding/json"
	"strings"
	"time"

	"nflagent/internal/domain"
)

// Position is the nested position object shared by several endpoints.
type Position struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
}

// InjuryDetails names the injured body part.
type InjuryDetails struct {
	Type     string `json:"type"`
	Location string `json:"location"`
}

// InjuryType carries the coded status, e.g. "INJURY_STATUS_QUESTIONABLE".
type InjuryType struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Abbreviation string `json:"abbreviation"`
}

// Injury is one entry of an athlete's injury report.
type Injury struct {
	Status       string         `json:"status"`
	Type         InjuryType     `json:"type"`
	Details      *InjuryDetails `json:"details"`
	ShortComment string         `json:"shortComment"`
}

type ref struct {
	Ref string `json:"$ref"`
}

// AthleteResponse models the Core API athlete endpoint.
type AthleteResponse struct {
	ID        string   `json:"id"`
	FullName  string   `json:"fullName"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Height    float64  `json:"height"`
	Weight    float64  `json:"weight"`
	Age       int      `json:"age"`
	Position  Position `json:"position"`
	Team      ref      `json:"team"`
	Injuries  []Injury `json:"injuries"`
}

// TeamID extracts the team ID from the team $ref URL, or "".
func (a AthleteResponse) TeamID() string {
	return refSegment(a.Team.Ref, "/teams/")
}

// Stat is an individual statistic within a category.
type Stat struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Value       float64 `json:"value"`
}

// StatCategory groups stats such as passing, rushing or defensive.
type StatCategory struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Stats       []Stat `json:"stats"`
}

// StatisticsResponse models the Core API athlete statistics endpoint.
type StatisticsResponse struct {
	Splits struct {
		Categories []StatCategory `json:"categories"`
	} `json:"splits"`
}

// Stat returns the first matching stat value within a category, trying the
// given names in order. ESPN renames stats between seasons, so callers pass
// fallbacks.
func (s StatisticsResponse) Stat(category string, names ...string) float64 {
	for _, cat := range s.Splits.Categories {
		if cat.Name != category {
			continue
		}
		for _, name := range names {
			for _, st := range cat.Stats {
				if st.Name == name || st.DisplayName == name {
					return st.Value
				}
			}
		}
	}
	return 0
}

// NamedValue is a loosely typed stat inside a record item.
type NamedValue struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

// RecordItem is one split of a team record (total, home, away).
type RecordItem struct {
	Type    string       `json:"type"`
	Summary string       `json:"summary"`
	Stats   []NamedValue `json:"stats"`
}

type teamPayload struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Record       struct {
		Items []RecordItem `json:"items"`
	} `json:"record"`
}

// TeamResponse models the Core API team season endpoint. Some responses
// nest the payload under "team", others put it at the root.
type TeamResponse struct {
	Team teamPayload
}

// UnmarshalJSON accepts both the nested and the flattened layout.
func (t *TeamResponse) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Team *teamPayload `json:"team"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Team != nil {
		t.Team = *wrapped.Team
		return nil
	}
	return json.Unmarshal(data, &t.Team)
}

// RecordSummary returns the total record in W-L-T form, "0-0" if absent.
func (t TeamResponse) RecordSummary() string {
	for _, item := range t.Team.Record.Items {
		if item.Type == "total" {
			return item.Summary
		}
	}
	if len(t.Team.Record.Items) > 0 {
		return t.Team.Record.Items[0].Summary
	}
	return "0-0"
}

// PlayoffSeed extracts the playoff seed used as a rank proxy, 0 if absent.
func (t TeamResponse) PlayoffSeed() int {
	for _, item := range t.Team.Record.Items {
		if item.Type != "total" {
			continue
		}
		for _, stat := range item.Stats {
			if stat.Name == "playoffSeed" {
				return int(stat.Value)
			}
		}
	}
	return 0
}

// DepthAthlete is one ranked slot of a depth-chart position.
type DepthAthlete struct {
	Rank    int `json:"rank"`
	Slot    int `json:"slot"`
	Athlete ref `json:"athlete"`
}

// AthleteID extracts the athlete ID from the $ref URL, or "".
func (d DepthAthlete) AthleteID() string {
	return refSegment(d.Athlete.Ref, "/athletes/")
}

// DepthPosition is a position entry inside a formation.
type DepthPosition struct {
	Position *Position      `json:"position"`
	Athletes []DepthAthlete `json:"athletes"`
}

// Formation is a depth-chart grouping such as "3WR 1TE" or "Base 3-4 D".
type Formation struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Positions map[string]DepthPosition `json:"positions"`
}

// DepthChartResponse models the Core API depth chart endpoint.
type DepthChartResponse struct {
	Items []Formation `json:"items"`
}

// Starter returns the rank-1 athlete ID for a position abbreviation, or "".
func (d DepthChartResponse) Starter(positionAbbr string) string {
	ids := d.TopByPositions([]string{positionAbbr}, 1)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// TopByPositions collects up to n rank-1 athlete IDs across the given
// position abbreviations, deduplicated in depth-chart order.
func (d DepthChartResponse) TopByPositions(positionAbbrs []string, n int) []string {
	wanted := make(map[string]struct{}, len(positionAbbrs))
	for _, abbr := range positionAbbrs {
		wanted[abbr] = struct{}{}
	}

	var ids []string
	seen := map[string]struct{}{}
	for _, formation := range d.Items {
		for _, pos := range formation.Positions {
			if pos.Position == nil {
				continue
			}
			if _, ok := wanted[pos.Position.Abbreviation]; !ok {
				continue
			}
			for _, athlete := range pos.Athletes {
				if athlete.Rank != 1 {
					continue
				}
				id := athlete.AthleteID()
				if id == "" {
					continue
				}
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				ids = append(ids, id)
				if len(ids) == n {
					return ids
				}
			}
		}
	}
	return ids
}

// NewsArticle is one entry of the Site API team news feed.
type NewsArticle struct {
	ID           json.Number `json:"id"`
	Type         string      `json:"type"`
	Headline     string      `json:"headline"`
	Description  string      `json:"description"`
	Published    time.Time   `json:"published"`
	LastModified time.Time   `json:"lastModified"`
	Links        struct {
		Web struct {
			Href string `json:"href"`
		} `json:"web"`
	} `json:"links"`
}

// NewsResponse models the Site API news endpoint.
type NewsResponse struct {
	Header   string        `json:"header"`
	Articles []NewsArticle `json:"articles"`
}

// ToDomain converts a news entry into the candidate form the loop uses.
func (n NewsArticle) ToDomain() domain.Article {
	return domain.Article{
		ID:           n.ID.String(),
		Headline:     n.Headline,
		Description:  n.Description,
		URL:          n.Links.Web.Href,
		PublishedAt:  n.Published,
		LastModified: n.LastModified,
	}
}

// ScoreboardResponse models the Site API weekly scoreboard endpoint.
type ScoreboardResponse struct {
	Week struct {
		Number int `json:"number"`
	} `json:"week"`
	Events []ScoreboardEvent `json:"events"`
}

// ScoreboardEvent is one game on the scoreboard.
type ScoreboardEvent struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Status struct {
		Type struct {
			State string `json:"state"`
		} `json:"type"`
	} `json:"status"`
	Competitions []struct {
		Competitors []struct {
			HomeAway string `json:"homeAway"`
			Team     struct {
				ID           string `json:"id"`
				DisplayName  string `json:"displayName"`
				Abbreviation string `json:"abbreviation"`
			} `json:"team"`
		} `json:"competitors"`
	} `json:"competitions"`
}

// ToDomain flattens an event into a normalized game. Events without both
// competitors are returned with empty team fields; callers skip those.
func (e ScoreboardEvent) ToDomain(week int) domain.Game {
	game := domain.Game{ID: e.ID, Week: week, Status: e.Status.Type.State}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z"} {
		if kickoff, err := time.Parse(layout, e.Date); err == nil {
			game.Kickoff = kickoff.UTC()
			break
		}
	}

	if len(e.Competitions) == 0 {
		return game
	}
	for _, competitor := range e.Competitions[0].Competitors {
		switch competitor.HomeAway {
		case "home":
			game.HomeTeamID = competitor.Team.ID
			game.HomeTeamName = competitor.Team.DisplayName
			game.HomeTeamAbbr = competitor.Team.Abbreviation
		case "away":
			game.AwayTeamID = competitor.Team.ID
			game.AwayTeamName = competitor.Team.DisplayName
			game.AwayTeamAbbr = competitor.Team.Abbreviation
		}
	}
	return game
}

func refSegment(refURL, marker string) string {
	idx := strings.Index(refURL, marker)
	if idx < 0 {
		return ""
	}
	rest := refURL[idx+len(marker):]
	if cut := strings.IndexAny(rest, "?/"); cut >= 0 {
		rest = rest[:cut]
	}
	return rest
}
