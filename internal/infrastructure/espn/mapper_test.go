package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"nflagent/internal/domain"
)

func TestPositionClass(t *testing.T) {
	t.Parallel()

	cases := map[string]domain.PositionClass{
		"QB": domain.ClassQB,
		"wr": domain.ClassSkill,
		"TE": domain.ClassSkill,
		"LT": domain.ClassOL,
		"DE": domain.ClassDef,
		"K":  domain.ClassDef,
	}
	for abbr, want := range cases {
		if got := positionClass(abbr); got != want {
			t.Errorf("positionClass(%q) = %q, want %q", abbr, got, want)
		}
	}
}

func TestInjuryStatus(t *testing.T) {
	t.Parallel()

	if got := injuryStatus(nil); got != domain.StatusActive {
		t.Fatalf("no injuries must be active, got %q", got)
	}

	cases := []struct {
		injury Injury
		want   domain.InjuryStatus
	}{
		{Injury{Status: "Out"}, domain.StatusOut},
		{Injury{Type: InjuryType{Name: "INJURED RESERVE"}}, domain.StatusOut},
		{Injury{Status: "Questionable"}, domain.StatusQuestionable},
		{Injury{Type: InjuryType{Name: "INJURY_STATUS_DOUBTFUL"}}, domain.StatusDoubtful},
		{Injury{Status: "Probable"}, domain.StatusActive},
	}
	for _, tc := range cases {
		if got := injuryStatus([]Injury{tc.injury}); got != tc.want {
			t.Errorf("injuryStatus(%+v) = %q, want %q", tc.injury, got, tc.want)
		}
	}
}

func TestBuildSkillComputesDerivedStats(t *testing.T) {
	t.Parallel()

	athlete := AthleteResponse{
		FullName: "Test Back",
		Height:   70,
		Weight:   215,
		Age:      26,
		Position: Position{Abbreviation: "RB"},
	}
	stats := StatisticsResponse{}
	stats.Splits.Categories = []StatCategory{
		{Name: "rushing", Stats: []Stat{
			{Name: "rushingAttempts", Value: 100},
			{Name: "rushingYards", Value: 450},
			{Name: "rushingTouchdowns", Value: 4},
		}},
		{Name: "receiving", Stats: []Stat{
			{Name: "receivingTargets", Value: 50},
			{Name: "receivingYards", Value: 300},
			{Name: "receivingTouchdowns", Value: 2},
		}},
		{Name: "general", Stats: []Stat{{Name: "fumblesLost", Value: 1}}},
	}

	player := buildSkill(athlete, stats, "KC")

	if player.Touches != 150 {
		t.Fatalf("touches = %d, want 150", player.Touches)
	}
	if player.ScrimmageYards != 750 {
		t.Fatalf("scrimmage yards = %d, want 750", player.ScrimmageYards)
	}
	if player.Touchdowns != 6 {
		t.Fatalf("touchdowns = %d, want 6", player.Touchdowns)
	}
	if player.YardsPerTouch != 5.0 {
		t.Fatalf("yards per touch = %f, want 5.0", player.YardsPerTouch)
	}
	if player.PositionClass != domain.ClassSkill {
		t.Fatalf("unexpected class: %s", player.PositionClass)
	}
}

func TestBuildDefenderComputesPressuresAndTakeaways(t *testing.T) {
	t.Parallel()

	athlete := AthleteResponse{
		FullName: "Test Edge",
		Height:   76,
		Weight:   260,
		Age:      28,
		Position: Position{Abbreviation: "DE"},
	}
	stats := StatisticsResponse{}
	stats.Splits.Categories = []StatCategory{
		{Name: "defensive", Stats: []Stat{
			{Name: "totalTackles", Value: 45},
			{Name: "sacks", Value: 8},
			{Name: "QBHits", Value: 12},
			{Name: "hurries", Value: 5},
			{Name: "passesDefended", Value: 3},
		}},
		{Name: "defensiveInterceptions", Stats: []Stat{{Name: "interceptions", Value: 1}}},
		{Name: "general", Stats: []Stat{{Name: "fumblesForced", Value: 2}}},
	}

	player := buildDefender(athlete, stats, "BUF")

	if player.QBPressures != 25 {
		t.Fatalf("pressures = %d, want 25", player.QBPressures)
	}
	if player.Takeaways != 3 {
		t.Fatalf("takeaways = %d, want 3", player.Takeaways)
	}
}

func TestStatFallbackNames(t *testing.T) {
	t.Parallel()

	stats := StatisticsResponse{}
	stats.Splits.Categories = []StatCategory{
		{Name: "passing", Stats: []Stat{{DisplayName: "Passing Yards", Value: 3200}}},
	}

	if got := stats.Stat("passing", "passingYards", "Passing Yards"); got != 3200 {
		t.Fatalf("fallback lookup failed: %f", got)
	}
	if got := stats.Stat("passing", "nope"); got != 0 {
		t.Fatalf("missing stat must be 0, got %f", got)
	}
}

// fixtureServer serves a minimal but complete team: QB, one WR, one DE.
func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	athletes := map[string]any{
		"100": map[string]any{
			"id": "100", "fullName": "Star Quarterback", "height": 75.0, "weight": 225.0, "age": 29,
			"position": map[string]any{"abbreviation": "QB"},
		},
		"200": map[string]any{
			"id": "200", "fullName": "Fast Receiver", "height": 72.0, "weight": 200.0, "age": 25,
			"position": map[string]any{"abbreviation": "WR"},
			"injuries": []any{map[string]any{"status": "Questionable", "type": map[string]any{"id": "1", "name": "INJURY_STATUS_QUESTIONABLE"}, "details": map[string]any{"type": "Hamstring"}}},
		},
		"300": map[string]any{
			"id": "300", "fullName": "Edge Rusher", "height": 77.0, "weight": 265.0, "age": 27,
			"position": map[string]any{"abbreviation": "DE"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/core/seasons/2025/teams/12", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"team": {"id": "12", "displayName": "Kansas City Chiefs", "name": "Chiefs", "abbreviation": "KC",
			"record": {"items": [{"type": "total", "summary": "9-3", "stats": [{"name": "playoffSeed", "value": 2}]}]}}}`))
	})
	mux.HandleFunc("/core/seasons/2025/teams/12/depthcharts", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{
			"id": "1", "name": "Offense",
			"positions": {
				"qb": {"position": {"abbreviation": "QB"}, "athletes": [{"rank": 1, "athlete": {"$ref": "http://x/athletes/100?lang=en"}}]},
				"wr": {"position": {"abbreviation": "WR"}, "athletes": [{"rank": 1, "athlete": {"$ref": "http://x/athletes/200?lang=en"}}]}
			}
		}, {
			"id": "2", "name": "Defense",
			"positions": {
				"de": {"position": {"abbreviation": "DE"}, "athletes": [{"rank": 1, "athlete": {"$ref": "http://x/athletes/300?lang=en"}}]}
			}
		}]}`))
	})
	mux.HandleFunc("/core/seasons/2025/athletes/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/core/seasons/2025/athletes/"):]
		athlete, ok := athletes[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(athlete)
	})
	mux.HandleFunc("/core/seasons/2025/types/2/athletes/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"splits": {"categories": [
			{"name": "passing", "stats": [{"name": "passingYards", "value": 3500}, {"name": "passingTouchdowns", "value": 28}]},
			{"name": "receiving", "stats": [{"name": "receivingTargets", "value": 90}, {"name": "receivingYards", "value": 900}]}
		]}}`)
	})

	return httptest.NewServer(mux)
}

func TestBuildTeam(t *testing.T) {
	t.Parallel()

	server := fixtureServer(t)
	defer server.Close()

	client := newTestClient(server.URL)
	team, err := client.BuildTeam(context.Background(), "12")
	if err != nil {
		t.Fatalf("BuildTeam error: %v", err)
	}

	if team.Abbreviation != "KC" || team.Record != "9-3" || team.Rank != 2 {
		t.Fatalf("unexpected team header: %+v", team)
	}
	if team.Quarterback.Name != "Star Quarterback" || team.Quarterback.PassingYards != 3500 {
		t.Fatalf("unexpected QB: %+v", team.Quarterback)
	}
	if len(team.SkillPlayers) != 1 || team.SkillPlayers[0].Name != "Fast Receiver" {
		t.Fatalf("unexpected skill players: %+v", team.SkillPlayers)
	}
	if team.TopDefender == nil || team.TopDefender.Name != "Edge Rusher" {
		t.Fatalf("unexpected defender: %+v", team.TopDefender)
	}
	if len(team.InjuredPlayers) != 1 || team.InjuredPlayers[0].Injury != "Hamstring" {
		t.Fatalf("unexpected injured players: %+v", team.InjuredPlayers)
	}
	if team.InjuredPlayers[0].InjuryStatus != domain.StatusQuestionable {
		t.Fatalf("unexpected injury status: %s", team.InjuredPlayers[0].InjuryStatus)
	}
}

func TestTeamID(t *testing.T) {
	t.Parallel()

	if id, err := TeamID("Kansas City Chiefs"); err != nil || id != "12" {
		t.Fatalf("exact match failed: %s %v", id, err)
	}
	if id, err := TeamID("chiefs"); err != nil || id != "12" {
		t.Fatalf("partial match failed: %s %v", id, err)
	}
	if _, err := TeamID("toronto huskies"); err == nil {
		t.Fatal("unknown team must fail")
	}
	if _, err := TeamID("  "); err == nil {
		t.Fatal("blank team must fail")
	}
}
