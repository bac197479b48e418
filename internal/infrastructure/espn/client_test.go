package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"nflagent/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.ESPNConfig{
		CoreAPIURL:     serverURL + "/core",
		SiteAPIURL:     serverURL + "/site",
		Season:         "2025",
		SeasonType:     "2",
		RequestTimeout: 5 * time.Second,
		MaxRetries:     3,
	}, nil)
}

func TestTeamSeasonIsCached(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/core/seasons/2025/teams/12" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"team": {
				"id": "12",
				"displayName": "Kansas City Chiefs",
				"name": "Chiefs",
				"abbreviation": "KC",
				"record": {"items": [
					{"type": "total", "summary": "11-2", "stats": [{"name": "playoffSeed", "value": 1}]}
				]}
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	first, err := client.TeamSeason(ctx, "12")
	if err != nil {
		t.Fatalf("TeamSeason error: %v", err)
	}
	if first.Team.Abbreviation != "KC" {
		t.Fatalf("unexpected abbreviation: %s", first.Team.Abbreviation)
	}
	if first.RecordSummary() != "11-2" {
		t.Fatalf("unexpected record: %s", first.RecordSummary())
	}
	if first.PlayoffSeed() != 1 {
		t.Fatalf("unexpected seed: %d", first.PlayoffSeed())
	}

	if _, err := client.TeamSeason(ctx, "12"); err != nil {
		t.Fatalf("cached TeamSeason error: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", got)
	}
}

func TestGetJSONRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"team": {"id": "2", "abbreviation": "BUF", "displayName": "Buffalo Bills", "name": "Bills"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.backoff = time.Millisecond

	resp, err := client.TeamSeason(context.Background(), "2")
	if err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if resp.Team.Abbreviation != "BUF" {
		t.Fatalf("unexpected team: %+v", resp.Team)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestGetJSONDoesNotRetryClientErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	client.backoff = time.Millisecond

	if _, err := client.Athlete(context.Background(), "999"); err == nil {
		t.Fatal("expected error for 404")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("404 must not be retried, got %d attempts", got)
	}
}

func TestTeamNews(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/site/news" || r.URL.Query().Get("team") != "2" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{
			"header": "Buffalo Bills News",
			"articles": [
				{
					"id": 401,
					"type": "Story",
					"headline": "Bills lean on ground game",
					"description": "Analysis of the rushing attack.",
					"published": "2025-11-07T14:00:00Z",
					"lastModified": "2025-11-07T15:00:00Z",
					"links": {"web": {"href": "https://example.com/bills-ground-game"}}
				},
				{
					"id": 402,
					"type": "Media",
					"headline": "Highlight reel",
					"published": "2025-11-07T12:00:00Z",
					"lastModified": "2025-11-07T12:00:00Z",
					"links": {}
				}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	articles, err := client.TeamNews(context.Background(), "2")
	if err != nil {
		t.Fatalf("TeamNews error: %v", err)
	}

	if len(articles) != 1 {
		t.Fatalf("expected linkless article filtered out, got %d", len(articles))
	}
	if articles[0].ID != "401" {
		t.Fatalf("unexpected id: %s", articles[0].ID)
	}
	if articles[0].URL != "https://example.com/bills-ground-game" {
		t.Fatalf("unexpected url: %s", articles[0].URL)
	}
}

func TestWeeklyGames(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/site/scoreboard" || r.URL.Query().Get("week") != "10" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{
			"week": {"number": 10},
			"events": [{
				"id": "401547001",
				"date": "2025-11-09T18:00Z",
				"status": {"type": {"state": "pre"}},
				"competitions": [{
					"competitors": [
						{"homeAway": "home", "team": {"id": "12", "displayName": "Kansas City Chiefs", "abbreviation": "KC"}},
						{"homeAway": "away", "team": {"id": "2", "displayName": "Buffalo Bills", "abbreviation": "BUF"}}
					]
				}]
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	games, err := client.WeeklyGames(context.Background(), 10)
	if err != nil {
		t.Fatalf("WeeklyGames error: %v", err)
	}

	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	game := games[0]
	if game.HomeTeamAbbr != "KC" || game.AwayTeamAbbr != "BUF" {
		t.Fatalf("unexpected matchup: %s @ %s", game.AwayTeamAbbr, game.HomeTeamAbbr)
	}
	if game.Status != "pre" {
		t.Fatalf("unexpected status: %s", game.Status)
	}
	want := time.Date(2025, time.November, 9, 18, 0, 0, 0, time.UTC)
	if !game.Kickoff.Equal(want) {
		t.Fatalf("unexpected kickoff: %v", game.Kickoff)
	}
}
