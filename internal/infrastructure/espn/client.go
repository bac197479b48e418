// Package espn talks to the public ESPN Core and Site APIs for NFL data:
// rosters, depth charts, athlete stats, team news and the weekly schedule.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"nflagent/internal/cache"
	"nflagent/internal/config"
	"nflagent/internal/domain"
	"nflagent/internal/ports"
)

// Client is a reusable HTTP client for the ESPN endpoints. Responses are
// cached per endpoint so that one prediction does not refetch athletes
// shared between lookups.
type Client struct {
	coreURL    string
	siteURL    string
	season     string
	seasonType string
	maxRetries int
	backoff    time.Duration
	httpClient *http.Client
	logger     *slog.Logger

	teams    *cache.TTL[TeamResponse]
	depth    *cache.TTL[DepthChartResponse]
	athletes *cache.TTL[AthleteResponse]
	stats    *cache.TTL[StatisticsResponse]
}

var _ ports.ArticleSource = (*Client)(nil)
var _ ports.StatsProvider = (*Client)(nil)
var _ ports.GameSchedule = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.ESPNConfig, logger *slog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	return &Client{
		coreURL:    cfg.CoreAPIURL,
		siteURL:    cfg.SiteAPIURL,
		season:     cfg.Season,
		seasonType: cfg.SeasonType,
		maxRetries: retries,
		backoff:    time.Second,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		teams:      cache.New[TeamResponse](5 * time.Minute),
		depth:      cache.New[DepthChartResponse](7 * 24 * time.Hour),
		athletes:   cache.New[AthleteResponse](24 * time.Hour),
		stats:      cache.New[StatisticsResponse](time.Hour),
	}
}

// TeamSeason fetches team info and record for the configured season.
func (c *Client) TeamSeason(ctx context.Context, teamID string) (TeamResponse, error) {
	if cached, ok := c.teams.Get(teamID); ok {
		return cached, nil
	}

	var resp TeamResponse
	url := fmt.Sprintf("%s/seasons/%s/teams/%s", c.coreURL, c.season, teamID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return TeamResponse{}, fmt.Errorf("team %s: %w", teamID, err)
	}

	c.teams.Set(teamID, resp)
	return resp, nil
}

// DepthChart fetches the position rankings for a team.
func (c *Client) DepthChart(ctx context.Context, teamID string) (DepthChartResponse, error) {
	if cached, ok := c.depth.Get(teamID); ok {
		return cached, nil
	}

	var resp DepthChartResponse
	url := fmt.Sprintf("%s/seasons/%s/teams/%s/depthcharts", c.coreURL, c.season, teamID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return DepthChartResponse{}, fmt.Errorf("depth chart %s: %w", teamID, err)
	}

	c.depth.Set(teamID, resp)
	return resp, nil
}

// Athlete fetches biographical and injury data for one player.
func (c *Client) Athlete(ctx context.Context, athleteID string) (AthleteResponse, error) {
	if cached, ok := c.athletes.Get(athleteID); ok {
		return cached, nil
	}

	var resp AthleteResponse
	url := fmt.Sprintf("%s/seasons/%s/athletes/%s", c.coreURL, c.season, athleteID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return AthleteResponse{}, fmt.Errorf("athlete %s: %w", athleteID, err)
	}

	c.athletes.Set(athleteID, resp)
	return resp, nil
}

// AthleteStats fetches season statistics for one player.
func (c *Client) AthleteStats(ctx context.Context, athleteID string) (StatisticsResponse, error) {
	if cached, ok := c.stats.Get(athleteID); ok {
		return cached, nil
	}

	var resp StatisticsResponse
	url := fmt.Sprintf("%s/seasons/%s/types/%s/athletes/%s/statistics/0",
		c.coreURL, c.season, c.seasonType, athleteID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return StatisticsResponse{}, fmt.Errorf("stats %s: %w", athleteID, err)
	}

	c.stats.Set(athleteID, resp)
	return resp, nil
}

// TeamNews lists candidate articles about a team from the Site API feed.
func (c *Client) TeamNews(ctx context.Context, teamID string) ([]domain.Article, error) {
	var resp NewsResponse
	url := fmt.Sprintf("%s/news?team=%s", c.siteURL, teamID)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("team news %s: %w", teamID, err)
	}

	articles := make([]domain.Article, 0, len(resp.Articles))
	for _, item := range resp.Articles {
		article := item.ToDomain()
		if article.URL == "" {
			continue
		}
		articles = append(articles, article)
	}
	if len(articles) == 0 {
		c.warn("no articles found", "team_id", teamID)
	}
	return articles, nil
}

// WeeklyGames lists the normalized games of a regular-season week.
func (c *Client) WeeklyGames(ctx context.Context, week int) ([]domain.Game, error) {
	var resp ScoreboardResponse
	url := fmt.Sprintf("%s/scoreboard?seasontype=%s&week=%s", c.siteURL, c.seasonType, strconv.Itoa(week))
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("scoreboard week %d: %w", week, err)
	}

	games := make([]domain.Game, 0, len(resp.Events))
	for _, event := range resp.Events {
		game := event.ToDomain(week)
		if game.HomeTeamID == "" || game.AwayTeamID == "" {
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

// getJSON performs a GET with retries and decodes the JSON body into v.
// Transient failures (network errors, 5xx, 429) are retried with
// exponential backoff; other statuses fail immediately.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			c.warn("retrying request", "url", url, "attempt", attempt+1, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		retryable, err := c.tryGetJSON(ctx, url, v)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return err
		}
	}
	return lastErr
}

func (c *Client) tryGetJSON(ctx context.Context, url string, v any) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		retryable := resp.StatusCode >= http.StatusInternalServerError ||
			resp.StatusCode == http.StatusTooManyRequests
		return retryable, fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
