// Package llm implements the model-backed decision points of the research
// loop (article selection, summarization) and the matchup predictor on top
// of an OpenAI-compatible chat-completions API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nflagent/internal/config"
	"nflagent/internal/domain"
	"nflagent/internal/ports"
)

// Client talks to an OpenAI-compatible chat-completions endpoint and
// enforces structured output through json_schema response formats.
type Client struct {
	endpoint    string
	model       string
	apiKey      string
	temperature float64
	maxRetries  int
	backoff     time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
}

var _ ports.ArticleSelector = (*Client)(nil)
var _ ports.Summarizer = (*Client)(nil)
var _ ports.Predictor = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.LLMConfig, logger *slog.Logger) *Client {
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 5
	}
	return &Client{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		temperature: cfg.Temperature,
		maxRetries:  retries,
		backoff:     2 * time.Second,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		logger:      logger,
	}
}

// Chat API types (OpenAI-compatible).

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature,omitempty"`
	ResponseFormat any           `json:"response_format,omitempty"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason"`
	Message      chatMessage `json:"message"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// jsonSchemaFormat builds a strict json_schema response_format payload.
func jsonSchemaFormat(name string, schema map[string]any) any {
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   name,
			"strict": true,
			"schema": schema,
		},
	}
}

// SelectArticle asks the model for the most relevant candidate's ID.
// An empty ID means every candidate was declined.
func (c *Client) SelectArticle(ctx context.Context, teamName string, candidates []domain.Article) (string, error) {
	if len(candidates) == 0 {
		return "", nil
	}

	digests := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		digests = append(digests, candidate.Digest())
	}
	user := fmt.Sprintf("Team name: %s\nThe articles are:\n%s", teamName, strings.Join(digests, "\n\n"))

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"article_id": map[string]any{
				"type":        "string",
				"description": "ID of the chosen article, or empty to skip all candidates",
			},
		},
		"required":             []string{"article_id"},
		"additionalProperties": false,
	}

	var out struct {
		ArticleID string `json:"article_id"`
	}
	if err := c.complete(ctx, selectorSystemPrompt, user, jsonSchemaFormat("article_selection", schema), &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.ArticleID), nil
}

// SummarizeArticle extracts a partial TeamInfo record from an article body.
func (c *Client) SummarizeArticle(ctx context.Context, teamName, body string) (domain.TeamInfo, error) {
	user := fmt.Sprintf("The team name is: %s. The article content is:\n%s", teamName, body)

	stringList := map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":             map[string]any{"type": "string"},
			"coaching_summary": map[string]any{"type": "string"},
			"injuries":         stringList,
			"strengths":        stringList,
			"problem_areas":    stringList,
			"relevant_players": stringList,
		},
		"required":             []string{"name", "coaching_summary", "injuries", "strengths", "problem_areas", "relevant_players"},
		"additionalProperties": false,
	}

	var info domain.TeamInfo
	if err := c.complete(ctx, summarizerSystemPrompt, user, jsonSchemaFormat("team_info", schema), &info); err != nil {
		return domain.TeamInfo{}, err
	}
	return info, nil
}

// PredictGame submits both team reports and returns win probabilities.
func (c *Client) PredictGame(ctx context.Context, game domain.Game, home, away domain.TeamReport) (domain.Prediction, error) {
	payload, err := json.Marshal(map[string]any{
		"kickoff":   game.Kickoff.Format(time.RFC3339),
		"home_team": home,
		"away_team": away,
	})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("marshal matchup payload: %w", err)
	}

	user := fmt.Sprintf("Matchup: %s (away) at %s (home).\nGathered information:\n%s",
		game.AwayLabel(), game.HomeLabel(), payload)

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"home_team_probability": map[string]any{"type": "number"},
			"away_team_probability": map[string]any{"type": "number"},
			"home_team_summary":     map[string]any{"type": "string"},
			"away_team_summary":     map[string]any{"type": "string"},
		},
		"required":             []string{"home_team_probability", "away_team_probability", "home_team_summary", "away_team_summary"},
		"additionalProperties": false,
	}

	var prediction domain.Prediction
	if err := c.complete(ctx, predictorSystemPrompt, user, jsonSchemaFormat("game_prediction", schema), &prediction); err != nil {
		return domain.Prediction{}, err
	}
	return prediction.Normalized(), nil
}

// complete runs one structured chat completion and decodes the message
// content into out. Rate-limited and transient failures are retried with
// exponential backoff.
func (c *Client) complete(ctx context.Context, system, user string, format any, out any) error {
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return fmt.Errorf("llm client misconfigured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.temperature,
		ResponseFormat: format,
	})
	if err != nil {
		return fmt.Errorf("marshal chat payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			c.warn("retrying chat completion", "attempt", attempt+1, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		content, retryable, err := c.send(ctx, body)
		if err != nil {
			lastErr = err
			if !retryable {
				return err
			}
			continue
		}

		if err := json.Unmarshal([]byte(content), out); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrBadModelOutput, err)
		}
		return nil
	}
	return lastErr
}

func (c *Client) send(ctx context.Context, body []byte) (content string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("chat completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		retryable := resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode >= http.StatusInternalServerError
		return "", retryable, fmt.Errorf("chat completion %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", false, fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", false, fmt.Errorf("%w: empty completion", domain.ErrBadModelOutput)
	}
	return parsed.Choices[0].Message.Content, false, nil
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
