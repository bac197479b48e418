package ports

import (
	"context"

	"nflagent/internal/domain"
)

// ArticleSource lists candidate articles about a team.
type ArticleSource interface {
	TeamNews(ctx context.Context, teamID string) ([]domain.Article, error)
}

// ContentFetcher retrieves and extracts the readable body of an article.
type ContentFetcher interface {
	FetchBody(ctx context.Context, articleURL string) (string, error)
}

// ArticleSelector asks a model to pick the most relevant candidate.
// An empty id means the model declined every candidate.
type ArticleSelector interface {
	SelectArticle(ctx context.Context, teamName string, candidates []domain.Article) (id string, err error)
}

// Summarizer extracts prediction-relevant facts from an article body.
type Summarizer interface {
	SummarizeArticle(ctx context.Context, teamName, body string) (domain.TeamInfo, error)
}

// Predictor produces win probabilities for a matchup from both reports.
type Predictor interface {
	PredictGame(ctx context.Context, game domain.Game, home, away domain.TeamReport) (domain.Prediction, error)
}

// StatsProvider builds the statistical snapshot of a team's key players.
type StatsProvider interface {
	BuildTeam(ctx context.Context, teamID string) (domain.Team, error)
}

// GameSchedule lists the normalized games of a given week.
type GameSchedule interface {
	WeeklyGames(ctx context.Context, week int) ([]domain.Game, error)
}

// Notifier delivers the final prediction digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}
