package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"nflagent/internal/domain"
	"nflagent/internal/ports"
)

// PredictDeps wires the adapters required to score a matchup.
type PredictDeps struct {
	Stats     ports.StatsProvider
	Research  *Research
	Predictor ports.Predictor
	Notifier  ports.Notifier
	Logger    *slog.Logger
}

// Predict orchestrates one matchup: build both team reports, ask the
// model for win probabilities, and optionally publish the digest.
type Predict struct {
	stats     ports.StatsProvider
	research  *Research
	predictor ports.Predictor
	notifier  ports.Notifier
	logger    *slog.Logger
}

// NewPredict constructs the orchestration component.
func NewPredict(deps PredictDeps) *Predict {
	return &Predict{
		stats:     deps.Stats,
		research:  deps.Research,
		predictor: deps.Predictor,
		notifier:  deps.Notifier,
		logger:    deps.Logger,
	}
}

// Matchup produces a prediction for one game. A failing stats lookup or
// research run degrades that side's report instead of aborting the game.
func (p *Predict) Matchup(ctx context.Context, game domain.Game) (domain.Prediction, error) {
	if p.predictor == nil {
		return domain.Prediction{}, fmt.Errorf("no predictor configured")
	}

	home := p.teamReport(ctx, game.HomeTeamID, game.HomeTeamName)
	away := p.teamReport(ctx, game.AwayTeamID, game.AwayTeamName)

	prediction, err := p.predictor.PredictGame(ctx, game, home, away)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("predict %s at %s: %w", game.AwayLabel(), game.HomeLabel(), err)
	}
	prediction = prediction.Normalized()

	if p.notifier != nil {
		digest := BuildDigest(game, prediction)
		if err := p.notifier.PublishDigest(ctx, digest); err != nil {
			p.warn("digest publish failed", "error", err)
		}
	}

	return prediction, nil
}

func (p *Predict) teamReport(ctx context.Context, teamID, teamName string) domain.TeamReport {
	report := domain.TeamReport{Info: domain.TeamInfo{Name: teamName}}

	if p.stats != nil {
		team, err := p.stats.BuildTeam(ctx, teamID)
		if err != nil {
			p.warn("stats lookup failed, predicting without roster data", "team", teamName, "error", err)
		} else {
			report.Stats = &team
		}
	}

	if p.research != nil {
		info, err := p.research.TeamInfo(ctx, teamID, teamName)
		if err != nil {
			p.warn("article research degraded", "team", teamName, "error", err)
		}
		// even a failed run returns the accumulated (possibly empty) record
		report.Info = info
	}

	return report
}

// BuildDigest renders the prediction as a short outbound message.
func BuildDigest(game domain.Game, prediction domain.Prediction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s @ %s\n", game.AwayLabel(), game.HomeLabel())
	fmt.Fprintf(&b, "%s: %.1f%%\n", game.HomeLabel(), prediction.HomeWinProbability*100)
	fmt.Fprintf(&b, "%s: %.1f%%\n", game.AwayLabel(), prediction.AwayWinProbability*100)
	if prediction.HomeSummary != "" {
		fmt.Fprintf(&b, "\n%s: %s\n", game.HomeLabel(), prediction.HomeSummary)
	}
	if prediction.AwaySummary != "" {
		fmt.Fprintf(&b, "%s: %s\n", game.AwayLabel(), prediction.AwaySummary)
	}
	return b.String()
}

func (p *Predict) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
