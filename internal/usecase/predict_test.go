package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nflagent/internal/domain"
)

type fakeStats struct {
	team domain.Team
	err  error
}

func (f *fakeStats) BuildTeam(ctx context.Context, teamID string) (domain.Team, error) {
	return f.team, f.err
}

type fakePredictor struct {
	prediction domain.Prediction
	err        error
	home       domain.TeamReport
	away       domain.TeamReport
}

func (f *fakePredictor) PredictGame(ctx context.Context, game domain.Game, home, away domain.TeamReport) (domain.Prediction, error) {
	f.home = home
	f.away = away
	return f.prediction, f.err
}

type fakeNotifier struct {
	published []string
	err       error
}

func (f *fakeNotifier) PublishDigest(ctx context.Context, digest string) error {
	f.published = append(f.published, digest)
	return f.err
}

func testGame() domain.Game {
	return domain.Game{
		ID:           "401547650",
		Week:         5,
		HomeTeamID:   "12",
		HomeTeamName: "Kansas City Chiefs",
		HomeTeamAbbr: "KC",
		AwayTeamID:   "2",
		AwayTeamName: "Buffalo Bills",
		AwayTeamAbbr: "BUF",
	}
}

func TestMatchupDegradesOnStatsFailure(t *testing.T) {
	t.Parallel()

	predictor := &fakePredictor{prediction: domain.Prediction{HomeWinProbability: 0.6, AwayWinProbability: 0.4}}
	predict := NewPredict(PredictDeps{
		Stats:     &fakeStats{err: errors.New("espn down")},
		Predictor: predictor,
	})

	prediction, err := predict.Matchup(context.Background(), testGame())
	if err != nil {
		t.Fatalf("Matchup error: %v", err)
	}
	if predictor.home.Stats != nil || predictor.away.Stats != nil {
		t.Fatal("failed stats lookup must leave reports without roster data")
	}
	if prediction.HomeWinProbability != 0.6 {
		t.Fatalf("unexpected prediction: %+v", prediction)
	}
}

func TestMatchupNormalizesPercentages(t *testing.T) {
	t.Parallel()

	predictor := &fakePredictor{prediction: domain.Prediction{HomeWinProbability: 58, AwayWinProbability: 42}}
	predict := NewPredict(PredictDeps{Predictor: predictor})

	prediction, err := predict.Matchup(context.Background(), testGame())
	if err != nil {
		t.Fatalf("Matchup error: %v", err)
	}
	if prediction.HomeWinProbability != 0.58 || prediction.AwayWinProbability != 0.42 {
		t.Fatalf("expected normalized probabilities, got %+v", prediction)
	}
}

func TestMatchupPublishesDigest(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{}
	predict := NewPredict(PredictDeps{
		Predictor: &fakePredictor{prediction: domain.Prediction{HomeWinProbability: 0.7, AwayWinProbability: 0.3}},
		Notifier:  notifier,
	})

	if _, err := predict.Matchup(context.Background(), testGame()); err != nil {
		t.Fatalf("Matchup error: %v", err)
	}
	if len(notifier.published) != 1 {
		t.Fatalf("expected one digest, got %d", len(notifier.published))
	}
	if !strings.Contains(notifier.published[0], "BUF @ KC") {
		t.Fatalf("digest missing matchup line: %q", notifier.published[0])
	}
}

func TestMatchupToleratesNotifierFailure(t *testing.T) {
	t.Parallel()

	predict := NewPredict(PredictDeps{
		Predictor: &fakePredictor{prediction: domain.Prediction{HomeWinProbability: 0.5, AwayWinProbability: 0.5}},
		Notifier:  &fakeNotifier{err: errors.New("chat not found")},
	})

	if _, err := predict.Matchup(context.Background(), testGame()); err != nil {
		t.Fatalf("notifier failure must not fail the matchup: %v", err)
	}
}

func TestMatchupPredictorFailure(t *testing.T) {
	t.Parallel()

	predict := NewPredict(PredictDeps{
		Predictor: &fakePredictor{err: errors.New("model unavailable")},
	})

	if _, err := predict.Matchup(context.Background(), testGame()); err == nil {
		t.Fatal("predictor failure must surface")
	}
}

func TestMatchupRequiresPredictor(t *testing.T) {
	t.Parallel()

	predict := NewPredict(PredictDeps{})
	if _, err := predict.Matchup(context.Background(), testGame()); err == nil {
		t.Fatal("expected error without predictor")
	}
}

func TestBuildDigest(t *testing.T) {
	t.Parallel()

	digest := BuildDigest(testGame(), domain.Prediction{
		HomeWinProbability: 0.65,
		AwayWinProbability: 0.35,
		HomeSummary:        "healthy roster and home field",
		AwaySummary:        "thin secondary",
	})

	for _, want := range []string{"BUF @ KC", "KC: 65.0%", "BUF: 35.0%", "healthy roster", "thin secondary"} {
		if !strings.Contains(digest, want) {
			t.Errorf("digest missing %q:\n%s", want, digest)
		}
	}
}
