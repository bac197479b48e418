package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"nflagent/internal/cli"
	"nflagent/internal/config"
	"nflagent/internal/infrastructure/content"
	"nflagent/internal/infrastructure/espn"
	"nflagent/internal/infrastructure/llm"
	"nflagent/internal/infrastructure/telegram"
	"nflagent/internal/logging"
	"nflagent/internal/ports"
	"nflagent/internal/usecase"
)

// Application wires config into adapters and use cases.
type Application struct {
	cfg     config.Config
	cli     *cli.CLI
	predict *usecase.Predict
	out     io.Writer
	logger  *slog.Logger
}

// New builds a runnable application instance. in/out are the terminal
// streams of the interactive session.
func New(cfg config.Config, in io.Reader, out io.Writer, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	espnClient := espn.NewClient(cfg.ESPN, baseLogger.With("component", "espn"))
	llmClient := llm.NewClient(cfg.LLM, baseLogger.With("component", "llm"))
	fetcher := content.NewFetcher(&http.Client{Timeout: cfg.ESPN.RequestTimeout}, cfg.Research.MaxContentLength)

	research := usecase.NewResearch(usecase.ResearchDeps{
		Source:     espnClient,
		Fetcher:    fetcher,
		Selector:   llmClient,
		Summarizer: llmClient,
		Logger:     baseLogger.With("component", "research"),
	}, usecase.ResearchOptions{
		MinArticles: cfg.Research.MinArticles,
		MaxArticles: cfg.Research.MaxArticles,
	})

	var notifier ports.Notifier
	if tg := cfg.Notifications.Telegram; tg.BotToken != "" && tg.ChatID != "" {
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID)
	}

	predict := usecase.NewPredict(usecase.PredictDeps{
		Stats:     espnClient,
		Research:  research,
		Predictor: llmClient,
		Notifier:  notifier,
		Logger:    baseLogger.With("component", "predict"),
	})

	return &Application{
		cfg:     cfg,
		cli:     cli.New(espnClient, in, out, baseLogger.With("component", "cli")),
		predict: predict,
		out:     out,
		logger:  baseLogger,
	}
}

// Run executes one interactive session: pick a game, research both
// teams, print the prediction. week <= 0 selects the next week with
// upcoming games.
func (a *Application) Run(ctx context.Context, week int) error {
	if a.cfg.LLM.APIKey == "" {
		return fmt.Errorf("no model API key configured")
	}

	game, err := a.cli.SelectGame(ctx, week)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nAnalyzing %s @ %s...\n", game.AwayLabel(), game.HomeLabel())
	fmt.Fprintln(a.out, "This may take a moment while articles are gathered and read.")

	prediction, err := a.predict.Matchup(ctx, game)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, cli.FormatPrediction(game, prediction))
	return nil
}
