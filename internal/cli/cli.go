package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"nflagent/internal/domain"
	"nflagent/internal/ports"
)

const (
	firstWeek = 1
	lastWeek  = 18
)

// CLI drives the interactive part of the binary: listing a week's games,
// asking which one to analyze, and rendering the result.
type CLI struct {
	schedule ports.GameSchedule
	in       *bufio.Reader
	out      io.Writer
	now      func() time.Time
	logger   *slog.Logger
}

// New wires the schedule source with the terminal streams. now is
// injectable for tests and defaults to the wall clock.
func New(schedule ports.GameSchedule, in io.Reader, out io.Writer, logger *slog.Logger) *CLI {
	return &CLI{
		schedule: schedule,
		in:       bufio.NewReader(in),
		out:      out,
		now:      time.Now,
		logger:   logger,
	}
}

// CurrentWeek finds the week whose games fall within seven days of today.
// Returns false when no week matches.
func (c *CLI) CurrentWeek(ctx context.Context) (int, bool) {
	today := c.now().UTC()

	for week := firstWeek; week <= lastWeek; week++ {
		games, err := c.schedule.WeeklyGames(ctx, week)
		if err != nil {
			c.debug("weekly listing failed", "week", week, "error", err)
			continue
		}
		for _, game := range games {
			if game.Kickoff.IsZero() {
				continue
			}
			diff := game.Kickoff.Sub(today)
			if diff < 0 {
				diff = -diff
			}
			if diff <= 7*24*time.Hour {
				return week, true
			}
		}
	}
	return 0, false
}

// NextWeekWithGames finds the nearest week that still has games to play,
// scanning from the current week forward. Falls back to the final week.
func (c *CLI) NextWeekWithGames(ctx context.Context) int {
	now := c.now().UTC()

	start := firstWeek
	if week, ok := c.CurrentWeek(ctx); ok {
		start = week
	}

	for week := start; week <= lastWeek; week++ {
		games, err := c.schedule.WeeklyGames(ctx, week)
		if err != nil {
			c.debug("weekly listing failed", "week", week, "error", err)
			continue
		}
		for _, game := range games {
			if strings.EqualFold(game.Status, "scheduled") {
				return week
			}
			if !game.Kickoff.IsZero() && game.Kickoff.After(now) {
				return week
			}
		}
	}
	return lastWeek
}

// SelectGame lists a week's games and reads a numbered choice from the
// input stream. week <= 0 means "pick the next week with games".
func (c *CLI) SelectGame(ctx context.Context, week int) (domain.Game, error) {
	if week <= 0 {
		week = c.NextWeekWithGames(ctx)
	}

	fmt.Fprintf(c.out, "\nFetching games for week %d...\n", week)
	games, err := c.schedule.WeeklyGames(ctx, week)
	if err != nil {
		return domain.Game{}, fmt.Errorf("list games for week %d: %w", week, err)
	}
	if len(games) == 0 {
		return domain.Game{}, fmt.Errorf("no games found for week %d", week)
	}

	fmt.Fprintf(c.out, "\nFound %d games:\n\n", len(games))
	for i, game := range games {
		line := fmt.Sprintf("  %d. %s @ %s", i+1, game.AwayLabel(), game.HomeLabel())
		if !game.Kickoff.IsZero() {
			line += fmt.Sprintf(" (%s)", game.Kickoff.Format("Mon Jan 02, 3:04 PM"))
		}
		if game.Status != "" {
			line += fmt.Sprintf(" [%s]", game.Status)
		}
		fmt.Fprintln(c.out, line)
	}

	for {
		fmt.Fprintf(c.out, "\nSelect a game (1-%d): ", len(games))
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return domain.Game{}, fmt.Errorf("read selection: %w", err)
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(c.out, "Please enter a valid number")
			continue
		}
		if n < 1 || n > len(games) {
			fmt.Fprintf(c.out, "Please enter a number between 1 and %d\n", len(games))
			continue
		}

		game := games[n-1]
		fmt.Fprintf(c.out, "\nSelected: %s @ %s\n", game.AwayLabel(), game.HomeLabel())
		return game, nil
	}
}

// FormatPrediction renders the final prediction block.
func FormatPrediction(game domain.Game, prediction domain.Prediction) string {
	rule := strings.Repeat("=", 80)
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "PREDICTION: %s @ %s\n", game.AwayLabel(), game.HomeLabel())
	fmt.Fprintf(&b, "%s\n", rule)

	b.WriteString("\nWIN PROBABILITIES:\n")
	fmt.Fprintf(&b, "  %s: %.1f%%\n", game.HomeLabel(), prediction.HomeWinProbability*100)
	fmt.Fprintf(&b, "  %s: %.1f%%\n", game.AwayLabel(), prediction.AwayWinProbability*100)

	if prediction.HomeSummary != "" {
		fmt.Fprintf(&b, "\n%s ANALYSIS:\n  %s\n", game.HomeLabel(), prediction.HomeSummary)
	}
	if prediction.AwaySummary != "" {
		fmt.Fprintf(&b, "\n%s ANALYSIS:\n  %s\n", game.AwayLabel(), prediction.AwaySummary)
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	return b.String()
}

func (c *CLI) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
