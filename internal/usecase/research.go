package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"nflagent/internal/domain"
	"nflagent/internal/ports"
)

// ResearchDeps wires the driven adapters into the article-research loop.
type ResearchDeps struct {
	Source     ports.ArticleSource
	Fetcher    ports.ContentFetcher
	Selector   ports.ArticleSelector
	Summarizer ports.Summarizer
	Logger     *slog.Logger
}

// ResearchOptions bounds the loop.
type ResearchOptions struct {
	// MinArticles keeps reading before completeness checks apply.
	MinArticles int
	// MaxArticles is the guard against model-driven non-termination.
	MaxArticles int
}

// Research runs the article loop for one team: list candidates, let the
// model pick one, fetch and summarize it, merge the facts, repeat until
// the model skips, the record is complete, or the candidates run out.
type Research struct {
	source     ports.ArticleSource
	fetcher    ports.ContentFetcher
	selector   ports.ArticleSelector
	summarizer ports.Summarizer
	logger     *slog.Logger
	opts       ResearchOptions
}

// NewResearch constructs the loop with its dependencies and bounds.
func NewResearch(deps ResearchDeps, opts ResearchOptions) *Research {
	if opts.MinArticles <= 0 {
		opts.MinArticles = 5
	}
	if opts.MaxArticles < opts.MinArticles {
		opts.MaxArticles = opts.MinArticles
	}
	return &Research{
		source:     deps.Source,
		fetcher:    deps.Fetcher,
		selector:   deps.Selector,
		summarizer: deps.Summarizer,
		logger:     deps.Logger,
		opts:       opts,
	}
}

// TeamInfo gathers the accumulated record for one team. Failures inside
// the loop terminate it and return whatever was accumulated so far; only
// the initial candidate listing can fail the call outright.
func (r *Research) TeamInfo(ctx context.Context, teamID, teamName string) (domain.TeamInfo, error) {
	info := domain.TeamInfo{Name: teamName}

	candidates, err := r.source.TeamNews(ctx, teamID)
	if err != nil {
		return info, fmt.Errorf("list articles for %s: %w", teamName, err)
	}
	if len(candidates) == 0 {
		return info, domain.ErrNoArticles
	}

	// The initial candidate count bounds the loop even when the model
	// keeps asking to continue.
	maxIterations := len(candidates)
	articlesRead := 0

	for iteration := 0; iteration < maxIterations; iteration++ {
		selectedID, err := r.selector.SelectArticle(ctx, teamName, candidates)
		if err != nil {
			r.warn("article selection failed, ending research", "team", teamName, "error", err)
			return info, nil
		}
		if selectedID == "" {
			r.debug("model declined remaining candidates", "team", teamName,
				"decision", domain.Skip, "remaining", len(candidates))
			return info, nil
		}

		selected, remaining, found := takeCandidate(candidates, selectedID)
		if !found {
			// An ID outside the working set means the model lost the
			// plot; treat it like a skip rather than rereading anything.
			r.warn("model selected unknown article, ending research", "team", teamName, "id", selectedID)
			return info, nil
		}
		candidates = remaining

		body, err := r.fetcher.FetchBody(ctx, selected.URL)
		if err != nil {
			r.warn("article fetch failed, ending research", "team", teamName, "url", selected.URL, "error", err)
			return info, nil
		}

		update, err := r.summarizer.SummarizeArticle(ctx, teamName, body)
		if err != nil {
			r.warn("summarization failed, ending research", "team", teamName, "error", err)
			return info, nil
		}

		info = info.Merge(update)
		articlesRead++
		r.debug("merged article facts", "team", teamName, "articles_read", articlesRead,
			"populated_fields", info.PopulatedFields())

		if r.decide(info, articlesRead, len(candidates)) == domain.End {
			break
		}
	}

	return info, nil
}

// decide picks the next loop step after a successful merge.
func (r *Research) decide(info domain.TeamInfo, articlesRead, remaining int) domain.Decision {
	switch {
	case remaining == 0:
		return domain.End
	case articlesRead >= r.opts.MaxArticles:
		return domain.End
	case articlesRead < r.opts.MinArticles:
		return domain.Continue
	case info.Complete():
		return domain.End
	default:
		return domain.Continue
	}
}

func takeCandidate(candidates []domain.Article, id string) (domain.Article, []domain.Article, bool) {
	for i, candidate := range candidates {
		if candidate.ID == id {
			remaining := make([]domain.Article, 0, len(candidates)-1)
			remaining = append(remaining, candidates[:i]...)
			remaining = append(remaining, candidates[i+1:]...)
			return candidate, remaining, true
		}
	}
	return domain.Article{}, candidates, false
}

func (r *Research) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Research) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
