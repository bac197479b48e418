package domain

import "errors"

var (
	// ErrNoArticles signals an empty candidate list from the news search.
	ErrNoArticles = errors.New("no candidate articles")

	// ErrBadModelOutput signals a model response that failed schema
	// validation and cannot be used.
	ErrBadModelOutput = errors.New("model output failed validation")

	// ErrTeamNotFound signals an unknown team name in the lookup table.
	ErrTeamNotFound = errors.New("team not found")
)
