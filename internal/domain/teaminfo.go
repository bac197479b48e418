package domain

// TeamInfo accumulates qualitative facts about a team across articles.
// The JSON tags double as the structured-output schema field names.
type TeamInfo struct {
	Name            string   `json:"name"`
	CoachingSummary string   `json:"coaching_summary"`
	Injuries        []string `json:"injuries"`
	Strengths       []string `json:"strengths"`
	ProblemAreas    []string `json:"problem_areas"`
	RelevantPlayers []string `json:"relevant_players"`
}

// Merge folds a newly extracted partial record into the accumulator and
// returns the result. Fields are only ever enriched: empty new values are
// ignored, lists are unioned in order, and differing text fields are
// appended after a blank line. Name is fixed at loop start and not merged.
func (t TeamInfo) Merge(update TeamInfo) TeamInfo {
	t.CoachingSummary = mergeText(t.CoachingSummary, update.CoachingSummary)
	t.Injuries = mergeList(t.Injuries, update.Injuries)
	t.Strengths = mergeList(t.Strengths, update.Strengths)
	t.ProblemAreas = mergeList(t.ProblemAreas, update.ProblemAreas)
	t.RelevantPlayers = mergeList(t.RelevantPlayers, update.RelevantPlayers)
	return t
}

// Complete reports whether every enrichable field has been populated.
func (t TeamInfo) Complete() bool {
	return t.CoachingSummary != "" &&
		len(t.Injuries) > 0 &&
		len(t.Strengths) > 0 &&
		len(t.ProblemAreas) > 0 &&
		len(t.RelevantPlayers) > 0
}

// PopulatedFields counts the enrichable fields that hold a value.
func (t TeamInfo) PopulatedFields() int {
	count := 0
	if t.CoachingSummary != "" {
		count++
	}
	for _, list := range [][]string{t.Injuries, t.Strengths, t.ProblemAreas, t.RelevantPlayers} {
		if len(list) > 0 {
			count++
		}
	}
	return count
}

func mergeText(old, update string) string {
	switch {
	case update == "":
		return old
	case old == "":
		return update
	case old == update:
		return old
	default:
		return old + "\n\n" + update
	}
}

func mergeList(old, update []string) []string {
	if len(update) == 0 {
		return old
	}
	if len(old) == 0 {
		return append([]string(nil), update...)
	}

	seen := make(map[string]struct{}, len(old))
	merged := append([]string(nil), old...)
	for _, item := range old {
		seen[item] = struct{}{}
	}
	for _, item := range update {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		merged = append(merged, item)
	}
	return merged
}
