package espn

import (
	"context"
	"fmt"
	"strings"

	"nflagent/internal/domain"
)

// positionClass derives the coarse position bucket from an abbreviation.
func positionClass(abbr string) domain.PositionClass {
	switch strings.ToUpper(abbr) {
	case "QB":
		return domain.ClassQB
	case "WR", "RB", "TE", "FB":
		return domain.ClassSkill
	case "C", "LG", "RG", "LT", "RT", "G", "T", "OL":
		return domain.ClassOL
	default:
		return domain.ClassDef
	}
}

// injuryStatus maps the first (most significant) injury report entry to an
// availability bucket. No injuries means active.
func injuryStatus(injuries []Injury) domain.InjuryStatus {
	if len(injuries) == 0 {
		return domain.StatusActive
	}

	status := strings.ToUpper(injuries[0].Status)
	typeName := strings.ToUpper(injuries[0].Type.Name)

	switch {
	case strings.Contains(status, "OUT"), strings.Contains(typeName, "OUT"),
		strings.Contains(typeName, "INJURED RESERVE"):
		return domain.StatusOut
	case strings.Contains(status, "QUESTIONABLE"), strings.Contains(typeName, "QUESTIONABLE"):
		return domain.StatusQuestionable
	case strings.Contains(status, "DOUBTFUL"), strings.Contains(typeName, "DOUBTFUL"):
		return domain.StatusDoubtful
	default:
		return domain.StatusActive
	}
}

func basePlayer(athlete AthleteResponse, teamAbbr string, class domain.PositionClass) domain.Player {
	return domain.Player{
		Name:          athlete.FullName,
		Team:          teamAbbr,
		Position:      athlete.Position.Abbreviation,
		PositionClass: class,
		HeightInches:  int(athlete.Height),
		WeightPounds:  athlete.Weight,
		Age:           athlete.Age,
	}
}

func buildQB(athlete AthleteResponse, stats StatisticsResponse, teamAbbr string) domain.QBPlayer {
	return domain.QBPlayer{
		Player:        basePlayer(athlete, teamAbbr, domain.ClassQB),
		PassingYards:  int(stats.Stat("passing", "passingYards", "Passing Yards")),
		PassingTDs:    int(stats.Stat("passing", "passingTouchdowns", "Passing Touchdowns")),
		Interceptions: int(stats.Stat("passing", "interceptions", "Interceptions")),
		CompletionPct: stats.Stat("passing", "completionPct", "Completion Percentage"),
		FumblesLost:   int(stats.Stat("general", "fumblesLost", "Fumbles Lost")),
	}
}

func buildSkill(athlete AthleteResponse, stats StatisticsResponse, teamAbbr string) domain.SkillPlayer {
	rushingAttempts := int(stats.Stat("rushing", "rushingAttempts", "Rushing Attempts"))
	rushingYards := int(stats.Stat("rushing", "rushingYards", "Rushing Yards"))
	rushingTDs := int(stats.Stat("rushing", "rushingTouchdowns", "Rushing Touchdowns"))

	targets := int(stats.Stat("receiving", "receivingTargets", "Receiving Targets"))
	receivingYards := int(stats.Stat("receiving", "receivingYards", "Receiving Yards"))
	receivingTDs := int(stats.Stat("receiving", "receivingTouchdowns", "Receiving Touchdowns"))

	touches := rushingAttempts + targets
	scrimmageYards := rushingYards + receivingYards
	yardsPerTouch := 0.0
	if touches > 0 {
		yardsPerTouch = float64(scrimmageYards) / float64(touches)
	}

	return domain.SkillPlayer{
		Player:         basePlayer(athlete, teamAbbr, domain.ClassSkill),
		Touches:        touches,
		ScrimmageYards: scrimmageYards,
		Touchdowns:     rushingTDs + receivingTDs,
		YardsPerTouch:  yardsPerTouch,
		FumblesLost:    int(stats.Stat("general", "fumblesLost", "Fumbles Lost")),
	}
}

func buildDefender(athlete AthleteResponse, stats StatisticsResponse, teamAbbr string) domain.DefensivePlayer {
	sacks := stats.Stat("defensive", "sacks", "Sacks")
	qbHits := int(stats.Stat("defensive", "QBHits", "Quarterback Hits"))
	hurries := int(stats.Stat("defensive", "hurries", "Hurries"))

	interceptions := int(stats.Stat("defensiveInterceptions", "interceptions", "Interceptions"))
	forcedFumbles := int(stats.Stat("general", "fumblesForced", "Forced Fumbles"))

	return domain.DefensivePlayer{
		Player:         basePlayer(athlete, teamAbbr, domain.ClassDef),
		Tackles:        int(stats.Stat("defensive", "totalTackles", "Total Tackles")),
		Sacks:          sacks,
		QBPressures:    int(sacks) + qbHits + hurries,
		Takeaways:      interceptions + forcedFumbles,
		PassesDefended: int(stats.Stat("defensive", "passesDefended", "Passes Defended")),
	}
}

func buildInjured(athlete AthleteResponse, teamAbbr string) domain.InjuredPlayer {
	description := "Unknown"
	if len(athlete.Injuries) > 0 {
		injury := athlete.Injuries[0]
		if injury.Details != nil && injury.Details.Type != "" {
			description = injury.Details.Type
		} else if injury.ShortComment != "" {
			description = injury.ShortComment
		}
	}

	return domain.InjuredPlayer{
		Player:       basePlayer(athlete, teamAbbr, positionClass(athlete.Position.Abbreviation)),
		Injury:       description,
		InjuryStatus: injuryStatus(athlete.Injuries),
	}
}

const (
	maxSkillPlayers   = 3
	maxInjuredPlayers = 3
	defaultRank       = 16
)

// BuildTeam assembles the statistical snapshot for a team: starting QB,
// top skill players, top defender and the injury report across that group.
// Per-player failures degrade the snapshot instead of failing it, except
// for the QB, which the prediction model cannot do without.
func (c *Client) BuildTeam(ctx context.Context, teamID string) (domain.Team, error) {
	season, err := c.TeamSeason(ctx, teamID)
	if err != nil {
		return domain.Team{}, err
	}
	teamAbbr := season.Team.Abbreviation

	depthChart, err := c.DepthChart(ctx, teamID)
	if err != nil {
		return domain.Team{}, err
	}

	qbID := depthChart.Starter("QB")
	if qbID == "" {
		return domain.Team{}, fmt.Errorf("team %s: no QB in depth chart", teamID)
	}

	qb, err := buildPlayer(ctx, c, qbID, teamAbbr, buildQB)
	if err != nil {
		return domain.Team{}, fmt.Errorf("starting QB: %w", err)
	}

	var skillPlayers []domain.SkillPlayer
	skillIDs := depthChart.TopByPositions([]string{"RB", "WR", "TE"}, maxSkillPlayers)
	for _, id := range skillIDs {
		player, err := buildPlayer(ctx, c, id, teamAbbr, buildSkill)
		if err != nil {
			c.warn("skipping skill player", "athlete_id", id, "error", err)
			continue
		}
		skillPlayers = append(skillPlayers, player)
	}

	var defender *domain.DefensivePlayer
	defenderID := firstID(depthChart.Starter("DE"), depthChart.Starter("LB"), depthChart.Starter("DT"))
	if defenderID != "" {
		player, err := buildPlayer(ctx, c, defenderID, teamAbbr, buildDefender)
		if err != nil {
			c.warn("skipping defender", "athlete_id", defenderID, "error", err)
		} else {
			defender = &player
		}
	}

	var injured []domain.InjuredPlayer
	keyIDs := append([]string{qbID}, skillIDs...)
	if defenderID != "" {
		keyIDs = append(keyIDs, defenderID)
	}
	for _, id := range keyIDs {
		athlete, err := c.Athlete(ctx, id)
		if err != nil {
			c.warn("skipping injury check", "athlete_id", id, "error", err)
			continue
		}
		if len(athlete.Injuries) == 0 {
			continue
		}
		injured = append(injured, buildInjured(athlete, teamAbbr))
		if len(injured) == maxInjuredPlayers {
			break
		}
	}

	rank := season.PlayoffSeed()
	if rank == 0 {
		rank = defaultRank
	}

	return domain.Team{
		Name:           season.Team.DisplayName,
		Abbreviation:   teamAbbr,
		Rank:           rank,
		Record:         season.RecordSummary(),
		Quarterback:    qb,
		SkillPlayers:   skillPlayers,
		TopDefender:    defender,
		InjuredPlayers: injured,
	}, nil
}

// buildPlayer fetches athlete bio and stats and runs them through build.
func buildPlayer[T any](ctx context.Context, c *Client, athleteID, teamAbbr string, build func(AthleteResponse, StatisticsResponse, string) T) (T, error) {
	var zero T

	athlete, err := c.Athlete(ctx, athleteID)
	if err != nil {
		return zero, err
	}
	stats, err := c.AthleteStats(ctx, athleteID)
	if err != nil {
		return zero, err
	}
	return build(athlete, stats, teamAbbr), nil
}

func firstID(ids ...string) string {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}
