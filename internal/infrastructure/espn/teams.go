package espn

import (
	"fmt"
	"sort"
	"strings"

	"nflagent/internal/domain"
)

// teamNameToID maps lowercase full team names to ESPN team IDs.
var teamNameToID = map[string]string{
	"arizona cardinals":     "22",
	"atlanta falcons":       "1",
	"baltimore ravens":      "33",
	"buffalo bills":         "2",
	"carolina panthers":     "29",
	"chicago bears":         "3",
	"cincinnati bengals":    "4",
	"cleveland browns":      "5",
	"dallas cowboys":        "6",
	"denver broncos":        "7",
	"detroit lions":         "8",
	"green bay packers":     "9",
	"houston texans":        "34",
	"indianapolis colts":    "11",
	"jacksonville jaguars":  "30",
	"kansas city chiefs":    "12",
	"las vegas raiders":     "13",
	"los angeles chargers":  "24",
	"los angeles rams":      "14",
	"miami dolphins":        "15",
	"minnesota vikings":     "16",
	"new england patriots":  "17",
	"new orleans saints":    "18",
	"new york giants":       "19",
	"new york jets":         "20",
	"philadelphia eagles":   "21",
	"pittsburgh steelers":   "23",
	"san francisco 49ers":   "25",
	"seattle seahawks":      "26",
	"tampa bay buccaneers":  "27",
	"tennessee titans":      "10",
	"washington commanders": "28",
}

// TeamID resolves a case-insensitive team name to its ESPN ID. Partial
// names ("chiefs", "green bay") match when unambiguous enough to contain
// or be contained by exactly the first matching full name.
func TeamID(teamName string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(teamName))
	if name == "" {
		return "", fmt.Errorf("%w: empty team name", domain.ErrTeamNotFound)
	}
	if id, ok := teamNameToID[name]; ok {
		return id, nil
	}

	// deterministic iteration for partial matching
	fullNames := make([]string, 0, len(teamNameToID))
	for full := range teamNameToID {
		fullNames = append(fullNames, full)
	}
	sort.Strings(fullNames)

	for _, full := range fullNames {
		if strings.Contains(full, name) || strings.Contains(name, full) {
			return teamNameToID[full], nil
		}
	}

	return "", fmt.Errorf("%w: %q (known teams: %s)",
		domain.ErrTeamNotFound, teamName, strings.Join(fullNames, ", "))
}
