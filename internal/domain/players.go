package domain

// PositionClass groups roster positions into the four buckets the stat
// model cares about.
type PositionClass string

const (
	ClassQB    PositionClass = "QB"
	ClassSkill PositionClass = "SKILL"
	ClassOL    PositionClass = "OL"
	ClassDef   PositionClass = "DEF"
)

// InjuryStatus is the availability bucket derived from injury reports.
type InjuryStatus string

const (
	StatusOut          InjuryStatus = "out"
	StatusQuestionable InjuryStatus = "questionable"
	StatusDoubtful     InjuryStatus = "doubtful"
	StatusActive       InjuryStatus = "active"
)

// Player holds the biographical fields shared by every position class.
type Player struct {
	Name          string        `json:"name"`
	Team          string        `json:"team"`
	Position      string        `json:"position"`
	PositionClass PositionClass `json:"position_class"`
	HeightInches  int           `json:"height"`
	WeightPounds  float64       `json:"weight"`
	Age           int           `json:"age"`
}

// QBPlayer carries the passing stats used to value a quarterback.
type QBPlayer struct {
	Player
	PassingYards  int     `json:"passing_yards"`
	PassingTDs    int     `json:"passing_tds"`
	Interceptions int     `json:"interceptions"`
	CompletionPct float64 `json:"completion_pct"`
	FumblesLost   int     `json:"fumbles_lost"`
}

// SkillPlayer covers RB/WR/TE/FB production from scrimmage.
type SkillPlayer struct {
	Player
	// Touches counts rushes for backs and targets for receivers.
	Touches        int     `json:"touches"`
	ScrimmageYards int     `json:"scrimmage_yards"`
	Touchdowns     int     `json:"touchdowns"`
	YardsPerTouch  float64 `json:"yards_per_touch"`
	FumblesLost    int     `json:"fumbles_lost"`
}

// DefensivePlayer tracks disruption stats for a front-line defender.
// Takeaways is interceptions plus forced fumbles.
type DefensivePlayer struct {
	Player
	Tackles        int     `json:"tackles"`
	Sacks          float64 `json:"sacks"`
	QBPressures    int     `json:"qb_pressures"`
	Takeaways      int     `json:"takeaways"`
	PassesDefended int     `json:"passes_defended"`
}

// InjuredPlayer annotates a roster player with the current injury report.
type InjuredPlayer struct {
	Player
	Injury       string       `json:"injury"`
	InjuryStatus InjuryStatus `json:"injury_status"`
}

// Team is the statistical snapshot handed to the prediction model: the
// starting QB, the top skill players, the top defender, and whoever on
// that group is hurt.
type Team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	// Rank is the playoff seed used as a power-ranking proxy, 1-32.
	Rank           int              `json:"rank"`
	Record         string           `json:"record"`
	Quarterback    QBPlayer         `json:"quarterback"`
	SkillPlayers   []SkillPlayer    `json:"skill_players"`
	TopDefender    *DefensivePlayer `json:"top_defender,omitempty"`
	InjuredPlayers []InjuredPlayer  `json:"injured_players"`
}
