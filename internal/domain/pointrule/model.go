package pointrule

type HaulMode string

const (
	HaulCumulative HaulMode = "cumulative"
	HaulHighest    HaulMode = "highest"
)

// Band awards points when a rate falls below or above a threshold.
// The band is skipped when the player has not reached the minimum sample.
type Band struct {
	Below    *float64 `yaml:"below"`
	Above    *float64 `yaml:"above"`
	MinBalls int      `yaml:"min_balls"`
	MinOvers int      `yaml:"min_overs"`
	Points   float64  `yaml:"points"`
}

func (b Band) matches(rate float64) bool {
	if b.Below != nil && rate < *b.Below {
		return true
	}
	if b.Above != nil && rate > *b.Above {
		return true
	}
	return false
}

type Haul struct {
	Wickets int     `yaml:"wickets"`
	Points  float64 `yaml:"points"`
}

type BattingRules struct {
	Run           float64 `yaml:"run"`
	BoundaryBonus float64 `yaml:"boundary_bonus"`
	SixBonus      float64 `yaml:"six_bonus"`
	Duck          float64 `yaml:"duck"`
	HalfCentury   float64 `yaml:"half_century"`
	Century       float64 `yaml:"century"`
	StrikeRate    []Band  `yaml:"strike_rate"`
}

type DismissalBonus struct {
	Bowled          float64 `yaml:"bowled"`
	LBW             float64 `yaml:"lbw"`
	CaughtAndBowled float64 `yaml:"caught_and_bowled"`
}

type BowlingRules struct {
	Wicket         float64        `yaml:"wicket"`
	Maiden         float64        `yaml:"maiden"`
	HaulMode       HaulMode       `yaml:"haul_mode"`
	Hauls          []Haul         `yaml:"hauls"`
	DismissalBonus DismissalBonus `yaml:"dismissal_bonus"`
	Economy        []Band         `yaml:"economy"`
}

// FieldingRules pays run outs either flat through RunOut or split by role when RunOut is zero.
type FieldingRules struct {
	Catch           float64 `yaml:"catch"`
	Stumping        float64 `yaml:"stumping"`
	RunOut          float64 `yaml:"run_out"`
	RunOutThrower   float64 `yaml:"run_out_thrower"`
	RunOutCatcher   float64 `yaml:"run_out_catcher"`
	RunOutDirectHit float64 `yaml:"run_out_direct_hit"`
}

// Table is the full rule set for one match format.
type Table struct {
	Played   float64       `yaml:"played"`
	Batting  BattingRules  `yaml:"batting"`
	Bowling  BowlingRules  `yaml:"bowling"`
	Fielding FieldingRules `yaml:"fielding"`
}
