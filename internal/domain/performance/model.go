package performance

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

type Batting struct {
	Runs       int
	BallsFaced int
	Fours      int
	Sixes      int
	IsDuck     bool
	StrikeRate float64
}

type Bowling struct {
	Wickets              int
	LegalBalls           int
	Overs                float64
	RunsConceded         int
	MaidenOvers          int
	Economy              float64
	BowledCount          int
	LBWCount             int
	CaughtAndBowledCount int
}

type Fielding struct {
	Catches         int
	Stumpings       int
	RunOutThrower   int
	RunOutCatcher   int
	RunOutDirectHit int
}

// PlayerPerformance is keyed by (PlayerID, MatchID) and always rebuilt from the full event stream.
type PlayerPerformance struct {
	PlayerID  string
	MatchID   string
	Format    match.Format
	Batting   Batting
	Bowling   Bowling
	Fielding  Fielding
	Played    bool
	Points    float64
	UpdatedAt time.Time
}

// UnresolvedCredit is a fielding credit whose player could not be identified.
type UnresolvedCredit struct {
	Innings     int
	Over        int
	Ball        int
	Dismissal   match.DismissalKind
	FielderName string
}
