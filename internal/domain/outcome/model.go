package outcome

import "time"

type Result string

const (
	ResultWin       Result = "WIN"
	ResultLoss      Result = "LOSS"
	ResultDraw      Result = "DRAW"
	ResultCancelled Result = "CANCELLED"
)

type SnapshotRole string

const (
	RoleCaptain     SnapshotRole = "CAPTAIN"
	RoleViceCaptain SnapshotRole = "VICE_CAPTAIN"
	RolePlayer      SnapshotRole = "PLAYER"
)

type SnapshotPlayer struct {
	PlayerID string       `json:"player_id"`
	Role     SnapshotRole `json:"role"`
	Points   float64      `json:"points"`
}

// TeamSnapshot freezes the team composition and per-player points at settlement.
type TeamSnapshot struct {
	TeamID        string           `json:"team_id"`
	CaptainID     string           `json:"captain_id"`
	ViceCaptainID string           `json:"vice_captain_id"`
	Players       []SnapshotPlayer `json:"players"`
}

// Outcome is keyed by (UserID, ContestID); writes are upserts.
type Outcome struct {
	UserID          string
	ContestID       string
	MatchID         string
	ParticipationID string
	Rank            int
	Points          float64
	PrizeWon        int64
	Result          Result
	TeamSnapshot    TeamSnapshot
	SettledAt       time.Time
}
