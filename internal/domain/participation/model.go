package participation

import (
	"fmt"
	"time"
)

// Participation links a user, one of their teams and a contest instance.
// Result fields stay zero until the contest is settled.
type Participation struct {
	ID         string
	UserID     string
	ContestID  string
	MatchID    string
	TemplateID string
	TeamID     string
	JoinedAt   time.Time

	Points    float64
	Rank      int
	IsWinner  bool
	PrizeWon  int64
	SettledAt *time.Time
}

func (p Participation) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("participation id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.ContestID == "" {
		return fmt.Errorf("contest id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("team id is required")
	}
	return nil
}

// Result is the settled standing written back onto a participation.
type Result struct {
	ParticipationID string
	Points          float64
	Rank            int
	IsWinner        bool
	PrizeWon        int64
	SettledAt       time.Time
}
