package participation

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Create when the user already has a participation in the contest.
var ErrDuplicate = errors.New("participation already exists")

// Repository describes participation persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, p Participation) error
	GetByID(ctx context.Context, participationID string) (Participation, bool, error)
	GetByUserAndContest(ctx context.Context, userID, contestID string) (Participation, bool, error)
	ListByContest(ctx context.Context, contestID string) ([]Participation, error)
	ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]Participation, error)
	UpdateTeam(ctx context.Context, participationID, teamID string) (Participation, bool, error)
}
