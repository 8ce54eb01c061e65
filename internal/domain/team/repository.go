package team

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate is returned by Create when the user already owns a team with the same signature.
	ErrDuplicate = errors.New("team with same signature exists")
	// ErrLimitReached is returned by Create when the user already owns the allowed number of teams for the match.
	ErrLimitReached = errors.New("team limit reached")
)

// Repository describes fantasy team persistence needs from use cases.
type Repository interface {
	// Create stores the team unless the owner already has maxPerMatch teams for the match.
	// A maxPerMatch of zero disables the cap.
	Create(ctx context.Context, team Team, maxPerMatch int) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]Team, error)
	ListByMatch(ctx context.Context, matchID string) ([]Team, error)
	ListByIDs(ctx context.Context, teamIDs []string) ([]Team, error)
	CountByUserAndMatch(ctx context.Context, userID, matchID string) (int, error)
	GetBySignature(ctx context.Context, userID, matchID, signature string) (Team, bool, error)
}
