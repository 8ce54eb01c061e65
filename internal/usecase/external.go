package usecase

import (
	"context"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

// MatchProvider exposes the upstream fixture catalogue and live match state.
type MatchProvider interface {
	GetMatch(ctx context.Context, matchID string) (match.Match, bool, error)
	GetMatchState(ctx context.Context, matchID string) (match.State, error)
	ListUpcomingMatches(ctx context.Context) ([]match.Match, error)
}

// EventSource exposes ball-by-ball data and squads for a match.
type EventSource interface {
	GetEvents(ctx context.Context, matchID string) ([]match.BallEvent, error)
	GetSquad(ctx context.Context, matchID string) ([]match.SquadPlayer, error)
}
