package performance

import "context"

// Repository describes player performance persistence.
//
// ReplaceForMatch swaps every row of the match in one unit so readers never see a partial run.
type Repository interface {
	ReplaceForMatch(ctx context.Context, matchID string, items []PlayerPerformance) error
	ListByMatch(ctx context.Context, matchID string) ([]PlayerPerformance, error)
}
