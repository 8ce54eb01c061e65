package outcome

import (
	"context"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
)

// Repository persists settlement results.
//
// SaveSettlement writes participation results and outcome rows in one unit; re-running it with
// the same input must leave storage unchanged.
type Repository interface {
	SaveSettlement(ctx context.Context, contestID string, results []participation.Result, outcomes []Outcome) error
	ListByContest(ctx context.Context, contestID string) ([]Outcome, error)
	ListByUser(ctx context.Context, userID string) ([]Outcome, error)
}
