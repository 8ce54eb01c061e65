package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/outcome"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
)

type OutcomeRepository struct {
	mu             sync.RWMutex
	items          map[string]outcome.Outcome
	participations *ParticipationRepository
}

// NewOutcomeRepository writes settlement results back onto participations held by parts.
func NewOutcomeRepository(parts *ParticipationRepository) *OutcomeRepository {
	return &OutcomeRepository{
		items:          make(map[string]outcome.Outcome),
		participations: parts,
	}
}

func (r *OutcomeRepository) SaveSettlement(_ context.Context, _ string, results []participation.Result, outcomes []outcome.Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.participations != nil {
		r.participations.applyResults(results)
	}
	for _, o := range outcomes {
		copied := o
		copied.TeamSnapshot.Players = slices.Clone(o.TeamSnapshot.Players)
		r.items[outcomeKey(o.UserID, o.ContestID)] = copied
	}
	return nil
}

func (r *OutcomeRepository) ListByContest(_ context.Context, contestID string) ([]outcome.Outcome, error) {
	return r.list(func(o outcome.Outcome) bool { return o.ContestID == contestID }), nil
}

func (r *OutcomeRepository) ListByUser(_ context.Context, userID string) ([]outcome.Outcome, error) {
	return r.list(func(o outcome.Outcome) bool { return o.UserID == userID }), nil
}

func (r *OutcomeRepository) list(keep func(outcome.Outcome) bool) []outcome.Outcome {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]outcome.Outcome, 0)
	for _, o := range r.items {
		if keep(o) {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b outcome.Outcome) int {
		if c := strings.Compare(a.ContestID, b.ContestID); c != 0 {
			return c
		}
		return cmp.Compare(a.Rank, b.Rank)
	})
	return out
}

func outcomeKey(userID, contestID string) string {
	return userID + "::" + contestID
}
