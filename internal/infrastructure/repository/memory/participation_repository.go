package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
)

type ParticipationRepository struct {
	mu     sync.RWMutex
	items  map[string]participation.Participation
	byUser map[string]string
}

func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{
		items:  make(map[string]participation.Participation),
		byUser: make(map[string]string),
	}
}

func (r *ParticipationRepository) Create(_ context.Context, p participation.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := participationKey(p.UserID, p.ContestID)
	if _, exists := r.byUser[key]; exists {
		return participation.ErrDuplicate
	}
	r.items[p.ID] = p
	r.byUser[key] = p.ID
	return nil
}

func (r *ParticipationRepository) GetByID(_ context.Context, participationID string) (participation.Participation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[participationID]
	return p, ok, nil
}

func (r *ParticipationRepository) GetByUserAndContest(_ context.Context, userID, contestID string) (participation.Participation, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUser[participationKey(userID, contestID)]
	if !ok {
		return participation.Participation{}, false, nil
	}
	return r.items[id], true, nil
}

func (r *ParticipationRepository) ListByContest(_ context.Context, contestID string) ([]participation.Participation, error) {
	return r.list(func(p participation.Participation) bool { return p.ContestID == contestID }), nil
}

func (r *ParticipationRepository) ListByUserAndMatch(_ context.Context, userID, matchID string) ([]participation.Participation, error) {
	return r.list(func(p participation.Participation) bool { return p.UserID == userID && p.MatchID == matchID }), nil
}

func (r *ParticipationRepository) UpdateTeam(_ context.Context, participationID, teamID string) (participation.Participation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[participationID]
	if !ok {
		return participation.Participation{}, false, nil
	}
	p.TeamID = teamID
	r.items[participationID] = p
	return p, true, nil
}

func (r *ParticipationRepository) applyResults(results []participation.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, result := range results {
		p, ok := r.items[result.ParticipationID]
		if !ok {
			continue
		}
		settledAt := result.SettledAt
		p.Points = result.Points
		p.Rank = result.Rank
		p.IsWinner = result.IsWinner
		p.PrizeWon = result.PrizeWon
		p.SettledAt = &settledAt
		r.items[result.ParticipationID] = p
	}
}

func (r *ParticipationRepository) list(keep func(participation.Participation) bool) []participation.Participation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participation.Participation, 0)
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b participation.Participation) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func participationKey(userID, contestID string) string {
	return userID + "::" + contestID
}
