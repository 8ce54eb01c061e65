package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
)

type TeamRepository struct {
	mu          sync.RWMutex
	items       map[string]team.Team
	bySignature map[string]string
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{
		items:       make(map[string]team.Team),
		bySignature: make(map[string]string),
	}
}

func (r *TeamRepository) Create(_ context.Context, item team.Team, maxPerMatch int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := signatureKey(item.UserID, item.MatchID, item.Signature)
	if _, exists := r.bySignature[key]; exists && item.Signature != "" {
		return team.ErrDuplicate
	}
	if maxPerMatch > 0 {
		owned := 0
		for _, existing := range r.items {
			if existing.UserID == item.UserID && existing.MatchID == item.MatchID {
				owned++
			}
		}
		if owned >= maxPerMatch {
			return team.ErrLimitReached
		}
	}
	r.items[item.ID] = cloneTeam(item)
	if item.Signature != "" {
		r.bySignature[key] = item.ID
	}
	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(item), true, nil
}

func (r *TeamRepository) ListByUserAndMatch(_ context.Context, userID, matchID string) ([]team.Team, error) {
	return r.list(func(item team.Team) bool { return item.UserID == userID && item.MatchID == matchID }), nil
}

func (r *TeamRepository) ListByMatch(_ context.Context, matchID string) ([]team.Team, error) {
	return r.list(func(item team.Team) bool { return item.MatchID == matchID }), nil
}

func (r *TeamRepository) ListByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	return r.list(func(item team.Team) bool { return slices.Contains(teamIDs, item.ID) }), nil
}

func (r *TeamRepository) CountByUserAndMatch(ctx context.Context, userID, matchID string) (int, error) {
	items, err := r.ListByUserAndMatch(ctx, userID, matchID)
	return len(items), err
}

func (r *TeamRepository) GetBySignature(_ context.Context, userID, matchID, signature string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teamID, ok := r.bySignature[signatureKey(userID, matchID, signature)]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(r.items[teamID]), true, nil
}

func (r *TeamRepository) list(keep func(team.Team) bool) []team.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, cloneTeam(item))
		}
	}
	slices.SortFunc(out, func(a, b team.Team) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func signatureKey(userID, matchID, signature string) string {
	return userID + "::" + matchID + "::" + signature
}

func cloneTeam(t team.Team) team.Team {
	copied := t
	copied.Players = append([]team.Pick(nil), t.Players...)
	return copied
}
