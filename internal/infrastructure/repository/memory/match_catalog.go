package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

// MatchCatalog is a static match provider and event source for local runs and tests.
type MatchCatalog struct {
	mu      sync.RWMutex
	matches map[string]match.Match
	events  map[string][]match.BallEvent
	squads  map[string][]match.SquadPlayer
}

func NewMatchCatalog(seed []match.Match) *MatchCatalog {
	c := &MatchCatalog{
		matches: make(map[string]match.Match, len(seed)),
		events:  make(map[string][]match.BallEvent),
		squads:  make(map[string][]match.SquadPlayer),
	}
	for _, m := range seed {
		c.matches[m.ID] = m
	}
	return c
}

func (c *MatchCatalog) Upsert(m match.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.matches[m.ID] = m
}

func (c *MatchCatalog) SetEvents(matchID string, events []match.BallEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[matchID] = slices.Clone(events)
}

func (c *MatchCatalog) SetSquad(matchID string, squad []match.SquadPlayer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.squads[matchID] = slices.Clone(squad)
}

func (c *MatchCatalog) GetMatch(_ context.Context, matchID string) (match.Match, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.matches[matchID]
	return m, ok, nil
}

func (c *MatchCatalog) GetMatchState(_ context.Context, matchID string) (match.State, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.matches[matchID]
	if !ok {
		return match.State{}, fmt.Errorf("match %s not found", matchID)
	}
	return m.State(), nil
}

func (c *MatchCatalog) ListUpcomingMatches(_ context.Context) ([]match.Match, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]match.Match, 0, len(c.matches))
	for _, m := range c.matches {
		if m.Started || m.Ended {
			continue
		}
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b match.Match) int { return a.StartsAt.Compare(b.StartsAt) })
	return out, nil
}

func (c *MatchCatalog) GetEvents(_ context.Context, matchID string) ([]match.BallEvent, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.matches[matchID]; !ok {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	return slices.Clone(c.events[matchID]), nil
}

func (c *MatchCatalog) GetSquad(_ context.Context, matchID string) ([]match.SquadPlayer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.matches[matchID]; !ok {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	return slices.Clone(c.squads[matchID]), nil
}
