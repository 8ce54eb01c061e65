package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/performance"
)

type PerformanceRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]performance.PlayerPerformance
}

func NewPerformanceRepository() *PerformanceRepository {
	return &PerformanceRepository{byMatch: make(map[string][]performance.PlayerPerformance)}
}

func (r *PerformanceRepository) ReplaceForMatch(_ context.Context, matchID string, items []performance.PlayerPerformance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[matchID] = slices.Clone(items)
	return nil
}

func (r *PerformanceRepository) ListByMatch(_ context.Context, matchID string) ([]performance.PlayerPerformance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.byMatch[matchID])
	slices.SortFunc(out, func(a, b performance.PlayerPerformance) int {
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	return out, nil
}
