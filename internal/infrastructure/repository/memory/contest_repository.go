package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
)

type TemplateRepository struct {
	mu    sync.RWMutex
	items map[string]contest.Template
}

func NewTemplateRepository(seed []contest.Template) *TemplateRepository {
	items := make(map[string]contest.Template, len(seed))
	for _, tmpl := range seed {
		items[tmpl.ID] = cloneTemplate(tmpl)
	}
	return &TemplateRepository{items: items}
}

func (r *TemplateRepository) ListTemplates(_ context.Context, activeOnly bool) ([]contest.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Template, 0, len(r.items))
	for _, tmpl := range r.items {
		if activeOnly && !tmpl.IsActive {
			continue
		}
		out = append(out, cloneTemplate(tmpl))
	}
	slices.SortFunc(out, func(a, b contest.Template) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *TemplateRepository) GetTemplate(_ context.Context, templateID string) (contest.Template, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.items[templateID]
	if !ok {
		return contest.Template{}, false, nil
	}
	return cloneTemplate(tmpl), true, nil
}

func (r *TemplateRepository) CreateTemplate(_ context.Context, tmpl contest.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[tmpl.ID]; exists {
		return fmt.Errorf("template %s already exists", tmpl.ID)
	}
	r.items[tmpl.ID] = cloneTemplate(tmpl)
	return nil
}

func (r *TemplateRepository) SetTemplateActive(_ context.Context, templateID string, active bool, updatedAt time.Time) (contest.Template, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tmpl, ok := r.items[templateID]
	if !ok {
		return contest.Template{}, false, nil
	}
	tmpl.IsActive = active
	tmpl.UpdatedAt = updatedAt
	r.items[templateID] = tmpl
	return cloneTemplate(tmpl), true, nil
}

// ContestRepository serializes seat changes behind one mutex, which gives Admit the same
// all-or-nothing behaviour as the conditional UPDATE in postgres.
type ContestRepository struct {
	mu    sync.RWMutex
	items map[string]contest.Contest
}

func NewContestRepository() *ContestRepository {
	return &ContestRepository{items: make(map[string]contest.Contest)}
}

func (r *ContestRepository) Create(_ context.Context, item contest.Contest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("contest %s already exists", item.ID)
	}
	r.items[item.ID] = cloneContest(item)
	return nil
}

func (r *ContestRepository) GetByID(_ context.Context, contestID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[contestID]
	if !ok {
		return contest.Contest{}, false, nil
	}
	return cloneContest(item), true, nil
}

func (r *ContestRepository) ListByMatch(_ context.Context, matchID string) ([]contest.Contest, error) {
	return r.list(func(item contest.Contest) bool { return item.MatchID == matchID }), nil
}

func (r *ContestRepository) ListByMatchAndTemplate(_ context.Context, matchID, templateID string) ([]contest.Contest, error) {
	return r.list(func(item contest.Contest) bool {
		return item.MatchID == matchID && item.TemplateID == templateID
	}), nil
}

func (r *ContestRepository) ListByStatus(_ context.Context, statuses ...contest.Status) ([]contest.Contest, error) {
	return r.list(func(item contest.Contest) bool { return slices.Contains(statuses, item.Status) }), nil
}

func (r *ContestRepository) Admit(_ context.Context, contestID, userID string, at time.Time) (contest.Contest, contest.AdmitOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[contestID]
	if !ok {
		return contest.Contest{}, contest.AdmitNotFound, nil
	}

	admitted, outcome := item.Admit(userID)
	if outcome != contest.AdmitOK {
		return cloneContest(item), outcome, nil
	}
	admitted.UpdatedAt = at
	r.items[contestID] = admitted
	return cloneContest(admitted), contest.AdmitOK, nil
}

func (r *ContestRepository) Release(_ context.Context, contestID, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[contestID]
	if !ok {
		return nil
	}
	released, changed := item.Release(userID)
	if !changed {
		return nil
	}
	released.UpdatedAt = at
	r.items[contestID] = released
	return nil
}

func (r *ContestRepository) UpdateStatus(_ context.Context, contestID string, status contest.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[contestID]
	if !ok {
		return fmt.Errorf("contest %s not found", contestID)
	}
	item.Status = status
	item.UpdatedAt = at
	r.items[contestID] = item
	return nil
}

func (r *ContestRepository) list(keep func(contest.Contest) bool) []contest.Contest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0)
	for _, item := range r.items {
		if keep(item) {
			out = append(out, cloneContest(item))
		}
	}
	slices.SortFunc(out, func(a, b contest.Contest) int {
		if c := strings.Compare(a.TemplateID, b.TemplateID); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Ordinal, b.Ordinal); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func cloneContest(c contest.Contest) contest.Contest {
	copied := c
	copied.Participants = append([]string{}, c.Participants...)
	copied.PrizePolicy = clonePolicy(c.PrizePolicy)
	return copied
}

func cloneTemplate(t contest.Template) contest.Template {
	copied := t
	copied.PrizePolicy = clonePolicy(t.PrizePolicy)
	return copied
}

func clonePolicy(p contest.PrizePolicy) contest.PrizePolicy {
	copied := p
	copied.Shares = append([]string(nil), p.Shares...)
	copied.Amounts = append([]int64(nil), p.Amounts...)
	return copied
}
