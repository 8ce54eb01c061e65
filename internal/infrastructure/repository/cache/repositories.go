package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
)

const templatePrefix = "template:"

// TemplateRepository caches registry reads; every write drops the whole template keyspace.
type TemplateRepository struct {
	next  contest.TemplateRepository
	lists *basecache.Store[[]contest.Template]
	items *basecache.Store[cachedTemplate]
}

type cachedTemplate struct {
	value  contest.Template
	exists bool
}

func NewTemplateRepository(next contest.TemplateRepository, ttl time.Duration) *TemplateRepository {
	return &TemplateRepository{
		next:  next,
		lists: basecache.NewStore[[]contest.Template](ttl, 8),
		items: basecache.NewStore[cachedTemplate](ttl, 1024),
	}
}

func (r *TemplateRepository) ListTemplates(ctx context.Context, activeOnly bool) ([]contest.Template, error) {
	key := templatePrefix + "list:" + strconv.FormatBool(activeOnly)
	items, err := r.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]contest.Template, error) {
		items, err := r.next.ListTemplates(ctx, activeOnly)
		if err != nil {
			return nil, err
		}
		return append([]contest.Template(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]contest.Template(nil), items...), nil
}

func (r *TemplateRepository) GetTemplate(ctx context.Context, templateID string) (contest.Template, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, templatePrefix+"id:"+templateID, func(ctx context.Context) (cachedTemplate, error) {
		item, exists, err := r.next.GetTemplate(ctx, templateID)
		if err != nil {
			return cachedTemplate{}, err
		}
		return cachedTemplate{value: item, exists: exists}, nil
	})
	if err != nil {
		return contest.Template{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *TemplateRepository) CreateTemplate(ctx context.Context, tmpl contest.Template) error {
	if err := r.next.CreateTemplate(ctx, tmpl); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *TemplateRepository) SetTemplateActive(ctx context.Context, templateID string, active bool, updatedAt time.Time) (contest.Template, bool, error) {
	item, exists, err := r.next.SetTemplateActive(ctx, templateID, active, updatedAt)
	if err != nil {
		return contest.Template{}, false, err
	}
	r.invalidate(ctx)
	return item, exists, nil
}

func (r *TemplateRepository) invalidate(ctx context.Context) {
	r.lists.DeletePrefix(ctx, templatePrefix)
	r.items.DeletePrefix(ctx, templatePrefix)
}

// TeamRepository caches single-team lookups. Teams are never edited after creation,
// so only misses are dropped when a new team lands.
type TeamRepository struct {
	next  team.Repository
	items *basecache.Store[cachedTeam]
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{
		next:  next,
		items: basecache.NewStore[cachedTeam](ttl, 4096),
	}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team, maxPerMatch int) error {
	if err := r.next.Create(ctx, item, maxPerMatch); err != nil {
		return err
	}
	r.items.Delete(ctx, "team:id:"+item.ID)
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	cached, err := r.items.GetOrLoad(ctx, "team:id:"+teamID, func(ctx context.Context) (cachedTeam, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeam{}, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *TeamRepository) ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]team.Team, error) {
	return r.next.ListByUserAndMatch(ctx, userID, matchID)
}

func (r *TeamRepository) ListByMatch(ctx context.Context, matchID string) ([]team.Team, error) {
	return r.next.ListByMatch(ctx, matchID)
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	return r.next.ListByIDs(ctx, teamIDs)
}

func (r *TeamRepository) CountByUserAndMatch(ctx context.Context, userID, matchID string) (int, error) {
	return r.next.CountByUserAndMatch(ctx, userID, matchID)
}

func (r *TeamRepository) GetBySignature(ctx context.Context, userID, matchID, signature string) (team.Team, bool, error) {
	return r.next.GetBySignature(ctx, userID, matchID, signature)
}
