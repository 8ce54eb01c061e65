package contest

import (
	"context"
	"time"
)

// TemplateRepository describes the contest template registry.
type TemplateRepository interface {
	ListTemplates(ctx context.Context, activeOnly bool) ([]Template, error)
	GetTemplate(ctx context.Context, templateID string) (Template, bool, error)
	CreateTemplate(ctx context.Context, template Template) error
	SetTemplateActive(ctx context.Context, templateID string, active bool, updatedAt time.Time) (Template, bool, error)
}

// Repository describes contest instance persistence needs from use cases.
//
// Admit must be a single conditional write: the seat is taken only when the contest has room
// and the user is not already seated. Implementations report the reason for a refusal.
type Repository interface {
	Create(ctx context.Context, contest Contest) error
	GetByID(ctx context.Context, contestID string) (Contest, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Contest, error)
	ListByMatchAndTemplate(ctx context.Context, matchID, templateID string) ([]Contest, error)
	ListByStatus(ctx context.Context, statuses ...Status) ([]Contest, error)
	Admit(ctx context.Context, contestID, userID string, at time.Time) (Contest, AdmitOutcome, error)
	Release(ctx context.Context, contestID, userID string, at time.Time) error
	UpdateStatus(ctx context.Context, contestID string, status Status, at time.Time) error
}
