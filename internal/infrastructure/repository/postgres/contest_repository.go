package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

const contestColumns = "id, public_id, template_public_id, match_id, title, ordinal, entry_fee, capacity, total_prize, prize_policy::text AS prize_policy, filled_slots, participants, base_contest_public_id, status, created_at, updated_at"

const templateColumns = "id, public_id, title, contest_type, format_scope, entry_fee, capacity, total_prize, prize_policy::text AS prize_policy, is_active, created_at, updated_at"

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) ListTemplates(ctx context.Context, activeOnly bool) ([]contest.Template, error) {
	builder := qb.Select(templateColumns).From("contest_templates")
	if activeOnly {
		builder = builder.Where(qb.Eq("is_active", true))
	}
	query, args, err := builder.OrderBy("created_at", "public_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list templates query: %w", err)
	}

	var rows []contestTemplateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	out := make([]contest.Template, 0, len(rows))
	for _, row := range rows {
		item, err := templateFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TemplateRepository) GetTemplate(ctx context.Context, templateID string) (contest.Template, bool, error) {
	query, args, err := qb.Select(templateColumns).From("contest_templates").
		Where(qb.Eq("public_id", templateID)).
		ToSQL()
	if err != nil {
		return contest.Template{}, false, fmt.Errorf("build get template query: %w", err)
	}

	var row contestTemplateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Template{}, false, nil
		}
		return contest.Template{}, false, fmt.Errorf("get template: %w", err)
	}

	item, err := templateFromRow(row)
	if err != nil {
		return contest.Template{}, false, err
	}
	return item, true, nil
}

func (r *TemplateRepository) CreateTemplate(ctx context.Context, tmpl contest.Template) error {
	policy, err := encodeJSON(tmpl.PrizePolicy)
	if err != nil {
		return fmt.Errorf("encode prize policy template=%s: %w", tmpl.ID, err)
	}

	query, args, err := qb.InsertModel("contest_templates", contestTemplateInsertModel{
		PublicID:    tmpl.ID,
		Title:       tmpl.Title,
		ContestType: string(tmpl.Type),
		FormatScope: string(tmpl.Format),
		EntryFee:    tmpl.EntryFee,
		Capacity:    tmpl.Capacity,
		TotalPrize:  tmpl.TotalPrize,
		PrizePolicy: policy,
		IsActive:    tmpl.IsActive,
		CreatedAt:   tmpl.CreatedAt,
		UpdatedAt:   tmpl.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert template query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert template %s: %w", tmpl.ID, err)
	}
	return nil
}

func (r *TemplateRepository) SetTemplateActive(ctx context.Context, templateID string, active bool, updatedAt time.Time) (contest.Template, bool, error) {
	query, args, err := qb.Update("contest_templates").
		Set("is_active", active).
		Set("updated_at", updatedAt).
		Where(qb.Eq("public_id", templateID)).
		Returning(templateColumns).
		ToSQL()
	if err != nil {
		return contest.Template{}, false, fmt.Errorf("build set template active query: %w", err)
	}

	var row contestTemplateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Template{}, false, nil
		}
		return contest.Template{}, false, fmt.Errorf("set template active: %w", err)
	}

	item, err := templateFromRow(row)
	if err != nil {
		return contest.Template{}, false, err
	}
	return item, true, nil
}

func templateFromRow(row contestTemplateTableModel) (contest.Template, error) {
	policy, err := decodeJSON[contest.PrizePolicy](row.PrizePolicy)
	if err != nil {
		return contest.Template{}, fmt.Errorf("decode prize policy template=%s: %w", row.PublicID, err)
	}

	return contest.Template{
		ID:          row.PublicID,
		Title:       row.Title,
		Type:        contest.Type(row.ContestType),
		Format:      contest.FormatScope(row.FormatScope),
		EntryFee:    row.EntryFee,
		Capacity:    row.Capacity,
		TotalPrize:  row.TotalPrize,
		PrizePolicy: policy,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) Create(ctx context.Context, item contest.Contest) error {
	policy, err := encodeJSON(item.PrizePolicy)
	if err != nil {
		return fmt.Errorf("encode prize policy contest=%s: %w", item.ID, err)
	}

	participants := item.Participants
	if participants == nil {
		participants = []string{}
	}
	query, args, err := qb.InsertModel("contests", contestInsertModel{
		PublicID:            item.ID,
		TemplatePublicID:    item.TemplateID,
		MatchID:             item.MatchID,
		Title:               item.Title,
		Ordinal:             item.Ordinal,
		EntryFee:            item.EntryFee,
		Capacity:            item.Capacity,
		TotalPrize:          item.TotalPrize,
		PrizePolicy:         policy,
		FilledSlots:         len(participants),
		Participants:        pq.StringArray(participants),
		BaseContestPublicID: nullableString(item.BaseContestID),
		Status:              string(item.Status),
		CreatedAt:           item.CreatedAt,
		UpdatedAt:           item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert contest query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert contest %s: %w", item.ID, err)
	}
	return nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select(contestColumns).From("contests").
		Where(qb.Eq("public_id", contestID)).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build get contest query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("get contest: %w", err)
	}

	item, err := contestFromRow(row)
	if err != nil {
		return contest.Contest{}, false, err
	}
	return item, true, nil
}

func (r *ContestRepository) ListByMatch(ctx context.Context, matchID string) ([]contest.Contest, error) {
	return r.list(ctx, "list contests by match", qb.Eq("match_id", matchID))
}

func (r *ContestRepository) ListByMatchAndTemplate(ctx context.Context, matchID, templateID string) ([]contest.Contest, error) {
	return r.list(ctx, "list contests by match and template",
		qb.Eq("match_id", matchID),
		qb.Eq("template_public_id", templateID),
	)
}

func (r *ContestRepository) ListByStatus(ctx context.Context, statuses ...contest.Status) ([]contest.Contest, error) {
	values := make([]string, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}
	return r.list(ctx, "list contests by status", qb.In("status", qb.Values(values)))
}

func (r *ContestRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]contest.Contest, error) {
	query, args, err := qb.Select(contestColumns).From("contests").
		Where(conditions...).
		OrderBy("template_public_id", "ordinal", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		item, err := contestFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Admit seats the user with one conditional UPDATE. When no row changes, a follow-up read
// explains whether the contest is missing, full or already holds the user.
func (r *ContestRepository) Admit(ctx context.Context, contestID, userID string, at time.Time) (contest.Contest, contest.AdmitOutcome, error) {
	query, args, err := qb.Update("contests").
		SetExpr("filled_slots", "filled_slots + 1").
		SetExpr("participants", "array_append(participants, ?)", userID).
		Set("updated_at", at).
		Where(
			qb.Eq("public_id", contestID),
			qb.Expr("filled_slots < capacity"),
			qb.Expr("NOT (? = ANY(participants))", userID),
		).
		Returning(contestColumns).
		ToSQL()
	if err != nil {
		return contest.Contest{}, contest.AdmitNotFound, fmt.Errorf("build admit contest query: %w", err)
	}

	var row contestTableModel
	err = r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		item, err := contestFromRow(row)
		if err != nil {
			return contest.Contest{}, contest.AdmitNotFound, err
		}
		return item, contest.AdmitOK, nil
	}
	if !isNotFound(err) {
		return contest.Contest{}, contest.AdmitNotFound, fmt.Errorf("admit contest: %w", err)
	}

	current, exists, err := r.GetByID(ctx, contestID)
	if err != nil {
		return contest.Contest{}, contest.AdmitNotFound, err
	}
	switch {
	case !exists:
		return contest.Contest{}, contest.AdmitNotFound, nil
	case current.HasParticipant(userID):
		return current, contest.AdmitAlreadyJoined, nil
	default:
		return current, contest.AdmitFull, nil
	}
}

func (r *ContestRepository) Release(ctx context.Context, contestID, userID string, at time.Time) error {
	query, args, err := qb.Update("contests").
		SetExpr("participants", "array_remove(participants, ?)", userID).
		SetExpr("filled_slots", "filled_slots - 1").
		Set("updated_at", at).
		Where(
			qb.Eq("public_id", contestID),
			qb.Expr("? = ANY(participants)", userID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release contest seat query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("release contest seat: %w", err)
	}
	return nil
}

func (r *ContestRepository) UpdateStatus(ctx context.Context, contestID string, status contest.Status, at time.Time) error {
	query, args, err := qb.Update("contests").
		Set("status", string(status)).
		Set("updated_at", at).
		Where(qb.Eq("public_id", contestID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update contest status query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update contest status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update contest status: contest %s not found", contestID)
	}
	return nil
}

func contestFromRow(row contestTableModel) (contest.Contest, error) {
	policy, err := decodeJSON[contest.PrizePolicy](row.PrizePolicy)
	if err != nil {
		return contest.Contest{}, fmt.Errorf("decode prize policy contest=%s: %w", row.PublicID, err)
	}

	return contest.Contest{
		ID:            row.PublicID,
		TemplateID:    row.TemplatePublicID,
		MatchID:       row.MatchID,
		Title:         row.Title,
		Ordinal:       row.Ordinal,
		EntryFee:      row.EntryFee,
		Capacity:      row.Capacity,
		TotalPrize:    row.TotalPrize,
		PrizePolicy:   policy,
		FilledSlots:   row.FilledSlots,
		Participants:  append([]string{}, row.Participants...),
		BaseContestID: derefString(row.BaseContestPublicID),
		Status:        contest.Status(row.Status),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
