package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) Create(ctx context.Context, item participation.Participation) error {
	query, args, err := qb.InsertModel("participations", participationInsertModel{
		PublicID:         item.ID,
		UserID:           item.UserID,
		ContestPublicID:  item.ContestID,
		MatchID:          item.MatchID,
		TemplatePublicID: item.TemplateID,
		TeamPublicID:     item.TeamID,
		JoinedAt:         item.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert participation query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user=%s contest=%s", participation.ErrDuplicate, item.UserID, item.ContestID)
		}
		return fmt.Errorf("insert participation %s: %w", item.ID, err)
	}
	return nil
}

func (r *ParticipationRepository) GetByID(ctx context.Context, participationID string) (participation.Participation, bool, error) {
	return r.getOne(ctx, "get participation", qb.Eq("public_id", participationID))
}

func (r *ParticipationRepository) GetByUserAndContest(ctx context.Context, userID, contestID string) (participation.Participation, bool, error) {
	return r.getOne(ctx, "get participation by user and contest",
		qb.Eq("user_id", userID),
		qb.Eq("contest_public_id", contestID),
	)
}

func (r *ParticipationRepository) ListByContest(ctx context.Context, contestID string) ([]participation.Participation, error) {
	return r.list(ctx, "list participations by contest", qb.Eq("contest_public_id", contestID))
}

func (r *ParticipationRepository) ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]participation.Participation, error) {
	return r.list(ctx, "list participations by user and match", qb.Eq("user_id", userID), qb.Eq("match_id", matchID))
}

func (r *ParticipationRepository) UpdateTeam(ctx context.Context, participationID, teamID string) (participation.Participation, bool, error) {
	query, args, err := qb.Update("participations").
		Set("team_public_id", teamID).
		Where(qb.Eq("public_id", participationID)).
		Returning("*").
		ToSQL()
	if err != nil {
		return participation.Participation{}, false, fmt.Errorf("build update participation team query: %w", err)
	}

	var row participationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participation.Participation{}, false, nil
		}
		return participation.Participation{}, false, fmt.Errorf("update participation team: %w", err)
	}
	return participationFromRow(row), true, nil
}

func (r *ParticipationRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (participation.Participation, bool, error) {
	query, args, err := qb.Select("*").From("participations").Where(conditions...).ToSQL()
	if err != nil {
		return participation.Participation{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row participationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return participation.Participation{}, false, nil
		}
		return participation.Participation{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return participationFromRow(row), true, nil
}

func (r *ParticipationRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]participation.Participation, error) {
	query, args, err := qb.Select("*").From("participations").
		Where(conditions...).
		OrderBy("joined_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []participationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]participation.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, participationFromRow(row))
	}
	return out, nil
}

func participationFromRow(row participationTableModel) participation.Participation {
	return participation.Participation{
		ID:         row.PublicID,
		UserID:     row.UserID,
		ContestID:  row.ContestPublicID,
		MatchID:    row.MatchID,
		TemplateID: row.TemplatePublicID,
		TeamID:     row.TeamPublicID,
		JoinedAt:   row.JoinedAt,
		Points:     row.Points,
		Rank:       row.Rank,
		IsWinner:   row.IsWinner,
		PrizeWon:   row.PrizeWon,
		SettledAt:  row.SettledAt,
	}
}
