package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/outcome"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type outcomeTableModel struct {
	ID                    int64     `db:"id"`
	UserID                string    `db:"user_id"`
	ContestPublicID       string    `db:"contest_public_id"`
	MatchID               string    `db:"match_id"`
	ParticipationPublicID string    `db:"participation_public_id"`
	Rank                  int       `db:"rank"`
	Points                float64   `db:"points"`
	PrizeWon              int64     `db:"prize_won"`
	Result                string    `db:"result"`
	TeamSnapshot          string    `db:"team_snapshot"`
	SettledAt             time.Time `db:"settled_at"`
}

const outcomeColumns = "id, user_id, contest_public_id, match_id, participation_public_id, rank, points, prize_won, result, team_snapshot::text AS team_snapshot, settled_at"

const upsertOutcomeSuffix = `ON CONFLICT (user_id, contest_public_id) DO UPDATE SET
    match_id = EXCLUDED.match_id,
    participation_public_id = EXCLUDED.participation_public_id,
    rank = EXCLUDED.rank,
    points = EXCLUDED.points,
    prize_won = EXCLUDED.prize_won,
    result = EXCLUDED.result,
    team_snapshot = EXCLUDED.team_snapshot,
    settled_at = EXCLUDED.settled_at`

type OutcomeRepository struct {
	db *sqlx.DB
}

func NewOutcomeRepository(db *sqlx.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

func (r *OutcomeRepository) SaveSettlement(ctx context.Context, contestID string, results []participation.Result, outcomes []outcome.Outcome) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settlement tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, result := range results {
		query, args, err := qb.Update("participations").
			Set("points", result.Points).
			Set("rank", result.Rank).
			Set("is_winner", result.IsWinner).
			Set("prize_won", result.PrizeWon).
			Set("settled_at", result.SettledAt).
			Where(
				qb.Eq("public_id", result.ParticipationID),
				qb.Eq("contest_public_id", contestID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build settle participation query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("settle participation %s: %w", result.ParticipationID, err)
		}
	}

	for _, item := range outcomes {
		snapshot, err := encodeJSON(item.TeamSnapshot)
		if err != nil {
			return fmt.Errorf("encode team snapshot user=%s: %w", item.UserID, err)
		}

		query, args, err := qb.InsertInto("contest_outcomes").
			Columns("user_id", "contest_public_id", "match_id", "participation_public_id", "rank", "points", "prize_won", "result", "team_snapshot", "settled_at").
			Values(item.UserID, contestID, item.MatchID, item.ParticipationID, item.Rank, item.Points, item.PrizeWon, string(item.Result), snapshot, item.SettledAt).
			Suffix(upsertOutcomeSuffix).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert outcome query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert outcome user=%s contest=%s: %w", item.UserID, contestID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement tx: %w", err)
	}
	return nil
}

func (r *OutcomeRepository) ListByContest(ctx context.Context, contestID string) ([]outcome.Outcome, error) {
	return r.list(ctx, "list outcomes by contest", "rank", qb.Eq("contest_public_id", contestID))
}

func (r *OutcomeRepository) ListByUser(ctx context.Context, userID string) ([]outcome.Outcome, error) {
	return r.list(ctx, "list outcomes by user", "settled_at DESC", qb.Eq("user_id", userID))
}

func (r *OutcomeRepository) list(ctx context.Context, op, orderBy string, conditions ...qb.Condition) ([]outcome.Outcome, error) {
	query, args, err := qb.Select(outcomeColumns).From("contest_outcomes").
		Where(conditions...).
		OrderBy(orderBy, "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []outcomeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]outcome.Outcome, 0, len(rows))
	for _, row := range rows {
		snapshot, err := decodeJSON[outcome.TeamSnapshot](row.TeamSnapshot)
		if err != nil {
			return nil, fmt.Errorf("decode team snapshot user=%s: %w", row.UserID, err)
		}
		out = append(out, outcome.Outcome{
			UserID:          row.UserID,
			ContestID:       row.ContestPublicID,
			MatchID:         row.MatchID,
			ParticipationID: row.ParticipationPublicID,
			Rank:            row.Rank,
			Points:          row.Points,
			PrizeWon:        row.PrizeWon,
			Result:          outcome.Result(row.Result),
			TeamSnapshot:    snapshot,
			SettledAt:       row.SettledAt,
		})
	}
	return out, nil
}
