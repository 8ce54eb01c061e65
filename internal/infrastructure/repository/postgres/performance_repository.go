package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/performance"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type performanceTableModel struct {
	ID        int64     `db:"id"`
	PlayerID  string    `db:"player_id"`
	MatchID   string    `db:"match_id"`
	Format    string    `db:"format"`
	Played    bool      `db:"played"`
	Batting   string    `db:"batting"`
	Bowling   string    `db:"bowling"`
	Fielding  string    `db:"fielding"`
	Points    float64   `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}

type performanceInsertModel struct {
	PlayerID  string    `db:"player_id"`
	MatchID   string    `db:"match_id"`
	Format    string    `db:"format"`
	Played    bool      `db:"played"`
	Batting   string    `db:"batting"`
	Bowling   string    `db:"bowling"`
	Fielding  string    `db:"fielding"`
	Points    float64   `db:"points"`
	UpdatedAt time.Time `db:"updated_at"`
}

const performanceColumns = "id, player_id, match_id, format, played, batting::text AS batting, bowling::text AS bowling, fielding::text AS fielding, points, updated_at"

// performance rows are batched to stay well under the bind parameter limit.
const performanceInsertBatch = 500

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) ReplaceForMatch(ctx context.Context, matchID string, items []performance.PlayerPerformance) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace performances tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery := tx.Rebind(`DELETE FROM player_performances WHERE match_id = ?`)
	if _, err := tx.ExecContext(ctx, deleteQuery, matchID); err != nil {
		return fmt.Errorf("delete performances match=%s: %w", matchID, err)
	}

	for start := 0; start < len(items); start += performanceInsertBatch {
		end := min(start+performanceInsertBatch, len(items))

		rows := make([]performanceInsertModel, 0, end-start)
		for _, item := range items[start:end] {
			row, err := toPerformanceInsertModel(matchID, item)
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}

		query, args, err := qb.InsertModels("player_performances", rows, "")
		if err != nil {
			return fmt.Errorf("build insert performances query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert performances match=%s: %w", matchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace performances tx: %w", err)
	}
	return nil
}

func toPerformanceInsertModel(matchID string, item performance.PlayerPerformance) (performanceInsertModel, error) {
	batting, err := encodeJSON(item.Batting)
	if err != nil {
		return performanceInsertModel{}, fmt.Errorf("encode batting player=%s: %w", item.PlayerID, err)
	}
	bowling, err := encodeJSON(item.Bowling)
	if err != nil {
		return performanceInsertModel{}, fmt.Errorf("encode bowling player=%s: %w", item.PlayerID, err)
	}
	fielding, err := encodeJSON(item.Fielding)
	if err != nil {
		return performanceInsertModel{}, fmt.Errorf("encode fielding player=%s: %w", item.PlayerID, err)
	}
	return performanceInsertModel{
		PlayerID:  item.PlayerID,
		MatchID:   matchID,
		Format:    string(item.Format),
		Played:    item.Played,
		Batting:   batting,
		Bowling:   bowling,
		Fielding:  fielding,
		Points:    item.Points,
		UpdatedAt: item.UpdatedAt,
	}, nil
}

func (r *PerformanceRepository) ListByMatch(ctx context.Context, matchID string) ([]performance.PlayerPerformance, error) {
	query, args, err := qb.Select(performanceColumns).From("player_performances").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("points DESC", "player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list performances query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list performances: %w", err)
	}

	out := make([]performance.PlayerPerformance, 0, len(rows))
	for _, row := range rows {
		batting, err := decodeJSON[performance.Batting](row.Batting)
		if err != nil {
			return nil, fmt.Errorf("decode batting player=%s: %w", row.PlayerID, err)
		}
		bowling, err := decodeJSON[performance.Bowling](row.Bowling)
		if err != nil {
			return nil, fmt.Errorf("decode bowling player=%s: %w", row.PlayerID, err)
		}
		fielding, err := decodeJSON[performance.Fielding](row.Fielding)
		if err != nil {
			return nil, fmt.Errorf("decode fielding player=%s: %w", row.PlayerID, err)
		}

		out = append(out, performance.PlayerPerformance{
			PlayerID:  row.PlayerID,
			MatchID:   row.MatchID,
			Format:    match.Format(row.Format),
			Batting:   batting,
			Bowling:   bowling,
			Fielding:  fielding,
			Played:    row.Played,
			Points:    row.Points,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}
