package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-cricket/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create serialises creates per (user, match) with a transaction-scoped advisory lock so the
// team count and the insert cannot interleave with a concurrent create.
func (r *TeamRepository) Create(ctx context.Context, item team.Team, maxPerMatch int) error {
	ids := make([]string, 0, len(item.Players))
	roles := make([]string, 0, len(item.Players))
	for _, pick := range item.Players {
		ids = append(ids, pick.PlayerID)
		roles = append(roles, string(pick.Role))
	}

	query, args, err := qb.InsertModel("fantasy_teams", fantasyTeamInsertModel{
		PublicID:            item.ID,
		UserID:              item.UserID,
		MatchID:             item.MatchID,
		Name:                item.Name,
		PlayerIDs:           pq.StringArray(ids),
		PlayerRoles:         pq.StringArray(roles),
		CaptainPlayerID:     item.CaptainID,
		ViceCaptainPlayerID: item.ViceCaptainID,
		Signature:           item.Signature,
		CreatedAt:           item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if maxPerMatch > 0 {
		lockQuery := tx.Rebind(`SELECT pg_advisory_xact_lock(hashtext(?))`)
		if _, err := tx.ExecContext(ctx, lockQuery, item.UserID+"|"+item.MatchID); err != nil {
			return fmt.Errorf("lock teams user=%s match=%s: %w", item.UserID, item.MatchID, err)
		}

		countQuery := tx.Rebind(`SELECT COUNT(1) FROM fantasy_teams WHERE user_id = ? AND match_id = ?`)
		var owned int
		if err := tx.GetContext(ctx, &owned, countQuery, item.UserID, item.MatchID); err != nil {
			return fmt.Errorf("count teams: %w", err)
		}
		if owned >= maxPerMatch {
			return fmt.Errorf("%w: user=%s match=%s max=%d", team.ErrLimitReached, item.UserID, item.MatchID, maxPerMatch)
		}
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user=%s match=%s", team.ErrDuplicate, item.UserID, item.MatchID)
		}
		return fmt.Errorf("insert team %s: %w", item.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.getOne(ctx, "get team", qb.Eq("public_id", teamID))
}

func (r *TeamRepository) GetBySignature(ctx context.Context, userID, matchID, signature string) (team.Team, bool, error) {
	return r.getOne(ctx, "get team by signature",
		qb.Eq("user_id", userID),
		qb.Eq("match_id", matchID),
		qb.Eq("signature", signature),
	)
}

func (r *TeamRepository) ListByUserAndMatch(ctx context.Context, userID, matchID string) ([]team.Team, error) {
	return r.list(ctx, "list teams by user and match", qb.Eq("user_id", userID), qb.Eq("match_id", matchID))
}

func (r *TeamRepository) ListByMatch(ctx context.Context, matchID string) ([]team.Team, error) {
	return r.list(ctx, "list teams by match", qb.Eq("match_id", matchID))
}

func (r *TeamRepository) ListByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, "list teams by ids", qb.In("public_id", qb.Values(teamIDs)))
}

func (r *TeamRepository) CountByUserAndMatch(ctx context.Context, userID, matchID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("fantasy_teams").
		Where(qb.Eq("user_id", userID), qb.Eq("match_id", matchID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count teams query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").Where(conditions...).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row fantasyTeamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) list(ctx context.Context, op string, conditions ...qb.Condition) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(conditions...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []fantasyTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func teamFromRow(row fantasyTeamTableModel) team.Team {
	picks := make([]team.Pick, 0, len(row.PlayerIDs))
	for i, playerID := range row.PlayerIDs {
		var role team.Role
		if i < len(row.PlayerRoles) {
			role = team.Role(row.PlayerRoles[i])
		}
		picks = append(picks, team.Pick{PlayerID: playerID, Role: role})
	}

	return team.Team{
		ID:            row.PublicID,
		UserID:        row.UserID,
		MatchID:       row.MatchID,
		Name:          row.Name,
		Players:       picks,
		CaptainID:     row.CaptainPlayerID,
		ViceCaptainID: row.ViceCaptainPlayerID,
		Signature:     row.Signature,
		CreatedAt:     row.CreatedAt,
	}
}
