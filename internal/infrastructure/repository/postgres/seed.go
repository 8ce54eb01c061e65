package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the default contest templates into an empty registry.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM contest_templates`); err != nil {
		return fmt.Errorf("count templates for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, tmpl := range memory.SeedTemplates() {
		policy, err := encodeJSON(tmpl.PrizePolicy)
		if err != nil {
			return fmt.Errorf("encode seed template %s prize policy: %w", tmpl.ID, err)
		}

		sqlQuery, args, err := sqlx.Named(`
INSERT INTO contest_templates (public_id, title, contest_type, format_scope, entry_fee, capacity, total_prize, prize_policy, is_active, created_at, updated_at)
VALUES (:public_id, :title, :contest_type, :format_scope, :entry_fee, :capacity, :total_prize, :prize_policy, :is_active, :created_at, :updated_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    tmpl.ID,
			"title":        tmpl.Title,
			"contest_type": string(tmpl.Type),
			"format_scope": string(tmpl.Format),
			"entry_fee":    tmpl.EntryFee,
			"capacity":     tmpl.Capacity,
			"total_prize":  tmpl.TotalPrize,
			"prize_policy": policy,
			"is_active":    tmpl.IsActive,
			"created_at":   tmpl.CreatedAt,
			"updated_at":   tmpl.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed template %s query: %w", tmpl.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed template %s: %w", tmpl.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
