package postgres

import (
	"time"

	"github.com/lib/pq"
)

type contestTemplateTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	Title       string    `db:"title"`
	ContestType string    `db:"contest_type"`
	FormatScope string    `db:"format_scope"`
	EntryFee    int64     `db:"entry_fee"`
	Capacity    int       `db:"capacity"`
	TotalPrize  int64     `db:"total_prize"`
	PrizePolicy string    `db:"prize_policy"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type contestTemplateInsertModel struct {
	PublicID    string    `db:"public_id"`
	Title       string    `db:"title"`
	ContestType string    `db:"contest_type"`
	FormatScope string    `db:"format_scope"`
	EntryFee    int64     `db:"entry_fee"`
	Capacity    int       `db:"capacity"`
	TotalPrize  int64     `db:"total_prize"`
	PrizePolicy string    `db:"prize_policy"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type contestTableModel struct {
	ID                  int64          `db:"id"`
	PublicID            string         `db:"public_id"`
	TemplatePublicID    string         `db:"template_public_id"`
	MatchID             string         `db:"match_id"`
	Title               string         `db:"title"`
	Ordinal             int            `db:"ordinal"`
	EntryFee            int64          `db:"entry_fee"`
	Capacity            int            `db:"capacity"`
	TotalPrize          int64          `db:"total_prize"`
	PrizePolicy         string         `db:"prize_policy"`
	FilledSlots         int            `db:"filled_slots"`
	Participants        pq.StringArray `db:"participants"`
	BaseContestPublicID *string        `db:"base_contest_public_id"`
	Status              string         `db:"status"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

type contestInsertModel struct {
	PublicID            string         `db:"public_id"`
	TemplatePublicID    string         `db:"template_public_id"`
	MatchID             string         `db:"match_id"`
	Title               string         `db:"title"`
	Ordinal             int            `db:"ordinal"`
	EntryFee            int64          `db:"entry_fee"`
	Capacity            int            `db:"capacity"`
	TotalPrize          int64          `db:"total_prize"`
	PrizePolicy         string         `db:"prize_policy"`
	FilledSlots         int            `db:"filled_slots"`
	Participants        pq.StringArray `db:"participants"`
	BaseContestPublicID *string        `db:"base_contest_public_id"`
	Status              string         `db:"status"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}
