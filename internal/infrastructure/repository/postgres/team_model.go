package postgres

import (
	"time"

	"github.com/lib/pq"
)

type fantasyTeamTableModel struct {
	ID                  int64          `db:"id"`
	PublicID            string         `db:"public_id"`
	UserID              string         `db:"user_id"`
	MatchID             string         `db:"match_id"`
	Name                string         `db:"name"`
	PlayerIDs           pq.StringArray `db:"player_ids"`
	PlayerRoles         pq.StringArray `db:"player_roles"`
	CaptainPlayerID     string         `db:"captain_player_id"`
	ViceCaptainPlayerID string         `db:"vice_captain_player_id"`
	Signature           string         `db:"signature"`
	CreatedAt           time.Time      `db:"created_at"`
}

type fantasyTeamInsertModel struct {
	PublicID            string         `db:"public_id"`
	UserID              string         `db:"user_id"`
	MatchID             string         `db:"match_id"`
	Name                string         `db:"name"`
	PlayerIDs           pq.StringArray `db:"player_ids"`
	PlayerRoles         pq.StringArray `db:"player_roles"`
	CaptainPlayerID     string         `db:"captain_player_id"`
	ViceCaptainPlayerID string         `db:"vice_captain_player_id"`
	Signature           string         `db:"signature"`
	CreatedAt           time.Time      `db:"created_at"`
}

type participationTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	UserID           string     `db:"user_id"`
	ContestPublicID  string     `db:"contest_public_id"`
	MatchID          string     `db:"match_id"`
	TemplatePublicID string     `db:"template_public_id"`
	TeamPublicID     string     `db:"team_public_id"`
	JoinedAt         time.Time  `db:"joined_at"`
	Points           float64    `db:"points"`
	Rank             int        `db:"rank"`
	IsWinner         bool       `db:"is_winner"`
	PrizeWon         int64      `db:"prize_won"`
	SettledAt        *time.Time `db:"settled_at"`
}

type participationInsertModel struct {
	PublicID         string    `db:"public_id"`
	UserID           string    `db:"user_id"`
	ContestPublicID  string    `db:"contest_public_id"`
	MatchID          string    `db:"match_id"`
	TemplatePublicID string    `db:"template_public_id"`
	TeamPublicID     string    `db:"team_public_id"`
	JoinedAt         time.Time `db:"joined_at"`
}
