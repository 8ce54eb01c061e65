package team

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
	"time"
)

type Role string

const (
	RoleWicketKeeper Role = "WK"
	RoleBatter       Role = "BAT"
	RoleAllRounder   Role = "AR"
	RoleBowler       Role = "BOWL"
)

var AllRoles = map[Role]struct{}{
	RoleWicketKeeper: {},
	RoleBatter:       {},
	RoleAllRounder:   {},
	RoleBowler:       {},
}

// Pick is one player selected into a fantasy team.
type Pick struct {
	PlayerID string
	Role     Role
}

// Team is a user's fantasy XI for one match.
type Team struct {
	ID            string
	UserID        string
	MatchID       string
	Name          string
	Players       []Pick
	CaptainID     string
	ViceCaptainID string
	Signature     string
	CreatedAt     time.Time
}

func (t Team) PlayerIDs() []string {
	out := make([]string, 0, len(t.Players))
	for _, pick := range t.Players {
		out = append(out, pick.PlayerID)
	}
	return out
}

func (t Team) Has(playerID string) bool {
	for _, pick := range t.Players {
		if pick.PlayerID == playerID {
			return true
		}
	}
	return false
}

// BelongsTo reports whether the team is owned by the user and picked for the match.
func (t Team) BelongsTo(userID, matchID string) bool {
	return t.UserID == userID && t.MatchID == matchID
}

// Signature identifies a team composition independent of pick order.
func Signature(playerIDs []string, captainID, viceCaptainID string) string {
	sorted := slices.Clone(playerIDs)
	slices.Sort(sorted)

	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|c:%s|vc:%s", strings.Join(sorted, ","), captainID, viceCaptainID)))
	return hex.EncodeToString(sum[:])
}
