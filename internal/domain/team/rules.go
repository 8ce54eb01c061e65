package team

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTeamSize      = errors.New("invalid team size")
	ErrDuplicatePlayer      = errors.New("duplicate player in team")
	ErrUnknownRole          = errors.New("unknown player role")
	ErrRoleCountOutOfBounds = errors.New("role count out of bounds")
	ErrInvalidCaptaincy     = errors.New("invalid captain selection")
	ErrWrongOwner           = errors.New("team does not belong to user or match")
)

// Rules stores team composition limits.
type Rules struct {
	TeamSize         int
	MinPerRole       int
	MaxPerRole       int
	MaxTeamsPerMatch int
}

func DefaultRules() Rules {
	return Rules{
		TeamSize:         11,
		MinPerRole:       1,
		MaxPerRole:       8,
		MaxTeamsPerMatch: 10,
	}
}

func ValidatePicks(picks []Pick, captainID, viceCaptainID string, rules Rules) error {
	if len(picks) != rules.TeamSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidTeamSize, rules.TeamSize, len(picks))
	}

	playerSet := make(map[string]struct{}, len(picks))
	roleCounter := make(map[Role]int, len(AllRoles))
	for _, pick := range picks {
		if pick.PlayerID == "" {
			return fmt.Errorf("player id is required")
		}
		if _, exists := playerSet[pick.PlayerID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, pick.PlayerID)
		}
		playerSet[pick.PlayerID] = struct{}{}

		if _, ok := AllRoles[pick.Role]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownRole, pick.Role)
		}
		roleCounter[pick.Role]++
	}

	for role := range AllRoles {
		count := roleCounter[role]
		if count < rules.MinPerRole || count > rules.MaxPerRole {
			return fmt.Errorf("%w: role=%s min=%d max=%d current=%d", ErrRoleCountOutOfBounds, role, rules.MinPerRole, rules.MaxPerRole, count)
		}
	}

	if captainID == "" || viceCaptainID == "" {
		return fmt.Errorf("%w: captain and vice-captain are required", ErrInvalidCaptaincy)
	}
	if captainID == viceCaptainID {
		return fmt.Errorf("%w: captain and vice-captain must differ", ErrInvalidCaptaincy)
	}
	if _, ok := playerSet[captainID]; !ok {
		return fmt.Errorf("%w: captain %s is not in the team", ErrInvalidCaptaincy, captainID)
	}
	if _, ok := playerSet[viceCaptainID]; !ok {
		return fmt.Errorf("%w: vice-captain %s is not in the team", ErrInvalidCaptaincy, viceCaptainID)
	}

	return nil
}

func (t Team) Validate(rules Rules) error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if t.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	return ValidatePicks(t.Players, t.CaptainID, t.ViceCaptainID, rules)
}

// ValidateForMatch checks the team can be used by the user in the match.
func ValidateForMatch(t Team, userID, matchID string) error {
	if !t.BelongsTo(userID, matchID) {
		return fmt.Errorf("%w: team=%s", ErrWrongOwner, t.ID)
	}
	return nil
}
