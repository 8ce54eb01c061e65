package match

import (
	"fmt"
	"strings"
	"time"
)

// Format is the cricket format a match is played in.
type Format string

const (
	FormatTest Format = "TEST"
	FormatODI  Format = "ODI"
	FormatT20  Format = "T20"
	FormatT10  Format = "T10"
)

func ParseFormat(raw string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "TEST":
		return FormatTest, nil
	case "ODI":
		return FormatODI, nil
	case "T20", "T20I":
		return FormatT20, nil
	case "T10":
		return FormatT10, nil
	default:
		return "", fmt.Errorf("unknown match format %q", raw)
	}
}

// Match is the upstream fixture a contest is tied to.
type Match struct {
	ID       string
	Name     string
	Format   Format
	TeamA    string
	TeamB    string
	StartsAt time.Time
	Started  bool
	Ended    bool
}

func (m Match) State() State {
	return State{Started: m.Started, Ended: m.Ended, StartTime: m.StartsAt}
}

// State is the minimal lifecycle view the allocator and scheduler need.
type State struct {
	Started   bool
	Ended     bool
	StartTime time.Time
}

// SquadPlayer is a player named in a match squad, used to resolve fielders by name.
// Playing is set once the player is announced in the starting lineup.
type SquadPlayer struct {
	PlayerID string
	Name     string
	TeamName string
	Role     string
	Playing  bool
}
