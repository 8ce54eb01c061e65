package match

import "strings"

type Penalty string

const (
	PenaltyNone   Penalty = ""
	PenaltyWide   Penalty = "wide"
	PenaltyNoBall Penalty = "no_ball"
)

type DismissalKind string

const (
	DismissalBowled          DismissalKind = "bowled"
	DismissalLBW             DismissalKind = "lbw"
	DismissalCaught          DismissalKind = "caught"
	DismissalCaughtAndBowled DismissalKind = "caught_and_bowled"
	DismissalStumped         DismissalKind = "stumped"
	DismissalHitWicket       DismissalKind = "hit_wicket"
	DismissalRunOut          DismissalKind = "run_out"
	DismissalOther           DismissalKind = "other"
)

// Dismissal describes a wicket on a delivery. Fielder references may carry only a name when the
// upstream feed has no player id; those are resolved against the squad before scoring.
type Dismissal struct {
	Kind        DismissalKind
	BatterID    string
	FielderID   string
	FielderName string
	ThrowerID   string
	CatcherID   string
	DirectHit   bool
}

// BallEvent is one delivery. Over is 0-indexed as delivered by the feed.
type BallEvent struct {
	Innings    int
	Over       int
	Ball       int
	BatterID   string
	BowlerID   string
	RunsOffBat int
	Extras     int
	Penalty    Penalty
	Dismissal  *Dismissal
}

// IsLegal reports whether the delivery counts toward the bowler's over.
func (e BallEvent) IsLegal() bool {
	return e.Penalty != PenaltyWide && e.Penalty != PenaltyNoBall
}

func ParsePenalty(raw string) Penalty {
	switch normalizeToken(raw) {
	case "wide", "wides", "wd":
		return PenaltyWide
	case "no_ball", "noball", "nb":
		return PenaltyNoBall
	default:
		return PenaltyNone
	}
}

func ParseDismissalKind(raw string) (DismissalKind, bool) {
	switch normalizeToken(raw) {
	case "":
		return "", false
	case "bowled", "b":
		return DismissalBowled, true
	case "lbw":
		return DismissalLBW, true
	case "catch", "caught", "c":
		return DismissalCaught, true
	case "caught_and_bowled", "c_and_b", "cb":
		return DismissalCaughtAndBowled, true
	case "stumped", "st":
		return DismissalStumped, true
	case "hit_wicket", "hitwicket", "hw":
		return DismissalHitWicket, true
	case "run_out", "runout", "ro":
		return DismissalRunOut, true
	default:
		return DismissalOther, true
	}
}

// CreditsBowler reports whether the dismissal counts as a bowler's wicket.
func (k DismissalKind) CreditsBowler() bool {
	switch k {
	case DismissalBowled, DismissalLBW, DismissalCaught, DismissalCaughtAndBowled, DismissalStumped, DismissalHitWicket:
		return true
	default:
		return false
	}
}

func normalizeToken(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, "&", "and")
	value = strings.ReplaceAll(value, "-", "_")
	value = strings.Join(strings.Fields(value), "_")
	return value
}
