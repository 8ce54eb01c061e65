package performance

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

const ballsPerOver = 6

// FielderResolver maps a fielder name from the feed to a player id.
type FielderResolver interface {
	Resolve(name string) (string, bool)
}

type squadResolver map[string]string

// NewSquadResolver resolves fielder names against the match squad. Names matching more than one
// player are treated as unresolvable.
func NewSquadResolver(squad []match.SquadPlayer) FielderResolver {
	out := make(squadResolver, len(squad))
	ambiguous := make(map[string]struct{})
	for _, p := range squad {
		key := normalizeName(p.Name)
		if key == "" || p.PlayerID == "" {
			continue
		}
		if existing, ok := out[key]; ok && existing != p.PlayerID {
			ambiguous[key] = struct{}{}
			continue
		}
		out[key] = p.PlayerID
	}
	for key := range ambiguous {
		delete(out, key)
	}
	return out
}

func (r squadResolver) Resolve(name string) (string, bool) {
	id, ok := r[normalizeName(name)]
	return id, ok
}

func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

type FoldResult struct {
	Performances []PlayerPerformance
	Unresolved   []UnresolvedCredit
}

type overKey struct {
	bowlerID string
	innings   int
	over      int
}

type overTally struct {
	legalBalls int
	conceded   int
}

// Fold aggregates the ball events of one match into per-player performances.
// A player counts as played when they appear in an event or in the announced lineup; benched
// squad members are kept with Played unset. Output is ordered by player id.
func Fold(matchID string, format match.Format, events []match.BallEvent, squad []match.SquadPlayer) FoldResult {
	ordered := slices.Clone(events)
	slices.SortStableFunc(ordered, func(a, b match.BallEvent) int {
		if a.Innings != b.Innings {
			return cmp.Compare(a.Innings, b.Innings)
		}
		return cmp.Compare(a.Over, b.Over)
	})

	resolver := NewSquadResolver(squad)
	players := make(map[string]*PlayerPerformance)
	get := func(playerID string) *PlayerPerformance {
		if p, ok := players[playerID]; ok {
			p.Played = true
			return p
		}
		p := &PlayerPerformance{PlayerID: playerID, MatchID: matchID, Format: format, Played: true}
		players[playerID] = p
		return p
	}

	for _, member := range squad {
		if member.PlayerID == "" {
			continue
		}
		if member.Playing {
			get(member.PlayerID)
			continue
		}
		if _, ok := players[member.PlayerID]; !ok {
			players[member.PlayerID] = &PlayerPerformance{PlayerID: member.PlayerID, MatchID: matchID, Format: format}
		}
	}

	overs := make(map[overKey]*overTally)
	var unresolved []UnresolvedCredit

	for _, event := range ordered {
		legal := event.IsLegal()

		if event.BatterID != "" {
			batter := get(event.BatterID)
			batter.Batting.Runs += event.RunsOffBat
			if legal {
				batter.Batting.BallsFaced++
			}
			switch event.RunsOffBat {
			case 4:
				batter.Batting.Fours++
			case 6:
				batter.Batting.Sixes++
			}
		}

		var bowler *PlayerPerformance
		if event.BowlerID != "" {
			bowler = get(event.BowlerID)
			bowler.Bowling.RunsConceded += event.RunsOffBat + event.Extras
			if legal {
				bowler.Bowling.LegalBalls++
			}

			key := overKey{bowlerID: event.BowlerID, innings: event.Innings, over: event.Over}
			tally, ok := overs[key]
			if !ok {
				tally = &overTally{}
				overs[key] = tally
			}
			tally.conceded += event.RunsOffBat + event.Extras
			if legal {
				tally.legalBalls++
			}
		}

		if event.Dismissal == nil {
			continue
		}

		dismissal := event.Dismissal
		if bowler != nil && dismissal.Kind.CreditsBowler() {
			bowler.Bowling.Wickets++
			switch dismissal.Kind {
			case match.DismissalBowled:
				bowler.Bowling.BowledCount++
			case match.DismissalLBW:
				bowler.Bowling.LBWCount++
			case match.DismissalCaughtAndBowled:
				bowler.Bowling.CaughtAndBowledCount++
			}
		}

		unresolvedCredit := func() {
			unresolved = append(unresolved, UnresolvedCredit{
				Innings:     event.Innings,
				Over:        event.Over,
				Ball:        event.Ball,
				Dismissal:   dismissal.Kind,
				FielderName: dismissal.FielderName,
			})
		}
		fielderID := func() (string, bool) {
			if dismissal.FielderID != "" {
				return dismissal.FielderID, true
			}
			if dismissal.FielderName == "" {
				return "", false
			}
			return resolver.Resolve(dismissal.FielderName)
		}

		switch dismissal.Kind {
		case match.DismissalCaught:
			if id, ok := fielderID(); ok {
				get(id).Fielding.Catches++
			} else {
				unresolvedCredit()
			}
		case match.DismissalCaughtAndBowled:
			if bowler != nil {
				bowler.Fielding.Catches++
			}
		case match.DismissalStumped:
			if id, ok := fielderID(); ok {
				get(id).Fielding.Stumpings++
			} else {
				unresolvedCredit()
			}
		case match.DismissalRunOut:
			thrower := dismissal.ThrowerID
			if thrower == "" {
				thrower, _ = fielderID()
			}
			if thrower == "" && dismissal.CatcherID == "" {
				unresolvedCredit()
				continue
			}
			if thrower != "" {
				if dismissal.DirectHit {
					get(thrower).Fielding.RunOutDirectHit++
				} else {
					get(thrower).Fielding.RunOutThrower++
				}
			}
			if dismissal.CatcherID != "" && dismissal.CatcherID != thrower {
				get(dismissal.CatcherID).Fielding.RunOutCatcher++
			}
		}
	}

	for key, tally := range overs {
		if tally.legalBalls >= ballsPerOver && tally.conceded == 0 {
			get(key.bowlerID).Bowling.MaidenOvers++
		}
	}

	out := make([]PlayerPerformance, 0, len(players))
	for _, p := range players {
		finalize(p)
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b PlayerPerformance) int {
		return strings.Compare(a.PlayerID, b.PlayerID)
	})

	return FoldResult{Performances: out, Unresolved: unresolved}
}

func finalize(p *PlayerPerformance) {
	p.Batting.IsDuck = p.Batting.BallsFaced > 0 && p.Batting.Runs == 0
	if p.Batting.BallsFaced > 0 {
		p.Batting.StrikeRate = round2(float64(p.Batting.Runs) / float64(p.Batting.BallsFaced) * 100)
	}

	p.Bowling.Overs = OversNotation(p.Bowling.LegalBalls)
	if p.Bowling.LegalBalls > 0 {
		p.Bowling.Economy = round2(float64(p.Bowling.RunsConceded) / float64(p.Bowling.LegalBalls) * ballsPerOver)
	}
}

// OversNotation renders legal balls as completed.remainder, so 13 balls is 2.1.
func OversNotation(legalBalls int) float64 {
	if legalBalls <= 0 {
		return 0
	}
	return float64(legalBalls/ballsPerOver) + float64(legalBalls%ballsPerOver)/10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
