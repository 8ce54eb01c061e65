package pointrule

import (
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/performance"
)

// Calculator turns aggregated performance into fantasy points. It holds no mutable state.
type Calculator struct {
	version int
	tables  map[match.Format]Table
}

func NewCalculator(version int, tables map[match.Format]Table) *Calculator {
	copied := make(map[match.Format]Table, len(tables))
	for format, table := range tables {
		copied[format] = table
	}
	return &Calculator{version: version, tables: copied}
}

func (c *Calculator) Version() int {
	if c == nil {
		return 0
	}
	return c.version
}

func (c *Calculator) Table(format match.Format) (Table, bool) {
	if c == nil {
		return Table{}, false
	}
	table, ok := c.tables[format]
	return table, ok
}

// Points reports false when no table exists for the format; the score is then zero.
func (c *Calculator) Points(perf performance.PlayerPerformance, format match.Format) (float64, bool) {
	table, ok := c.Table(format)
	if !ok {
		return 0, false
	}

	var points float64
	if perf.Played {
		points += table.Played
	}
	points += battingPoints(perf.Batting, table.Batting)
	points += bowlingPoints(perf.Bowling, table.Bowling)
	points += fieldingPoints(perf.Fielding, table.Fielding)

	return points, true
}

func battingPoints(b performance.Batting, rules BattingRules) float64 {
	points := float64(b.Runs) * rules.Run
	points += float64(b.Fours) * rules.BoundaryBonus
	points += float64(b.Sixes) * rules.SixBonus

	if b.IsDuck && b.BallsFaced > 0 {
		points += rules.Duck
	}

	switch {
	case b.Runs >= 100 && rules.Century != 0:
		points += rules.Century
	case b.Runs >= 50:
		points += rules.HalfCentury
	}

	if b.BallsFaced > 0 {
		strikeRate := float64(b.Runs) / float64(b.BallsFaced) * 100
		for _, band := range rules.StrikeRate {
			if b.BallsFaced < band.MinBalls {
				continue
			}
			if band.matches(strikeRate) {
				points += band.Points
			}
		}
	}

	return points
}

func bowlingPoints(b performance.Bowling, rules BowlingRules) float64 {
	points := float64(b.Wickets) * rules.Wicket
	points += float64(b.MaidenOvers) * rules.Maiden

	switch rules.HaulMode {
	case HaulHighest:
		var best float64
		for _, haul := range rules.Hauls {
			if b.Wickets >= haul.Wickets {
				best = haul.Points
			}
		}
		points += best
	default:
		for _, haul := range rules.Hauls {
			if b.Wickets >= haul.Wickets {
				points += haul.Points
			}
		}
	}

	points += float64(b.BowledCount) * rules.DismissalBonus.Bowled
	points += float64(b.LBWCount) * rules.DismissalBonus.LBW
	points += float64(b.CaughtAndBowledCount) * rules.DismissalBonus.CaughtAndBowled

	if b.LegalBalls > 0 {
		economy := float64(b.RunsConceded) / float64(b.LegalBalls) * 6
		for _, band := range rules.Economy {
			if b.LegalBalls < band.MinOvers*6 {
				continue
			}
			if band.matches(economy) {
				points += band.Points
			}
		}
	}

	return points
}

func fieldingPoints(f performance.Fielding, rules FieldingRules) float64 {
	points := float64(f.Catches) * rules.Catch
	points += float64(f.Stumpings) * rules.Stumping

	if rules.RunOut != 0 {
		points += float64(f.RunOutThrower+f.RunOutCatcher+f.RunOutDirectHit) * rules.RunOut
		return points
	}

	directHit := rules.RunOutDirectHit
	if directHit == 0 {
		directHit = rules.RunOutThrower
	}
	points += float64(f.RunOutThrower) * rules.RunOutThrower
	points += float64(f.RunOutCatcher) * rules.RunOutCatcher
	points += float64(f.RunOutDirectHit) * directHit

	return points
}
