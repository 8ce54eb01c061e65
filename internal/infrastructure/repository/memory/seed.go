package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

const (
	TemplateIDMegaContest = "tmpl-mega"
	TemplateIDHeadToHead  = "tmpl-h2h"
	TemplateIDSmallLeague = "tmpl-small-t20"

	MatchIDIndAus = "match-ind-aus-t20"
	MatchIDEngNz  = "match-eng-nz-odi"
)

func SeedTemplates() []contest.Template {
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []contest.Template{
		{
			ID:          TemplateIDMegaContest,
			Title:       "Mega Contest",
			Type:        contest.TypeGrand,
			Format:      contest.ScopeAll,
			EntryFee:    49,
			Capacity:    100,
			TotalPrize:  4000,
			PrizePolicy: contest.Top3Split(),
			IsActive:    true,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		},
		{
			ID:          TemplateIDHeadToHead,
			Title:       "Head to Head",
			Type:        contest.TypeH2H,
			Format:      contest.ScopeAll,
			EntryFee:    50,
			Capacity:    2,
			TotalPrize:  100,
			PrizePolicy: contest.WinnerTakesAll(),
			IsActive:    true,
			CreatedAt:   createdAt.Add(time.Minute),
			UpdatedAt:   createdAt.Add(time.Minute),
		},
		{
			ID:         TemplateIDSmallLeague,
			Title:      "Small League",
			Type:       contest.TypeSmall,
			Format:     contest.FormatScope(match.FormatT20),
			EntryFee:   25,
			Capacity:   10,
			TotalPrize: 225,
			PrizePolicy: contest.PrizePolicy{
				Kind:    contest.PrizeFixedAmountSplit,
				Amounts: []int64{125, 75, 25},
			},
			IsActive:  true,
			CreatedAt: createdAt.Add(2 * time.Minute),
			UpdatedAt: createdAt.Add(2 * time.Minute),
		},
	}
}

// SeedMatches returns fixtures starting relative to now so local runs always have upcoming games.
func SeedMatches(now time.Time) []match.Match {
	return []match.Match{
		{
			ID:       MatchIDIndAus,
			Name:     "India vs Australia, 1st T20I",
			Format:   match.FormatT20,
			TeamA:    "India",
			TeamB:    "Australia",
			StartsAt: now.Add(6 * time.Hour).Truncate(time.Minute),
		},
		{
			ID:       MatchIDEngNz,
			Name:     "England vs New Zealand, 2nd ODI",
			Format:   match.FormatODI,
			TeamA:    "England",
			TeamB:    "New Zealand",
			StartsAt: now.Add(30 * time.Hour).Truncate(time.Minute),
		},
	}
}
