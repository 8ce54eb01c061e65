package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/outcome"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/participation"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/team"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func prizePolicyToDTO(policy contest.PrizePolicy) prizePolicyDTO {
	return prizePolicyDTO{
		Kind:    string(policy.Kind),
		Shares:  policy.Shares,
		Amounts: policy.Amounts,
	}
}

func templateToDTO(item contest.Template) templateDTO {
	return templateDTO{
		ID:          item.ID,
		Title:       item.Title,
		Type:        string(item.Type),
		Format:      string(item.Format),
		EntryFee:    item.EntryFee,
		Capacity:    item.Capacity,
		TotalPrize:  item.TotalPrize,
		PrizePolicy: prizePolicyToDTO(item.PrizePolicy),
		IsActive:    item.IsActive,
	}
}

func contestToDTO(item contest.Contest) contestDTO {
	spotsLeft := item.Capacity - item.FilledSlots
	if spotsLeft < 0 {
		spotsLeft = 0
	}
	return contestDTO{
		ID:            item.ID,
		TemplateID:    item.TemplateID,
		MatchID:       item.MatchID,
		Title:         item.Title,
		Ordinal:       item.Ordinal,
		EntryFee:      item.EntryFee,
		Capacity:      item.Capacity,
		FilledSlots:   item.FilledSlots,
		SpotsLeft:     spotsLeft,
		TotalPrize:    item.TotalPrize,
		PrizePolicy:   prizePolicyToDTO(item.PrizePolicy),
		BaseContestID: item.BaseContestID,
		Status:        string(item.Status),
		CreatedAt:     formatTime(item.CreatedAt),
	}
}

func teamToDTO(item team.Team) teamDTO {
	players := make([]teamPickDTO, 0, len(item.Players))
	for _, pick := range item.Players {
		players = append(players, teamPickDTO{PlayerID: pick.PlayerID, Role: string(pick.Role)})
	}
	return teamDTO{
		ID:            item.ID,
		MatchID:       item.MatchID,
		Name:          item.Name,
		Players:       players,
		CaptainID:     item.CaptainID,
		ViceCaptainID: item.ViceCaptainID,
		CreatedAt:     formatTime(item.CreatedAt),
	}
}

func participationToDTO(item participation.Participation) participationDTO {
	out := participationDTO{
		ID:         item.ID,
		ContestID:  item.ContestID,
		MatchID:    item.MatchID,
		TemplateID: item.TemplateID,
		TeamID:     item.TeamID,
		JoinedAt:   formatTime(item.JoinedAt),
		Points:     item.Points,
		Rank:       item.Rank,
		IsWinner:   item.IsWinner,
		PrizeWon:   item.PrizeWon,
	}
	if item.SettledAt != nil {
		out.SettledAt = formatTime(*item.SettledAt)
	}
	return out
}

func participationsToDTO(items []participation.Participation) []participationDTO {
	out := make([]participationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, participationToDTO(item))
	}
	return out
}

func scoreSummaryToDTO(item usecase.ScoreSummary) scoreSummaryDTO {
	return scoreSummaryDTO{
		MatchID:       item.MatchID,
		Format:        string(item.Format),
		Events:        item.Events,
		Players:       item.Players,
		Unresolved:    item.Unresolved,
		UnknownFormat: item.UnknownFormat,
		RulesVersion:  item.RulesVersion,
		ScoredAt:      formatTime(item.ScoredAt),
	}
}

func outcomeToDTO(item outcome.Outcome) outcomeDTO {
	return outcomeDTO{
		UserID:          item.UserID,
		ParticipationID: item.ParticipationID,
		ContestID:       item.ContestID,
		Rank:            item.Rank,
		Points:          item.Points,
		PrizeWon:        item.PrizeWon,
		Result:          string(item.Result),
		TeamID:          item.TeamSnapshot.TeamID,
	}
}

func settlementToDTO(item usecase.SettlementSummary) settlementSummaryDTO {
	contests := make([]contestSettlementDTO, 0, len(item.Contests))
	for _, c := range item.Contests {
		contests = append(contests, contestSettlementDTO{
			ContestID:    c.ContestID,
			Participants: c.Participants,
			Winners:      c.Winners,
			Status:       c.Status,
			Message:      c.Message,
		})
	}
	return settlementSummaryDTO{
		MatchID:   item.MatchID,
		Score:     scoreSummaryToDTO(item.Score),
		Contests:  contests,
		Succeeded: item.Succeeded,
		Failed:    item.Failed,
	}
}

func selectionStatsToDTO(item usecase.SelectionStats) selectionStatsDTO {
	players := make([]playerSelectionDTO, 0, len(item.Players))
	for _, row := range item.Players {
		players = append(players, playerSelectionDTO{
			PlayerID:       row.PlayerID,
			Selected:       row.Selected,
			SelectedPct:    row.SelectedPct,
			CaptainPct:     row.CaptainPct,
			ViceCaptainPct: row.ViceCaptainPct,
		})
	}
	return selectionStatsDTO{
		MatchID:    item.MatchID,
		TotalTeams: item.TotalTeams,
		Players:    players,
		ComputedAt: formatTime(item.ComputedAt),
	}
}
