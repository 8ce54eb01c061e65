package contest

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
)

type Type string

const (
	TypeGrand  Type = "GRAND"
	TypeMedium Type = "MEDIUM"
	TypeSmall  Type = "SMALL"
	TypeH2H    Type = "H2H"
)

var AllTypes = map[Type]struct{}{
	TypeGrand:  {},
	TypeMedium: {},
	TypeSmall:  {},
	TypeH2H:    {},
}

// FormatScope limits a template to one match format, or to all of them.
type FormatScope string

const ScopeAll FormatScope = "ALL"

func ParseFormatScope(raw string) (FormatScope, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" || value == string(ScopeAll) {
		return ScopeAll, nil
	}
	format, err := match.ParseFormat(value)
	if err != nil {
		return "", err
	}
	return FormatScope(format), nil
}

type Status string

const (
	StatusUpcoming   Status = "upcoming"
	StatusLive       Status = "live"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Template is the immutable shape contest instances are stamped from.
type Template struct {
	ID          string
	Title       string
	Type        Type
	Format      FormatScope
	EntryFee    int64
	Capacity    int
	TotalPrize  int64
	PrizePolicy PrizePolicy
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t Template) AppliesTo(format match.Format) bool {
	return t.Format == ScopeAll || t.Format == "" || t.Format == FormatScope(format)
}

func (t Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("template id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("template title is required")
	}
	if _, ok := AllTypes[t.Type]; !ok {
		return fmt.Errorf("unknown contest type %q", t.Type)
	}
	if t.Capacity < 2 {
		return fmt.Errorf("template capacity must be at least 2")
	}
	if t.EntryFee < 0 {
		return fmt.Errorf("entry fee must not be negative")
	}
	if t.TotalPrize < 0 {
		return fmt.Errorf("total prize must not be negative")
	}
	if err := t.PrizePolicy.Validate(t.TotalPrize); err != nil {
		return fmt.Errorf("prize policy: %w", err)
	}

	return nil
}

// Contest is one fillable instance of a template for a match.
type Contest struct {
	ID            string
	TemplateID    string
	MatchID       string
	Title         string
	Ordinal       int
	EntryFee      int64
	Capacity      int
	TotalPrize    int64
	PrizePolicy   PrizePolicy
	FilledSlots   int
	Participants  []string
	BaseContestID string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c Contest) IsFull() bool {
	return c.FilledSlots >= c.Capacity
}

func (c Contest) HasParticipant(userID string) bool {
	for _, participant := range c.Participants {
		if participant == userID {
			return true
		}
	}
	return false
}

// RootID is the instance every clone in the family points at.
func (c Contest) RootID() string {
	if c.BaseContestID != "" {
		return c.BaseContestID
	}
	return c.ID
}

func (c Contest) OpenForEntry() bool {
	return c.Status == StatusUpcoming || c.Status == ""
}

// Admit returns a copy of the contest with the user seated, or an outcome explaining why not.
func (c Contest) Admit(userID string) (Contest, AdmitOutcome) {
	if c.HasParticipant(userID) {
		return c, AdmitAlreadyJoined
	}
	if c.IsFull() {
		return c, AdmitFull
	}

	out := c
	out.Participants = append(append(make([]string, 0, len(c.Participants)+1), c.Participants...), userID)
	out.FilledSlots = c.FilledSlots + 1
	return out, AdmitOK
}

// Release returns a copy with the user removed. It reports false when the user was not seated.
func (c Contest) Release(userID string) (Contest, bool) {
	idx := -1
	for i, participant := range c.Participants {
		if participant == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c, false
	}

	out := c
	out.Participants = make([]string, 0, len(c.Participants)-1)
	out.Participants = append(out.Participants, c.Participants[:idx]...)
	out.Participants = append(out.Participants, c.Participants[idx+1:]...)
	out.FilledSlots = len(out.Participants)
	return out, true
}

type AdmitOutcome int

const (
	AdmitOK AdmitOutcome = iota
	AdmitFull
	AdmitAlreadyJoined
	AdmitNotFound
)

func (o AdmitOutcome) String() string {
	switch o {
	case AdmitOK:
		return "admitted"
	case AdmitFull:
		return "full"
	case AdmitAlreadyJoined:
		return "already_joined"
	case AdmitNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// InstanceTitle renders "<template title> #<ordinal>".
func InstanceTitle(templateTitle string, ordinal int) string {
	return fmt.Sprintf("%s #%d", strings.TrimSpace(templateTitle), ordinal)
}
