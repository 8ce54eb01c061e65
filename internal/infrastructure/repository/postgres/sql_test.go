package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches pq error code", func(t *testing.T) {
		err := fmt.Errorf("insert participation: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("matches stringified driver error", func(t *testing.T) {
		err := fakeErr(`pq: duplicate key value violates unique constraint "uq_participations_user_contest" (23505)`)
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for stringified unique violation")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isUniqueViolation(fakeErr("pq: relation contests does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get contest: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("boom")) {
		t.Fatalf("unexpected not found")
	}
}

func TestNullableString(t *testing.T) {
	if nullableString("  ") != nil {
		t.Fatalf("expected nil for blank")
	}
	if got := derefString(nullableString("c-1")); got != "c-1" {
		t.Fatalf("unexpected value: %q", got)
	}
}

func TestPrizePolicyJSONRoundTrip(t *testing.T) {
	raw, err := encodeJSON(contest.Top3Split())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeJSON[contest.PrizePolicy](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Kind != contest.PrizePercentageSplit || len(got.Shares) != 3 || got.Shares[0] != "0.5" {
		t.Fatalf("unexpected policy: %+v", got)
	}

	empty, err := decodeJSON[contest.PrizePolicy]("null")
	if err != nil || empty.Kind != "" {
		t.Fatalf("expected zero policy for null, got %+v err=%v", empty, err)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
