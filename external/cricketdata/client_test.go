package cricketdata

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, breaker resilience.CircuitBreakerConfig, retries int) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(ClientConfig{
		BaseURL:        server.URL,
		APIKey:         "secret-key",
		Timeout:        2 * time.Second,
		MaxRetries:     retries,
		CircuitBreaker: breaker,
	})
	client.backoff = func(int) time.Duration { return 0 }
	return client
}

func TestClient_GetMatch(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/match_info" || r.URL.Query().Get("id") != "m-1" || r.URL.Query().Get("apikey") != "secret-key" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"status":"success","data":{"id":"m-1","name":"India vs Australia, 1st T20I","matchType":"t20","dateTimeGMT":"2026-11-02T13:30:00","teams":["India","Australia"],"matchStarted":true,"matchEnded":false}}`))
	}, resilience.CircuitBreakerConfig{}, 0)

	got, exists, err := client.GetMatch(t.Context(), "m-1")
	if err != nil || !exists {
		t.Fatalf("get match: exists=%v err=%v", exists, err)
	}
	if got.Format != match.FormatT20 || got.TeamA != "India" || got.TeamB != "Australia" || !got.Started || got.Ended {
		t.Fatalf("unexpected match: %+v", got)
	}
	if want := time.Date(2026, 11, 2, 13, 30, 0, 0, time.UTC); !got.StartsAt.Equal(want) {
		t.Fatalf("unexpected start: %s", got.StartsAt)
	}
}

func TestClient_GetMatch_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failure","reason":"Match not found"}`))
	}, resilience.CircuitBreakerConfig{}, 0)

	_, exists, err := client.GetMatch(t.Context(), "m-404")
	if err != nil || exists {
		t.Fatalf("expected clean miss, got exists=%v err=%v", exists, err)
	}
}

func TestClient_GetEvents(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","data":{"id":"m-1","bbb":[
			{"n":1,"inning":0,"over":0,"ball":1,"batsman":{"id":"b1","name":"Opener"},"bowler":{"id":"w1","name":"Quick"},"runs":4,"extras":0},
			{"n":2,"inning":0,"over":0,"ball":2,"batsman":{"id":"b1","name":"Opener"},"bowler":{"id":"w1","name":"Quick"},"runs":0,"extras":1,"penalty":"wide"},
			{"n":3,"inning":0,"over":0,"ball":2,"batsman":{"id":"b1","name":"Opener"},"bowler":{"id":"w1","name":"Quick"},"runs":0,"extras":0,"dismissal":"catch","catcher":{"id":"","name":"Safe Hands"}}
		]}}`))
	}, resilience.CircuitBreakerConfig{}, 0)

	events, err := client.GetEvents(t.Context(), "m-1")
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("unexpected event count: %d", len(events))
	}
	if events[0].Innings != 1 || events[0].RunsOffBat != 4 || !events[0].IsLegal() {
		t.Fatalf("unexpected first ball: %+v", events[0])
	}
	if events[1].Penalty != match.PenaltyWide || events[1].IsLegal() {
		t.Fatalf("wide not mapped: %+v", events[1])
	}
	wicket := events[2].Dismissal
	if wicket == nil || wicket.Kind != match.DismissalCaught || wicket.FielderName != "Safe Hands" || wicket.BatterID != "b1" {
		t.Fatalf("unexpected dismissal: %+v", wicket)
	}
}

func TestClient_GetSquadAndUpcoming(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/match_squad":
			_, _ = w.Write([]byte(`{"status":"success","data":[
				{"teamName":"India","players":[{"id":"p1","name":"Keeper","role":"WK-Batsman","playing":true},{"id":"","name":"Ghost"}]},
				{"teamName":"Australia","players":[{"id":"p2","name":"Quick","role":"Bowler"}]}
			]}`))
		case "/matches":
			_, _ = w.Write([]byte(`{"status":"success","data":[
				{"id":"late","matchType":"odi","dateTimeGMT":"2026-11-05T09:00:00"},
				{"id":"early","matchType":"t20","dateTimeGMT":"2026-11-03T09:00:00"},
				{"id":"done","matchType":"t20","matchEnded":true},
				{"id":"odd","matchType":"hundred"}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}, resilience.CircuitBreakerConfig{}, 0)

	squad, err := client.GetSquad(t.Context(), "m-1")
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	if len(squad) != 2 || squad[0].TeamName != "India" || squad[1].PlayerID != "p2" {
		t.Fatalf("unexpected squad: %+v", squad)
	}
	if !squad[0].Playing || squad[1].Playing {
		t.Fatalf("lineup flag not carried: %+v", squad)
	}

	upcoming, err := client.ListUpcomingMatches(t.Context())
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != "early" || upcoming[1].ID != "late" {
		t.Fatalf("unexpected upcoming matches: %+v", upcoming)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"success","data":[]}`))
	}, resilience.CircuitBreakerConfig{}, 2)

	if _, err := client.GetSquad(t.Context(), "m-1"); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", hits.Load())
	}
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1}, 0)

	for range 2 {
		_, err := client.GetEvents(t.Context(), "m-1")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("open circuit should short-circuit requests, got %d hits", hits.Load())
	}
}

func TestRedactURL(t *testing.T) {
	t.Parallel()

	got := redactURL("https://api.cricapi.com/v1/match_bbb?apikey=secret&id=1")
	if got != "https://api.cricapi.com/v1/match_bbb?apikey=REDACTED&id=1" {
		t.Fatalf("unexpected redaction: %s", got)
	}
}
