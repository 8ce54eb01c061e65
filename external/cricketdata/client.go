// Package cricketdata adapts the cricapi.com v1 feed to the match provider and event source ports.
package cricketdata

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/fantasy-cricket/internal/domain/match"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

const (
	defaultBaseURL = "https://api.cricapi.com/v1"
	maxBodyBytes   = 6 << 20
)

var (
	errTransient   = crerr.New("cricketdata transient failure")
	errNotFound    = crerr.New("cricketdata resource not found")
	apiKeyParamRgx = regexp.MustCompile(`apikey=[^&\s"']+`)
)

type ClientConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerMinute int
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
}

type Client struct {
	http       *fasthttp.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	}

	return &Client{
		http: &fasthttp.Client{
			Name:                "fantasy-cricket",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxBodyBytes,
		},
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
		breaker:    resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

func (c *Client) GetMatch(ctx context.Context, matchID string) (match.Match, bool, error) {
	var payload envelope[matchItem]
	if err := c.doJSON(ctx, "/match_info", url.Values{"id": {matchID}}, &payload); err != nil {
		if crerr.Is(err, errNotFound) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("fetch match_info id=%s: %w", matchID, err)
	}
	if strings.TrimSpace(payload.Data.ID) == "" {
		return match.Match{}, false, nil
	}

	item, err := mapMatch(payload.Data)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("map match id=%s: %w", matchID, err)
	}
	return item, true, nil
}

func (c *Client) GetMatchState(ctx context.Context, matchID string) (match.State, error) {
	item, exists, err := c.GetMatch(ctx, matchID)
	if err != nil {
		return match.State{}, err
	}
	if !exists {
		return match.State{}, fmt.Errorf("match %s not found upstream", matchID)
	}
	return item.State(), nil
}

// ListUpcomingMatches returns matches the feed has not marked ended. Unknown formats are skipped.
func (c *Client) ListUpcomingMatches(ctx context.Context) ([]match.Match, error) {
	var payload envelope[[]matchItem]
	if err := c.doJSON(ctx, "/matches", url.Values{"offset": {"0"}}, &payload); err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}

	out := make([]match.Match, 0, len(payload.Data))
	for _, raw := range payload.Data {
		if raw.MatchEnded || strings.TrimSpace(raw.ID) == "" {
			continue
		}
		item, err := mapMatch(raw)
		if err != nil {
			c.logger.DebugContext(ctx, "skip upstream match", "match_id", raw.ID, "match_type", raw.MatchType, "error", err)
			continue
		}
		out = append(out, item)
	}
	slices.SortStableFunc(out, func(a, b match.Match) int {
		return a.StartsAt.Compare(b.StartsAt)
	})
	return out, nil
}

func (c *Client) GetEvents(ctx context.Context, matchID string) ([]match.BallEvent, error) {
	var payload envelope[ballByBall]
	if err := c.doJSON(ctx, "/match_bbb", url.Values{"id": {matchID}}, &payload); err != nil {
		return nil, fmt.Errorf("fetch match_bbb id=%s: %w", matchID, err)
	}

	out := make([]match.BallEvent, 0, len(payload.Data.BBB))
	for _, ball := range payload.Data.BBB {
		out = append(out, mapBall(ball))
	}
	return out, nil
}

func (c *Client) GetSquad(ctx context.Context, matchID string) ([]match.SquadPlayer, error) {
	var payload envelope[[]squadTeam]
	if err := c.doJSON(ctx, "/match_squad", url.Values{"id": {matchID}}, &payload); err != nil {
		return nil, fmt.Errorf("fetch match_squad id=%s: %w", matchID, err)
	}

	out := make([]match.SquadPlayer, 0, 44)
	for _, team := range payload.Data {
		for _, player := range team.Players {
			if strings.TrimSpace(player.ID) == "" {
				continue
			}
			out = append(out, match.SquadPlayer{
				PlayerID: player.ID,
				Name:     player.Name,
				TeamName: team.TeamName,
				Role:     player.Role,
				Playing:  player.Playing,
			})
		}
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.buildURL(path, query)
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isTransient)
		return raw, execErr
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "cricketdata circuit breaker rejected request", "path", path, "state", c.breaker.State())
			return fmt.Errorf("%w: cricket data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		if isTransient(err) {
			return fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err.Error())
		}
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}

	var status statusOnly
	if err := sonic.Unmarshal(raw, &status); err != nil {
		return crerr.Wrap(err, "decode provider envelope")
	}
	if !strings.EqualFold(status.Status, "success") {
		if isNotFoundReason(status.Reason) {
			return crerr.WithStack(errNotFound)
		}
		return crerr.Newf("provider status=%q reason=%q", status.Status, status.Reason)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode provider payload")
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, crerr.Wrap(err, "rate limit wait")
		}

		raw, status, err := c.fetch(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = crerr.Mark(crerr.Newf("send request: %s", sanitize(err.Error())), errTransient)
		case status >= 200 && status < 300:
			return raw, nil
		case isRetryableStatus(status):
			lastErr = crerr.Mark(crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw)), errTransient)
		default:
			return nil, crerr.Newf("provider status=%d body=%s", status, abbreviateBody(raw))
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "cricketdata request failed", "url", redactURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, int, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, 0, err
	}

	return slices.Clone(resp.Body()), resp.StatusCode(), nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	params := url.Values{}
	for key, values := range query {
		params[key] = slices.Clone(values)
	}
	params.Set("apikey", c.apiKey)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)
	_ = buf.WriteByte('?')
	_, _ = buf.WriteString(params.Encode())
	return buf.String()
}

func mapMatch(raw matchItem) (match.Match, error) {
	format, err := match.ParseFormat(raw.MatchType)
	if err != nil {
		return match.Match{}, err
	}

	item := match.Match{
		ID:       raw.ID,
		Name:     raw.Name,
		Format:   format,
		StartsAt: parseGMT(raw.DateTimeGMT),
		Started:  raw.MatchStarted,
		Ended:    raw.MatchEnded,
	}
	if len(raw.Teams) > 0 {
		item.TeamA = raw.Teams[0]
	}
	if len(raw.Teams) > 1 {
		item.TeamB = raw.Teams[1]
	}
	return item, nil
}

func mapBall(raw ballItem) match.BallEvent {
	event := match.BallEvent{
		Innings:    raw.Inning + 1,
		Over:       raw.Over,
		Ball:       raw.Ball,
		BatterID:   raw.Batsman.ID,
		BowlerID:   raw.Bowler.ID,
		RunsOffBat: raw.Runs,
		Extras:     raw.Extras,
		Penalty:    match.ParsePenalty(raw.Penalty),
	}

	kind, ok := match.ParseDismissalKind(raw.Dismissal)
	if !ok {
		return event
	}
	dismissal := &match.Dismissal{Kind: kind, BatterID: raw.Batsman.ID, DirectHit: raw.DirectHit}
	if raw.Catcher != nil {
		dismissal.FielderID = raw.Catcher.ID
		dismissal.FielderName = raw.Catcher.Name
		dismissal.CatcherID = raw.Catcher.ID
	}
	if raw.Thrower != nil {
		dismissal.ThrowerID = raw.Thrower.ID
		if dismissal.FielderID == "" && dismissal.FielderName == "" {
			dismissal.FielderID = raw.Thrower.ID
			dismissal.FielderName = raw.Thrower.Name
		}
	}
	event.Dismissal = dismissal
	return event
}

func parseGMT(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02 15:04:05"} {
		if parsed, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func isNotFoundReason(reason string) bool {
	reason = strings.ToLower(reason)
	return strings.Contains(reason, "not found") || strings.Contains(reason, "no match")
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}

func sanitize(value string) string {
	return apiKeyParamRgx.ReplaceAllString(value, "apikey=REDACTED")
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitize(rawURL)
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
