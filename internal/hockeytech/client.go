// Package hockeytech provides the HTTP client for the HockeyTech statview
// and modulekit feeds that back the PWHL site.
//
// Every view is served from a single index.php endpoint selected by query
// parameters, authenticated by a key + client code pair. Responses are JSON,
// sometimes wrapped in JSONP parentheses. The client rate-limits, retries
// transient failures with exponential backoff, and returns raw payload bytes;
// it performs no semantic interpretation of the payloads.
package hockeytech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/coldrink/pwhl-data/internal/config"
)

// Client is the HTTP client for the HockeyTech feed.
type Client struct {
	httpClient *http.Client
	baseURL    string
	key        string
	clientCode string
	limiter    *rate.Limiter
	maxRetries int
	logger     *slog.Logger
}

// NewClient creates a feed client from config with rate limiting.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.FeedTimeout},
		baseURL:    cfg.FeedBaseURL,
		key:        cfg.FeedKey,
		clientCode: cfg.FeedClientCode,
		limiter:    rate.NewLimiter(rate.Limit(cfg.FeedRatePerSec), 1),
		maxRetries: cfg.FeedMaxRetries,
		logger:     logger,
	}
}

// get performs a rate-limited GET against index.php with retry on transient
// failures. The returned bytes are the JSON payload with any JSONP wrapping
// removed.
func (c *Client) get(ctx context.Context, op string, params url.Values) ([]byte, error) {
	params.Set("key", c.key)
	params.Set("client_code", c.clientCode)

	u := c.baseURL + "index.php?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			c.logger.Warn("Retrying feed request", "op", op, "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, &FetchError{Op: op, Kind: Transient, Err: ctx.Err()}
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Op: op, Kind: Transient, Err: fmt.Errorf("rate limit wait: %w", err)}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, &FetchError{Op: op, Kind: Transient, Err: fmt.Errorf("create request: %w", err)}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return stripJSONP(body), nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, &FetchError{Op: op, Kind: NotFound, Err: fmt.Errorf("feed returned 404")}
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("feed returned %d: %s", resp.StatusCode, truncate(body, 200))
			continue
		default:
			return nil, &FetchError{Op: op, Kind: Transient,
				Err: fmt.Errorf("feed returned %d: %s", resp.StatusCode, truncate(body, 200))}
		}
	}

	return nil, &FetchError{Op: op, Kind: Transient,
		Err: fmt.Errorf("all %d attempts failed: %w", c.maxRetries+1, lastErr)}
}

// getRequired is get for specific-id views, where an empty envelope means
// the id does not exist upstream.
func (c *Client) getRequired(ctx context.Context, op string, params url.Values) ([]byte, error) {
	body, err := c.get(ctx, op, params)
	if err != nil {
		return nil, err
	}
	if emptyEnvelope(body) {
		return nil, &FetchError{Op: op, Kind: NotFound, Err: fmt.Errorf("empty feed envelope")}
	}
	return body, nil
}

// stripJSONP removes the parenthesis wrapping the feed applies when no
// callback name is given.
func stripJSONP(body []byte) []byte {
	b := bytes.TrimSpace(body)
	if len(b) >= 2 && b[0] == '(' {
		b = bytes.TrimSuffix(b, []byte(";"))
		if b[len(b)-1] == ')' {
			return b[1 : len(b)-1]
		}
	}
	return b
}

// emptyEnvelope reports whether the payload carries no data at all.
func emptyEnvelope(body []byte) bool {
	switch string(bytes.TrimSpace(body)) {
	case "", "null", "[]", "{}", `""`:
		return true
	}
	return false
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// --------------------------------------------------------------------------
// Fetch operations
// --------------------------------------------------------------------------

// FetchBasicInfo fetches the bootstrap payload: leagues, conferences,
// divisions and current-season context.
func (c *Client) FetchBasicInfo(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "basic_info", basicInfoParams())
}

// FetchSeasons fetches the list of all seasons.
func (c *Client) FetchSeasons(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "seasons", seasonsParams())
}

// FetchTeams fetches the teams participating in a season.
func (c *Client) FetchTeams(ctx context.Context, seasonID int) ([]byte, error) {
	return c.getRequired(ctx, "teams", teamsBySeasonParams(seasonID))
}

// FetchRoster fetches a team's roster for a season.
func (c *Client) FetchRoster(ctx context.Context, seasonID, teamID int) ([]byte, error) {
	return c.getRequired(ctx, "roster", rosterParams(seasonID, teamID))
}

// FetchPlayerInfo fetches one player's profile.
func (c *Client) FetchPlayerInfo(ctx context.Context, playerID int) ([]byte, error) {
	return c.getRequired(ctx, "player_info", playerInfoParams(playerID))
}

// FetchSchedule fetches the full schedule of a season.
func (c *Client) FetchSchedule(ctx context.Context, seasonID int) ([]byte, error) {
	return c.getRequired(ctx, "schedule", scheduleParams(seasonID))
}

// FetchGameSummary fetches the box-score summary of one game.
func (c *Client) FetchGameSummary(ctx context.Context, gameID int) ([]byte, error) {
	return c.getRequired(ctx, "game_summary", gameSummaryParams(gameID))
}

// FetchSkaterStats fetches season totals for every skater in a season.
func (c *Client) FetchSkaterStats(ctx context.Context, seasonID int) ([]byte, error) {
	return c.getRequired(ctx, "skater_stats", skaterStatsParams(seasonID))
}

// FetchGoalieStats fetches season totals for every goalie in a season.
func (c *Client) FetchGoalieStats(ctx context.Context, seasonID int) ([]byte, error) {
	return c.getRequired(ctx, "goalie_stats", goalieStatsParams(seasonID))
}

// FetchTeamStats fetches the standings lines for a season.
func (c *Client) FetchTeamStats(ctx context.Context, seasonID int) ([]byte, error) {
	return c.getRequired(ctx, "team_stats", teamStatsParams(seasonID))
}

// FetchPlayoffs fetches the playoff bracket of a season.
func (c *Client) FetchPlayoffs(ctx context.Context, seasonID int) ([]byte, error) {
	return c.getRequired(ctx, "playoffs", playoffsParams(seasonID))
}

// FetchPlayByPlay fetches the event stream of one game.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID int) ([]byte, error) {
	return c.getRequired(ctx, "play_by_play", playByPlayParams(gameID))
}
