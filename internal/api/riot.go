package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"gametrack/internal/config"
	"gametrack/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

var (
	ErrNotFound    = errors.New("riot api: not found")
	ErrRateLimited = errors.New("riot api: rate limited")
)

// StatusError is returned for any non-200 response that is not retried.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == fasthttp.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == fasthttp.StatusTooManyRequests
	}
	return false
}

// Budget gates outbound requests against a shared request allowance.
type Budget interface {
	Reserve(ctx context.Context) error
}

type noBudget struct{}

func (noBudget) Reserve(context.Context) error { return nil }

type RiotClient struct {
	apiKey      string
	baseURL     string
	client      *fasthttp.Client
	budget      Budget
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

// RateLimitInfo mirrors the last rate limit headers Riot sent back.
type RateLimitInfo struct {
	AppLimit    string        `json:"app_limit"`
	AppCount    string        `json:"app_count"`
	MethodCount string        `json:"method_count"`
	RetryAfter  time.Duration `json:"retry_after"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func NewRiotClient(cfg *config.Config, budget Budget, logger zerolog.Logger) *RiotClient {
	if budget == nil {
		budget = noBudget{}
	}
	return &RiotClient{
		apiKey:  cfg.RiotAPIKey,
		baseURL: strings.TrimRight(cfg.RiotBaseURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		budget: budget,
		logger: logger,
	}
}

func (c *RiotClient) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *RiotClient) updateRateLimit(resp *fasthttp.Response) RateLimitInfo {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if v := string(resp.Header.Peek("X-App-Rate-Limit")); v != "" {
		c.rateLimit.AppLimit = v
	}
	if v := string(resp.Header.Peek("X-App-Rate-Limit-Count")); v != "" {
		c.rateLimit.AppCount = v
	}
	if v := string(resp.Header.Peek("X-Method-Rate-Limit-Count")); v != "" {
		c.rateLimit.MethodCount = v
	}
	c.rateLimit.RetryAfter = retryAfter(resp)
	c.rateLimit.UpdatedAt = time.Now()
	return c.rateLimit
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, gameName, tagLine string) (*AccountDTO, error) {
	uri := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s", c.baseURL, url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[AccountDTO](ctx, c, uri)
}

func (c *RiotClient) GetMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	uri := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?count=%d", c.baseURL, url.PathEscape(puuid), count)
	ids, err := doRequest[[]string](ctx, c, uri)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) GetMatch(ctx context.Context, matchID string) (*MatchDTO, error) {
	uri := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.baseURL, url.PathEscape(matchID))
	body, err := c.get(ctx, uri)
	if err != nil {
		return nil, err
	}

	var match MatchDTO
	if err := json.Unmarshal(body, &match); err != nil {
		return nil, fmt.Errorf("failed to decode match %s: %w", matchID, err)
	}
	match.Raw = body
	return &match, nil
}

func doRequest[T any](ctx context.Context, client *RiotClient, uri string) (*T, error) {
	body, err := client.get(ctx, uri)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get retries 429 responses, waiting for Retry-After between attempts.
func (c *RiotClient) get(ctx context.Context, uri string) ([]byte, error) {
	for attempt := 1; ; attempt++ {
		if err := c.budget.Reserve(ctx); err != nil {
			return nil, fmt.Errorf("failed to reserve request budget: %w", err)
		}

		status, body, wait, err := c.once(ctx, uri)
		if err != nil {
			return nil, err
		}
		if status == fasthttp.StatusOK {
			return body, nil
		}

		if status == fasthttp.StatusTooManyRequests && attempt < constants.RiotMaxAttempts {
			c.logger.Warn().
				Str("uri", uri).
				Int("attempt", attempt).
				Dur("retry_after", wait).
				Msg("rate limited by riot api, retrying")

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
			continue
		}

		return nil, &StatusError{StatusCode: status, Body: string(body)}
	}
}

func (c *RiotClient) once(ctx context.Context, uri string) (int, []byte, time.Duration, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", c.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, nil, 0, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return 0, nil, 0, err
		}
	}

	info := c.updateRateLimit(resp)
	c.logger.Debug().
		Str("uri", uri).
		Int("status", resp.StatusCode()).
		Str("app_count", info.AppCount).
		Str("method_count", info.MethodCount).
		Msg("riot api request")

	// resp is released on return
	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, retryAfter(resp), nil
}

func retryAfter(resp *fasthttp.Response) time.Duration {
	v := string(resp.Header.Peek("Retry-After"))
	if v == "" {
		return constants.RiotDefaultRetryAfter
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return constants.RiotDefaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}

type AccountDTO struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type MatchDTO struct {
	Metadata MatchMetadataDTO `json:"metadata"`
	Info     MatchInfoDTO     `json:"info"`

	// Raw is the undecoded response body, kept for storage.
	Raw []byte `json:"-"`
}

type MatchMetadataDTO struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfoDTO struct {
	GameCreation int64            `json:"gameCreation"`
	GameDuration int              `json:"gameDuration"`
	GameMode     string           `json:"gameMode"`
	GameType     string           `json:"gameType"`
	Participants []ParticipantDTO `json:"participants"`
}

type ParticipantDTO struct {
	Puuid          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`

	Kills   int  `json:"kills"`
	Deaths  int  `json:"deaths"`
	Assists int  `json:"assists"`
	Win     bool `json:"win"`

	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName"`
	ChampLevel   int    `json:"champLevel"`

	DoubleKills                 int `json:"doubleKills"`
	TripleKills                 int `json:"tripleKills"`
	QuadraKills                 int `json:"quadraKills"`
	PentaKills                  int `json:"pentaKills"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	GoldEarned                  int `json:"goldEarned"`
	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	VisionScore                 int `json:"visionScore"`
	WardsPlaced                 int `json:"wardsPlaced"`
	WardsKilled                 int `json:"wardsKilled"`

	Challenges *ChallengesDTO `json:"challenges"`
}

type ChallengesDTO struct {
	KillParticipation *float64 `json:"killParticipation"`
	DamagePerMinute   *float64 `json:"damagePerMinute"`
	GoldPerMinute     *float64 `json:"goldPerMinute"`
}

// Participant finds the given player's line in the match.
func (m *MatchDTO) Participant(puuid string) (ParticipantDTO, bool) {
	for _, p := range m.Info.Participants {
		if p.Puuid == puuid {
			return p, true
		}
	}
	return ParticipantDTO{}, false
}
