package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"gametrack/internal/api"
	"gametrack/internal/dashboard"
	"gametrack/internal/domain"

	"github.com/rs/zerolog"
)

type stubFetcher struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error
	count int
}

func (f *stubFetcher) FetchPlayerStats(ctx context.Context, gameName, tagLine string, limit int) (*domain.PlayerMatchHistory, error) {
	f.mu.Lock()
	f.calls = append(f.calls, gameName+"#"+tagLine)
	err := f.errs[gameName]
	count := f.count
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	matches := []domain.PlayerMatchStats{
		{MatchID: "NA1_2", ChampionName: "Ahri", Kills: 8, Deaths: 2, Assists: 6, Win: true, KDA: 7},
		{MatchID: "NA1_1", ChampionName: "Lux", Kills: 1, Deaths: 5, Assists: 3, Win: false, KDA: 0.8},
	}
	if count > 0 && count < len(matches) {
		matches = matches[:count]
	}
	return &domain.PlayerMatchHistory{
		Player:       domain.Player{Puuid: "p-" + gameName, GameName: gameName, TagLine: tagLine},
		Matches:      matches,
		TotalMatches: len(matches),
		Summary:      domain.Summary{TotalMatches: 2, Wins: 1, Losses: 1, WinRate: 50},
	}, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newTestSite(t *testing.T, fetcher dashboard.Fetcher) (string, *Sessions) {
	t.Helper()
	sessions := NewSessions(fetcher, time.Hour, zerolog.Nop())
	ts := httptest.NewServer(NewHandler(sessions, nil, zerolog.Nop()).Routes())
	t.Cleanup(ts.Close)
	return ts.URL, sessions
}

func newBrowser(t *testing.T, base string) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &browser{t: t, base: base, client: &http.Client{Jar: jar}}
}

func (b *browser) post(path string, form url.Values) string {
	b.t.Helper()
	resp, err := b.client.PostForm(b.base+path, form)
	if err != nil {
		b.t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		b.t.Fatalf("POST %s ended with %d", path, resp.StatusCode)
	}
	return string(body)
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	if err != nil {
		b.t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func (b *browser) dashboard() dashboardView {
	b.t.Helper()
	_, body := b.get("/api/dashboard")
	var v dashboardView
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		b.t.Fatalf("decode dashboard: %v\n%s", err, body)
	}
	return v
}

// settled waits for the session to leave the loading state.
func (b *browser) settled() dashboardView {
	b.t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		v := b.dashboard()
		if v.Status != dashboard.StatusLoading {
			return v
		}
		if time.Now().After(deadline) {
			b.t.Fatal("search never finished")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func search(name, tag string) url.Values {
	return url.Values{"game_name": {name}, "tag_line": {tag}}
}

func TestSearchFlow(t *testing.T) {
	fetcher := &stubFetcher{}
	base, _ := newTestSite(t, fetcher)
	b := newBrowser(t, base)

	b.post("/search", search(" Ada ", "#NA1"))
	v := b.settled()

	if v.Status != dashboard.StatusReady || v.Player == nil || v.Player.RiotID() != "Ada#NA1" {
		t.Fatalf("unexpected dashboard %+v", v)
	}
	if len(v.Cards) != 10 || v.Cards[1].Tone != dashboard.ToneGreen {
		t.Errorf("unexpected cards %+v", v.Cards)
	}
	if v.Trend == nil || len(v.Trend.Points) != 2 || v.Trend.Points[0].MatchID != "NA1_1" {
		t.Errorf("trend should be oldest first, got %+v", v.Trend)
	}
	if !v.ComparisonVisible {
		t.Error("default selection shows the comparison")
	}

	_, page := b.get("/")
	for _, want := range []string{"Ada", "Win Rate", "<svg", "Ahri", "Defeat"} {
		if !strings.Contains(page, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestIncompleteSearchIsIgnored(t *testing.T) {
	fetcher := &stubFetcher{}
	base, _ := newTestSite(t, fetcher)
	b := newBrowser(t, base)

	b.post("/search", search("Ada", "  "))

	if v := b.dashboard(); v.Status != dashboard.StatusIdle {
		t.Errorf("expected idle, got %s", v.Status)
	}
	if fetcher.callCount() != 0 {
		t.Errorf("fetcher should not be called, got %d", fetcher.callCount())
	}
}

func TestBackendErrorShownVerbatim(t *testing.T) {
	fetcher := &stubFetcher{errs: map[string]error{
		"Nobody": &domain.APIError{Code: "not_found", Message: "Player not found or Riot API error"},
	}}
	base, _ := newTestSite(t, fetcher)
	b := newBrowser(t, base)

	b.post("/search", search("Nobody", "NA1"))
	v := b.settled()
	if v.Status != dashboard.StatusError || v.Error != "Player not found or Riot API error" {
		t.Fatalf("unexpected dashboard %+v", v)
	}

	_, page := b.get("/")
	if !strings.Contains(page, "Player not found or Riot API error") {
		t.Error("page should show the backend message")
	}

	b.post("/search", search("Ada", "NA1"))
	if v := b.settled(); v.Error != "" || v.Status != dashboard.StatusReady {
		t.Errorf("previous error leaked into %+v", v)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	base, sessions := newTestSite(t, &stubFetcher{})
	alice := newBrowser(t, base)
	bob := newBrowser(t, base)

	alice.post("/search", search("Ada", "NA1"))
	alice.post("/stats", url.Values{"stat": {dashboard.StatKDA}})
	alice.settled()
	bob.get("/")

	v := bob.dashboard()
	if v.Status != dashboard.StatusIdle || v.Player != nil {
		t.Errorf("bob should not see alice's search: %+v", v)
	}
	if len(v.Selection) != len(dashboard.DefaultSelection()) {
		t.Errorf("bob should keep the default selection, got %v", v.Selection)
	}
	if sessions.Len() != 2 {
		t.Errorf("expected 2 sessions, got %d", sessions.Len())
	}
}

func TestUpdateStatsDropsUnknownKeys(t *testing.T) {
	base, _ := newTestSite(t, &stubFetcher{})
	b := newBrowser(t, base)

	b.post("/stats", url.Values{"stat": {dashboard.StatGoldEarned, "not_a_stat", dashboard.StatWin}})

	v := b.dashboard()
	if len(v.Selection) != 2 || v.Selection[0] != dashboard.StatWin || v.Selection[1] != dashboard.StatGoldEarned {
		t.Errorf("unexpected selection %v", v.Selection)
	}
}

func TestWinOnlySelectionHidesCharts(t *testing.T) {
	base, _ := newTestSite(t, &stubFetcher{})
	b := newBrowser(t, base)

	b.post("/search", search("Ada", "NA1"))
	b.settled()
	b.post("/stats", url.Values{"stat": {dashboard.StatWin}})

	v := b.dashboard()
	if v.TrendPlaceholder != dashboard.TrendPlaceholder || v.ComparisonVisible {
		t.Errorf("unexpected view %+v", v)
	}

	for _, path := range []string{"/charts/trend.svg", "/charts/comparison.svg"} {
		if resp, _ := b.get(path); resp.StatusCode != http.StatusNoContent {
			t.Errorf("%s: expected 204, got %d", path, resp.StatusCode)
		}
	}
}

func TestChartEndpoints(t *testing.T) {
	base, _ := newTestSite(t, &stubFetcher{})
	b := newBrowser(t, base)

	if resp, _ := b.get("/charts/trend.svg"); resp.StatusCode != http.StatusNoContent {
		t.Errorf("no data yet: expected 204, got %d", resp.StatusCode)
	}

	b.post("/search", search("Ada", "NA1"))
	b.settled()

	for _, path := range []string{"/charts/trend.svg", "/charts/comparison.svg"} {
		resp, body := b.get(path)
		if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/svg+xml" {
			t.Errorf("%s: got %d %s", path, resp.StatusCode, resp.Header.Get("Content-Type"))
		}
		if !strings.HasPrefix(body, "<svg") {
			t.Errorf("%s: not an svg document", path)
		}
	}
}

func TestChartsForSingleMatch(t *testing.T) {
	base, _ := newTestSite(t, &stubFetcher{count: 1})
	b := newBrowser(t, base)

	b.post("/search", search("Ada", "NA1"))
	if v := b.settled(); v.Status != dashboard.StatusReady || len(v.Trend.Points) != 1 {
		t.Fatalf("unexpected dashboard %+v", v)
	}

	for _, path := range []string{"/charts/trend.svg", "/charts/comparison.svg"} {
		resp, body := b.get(path)
		if resp.StatusCode != http.StatusOK || !strings.HasPrefix(body, "<svg") {
			t.Errorf("%s: got %d %.40q", path, resp.StatusCode, body)
		}
	}

	if _, page := b.get("/"); !strings.Contains(page, "<svg") {
		t.Error("page should inline the trend chart")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	base, _ := newTestSite(t, &stubFetcher{})
	b := newBrowser(t, base)

	b.post("/search", search("Ada", "NA1"))
	b.settled()
	b.post("/stats", url.Values{"stat": {dashboard.StatKDA}})
	b.post("/reset", nil)

	v := b.dashboard()
	if v.Status != dashboard.StatusIdle || v.Player != nil {
		t.Errorf("reset left state behind: %+v", v)
	}
	if len(v.Selection) != len(dashboard.DefaultSelection()) {
		t.Errorf("selection not reset: %v", v.Selection)
	}
}

func TestReadOnlyRoutesDoNotStartSessions(t *testing.T) {
	base, sessions := newTestSite(t, &stubFetcher{})

	for _, path := range []string{"/api/dashboard", "/charts/trend.svg", "/charts/comparison.svg"} {
		resp, err := http.Get(base + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if len(resp.Cookies()) != 0 {
			t.Errorf("%s should not set a session cookie", path)
		}
	}

	b := newBrowser(t, base)
	if v := b.dashboard(); v.Status != dashboard.StatusIdle || len(v.Selection) != len(dashboard.DefaultSelection()) {
		t.Errorf("sessionless dashboard should look idle, got %+v", v)
	}
	if sessions.Len() != 0 {
		t.Errorf("expected no sessions, got %d", sessions.Len())
	}

	b.get("/")
	if sessions.Len() != 1 {
		t.Errorf("opening the page should start a session, got %d", sessions.Len())
	}
}

type fixedRateLimit api.RateLimitInfo

func (f fixedRateLimit) GetRateLimitInfo() api.RateLimitInfo {
	return api.RateLimitInfo(f)
}

func TestHealthReportsRiotRateLimit(t *testing.T) {
	sessions := NewSessions(&stubFetcher{}, time.Hour, zerolog.Nop())
	h := NewHandler(sessions, fixedRateLimit{AppLimit: "20:1,100:120", AppCount: "3:1,41:120"}, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Status        string            `json:"status"`
		RiotRateLimit api.RateLimitInfo `json:"riot_rate_limit"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if body.Status != "healthy" || body.RiotRateLimit.AppCount != "3:1,41:120" {
		t.Errorf("unexpected health payload %s", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	base, _ := newTestSite(t, &stubFetcher{})
	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("responses should carry a request id")
	}
	if len(resp.Cookies()) != 0 {
		t.Error("health checks should not open sessions")
	}
}
