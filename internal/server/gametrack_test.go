package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gametrack/internal/dashboard"
	"gametrack/internal/domain"
	"gametrack/internal/rpc"
	"gametrack/internal/service"

	"github.com/rs/zerolog"
)

type fakePlayers struct {
	player *domain.Player
	err    error
}

func (f *fakePlayers) Lookup(ctx context.Context, gameName, tagLine string) (*domain.Player, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.player, true, nil
}

type fakeMatches struct {
	history *domain.PlayerMatchHistory
	err     error
	limit   int
}

func (f *fakeMatches) FetchPlayerStats(ctx context.Context, gameName, tagLine string, limit int) (*domain.PlayerMatchHistory, error) {
	f.limit = limit
	return f.history, f.err
}

func (f *fakeMatches) GetPlayerMatches(ctx context.Context, puuid string, limit int) (*domain.PlayerMatchHistory, error) {
	f.limit = limit
	return f.history, f.err
}

func newTestBackend(t *testing.T, players PlayerLookup, matches MatchHistory) *rpc.Client {
	t.Helper()
	srv := NewGameTrackServer(players, matches, zerolog.Nop())
	path, handler := rpc.NewGameTrackServiceHandler(srv)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return rpc.NewClient(ts.URL, ts.Client())
}

func TestFetchPlayerStatsRoundTrip(t *testing.T) {
	kp := 0.5
	matches := &fakeMatches{history: &domain.PlayerMatchHistory{
		Player:       domain.Player{Puuid: "p-1", GameName: "Ada", TagLine: "NA1"},
		Matches:      []domain.PlayerMatchStats{{MatchID: "NA1_1", Kills: 4, Win: true, KillParticipation: &kp}},
		TotalMatches: 1,
		Summary:      domain.Summary{TotalMatches: 1, Wins: 1, WinRate: 100},
	}}
	client := newTestBackend(t, &fakePlayers{}, matches)

	got, err := client.FetchPlayerStats(context.Background(), "Ada", "NA1", 10)
	if err != nil {
		t.Fatalf("FetchPlayerStats: %v", err)
	}
	if matches.limit != 10 {
		t.Errorf("limit not forwarded, got %d", matches.limit)
	}
	if got.Player.Puuid != "p-1" || len(got.Matches) != 1 || got.Summary.WinRate != 100 {
		t.Fatalf("unexpected history %+v", got)
	}
	if got.Matches[0].KillParticipation == nil || *got.Matches[0].KillParticipation != 0.5 {
		t.Error("optional stats should survive the wire")
	}
	if got.Matches[0].DamagePerMinute != nil {
		t.Error("absent stats should stay absent")
	}
}

func TestServiceErrorsKeepTheirMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{
			name:     "not found",
			err:      &service.Error{Kind: service.KindNotFound, Message: "Player not found or Riot API error", Err: errors.New("404")},
			wantCode: "not_found",
			wantMsg:  "Player not found or Riot API error",
		},
		{
			name:     "invalid argument",
			err:      &service.Error{Kind: service.KindInvalidArgument, Message: "Game name cannot be empty"},
			wantCode: "invalid_argument",
			wantMsg:  "Game name cannot be empty",
		},
		{
			name:     "internal",
			err:      &service.Error{Kind: service.KindInternal, Message: "Failed to fetch match data", Err: errors.New("boom")},
			wantCode: "internal",
			wantMsg:  "Failed to fetch match data",
		},
		{
			name:     "unexpected",
			err:      errors.New("database is locked"),
			wantCode: "internal",
			wantMsg:  "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestBackend(t, &fakePlayers{}, &fakeMatches{err: tt.err})

			_, err := client.FetchPlayerStats(context.Background(), "Ada", "NA1", 10)
			var apiErr *domain.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T %v", err, err)
			}
			if apiErr.Code != tt.wantCode || apiErr.Message != tt.wantMsg {
				t.Errorf("got %s %q, want %s %q", apiErr.Code, apiErr.Message, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

func TestLookupPlayer(t *testing.T) {
	client := newTestBackend(t, &fakePlayers{player: &domain.Player{Puuid: "p-1", GameName: "Ada", TagLine: "NA1"}}, &fakeMatches{})

	player, created, err := client.LookupPlayer(context.Background(), "Ada", "NA1")
	if err != nil {
		t.Fatalf("LookupPlayer: %v", err)
	}
	if !created || player.RiotID() != "Ada#NA1" {
		t.Errorf("unexpected player %+v created=%v", player, created)
	}
}

func TestListStats(t *testing.T) {
	client := newTestBackend(t, &fakePlayers{}, &fakeMatches{})

	stats, err := client.ListStats(context.Background())
	if err != nil {
		t.Fatalf("ListStats: %v", err)
	}
	if len(stats) != len(dashboard.Catalog()) {
		t.Fatalf("expected %d stats, got %d", len(dashboard.Catalog()), len(stats))
	}
	if stats[0].Key != dashboard.StatKills || !stats[0].IsDefaultSelected {
		t.Errorf("unexpected first stat %+v", stats[0])
	}
}

func TestTransportFailureIsNotAnAPIError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client := rpc.NewClient(url, nil)
	_, err := client.FetchPlayerStats(context.Background(), "Ada", "NA1", 10)
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("connection failures must not look like backend errors: %v", err)
	}
}
