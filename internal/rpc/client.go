package rpc

import (
	"context"
	"errors"
	"net/http"

	"gametrack/internal/constants"
	"gametrack/internal/dashboard"
	"gametrack/internal/domain"

	"connectrpc.com/connect"
)

// Client is the typed GameTrack backend client used by the dashboard and CLI.
// Errors the server reports come back as *domain.APIError; transport
// failures are returned unchanged.
type Client struct {
	svc GameTrackServiceClient
}

func NewClient(baseURL string, httpClient connect.HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.DashboardTimeout}
	}
	return &Client{svc: NewGameTrackServiceClient(httpClient, baseURL)}
}

func (c *Client) LookupPlayer(ctx context.Context, gameName, tagLine string) (*domain.Player, bool, error) {
	resp, err := c.svc.LookupPlayer(ctx, connect.NewRequest(&LookupPlayerRequest{GameName: gameName, TagLine: tagLine}))
	if err != nil {
		return nil, false, apiError(err)
	}
	return &resp.Msg.Player, resp.Msg.Created, nil
}

func (c *Client) FetchPlayerStats(ctx context.Context, gameName, tagLine string, limit int) (*domain.PlayerMatchHistory, error) {
	resp, err := c.svc.FetchPlayerStats(ctx, connect.NewRequest(&FetchPlayerStatsRequest{
		GameName: gameName,
		TagLine:  tagLine,
		Limit:    limit,
	}))
	if err != nil {
		return nil, apiError(err)
	}
	return resp.Msg, nil
}

func (c *Client) GetPlayerMatches(ctx context.Context, puuid string, limit int) (*domain.PlayerMatchHistory, error) {
	resp, err := c.svc.GetPlayerMatches(ctx, connect.NewRequest(&GetPlayerMatchesRequest{Puuid: puuid, Limit: limit}))
	if err != nil {
		return nil, apiError(err)
	}
	return resp.Msg, nil
}

func (c *Client) ListStats(ctx context.Context) ([]dashboard.StatDescriptor, error) {
	resp, err := c.svc.ListStats(ctx, connect.NewRequest(&ListStatsRequest{}))
	if err != nil {
		return nil, apiError(err)
	}
	return resp.Msg.Stats, nil
}

func apiError(err error) error {
	var cerr *connect.Error
	if !connect.IsWireError(err) || !errors.As(err, &cerr) {
		return err
	}
	return &domain.APIError{Code: cerr.Code().String(), Message: cerr.Message()}
}
