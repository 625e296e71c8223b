package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// GameTrackServiceHandler is implemented by the server.
type GameTrackServiceHandler interface {
	LookupPlayer(context.Context, *connect.Request[LookupPlayerRequest]) (*connect.Response[LookupPlayerResponse], error)
	GetPlayerMatches(context.Context, *connect.Request[GetPlayerMatchesRequest]) (*connect.Response[PlayerMatchHistoryResponse], error)
	FetchPlayerStats(context.Context, *connect.Request[FetchPlayerStatsRequest]) (*connect.Response[PlayerMatchHistoryResponse], error)
	ListStats(context.Context, *connect.Request[ListStatsRequest]) (*connect.Response[ListStatsResponse], error)
}

// NewGameTrackServiceHandler returns the path to mount the service on and its handler.
func NewGameTrackServiceHandler(svc GameTrackServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec())}, opts...)

	lookupPlayer := connect.NewUnaryHandler(LookupPlayerProcedure, svc.LookupPlayer, opts...)
	getPlayerMatches := connect.NewUnaryHandler(GetPlayerMatchesProcedure, svc.GetPlayerMatches, opts...)
	fetchPlayerStats := connect.NewUnaryHandler(FetchPlayerStatsProcedure, svc.FetchPlayerStats, opts...)
	listStats := connect.NewUnaryHandler(ListStatsProcedure, svc.ListStats, opts...)

	return "/" + GameTrackServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LookupPlayerProcedure:
			lookupPlayer.ServeHTTP(w, r)
		case GetPlayerMatchesProcedure:
			getPlayerMatches.ServeHTTP(w, r)
		case FetchPlayerStatsProcedure:
			fetchPlayerStats.ServeHTTP(w, r)
		case ListStatsProcedure:
			listStats.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

type GameTrackServiceClient interface {
	LookupPlayer(context.Context, *connect.Request[LookupPlayerRequest]) (*connect.Response[LookupPlayerResponse], error)
	GetPlayerMatches(context.Context, *connect.Request[GetPlayerMatchesRequest]) (*connect.Response[PlayerMatchHistoryResponse], error)
	FetchPlayerStats(context.Context, *connect.Request[FetchPlayerStatsRequest]) (*connect.Response[PlayerMatchHistoryResponse], error)
	ListStats(context.Context, *connect.Request[ListStatsRequest]) (*connect.Response[ListStatsResponse], error)
}

func NewGameTrackServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GameTrackServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec())}, opts...)
	return &gameTrackServiceClient{
		lookupPlayer:     connect.NewClient[LookupPlayerRequest, LookupPlayerResponse](httpClient, baseURL+LookupPlayerProcedure, opts...),
		getPlayerMatches: connect.NewClient[GetPlayerMatchesRequest, PlayerMatchHistoryResponse](httpClient, baseURL+GetPlayerMatchesProcedure, opts...),
		fetchPlayerStats: connect.NewClient[FetchPlayerStatsRequest, PlayerMatchHistoryResponse](httpClient, baseURL+FetchPlayerStatsProcedure, opts...),
		listStats:        connect.NewClient[ListStatsRequest, ListStatsResponse](httpClient, baseURL+ListStatsProcedure, opts...),
	}
}

type gameTrackServiceClient struct {
	lookupPlayer     *connect.Client[LookupPlayerRequest, LookupPlayerResponse]
	getPlayerMatches *connect.Client[GetPlayerMatchesRequest, PlayerMatchHistoryResponse]
	fetchPlayerStats *connect.Client[FetchPlayerStatsRequest, PlayerMatchHistoryResponse]
	listStats        *connect.Client[ListStatsRequest, ListStatsResponse]
}

func (c *gameTrackServiceClient) LookupPlayer(ctx context.Context, req *connect.Request[LookupPlayerRequest]) (*connect.Response[LookupPlayerResponse], error) {
	return c.lookupPlayer.CallUnary(ctx, req)
}

func (c *gameTrackServiceClient) GetPlayerMatches(ctx context.Context, req *connect.Request[GetPlayerMatchesRequest]) (*connect.Response[PlayerMatchHistoryResponse], error) {
	return c.getPlayerMatches.CallUnary(ctx, req)
}

func (c *gameTrackServiceClient) FetchPlayerStats(ctx context.Context, req *connect.Request[FetchPlayerStatsRequest]) (*connect.Response[PlayerMatchHistoryResponse], error) {
	return c.fetchPlayerStats.CallUnary(ctx, req)
}

func (c *gameTrackServiceClient) ListStats(ctx context.Context, req *connect.Request[ListStatsRequest]) (*connect.Response[ListStatsResponse], error) {
	return c.listStats.CallUnary(ctx, req)
}
