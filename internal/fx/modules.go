package fx

import (
	"context"

	"gametrack/internal/api"
	"gametrack/internal/config"
	"gametrack/internal/constants"
	"gametrack/internal/database"
	"gametrack/internal/logger"
	"gametrack/internal/ratelimit"
	"gametrack/internal/repository"
	"gametrack/internal/rpc"
	"gametrack/internal/server"
	"gametrack/internal/service"
	"gametrack/internal/web"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideBudget(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*ratelimit.Budget, error) {
	budget, err := ratelimit.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return budget.Close()
		},
	})
	return budget, nil
}

func ProvideRiotClient(cfg *config.Config, budget *ratelimit.Budget, logger zerolog.Logger) *api.RiotClient {
	return api.NewRiotClient(cfg, budget, logger.With().Str("component", "riot").Logger())
}

func ProvideDashboardHandler(sessions *web.Sessions, riot *api.RiotClient, logger zerolog.Logger) *web.Handler {
	return web.NewHandler(sessions, riot, logger)
}

func ProvideGameTrackServer(players *service.PlayerService, matches *service.MatchService, logger zerolog.Logger) *server.GameTrackServer {
	return server.NewGameTrackServer(players, matches, logger)
}

// ProvideBackendClient is the dashboard's view of the backend. It goes
// through RPC like any other client, so errors arrive as *domain.APIError.
func ProvideBackendClient(cfg *config.Config) *rpc.Client {
	return rpc.NewClient(cfg.BackendURL, nil)
}

func ProvideSessions(lc fx.Lifecycle, client *rpc.Client, cfg *config.Config, logger zerolog.Logger) *web.Sessions {
	sessions := web.NewSessions(client, cfg.SessionTTL, logger.With().Str("component", "dashboard").Logger())

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go sessions.Run(ctx, constants.SessionSweepInterval)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return sessions
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// api client
	fx.Provide(ProvideBudget),
	fx.Provide(fx.Annotate(ProvideRiotClient, fx.As(fx.Self()), fx.As(new(service.RiotAPI)))),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(ProvideGameTrackServer),
	// dashboard
	fx.Provide(ProvideBackendClient),
	fx.Provide(ProvideSessions),
	fx.Provide(ProvideDashboardHandler),
)
