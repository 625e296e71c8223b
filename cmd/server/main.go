package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"gametrack/internal/config"
	"gametrack/internal/constants"
	fxmodules "gametrack/internal/fx"
	"gametrack/internal/middleware"
	"gametrack/internal/rpc"
	"gametrack/internal/server"
	"gametrack/internal/web"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	gameTrackServer *server.GameTrackServer,
	dashboardHandler *web.Handler,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()

	rpcPath, rpcHandler := rpc.NewGameTrackServiceHandler(gameTrackServer)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	mux.Handle(rpcPath, middleware.RequestID(logger)(c.Handler(rpcHandler)))
	mux.Handle("/", dashboardHandler.Routes())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           mux,
		ReadHeaderTimeout: constants.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().
					Str("addr", srv.Addr).
					Str("rpc_path", rpcPath).
					Str("backend_url", cfg.BackendURL).
					Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
