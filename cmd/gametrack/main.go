package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gametrack/internal/config"
	"gametrack/internal/constants"
	"gametrack/internal/dashboard"
	"gametrack/internal/domain"
	"gametrack/internal/logger"
	"gametrack/internal/rpc"

	"github.com/rs/zerolog"
)

const usage = `usage: gametrack lookup Name#TAG [-limit N] [-server URL]`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] != "lookup" {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg := config.LoadClient()

	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	limit := fs.Int("limit", constants.DefaultMatchLimit, "number of recent matches")
	serverURL := fs.String("server", cfg.BackendURL, "GameTrack backend URL")
	verbose := fs.Bool("v", false, "debug logging")

	// the Riot ID may come before or after the flags
	rest := args[1:]
	var riotID string
	if len(rest) > 0 && len(rest[0]) > 0 && rest[0][0] != '-' {
		riotID, rest = rest[0], rest[1:]
	}
	if err := fs.Parse(rest); err != nil {
		return 2
	}
	if riotID == "" && fs.NArg() > 0 {
		riotID = fs.Arg(0)
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsole(stderr, level)

	gameName, tagLine, err := dashboard.ParseRiotID(riotID)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		fmt.Fprintln(stderr, usage)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DashboardTimeout)
	defer cancel()

	log.Debug().Str("server", *serverURL).Str("riot_id", gameName+"#"+tagLine).Int("limit", *limit).Msg("fetching player stats")

	client := rpc.NewClient(*serverURL, nil)
	history, err := client.FetchPlayerStats(ctx, gameName, tagLine, *limit)
	if err != nil {
		var apiErr *domain.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(stderr, errorStyle.Render(apiErr.Message))
		} else {
			log.Error().Err(err).Msg("request failed")
			fmt.Fprintln(stderr, errorStyle.Render(dashboard.GenericErrorMessage))
		}
		return 1
	}

	fmt.Fprintln(stdout, renderReport(history))
	return 0
}
