package dashboard

import (
	"context"
	"errors"
	"sync"

	"gametrack/internal/constants"
	"gametrack/internal/domain"

	"github.com/rs/zerolog"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

const GenericErrorMessage = "An unexpected error occurred. Please try again."

// WindowSize is how many matches every search asks for.
const WindowSize = constants.DefaultMatchLimit

type Fetcher interface {
	FetchPlayerStats(ctx context.Context, gameName, tagLine string, limit int) (*domain.PlayerMatchHistory, error)
}

// Orchestrator owns one session's search state. Only the most recently
// issued search may publish its outcome; older ones finish silently.
type Orchestrator struct {
	fetcher Fetcher
	logger  zerolog.Logger

	mu         sync.Mutex
	status     Status
	result     *domain.PlayerMatchHistory
	errMsg     string
	selection  *Selection
	generation uint64
	gameName   string
	tagLine    string
}

func NewOrchestrator(fetcher Fetcher, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:   fetcher,
		logger:    logger,
		status:    StatusIdle,
		selection: NewSelection(),
	}
}

// Snapshot is a consistent copy of the session state for rendering.
type Snapshot struct {
	Status    Status
	Error     string
	Result    *domain.PlayerMatchHistory
	Selection *Selection
	GameName  string
	TagLine   string
}

func (s Snapshot) Loading() bool {
	return s.Status == StatusLoading
}

func (s Snapshot) Trend() Trend {
	if s.Result == nil {
		return Trend{}
	}
	return MapTrend(s.Result.Matches, s.Selection)
}

func (s Snapshot) Comparison() Comparison {
	if s.Result == nil {
		return Comparison{}
	}
	return MapComparison(s.Result.Matches, s.Selection)
}

func (s Snapshot) Cards() []Card {
	if s.Result == nil {
		return nil
	}
	return SummaryCards(&s.Result.Summary)
}

// Search clears the previous outcome, fetches one window of matches and
// stores either the result or a user-facing message. It blocks until the
// fetch returns.
func (o *Orchestrator) Search(ctx context.Context, gameName, tagLine string) {
	gen := o.begin(gameName, tagLine)
	o.finish(ctx, gen, gameName, tagLine)
}

// Start is Search without the wait: the session is already loading when it
// returns, and the channel closes once the fetch has been settled.
func (o *Orchestrator) Start(ctx context.Context, gameName, tagLine string) <-chan struct{} {
	gen := o.begin(gameName, tagLine)
	done := make(chan struct{})
	go func() {
		defer close(done)
		o.finish(ctx, gen, gameName, tagLine)
	}()
	return done
}

func (o *Orchestrator) begin(gameName, tagLine string) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.status = StatusLoading
	o.result = nil
	o.errMsg = ""
	o.gameName, o.tagLine = gameName, tagLine
	return o.generation
}

func (o *Orchestrator) finish(ctx context.Context, gen uint64, gameName, tagLine string) {
	log := o.logger.With().
		Str("game_name", gameName).
		Str("tag_line", tagLine).
		Uint64("generation", gen).
		Logger()
	log.Debug().Msg("search started")

	history, err := o.fetcher.FetchPlayerStats(ctx, gameName, tagLine, WindowSize)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		log.Debug().Uint64("current", o.generation).Msg("discarding superseded search result")
		return
	}

	if err != nil {
		o.status = StatusError
		o.errMsg = errorMessage(err)
		log.Error().Err(err).Msg("error fetching player data")
		return
	}

	o.status = StatusReady
	o.result = history
	log.Info().Int("matches", history.TotalMatches).Msg("search completed")
}

func errorMessage(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericErrorMessage
}

// Reset returns to idle and restores the default selection. Any search
// still in flight is abandoned.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.status = StatusIdle
	o.result = nil
	o.errMsg = ""
	o.gameName, o.tagLine = "", ""
	o.selection.Reset()
}

func (o *Orchestrator) UpdateSelection(keys []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.selection.Replace(keys)
}

func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		Status:    o.status,
		Error:     o.errMsg,
		Result:    o.result,
		Selection: o.selection.Clone(),
		GameName:  o.gameName,
		TagLine:   o.tagLine,
	}
}
