package ratelimit

import (
	"context"
	"fmt"
	"time"

	"gametrack/internal/config"
	"gametrack/internal/constants"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Budget is a fixed-window request counter kept in Redis so every server
// replica draws from the same Riot allowance. A Budget without a client
// never blocks.
type Budget struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

func New(cfg *config.Config, logger zerolog.Logger) (*Budget, error) {
	b := &Budget{
		prefix: "gametrack:riot:budget",
		limit:  constants.RiotBudgetRequests,
		window: constants.RiotBudgetWindow,
		logger: logger,
		now:    time.Now,
	}
	if cfg.RedisURL == "" {
		logger.Info().Msg("redis not configured, riot request budget disabled")
		return b, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	b.client = redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()
	if err := b.client.Ping(ctx).Err(); err != nil {
		b.client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info().
		Int64("limit", b.limit).
		Dur("window", b.window).
		Msg("riot request budget enabled")
	return b, nil
}

// NewWithClient is used by tests to point the budget at a specific key space.
func NewWithClient(client *redis.Client, prefix string, limit int64, window time.Duration, logger zerolog.Logger) *Budget {
	return &Budget{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

func (b *Budget) Enabled() bool {
	return b != nil && b.client != nil
}

// Reserve takes one slot from the current window, waiting for the next
// window when this one is spent.
func (b *Budget) Reserve(ctx context.Context) error {
	if !b.Enabled() {
		return nil
	}

	for {
		now := b.now()
		windowStart := now.Truncate(b.window)
		key := fmt.Sprintf("%s:%d", b.prefix, windowStart.Unix())

		pipe := b.client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, b.window+time.Second)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("failed to reserve riot request slot: %w", err)
		}

		if incr.Val() <= b.limit {
			return nil
		}

		wait := windowStart.Add(b.window).Sub(now)
		b.logger.Debug().
			Int64("count", incr.Val()).
			Dur("wait", wait).
			Msg("riot request budget exhausted, waiting for next window")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Used reports how many slots the current window has handed out.
func (b *Budget) Used(ctx context.Context) (int64, error) {
	if !b.Enabled() {
		return 0, nil
	}
	key := fmt.Sprintf("%s:%d", b.prefix, b.now().Truncate(b.window).Unix())
	n, err := b.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read riot request budget: %w", err)
	}
	return n, nil
}

func (b *Budget) Close() error {
	if !b.Enabled() {
		return nil
	}
	return b.client.Close()
}
