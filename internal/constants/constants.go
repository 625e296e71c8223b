package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 60 * time.Second
	DashboardTimeout   = 90 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
)

// match window
const (
	DefaultMatchLimit = 10
	MaxMatchLimit     = 20
)

const (
	RiotMaxAttempts       = 3
	RiotDefaultRetryAfter = 1 * time.Second
	MatchFetchConcurrency = 4
	RiotBudgetWindow      = 2 * time.Minute
	RiotBudgetRequests    = 100
)

const (
	SessionTTL           = 2 * time.Hour
	SessionSweepInterval = 10 * time.Minute
	MaxSessions          = 10000
)

const (
	MaxGameNameLength = 100
	MaxTagLineLength  = 10
)
