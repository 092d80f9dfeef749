package socket

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jorgeberrex/mars-api/internal/leaderboard"
	"github.com/jorgeberrex/mars-api/internal/models"
)

// PlayerStore is the cached player document store.
type PlayerStore interface {
	Get(ctx context.Context, key string) (*models.Player, error)
	Set(ctx context.Context, key string, player *models.Player, persist bool) error
}

// MatchStore is the cached match document store.
type MatchStore interface {
	Get(ctx context.Context, key string) (*models.Match, error)
	Set(ctx context.Context, key string, match *models.Match, persist bool) error
	SetWithExpiry(ctx context.Context, key string, match *models.Match, persist bool, ttl time.Duration) error
}

// LevelStore is the cached level document store, looked up by map id or
// name at match load.
type LevelStore interface {
	Get(ctx context.Context, key string) (*models.Level, error)
}

// Persister covers the direct Mongo writes the event loop performs.
type Persister interface {
	SavePlayer(ctx context.Context, player *models.Player) error
	SaveLevel(ctx context.Context, level *models.Level) error
}

// KV is the small slice of Redis used for per-server liveness state.
type KV interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
}

// Boards is the slice of the leaderboard engine listeners touch.
type Boards interface {
	Increment(ctx context.Context, st leaderboard.ScoreType, member string, delta int64)
	SetIfHigher(ctx context.Context, st leaderboard.ScoreType, member string, value int64)
}

// DeathSink accepts death documents for asynchronous insertion.
type DeathSink interface {
	EnqueueDeath(death *models.Death) bool
}

// Services bundles everything the socket layer needs; every dependency is
// an interface so listener and router tests run against hand mocks.
type Services struct {
	Players PlayerStore
	Matches MatchStore
	Levels  LevelStore
	DB      Persister
	KV      KV
	Boards  Boards
	Deaths  DeathSink
	Logger  *zap.SugaredLogger
}
