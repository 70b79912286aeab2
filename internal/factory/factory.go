// Package factory wires the application's components together.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/duelcode-game/duelcode/internal/dependencies/clock"
	"github.com/duelcode-game/duelcode/internal/dependencies/random"
	"github.com/duelcode-game/duelcode/internal/services/duel"
	"github.com/duelcode-game/duelcode/internal/services/history"
	"github.com/duelcode-game/duelcode/internal/services/registry"
	"github.com/duelcode-game/duelcode/internal/storage"
	"github.com/duelcode-game/duelcode/internal/storage/memory"
	redisstorage "github.com/duelcode-game/duelcode/internal/storage/redis"
	"github.com/duelcode-game/duelcode/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Registry       *registry.Service
	DuelController *duel.Controller
	HistoryService *history.Service
	Gateway        *ws.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the match-history backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// TurnTimeout overrides how long a player has per turn (optional)
	TurnTimeout time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.TurnTimeout, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, turnTimeout time.Duration, logger *slog.Logger) *App {
	registryService := registry.New(rnd, logger)
	historyService := history.New(store, logger)
	duelController := duel.NewController(registryService, historyService, clk, rnd, logger, turnTimeout)
	gateway := ws.NewGateway(registryService, duelController, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Registry:       registryService,
		DuelController: duelController,
		HistoryService: historyService,
		Gateway:        gateway,
	}
}
