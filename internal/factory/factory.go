package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mmgame/mastermind-go/internal/dependencies/clock"
	"github.com/mmgame/mastermind-go/internal/dependencies/random"
	"github.com/mmgame/mastermind-go/internal/events"
	"github.com/mmgame/mastermind-go/internal/services/game"
	"github.com/mmgame/mastermind-go/internal/services/invitation"
	"github.com/mmgame/mastermind-go/internal/services/logic"
	"github.com/mmgame/mastermind-go/internal/services/match"
	"github.com/mmgame/mastermind-go/internal/services/multiplayer"
	"github.com/mmgame/mastermind-go/internal/services/session"
	"github.com/mmgame/mastermind-go/internal/services/solver"
	"github.com/mmgame/mastermind-go/internal/storage"
	"github.com/mmgame/mastermind-go/internal/storage/memory"
	redisstorage "github.com/mmgame/mastermind-go/internal/storage/redis"
	"github.com/mmgame/mastermind-go/internal/sweeper"
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
	LogicService          *logic.Service
	SolverService         *solver.Service
	GameService           *game.Service
	SessionService        *session.Service
	InvitationService     *invitation.Service
	MatchService          *match.Service
	MultiplayerController *multiplayer.Controller

	// Event push
	Hub         *events.Hub
	Broadcaster *events.Broadcaster

	// Background housekeeping
	Sweeper *sweeper.Sweeper
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
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

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	logicService := logic.New(rnd)
	solverService := solver.New(logicService)
	gameService := game.New(store, logicService, solverService, clk, logger)
	sessionService := session.New(store, clk, logger)
	invitationService := invitation.New(store, sessionService, clk, logger)
	matchService := match.New(store, clk, logger)

	hub := events.NewHub(logger)
	broadcaster := events.NewBroadcaster(hub, logger)

	multiplayerController := multiplayer.NewController(
		sessionService,
		invitationService,
		matchService,
		gameService,
		broadcaster,
		logger,
	)

	sw := sweeper.New(sessionService, invitationService, broadcaster, logger)

	return &App{
		Storage:               store,
		Clock:                 clk,
		Random:                rnd,
		LogicService:          logicService,
		SolverService:         solverService,
		GameService:           gameService,
		SessionService:        sessionService,
		InvitationService:     invitationService,
		MatchService:          matchService,
		MultiplayerController: multiplayerController,
		Hub:                   hub,
		Broadcaster:           broadcaster,
		Sweeper:               sw,
	}
}
