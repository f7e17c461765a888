package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/service"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solo/transport/console"
)

// RunApp - runs the console host until the player quits or the process is signaled.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sessionRepo, closeRepo, err := newSessionRepository(ctx, logger, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	manager := usecase.NewSessionManager(logger, sessionRepo, newOpponentFactory(conf.OpponentSeed))

	consoleErrCh := make(chan error, 1)
	go func() {
		consoleErrCh <- console.New(logger, manager).Run(ctx, in, out)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console closed, shutting down")

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newSessionRepository(ctx context.Context, logger *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	log := logger.With("component", "app")

	if !conf.Redis.Enabled {
		log.Info("Keeping snapshots in memory")
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Keeping snapshots in redis", "addr", conf.Redis.GetRedisAddr(), "ttl", conf.Redis.SnapshotTTL.String())

	closeRepo := func() {
		if closeErr := redisStorage.Close(); closeErr != nil {
			log.Error("could not close redis storage", "error", closeErr)
		}
	}

	return repository.NewSessionRepository(redisStorage.Connection, conf.Redis.SnapshotTTL), closeRepo, nil
}

// newOpponentFactory seeds each session from seed+n so a fixed seed replays the same games.
// A zero seed draws from the clock.
func newOpponentFactory(seed uint64) usecase.OpponentFactory {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint: gosec // clock value is never negative
	}

	var sessions atomic.Uint64

	return func() usecase.Opponent {
		return service.NewSeededOpponent(seed + sessions.Add(1) - 1)
	}
}
