package cmd

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/nibzard/doable-go/internal/board"
	"github.com/nibzard/doable-go/internal/config"
	"github.com/nibzard/doable-go/internal/notify"
)

// app is one board session: the store and the sinks its changes go to.
type app struct {
	store      *board.Store
	dispatcher *notify.Dispatcher
	redis      *redis.Client
	logger     *log.Logger
}

// newApp wires a store seeded with seed to the notification sinks in cfg.
// logDir is the session log directory; the hook snapshot defaults to it.
func newApp(ctx context.Context, cfg *config.Config, seed board.Board, logDir string, logger *log.Logger) *app {
	a := &app{logger: logger}

	sinks := []notify.Sink{notify.LogSink{Logger: logger}}
	if cfg.Notify.SnapshotFile != "" {
		sinks = append(sinks, notify.FileSink{Path: cfg.Notify.SnapshotFile})
	}
	if cfg.Notify.HookCommand != "" {
		sinks = append(sinks, notify.HookSink{Options: notify.HookOptions{
			Command:      cfg.Notify.HookCommand,
			SnapshotPath: cfg.HookSnapshotPath(logDir),
			Label:        "board",
			WorkDir:      cfg.ProjectRoot,
		}})
	}
	if cfg.Notify.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Notify.RedisAddr})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			// The board still works without Redis; failed publishes are logged.
			logger.Warn("redis unavailable", "addr", cfg.Notify.RedisAddr, "err", err)
		}
		sinks = append(sinks, notify.NewRedisSink(a.redis, cfg.Notify.RedisKey, cfg.Notify.RedisChannel))
	}

	a.dispatcher = notify.NewDispatcher(ctx, notify.DispatcherOptions{
		Workers:   cfg.Notify.Workers,
		QueueSize: cfg.Notify.QueueSize,
		Logger:    logger,
	}, sinks...)

	a.store = board.NewStore(seed,
		board.WithOnChange(a.dispatcher.Publish),
		board.WithIDGenerator(board.UUIDGenerator{Prefix: board.DefaultIDPrefix}),
	)
	logger.Debug("notify sinks ready", "sinks", len(sinks))
	return a
}

// close delivers pending snapshots and releases the Redis client.
func (a *app) close() {
	if a.dispatcher != nil {
		a.dispatcher.Close()
		stats := a.dispatcher.Stats()
		a.logger.Info("notifications done",
			"published", stats.Published,
			"delivered", stats.Delivered,
			"coalesced", stats.Coalesced,
			"errors", stats.SinkErrors,
		)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("closing redis client", "err", err)
		}
	}
}
