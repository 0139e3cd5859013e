package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/five82/clicker/internal/config"
	"github.com/five82/clicker/internal/counter"
	"github.com/five82/clicker/internal/feed"
	"github.com/five82/clicker/internal/logging"
	"github.com/five82/clicker/internal/replay"
	"github.com/five82/clicker/internal/store"
	"github.com/five82/clicker/internal/ui"
)

// Options configure the clicker application.
type Options struct {
	ConfigPath string
	AutoEvery  int // seconds; zero keeps the configured value
}

// Run boots the clicker TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.AutoEvery > 0 {
		cfg.AutoClickEvery = time.Duration(opts.AutoEvery) * time.Second
	}

	logger, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closer.Close()

	st, err := newStore(cfg, logger)
	if err != nil {
		return err
	}

	stopFeed, err := startFeed(ctx, cfg.Feed, st, logger)
	if err != nil {
		return err
	}
	defer stopFeed()

	if cfg.AutoClickEvery > 0 {
		StartAutoClicker(ctx, st, cfg.AutoClickEvery, logger)
	}

	logger.Info("starting ui", slog.Int("clicks", st.GetState().Clicks), slog.String("theme", cfg.Theme))
	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     st,
		ThemeName: cfg.Theme,
		Logger:    logger,
	})
}

// Replay applies the action script at scriptPath to a fresh store and writes
// the resulting state to w. No UI is started.
func Replay(opts Options, scriptPath string, w io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	script, err := replay.Load(scriptPath)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	st, err := newStore(cfg, logging.New(io.Discard, cfg.LogLevel))
	if err != nil {
		return err
	}
	n, err := replay.Apply(st, script, counter.ParseAction)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "replayed %d actions: clicks=%d\n", n, st.GetState().Clicks)
	return err
}

func newStore(cfg config.Config, logger *slog.Logger) (*store.Store[counter.State], error) {
	st, err := counter.NewStore(
		&counter.State{Clicks: cfg.InitialClicks},
		store.WithLogger[counter.State](logger),
	)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return st, nil
}

// startFeed attaches a change feed when one is configured. The returned stop
// function detaches it and closes the transport.
func startFeed(ctx context.Context, cfg config.Feed, st *store.Store[counter.State], logger *slog.Logger) (func(), error) {
	if !cfg.Enabled() {
		return func() {}, nil
	}

	transport, err := feed.NewTransport(cfg, logging.Watermill(logger))
	if err != nil {
		return nil, fmt.Errorf("init feed: %w", err)
	}

	// In-process transports have no remote consumer; log what they carry.
	if transport.Subscriber != nil {
		err := feed.Watch(ctx, transport.Subscriber, cfg.Topic, logger, func(state counter.State, seq uint64) {
			logger.Debug("feed state", slog.Uint64("seq", seq), slog.Int("clicks", state.Clicks))
		})
		if err != nil {
			_ = transport.Close()
			return nil, fmt.Errorf("watch feed: %w", err)
		}
	}

	detach := feed.Attach(st, transport.Publisher, cfg.Topic, logger)
	logger.Info("feed attached", slog.String("transport", cfg.Transport), slog.String("topic", cfg.Topic))

	return func() {
		detach()
		if err := transport.Close(); err != nil {
			logger.Error("failed to close feed transport", slog.String("err", err.Error()))
		}
	}, nil
}
