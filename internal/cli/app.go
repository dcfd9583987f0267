package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/calvinalkan/backlog/internal/collection"
	"github.com/calvinalkan/backlog/internal/config"
	"github.com/calvinalkan/backlog/internal/game"
	"github.com/calvinalkan/backlog/internal/kv"
	"github.com/calvinalkan/backlog/internal/logger"
)

// app is one process worth of state: resolved config, logger, and the
// collection, which is opened on first use so commands like print-config
// never touch the data directory.
type app struct {
	cfg config.Config
	log *logger.Logger
	in  io.Reader

	inShell bool

	kv    kv.Store
	games *collection.Store
}

// collection opens the durable store and loads the snapshot once.
func (a *app) collection(ctx context.Context) (*collection.Store, error) {
	if a.games != nil {
		return a.games, nil
	}

	store, err := kv.Open(ctx, kv.Options{
		Backend:   a.cfg.Backend,
		Dir:       a.cfg.DataDirAbs,
		RedisAddr: a.cfg.RedisAddr,
		RedisDB:   a.cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", a.cfg.Backend, err)
	}

	// Validated by config.Load.
	timeout, _ := a.cfg.Timeout()
	locale, _ := a.cfg.Language()

	games := collection.New(store,
		collection.WithLogger(a.log),
		collection.WithKey(a.cfg.Key),
		collection.WithSort(game.SortOrder(a.cfg.DefaultSort)),
		collection.WithWriteTimeout(timeout),
		collection.WithLocale(locale),
	)
	games.Load(ctx)

	a.kv = store
	a.games = games

	a.log.Debug("collection opened", "backend", a.cfg.Backend, "games", games.Len())

	return games, nil
}

// close waits for pending writes and releases the durable store. A write
// still pending when ctx ends is reported as a warning.
func (a *app) close(ctx context.Context, o *IO) {
	if a.games != nil {
		err := a.games.Flush(ctx)
		if err != nil {
			o.Warn(fmt.Sprintf("changes may not have been saved (%v)", err), "check the data directory and run the command again")
		}
	}

	if a.kv != nil {
		err := a.kv.Close()
		if err != nil {
			a.log.Warn("closing store failed", "error", err)
		}
	}

	a.log.Sync()
}

// resolve maps a full id or unique prefix to a stored id.
func resolve(games *collection.Store, raw string) (string, error) {
	if raw == "" {
		return "", game.ErrIDRequired
	}

	id, ok := game.ResolveID(games.IDs(), raw)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrGameNotFound, raw)
	}

	return id, nil
}
