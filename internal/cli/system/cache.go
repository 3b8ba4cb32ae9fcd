package system

import (
	"context"
	"errors"

	"github.com/julianstephens/otfkit/internal/cli"
)

var ErrCacheDisabled = errors.New("cache is disabled (cache.disabled in config.yaml)")

type CacheCmd struct {
	Init  CacheInitCmd  `cmd:"" help:"Create the cache and run its migrations."`
	Clear CacheClearCmd `cmd:"" help:"Remove every cached entry."`
	Prune CachePruneCmd `cmd:"" help:"Remove expired entries."`
	Path  CachePathCmd  `cmd:"" help:"Print the cache location." default:"1"`
}

type CacheInitCmd struct{}

func (cmd *CacheInitCmd) Run(app *cli.Context) error {
	if app.Cache == nil {
		return ErrCacheDisabled
	}
	if err := app.Cache.Init(); err != nil {
		return err
	}
	app.Printf("Initialized cache at: %s\n", app.Cache.GetConfigPath())
	return nil
}

type CacheClearCmd struct{}

func (cmd *CacheClearCmd) Run(ctx context.Context, app *cli.Context) error {
	if app.Cache == nil {
		return ErrCacheDisabled
	}
	if err := app.Cache.Clear(ctx); err != nil {
		return err
	}
	app.Printf("✓ Cache cleared\n")
	return nil
}

type CachePruneCmd struct{}

func (cmd *CachePruneCmd) Run(ctx context.Context, app *cli.Context) error {
	if app.Cache == nil {
		return ErrCacheDisabled
	}
	n, err := app.Cache.Prune(ctx)
	if err != nil {
		return err
	}
	app.Printf("✓ Removed %d expired entries\n", n)
	return nil
}

type CachePathCmd struct{}

func (cmd *CachePathCmd) Run(app *cli.Context) error {
	if app.Cache == nil {
		return ErrCacheDisabled
	}
	app.Printf("%s\n", app.Cache.GetConfigPath())
	return nil
}
