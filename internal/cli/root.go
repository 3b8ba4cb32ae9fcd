package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/otfkit/internal/api"
	"github.com/julianstephens/otfkit/internal/auth"
	"github.com/julianstephens/otfkit/internal/cache"
	"github.com/julianstephens/otfkit/internal/cache/postgres"
	"github.com/julianstephens/otfkit/internal/cache/sqlite"
	"github.com/julianstephens/otfkit/internal/config"
	"github.com/julianstephens/otfkit/internal/logger"
	"github.com/julianstephens/otfkit/internal/utils"
	"github.com/julianstephens/otfkit/internal/workouts"
)

type Context struct {
	Config  config.Config
	Cache   cache.Provider
	Tokens  auth.TokenSource
	Client  *api.Client
	Service *workouts.Service
	Out     io.Writer
	Now     func() time.Time
}

// NewContext wires the API client and workout service. store may be nil when
// caching is disabled.
func NewContext(cfg config.Config, store cache.Provider, tokens auth.TokenSource, opts ...api.Option) *Context {
	if store != nil {
		opts = append([]api.Option{api.WithCache(store, api.CacheTTLs{
			Summary:   cfg.Cache.SummaryTTL,
			Telemetry: cfg.Cache.TelemetryTTL,
		})}, opts...)
	}
	client := api.NewClient(cfg.API, tokens, opts...)

	svc := workouts.NewService(client)
	svc.AttachBookings(client)

	return &Context{
		Config:  cfg,
		Cache:   store,
		Tokens:  tokens,
		Client:  client,
		Service: svc,
		Out:     os.Stdout,
		Now:     time.Now,
	}
}

// OpenCache picks a cache backend from its location: a *.json file, a
// PostgreSQL connection string, or a sqlite database path.
func OpenCache(location string) (cache.Provider, error) {
	switch {
	case postgres.IsConnString(location):
		if err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return cache.NewJSONStore(utils.ExpandHome(location)), nil
	default:
		return sqlite.NewStore(utils.ExpandHome(location)), nil
	}
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Close releases the cache, logging rather than failing on error.
func (c *Context) Close() {
	if c.Cache == nil {
		return
	}
	if err := c.Cache.Close(); err != nil {
		logger.Warn("Failed to close cache", "error", err)
	}
}

// ParseWindow turns optional YYYY-MM-DD flags into a local day window.
// Empty flags yield nil so the service applies its defaults.
func ParseWindow(start, end string) (*time.Time, *time.Time, error) {
	var s, e *time.Time
	if start != "" {
		t, err := utils.ParseDateInLocation(start, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("--start: %w", err)
		}
		s = &t
	}
	if end != "" {
		t, err := utils.ParseDateInLocation(end, time.Local)
		if err != nil {
			return nil, nil, fmt.Errorf("--end: %w", err)
		}
		t = utils.EndOfDay(t)
		e = &t
	}
	if s != nil && e != nil && e.Before(*s) {
		return nil, nil, fmt.Errorf("--end %s is before --start %s", end, start)
	}
	return s, e, nil
}

// ResolveWindow fills missing bounds with the default history window, for
// output that needs concrete dates.
func ResolveWindow(start, end *time.Time, now time.Time, days int) (time.Time, time.Time) {
	ds, de := utils.DefaultHistoryWindow(now, days)
	if start != nil {
		ds = *start
	}
	if end != nil {
		de = *end
	}
	return ds, de
}
