package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/otfkit/internal/auth"
	"github.com/julianstephens/otfkit/internal/cache"
	"github.com/julianstephens/otfkit/internal/cache/postgres"
	"github.com/julianstephens/otfkit/internal/cli"
	"github.com/julianstephens/otfkit/internal/cli/system"
	"github.com/julianstephens/otfkit/internal/cli/workouts"
	"github.com/julianstephens/otfkit/internal/config"
	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/errors"
	"github.com/julianstephens/otfkit/internal/logger"
	"github.com/julianstephens/otfkit/internal/utils"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml and logs." type:"path" default:"${config_dir}" env:"OTF_CONFIG_DIR"`
	Cache     string `help:"Cache location: a *.json file, a sqlite path, or a PostgreSQL connection string without a password. Overrides cache.location." env:"OTF_CACHE"`
	NoCache   bool   `help:"Bypass the response cache for this run."`
	Debug     bool   `help:"Log debug output to stderr."`

	Workouts workouts.WorkoutsCmd `cmd:"" help:"List, show, export and browse workouts." default:"1"`
	Auth     system.AuthCmd       `cmd:"" help:"Manage the API token."`
	Cachectl system.CacheCmd      `cmd:"" name:"cache" help:"Manage the response cache."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
}

func init() {
	errors.RegisterHint(cache.ErrNotInitialized, "Run 'otf cache init' or pass --no-cache.")
	errors.RegisterHint(auth.ErrNoToken, "Store one with 'otf auth login'.")
	errors.RegisterHint(auth.ErrTokenExpired, "Tokens expire after a day; fetch a new one and run 'otf auth login'.")
	errors.RegisterHint(postgres.ErrEmbeddedCredentials, "Use PGPASSWORD or ~/.pgpass for the password.")
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Orangetheory workout history client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":    constants.Version,
			"config_dir": utils.ExpandHome(constants.DefaultConfigDir),
		},
	)

	cfg, err := config.Load(CLI.ConfigDir)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: CLI.ConfigDir,
		Level:     cfg.Log.Level,
	}); err != nil {
		errors.Fatal(err)
	}

	store, err := openCache(cfg, kctx.Command())
	if err != nil {
		errors.Fatal(err)
	}

	app := cli.NewContext(cfg, store, auth.NewSource())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	kctx.BindTo(ctx, (*context.Context)(nil))

	err = kctx.Run(app)
	stop()
	app.Close()
	errors.Fatal(err)
}

// openCache returns the configured cache, loaded and ready, or nil when
// caching is off. A cache that does not exist yet is created, except for
// `cache init` which creates it itself.
func openCache(cfg config.Config, command string) (cache.Provider, error) {
	if cfg.Cache.Disabled || CLI.NoCache {
		return nil, nil
	}

	location := cfg.Cache.Location
	if CLI.Cache != "" {
		location = CLI.Cache
	}
	store, err := cli.OpenCache(location)
	if err != nil {
		return nil, err
	}
	if command == "cache init" {
		return store, nil
	}

	err = store.Load()
	if stderrors.Is(err, cache.ErrNotInitialized) {
		logger.Info("Creating cache", "location", store.GetConfigPath())
		err = store.Init()
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
