package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/otfkit/internal/auth"
	"github.com/julianstephens/otfkit/internal/cli"
	"github.com/julianstephens/otfkit/internal/keyring"
)

// timeNow is swapped in tests.
var timeNow = time.Now

type DoctorCmd struct {
	Online bool `help:"Also call the API to confirm the token is accepted."`
}

func (cmd *DoctorCmd) Run(ctx context.Context, app *cli.Context) error {
	app.Printf("Running diagnostics...\n\n")
	hasError := false

	report := func(name string, err error) {
		if err != nil {
			app.Printf("❌ %s: FAIL\n", name)
			app.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		app.Printf("✓ %s: OK\n", name)
	}

	report("Configuration", app.Config.Validate())

	if keyring.IsAvailable() {
		app.Printf("✓ OS keyring: OK\n")
	} else {
		app.Printf("⚠ OS keyring: WARNING\n")
		app.Printf("   Not available, set %s instead\n", auth.TokenEnvVar)
	}

	tokenErr := checkToken(ctx, app)
	report("API token", tokenErr)

	if app.Cache == nil {
		app.Printf("⊘ Cache: SKIPPED (disabled)\n")
	} else {
		report("Cache", checkCache(ctx, app))
	}

	report("Clock/timezone", checkClockTimezone())

	switch {
	case !cmd.Online:
	case tokenErr != nil:
		app.Printf("⊘ API reachable: SKIPPED (no usable token)\n")
	default:
		_, err := app.Client.FetchClassUUIDMapping(ctx)
		report("API reachable", err)
	}

	app.Printf("\n")
	if hasError {
		app.Printf("Diagnostics completed with errors.\n")
		return fmt.Errorf("one or more health checks failed")
	}
	app.Printf("All diagnostics passed!\n")
	return nil
}

func checkToken(ctx context.Context, app *cli.Context) error {
	token, err := app.Tokens.Token(ctx)
	if err != nil {
		return err
	}
	claims, err := auth.ParseClaims(token)
	if err != nil {
		return err
	}
	if claims.Expired(timeNow()) {
		return auth.ErrTokenExpired
	}
	return nil
}

// checkCache round-trips a probe entry and prunes expired ones.
func checkCache(ctx context.Context, app *cli.Context) error {
	const probe = "doctor:probe"
	if err := app.Cache.Set(ctx, probe, []byte("ok"), time.Minute); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	if _, err := app.Cache.Get(ctx, probe); err != nil {
		return fmt.Errorf("read failed: %w", err)
	}
	if err := app.Cache.Delete(ctx, probe); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if _, err := app.Cache.Prune(ctx); err != nil {
		return fmt.Errorf("prune failed: %w", err)
	}
	return nil
}

func checkClockTimezone() error {
	now := timeNow()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
