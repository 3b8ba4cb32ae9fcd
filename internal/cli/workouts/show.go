package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/otfkit/internal/api"
	"github.com/julianstephens/otfkit/internal/cli"
	"github.com/julianstephens/otfkit/internal/tui"
	"github.com/julianstephens/otfkit/internal/workouts"
)

type ShowCmd struct {
	BookingID     string `arg:"" name:"booking-id" help:"Booking to assemble a workout for."`
	MaxDataPoints int    `name:"max-data-points" help:"Telemetry samples to request." default:"150"`
	JSON          bool   `name:"json" help:"Print the workout as JSON."`
}

func (cmd *ShowCmd) Run(ctx context.Context, app *cli.Context) error {
	w, err := app.Service.GetWorkoutFromBooking(ctx, cmd.BookingID, cmd.MaxDataPoints)
	switch {
	case api.IsNotFound(err):
		return fmt.Errorf("booking not found: %s", cmd.BookingID)
	case errors.Is(err, workouts.ErrNoPerformanceSummary):
		return fmt.Errorf("booking %s has no recorded workout", cmd.BookingID)
	case err != nil:
		return err
	}

	if cmd.JSON {
		return writeJSON(app.Out, w)
	}
	app.Printf("%s\n", tui.Detail(*w))
	return nil
}
