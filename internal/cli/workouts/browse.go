package workouts

import (
	"context"

	"github.com/julianstephens/otfkit/internal/cli"
	"github.com/julianstephens/otfkit/internal/tui"
)

type BrowseCmd struct {
	WindowFlags `embed:""`
}

func (cmd *BrowseCmd) Run(ctx context.Context, app *cli.Context) error {
	ws, err := cmd.fetch(ctx, app)
	if err != nil {
		return err
	}
	return tui.Run(ws)
}
