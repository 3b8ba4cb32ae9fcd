package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/otfkit/internal/cli"
	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/models"
	"github.com/julianstephens/otfkit/internal/observability"
	"github.com/julianstephens/otfkit/internal/tui"
)

// WindowFlags select the booking window shared by list, export and browse.
type WindowFlags struct {
	Start         string `help:"First day of the window (YYYY-MM-DD). Defaults to 30 days ago." placeholder:"YYYY-MM-DD"`
	End           string `help:"Last day of the window (YYYY-MM-DD). Defaults to today." placeholder:"YYYY-MM-DD"`
	MaxDataPoints int    `name:"max-data-points" help:"Telemetry samples to request per workout." default:"150"`
}

func (f WindowFlags) fetch(ctx context.Context, app *cli.Context) ([]models.Workout, error) {
	start, end, err := cli.ParseWindow(f.Start, f.End)
	if err != nil {
		return nil, err
	}
	ws, err := app.Service.GetWorkouts(ctx, start, end, f.MaxDataPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}
	return ws, nil
}

type ListCmd struct {
	WindowFlags `embed:""`
	JSON        bool `name:"json" help:"Print workouts as JSON."`
	Stats       bool `help:"Print fetch and assembly counters after the list."`
}

func (cmd *ListCmd) Run(ctx context.Context, app *cli.Context) error {
	ws, err := cmd.fetch(ctx, app)
	if err != nil {
		return err
	}

	if cmd.JSON {
		if err := writeJSON(app.Out, ws); err != nil {
			return err
		}
	} else {
		renderTable(app.Out, ws)
	}

	if cmd.Stats {
		app.Printf("\n")
		if err := observability.WriteStats(app.Out); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
	}
	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(w io.Writer, ws []models.Workout) {
	if len(ws) == 0 {
		fmt.Fprintln(w, "No workouts found.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(tui.Headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, wo := range ws {
		t.Row(tui.Row(wo)...)
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d workouts (minimum %d calories)\n", len(ws), constants.MinValidCalories)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
