package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/otfkit/internal/cli"
	"github.com/julianstephens/otfkit/internal/constants"
	"github.com/julianstephens/otfkit/internal/export"
	"github.com/julianstephens/otfkit/internal/logger"
)

var ErrS3NotConfigured = errors.New("S3 export needs export.s3.bucket in config.yaml or OTF_EXPORT_S3_BUCKET")

type ExportCmd struct {
	WindowFlags `embed:""`
	Out         string `short:"o" help:"File name or path to write. Defaults to workouts_<start>_<end>.<format> in export.dir."`
	Format      string `help:"Encoding when --out is not given (json or yaml)." enum:"json,yaml" default:"json"`
	S3          bool   `name:"s3" help:"Upload to the configured S3 bucket instead of writing a file."`
}

func (cmd *ExportCmd) Run(ctx context.Context, app *cli.Context) error {
	ws, err := cmd.fetch(ctx, app)
	if err != nil {
		return err
	}

	start, end, _ := cli.ParseWindow(cmd.Start, cmd.End)
	s, e := cli.ResolveWindow(start, end, app.Now(), constants.DefaultHistoryDays)
	doc := export.NewDocument(ws, s, e, app.Now())

	name := cmd.Out
	if name == "" {
		name = export.FileName(s, e, cmd.Format)
	}

	sink, err := cmd.sink(ctx, app)
	if err != nil {
		return err
	}
	where, err := sink.Write(ctx, name, doc)
	if err != nil {
		return err
	}

	logger.Info("Exported workouts", "count", doc.Count, "destination", where)
	app.Printf("✓ Exported %d workouts to %s\n", doc.Count, where)
	return nil
}

func (cmd *ExportCmd) sink(ctx context.Context, app *cli.Context) (export.Sink, error) {
	if !cmd.S3 {
		return export.FileSink{Dir: app.Config.Export.Dir}, nil
	}
	if !app.Config.Export.S3Enabled() {
		return nil, ErrS3NotConfigured
	}
	s3, err := export.NewS3Sink(ctx, app.Config.Export.S3)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3: %w", err)
	}
	return s3, nil
}
