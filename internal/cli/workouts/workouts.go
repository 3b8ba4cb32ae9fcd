// Package workouts holds the `otf workouts` commands.
package workouts

type WorkoutsCmd struct {
	List   ListCmd   `cmd:"" help:"List workouts in a date window." default:"1"`
	Show   ShowCmd   `cmd:"" help:"Show the workout recorded for one booking."`
	Export ExportCmd `cmd:"" help:"Export workouts to a JSON file or S3."`
	Browse BrowseCmd `cmd:"" help:"Browse workouts interactively."`
}
