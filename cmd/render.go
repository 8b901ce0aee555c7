package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/pkg/export"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the archive page as SVG",
	Long: `Lay out the view a route describes and write it as SVG: the date tabs,
the shown cards and every connector. Without --date or --song the default
performance is drawn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		song, _ := cmd.Flags().GetString("song")
		output, _ := cmd.Flags().GetString("output")

		a, pending, err := loadArchive()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		ctrl := newController(a, pending, nil, timeutil.NewManualClock())
		wait := startController(ctx, ctrl)
		defer func() {
			cancel()
			wait()
		}()

		if err := ctrl.Navigate(archive.Route{Date: date, Song: song}); err != nil {
			return err
		}
		snap, err := ctrl.Snapshot()
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := render.WriteSVG(&buf, snap.Page, snap.Scene); err != nil {
			return fmt.Errorf("failed to render: %w", err)
		}
		if output == "" || output == "-" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		path := export.OutputPath(output, snap.Route)
		if err := export.WriteFile(path, buf.Bytes()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%s)\n", path, "/"+snap.Route.String())
		return nil
	},
}

func init() {
	renderCmd.Flags().String("date", "", "Performance date (YYYYMMDD)")
	renderCmd.Flags().String("song", "", "Song slug to filter by")
	renderCmd.Flags().StringP("output", "o", "", "Output file or directory (default stdout)")
	rootCmd.AddCommand(renderCmd)
}
