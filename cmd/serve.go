package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/server"
	"github.com/user/setlist-archive-cli/view"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the archive page on localhost",
	Long: `Serve the archive as a web page: the date tabs, the filter with
autocomplete and the connector drawing. Clicking a song plays it in mpv on
this machine and the page follows the playing song.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		noPlayer, _ := cmd.Flags().GetBool("no-player")
		if port == "" {
			port = cfg.Server.Port
		}

		a, pending, err := loadArchive()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var players view.PlayerFactory
		if !noPlayer {
			players = mpvPlayers()
		}
		ctrl := newController(a, pending, players, timeutil.RealClock{})
		wait := startController(ctx, ctrl)
		defer func() {
			stop()
			wait()
		}()

		if err := ctrl.Navigate(archive.Route{}); err != nil {
			return err
		}

		if slog.Default().Enabled(ctx, slog.LevelDebug) {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}
		fmt.Printf("Serving %d performances on http://localhost:%s\n", len(a.Performances), port)
		return serve(ctx, ctrl, port)
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config, 8080)")
	serveCmd.Flags().Bool("no-player", false, "Do not launch mpv; clicks only update the page")
	rootCmd.AddCommand(serveCmd)
}

// serve runs the web server for session until ctx ends.
func serve(ctx context.Context, session server.Session, port string) error {
	srv := server.New(session, slog.Default().With("component", "server"))
	return srv.Start(ctx, ":"+port)
}
