package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/tui"
	"github.com/user/setlist-archive-cli/tui/forms"
)

var playCmd = &cobra.Command{
	Use:   "play [date]",
	Short: "Browse and play the archive in the terminal",
	Long: `Open the archive in a terminal UI. Pick a performance with the arrow keys,
filter with /, and press Enter on a song to play it in mpv. Without a date a
picker is shown when running in a terminal.

With --http the same session is also served as a web page, so the browser
and the terminal show the same playing song.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		httpPort, _ := cmd.Flags().GetString("http")
		logPath, _ := cmd.Flags().GetString("log")

		a, pending, err := loadArchive()
		if err != nil {
			return err
		}

		date := ""
		if len(args) == 1 {
			date = args[0]
			if !a.Has(date) {
				return fmt.Errorf("no performance on %s", date)
			}
		} else if isTerminal(os.Stdin) && isTerminal(os.Stdout) {
			date = a.Latest()
			headings := make(map[string]string, len(a.Performances))
			for d, p := range a.Performances {
				headings[d] = p.Heading()
			}
			if err := forms.NewDatePicker(a.Tabs(pending), headings, &date).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return fmt.Errorf("failed to pick a performance: %w", err)
			}
		}

		logFile, err := openLogFile(logPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		setupLogging(logFile)

		ctx, cancel := context.WithCancel(cmd.Context())
		ctrl := newController(a, pending, mpvPlayers(), timeutil.RealClock{})
		wait := startController(ctx, ctrl)
		defer func() {
			cancel()
			wait()
		}()

		if err := ctrl.Navigate(archive.Route{Date: date}); err != nil {
			return err
		}

		if httpPort != "" {
			gin.SetMode(gin.ReleaseMode)
			go func() {
				if err := serve(ctx, ctrl, httpPort); err != nil {
					slog.Error("web server stopped", "error", err)
				}
			}()
		}

		return tui.Run(ctrl)
	},
}

func init() {
	playCmd.Flags().String("http", "", "Also serve the session as a web page on this port")
	playCmd.Flags().String("log", "", "Log file (default play.log next to the catalog)")
	rootCmd.AddCommand(playCmd)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// openLogFile opens the file that takes the logs while the TUI owns the
// screen.
func openLogFile(path string) (*os.File, error) {
	if path == "" {
		dbPath, err := catalogPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate log file: %w", err)
		}
		path = filepath.Join(filepath.Dir(dbPath), "play.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
