package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/user/setlist-archive-cli/config"
	"github.com/user/setlist-archive-cli/deps"
	"github.com/user/setlist-archive-cli/db"
)

var Version = "0.1.0"

var (
	// configPath and dataPath back the persistent --config and --data flags.
	configPath string
	dataPath   string

	// cfg is loaded before any command runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "setlist-archive-cli",
	Short: "Browse a concert archive and play its recordings",
	Long: `setlist-archive-cli browses a personal concert archive: one card per
performance with its setlist, each song wired to the moment it starts in a
recording.

Features:
  - Date tabs, filtering by song, venue, city or country
  - Playback through mpv with the playing song followed live
  - A terminal UI (play) and a local web page (serve)
  - A SQLite catalog fed from performances JSON (import)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to locate config: %w", err)
			}
			path = p
		}
		c, err := config.LoadOrDefault(path)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", path, err)
		}
		cfg = c
		setupLogging(os.Stderr)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("setlist-archive-cli version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the players (mpv, yt-dlp) are installed and that the catalog database opens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true

		missing := map[string]*deps.DependencyError{}
		for _, err := range deps.CheckAll() {
			var depErr *deps.DependencyError
			if errors.As(err, &depErr) {
				missing[depErr.Name] = depErr
			}
		}
		for _, name := range []string{"mpv", "yt-dlp"} {
			if depErr, ok := missing[name]; ok {
				fmt.Printf("✗ %s: NOT FOUND\n", name)
				fmt.Printf("  Install from: %s\n", depErr.InstallURL)
				allGood = false
			} else {
				fmt.Printf("✓ %s: OK\n", name)
			}
		}

		database, err := openDatabase()
		if err != nil {
			fmt.Printf("✗ catalog: %v\n", err)
			allGood = false
		} else {
			version, err := db.SchemaVersion(database)
			database.Close()
			if err != nil {
				fmt.Printf("✗ catalog: %v\n", err)
				allGood = false
			} else {
				fmt.Printf("✓ catalog: OK (schema %d)\n", version)
			}
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/setlist-archive-cli/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Performances JSON to read instead of the catalog database")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

// setupLogging points the default slog logger at w with the configured level.
func setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if cfg != nil {
		level = slog.Level(cfg.LogLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
