package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/user/setlist-archive-cli/archive"
	"github.com/user/setlist-archive-cli/db"
	"github.com/user/setlist-archive-cli/mpv"
	"github.com/user/setlist-archive-cli/pkg/timeutil"
	"github.com/user/setlist-archive-cli/playback"
	"github.com/user/setlist-archive-cli/server"
	"github.com/user/setlist-archive-cli/view"
)

// catalogPath returns the database file from the config, or the default.
func catalogPath() (string, error) {
	if cfg != nil && cfg.Database != "" {
		return cfg.Database, nil
	}
	return db.DefaultPath()
}

func openDatabase() (*sql.DB, error) {
	path, err := catalogPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate catalog: %w", err)
	}
	database, err := db.OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	return database, nil
}

// dataFile is the performances JSON to read, or empty for the catalog.
func dataFile() string {
	if dataPath != "" {
		return dataPath
	}
	if cfg != nil {
		return cfg.DataFile
	}
	return ""
}

// loadArchive reads the performances from --data or the catalog and returns
// them with the pending dates of the config and the catalog merged.
func loadArchive() (*archive.Archive, []string, error) {
	var pending []string
	if cfg != nil {
		pending = append(pending, cfg.PendingDates...)
	}

	if path := dataFile(); path != "" {
		a, err := archive.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		return a, pending, nil
	}

	database, err := openDatabase()
	if err != nil {
		return nil, nil, err
	}
	defer database.Close()

	a, err := db.LoadArchive(database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if len(a.Performances) == 0 {
		return nil, nil, fmt.Errorf("the catalog is empty; run import or pass --data")
	}
	dates, err := db.SelectPendingDates(database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read pending dates: %w", err)
	}
	for _, d := range dates {
		pending = append(pending, d.Date)
	}
	return a, pending, nil
}

// newController builds a view controller over a with the configured
// catalog, layout and players.
func newController(a *archive.Archive, pending []string, players view.PlayerFactory, clock timeutil.Clock) *view.Controller {
	return view.New(a, view.Options{
		Catalog:     archive.NewCatalog(a, cfg.Countries, cfg.SongSlugs),
		DefaultDate: cfg.DefaultDate,
		Pending:     pending,
		Width:       cfg.Layout.Width,
		Tuning:      cfg.Layout.Tuning(),
		Players:     players,
		Clock:       clock,
		Logger:      slog.Default(),
		EntryHref:   server.EntryHref,
		TabHref:     server.TabHref,
	})
}

// startController runs c's loop until ctx ends. The returned function
// waits for the loop to exit.
func startController(ctx context.Context, c *view.Controller) (wait func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("controller stopped", "error", err)
		}
	}()
	return func() { <-done }
}

// mpvPlayers creates one mpv process per recording, launched on first use.
func mpvPlayers() view.PlayerFactory {
	socketDir := cfg.Player.SocketDir
	if socketDir != "" {
		socketDir = filepath.Clean(socketDir)
	}
	return func(v *archive.Video, cb view.Callbacks) (playback.Player, error) {
		return mpv.NewPlayer(v.ID, v.WatchURL(), cb.Ready, cb.StateChange, mpv.PlayerOptions{
			SocketDir: socketDir,
			ExtraArgs: cfg.Player.MpvArgs,
			Logger:    slog.Default().With("component", "mpv"),
		}), nil
	}
}
