package db

import (
	"database/sql"
	"fmt"

	"github.com/user/setlist-archive-cli/archive"
)

// ImportArchive writes every performance of a into the catalog inside one
// transaction. A performance that already exists is replaced, children
// included. Returns the number of performances written.
func ImportArchive(database *sql.DB, a *archive.Archive) (int, error) {
	tx, err := database.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, date := range a.Dates() {
		if err := importPerformance(tx, date, a.Performances[date]); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(a.Performances), nil
}

func importPerformance(tx *sql.Tx, date string, p archive.Performance) error {
	_, err := tx.Exec(UpsertPerformanceSQL, date, p.Venue, p.City, p.State, p.Country, p.Complete, p.MediaType)
	if err != nil {
		return fmt.Errorf("upsert performance %s: %w", date, err)
	}
	if _, err := tx.Exec(DeletePerformanceVideosSQL, date); err != nil {
		return fmt.Errorf("delete videos of %s: %w", date, err)
	}
	if _, err := tx.Exec(DeletePerformanceEntriesSQL, date); err != nil {
		return fmt.Errorf("delete setlist of %s: %w", date, err)
	}

	for i, v := range p.Videos {
		if _, err := tx.Exec(InsertVideoSQL, date, i, v.ID, v.YouTubeID, v.Label); err != nil {
			return fmt.Errorf("insert video %s of %s: %w", v.ID, date, err)
		}
	}
	for i, item := range p.Setlist {
		var start interface{}
		if item.Start != nil {
			start = *item.Start
		}
		_, err := tx.Exec(InsertSetlistEntrySQL, date, i, item.Num, item.Title, item.Highlight, item.Partial, item.VideoID, start, item.Timestamp)
		if err != nil {
			return fmt.Errorf("insert setlist entry %d of %s: %w", i, date, err)
		}
	}
	return nil
}

// SelectPerformances returns all performances ordered by date.
func SelectPerformances(database *sql.DB) ([]Performance, error) {
	rows, err := database.Query(SelectPerformancesSQL)
	if err != nil {
		return nil, fmt.Errorf("select performances: %w", err)
	}
	defer rows.Close()

	var out []Performance
	for rows.Next() {
		var p Performance
		if err := rows.Scan(&p.Date, &p.Venue, &p.City, &p.State, &p.Country, &p.Complete, &p.MediaType); err != nil {
			return nil, fmt.Errorf("scan performance: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SelectVideos returns all videos ordered by performance and position.
func SelectVideos(database *sql.DB) ([]Video, error) {
	rows, err := database.Query(SelectVideosSQL)
	if err != nil {
		return nil, fmt.Errorf("select videos: %w", err)
	}
	defer rows.Close()

	var out []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.PerformanceDate, &v.Position, &v.Key, &v.YouTubeID, &v.Label); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// SelectSetlistEntries returns all setlist entries ordered by performance and position.
func SelectSetlistEntries(database *sql.DB) ([]SetlistEntry, error) {
	rows, err := database.Query(SelectSetlistEntriesSQL)
	if err != nil {
		return nil, fmt.Errorf("select setlist entries: %w", err)
	}
	defer rows.Close()

	var out []SetlistEntry
	for rows.Next() {
		var e SetlistEntry
		var start sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.PerformanceDate, &e.Position, &e.Num, &e.Title, &e.Highlight, &e.Partial, &e.VideoKey, &start, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan setlist entry: %w", err)
		}
		if start.Valid {
			s := start.Float64
			e.Start = &s
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LoadArchive rebuilds the performances document from the catalog.
func LoadArchive(database *sql.DB) (*archive.Archive, error) {
	performances, err := SelectPerformances(database)
	if err != nil {
		return nil, err
	}
	videos, err := SelectVideos(database)
	if err != nil {
		return nil, err
	}
	entries, err := SelectSetlistEntries(database)
	if err != nil {
		return nil, err
	}

	a := &archive.Archive{Performances: make(map[string]archive.Performance, len(performances))}
	for _, p := range performances {
		a.Performances[p.Date] = archive.Performance{
			Venue:     p.Venue,
			City:      p.City,
			State:     p.State,
			Country:   p.Country,
			Complete:  p.Complete,
			MediaType: p.MediaType,
		}
	}
	for _, v := range videos {
		p, ok := a.Performances[v.PerformanceDate]
		if !ok {
			continue
		}
		p.Videos = append(p.Videos, archive.VideoItem{ID: v.Key, YouTubeID: v.YouTubeID, Label: v.Label})
		a.Performances[v.PerformanceDate] = p
	}
	for _, e := range entries {
		p, ok := a.Performances[e.PerformanceDate]
		if !ok {
			continue
		}
		p.Setlist = append(p.Setlist, archive.SetlistItem{
			Num:       e.Num,
			Title:     e.Title,
			Highlight: e.Highlight,
			Partial:   e.Partial,
			VideoID:   e.VideoKey,
			Start:     e.Start,
			Timestamp: e.Timestamp,
		})
		a.Performances[e.PerformanceDate] = p
	}
	return a, nil
}

// AddPendingDate records a date whose recording has not been added yet.
func AddPendingDate(database *sql.DB, date, note string) error {
	if _, err := database.Exec(InsertPendingDateSQL, date, note); err != nil {
		return fmt.Errorf("insert pending date: %w", err)
	}
	return nil
}

// DeletePendingDate removes a pending date.
func DeletePendingDate(database *sql.DB, date string) error {
	if _, err := database.Exec(DeletePendingDateSQL, date); err != nil {
		return fmt.Errorf("delete pending date: %w", err)
	}
	return nil
}

// SelectPendingDates returns the pending dates in ascending order.
func SelectPendingDates(database *sql.DB) ([]PendingDate, error) {
	rows, err := database.Query(SelectPendingDatesSQL)
	if err != nil {
		return nil, fmt.Errorf("select pending dates: %w", err)
	}
	defer rows.Close()

	var out []PendingDate
	for rows.Next() {
		var p PendingDate
		if err := rows.Scan(&p.Date, &p.Note); err != nil {
			return nil, fmt.Errorf("scan pending date: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
