package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Performance queries

//go:embed sql/upsert_performance.sql
var UpsertPerformanceSQL string

//go:embed sql/select_performances.sql
var SelectPerformancesSQL string

// Performance child table queries

//go:embed sql/insert_video.sql
var InsertVideoSQL string

//go:embed sql/select_videos.sql
var SelectVideosSQL string

//go:embed sql/delete_performance_videos.sql
var DeletePerformanceVideosSQL string

//go:embed sql/insert_setlist_entry.sql
var InsertSetlistEntrySQL string

//go:embed sql/select_setlist_entries.sql
var SelectSetlistEntriesSQL string

//go:embed sql/delete_performance_entries.sql
var DeletePerformanceEntriesSQL string

// Pending date queries

//go:embed sql/insert_pending_date.sql
var InsertPendingDateSQL string

//go:embed sql/select_pending_dates.sql
var SelectPendingDatesSQL string

//go:embed sql/delete_pending_date.sql
var DeletePendingDateSQL string
