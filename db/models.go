package db

// Performance represents a row in the performances table.
type Performance struct {
	Date      string
	Venue     string
	City      string
	State     string
	Country   string
	Complete  bool
	MediaType string
}

// Video represents a row in the videos table.
type Video struct {
	ID              int64
	PerformanceDate string
	Position        int
	Key             string
	YouTubeID       string
	Label           string
}

// SetlistEntry represents a row in the setlist_entries table.
// Start is nil for songs without a recording.
type SetlistEntry struct {
	ID              int64
	PerformanceDate string
	Position        int
	Num             int
	Title           string
	Highlight       bool
	Partial         bool
	VideoKey        string
	Start           *float64
	Timestamp       string
}

// PendingDate represents a row in the pending_dates table.
type PendingDate struct {
	Date string
	Note string
}
