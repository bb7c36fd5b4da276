package models

import "time"

// HistorySource records how a product ended up in the user's history.
type HistorySource string

const (
	HistorySourceScan   HistorySource = "scan"
	HistorySourceSearch HistorySource = "search"
	HistorySourceDiary  HistorySource = "diary"
)

// HistoryEntry is a most-recently-seen product record, one row per
// (UserID, ProductID); repeated lookups bump LastSeenAt.
type HistoryEntry struct {
	UserID     string
	ProductID  string
	Source     HistorySource
	LastSeenAt time.Time

	// Denormalized for listing without a second query.
	ProductName string
	NutriScore  string
}
