package models

import "time"

// WeightLog is a body-weight measurement, one row per user per day (logging
// again on the same day overwrites the earlier value).
type WeightLog struct {
	UserID    string
	Day       string
	WeightKg  float64
	Note      string
	CreatedAt time.Time
}
