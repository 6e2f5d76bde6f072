package models

// DailyCount is one point of the per-zone usage statistics.
type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"charges_count"`
}
