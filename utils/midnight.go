package utils

import "time"

// MidnightEpoch returns the start of the current calendar day (local time)
// in epoch milliseconds.
func MidnightEpoch(now time.Time) int64 {
	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	return midnight.UnixMilli()
}
