package util

import "time"

// FromUnix converts unix seconds to UTC time. Zero and negative values map to the zero time.
func FromUnix(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}
