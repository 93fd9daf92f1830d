package format

import "time"

// filetimeEpochDelta is the distance between 1601-01-01 and 1970-01-01 in
// 100ns FILETIME ticks.
const filetimeEpochDelta = 116444736000000000

// FiletimeToTime converts a FILETIME tick count to UTC. Values at or before
// the Unix epoch clamp to it.
func FiletimeToTime(v uint64) time.Time {
	if v <= filetimeEpochDelta {
		return time.Unix(0, 0).UTC()
	}
	ticks := v - filetimeEpochDelta
	return time.Unix(int64(ticks/1e7), int64(ticks%1e7)*100).UTC()
}

// TimeToFiletime is the inverse of FiletimeToTime.
func TimeToFiletime(t time.Time) uint64 {
	ns := t.UnixNano()
	if ns < 0 {
		return filetimeEpochDelta
	}
	return uint64(ns)/100 + filetimeEpochDelta
}
