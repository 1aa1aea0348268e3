package goparquet

import (
	"encoding/binary"
	"time"
)

// julianDayUnixEpoch is the Julian day number of 1970-01-01, the anchor
// INT96's (nanoseconds-of-day, Julian day) split encoding is defined
// against.
const (
	julianDayUnixEpoch = 2440588
	secondsPerDay      = 24 * 60 * 60
)

// Int96ToTime converts a legacy INT96 physical value (nanoseconds-of-day
// followed by a Julian day number, both little-endian) into a time.Time in
// UTC. statistics.go's cmpInt96 uses it to order INT96 min/max by decoded
// instant rather than by raw byte pattern.
func Int96ToTime(v [12]byte) time.Time {
	nanosOfDay := binary.LittleEndian.Uint64(v[:8])
	julianDay := binary.LittleEndian.Uint32(v[8:])
	midnight := time.Date(1970, time.January, int(julianDay)-julianDayUnixEpoch+1, 0, 0, 0, 0, time.UTC)
	return midnight.Add(time.Duration(nanosOfDay))
}

// TimeToInt96 encodes t as a legacy INT96 physical value.
func TimeToInt96(t time.Time) [12]byte {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	nanosOfDay := uint64(t.Sub(midnight))
	julianDay := uint32(midnight.Unix()/secondsPerDay) + julianDayUnixEpoch

	var v [12]byte
	binary.LittleEndian.PutUint64(v[:8], nanosOfDay)
	binary.LittleEndian.PutUint32(v[8:], julianDay)
	return v
}
