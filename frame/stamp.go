package frame

import "time"

// Stamp is a point in time expressed as nanoseconds, matching spec §9's
// "all internal time arithmetic uses 64-bit signed nanoseconds."
type Stamp int64

// StampFromTime converts a wall-clock time.Time to a Stamp.
func StampFromTime(t time.Time) Stamp {
	return Stamp(t.UnixNano())
}

// StampFromSeconds converts integer POSIX seconds — the wire format at the
// CLI/API boundary per spec §6.3 — to a nanosecond Stamp.
func StampFromSeconds(sec int64) Stamp {
	return Stamp(sec * int64(time.Second))
}

// Time converts back to a time.Time for interop with callers and the store.
func (s Stamp) Time() time.Time {
	return time.Unix(0, int64(s))
}

// Sub returns the absolute distance between two stamps, in nanoseconds.
func (s Stamp) Sub(o Stamp) int64 {
	d := int64(s) - int64(o)
	if d < 0 {
		return -d
	}
	return d
}
