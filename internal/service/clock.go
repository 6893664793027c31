package service

import "time"

// now truncates to microseconds so values survive a round trip through postgres unchanged.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
