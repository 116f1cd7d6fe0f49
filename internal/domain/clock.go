package domain

import "time"

// now returns the current time at the store's timestamp precision.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// touch returns a timestamp strictly later than prev.
func touch(prev time.Time) time.Time {
	t := now()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
