package entitlement

import "time"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// daysUntil counts started 24h days left before deadline. Past deadlines
// count started days since, so any instant after the deadline is negative.
func daysUntil(deadline, now time.Time) int {
	d := deadline.Sub(now)
	days := d / (24 * time.Hour)
	switch rem := d % (24 * time.Hour); {
	case rem > 0:
		days++
	case rem < 0:
		days--
	}
	return int(days)
}
