package scheduling

import "time"

// Clock abstracts the current time so lead-time and check-in rules can be
// tested deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// SystemClock returns a Clock reading wall-clock time in loc.
func SystemClock(loc *time.Location) Clock {
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
