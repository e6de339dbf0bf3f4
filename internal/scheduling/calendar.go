package scheduling

import "time"

// Reasons a date can be refused by the calendar policy.
const (
	ReasonMonday    = "monday"
	ReasonClosedDay = "closed-day"
)

// CalendarPolicy decides whether a date is bookable at all: the office is
// closed every Monday, and administrators can close further dates.
type CalendarPolicy struct {
	store Store
}

func NewCalendarPolicy(store Store) *CalendarPolicy {
	return &CalendarPolicy{store: store}
}

// IsBookable reports whether date accepts bookings. When it does not, the
// returned reason is one of ReasonMonday or ReasonClosedDay.
func (p *CalendarPolicy) IsBookable(date time.Time) (bool, string, error) {
	if date.Weekday() == time.Monday {
		return false, ReasonMonday, nil
	}

	closed, err := p.store.FindClosedDay(date.Format(DateLayout))
	if err != nil {
		return false, "", err
	}
	if closed != nil && closed.BlocksWholeDay() {
		return false, ReasonClosedDay, nil
	}

	return true, "", nil
}
