package scheduling

import "fmt"

// proximityHalfWidthMinutes is the half-width of the window used to block
// near-duplicate bookings. With 60-minute slots, 59 minutes means bookings
// exactly one hour apart are allowed and anything closer is rejected.
const proximityHalfWidthMinutes = 59

// ProximityGuard prevents one requester from holding two overlapping visit
// slots on the same day.
type ProximityGuard struct {
	store Store
}

func NewProximityGuard(store Store) *ProximityGuard {
	return &ProximityGuard{store: store}
}

// HasNearbyAppointment reports whether the identity already holds a
// non-cancelled appointment within ±59 minutes (inclusive) of slot on date.
func (g *ProximityGuard) HasNearbyAppointment(date, slot string, id Identity) (bool, error) {
	minutes, err := minutesOfDay(slot)
	if err != nil {
		return false, err
	}

	from := minutes - proximityHalfWidthMinutes
	if from < 0 {
		from = 0
	}
	to := minutes + proximityHalfWidthMinutes
	if to > 23*60+59 {
		to = 23*60 + 59
	}

	nearby, err := g.store.FindActiveByIdentityWindow(date, formatMinutes(from), formatMinutes(to), id)
	if err != nil {
		return false, err
	}
	return len(nearby) > 0, nil
}

// minutesOfDay parses a normalized HH:MM value into minutes since midnight.
func minutesOfDay(slot string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(slot, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", slot, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", slot)
	}
	return h*60 + m, nil
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
