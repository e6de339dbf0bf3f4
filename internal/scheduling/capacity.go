package scheduling

// SlotCapacity is the maximum number of visitors per (date, time) slot.
const SlotCapacity = 50

// CapacityLedger computes slot occupancy from stored appointments. Occupancy
// is the sum of party sizes over non-cancelled appointments at the exact
// normalized HH:MM slot; there is no fuzzy bucketing.
type CapacityLedger struct {
	store Store
}

func NewCapacityLedger(store Store) *CapacityLedger {
	return &CapacityLedger{store: store}
}

// OccupancyOf returns how many people are booked into the slot.
func (l *CapacityLedger) OccupancyOf(date, slot string) (int, error) {
	appointments, err := l.store.FindActiveByDateTime(date, slot)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, a := range appointments {
		total += a.PartySize
	}
	return total, nil
}

// RemainingSlots returns how many spots are still free in the slot.
func (l *CapacityLedger) RemainingSlots(date, slot string) (int, error) {
	occupancy, err := l.OccupancyOf(date, slot)
	if err != nil {
		return 0, err
	}
	if occupancy >= SlotCapacity {
		return 0, nil
	}
	return SlotCapacity - occupancy, nil
}

// CanAccommodate reports whether a party of partySize still fits.
func (l *CapacityLedger) CanAccommodate(date, slot string, partySize int) (bool, error) {
	occupancy, err := l.OccupancyOf(date, slot)
	if err != nil {
		return false, err
	}
	return occupancy+partySize <= SlotCapacity, nil
}
