package scheduling

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the referenced appointment does not exist or was
	// already cancelled.
	ErrNotFound = errors.New("appointment not found")

	// ErrExpiredWindow means a QR check-in was attempted after the visit
	// window closed.
	ErrExpiredWindow = errors.New("check-in window expired")
)

// CapacityError is returned when a booking would push a slot past its
// capacity. It carries the fresh occupancy numbers so callers can report
// exactly how many spots remain.
type CapacityError struct {
	Date      string
	Time      string
	Occupancy int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: %d people already booked for %s, only %d spots remaining",
		e.Occupancy, e.Time, e.Remaining)
}
