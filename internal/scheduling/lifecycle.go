package scheduling

import (
	"time"

	"scheduling-app-server/internal/models"
)

// Visit timing constants.
const (
	// SlotDuration is how long each visit window lasts.
	SlotDuration = 60 * time.Minute
	// LateArrivalThreshold marks the cut-off before the window end after
	// which an arrival is classified as too late.
	LateArrivalThreshold = 20 * time.Minute
)

// CheckInResult describes a successful QR validation: the classified
// appointment plus the window milestones used for the decision.
type CheckInResult struct {
	Appointment *models.Appointment
	Arrival     time.Time
	WindowStart time.Time
	WindowEnd   time.Time
	LateLimit   time.Time
}

// Lifecycle owns appointment state transitions: creation, cancellation and
// attendance confirmation. Capacity is re-checked atomically with the insert
// so concurrent bookings can never jointly exceed a slot.
type Lifecycle struct {
	store    Store
	notifier Notifier
	clock    Clock
	loc      *time.Location
}

func NewLifecycle(store Store, notifier Notifier, clock Clock, loc *time.Location) *Lifecycle {
	return &Lifecycle{store: store, notifier: notifier, clock: clock, loc: loc}
}

// Create persists a validated submission as a new unconfirmed appointment.
// The capacity check and the insert run in one transaction; if a competing
// booking filled the slot in the meantime, a *CapacityError with fresh
// occupancy numbers is returned. The confirmation mail (carrying the QR
// payload) is dispatched after commit and never blocks or fails the booking.
func (m *Lifecycle) Create(vs *ValidatedSubmission) (*models.Appointment, error) {
	appointment := &models.Appointment{
		Name:             vs.Name,
		Email:            vs.Email,
		CPF:              vs.CPF,
		RG:               vs.RG,
		Phone:            vs.Phone,
		Nationality:      vs.Nationality,
		GroupNationality: vs.GroupNationality,
		Disability:       vs.Disability,
		Date:             vs.Date,
		Time:             vs.Time,
		IsGroup:          vs.IsGroup,
		PartySize:        vs.PartySize,
		Note:             vs.Note,
		Status:           models.StatusUnconfirmed,
	}

	err := m.store.Transact(func(tx Store) error {
		occupancy, err := NewCapacityLedger(tx).OccupancyOf(vs.Date, vs.Time)
		if err != nil {
			return err
		}
		if occupancy+vs.PartySize > SlotCapacity {
			remaining := SlotCapacity - occupancy
			if remaining < 0 {
				remaining = 0
			}
			return &CapacityError{
				Date:      vs.Date,
				Time:      vs.Time,
				Occupancy: occupancy,
				Remaining: remaining,
			}
		}
		return tx.Insert(appointment)
	})
	if err != nil {
		return nil, err
	}

	m.notifier.SendAppointmentConfirmation(appointment)
	return appointment, nil
}

// Cancel marks the appointment cancelled, appends the note and soft-deletes
// the record so it stops counting towards slot occupancy. Returns ErrNotFound
// when no active appointment matches uuid (including repeat cancellations).
func (m *Lifecycle) Cancel(uuid, note string) (*models.Appointment, error) {
	appointment, err := m.store.FindActiveByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}

	if note != "" {
		if appointment.Note != "" {
			appointment.Note += "\n"
		}
		appointment.Note += note
	}
	appointment.Status = models.StatusCancelled

	if err := m.store.Update(appointment); err != nil {
		return nil, err
	}
	if err := m.store.SoftDelete(appointment); err != nil {
		return nil, err
	}

	m.notifier.SendCancellationNotice(appointment)
	return appointment, nil
}

// CheckIn validates a scanned QR code and classifies punctuality. The visit
// window is [slot start, slot start + 60min]; arriving after it closes is
// ErrExpiredWindow and leaves the appointment untouched.
func (m *Lifecycle) CheckIn(uuid string) (*CheckInResult, error) {
	appointment, err := m.store.FindActiveByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}

	start, err := appointment.SlotStart(m.loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(SlotDuration)
	lateLimit := end.Add(-LateArrivalThreshold)
	arrival := m.clock.Now()

	if arrival.After(end) {
		return nil, ErrExpiredWindow
	}

	switch {
	case !arrival.After(start):
		appointment.Status = models.StatusArrivedOnTime
	case !arrival.After(lateLimit):
		appointment.Status = models.StatusArrivedLate
	default:
		appointment.Status = models.StatusArrivedTooLate
	}

	checkin := arrival
	appointment.CheckinTime = &checkin
	if err := m.store.Update(appointment); err != nil {
		return nil, err
	}

	return &CheckInResult{
		Appointment: appointment,
		Arrival:     arrival,
		WindowStart: start,
		WindowEnd:   end,
		LateLimit:   lateLimit,
	}, nil
}

// ConfirmEntry records the staff-confirmed entry moment. Re-confirming just
// overwrites the timestamp.
func (m *Lifecycle) ConfirmEntry(uuid string) (*models.Appointment, error) {
	appointment, err := m.store.FindActiveByUUID(uuid)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrNotFound
	}

	now := m.clock.Now()
	appointment.EntryConfirmedTime = &now
	if err := m.store.Update(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}
