package scheduling

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"scheduling-app-server/internal/models"
)

// memStore is an in-memory Store for tests. Soft-deleted appointments stay in
// the slice but are invisible to the Find methods, mirroring gorm's DeletedAt
// behavior.
type memStore struct {
	appointments []models.Appointment
	closedDays   []models.ClosedDay
	nextID       uint
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (s *memStore) FindActiveByDateTime(date, slot string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appointments {
		if !a.DeletedAt.Valid && a.Date == date && a.Time == slot {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) FindActiveByIdentityWindow(date, from, to string, id Identity) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appointments {
		if a.DeletedAt.Valid || a.Date != date {
			continue
		}
		if a.Time < from || a.Time > to {
			continue
		}
		switch id.Kind {
		case IdentityEmail:
			if a.Email == id.Value {
				out = append(out, a)
			}
		case IdentityCPF:
			if a.CPF == id.Value {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (s *memStore) FindActiveByUUID(uuidStr string) (*models.Appointment, error) {
	for i := range s.appointments {
		a := s.appointments[i]
		if !a.DeletedAt.Valid && a.UUID == uuidStr {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindClosedDay(date string) (*models.ClosedDay, error) {
	for i := range s.closedDays {
		if s.closedDays[i].Date == date {
			found := s.closedDays[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (s *memStore) Insert(a *models.Appointment) error {
	a.ID = s.nextID
	s.nextID++
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	s.appointments = append(s.appointments, *a)
	return nil
}

func (s *memStore) Update(a *models.Appointment) error {
	for i := range s.appointments {
		if s.appointments[i].ID == a.ID {
			s.appointments[i] = *a
			return nil
		}
	}
	return nil
}

func (s *memStore) SoftDelete(a *models.Appointment) error {
	for i := range s.appointments {
		if s.appointments[i].ID == a.ID {
			s.appointments[i].DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
			a.DeletedAt = s.appointments[i].DeletedAt
			return nil
		}
	}
	return nil
}

func (s *memStore) Transact(fn func(tx Store) error) error {
	return fn(s)
}

// seed inserts an appointment directly, bypassing validation.
func (s *memStore) seed(a models.Appointment) models.Appointment {
	if a.Status == "" {
		a.Status = models.StatusUnconfirmed
	}
	_ = s.Insert(&a)
	return s.appointments[len(s.appointments)-1]
}

// fixedClock returns a preset instant and can be advanced by tests.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

// stubNotifier records which notifications were requested.
type stubNotifier struct {
	confirmations []string
	cancellations []string
}

func (n *stubNotifier) SendAppointmentConfirmation(a *models.Appointment) {
	n.confirmations = append(n.confirmations, a.UUID)
}

func (n *stubNotifier) SendCancellationNotice(a *models.Appointment) {
	n.cancellations = append(n.cancellations, a.UUID)
}
