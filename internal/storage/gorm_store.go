package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/scheduling"
)

// GormStore implements scheduling.Store on top of gorm. Soft-deleted rows
// (cancelled appointments) are excluded from every query by gorm's DeletedAt
// handling, which is exactly the "active" semantics the core expects.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

// NewGormStore creates a store bound to db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindActiveByDateTime(date, slot string) ([]models.Appointment, error) {
	query := s.db.Where("date = ? AND time = ?", date, slot)
	if s.inTx {
		// Lock the slot's rows so two concurrent bookings cannot both pass
		// the capacity re-check.
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) FindActiveByIdentityWindow(date, from, to string, id scheduling.Identity) ([]models.Appointment, error) {
	query := s.db.Where("date = ? AND time >= ? AND time <= ?", date, from, to)
	switch id.Kind {
	case scheduling.IdentityEmail:
		query = query.Where("email = ?", id.Value)
	case scheduling.IdentityCPF:
		query = query.Where("cpf = ?", id.Value)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *GormStore) FindActiveByUUID(uuid string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.First(&appointment, "uuid = ?", uuid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (s *GormStore) FindClosedDay(date string) (*models.ClosedDay, error) {
	var day models.ClosedDay
	err := s.db.First(&day, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *GormStore) Insert(a *models.Appointment) error {
	return s.db.Create(a).Error
}

func (s *GormStore) Update(a *models.Appointment) error {
	return s.db.Save(a).Error
}

func (s *GormStore) SoftDelete(a *models.Appointment) error {
	return s.db.Delete(a).Error
}

// Transact runs fn inside a database transaction; the store handed to fn
// issues its reads with row locks.
func (s *GormStore) Transact(fn func(tx scheduling.Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, inTx: true})
	})
}
