package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusUnconfirmed    AppointmentStatus = "unconfirmed"
	StatusArrivedOnTime  AppointmentStatus = "arrived_on_time"
	StatusArrivedLate    AppointmentStatus = "arrived_late"
	StatusArrivedTooLate AppointmentStatus = "arrived_too_late"
	StatusCancelled      AppointmentStatus = "cancelled"
)

// Appointment represents a booked visit slot. Date and Time are kept in their
// normalized wire forms ("2006-01-02" and "15:04") so slot matching is exact.
type Appointment struct {
	BaseModel
	UUID             string            `gorm:"size:36;uniqueIndex" json:"uuid"`
	Name             string            `gorm:"size:255;not null" json:"name"`
	Email            string            `gorm:"size:255;index" json:"email"`
	CPF              string            `gorm:"size:11;index" json:"cpf"`
	RG               string            `gorm:"size:20" json:"rg"`
	Phone            string            `gorm:"size:11" json:"phone"`
	Nationality      string            `gorm:"size:20" json:"nationality"`
	GroupNationality string            `gorm:"size:20" json:"groupNationality,omitempty"`
	Disability       bool              `gorm:"default:false" json:"disability"`
	Date             string            `gorm:"size:10;index:idx_appointments_slot" json:"date"`
	Time             string            `gorm:"size:5;index:idx_appointments_slot" json:"time"`
	IsGroup          bool              `gorm:"default:false" json:"isGroup"`
	PartySize        int               `gorm:"default:1" json:"partySize"`
	Note             string            `gorm:"type:text" json:"note,omitempty"`
	Status           AppointmentStatus `gorm:"size:20;default:'unconfirmed'" json:"status"`

	CheckinTime        *time.Time `json:"checkinTime,omitempty"`
	EntryConfirmedTime *time.Time `json:"entryConfirmedTime,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns the external identifier.
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return nil
}

// SlotStart returns the wall-clock start of the visit in loc.
func (a *Appointment) SlotStart(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, loc)
}

// QRPayload is the value encoded into the visitor's QR code. Image rendering
// happens outside this service; only the identifier crosses the boundary.
func (a *Appointment) QRPayload() string {
	return a.UUID
}
