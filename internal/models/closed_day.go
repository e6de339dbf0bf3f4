package models

// ClosedDayCategory classifies an administrative calendar block.
type ClosedDayCategory string

const (
	CategoryFullBlock    ClosedDayCategory = "full_block"
	CategoryPartialBlock ClosedDayCategory = "partial_block"
	CategoryMaintenance  ClosedDayCategory = "maintenance"
	CategoryHoliday      ClosedDayCategory = "holiday"
)

// ClosedDay blocks (or partially restricts) a calendar date for booking.
// An empty StartTime/EndTime pair means the whole day.
type ClosedDay struct {
	BaseModel
	Date      string            `gorm:"size:10;index" json:"date"`
	StartTime string            `gorm:"size:5" json:"startTime,omitempty"`
	EndTime   string            `gorm:"size:5" json:"endTime,omitempty"`
	Category  ClosedDayCategory `gorm:"size:20;default:'full_block'" json:"category"`
	Note      string            `gorm:"size:500" json:"note,omitempty"`
}

// BlocksWholeDay reports whether this record forbids booking for the date.
// Partial blocks are informational only; every other category closes the day.
func (d *ClosedDay) BlocksWholeDay() bool {
	return d.Category != CategoryPartialBlock
}
