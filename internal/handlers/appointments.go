package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"scheduling-app-server/internal/config"
	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/scheduling"
	"scheduling-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB        *gorm.DB
	Store     scheduling.Store
	Validator *scheduling.Validator
	Lifecycle *scheduling.Lifecycle
	Cfg       *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, store scheduling.Store, validator *scheduling.Validator, lifecycle *scheduling.Lifecycle, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Store: store, Validator: validator, Lifecycle: lifecycle, Cfg: cfg}
}

// CreateAppointmentRequest represents the request body for booking a visit.
// Field-level rules live in the scheduling validator so rejections come back
// as one accumulated set of per-field messages, not bind errors.
type CreateAppointmentRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	CPF              string `json:"cpf"`
	RG               string `json:"rg"`
	Phone            string `json:"phone"`
	Nationality      string `json:"nationality"`
	GroupNationality string `json:"groupNationality"`
	Disability       bool   `json:"disability"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	IsGroup          bool   `json:"isGroup"`
	PartySize        int    `json:"partySize"`
	Note             string `json:"note"`
}

// CreateAppointment handles booking a new visit slot.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	validated, fieldErrors, err := h.Validator.Validate(scheduling.Submission{
		Name:             req.Name,
		Email:            req.Email,
		CPF:              req.CPF,
		RG:               req.RG,
		Phone:            req.Phone,
		Nationality:      req.Nationality,
		GroupNationality: req.GroupNationality,
		Disability:       req.Disability,
		Date:             req.Date,
		Time:             req.Time,
		IsGroup:          req.IsGroup,
		PartySize:        req.PartySize,
		Note:             req.Note,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to validate appointment: "+err.Error())
		return
	}
	if len(fieldErrors) > 0 {
		utils.ValidationFailed(c, fieldErrors)
		return
	}

	appointment, err := h.Lifecycle.Create(validated)
	if err != nil {
		var capErr *scheduling.CapacityError
		if errors.As(err, &capErr) {
			// A concurrent booking filled the slot between validation and
			// commit; report it like any other capacity rejection.
			utils.ValidationFailed(c, map[string][]string{
				"partySize": {fmt.Sprintf(
					"Capacity exceeded: %d people already booked for %s. Only %d spots remaining.",
					capErr.Occupancy, capErr.Time, capErr.Remaining)},
			})
			return
		}
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments handles listing appointments, optionally filtered by date
// and status.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	query := h.DB.Order("date asc, time asc")

	if date := c.Query("date"); date != "" {
		if _, err := time.Parse(scheduling.DateLayout, date); err != nil {
			utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByUUID handles fetching a single appointment by its external
// identifier.
func (h *AppointmentHandler) GetAppointmentByUUID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		utils.BadRequest(c, "Invalid appointment UUID format")
		return
	}

	appointment, err := h.Store.FindActiveByUUID(id.String())
	if err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}
	if appointment == nil {
		utils.NotFound(c, "Appointment not found")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// CancelAppointmentRequest carries the optional cancellation note.
type CancelAppointmentRequest struct {
	Note string `json:"note"`
}

// CancelAppointment handles cancelling an active appointment.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		utils.BadRequest(c, "Invalid appointment UUID format")
		return
	}

	var req CancelAppointmentRequest
	// The note body is optional; an empty body cancels without one.
	_ = c.ShouldBindJSON(&req)

	appointment, err := h.Lifecycle.Cancel(id.String(), req.Note)
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
			return
		}
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appointment)
}

// slotAvailability is one row of the availability response.
type slotAvailability struct {
	Time      string `json:"time"`
	Remaining int    `json:"remaining"`
}

// GetAvailability reports per-hour remaining capacity for a date, or that
// the date is blocked (Monday or administratively closed).
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse(scheduling.DateLayout, dateStr)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	policy := scheduling.NewCalendarPolicy(h.Store)
	bookable, reason, err := policy.IsBookable(date)
	if err != nil {
		utils.InternalServerError(c, "Failed to check calendar: "+err.Error())
		return
	}
	if !bookable {
		utils.Success(c, "Date is blocked", gin.H{
			"date":    dateStr,
			"blocked": true,
			"reason":  reason,
			"slots":   []slotAvailability{},
		})
		return
	}

	ledger := scheduling.NewCapacityLedger(h.Store)
	slots := make([]slotAvailability, 0, scheduling.LastSlotHour-scheduling.FirstSlotHour+1)
	for hour := scheduling.FirstSlotHour; hour <= scheduling.LastSlotHour; hour++ {
		slot := fmt.Sprintf("%02d:00", hour)
		remaining, err := ledger.RemainingSlots(dateStr, slot)
		if err != nil {
			utils.InternalServerError(c, "Failed to compute availability: "+err.Error())
			return
		}
		slots = append(slots, slotAvailability{Time: slot, Remaining: remaining})
	}

	utils.Success(c, "Availability fetched successfully", gin.H{
		"date":    dateStr,
		"blocked": false,
		"slots":   slots,
	})
}

// GetDaySummary returns booking and visitor totals for one date.
func (h *AppointmentHandler) GetDaySummary(c *gin.Context) {
	dateStr := c.Query("date")
	if _, err := time.Parse(scheduling.DateLayout, dateStr); err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var bookings int64
	if err := h.DB.Model(&models.Appointment{}).Where("date = ?", dateStr).Count(&bookings).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	var people int64
	if err := h.DB.Model(&models.Appointment{}).Where("date = ?", dateStr).
		Select("COALESCE(SUM(party_size), 0)").Scan(&people).Error; err != nil {
		utils.InternalServerError(c, "Failed to sum party sizes: "+err.Error())
		return
	}

	utils.Success(c, "Day summary fetched successfully", gin.H{
		"date":          dateStr,
		"totalBookings": bookings,
		"totalPeople":   people,
	})
}

// hourlyTotal is one row of the report's per-hour distribution.
type hourlyTotal struct {
	Time  string `json:"time"`
	Total int    `json:"total"`
}

// GetReport returns day and month visitor totals plus the per-hour
// distribution for the reference date.
func (h *AppointmentHandler) GetReport(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse(scheduling.DateLayout, dateStr)
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	var dayTotal int64
	if err := h.DB.Model(&models.Appointment{}).Where("date = ?", dateStr).
		Select("COALESCE(SUM(party_size), 0)").Scan(&dayTotal).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute day total: "+err.Error())
		return
	}

	monthPrefix := date.Format("2006-01") + "%"
	var monthTotal int64
	if err := h.DB.Model(&models.Appointment{}).Where("date LIKE ?", monthPrefix).
		Select("COALESCE(SUM(party_size), 0)").Scan(&monthTotal).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute month total: "+err.Error())
		return
	}

	var distribution []hourlyTotal
	if err := h.DB.Model(&models.Appointment{}).Where("date = ?", dateStr).
		Select("time, COALESCE(SUM(party_size), 0) AS total").
		Group("time").Order("time").Scan(&distribution).Error; err != nil {
		utils.InternalServerError(c, "Failed to compute distribution: "+err.Error())
		return
	}

	utils.Success(c, "Report generated successfully", gin.H{
		"referenceDate": dateStr,
		"dayTotal":      dayTotal,
		"monthTotal":    monthTotal,
		"byHour":        distribution,
	})
}

// CheckIn validates a scanned QR code and records arrival punctuality.
func (h *AppointmentHandler) CheckIn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		utils.BadRequest(c, "Invalid QR code payload")
		return
	}

	result, err := h.Lifecycle.CheckIn(id.String())
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrNotFound):
			utils.NotFound(c, "QR code invalid or appointment not found")
		case errors.Is(err, scheduling.ErrExpiredWindow):
			utils.UnprocessableEntity(c, "QR code expired: the visit window has already closed")
		default:
			utils.InternalServerError(c, "Failed to validate QR code: "+err.Error())
		}
		return
	}

	const stamp = "02/01/2006 15:04"
	utils.Success(c, "QR code valid", gin.H{
		"status":       result.Appointment.Status,
		"statusDetail": checkInDetail(result.Appointment.Status),
		"milestones": gin.H{
			"arrival":     result.Arrival.Format(stamp),
			"windowStart": result.WindowStart.Format(stamp),
			"windowEnd":   result.WindowEnd.Format(stamp),
			"lateLimit":   result.LateLimit.Format(stamp),
		},
		"appointment": result.Appointment,
	})
}

func checkInDetail(status models.AppointmentStatus) string {
	switch status {
	case models.StatusArrivedOnTime:
		return "Arrived at or before the slot start."
	case models.StatusArrivedLate:
		return "Arrived after the start with enough time left for the visit."
	case models.StatusArrivedTooLate:
		return "Arrived with less than 20 minutes left in the visit window."
	default:
		return ""
	}
}

// ConfirmEntryRequest identifies the appointment whose entry is confirmed.
type ConfirmEntryRequest struct {
	UUID string `json:"uuid" binding:"required,uuid"`
}

// ConfirmEntry records the staff-confirmed entry time for an appointment.
func (h *AppointmentHandler) ConfirmEntry(c *gin.Context) {
	var req ConfirmEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Lifecycle.ConfirmEntry(req.UUID)
	if err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
			return
		}
		utils.InternalServerError(c, "Failed to confirm entry: "+err.Error())
		return
	}

	utils.Success(c, "Entry confirmed successfully", appointment)
}
