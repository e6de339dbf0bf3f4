package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"scheduling-app-server/internal/models"
	"scheduling-app-server/internal/scheduling"
	"scheduling-app-server/internal/utils"
)

// ClosedDayHandler handles administrative calendar blocks.
type ClosedDayHandler struct {
	DB *gorm.DB
}

// NewClosedDayHandler creates a new ClosedDayHandler.
func NewClosedDayHandler(db *gorm.DB) *ClosedDayHandler {
	return &ClosedDayHandler{DB: db}
}

// ClosedDayRequest represents the request body for creating or updating a
// closed day.
type ClosedDayRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Category  string `json:"category" binding:"required,oneof=full_block partial_block maintenance holiday"`
	Note      string `json:"note"`
}

// validate checks the date and time window beyond what binding covers.
func (req *ClosedDayRequest) validate() string {
	if _, err := time.Parse(scheduling.DateLayout, req.Date); err != nil {
		return "Invalid date format, expected YYYY-MM-DD"
	}

	hasStart := req.StartTime != ""
	hasEnd := req.EndTime != ""
	if hasStart != hasEnd {
		return "startTime and endTime must be provided together"
	}
	if !hasStart {
		return ""
	}

	start, err := time.Parse(scheduling.TimeLayout, req.StartTime)
	if err != nil {
		return "Invalid startTime format, expected HH:MM"
	}
	end, err := time.Parse(scheduling.TimeLayout, req.EndTime)
	if err != nil {
		return "Invalid endTime format, expected HH:MM"
	}
	if !end.After(start) {
		return "endTime must be after startTime"
	}
	return ""
}

// CreateClosedDay handles registering a new closed day (admin).
func (h *ClosedDayHandler) CreateClosedDay(c *gin.Context) {
	var req ClosedDayRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	closedDay := models.ClosedDay{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Category:  models.ClosedDayCategory(req.Category),
		Note:      req.Note,
	}
	if err := h.DB.Create(&closedDay).Error; err != nil {
		utils.InternalServerError(c, "Failed to create closed day: "+err.Error())
		return
	}

	utils.Created(c, "Closed day created successfully", closedDay)
}

// GetClosedDays handles listing closed days, optionally from a date onwards.
func (h *ClosedDayHandler) GetClosedDays(c *gin.Context) {
	query := h.DB.Order("date asc")

	if from := c.Query("from"); from != "" {
		if _, err := time.Parse(scheduling.DateLayout, from); err != nil {
			utils.BadRequest(c, "Invalid from date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("date >= ?", from)
	}

	var closedDays []models.ClosedDay
	if err := query.Find(&closedDays).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch closed days: "+err.Error())
		return
	}

	utils.Success(c, "Closed days fetched successfully", closedDays)
}

// GetClosedDayByID handles fetching a single closed day (admin).
func (h *ClosedDayHandler) GetClosedDayByID(c *gin.Context) {
	id := c.Param("id")

	var closedDay models.ClosedDay
	if err := h.DB.First(&closedDay, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Closed day not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Closed day fetched successfully", closedDay)
}

// UpdateClosedDay handles updating a closed day (admin).
func (h *ClosedDayHandler) UpdateClosedDay(c *gin.Context) {
	id := c.Param("id")

	var req ClosedDayRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	var closedDay models.ClosedDay
	if err := h.DB.First(&closedDay, "id = ?", id).Error; err != nil {
		utils.NotFound(c, "Closed day not found")
		return
	}

	closedDay.Date = req.Date
	closedDay.StartTime = req.StartTime
	closedDay.EndTime = req.EndTime
	closedDay.Category = models.ClosedDayCategory(req.Category)
	closedDay.Note = req.Note

	if err := h.DB.Save(&closedDay).Error; err != nil {
		utils.InternalServerError(c, "Failed to update closed day: "+err.Error())
		return
	}

	utils.Success(c, "Closed day updated successfully", closedDay)
}

// DeleteClosedDay handles removing a closed day (admin).
func (h *ClosedDayHandler) DeleteClosedDay(c *gin.Context) {
	id := c.Param("id")

	var closedDay models.ClosedDay
	if err := h.DB.First(&closedDay, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Closed day not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&closedDay).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete closed day: "+err.Error())
		return
	}

	utils.Success(c, "Closed day deleted successfully", nil)
}
