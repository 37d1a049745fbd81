package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ambulance-backend/internal/middleware"
	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) CreateRideHistory(c *gin.Context) {
	userID := middleware.UserID(c)

	var input models.CreateRideHistoryInput
	if !bindJSON(c, &input) {
		return
	}

	ride := models.RideHistory{
		PatientID:     userID,
		HospitalName:  input.HospitalName,
		RequestID:     input.RequestID,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
		Date:          input.Date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		TotalDuration: input.TotalDuration,
		TotalCost:     input.TotalCost,
		Rating:        input.Rating,
		Feedback:      input.Feedback,
	}
	if ride.Status == "" {
		ride.Status = models.StatusPending
	}
	if ride.Date == "" {
		ride.Date = time.Now().UTC().Format(time.RFC3339)
	}

	if input.RequestID != nil {
		var req models.AmbulanceRequest
		if err := h.db(c).First(&req, *input.RequestID).Error; err != nil {
			h.lookupError(c, "Request", err)
			return
		}
		if req.PatientID != userID {
			utils.APIError(c, http.StatusForbidden, "You do not have access to this request", nil)
			return
		}
		var count int64
		if err := h.db(c).Model(&models.RideHistory{}).Where("request_id = ?", req.ID).Count(&count).Error; err != nil {
			h.dbError(c, "Database error", err)
			return
		}
		if count > 0 {
			utils.APIError(c, http.StatusBadRequest, "Ride history already exists for this request", nil)
			return
		}
		ride.AmbulanceID = req.AmbulanceID
	}

	if !h.linkHospital(c, &ride) {
		return
	}
	if err := h.db(c).Create(&ride).Error; err != nil {
		h.dbError(c, "Failed to create ride history", err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

// QuickRequest is the single-form flow: hospital name plus payment, stored
// straight into the ride history as PENDING.
func (h *Handler) QuickRequest(c *gin.Context) {
	var input models.QuickRequestInput
	if !bindJSON(c, &input) {
		return
	}

	ride := models.RideHistory{
		PatientID:     middleware.UserID(c),
		HospitalName:  input.HospitalName,
		PaymentMethod: input.PaymentMethod,
		Status:        models.StatusPending,
		Date:          input.Date,
	}
	if ride.Date == "" {
		ride.Date = time.Now().UTC().Format(time.RFC3339)
	}
	if !h.linkHospital(c, &ride) {
		return
	}
	if err := h.db(c).Create(&ride).Error; err != nil {
		h.dbError(c, "Failed to create request", err)
		return
	}
	c.JSON(http.StatusCreated, ride)
}

// linkHospital fills HospitalID when the name matches a registered hospital.
func (h *Handler) linkHospital(c *gin.Context, ride *models.RideHistory) bool {
	var hospital models.Hospital
	err := h.db(c).Where("name = ?", ride.HospitalName).First(&hospital).Error
	switch {
	case err == nil:
		ride.HospitalID = &hospital.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		h.dbError(c, "Database error", err)
		return false
	}
	return true
}

// ListRideHistory returns the caller's rides. Filters: status, hospital_name,
// start_after and end_before (RFC3339). Rides without recorded times are
// compared by created_at.
func (h *Handler) ListRideHistory(c *gin.Context) {
	query := h.db(c).Where("patient_id = ?", middleware.UserID(c))

	if status := c.Query("status"); status != "" {
		if !models.IsValidStatus(status) {
			utils.APIError(c, http.StatusBadRequest, "Invalid status value", status)
			return
		}
		query = query.Where("status = ?", status)
	}
	if name := c.Query("hospital_name"); name != "" {
		query = query.Where("hospital_name = ?", name)
	}
	for _, bound := range []struct{ param, clause string }{
		{"start_after", "COALESCE(start_time, created_at) >= ?"},
		{"end_before", "COALESCE(end_time, created_at) <= ?"},
	} {
		raw := c.Query(bound.param)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.APIError(c, http.StatusBadRequest, "Invalid time for "+bound.param, err.Error())
			return
		}
		query = query.Where(bound.clause, t.UTC())
	}

	h.findRides(c, query)
}

// SearchRideHistory matches ?search= against hospital name and status.
func (h *Handler) SearchRideHistory(c *gin.Context) {
	term := strings.TrimSpace(c.Query("search"))
	if term == "" {
		utils.APIError(c, http.StatusBadRequest, "Missing search term", nil)
		return
	}
	query := h.db(c).
		Where("patient_id = ?", middleware.UserID(c)).
		Where("hospital_name LIKE ? OR status LIKE ?", likePattern(term), likePattern(strings.ToUpper(term)))

	h.findRides(c, query)
}

func (h *Handler) findRides(c *gin.Context, query *gorm.DB) {
	rides := []models.RideHistory{}
	if err := query.Order("created_at desc").Order("id desc").Find(&rides).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (h *Handler) GetRideHistory(c *gin.Context) {
	ride, ok := h.ownedRide(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ride)
}

func (h *Handler) UpdateRideHistory(c *gin.Context) {
	ride, ok := h.ownedRide(c)
	if !ok {
		return
	}
	var input models.UpdateRideHistoryInput
	if !bindJSON(c, &input) {
		return
	}

	if changes := input.Changes(); len(changes) > 0 {
		if err := h.db(c).Model(&ride).Updates(changes).Error; err != nil {
			h.dbError(c, "Failed to update ride history", err)
			return
		}
	}
	if err := h.db(c).First(&ride, ride.ID).Error; err != nil {
		h.lookupError(c, "Ride history", err)
		return
	}
	c.JSON(http.StatusOK, ride)
}

func (h *Handler) DeleteRideHistory(c *gin.Context) {
	ride, ok := h.ownedRide(c)
	if !ok {
		return
	}
	if err := h.db(c).Delete(&ride).Error; err != nil {
		h.dbError(c, "Failed to delete ride history", err)
		return
	}
	utils.Message(c, http.StatusOK, "Ride history deleted")
}

func (h *Handler) ownedRide(c *gin.Context) (models.RideHistory, bool) {
	var ride models.RideHistory
	id, ok := parseID(c, "id")
	if !ok {
		return ride, false
	}
	if err := h.db(c).First(&ride, id).Error; err != nil {
		h.lookupError(c, "Ride history", err)
		return ride, false
	}
	if ride.PatientID != middleware.UserID(c) {
		utils.APIError(c, http.StatusForbidden, "You do not have access to this ride", nil)
		return ride, false
	}
	return ride, true
}
