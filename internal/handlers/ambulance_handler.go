package handlers

import (
	"net/http"

	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) CreateAmbulance(c *gin.Context) {
	var input models.CreateAmbulanceInput
	if !bindJSON(c, &input) {
		return
	}

	var hospital models.Hospital
	if err := h.db(c).First(&hospital, input.HospitalID).Error; err != nil {
		h.lookupError(c, "Hospital", err)
		return
	}

	var count int64
	if err := h.db(c).Model(&models.Ambulance{}).Where("vehicle_no = ?", input.VehicleNo).Count(&count).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	if count > 0 {
		utils.APIError(c, http.StatusBadRequest, "Ambulance already exists", nil)
		return
	}

	ambulance := models.Ambulance{
		VehicleNo:   input.VehicleNo,
		HospitalID:  hospital.ID,
		IsAvailable: boolOr(input.IsAvailable, true),
		LocationLat: input.LocationLat,
		LocationLng: input.LocationLng,
	}
	if err := h.db(c).Create(&ambulance).Error; err != nil {
		h.dbError(c, "Failed to create ambulance", err)
		return
	}
	c.JSON(http.StatusCreated, ambulance)
}

// ListAmbulances supports ?hospital_id= and ?is_available=true|false.
func (h *Handler) ListAmbulances(c *gin.Context) {
	query := h.db(c).Model(&models.Ambulance{})
	if raw := c.Query("hospital_id"); raw != "" {
		hospitalID := utils.StringToUint64(raw)
		if hospitalID == 0 {
			utils.APIError(c, http.StatusBadRequest, "Invalid hospital_id", raw)
			return
		}
		query = query.Where("hospital_id = ?", hospitalID)
	}
	available, ok := boolQuery(c, "is_available")
	if !ok {
		return
	}
	if available != nil {
		query = query.Where("is_available = ?", *available)
	}

	ambulances := []models.Ambulance{}
	if err := query.Order("id").Find(&ambulances).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, ambulances)
}

func (h *Handler) GetAmbulance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var ambulance models.Ambulance
	if err := h.db(c).Preload("Drivers").First(&ambulance, id).Error; err != nil {
		h.lookupError(c, "Ambulance", err)
		return
	}
	c.JSON(http.StatusOK, ambulance)
}

func (h *Handler) UpdateAmbulance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateAmbulanceInput
	if !bindJSON(c, &input) {
		return
	}

	var ambulance models.Ambulance
	if err := h.db(c).First(&ambulance, id).Error; err != nil {
		h.lookupError(c, "Ambulance", err)
		return
	}
	if changes := input.Changes(); len(changes) > 0 {
		if err := h.db(c).Model(&ambulance).Updates(changes).Error; err != nil {
			h.dbError(c, "Failed to update ambulance", err)
			return
		}
	}
	if err := h.db(c).First(&ambulance, id).Error; err != nil {
		h.lookupError(c, "Ambulance", err)
		return
	}
	c.JSON(http.StatusOK, ambulance)
}

// DeleteAmbulance refuses while requests reference the ambulance.
func (h *Handler) DeleteAmbulance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var ambulance models.Ambulance
	if err := h.db(c).First(&ambulance, id).Error; err != nil {
		h.lookupError(c, "Ambulance", err)
		return
	}

	var count int64
	if err := h.db(c).Model(&models.AmbulanceRequest{}).Where("ambulance_id = ?", id).Count(&count).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	if count > 0 {
		utils.APIError(c, http.StatusConflict, "Ambulance has dependent records", nil)
		return
	}

	err := h.db(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ambulance).Association("Drivers").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&models.RideHistory{}).Where("ambulance_id = ?", id).Update("ambulance_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&ambulance).Error
	})
	if err != nil {
		h.dbError(c, "Failed to delete ambulance", err)
		return
	}
	utils.Message(c, http.StatusOK, "Ambulance deleted")
}
