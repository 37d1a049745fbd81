package handlers

import (
	"net/http"

	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) CreateDriver(c *gin.Context) {
	var input models.CreateDriverInput
	if !bindJSON(c, &input) {
		return
	}

	var count int64
	if err := h.db(c).Model(&models.Driver{}).Where("contact = ?", input.Contact).Count(&count).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	if count > 0 {
		utils.APIError(c, http.StatusBadRequest, "Driver already exists", nil)
		return
	}

	driver := models.Driver{
		Name:          input.Name,
		Contact:       input.Contact,
		IsAvailable:   boolOr(input.IsAvailable, true),
		LicenseNumber: input.LicenseNumber,
	}
	if err := h.db(c).Create(&driver).Error; err != nil {
		h.dbError(c, "Failed to create driver", err)
		return
	}
	c.JSON(http.StatusCreated, driver)
}

// ListDrivers supports ?name= (substring) and ?is_available=true|false.
func (h *Handler) ListDrivers(c *gin.Context) {
	query := h.db(c).Model(&models.Driver{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", likePattern(name))
	}
	available, ok := boolQuery(c, "is_available")
	if !ok {
		return
	}
	if available != nil {
		query = query.Where("is_available = ?", *available)
	}

	drivers := []models.Driver{}
	if err := query.Order("id").Find(&drivers).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

func (h *Handler) GetDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var driver models.Driver
	if err := h.db(c).Preload("Ambulances").First(&driver, id).Error; err != nil {
		h.lookupError(c, "Driver", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateDriverInput
	if !bindJSON(c, &input) {
		return
	}

	var driver models.Driver
	if err := h.db(c).First(&driver, id).Error; err != nil {
		h.lookupError(c, "Driver", err)
		return
	}

	if input.Contact != nil && *input.Contact != driver.Contact {
		var count int64
		if err := h.db(c).Model(&models.Driver{}).Where("contact = ? AND id <> ?", *input.Contact, id).Count(&count).Error; err != nil {
			h.dbError(c, "Database error", err)
			return
		}
		if count > 0 {
			utils.APIError(c, http.StatusBadRequest, "Driver already exists", nil)
			return
		}
	}

	if changes := input.Changes(); len(changes) > 0 {
		if err := h.db(c).Model(&driver).Updates(changes).Error; err != nil {
			h.dbError(c, "Failed to update driver", err)
			return
		}
	}
	if err := h.db(c).First(&driver, id).Error; err != nil {
		h.lookupError(c, "Driver", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// DeleteDriver also drops the driver's ambulance assignments.
func (h *Handler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var driver models.Driver
	if err := h.db(c).First(&driver, id).Error; err != nil {
		h.lookupError(c, "Driver", err)
		return
	}

	err := h.db(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&driver).Association("Ambulances").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&models.RideHistory{}).Where("driver_id = ?", id).Update("driver_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&driver).Error
	})
	if err != nil {
		h.dbError(c, "Failed to delete driver", err)
		return
	}
	utils.Message(c, http.StatusOK, "Driver deleted")
}

// AssignAmbulance links a driver to an ambulance. Repeating it is a no-op.
func (h *Handler) AssignAmbulance(c *gin.Context) {
	driver, ambulance, ok := h.driverAndAmbulance(c)
	if !ok {
		return
	}
	if err := h.db(c).Model(&driver).Association("Ambulances").Append(&ambulance); err != nil {
		h.dbError(c, "Failed to assign ambulance", err)
		return
	}
	if err := h.db(c).Preload("Ambulances").First(&driver, driver.ID).Error; err != nil {
		h.lookupError(c, "Driver", err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

func (h *Handler) UnassignAmbulance(c *gin.Context) {
	driver, ambulance, ok := h.driverAndAmbulance(c)
	if !ok {
		return
	}

	count := h.db(c).Model(&driver).Where("ambulances.id = ?", ambulance.ID).Association("Ambulances").Count()
	if count == 0 {
		utils.APIError(c, http.StatusNotFound, "Assignment not found", nil)
		return
	}
	if err := h.db(c).Model(&driver).Association("Ambulances").Delete(&ambulance); err != nil {
		h.dbError(c, "Failed to unassign ambulance", err)
		return
	}
	utils.Message(c, http.StatusOK, "Ambulance unassigned")
}

func (h *Handler) driverAndAmbulance(c *gin.Context) (models.Driver, models.Ambulance, bool) {
	var driver models.Driver
	var ambulance models.Ambulance

	driverID, ok := parseID(c, "id")
	if !ok {
		return driver, ambulance, false
	}
	ambulanceID, ok := parseID(c, "ambulance_id")
	if !ok {
		return driver, ambulance, false
	}
	if err := h.db(c).First(&driver, driverID).Error; err != nil {
		h.lookupError(c, "Driver", err)
		return driver, ambulance, false
	}
	if err := h.db(c).First(&ambulance, ambulanceID).Error; err != nil {
		h.lookupError(c, "Ambulance", err)
		return driver, ambulance, false
	}
	return driver, ambulance, true
}
