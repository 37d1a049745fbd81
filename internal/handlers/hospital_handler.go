package handlers

import (
	"errors"
	"net/http"

	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func (h *Handler) CreateHospital(c *gin.Context) {
	var input models.CreateHospitalInput
	if !bindJSON(c, &input) {
		return
	}

	var count int64
	if err := h.db(c).Model(&models.Hospital{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	if count > 0 {
		utils.APIError(c, http.StatusBadRequest, "Hospital already exists", nil)
		return
	}

	hospital := models.Hospital{
		Name:         input.Name,
		LocationLat:  input.LocationLat,
		LocationLng:  input.LocationLng,
		Availability: boolOr(input.Availability, true),
		ContactInfo:  input.ContactInfo,
	}
	if err := h.db(c).Create(&hospital).Error; err != nil {
		h.dbError(c, "Failed to create hospital", err)
		return
	}
	c.JSON(http.StatusCreated, hospital)
}

// ListHospitals supports ?name= (substring) and ?availability=true|false.
func (h *Handler) ListHospitals(c *gin.Context) {
	query := h.db(c).Model(&models.Hospital{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", likePattern(name))
	}
	available, ok := boolQuery(c, "availability")
	if !ok {
		return
	}
	if available != nil {
		query = query.Where("availability = ?", *available)
	}

	hospitals := []models.Hospital{}
	if err := query.Order("id").Find(&hospitals).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

func (h *Handler) GetHospital(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var hospital models.Hospital
	if err := h.db(c).First(&hospital, id).Error; err != nil {
		h.lookupError(c, "Hospital", err)
		return
	}
	c.JSON(http.StatusOK, hospital)
}

func (h *Handler) UpdateHospital(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateHospitalInput
	if !bindJSON(c, &input) {
		return
	}

	var hospital models.Hospital
	if err := h.db(c).First(&hospital, id).Error; err != nil {
		h.lookupError(c, "Hospital", err)
		return
	}

	if input.Name != nil && *input.Name != hospital.Name {
		var count int64
		if err := h.db(c).Model(&models.Hospital{}).Where("name = ? AND id <> ?", *input.Name, id).Count(&count).Error; err != nil {
			h.dbError(c, "Database error", err)
			return
		}
		if count > 0 {
			utils.APIError(c, http.StatusBadRequest, "Hospital already exists", nil)
			return
		}
	}

	if changes := input.Changes(); len(changes) > 0 {
		oldName := hospital.Name
		err := h.db(c).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&hospital).Updates(changes).Error; err != nil {
				return err
			}
			if input.Name == nil || *input.Name == oldName {
				return nil
			}
			// Favorites and ride histories refer to hospitals by name.
			for _, model := range []interface{}{&models.Favorite{}, &models.RideHistory{}} {
				if err := tx.Model(model).Where("hospital_name = ?", oldName).Update("hospital_name", *input.Name).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			h.dbError(c, "Failed to update hospital", err)
			return
		}
	}
	if err := h.db(c).First(&hospital, id).Error; err != nil {
		h.lookupError(c, "Hospital", err)
		return
	}
	c.JSON(http.StatusOK, hospital)
}

// DeleteHospital refuses while ambulances, requests or ride histories point at it.
func (h *Handler) DeleteHospital(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var hospital models.Hospital
	if err := h.db(c).First(&hospital, id).Error; err != nil {
		h.lookupError(c, "Hospital", err)
		return
	}

	err := h.db(c).Transaction(func(tx *gorm.DB) error {
		for _, dep := range []struct {
			model interface{}
			where string
			args  []interface{}
		}{
			{&models.Ambulance{}, "hospital_id = ?", []interface{}{id}},
			{&models.AmbulanceRequest{}, "hospital_id = ?", []interface{}{id}},
			{&models.RideHistory{}, "hospital_id = ? OR hospital_name = ?", []interface{}{id, hospital.Name}},
		} {
			var count int64
			if err := tx.Model(dep.model).Where(dep.where, dep.args...).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errHasDependents
			}
		}
		if err := tx.Where("hospital_name = ?", hospital.Name).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&hospital).Error
	})
	if errors.Is(err, errHasDependents) {
		utils.APIError(c, http.StatusConflict, "Hospital has dependent records", nil)
		return
	}
	if err != nil {
		h.dbError(c, "Failed to delete hospital", err)
		return
	}
	utils.Message(c, http.StatusOK, "Hospital deleted")
}
