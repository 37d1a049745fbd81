package handlers

import (
	"errors"
	"net/http"

	"ambulance-backend/internal/middleware"
	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddFavorite is idempotent: a second add reports success without a new row.
func (h *Handler) AddFavorite(c *gin.Context) {
	userID := middleware.UserID(c)

	var input models.FavoriteInput
	if !bindJSON(c, &input) {
		return
	}

	var hospital models.Hospital
	if err := h.db(c).Where("name = ?", input.HospitalName).First(&hospital).Error; err != nil {
		h.lookupError(c, "Hospital", err)
		return
	}

	var existing models.Favorite
	err := h.db(c).Where("user_id = ? AND hospital_name = ?", userID, hospital.Name).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"message":  "Hospital already in favorites",
			"favorite": existing,
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.dbError(c, "Database error", err)
		return
	}

	favorite := models.Favorite{UserID: userID, HospitalName: hospital.Name}
	if err := h.db(c).Create(&favorite).Error; err != nil {
		h.dbError(c, "Failed to add favorite", err)
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

func (h *Handler) ListFavorites(c *gin.Context) {
	favorites := []models.Favorite{}
	if err := h.db(c).Where("user_id = ?", middleware.UserID(c)).Order("id").Find(&favorites).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

// RemoveFavorite deletes by {"hospital_name": ...} in the body.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	var input models.FavoriteInput
	if !bindJSON(c, &input) {
		return
	}
	h.deleteFavorite(c, h.db(c).Where("user_id = ? AND hospital_name = ?", middleware.UserID(c), input.HospitalName))
}

// RemoveFavoriteByID deletes /favorites/:id when it belongs to the caller.
func (h *Handler) RemoveFavoriteByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	h.deleteFavorite(c, h.db(c).Where("id = ? AND user_id = ?", id, middleware.UserID(c)))
}

func (h *Handler) deleteFavorite(c *gin.Context, scope *gorm.DB) {
	result := scope.Delete(&models.Favorite{})
	if result.Error != nil {
		h.dbError(c, "Failed to remove favorite", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.APIError(c, http.StatusNotFound, "Favorite not found", nil)
		return
	}
	utils.Message(c, http.StatusOK, "Favorite removed")
}
