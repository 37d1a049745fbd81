package handlers

import (
	"net/http"

	"ambulance-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateContact(c *gin.Context) {
	var input models.ContactInput
	if !bindJSON(c, &input) {
		return
	}

	msg := models.ContactUs{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}
	if err := h.db(c).Create(&msg).Error; err != nil {
		h.dbError(c, "Failed to save message", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) ListContacts(c *gin.Context) {
	messages := []models.ContactUs{}
	if err := h.db(c).Order("created_at desc").Find(&messages).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
