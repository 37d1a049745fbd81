package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ambulance-backend/internal/middleware"
	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Signup registers a user and logs them in.
func (h *Handler) Signup(c *gin.Context) {
	var input models.SignupInput
	if !bindJSON(c, &input) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var count int64
	if err := h.db(c).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	if count > 0 {
		utils.APIError(c, http.StatusBadRequest, "Email already in use", nil)
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		utils.APIError(c, http.StatusBadRequest, "Password too long", nil)
		return
	}
	if err != nil {
		utils.APIError(c, http.StatusInternalServerError, "Could not process password", nil)
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
		LocationLat:  input.LocationLat,
		LocationLng:  input.LocationLng,
	}
	if err := h.db(c).Create(&user).Error; err != nil {
		h.dbError(c, "Failed to create user", err)
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID)
	if err != nil {
		utils.APIError(c, http.StatusInternalServerError, "Could not issue token", nil)
		return
	}

	h.Log.Info("user registered", zap.Uint64("user_id", user.ID))
	c.JSON(http.StatusCreated, gin.H{
		"access_token": token,
		"user":         user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var input models.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	var user models.User
	err := h.db(c).Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.dbError(c, "Database error", err)
		return
	}
	if err != nil || !utils.CheckPassword(input.Password, user.PasswordHash) {
		utils.APIError(c, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	token, err := h.Tokens.GenerateToken(user.ID)
	if err != nil {
		utils.APIError(c, http.StatusInternalServerError, "Could not issue token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user":         user,
	})
}

// Me returns the user behind the bearer token.
func (h *Handler) Me(c *gin.Context) {
	var user models.User
	if err := h.db(c).First(&user, middleware.UserID(c)).Error; err != nil {
		h.lookupError(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout revokes the presented token until it expires.
func (h *Handler) Logout(c *gin.Context) {
	h.Tokens.Revoke(middleware.Claims(c))
	utils.Message(c, http.StatusOK, "Successfully logged out")
}

// ListUsers supports ?name= (substring) and ?email= (exact).
func (h *Handler) ListUsers(c *gin.Context) {
	query := h.db(c).Model(&models.User{})
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", likePattern(name))
	}
	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	}

	users := []models.User{}
	if err := query.Order("id").Find(&users).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
