package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ambulance-backend/internal/middleware"
	"ambulance-backend/internal/models"
	"ambulance-backend/internal/payment"
	"ambulance-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateRequest files an ambulance request for the caller. Any patient id in
// the body is ignored.
func (h *Handler) CreateRequest(c *gin.Context) {
	userID := middleware.UserID(c)

	var input models.CreateRequestInput
	if !bindJSON(c, &input) {
		return
	}

	var hospital models.Hospital
	if err := h.db(c).First(&hospital, input.HospitalID).Error; err != nil {
		h.lookupError(c, "Hospital", err)
		return
	}
	if input.AmbulanceID != nil {
		var ambulance models.Ambulance
		if err := h.db(c).First(&ambulance, *input.AmbulanceID).Error; err != nil {
			h.lookupError(c, "Ambulance", err)
			return
		}
	}

	status := input.Status
	if status == "" {
		status = models.StatusPending
	}
	req := models.AmbulanceRequest{
		PatientID:          userID,
		HospitalID:         hospital.ID,
		AmbulanceID:        input.AmbulanceID,
		PatientLocationLat: input.PatientLocationLat,
		PatientLocationLng: input.PatientLocationLng,
		PickupLocation:     input.PickupLocation,
		PaymentMethod:      input.PaymentMethod,
		EstimatedCost:      input.EstimatedCost,
		Status:             status,
	}

	err := h.db(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		if req.Status == models.StatusCompleted {
			return completeRide(tx, &req, hospital.Name)
		}
		return nil
	})
	if err != nil {
		h.dbError(c, "Failed to create request", err)
		return
	}

	h.chargeRequest(c, &req)
	c.JSON(http.StatusCreated, req)
}

// chargeRequest opens a gateway payment for card requests. A gateway failure
// is recorded on the request and does not fail the call.
func (h *Handler) chargeRequest(c *gin.Context, req *models.AmbulanceRequest) {
	if h.Payments == nil || !strings.EqualFold(req.PaymentMethod, payment.MethodCard) || req.EstimatedCost <= 0 {
		return
	}

	var user models.User
	if err := h.db(c).First(&user, req.PatientID).Error; err != nil {
		h.Log.Warn("payment skipped, patient not loaded", zap.Uint64("request_id", req.ID), zap.Error(err))
		return
	}

	orderID := fmt.Sprintf("AMB-%d-%d", req.ID, time.Now().Unix())
	charge, err := h.Payments.CreateCharge(c.Request.Context(), payment.ChargeRequest{
		OrderID:       orderID,
		Amount:        int64(req.EstimatedCost),
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
		ItemName:      "Ambulance ride",
	})

	req.PaymentRef = orderID
	if err != nil {
		h.Log.Error("payment charge failed", zap.Uint64("request_id", req.ID), zap.Error(err))
		req.PaymentStatus = models.PaymentFailed
	} else {
		req.PaymentStatus = models.PaymentPending
		req.PaymentURL = charge.RedirectURL
	}
	changes := map[string]interface{}{
		"payment_ref":    req.PaymentRef,
		"payment_status": req.PaymentStatus,
		"payment_url":    req.PaymentURL,
	}
	if err := h.db(c).Model(&models.AmbulanceRequest{ID: req.ID}).Updates(changes).Error; err != nil {
		h.Log.Error("payment state not saved", zap.Uint64("request_id", req.ID), zap.Error(err))
	}
}

// ListRequests returns the caller's requests, optionally filtered by ?status=.
func (h *Handler) ListRequests(c *gin.Context) {
	query := h.db(c).Where("patient_id = ?", middleware.UserID(c))
	if status := c.Query("status"); status != "" {
		if !models.IsValidStatus(status) {
			utils.APIError(c, http.StatusBadRequest, "Invalid status value", status)
			return
		}
		query = query.Where("status = ?", status)
	}

	requests := []models.AmbulanceRequest{}
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		h.dbError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *Handler) GetRequest(c *gin.Context) {
	req, ok := h.ownedRequest(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, req)
}

// UpdateRequest applies the supplied fields. Moving to COMPLETED writes the
// ride history row in the same transaction.
func (h *Handler) UpdateRequest(c *gin.Context) {
	req, ok := h.ownedRequest(c)
	if !ok {
		return
	}
	var input models.UpdateRequestInput
	if !bindJSON(c, &input) {
		return
	}
	if input.AmbulanceID != nil {
		var ambulance models.Ambulance
		if err := h.db(c).First(&ambulance, *input.AmbulanceID).Error; err != nil {
			h.lookupError(c, "Ambulance", err)
			return
		}
	}

	err := h.db(c).Transaction(func(tx *gorm.DB) error {
		if changes := input.Changes(); len(changes) > 0 {
			if err := tx.Model(&req).Updates(changes).Error; err != nil {
				return err
			}
		}
		if err := tx.First(&req, req.ID).Error; err != nil {
			return err
		}
		if req.Status != models.StatusCompleted {
			return nil
		}
		var hospital models.Hospital
		if err := tx.First(&hospital, req.HospitalID).Error; err != nil {
			return err
		}
		return completeRide(tx, &req, hospital.Name)
	})
	if err != nil {
		h.dbError(c, "Failed to update request", err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// DeleteRequest keeps any ride history and just unlinks it.
func (h *Handler) DeleteRequest(c *gin.Context) {
	req, ok := h.ownedRequest(c)
	if !ok {
		return
	}

	err := h.db(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.RideHistory{}).Where("request_id = ?", req.ID).Update("request_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&req).Error
	})
	if err != nil {
		h.dbError(c, "Failed to delete request", err)
		return
	}
	utils.Message(c, http.StatusOK, "Request deleted")
}

// ownedRequest loads :id and checks it belongs to the caller.
func (h *Handler) ownedRequest(c *gin.Context) (models.AmbulanceRequest, bool) {
	var req models.AmbulanceRequest
	id, ok := parseID(c, "id")
	if !ok {
		return req, false
	}
	if err := h.db(c).First(&req, id).Error; err != nil {
		h.lookupError(c, "Request", err)
		return req, false
	}
	if req.PatientID != middleware.UserID(c) {
		utils.APIError(c, http.StatusForbidden, "You do not have access to this request", nil)
		return req, false
	}
	return req, true
}

// completeRide writes the request's ride history unless one already exists.
func completeRide(tx *gorm.DB, req *models.AmbulanceRequest, hospitalName string) error {
	var existing models.RideHistory
	err := tx.Where("request_id = ?", req.ID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	requestID := req.ID
	hospitalID := req.HospitalID
	now := time.Now().UTC()
	ride := models.RideHistory{
		PatientID:     req.PatientID,
		RequestID:     &requestID,
		HospitalID:    &hospitalID,
		HospitalName:  hospitalName,
		AmbulanceID:   req.AmbulanceID,
		EndTime:       &now,
		TotalCost:     req.EstimatedCost,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusCompleted,
		Date:          now.Format(time.RFC3339),
	}
	return tx.Create(&ride).Error
}

// PaymentNotification is the gateway webhook. Only signed notifications are
// accepted, and they update payment_status only.
func (h *Handler) PaymentNotification(c *gin.Context) {
	var n payment.Notification
	if !bindJSON(c, &n) {
		return
	}
	if h.Payments == nil || !h.Payments.VerifyNotification(n) {
		h.Log.Warn("payment notification rejected", zap.String("order_id", n.OrderID), zap.String("client_ip", c.ClientIP()))
		utils.APIError(c, http.StatusForbidden, "Invalid signature", nil)
		return
	}

	var req models.AmbulanceRequest
	if err := h.db(c).Where("payment_ref = ?", n.OrderID).First(&req).Error; err != nil {
		h.lookupError(c, "Request", err)
		return
	}

	status := payment.StatusFor(n)
	if req.PaymentStatus != status {
		if err := h.db(c).Model(&req).Update("payment_status", status).Error; err != nil {
			h.dbError(c, "Failed to update payment", err)
			return
		}
		h.Log.Info("payment status changed",
			zap.Uint64("request_id", req.ID),
			zap.String("order_id", n.OrderID),
			zap.String("payment_status", status),
		)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
