package models

import "time"

// AmbulanceRequest is a patient's call for an ambulance to a hospital.
type AmbulanceRequest struct {
	ID                 uint64    `gorm:"primaryKey" json:"id"`
	PatientID          uint64    `gorm:"not null;index" json:"patient_id"`
	HospitalID         uint64    `gorm:"not null;index" json:"hospital_id"`
	AmbulanceID        *uint64   `gorm:"index" json:"ambulance_id"`
	PatientLocationLat *float64  `json:"patient_location_lat"`
	PatientLocationLng *float64  `json:"patient_location_lng"`
	PickupLocation     string    `gorm:"size:255" json:"pickup_location"`
	PaymentMethod      string    `gorm:"size:20" json:"payment_method"`
	EstimatedCost      float64   `json:"estimated_cost"`
	Status             string    `gorm:"size:20;not null" json:"status"`
	PaymentRef         string    `gorm:"size:64;index" json:"payment_ref,omitempty"`
	PaymentURL         string    `gorm:"size:255" json:"payment_url,omitempty"`
	PaymentStatus      string    `gorm:"size:20" json:"payment_status,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type CreateRequestInput struct {
	HospitalID         uint64   `json:"hospital_id" binding:"required"`
	AmbulanceID        *uint64  `json:"ambulance_id"`
	PatientLocationLat *float64 `json:"patient_location_lat"`
	PatientLocationLng *float64 `json:"patient_location_lng"`
	PickupLocation     string   `json:"pickup_location"`
	PaymentMethod      string   `json:"payment_method"`
	EstimatedCost      float64  `json:"estimated_cost" binding:"gte=0"`
	Status             string   `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

type UpdateRequestInput struct {
	Status         *string  `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	AmbulanceID    *uint64  `json:"ambulance_id"`
	PickupLocation *string  `json:"pickup_location"`
	PaymentMethod  *string  `json:"payment_method"`
	EstimatedCost  *float64 `json:"estimated_cost" binding:"omitempty,gte=0"`
}

func (in UpdateRequestInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.Status != nil {
		changes["status"] = *in.Status
	}
	if in.AmbulanceID != nil {
		changes["ambulance_id"] = *in.AmbulanceID
	}
	if in.PickupLocation != nil {
		changes["pickup_location"] = *in.PickupLocation
	}
	if in.PaymentMethod != nil {
		changes["payment_method"] = *in.PaymentMethod
	}
	if in.EstimatedCost != nil {
		changes["estimated_cost"] = *in.EstimatedCost
	}
	return changes
}
