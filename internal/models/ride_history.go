package models

import "time"

// RideHistory records a ride. The relational links are optional so that the
// flattened quick-request shape (hospital name + payment) fits the same table.
type RideHistory struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	PatientID     uint64     `gorm:"not null;index" json:"patient_id"`
	RequestID     *uint64    `gorm:"uniqueIndex" json:"request_id"`
	HospitalID    *uint64    `gorm:"index" json:"hospital_id"`
	HospitalName  string     `gorm:"size:100;index" json:"hospital_name"`
	AmbulanceID   *uint64    `json:"ambulance_id"`
	DriverID      *uint64    `json:"driver_id"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	TotalDuration string     `gorm:"size:50" json:"total_duration"`
	TotalCost     float64    `json:"total_cost"`
	PaymentMethod string     `gorm:"size:20" json:"payment_method"`
	Status        string     `gorm:"size:20;not null" json:"status"`
	Date          string     `gorm:"size:50" json:"date"`
	Rating        *int       `json:"rating"`
	Feedback      string     `gorm:"size:250" json:"feedback"`
	CreatedAt     time.Time  `json:"created_at"`
}

type CreateRideHistoryInput struct {
	HospitalName  string     `json:"hospital_name" binding:"required"`
	RequestID     *uint64    `json:"request_id"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Date          string     `json:"date"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	TotalDuration string     `json:"total_duration"`
	TotalCost     float64    `json:"total_cost" binding:"gte=0"`
	Rating        *int       `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback      string     `json:"feedback" binding:"max=250"`
}

// QuickRequestInput is the flattened request shape posted to /request-ambulance.
type QuickRequestInput struct {
	HospitalName  string `json:"hospital_name" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Date          string `json:"date"`
}

type UpdateRideHistoryInput struct {
	PaymentMethod *string    `json:"payment_method"`
	Status        *string    `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	StartTime     *time.Time `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	TotalDuration *string    `json:"total_duration"`
	TotalCost     *float64   `json:"total_cost" binding:"omitempty,gte=0"`
	Rating        *int       `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback      *string    `json:"feedback" binding:"omitempty,max=250"`
}

func (in UpdateRideHistoryInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.PaymentMethod != nil {
		changes["payment_method"] = *in.PaymentMethod
	}
	if in.Status != nil {
		changes["status"] = *in.Status
	}
	if in.StartTime != nil {
		changes["start_time"] = *in.StartTime
	}
	if in.EndTime != nil {
		changes["end_time"] = *in.EndTime
	}
	if in.TotalDuration != nil {
		changes["total_duration"] = *in.TotalDuration
	}
	if in.TotalCost != nil {
		changes["total_cost"] = *in.TotalCost
	}
	if in.Rating != nil {
		changes["rating"] = *in.Rating
	}
	if in.Feedback != nil {
		changes["feedback"] = *in.Feedback
	}
	return changes
}
