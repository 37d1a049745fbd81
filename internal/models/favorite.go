package models

import "time"

type Favorite struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_favorite_user_hospital" json:"user_id"`
	HospitalName string    `gorm:"size:100;not null;uniqueIndex:idx_favorite_user_hospital" json:"hospital_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type FavoriteInput struct {
	HospitalName string `json:"hospital_name" binding:"required"`
}
