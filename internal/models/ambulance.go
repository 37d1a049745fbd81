package models

type Ambulance struct {
	ID          uint64   `gorm:"primaryKey" json:"id"`
	VehicleNo   string   `gorm:"uniqueIndex;size:100;not null" json:"vehicle_no"`
	IsAvailable bool     `json:"is_available"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
	HospitalID  uint64   `gorm:"not null;index" json:"hospital_id"`

	// Drivers is loaded one level deep; the drivers' own ambulance lists stay empty.
	Drivers []Driver `gorm:"many2many:driver_ambulance_assignments;" json:"drivers,omitempty"`
}

type CreateAmbulanceInput struct {
	VehicleNo   string   `json:"vehicle_no" binding:"required"`
	HospitalID  uint64   `json:"hospital_id" binding:"required"`
	IsAvailable *bool    `json:"is_available"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
}

type UpdateAmbulanceInput struct {
	IsAvailable *bool    `json:"is_available"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
}

func (in UpdateAmbulanceInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.IsAvailable != nil {
		changes["is_available"] = *in.IsAvailable
	}
	if in.LocationLat != nil {
		changes["location_lat"] = *in.LocationLat
	}
	if in.LocationLng != nil {
		changes["location_lng"] = *in.LocationLng
	}
	return changes
}
