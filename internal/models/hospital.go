package models

type Hospital struct {
	ID           uint64   `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"uniqueIndex;size:100;not null" json:"name"`
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	Availability bool     `json:"availability"`
	ContactInfo  string   `gorm:"size:100" json:"contact_info"`
}

type CreateHospitalInput struct {
	Name         string   `json:"name" binding:"required"`
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	Availability *bool    `json:"availability"`
	ContactInfo  string   `json:"contact_info"`
}

// UpdateHospitalInput lists every field PATCH may touch. Nil means untouched.
type UpdateHospitalInput struct {
	Name         *string  `json:"name"`
	LocationLat  *float64 `json:"location_lat"`
	LocationLng  *float64 `json:"location_lng"`
	Availability *bool    `json:"availability"`
	ContactInfo  *string  `json:"contact_info"`
}

// Changes returns the column updates for the supplied fields only.
func (in UpdateHospitalInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.LocationLat != nil {
		changes["location_lat"] = *in.LocationLat
	}
	if in.LocationLng != nil {
		changes["location_lng"] = *in.LocationLng
	}
	if in.Availability != nil {
		changes["availability"] = *in.Availability
	}
	if in.ContactInfo != nil {
		changes["contact_info"] = *in.ContactInfo
	}
	return changes
}
