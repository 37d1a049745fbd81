package models

type Driver struct {
	ID            uint64      `gorm:"primaryKey" json:"id"`
	Name          string      `gorm:"size:100;not null" json:"name"`
	Contact       string      `gorm:"uniqueIndex;size:100;not null" json:"contact"`
	IsAvailable   bool        `json:"is_available"`
	LicenseNumber string      `gorm:"size:50" json:"license_number"`
	Ambulances    []Ambulance `gorm:"many2many:driver_ambulance_assignments;" json:"ambulances,omitempty"`
}

type CreateDriverInput struct {
	Name          string `json:"name" binding:"required"`
	Contact       string `json:"contact" binding:"required"`
	IsAvailable   *bool  `json:"is_available"`
	LicenseNumber string `json:"license_number"`
}

type UpdateDriverInput struct {
	Name          *string `json:"name"`
	Contact       *string `json:"contact"`
	IsAvailable   *bool   `json:"is_available"`
	LicenseNumber *string `json:"license_number"`
}

func (in UpdateDriverInput) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Contact != nil {
		changes["contact"] = *in.Contact
	}
	if in.IsAvailable != nil {
		changes["is_available"] = *in.IsAvailable
	}
	if in.LicenseNumber != nil {
		changes["license_number"] = *in.LicenseNumber
	}
	return changes
}
