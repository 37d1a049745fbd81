package models

import "gorm.io/gorm"

// All lists every table the service owns, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Hospital{},
		&Ambulance{},
		&Driver{},
		&AmbulanceRequest{},
		&RideHistory{},
		&Favorite{},
		&ContactUs{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
