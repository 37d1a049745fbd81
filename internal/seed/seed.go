// Package seed loads demo registry data for local development.
package seed

import (
	"context"
	"fmt"

	"ambulance-backend/internal/models"
	"ambulance-backend/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DemoEmail    = "john@example.com"
	DemoPassword = "userpass"
)

func ptr(f float64) *float64 { return &f }

var hospitals = []models.Hospital{
	{Name: "City Hospital", LocationLat: ptr(-1.2921), LocationLng: ptr(36.8219), Availability: true, ContactInfo: "+254 700 000 001"},
	{Name: "Westside Medical Centre", LocationLat: ptr(-1.2649), LocationLng: ptr(36.8027), Availability: true, ContactInfo: "+254 700 000 002"},
	{Name: "Lakeview Clinic", LocationLat: ptr(-1.3001), LocationLng: ptr(36.7800), Availability: false, ContactInfo: "+254 700 000 003"},
}

var drivers = []models.Driver{
	{Name: "Peter Mwangi", Contact: "+254 711 000 001", IsAvailable: true, LicenseNumber: "DL-1001"},
	{Name: "Grace Achieng", Contact: "+254 711 000 002", IsAvailable: true, LicenseNumber: "DL-1002"},
}

// Summary counts the rows created by one Run.
type Summary struct {
	Users      int
	Hospitals  int
	Ambulances int
	Drivers    int
}

// Run inserts the demo rows. Rows whose natural key already exists are kept
// as they are, so running it twice is harmless.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) (Summary, error) {
	var sum Summary
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		hash, err := utils.HashPassword(DemoPassword)
		if err != nil {
			return fmt.Errorf("hash demo password: %w", err)
		}
		user := models.User{Name: "John Doe", Email: DemoEmail, PasswordHash: hash}
		n, err := insertIgnore(tx, &user)
		if err != nil {
			return err
		}
		sum.Users += n

		for i := range hospitals {
			h := hospitals[i]
			n, err := insertIgnore(tx, &h)
			if err != nil {
				return err
			}
			sum.Hospitals += n
		}

		var stored []models.Hospital
		if err := tx.Order("id").Find(&stored).Error; err != nil {
			return err
		}
		for i, h := range stored {
			if i >= len(hospitals) {
				break
			}
			amb := models.Ambulance{
				VehicleNo:   fmt.Sprintf("AMB-%03d", i+1),
				HospitalID:  h.ID,
				IsAvailable: true,
				LocationLat: h.LocationLat,
				LocationLng: h.LocationLng,
			}
			n, err := insertIgnore(tx, &amb)
			if err != nil {
				return err
			}
			sum.Ambulances += n
		}

		for i := range drivers {
			d := drivers[i]
			n, err := insertIgnore(tx, &d)
			if err != nil {
				return err
			}
			sum.Drivers += n
		}
		return nil
	})
	if err != nil {
		return sum, err
	}

	log.Info("seed completed",
		zap.Int("users", sum.Users),
		zap.Int("hospitals", sum.Hospitals),
		zap.Int("ambulances", sum.Ambulances),
		zap.Int("drivers", sum.Drivers),
	)
	return sum, nil
}

func insertIgnore(tx *gorm.DB, row interface{}) (int, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}
