package seed

import (
	"context"
	"testing"

	"ambulance-backend/internal/models"
	"ambulance-backend/internal/testutil"
	"ambulance-backend/pkg/utils"

	"go.uber.org/zap"
)

func TestRunIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	first, err := Run(ctx, db, zap.NewNop())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Users != 1 || first.Hospitals != 3 || first.Ambulances != 3 || first.Drivers != 2 {
		t.Errorf("unexpected first summary: %+v", first)
	}

	second, err := Run(ctx, db, zap.NewNop())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second != (Summary{}) {
		t.Errorf("second run should insert nothing, got %+v", second)
	}

	var hospitals int64
	db.Model(&models.Hospital{}).Count(&hospitals)
	if hospitals != 3 {
		t.Errorf("expected 3 hospitals, got %d", hospitals)
	}
}

func TestRunDemoUserCanLogIn(t *testing.T) {
	db := testutil.NewDB(t)
	if _, err := Run(context.Background(), db, zap.NewNop()); err != nil {
		t.Fatalf("run: %v", err)
	}

	var user models.User
	if err := db.Where("email = ?", DemoEmail).First(&user).Error; err != nil {
		t.Fatalf("demo user: %v", err)
	}
	if !utils.CheckPassword(DemoPassword, user.PasswordHash) {
		t.Error("demo password should verify")
	}
}
