package leads

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/avelarsoto/leadpipe-backend/pkg/db/models"
	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// a pooled second connection would see a different in-memory database
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("extract sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&models.User{}, &models.Lead{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func mustCreateTestUser(t *testing.T, tx *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Username:     fmt.Sprintf("lp_test_%s", uuid.NewString()),
		PasswordHash: "hash",
	}
	if err := tx.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestLead(t *testing.T, repo *Repository, ownerID uuid.UUID, mutate func(*CreateLeadInput)) *models.Lead {
	t.Helper()
	input := CreateLeadInput{
		FirstName: "Test",
		LastName:  "Lead",
		Email:     fmt.Sprintf("lead_%s@example.com", uuid.NewString()),
		Source:    enums.LeadSourceWebsite,
		Status:    enums.LeadStatusNew,
	}
	if mutate != nil {
		mutate(&input)
	}
	lead, err := repo.Create(context.Background(), ownerID, input)
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	return lead
}
