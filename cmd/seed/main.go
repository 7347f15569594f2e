package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/avelarsoto/leadpipe-backend/internal/leads"
	"github.com/avelarsoto/leadpipe-backend/internal/users"
	"github.com/avelarsoto/leadpipe-backend/pkg/config"
	"github.com/avelarsoto/leadpipe-backend/pkg/db"
	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
	"github.com/avelarsoto/leadpipe-backend/pkg/logger"
	"github.com/avelarsoto/leadpipe-backend/pkg/security"
)

var seedSources = []enums.LeadSource{
	enums.LeadSourceWebsite,
	enums.LeadSourceFacebookAds,
	enums.LeadSourceGoogleAds,
	enums.LeadSourceReferral,
	enums.LeadSourceEvents,
}

var seedStatuses = []enums.LeadStatus{
	enums.LeadStatusNew,
	enums.LeadStatusContacted,
	enums.LeadStatusQualified,
	enums.LeadStatusLost,
	enums.LeadStatusWon,
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	username := flag.String("username", "demo", "seed account username")
	password := flag.String("password", "demo-password", "seed account password")
	count := flag.Int("count", 25, "number of leads to create")
	flag.Parse()

	cfg, err := config.Load()
	fatalOn(ctx, logg, "load config", err)

	if cfg.App.IsProd() {
		logg.Error(ctx, "seeding refused", errors.New("seed is a dev tool, not for production"))
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	fatalOn(ctx, logg, "bootstrap database", err)
	defer dbClient.Close()

	userRepo := users.NewRepository(dbClient.DB())
	leadRepo := leads.NewRepository(dbClient.DB())

	user, err := userRepo.FindByUsername(ctx, *username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hash, hashErr := security.HashPassword(*password, cfg.Password)
		fatalOn(ctx, logg, "hash password", hashErr)

		user, err = userRepo.Create(ctx, users.CreateUserDTO{
			Username:     *username,
			PasswordHash: hash,
		})
	}
	fatalOn(ctx, logg, "resolve seed user", err)

	created := 0
	for i := 0; i < *count; i++ {
		value := decimal.NewFromInt(int64(100 * (i + 1)))
		activity := time.Now().UTC().Add(-time.Duration(i) * 24 * time.Hour)
		company := fmt.Sprintf("Company %02d", i+1)

		_, err := leadRepo.Create(ctx, user.ID, leads.CreateLeadInput{
			FirstName:      fmt.Sprintf("Lead%02d", i+1),
			LastName:       "Sample",
			Email:          fmt.Sprintf("lead%02d@seed.leadpipe.dev", i+1),
			Company:        &company,
			Source:         seedSources[i%len(seedSources)],
			Status:         seedStatuses[i%len(seedStatuses)],
			Score:          (i * 7) % 101,
			LeadValue:      &value,
			LastActivityAt: &activity,
			IsQualified:    i%3 == 0,
		})
		if err != nil {
			if db.IsUniqueViolation(err, "idx_leads_email") {
				continue
			}
			fatalOn(ctx, logg, "create lead", err)
		}
		created++
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"username": user.Username,
		"created":  created,
	})
	logg.Info(ctx, "seed complete")
}

func fatalOn(ctx context.Context, logg *logger.Logger, step string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("seed failed: %s", step), err)
	os.Exit(1)
}
