package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
)

// Lead represents a prospective customer tracked through the sales pipeline.
// LeadValue is stored as NUMERIC(12,2); it never passes through float64.
type Lead struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID        uuid.UUID        `gorm:"column:owner_id;type:uuid;not null;index:idx_leads_owner"`
	FirstName      string           `gorm:"column:first_name;not null"`
	LastName       string           `gorm:"column:last_name;not null"`
	Email          string           `gorm:"column:email;type:text;not null;uniqueIndex:idx_leads_email"`
	Phone          *string          `gorm:"column:phone"`
	Company        *string          `gorm:"column:company"`
	City           *string          `gorm:"column:city"`
	State          *string          `gorm:"column:state"`
	Source         enums.LeadSource `gorm:"column:source;not null;default:other"`
	Status         enums.LeadStatus `gorm:"column:status;not null;default:new"`
	Score          int              `gorm:"column:score;not null;default:0"`
	LeadValue      *decimal.Decimal `gorm:"column:lead_value;type:numeric(12,2)"`
	LastActivityAt *time.Time       `gorm:"column:last_activity_at"`
	IsQualified    bool             `gorm:"column:is_qualified;not null;default:false"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
