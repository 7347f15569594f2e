package leads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avelarsoto/leadpipe-backend/pkg/db/models"
	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
)

// LeadDTO is the transport shape for a lead.
type LeadDTO struct {
	ID             uuid.UUID        `json:"id"`
	OwnerID        uuid.UUID        `json:"owner_id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Email          string           `json:"email"`
	Phone          *string          `json:"phone,omitempty"`
	Company        *string          `json:"company,omitempty"`
	City           *string          `json:"city,omitempty"`
	State          *string          `json:"state,omitempty"`
	Source         enums.LeadSource `json:"source"`
	Status         enums.LeadStatus `json:"status"`
	Score          int              `json:"score"`
	LeadValue      *decimal.Decimal `json:"lead_value,omitempty"`
	LastActivityAt *time.Time       `json:"last_activity_at,omitempty"`
	IsQualified    bool             `json:"is_qualified"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CreateLeadInput holds the validated payload to create a lead.
type CreateLeadInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	Company        *string
	City           *string
	State          *string
	Source         enums.LeadSource
	Status         enums.LeadStatus
	Score          int
	LeadValue      *decimal.Decimal
	LastActivityAt *time.Time
	IsQualified    bool
}

// UpdateLeadInput holds optional mutation values for a lead. Nil fields are
// left untouched.
type UpdateLeadInput struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Company        *string
	City           *string
	State          *string
	Source         *enums.LeadSource
	Status         *enums.LeadStatus
	Score          *int
	LeadValue      *decimal.Decimal
	LastActivityAt *time.Time
	IsQualified    *bool
}

func FromModel(m *models.Lead) *LeadDTO {
	if m == nil {
		return nil
	}

	return &LeadDTO{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		Company:        m.Company,
		City:           m.City,
		State:          m.State,
		Source:         m.Source,
		Status:         m.Status,
		Score:          m.Score,
		LeadValue:      m.LeadValue,
		LastActivityAt: m.LastActivityAt,
		IsQualified:    m.IsQualified,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (c CreateLeadInput) toModel(ownerID uuid.UUID) *models.Lead {
	status := c.Status
	if status == "" {
		status = enums.LeadStatusNew
	}
	source := c.Source
	if source == "" {
		source = enums.LeadSourceOther
	}

	return &models.Lead{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		City:           c.City,
		State:          c.State,
		Source:         source,
		Status:         status,
		Score:          c.Score,
		LeadValue:      c.LeadValue,
		LastActivityAt: c.LastActivityAt,
		IsQualified:    c.IsQualified,
	}
}

// changes maps populated fields onto column updates. updated_at refreshes on
// every update regardless of which fields changed.
func (u UpdateLeadInput) changes(now time.Time) map[string]any {
	changes := map[string]any{"updated_at": now}

	if u.FirstName != nil {
		changes["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		changes["last_name"] = *u.LastName
	}
	if u.Email != nil {
		changes["email"] = *u.Email
	}
	if u.Phone != nil {
		changes["phone"] = *u.Phone
	}
	if u.Company != nil {
		changes["company"] = *u.Company
	}
	if u.City != nil {
		changes["city"] = *u.City
	}
	if u.State != nil {
		changes["state"] = *u.State
	}
	if u.Source != nil {
		changes["source"] = *u.Source
	}
	if u.Status != nil {
		changes["status"] = *u.Status
	}
	if u.Score != nil {
		changes["score"] = *u.Score
	}
	if u.LeadValue != nil {
		changes["lead_value"] = *u.LeadValue
	}
	if u.LastActivityAt != nil {
		changes["last_activity_at"] = *u.LastActivityAt
	}
	if u.IsQualified != nil {
		changes["is_qualified"] = *u.IsQualified
	}

	return changes
}
