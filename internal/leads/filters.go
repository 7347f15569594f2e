package leads

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
)

// LeadFilters describe the supported filter knobs for the list endpoint.
// Every populated field contributes one predicate; all predicates are AND'd.
type LeadFilters struct {
	Search             string              `json:"search,omitempty"`
	Statuses           []enums.LeadStatus  `json:"status,omitempty"`
	Sources            []enums.LeadSource  `json:"source,omitempty"`
	ScoreMin           *int                `json:"score_min,omitempty"`
	ScoreMax           *int                `json:"score_max,omitempty"`
	ValueMin           *decimal.Decimal    `json:"value_min,omitempty"`
	ValueMax           *decimal.Decimal    `json:"value_max,omitempty"`
	IsQualified        *bool               `json:"is_qualified,omitempty"`
	CreatedAfter       *time.Time          `json:"created_after,omitempty"`
	CreatedBefore      *time.Time          `json:"created_before,omitempty"`
	LastActivityAfter  *time.Time          `json:"last_activity_after,omitempty"`
	LastActivityBefore *time.Time          `json:"last_activity_before,omitempty"`
}

// apply appends one WHERE clause per populated filter field. All interval
// bounds are inclusive.
func (f LeadFilters) apply(qb *gorm.DB) *gorm.DB {
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where(
			"(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?)",
			pattern, pattern, pattern, pattern,
		)
	}
	if len(f.Statuses) > 0 {
		qb = qb.Where("status IN ?", f.Statuses)
	}
	if len(f.Sources) > 0 {
		qb = qb.Where("source IN ?", f.Sources)
	}
	if f.ScoreMin != nil {
		qb = qb.Where("score >= ?", *f.ScoreMin)
	}
	if f.ScoreMax != nil {
		qb = qb.Where("score <= ?", *f.ScoreMax)
	}
	if f.ValueMin != nil {
		qb = qb.Where("lead_value >= ?", *f.ValueMin)
	}
	if f.ValueMax != nil {
		qb = qb.Where("lead_value <= ?", *f.ValueMax)
	}
	if f.IsQualified != nil {
		qb = qb.Where("is_qualified = ?", *f.IsQualified)
	}
	if f.CreatedAfter != nil {
		qb = qb.Where("created_at >= ?", *f.CreatedAfter)
	}
	if f.CreatedBefore != nil {
		qb = qb.Where("created_at <= ?", *f.CreatedBefore)
	}
	if f.LastActivityAfter != nil {
		qb = qb.Where("last_activity_at >= ?", *f.LastActivityAfter)
	}
	if f.LastActivityBefore != nil {
		qb = qb.Where("last_activity_at <= ?", *f.LastActivityBefore)
	}
	return qb
}

// SortKey is the allow-listed column identifier for list ordering.
type SortKey string

const (
	SortCreatedAt SortKey = "created_at"
	SortUpdatedAt SortKey = "updated_at"
	SortScore     SortKey = "score"
	SortLeadValue SortKey = "lead_value"
	SortFirstName SortKey = "first_name"
	SortLastName  SortKey = "last_name"
)

var sortKeyByName = map[string]SortKey{
	"createdAt":  SortCreatedAt,
	"created_at": SortCreatedAt,
	"updatedAt":  SortUpdatedAt,
	"updated_at": SortUpdatedAt,
	"score":      SortScore,
	"leadValue":  SortLeadValue,
	"lead_value": SortLeadValue,
	"firstName":  SortFirstName,
	"first_name": SortFirstName,
	"lastName":   SortLastName,
	"last_name":  SortLastName,
}

// ParseSortKey maps a caller-supplied sort name onto the allow-list.
// Unrecognized or absent names fall back to created_at.
func ParseSortKey(value string) SortKey {
	if key, ok := sortKeyByName[strings.TrimSpace(value)]; ok {
		return key
	}
	return SortCreatedAt
}

// SortOrder is the list ordering direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts asc/desc, defaulting to desc.
func ParseSortOrder(value string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(value), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}
