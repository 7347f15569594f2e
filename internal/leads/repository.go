package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelarsoto/leadpipe-backend/pkg/db/models"
	"github.com/avelarsoto/leadpipe-backend/pkg/pagination"
)

// Repository owns lead persistence. Every operation takes an optional owner
// scope: a non-nil ownerID restricts the operation to rows owned by that user,
// and a scoped miss is indistinguishable from a missing row.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new lead owned by ownerID.
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, input CreateLeadInput) (*models.Lead, error) {
	if ownerID == uuid.Nil {
		return nil, fmt.Errorf("ownerID is required")
	}
	lead := input.toModel(ownerID)
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// FindByID loads a lead, optionally scoped to an owner.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	qb := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != nil {
		qb = qb.Where("owner_id = ?", *ownerID)
	}
	if err := qb.First(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

// Update applies the populated fields and refreshes updated_at. It returns
// gorm.ErrRecordNotFound when no row matches the id (and owner scope), so
// callers cannot distinguish a foreign row from a missing one.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID, input UpdateLeadInput) (*models.Lead, error) {
	qb := r.db.WithContext(ctx).Model(&models.Lead{}).Where("id = ?", id)
	if ownerID != nil {
		qb = qb.Where("owner_id = ?", *ownerID)
	}

	res := qb.Updates(input.changes(time.Now().UTC()))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id, ownerID)
}

// Delete removes a lead. It reports gorm.ErrRecordNotFound when nothing was
// deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID, ownerID *uuid.UUID) error {
	qb := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != nil {
		qb = qb.Where("owner_id = ?", *ownerID)
	}

	res := qb.Delete(&models.Lead{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// QueryInput captures the inputs needed to filter, sort, and paginate leads.
type QueryInput struct {
	Filters    LeadFilters
	Pagination pagination.Params
	SortBy     SortKey
	SortOrder  SortOrder
}

// Query runs the filter set against the table and returns one page plus the
// total count over the same predicates. The count runs before limit/offset,
// so total is independent of the requested window; a page past the end yields
// an empty data slice, never an error.
func (r *Repository) Query(ctx context.Context, input QueryInput, ownerID *uuid.UUID) (*pagination.Envelope[LeadDTO], error) {
	params := input.Pagination.Normalize()

	qb := r.db.WithContext(ctx).Model(&models.Lead{})
	qb = input.Filters.apply(qb)
	if ownerID != nil {
		qb = qb.Where("owner_id = ?", *ownerID)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, err
	}

	sortKey := input.SortBy
	if sortKey == "" {
		sortKey = SortCreatedAt
	}
	order := input.SortOrder
	if order == "" {
		order = SortDesc
	}

	var rows []models.Lead
	err := qb.
		Order(fmt.Sprintf("%s %s", sortKey, order)).
		Order("id DESC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	dtos := make([]LeadDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}

	return pagination.NewEnvelope(dtos, params, total), nil
}

// IsNotFound reports whether the error is the repository's missing-row signal.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
