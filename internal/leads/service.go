package leads

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/avelarsoto/leadpipe-backend/pkg/db"
	pkgerrors "github.com/avelarsoto/leadpipe-backend/pkg/errors"
	"github.com/avelarsoto/leadpipe-backend/pkg/pagination"
)

// Service exposes lead management operations scoped to the calling user.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateLeadInput) (*LeadDTO, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*LeadDTO, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateLeadInput) (*LeadDTO, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID, input QueryInput) (*pagination.Envelope[LeadDTO], error)
}

type service struct {
	repo *Repository
}

// NewService constructs a lead service backed by the provided repository.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lead repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input CreateLeadInput) (*LeadDTO, error) {
	if err := validateCreate(&input); err != nil {
		return nil, err
	}

	lead, err := s.repo.Create(ctx, ownerID, input)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_leads_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create lead")
	}
	return FromModel(lead), nil
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (*LeadDTO, error) {
	lead, err := s.repo.FindByID(ctx, id, &ownerID)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load lead")
	}
	return FromModel(lead), nil
}

func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, input UpdateLeadInput) (*LeadDTO, error) {
	if err := validateUpdate(&input); err != nil {
		return nil, err
	}

	lead, err := s.repo.Update(ctx, id, &ownerID, input)
	if err != nil {
		switch {
		case IsNotFound(err):
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		case db.IsUniqueViolation(err, "idx_leads_email"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update lead")
	}
	return FromModel(lead), nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, &ownerID); err != nil {
		if IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete lead")
	}
	return nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, input QueryInput) (*pagination.Envelope[LeadDTO], error) {
	result, err := s.repo.Query(ctx, input, &ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "query leads")
	}
	return result, nil
}

func validateCreate(input *CreateLeadInput) error {
	details := map[string]string{}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.FirstName == "" {
		details["first_name"] = "required"
	}
	if input.LastName == "" {
		details["last_name"] = "required"
	}
	if input.Email == "" {
		details["email"] = "required"
	}
	if input.Source != "" && !input.Source.IsValid() {
		details["source"] = "unknown source"
	}
	if input.Status != "" && !input.Status.IsValid() {
		details["status"] = "unknown status"
	}
	if input.Score < 0 || input.Score > 100 {
		details["score"] = "must be between 0 and 100"
	}
	if input.LeadValue != nil && input.LeadValue.IsNegative() {
		details["lead_value"] = "must not be negative"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid lead").WithDetails(details)
	}
	return nil
}

func validateUpdate(input *UpdateLeadInput) error {
	details := map[string]string{}

	if input.FirstName != nil {
		*input.FirstName = strings.TrimSpace(*input.FirstName)
		if *input.FirstName == "" {
			details["first_name"] = "must not be blank"
		}
	}
	if input.LastName != nil {
		*input.LastName = strings.TrimSpace(*input.LastName)
		if *input.LastName == "" {
			details["last_name"] = "must not be blank"
		}
	}
	if input.Email != nil {
		*input.Email = strings.ToLower(strings.TrimSpace(*input.Email))
		if *input.Email == "" {
			details["email"] = "must not be blank"
		}
	}
	if input.Source != nil && !input.Source.IsValid() {
		details["source"] = "unknown source"
	}
	if input.Status != nil && !input.Status.IsValid() {
		details["status"] = "unknown status"
	}
	if input.Score != nil && (*input.Score < 0 || *input.Score > 100) {
		details["score"] = "must be between 0 and 100"
	}
	if input.LeadValue != nil && input.LeadValue.IsNegative() {
		details["lead_value"] = "must not be negative"
	}

	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid lead").WithDetails(details)
	}
	return nil
}
