package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avelarsoto/leadpipe-backend/api/middleware"
	"github.com/avelarsoto/leadpipe-backend/api/responses"
	"github.com/avelarsoto/leadpipe-backend/api/validators"
	"github.com/avelarsoto/leadpipe-backend/internal/leads"
	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
	pkgerrors "github.com/avelarsoto/leadpipe-backend/pkg/errors"
	"github.com/avelarsoto/leadpipe-backend/pkg/logger"
)

// leadBody is the JSON payload for both create and update. Update treats every
// field as optional; create enforces its required set in the service layer.
type leadBody struct {
	FirstName      *string          `json:"first_name,omitempty"`
	LastName       *string          `json:"last_name,omitempty"`
	Email          *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string          `json:"phone,omitempty"`
	Company        *string          `json:"company,omitempty"`
	City           *string          `json:"city,omitempty"`
	State          *string          `json:"state,omitempty"`
	Source         *string          `json:"source,omitempty"`
	Status         *string          `json:"status,omitempty"`
	Score          *int             `json:"score,omitempty"`
	LeadValue      *decimal.Decimal `json:"lead_value,omitempty"`
	LastActivityAt *time.Time       `json:"last_activity_at,omitempty"`
	IsQualified    *bool            `json:"is_qualified,omitempty"`
}

func (b leadBody) toCreateInput() (leads.CreateLeadInput, error) {
	input := leads.CreateLeadInput{
		Phone:          b.Phone,
		Company:        b.Company,
		City:           b.City,
		State:          b.State,
		LeadValue:      b.LeadValue,
		LastActivityAt: b.LastActivityAt,
	}
	if b.FirstName != nil {
		input.FirstName = *b.FirstName
	}
	if b.LastName != nil {
		input.LastName = *b.LastName
	}
	if b.Email != nil {
		input.Email = *b.Email
	}
	if b.Score != nil {
		input.Score = *b.Score
	}
	if b.IsQualified != nil {
		input.IsQualified = *b.IsQualified
	}
	if b.Source != nil {
		source, err := enums.ParseLeadSource(*b.Source)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "unknown source value").WithDetails(map[string]any{"field": "source"})
		}
		input.Source = source
	}
	if b.Status != nil {
		status, err := enums.ParseLeadStatus(*b.Status)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "unknown status value").WithDetails(map[string]any{"field": "status"})
		}
		input.Status = status
	}
	return input, nil
}

func (b leadBody) toUpdateInput() (leads.UpdateLeadInput, error) {
	input := leads.UpdateLeadInput{
		FirstName:      b.FirstName,
		LastName:       b.LastName,
		Email:          b.Email,
		Phone:          b.Phone,
		Company:        b.Company,
		City:           b.City,
		State:          b.State,
		Score:          b.Score,
		LeadValue:      b.LeadValue,
		LastActivityAt: b.LastActivityAt,
		IsQualified:    b.IsQualified,
	}
	if b.Source != nil {
		source, err := enums.ParseLeadSource(*b.Source)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "unknown source value").WithDetails(map[string]any{"field": "source"})
		}
		input.Source = &source
	}
	if b.Status != nil {
		status, err := enums.ParseLeadStatus(*b.Status)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "unknown status value").WithDetails(map[string]any{"field": "status"})
		}
		input.Status = &status
	}
	return input, nil
}

func callerID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return id, nil
}

func leadID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "leadId"))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	return id, nil
}

// LeadCreate handles POST /api/leads.
func LeadCreate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body leadBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Create(r.Context(), ownerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, lead)
	}
}

// LeadList handles GET /api/leads with the filter/sort/pagination query.
func LeadList(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := validators.ParseLeadQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), ownerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// LeadGet handles GET /api/leads/{leadId}.
func LeadGet(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := leadID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Get(r.Context(), ownerID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lead)
	}
}

// LeadUpdate handles PUT /api/leads/{leadId}.
func LeadUpdate(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := leadID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body leadBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := body.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Update(r.Context(), ownerID, id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lead)
	}
}

// LeadDelete handles DELETE /api/leads/{leadId}.
func LeadDelete(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := leadID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), ownerID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
