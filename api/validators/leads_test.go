package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelarsoto/leadpipe-backend/internal/leads"
	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
	pkgerrors "github.com/avelarsoto/leadpipe-backend/pkg/errors"
)

func TestParseLeadQueryDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/leads", nil)

	input, err := ParseLeadQuery(req)
	require.NoError(t, err)

	assert.Equal(t, 1, input.Pagination.Page)
	assert.Equal(t, 20, input.Pagination.Limit)
	assert.Equal(t, leads.SortCreatedAt, input.SortBy)
	assert.Equal(t, leads.SortDesc, input.SortOrder)
	assert.Empty(t, input.Filters.Search)
	assert.Nil(t, input.Filters.ScoreMin)
	assert.Nil(t, input.Filters.IsQualified)
}

func TestParseLeadQueryFullSurface(t *testing.T) {
	req := httptest.NewRequest("GET",
		"/api/leads?page=3&limit=50&search=ann&status=new,won&source=website"+
			"&scoreMin=10&scoreMax=90&valueMin=100.50&valueMax=5000"+
			"&isQualified=true&createdAfter=2025-01-01&createdBefore=2025-06-30T23:59:59Z"+
			"&sortBy=leadValue&sortOrder=asc", nil)

	input, err := ParseLeadQuery(req)
	require.NoError(t, err)

	assert.Equal(t, 3, input.Pagination.Page)
	assert.Equal(t, 50, input.Pagination.Limit)
	assert.Equal(t, "ann", input.Filters.Search)
	assert.Equal(t, []enums.LeadStatus{enums.LeadStatusNew, enums.LeadStatusWon}, input.Filters.Statuses)
	assert.Equal(t, []enums.LeadSource{enums.LeadSourceWebsite}, input.Filters.Sources)
	require.NotNil(t, input.Filters.ScoreMin)
	assert.Equal(t, 10, *input.Filters.ScoreMin)
	require.NotNil(t, input.Filters.ValueMin)
	assert.Equal(t, "100.5", input.Filters.ValueMin.String())
	require.NotNil(t, input.Filters.IsQualified)
	assert.True(t, *input.Filters.IsQualified)
	require.NotNil(t, input.Filters.CreatedAfter)
	require.NotNil(t, input.Filters.CreatedBefore)
	assert.Equal(t, leads.SortLeadValue, input.SortBy)
	assert.Equal(t, leads.SortAsc, input.SortOrder)
}

func TestParseLeadQueryClampsPagination(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/leads?page=0&limit=5000", nil)

	input, err := ParseLeadQuery(req)
	require.NoError(t, err)

	assert.Equal(t, 1, input.Pagination.Page)
	assert.Equal(t, 100, input.Pagination.Limit)
}

func TestParseLeadQueryRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"unknown status":  "/api/leads?status=bogus",
		"unknown source":  "/api/leads?source=carrier_pigeon",
		"bad score":       "/api/leads?scoreMin=abc",
		"bad decimal":     "/api/leads?valueMin=12.x",
		"bad bool":        "/api/leads?isQualified=maybe",
		"bad timestamp":   "/api/leads?createdAfter=yesterday",
		"bad page number": "/api/leads?page=two",
	}

	for name, target := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", target, nil)
			_, err := ParseLeadQuery(req)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestParseLeadQueryUnknownSortFallsBack(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/leads?sortBy=password_hash&sortOrder=sideways", nil)

	input, err := ParseLeadQuery(req)
	require.NoError(t, err)

	assert.Equal(t, leads.SortCreatedAt, input.SortBy)
	assert.Equal(t, leads.SortDesc, input.SortOrder)
}
