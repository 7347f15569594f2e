package validators

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelarsoto/leadpipe-backend/internal/leads"
	"github.com/avelarsoto/leadpipe-backend/pkg/enums"
	pkgerrors "github.com/avelarsoto/leadpipe-backend/pkg/errors"
	"github.com/avelarsoto/leadpipe-backend/pkg/pagination"
)

var queryTimeLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseLeadQuery maps the list endpoint's query string onto a QueryInput.
// Page and limit are clamped rather than rejected; enum, numeric, and
// timestamp values must parse or the whole request is a 400.
func ParseLeadQuery(r *http.Request) (leads.QueryInput, error) {
	var input leads.QueryInput

	page, err := ParseQueryInt(r, "page", 1, -1<<31, 1<<31-1)
	if err != nil {
		return input, err
	}
	limit, err := ParseQueryInt(r, "limit", pagination.DefaultLimit, -1<<31, 1<<31-1)
	if err != nil {
		return input, err
	}
	input.Pagination = pagination.Params{Page: page, Limit: limit}.Normalize()

	q := r.URL.Query()
	input.Filters.Search = strings.TrimSpace(q.Get("search"))

	for _, raw := range splitMulti(q["status"]) {
		status, err := enums.ParseLeadStatus(raw)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "unknown status value").WithDetails(map[string]any{"field": "status", "value": raw})
		}
		input.Filters.Statuses = append(input.Filters.Statuses, status)
	}
	for _, raw := range splitMulti(q["source"]) {
		source, err := enums.ParseLeadSource(raw)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "unknown source value").WithDetails(map[string]any{"field": "source", "value": raw})
		}
		input.Filters.Sources = append(input.Filters.Sources, source)
	}

	if input.Filters.ScoreMin, err = parseOptionalInt(r, "scoreMin"); err != nil {
		return input, err
	}
	if input.Filters.ScoreMax, err = parseOptionalInt(r, "scoreMax"); err != nil {
		return input, err
	}
	if input.Filters.ValueMin, err = parseOptionalDecimal(r, "valueMin"); err != nil {
		return input, err
	}
	if input.Filters.ValueMax, err = parseOptionalDecimal(r, "valueMax"); err != nil {
		return input, err
	}
	if input.Filters.IsQualified, err = ParseQueryBool(r, "isQualified"); err != nil {
		return input, err
	}
	if input.Filters.CreatedAfter, err = parseOptionalTime(r, "createdAfter"); err != nil {
		return input, err
	}
	if input.Filters.CreatedBefore, err = parseOptionalTime(r, "createdBefore"); err != nil {
		return input, err
	}
	if input.Filters.LastActivityAfter, err = parseOptionalTime(r, "lastActivityAfter"); err != nil {
		return input, err
	}
	if input.Filters.LastActivityBefore, err = parseOptionalTime(r, "lastActivityBefore"); err != nil {
		return input, err
	}

	input.SortBy = leads.ParseSortKey(q.Get("sortBy"))
	input.SortOrder = leads.ParseSortOrder(q.Get("sortOrder"))

	return input, nil
}

// splitMulti accepts both repeated params and comma-separated lists.
func splitMulti(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseOptionalInt(r *http.Request, key string) (*int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := ParseQueryInt(r, key, 0, -1<<31, 1<<31-1)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseOptionalDecimal(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a decimal").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func parseOptionalTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range queryTimeLayouts {
		if value, err := time.Parse(layout, raw); err == nil {
			return &value, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be an RFC3339 timestamp or date").WithDetails(map[string]any{"field": key})
}
