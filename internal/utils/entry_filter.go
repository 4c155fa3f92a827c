package utils

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitness-tracker/internal/schemas"
)

// EntryFilter is the set of optional constraints of a list or export request.
// All present constraints are combined with AND.
type EntryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Unit      string
	Type      string
	Search    string
}

// ParseEntryFilter reads the filter from the query string. units lists the accepted unit values,
// allowType enables the activity-only type filter.
func ParseEntryFilter(ctx *gin.Context, units []string, allowType bool) (EntryFilter, []schemas.FieldError) {
	var filter EntryFilter
	var violations []schemas.FieldError

	if raw := strings.TrimSpace(ctx.Query(StartDateParamKey)); raw != "" {
		start, _, err := ParseDate(raw)
		if err != nil {
			violations = append(violations, schemas.FieldError{Field: StartDateParamKey, Message: "StartDate must be a valid ISO date"})
		} else {
			filter.StartDate = &start
		}
	}

	if raw := strings.TrimSpace(ctx.Query(EndDateParamKey)); raw != "" {
		end, dateOnly, err := ParseDate(raw)
		if err != nil {
			violations = append(violations, schemas.FieldError{Field: EndDateParamKey, Message: "EndDate must be a valid ISO date"})
		} else {
			if dateOnly {
				end = EndOfDay(end)
			}
			filter.EndDate = &end
		}
	}

	if raw := strings.TrimSpace(ctx.Query(UnitParamKey)); raw != "" {
		if !slices.Contains(units, raw) {
			violations = append(violations, schemas.FieldError{Field: UnitParamKey, Message: "Unit must be one of: " + strings.Join(units, ", ")})
		} else {
			filter.Unit = raw
		}
	}

	if allowType {
		filter.Type = strings.TrimSpace(ctx.Query(TypeParamKey))
	}

	filter.Search = strings.TrimSpace(ctx.Query(SearchParamKey))

	return filter, violations
}

// WhereClause renders the filter as a parameterized SQL condition that is always scoped to the user.
func (f EntryFilter) WhereClause(userId uuid.UUID) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userId}

	add := func(condition string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if f.StartDate != nil {
		add("date >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		add("date <= $%d", *f.EndDate)
	}
	if f.Unit != "" {
		add("unit = $%d", f.Unit)
	}
	if f.Type != "" {
		add("type = $%d", f.Type)
	}
	if f.Search != "" {
		add("notes ILIKE $%d", "%"+escapeLike(f.Search)+"%")
	}

	return strings.Join(conditions, " AND "), args
}

// escapeLike escapes the LIKE wildcards so the search term matches literally.
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}
