// Package utils provides utility functions to support various operations within the application.
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitness-tracker/internal/schemas"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// maxPage keeps the offset within int for every accepted limit.
	maxPage = math.MaxInt / maxLimit
)

// PageParams is a 1-indexed page request.
type PageParams struct {
	Page  int
	Limit int
}

// Offset is the number of rows skipped before the page starts.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePageParams extracts the 'page' and 'limit' query parameters.
// Missing values fall back to page 1 with 10 records, limits above 100 and huge pages are capped.
func ParsePageParams(ctx *gin.Context) (PageParams, []schemas.FieldError) {
	params := PageParams{Page: defaultPage, Limit: defaultLimit}
	var violations []schemas.FieldError

	if raw := ctx.Query(PageParamKey); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			violations = append(violations, schemas.FieldError{Field: PageParamKey, Message: "Page must be a positive integer"})
		} else {
			params.Page = min(page, maxPage)
		}
	}

	if raw := ctx.Query(LimitParamKey); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			violations = append(violations, schemas.FieldError{Field: LimitParamKey, Message: "Limit must be a positive integer"})
		} else {
			params.Limit = min(limit, maxLimit)
		}
	}

	return params, violations
}

// NewPageMetadata computes the page description for the given total record count.
func NewPageMetadata(params PageParams, total int) schemas.PageMetadata {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return schemas.PageMetadata{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
