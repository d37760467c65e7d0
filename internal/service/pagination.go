package service

import (
	"github.com/edusync/academia-api/internal/models"
	"github.com/edusync/academia-api/pkg/config"
)

// PageDefaults holds the process-wide pagination defaults handed to
// every service at construction time. Resolution is pure: no upper
// bound is applied to a caller-provided limit.
type PageDefaults struct {
	Limit  int
	Offset int
}

// NewPageDefaults builds PageDefaults from loaded configuration.
func NewPageDefaults(cfg config.PaginationConfig) PageDefaults {
	return PageDefaults{Limit: cfg.DefaultLimit, Offset: cfg.DefaultOffset}
}

// Resolve returns the effective limit and offset for a list query.
func (d PageDefaults) Resolve(q models.PageQuery) (limit, offset int) {
	limit = d.Limit
	if q.Limit != nil && *q.Limit > 0 {
		limit = *q.Limit
	}
	offset = d.Offset
	if q.Offset != nil && *q.Offset >= 0 {
		offset = *q.Offset
	}
	return limit, offset
}
