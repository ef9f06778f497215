package services

import (
	"math"

	"project-tracker/backend/internal/repositories"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a 1-based page number and a page size.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps the request: pages start at 1 and sizes fall back to
// DefaultPageSize, never exceeding MaxPageSize. Page is capped so the offset
// of its first row still fits in an int; that page is past any real data.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	return p
}

func (p PageRequest) window() repositories.Pagination {
	return repositories.Pagination{Offset: (p.Page - 1) * p.Limit, Limit: p.Limit}
}
