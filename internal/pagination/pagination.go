package pagination

import (
	"estatehub/backend/internal/config"
	"math"
	"strconv"
)

// Page is a normalized offset/limit request.
type Page struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned alongside list payloads.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Result carries one page of rows and the total row count.
type Result[T any] struct {
	Items []T
	Total int64
}

// New clamps page to >= 1 and limit to [1, MaxPageLimit].
func New(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = config.DefaultPageLimit
	}
	if limit > config.MaxPageLimit {
		limit = config.MaxPageLimit
	}
	return Page{Page: page, Limit: limit}
}

// FromQuery parses raw query values; garbage falls back to defaults.
func FromQuery(pageStr, limitStr string) Page {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)
	return New(page, limit)
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta computes totalPages = ceil(total/limit).
func (p Page) Meta(total int64) Meta {
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(p.Limit))),
	}
}
