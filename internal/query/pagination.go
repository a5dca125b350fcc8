package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/noah-isme/daycare-api/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (Number-1)*Limit within int for every accepted limit.
	MaxPage = math.MaxInt/MaxLimit + 1
)

// Page is a normalised page request. Number is 1-based.
type Page struct {
	Number int
	Limit  int
}

// Parse normalises raw query string values. Absent or non-numeric values fall back to the
// defaults; numeric values are clamped so that 1 <= Number <= MaxPage and 1 <= Limit <= MaxLimit.
func Parse(rawPage, rawLimit string) Page {
	page := parseIntOr(rawPage, DefaultPage)
	limit := parseIntOr(rawLimit, DefaultLimit)
	return Page{Number: clamp(page, 1, MaxPage), Limit: clamp(limit, 1, MaxLimit)}
}

// NewPage normalises already-typed values. Zero means "not provided" and selects the default.
func NewPage(page, limit int) Page {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	return Page{Number: clamp(page, 1, MaxPage), Limit: clamp(limit, 1, MaxLimit)}
}

// Offset is the number of rows skipped before this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// Meta builds the response pagination block for a total row count.
func (p Page) Meta(total int) models.Pagination {
	pages := 0
	if total > 0 {
		pages = (total + p.Limit - 1) / p.Limit
	}
	return models.Pagination{Page: p.Number, Limit: p.Limit, Total: total, Pages: pages}
}

func parseIntOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
