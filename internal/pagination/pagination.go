// Package pagination pages ledger listings and narrows them to a period.
package pagination

import (
	"gorm.io/gorm"

	apperrors "github.com/Shiva143-debug/backend-exp/internal/errors"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest is the page and page_size query pair.
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in the first page and the default size.
func (p *PageRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset is the number of rows before the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Scope limits a query to the page.
func (p PageRequest) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(p.PageSize)
}

// PageResponse is one page of a listing with its totals.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds the page. Data is never null on the wire.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	var pages int
	if pageSize > 0 {
		pages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: pages,
	}
}

// Period narrows a ledger to a month, a year, or both. Nil fields match
// every row.
type Period struct {
	Month *int
	Year  *int
}

// Validate rejects periods no row can be filed under.
func (p Period) Validate() error {
	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be between 1 and 12")
	}
	if p.Year != nil && (*p.Year < 1900 || *p.Year > 9999) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "year is out of range")
	}
	return nil
}

// Scope filters on the month and year columns every ledger table carries.
func (p Period) Scope(db *gorm.DB) *gorm.DB {
	if p.Month != nil {
		db = db.Where("month = ?", *p.Month)
	}
	if p.Year != nil {
		db = db.Where("year = ?", *p.Year)
	}
	return db
}

// List counts the rows q selects and loads the requested page of them in
// order. Order is applied after counting so it never reaches the COUNT.
func List[T any](q *gorm.DB, req PageRequest, order string) (*PageResponse[T], error) {
	req.Defaults()

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []T
	if err := q.Scopes(req.Scope).Order(order).Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	page := NewPageResponse(items, req.Page, req.PageSize, total)
	return &page, nil
}
