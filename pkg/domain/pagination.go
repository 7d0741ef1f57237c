package domain

import (
	"fmt"
)

// PaginationOptions defines offset/limit pagination over query results.
// Documents have no stable identity, so positions are the only cursor.
type PaginationOptions struct {
	Limit    int `json:"limit,omitempty"`
	Offset   int `json:"offset,omitempty"`
	MaxLimit int `json:"max_limit,omitempty"` // Maximum allowed limit
}

// PaginationResult contains one page of documents and its metadata
type PaginationResult struct {
	Documents []Document `json:"documents"`
	HasNext   bool       `json:"has_next"`
	HasPrev   bool       `json:"has_prev"`
	Total     int64      `json:"total"`
}

// DefaultPaginationOptions returns default pagination settings
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		Limit:    50,
		MaxLimit: 1000,
	}
}

// Validate validates pagination options
func (po *PaginationOptions) Validate() error {
	if po.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if po.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	if po.MaxLimit > 0 && po.Limit > po.MaxLimit {
		return fmt.Errorf("limit %d exceeds maximum %d", po.Limit, po.MaxLimit)
	}
	return nil
}

// Paginate slices docs according to the options. A zero Limit returns
// everything after Offset.
func (po *PaginationOptions) Paginate(docs []Document) *PaginationResult {
	total := len(docs)
	start := po.Offset
	if start > total {
		start = total
	}
	end := total
	if po.Limit > 0 && start+po.Limit < total {
		end = start + po.Limit
	}

	page := docs[start:end]
	if page == nil {
		page = []Document{}
	}

	return &PaginationResult{
		Documents: page,
		HasNext:   end < total,
		HasPrev:   start > 0,
		Total:     int64(total),
	}
}
