package paging

import "encoding/json"

const (
	Ascending  = "ASC"
	Descending = "DESC"
)

// Page is one materialized page of a larger result set plus navigation info.
// SortColumn and SortOrder are empty when no ordering was applied.
type Page[T any] struct {
	Data       []T
	PageIndex  int
	PageSize   int
	TotalCount int64
	TotalPages int
	SortColumn string
	SortOrder  string
}

func (p Page[T]) HasPreviousPage() bool {
	return p.PageIndex > 0
}

func (p Page[T]) HasNextPage() bool {
	return p.PageIndex+1 < p.TotalPages
}

type pageJSON[T any] struct {
	Data            []T     `json:"data"`
	PageIndex       int     `json:"pageIndex"`
	PageSize        int     `json:"pageSize"`
	TotalCount      int64   `json:"totalCount"`
	TotalPages      int     `json:"totalPages"`
	SortColumn      *string `json:"sortColumn"`
	SortOrder       *string `json:"sortOrder"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	HasNextPage     bool    `json:"hasNextPage"`
}

func (p Page[T]) MarshalJSON() ([]byte, error) {
	out := pageJSON[T]{
		Data:            p.Data,
		PageIndex:       p.PageIndex,
		PageSize:        p.PageSize,
		TotalCount:      p.TotalCount,
		TotalPages:      p.TotalPages,
		HasPreviousPage: p.HasPreviousPage(),
		HasNextPage:     p.HasNextPage(),
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	if p.SortColumn != "" {
		column, order := p.SortColumn, p.SortOrder
		out.SortColumn = &column
		out.SortOrder = &order
	}
	return json.Marshal(out)
}
