// Package paging turns a deferred query into one page of results with
// navigation metadata. Sort columns come from untrusted callers, so they are
// resolved against the entity's own schema and never reach the query as text.
package paging

import (
	"context"
	"fmt"
	"strings"
)

// Build counts source, applies the requested ordering, then fetches the page
// at pageIndex (zero based).
//
// sortColumn is ignored when it does not name a field of T; the returned page
// then has no SortColumn and keeps whatever order source had. sortOrder other
// than "ASC" (any case), including empty, sorts descending.
func Build[T any](ctx context.Context, source Query[T], pageIndex, pageSize int, sortColumn, sortOrder string) (Page[T], error) {
	if pageIndex < 0 || pageSize <= 0 {
		return Page[T]{}, &InvalidPageRequestError{PageIndex: pageIndex, PageSize: pageSize}
	}

	total, err := source.Count(ctx)
	if err != nil {
		return Page[T]{}, fmt.Errorf("count rows: %w", err)
	}

	page := Page[T]{
		PageIndex:  pageIndex,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}

	if field, ok := lookup[T](sortColumn); ok {
		descending := !strings.EqualFold(sortOrder, Ascending)
		source = source.OrderBy(field, descending)
		page.SortColumn = sortColumn
		page.SortOrder = Ascending
		if descending {
			page.SortOrder = Descending
		}
	}

	// past the last page; also keeps pageIndex*pageSize from overflowing
	if pageIndex >= page.TotalPages {
		page.Data = make([]T, 0)
		return page, nil
	}

	rows, err := source.Skip(pageIndex * pageSize).Take(pageSize).Materialize(ctx)
	if err != nil {
		return Page[T]{}, fmt.Errorf("fetch page %d: %w", pageIndex, err)
	}
	page.Data = rows
	return page, nil
}
