package paging

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPageRequest matches every *InvalidPageRequestError.
	ErrInvalidPageRequest = errors.New("invalid page request")
	// ErrInvalidPageSize matches an *InvalidPageRequestError caused by a non-positive page size.
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// InvalidPageRequestError is returned by Build before any query is executed
// when the caller passes a negative page index or a non-positive page size.
type InvalidPageRequestError struct {
	PageIndex int
	PageSize  int
}

func (e *InvalidPageRequestError) Error() string {
	if e.PageSize <= 0 {
		return fmt.Sprintf("invalid page request: page size must be positive, got %d", e.PageSize)
	}
	return fmt.Sprintf("invalid page request: page index must not be negative, got %d", e.PageIndex)
}

func (e *InvalidPageRequestError) Is(target error) bool {
	switch target {
	case ErrInvalidPageRequest:
		return true
	case ErrInvalidPageSize:
		return e.PageSize <= 0
	}
	return false
}

// PropertyNotFoundError is returned by Property when the name does not
// denote a sortable field of the entity type.
type PropertyNotFoundError struct {
	Type     string
	Property string
}

func (e *PropertyNotFoundError) Error() string {
	return fmt.Sprintf("property %q not found on %s", e.Property, e.Type)
}
