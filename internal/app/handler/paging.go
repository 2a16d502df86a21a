package handler

import (
	"WorldCities/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// PageQuery is the query string of the list endpoints
type PageQuery struct {
	PageIndex    int    `form:"pageIndex,default=0"`
	PageSize     int    `form:"pageSize"`
	SortColumn   string `form:"sortColumn"`
	SortOrder    string `form:"sortOrder"`
	FilterColumn string `form:"filterColumn"`
	FilterQuery  string `form:"filterQuery"`
}

// bindPageRequest reads the paging parameters. An absent pageSize takes
// defaultPageSize; an explicit pageSize=0 is kept so that it is rejected.
func bindPageRequest(ctx *gin.Context, defaultPageSize int) (repository.PageRequest, error) {
	var q PageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return repository.PageRequest{}, err
	}
	if _, ok := ctx.GetQuery("pageSize"); !ok {
		q.PageSize = defaultPageSize
	}

	return repository.PageRequest{
		PageIndex:    q.PageIndex,
		PageSize:     q.PageSize,
		SortColumn:   q.SortColumn,
		SortOrder:    q.SortOrder,
		FilterColumn: q.FilterColumn,
		FilterQuery:  q.FilterQuery,
	}, nil
}
