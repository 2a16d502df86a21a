package repository

import (
	"WorldCities/internal/app/paging"
	"context"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageRequest carries the list parameters of a paged endpoint.
type PageRequest struct {
	PageIndex    int
	PageSize     int
	SortColumn   string
	SortOrder    string
	FilterColumn string
	FilterQuery  string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// listPage applies the optional prefix filter and pages the result.
// An unknown filter column is an error; an unknown sort column is ignored.
func listPage[T any](ctx context.Context, db *gorm.DB, req PageRequest) (paging.Page[T], error) {
	query := db.Model(new(T))

	if req.FilterColumn != "" && req.FilterQuery != "" {
		field, err := paging.Property[T](req.FilterColumn)
		if err != nil {
			return paging.Page[T]{}, err
		}
		query = query.Where(prefixMatch(field, req.FilterQuery))
	}

	return paging.Build(ctx, paging.FromGorm[T](query), req.PageIndex, req.PageSize, req.SortColumn, req.SortOrder)
}

func prefixMatch(field paging.Field, prefix string) clause.Expression {
	column := clause.Column{Table: clause.CurrentTable, Name: field.Column}
	pattern := likeEscaper.Replace(prefix) + "%"
	if field.Kind == reflect.String {
		return clause.Like{Column: column, Value: pattern}
	}
	return clause.Expr{SQL: "CAST(? AS TEXT) LIKE ?", Vars: []interface{}{column, pattern}}
}
