package paging

import (
	"context"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query is a deferred, composable query over records of type T.
// Composing methods return a new Query and never modify the receiver;
// only Count and Materialize execute anything.
type Query[T any] interface {
	Count(ctx context.Context) (int64, error)
	OrderBy(field Field, descending bool) Query[T]
	Skip(n int) Query[T]
	Take(n int) Query[T]
	Materialize(ctx context.Context) ([]T, error)
}

type gormQuery[T any] struct {
	db *gorm.DB
}

// FromGorm wraps a GORM query. Filters already applied to db are kept;
// db itself is never modified.
func FromGorm[T any](db *gorm.DB) Query[T] {
	return gormQuery[T]{db: db}
}

func (q gormQuery[T]) chain() *gorm.DB {
	return q.db.Session(&gorm.Session{})
}

func (q gormQuery[T]) Count(ctx context.Context) (int64, error) {
	var total int64
	err := q.chain().WithContext(ctx).Model(new(T)).Count(&total).Error
	return total, err
}

// OrderBy sorts by field, then by the primary key so that rows with equal
// values keep the same order on every page.
func (q gormQuery[T]) OrderBy(field Field, descending bool) Query[T] {
	columns := []clause.OrderByColumn{orderColumn(field.Column, descending)}
	if s, err := SchemaOf[T](); err == nil && s.Key != nil && s.Key.Column != field.Column {
		columns = append(columns, orderColumn(s.Key.Column, descending))
	}
	return gormQuery[T]{db: q.chain().Clauses(clause.OrderBy{Columns: columns})}
}

func orderColumn(name string, descending bool) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: clause.Column{Table: clause.CurrentTable, Name: name},
		Desc:   descending,
	}
}

func (q gormQuery[T]) Skip(n int) Query[T] {
	return gormQuery[T]{db: q.chain().Offset(n)}
}

func (q gormQuery[T]) Take(n int) Query[T] {
	return gormQuery[T]{db: q.chain().Limit(n)}
}

func (q gormQuery[T]) Materialize(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := q.chain().WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type sliceQuery[T any] struct {
	items []T
	steps []func([]T) []T
}

// FromSlice returns an in-memory Query over items. The slice is never reordered.
func FromSlice[T any](items []T) Query[T] {
	return sliceQuery[T]{items: items}
}

func (q sliceQuery[T]) then(step func([]T) []T) Query[T] {
	steps := make([]func([]T) []T, len(q.steps), len(q.steps)+1)
	copy(steps, q.steps)
	return sliceQuery[T]{items: q.items, steps: append(steps, step)}
}

func (q sliceQuery[T]) run(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := slices.Clone(q.items)
	if rows == nil {
		rows = make([]T, 0)
	}
	for _, step := range q.steps {
		rows = step(rows)
	}
	return rows, nil
}

func (q sliceQuery[T]) Count(ctx context.Context) (int64, error) {
	rows, err := q.run(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (q sliceQuery[T]) OrderBy(field Field, descending bool) Query[T] {
	return q.then(func(rows []T) []T {
		slices.SortStableFunc(rows, func(a, b T) int {
			if descending {
				return field.Compare(b, a)
			}
			return field.Compare(a, b)
		})
		return rows
	})
}

func (q sliceQuery[T]) Skip(n int) Query[T] {
	return q.then(func(rows []T) []T {
		if n <= 0 {
			return rows
		}
		if n >= len(rows) {
			return rows[:0]
		}
		return rows[n:]
	})
}

func (q sliceQuery[T]) Take(n int) Query[T] {
	return q.then(func(rows []T) []T {
		if n < 0 {
			return rows
		}
		if n < len(rows) {
			return rows[:n]
		}
		return rows
	})
}

func (q sliceQuery[T]) Materialize(ctx context.Context) ([]T, error) {
	return q.run(ctx)
}
