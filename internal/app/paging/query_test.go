package paging

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func cityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "population"}).
		AddRow(3, "Berlin", 300).
		AddRow(4, "Bonn", 40)
}

func TestGormBuildPushesDownSortAndPage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "test_cities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "test_cities" ORDER BY "test_cities"."name","test_cities"."id" LIMIT`)).
		WillReturnRows(cityRows())

	page, err := Build(context.Background(), FromGorm[testCity](db), 1, 2, "Name", "asc")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, int64(5), page.TotalCount)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, "Name", page.SortColumn)
	require.Equal(t, Ascending, page.SortOrder)
	require.Len(t, page.Data, 2)
	require.Equal(t, "Berlin", page.Data[0].Name)
}

func TestGormBuildDescending(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "test_cities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY "test_cities"."population" DESC,"test_cities"."id" DESC LIMIT`)).
		WillReturnRows(cityRows())

	page, err := Build(context.Background(), FromGorm[testCity](db), 0, 10, "population", "")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Equal(t, Descending, page.SortOrder)
}

func TestGormBuildNeverEmitsInvalidSortColumn(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "test_cities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`^SELECT \* FROM "test_cities" LIMIT`).
		WillReturnRows(cityRows())

	page, err := Build(context.Background(), FromGorm[testCity](db), 0, 10, `name"; DROP TABLE test_cities; --`, "ASC")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Empty(t, page.SortColumn)
}

func TestGormBuildKeepsCallerFilter(t *testing.T) {
	db, mock := newMockDB(t)
	filtered := db.Where("population > ?", 10)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "test_cities" WHERE population > $1`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "test_cities" WHERE population > $1 ORDER BY "test_cities"."id" DESC LIMIT`)).
		WillReturnRows(cityRows())
	// the caller's query is still unordered and unpaged afterwards
	mock.ExpectQuery(`^SELECT \* FROM "test_cities" WHERE population > \$1$`).
		WithArgs(10).
		WillReturnRows(cityRows())

	_, err := Build(context.Background(), FromGorm[testCity](filtered), 0, 10, "id", "desc")
	require.NoError(t, err)

	var rows []testCity
	require.NoError(t, filtered.Find(&rows).Error)
	require.Len(t, rows, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBuildBreaksTiesByKey(t *testing.T) {
	db, mock := newMockDB(t)

	for _, page := range []int{0, 1} {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "test_cities"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY "test_cities"."name" DESC,"test_cities"."id" DESC LIMIT`)).
			WillReturnRows(cityRows())

		result, err := Build(context.Background(), FromGorm[testCity](db), page, 2, "name", "desc")
		require.NoError(t, err)
		require.Equal(t, "name", result.SortColumn)
		require.Equal(t, Descending, result.SortOrder)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormBuildSkipsFetchPastLastPage(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "test_cities"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	page, err := Build(context.Background(), FromGorm[testCity](db), 4, 10, "", "")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Empty(t, page.Data)
}

func TestSliceQueryDoesNotReorderInput(t *testing.T) {
	cities := []testCity{{ID: 1, Name: "b"}, {ID: 2, Name: "a"}, {ID: 3, Name: "c"}}
	name, err := Property[testCity]("name")
	require.NoError(t, err)

	base := FromSlice(cities)
	sorted, err := base.OrderBy(name, false).Materialize(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, []string{sorted[0].Name, sorted[1].Name, sorted[2].Name})

	require.Equal(t, "b", cities[0].Name)

	rows, err := base.Skip(1).Take(1).Materialize(context.Background())
	require.NoError(t, err)
	require.Equal(t, []testCity{{ID: 2, Name: "a"}}, rows)

	count, err := base.Skip(2).Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestSliceQueryStableSort(t *testing.T) {
	cities := []testCity{{ID: 1, Population: 5}, {ID: 2, Population: 1}, {ID: 3, Population: 5}, {ID: 4, Population: 1}}
	population, err := Property[testCity]("population")
	require.NoError(t, err)

	rows, err := FromSlice(cities).OrderBy(population, true).Materialize(context.Background())
	require.NoError(t, err)

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	require.Equal(t, []uint{1, 3, 2, 4}, ids)
}
