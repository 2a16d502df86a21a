package repository

import (
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/paging"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var cityColumns = []string{"id", "name", "name_ascii", "lat", "lon", "country_id"}

func TestGetCitiesFilteredAndSorted(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "cities" WHERE "cities"."name" LIKE $1`)).
		WithArgs("Rom%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cities" WHERE "cities"."name" LIKE $1 ORDER BY "cities"."name","cities"."id" LIMIT`)).
		WillReturnRows(sqlmock.NewRows(cityColumns).
			AddRow(11, "Roma", "Roma", 41.8931, 12.4828, 3).
			AddRow(12, "Romans", "Romans", 45.0436, 5.0517, 4))

	page, err := repo.City.GetCities(context.Background(), PageRequest{
		PageIndex:    1,
		PageSize:     10,
		SortColumn:   "name",
		SortOrder:    "asc",
		FilterColumn: "name",
		FilterQuery:  "Rom",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, int64(12), page.TotalCount)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, "ASC", page.SortOrder)
	require.Len(t, page.Data, 2)
	require.Equal(t, "Roma", page.Data[0].Name)
	require.Equal(t, uint(3), page.Data[0].CountryID)
}

func TestGetCitiesEscapesFilterWildcards(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "cities" WHERE "cities"."name_ascii" LIKE $1`)).
		WithArgs(`50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	page, err := repo.City.GetCities(context.Background(), PageRequest{
		PageSize:     10,
		FilterColumn: "nameAscii",
		FilterQuery:  "50%_off",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Empty(t, page.Data)
}

func TestGetCitiesFilterOnNumericColumn(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "cities" WHERE CAST("cities"."lat" AS TEXT) LIKE $1`)).
		WithArgs("41.8%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := repo.City.GetCities(context.Background(), PageRequest{
		PageSize:     10,
		FilterColumn: "Lat",
		FilterQuery:  "41.8",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCitiesUnknownFilterColumn(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.City.GetCities(context.Background(), PageRequest{
		PageSize:     10,
		FilterColumn: "name = name OR 1=1 --",
		FilterQuery:  "x",
	})

	var notFound *paging.PropertyNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCitiesInvalidPaging(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.City.GetCities(context.Background(), PageRequest{PageSize: 0})
	require.ErrorIs(t, err, paging.ErrInvalidPageRequest)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCitiesStorageError(t *testing.T) {
	repo, mock := newMockRepository(t)
	dbErr := errors.New("connection refused")

	mock.ExpectQuery(`SELECT count\(\*\) FROM "cities"`).WillReturnError(dbErr)

	_, err := repo.City.GetCities(context.Background(), PageRequest{PageSize: 10})
	require.ErrorIs(t, err, dbErr)
}

func TestGetCityNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "cities" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(cityColumns))

	_, err := repo.City.GetCity(context.Background(), 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateCityNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "cities" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.City.UpdateCity(context.Background(), 42, map[string]interface{}{"name": "Nowhere"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDupeCity(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "cities" WHERE name = $1 AND lat = $2 AND lon = $3 AND country_id = $4 AND id <> $5`)).
		WithArgs("Roma", 41.8931, 12.4828, 3, 0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	dupe, err := repo.City.IsDupeCity(context.Background(), ds.City{Name: "Roma", Lat: 41.8931, Lon: 12.4828, CountryID: 3})
	require.NoError(t, err)
	require.True(t, dupe)
	require.NoError(t, mock.ExpectationsWereMet())
}
