package repository

import (
	"WorldCities/internal/app/paging"
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetCountriesSortedByJSONName(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "countries"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "countries" ORDER BY "countries"."iso3" DESC,"countries"."id" DESC LIMIT`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "iso2", "iso3", "flag"}).
			AddRow(2, "Italy", "IT", "ITA", "").
			AddRow(1, "Germany", "DE", "DEU", ""))

	page, err := repo.Country.GetCountries(context.Background(), PageRequest{
		PageSize:   10,
		SortColumn: "ISO3",
		SortOrder:  "desc",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, "ISO3", page.SortColumn)
	require.Equal(t, paging.Descending, page.SortOrder)
	require.Equal(t, "ITA", page.Data[0].ISO3)
	require.False(t, page.HasNextPage())
}

func TestIsDupeField(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "countries" WHERE "countries"."iso2" = $1 AND id <> $2`)).
		WithArgs("IT", 7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	dupe, err := repo.Country.IsDupeField(context.Background(), 7, "iso2", "IT")
	require.NoError(t, err)
	require.False(t, dupe)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDupeFieldUnknownField(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.Country.IsDupeField(context.Background(), 0, "iso2 = iso2 OR 1", "IT")

	var notFound *paging.PropertyNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "Country", notFound.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsDupeFieldNonTextField(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.Country.IsDupeField(context.Background(), 0, "id", "abc")

	var notFound *paging.PropertyNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "id", notFound.Property)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCountryWithoutFlag(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "countries" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "iso2", "iso3", "flag"}).
			AddRow(7, "Italy", "IT", "ITA", ""))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "countries" WHERE "countries"."id" = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Country.DeleteCountry(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCountryNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "countries" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.Country.DeleteCountry(context.Background(), 7)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCountryFlagWithoutStorage(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.Country.UpdateCountryFlag(context.Background(), 7, nil)
	require.ErrorIs(t, err, ErrFlagStorageUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentType(t *testing.T) {
	require.Equal(t, "image/png", contentType("country_1.PNG"))
	require.Equal(t, "image/svg+xml", contentType("flag.svg"))
	require.Equal(t, "application/octet-stream", contentType("flag"))
}
