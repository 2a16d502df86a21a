package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func userRows(t *testing.T, password string) *sqlmock.Rows {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "login", "password", "is_admin"}).
		AddRow(1, "admin", string(hash), true)
}

func TestAuthenticate(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE login = $1`)).
		WithArgs("admin", 1).
		WillReturnRows(userRows(t, "s3cret"))

	user, err := repo.User.Authenticate(context.Background(), " admin ", "s3cret")
	require.NoError(t, err)
	require.Equal(t, uint(1), user.ID)
	require.True(t, user.IsAdmin)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE login = $1`)).
		WillReturnRows(userRows(t, "s3cret"))

	_, err := repo.User.Authenticate(context.Background(), "admin", "guess")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE login = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.User.Authenticate(context.Background(), "nobody", "guess")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUserExisting(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE login = $1`)).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.User.RegisterUser(context.Background(), "admin", "s3cret", false)
	require.ErrorIs(t, err, ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUserHashesPassword(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE login = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectCommit()

	user, err := repo.User.RegisterUser(context.Background(), "alice", "s3cret", false)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Equal(t, uint(5), user.ID)
	require.NotEqual(t, "s3cret", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")))
}

func TestRegisterUserRequiresCredentials(t *testing.T) {
	repo, mock := newMockRepository(t)

	_, err := repo.User.RegisterUser(context.Background(), "  ", "s3cret", false)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
