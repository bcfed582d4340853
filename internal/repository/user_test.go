package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "is_admin"}).
					AddRow(1, "octavia", "octavia@example.com", true)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "octavia", Email: "octavia@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, 404, appErr.Status)
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
				assert.Equal(t, tt.expectedUser.Email, user.Email)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(7, "marin", "marin@example.com")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
			WithArgs("marin@example.com", 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "marin@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint(7), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found Returns Nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
			WithArgs("nobody@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Not Found Returns Nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByUsername(ctx, "ghost")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		user := &models.User{Username: "marin", Email: "marin@example.com", Password: "hashed"}
		err := repo.Create(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email Maps To Conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnError(errors.New(`duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		user := &models.User{Username: "marin2", Email: "marin@example.com", Password: "hashed"}
		err := repo.Create(ctx, user)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_IsAdmin(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Admin", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"is_admin"}).AddRow(true)
		mock.ExpectQuery(`SELECT "is_admin" FROM "users"`).
			WithArgs(1, 1).
			WillReturnRows(rows)

		isAdmin, err := repo.IsAdmin(ctx, 1)
		require.NoError(t, err)
		assert.True(t, isAdmin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Regular User", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"is_admin"}).AddRow(false)
		mock.ExpectQuery(`SELECT "is_admin" FROM "users"`).
			WithArgs(2, 1).
			WillReturnRows(rows)

		isAdmin, err := repo.IsAdmin(ctx, 2)
		require.NoError(t, err)
		assert.False(t, isAdmin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing User", func(t *testing.T) {
		mock.ExpectQuery(`SELECT "is_admin" FROM "users"`).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		isAdmin, err := repo.IsAdmin(ctx, 99)
		assert.Error(t, err)
		assert.False(t, isAdmin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
