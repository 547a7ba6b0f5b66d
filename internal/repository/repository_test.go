package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"scooter-rental/internal/apperr"
	"scooter-rental/internal/models"
)

var testPolicy = Policy{Timeout: time.Second, MaxRetries: 2, RetryBase: time.Millisecond}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	return gdb, mock
}

const reserveUpdate = `UPDATE "products" SET "is_available"=\$1 WHERE id = \$2 AND is_available = \$3`

func newOrder() *models.Order {
	return &models.Order{
		UserID: 3, UserFN: "A", UserLN: "B",
		ProductID: 5, ProductType: "scooter", ProductModel: "X1",
		CreatedAt: time.Now(),
	}
}

func TestOrders_Reserve_Success(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrders(gdb, testPolicy)

	mock.ExpectBegin()
	mock.ExpectExec(reserveUpdate).
		WithArgs(false, 5, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	o := newOrder()
	require.NoError(t, repo.Reserve(context.Background(), o))
	assert.Equal(t, uint(11), o.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrders_Reserve_AlreadyTaken(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrders(gdb, testPolicy)

	mock.ExpectBegin()
	mock.ExpectExec(reserveUpdate).
		WithArgs(false, 5, true).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Reserve(context.Background(), newOrder())
	assert.ErrorIs(t, err, apperr.ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrders_Reserve_RetriesSerializationFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewOrders(gdb, testPolicy)

	mock.ExpectBegin()
	mock.ExpectExec(reserveUpdate).WillReturnError(&pgconn.PgError{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(reserveUpdate).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	o := newOrder()
	require.NoError(t, repo.Reserve(context.Background(), o))
	assert.Equal(t, uint(12), o.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccounts_FindByEmail_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAccounts(gdb, testPolicy)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}))

	a, err := repo.FindByEmail(context.Background(), "nobody@x.com")
	assert.Nil(t, a)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccounts_FindByEmail_Found(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAccounts(gdb, testPolicy)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "is_verified", "verification_code"}).
			AddRow(4, "a@x.com", "A", true, 1234))

	a, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, uint(4), a.ID)
	assert.Equal(t, "A", a.FirstName)
	assert.True(t, a.IsVerified)
	assert.Equal(t, 1234, a.VerificationCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccounts_Create_DuplicateEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAccounts(gdb, testPolicy)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "accounts"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Account{Email: "a@x.com", Password: "hash"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccounts_FindByID_StoreFailureNotRetried(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewAccounts(gdb, testPolicy)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE "accounts"."id" = \$1`).
		WillReturnError(errors.New("permission denied for table accounts"))

	_, err := repo.FindByID(context.Background(), 9)
	assert.ErrorIs(t, err, apperr.ErrStoreFailure)
	assert.False(t, apperr.IsDomain(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProducts_Delete_Missing(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewProducts(gdb, testPolicy)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "products" WHERE "products"."id" = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProducts_Update_WritesOnlyGivenColumns(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewProducts(gdb, testPolicy)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "current_location_lat"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(44.8, sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	lat := 44.8
	require.NoError(t, repo.Update(context.Background(), 5, ProductChanges{Lat: &lat}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProducts_Update_Missing(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewProducts(gdb, testPolicy)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "battery"=\$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(40, sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	battery := 40
	err := repo.Update(context.Background(), 42, ProductChanges{Battery: &battery})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"bad conn", driver.ErrBadConn, true},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"connection exception class", &pgconn.PgError{Code: "08006"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"domain", apperr.ErrUnavailable, false},
		{"not found", gorm.ErrRecordNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransient(tt.err))
		})
	}
}

func TestPolicy_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	p := Policy{MaxRetries: 2, RetryBase: time.Millisecond}
	err := p.run(context.Background(), func(ctx context.Context) error {
		calls++
		return &pgconn.PgError{Code: "40P01"}
	})
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, apperr.ErrStoreFailure)
}

func TestPolicy_AppliesTimeout(t *testing.T) {
	p := Policy{Timeout: 10 * time.Millisecond}
	err := p.run(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, apperr.ErrStoreFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
