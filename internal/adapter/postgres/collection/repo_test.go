package collection

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func rowValues(cr domain.CollectionRow) []any {
	return []any{
		cr.ID, cr.UserID, cr.CardID, cr.Variant,
		cr.Quantity, cr.Condition, cr.CreatedAt, cr.UpdatedAt,
	}
}

func TestListByUser(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	now := time.Now()
	want := []domain.CollectionRow{
		{ID: uuid.New(), UserID: userID, CardID: "base1-4", Variant: domain.VariantHolo, Quantity: 1, Condition: domain.ConditionNearMint, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), UserID: userID, CardID: "base1-58", Variant: domain.VariantNormal, Quantity: 3, Condition: domain.ConditionPlayed, CreatedAt: now, UpdatedAt: now},
	}

	rows := pgxmock.NewRows([]string{"id", "user_id", "card_id", "variant", "quantity", "condition", "created_at", "updated_at"}).
		AddRow(rowValues(want[0])...).
		AddRow(rowValues(want[1])...)

	// squirrel calls driver.Valuer at ToSql time, so the UUID arrives as a string.
	mock.ExpectQuery("SELECT id, user_id, card_id").
		WithArgs(userID.String()).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_Empty(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	mock.ExpectQuery("SELECT id, user_id, card_id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "card_id", "variant", "quantity", "condition", "created_at", "updated_at"}))

	got, err := repo.ListByUser(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserAndCards(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	now := time.Now()
	row := domain.CollectionRow{
		ID: uuid.New(), UserID: userID, CardID: "base1-4",
		Variant: domain.VariantNormal, Quantity: 2, Condition: domain.ConditionNearMint,
		CreatedAt: now, UpdatedAt: now,
	}

	// squirrel renders map predicates in sorted key order, card_id first.
	mock.ExpectQuery("SELECT id, user_id, card_id").
		WithArgs("base1-4", "base1-58", userID.String()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "card_id", "variant", "quantity", "condition", "created_at", "updated_at"}).
			AddRow(rowValues(row)...))

	got, err := repo.ListByUserAndCards(context.Background(), userID, []string{"base1-4", "base1-58"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, row, got[0])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserAndCards_NoIDsSkipsQuery(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	got, err := repo.ListByUserAndCards(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	now := time.Now()
	want := domain.CollectionRow{
		ID: uuid.New(), UserID: userID, CardID: "base1-4",
		Variant: domain.VariantHolo, Quantity: 3, Condition: domain.ConditionNearMint,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO user_collections").
		WithArgs(userID, "base1-4", domain.VariantHolo, 2, domain.ConditionNearMint).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "card_id", "variant", "quantity", "condition", "created_at", "updated_at"}).
			AddRow(rowValues(want)...))

	got, err := repo.Upsert(context.Background(), userID, "base1-4", domain.VariantHolo, domain.ConditionNearMint, 2)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert_CheckViolation(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	mock.ExpectQuery("INSERT INTO user_collections").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23514"})

	_, err := repo.Upsert(context.Background(), uuid.New(), "base1-4", domain.VariantNormal, domain.ConditionNearMint, 0)
	require.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	now := time.Now()
	want := domain.CollectionRow{
		ID: uuid.New(), UserID: userID, CardID: "base1-4",
		Variant: domain.VariantNormal, Quantity: 2, Condition: domain.ConditionNearMint,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("FOR UPDATE").
		WithArgs(userID, "base1-4", domain.VariantNormal, domain.ConditionNearMint).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "card_id", "variant", "quantity", "condition", "created_at", "updated_at"}).
			AddRow(rowValues(want)...))

	got, err := repo.GetForUpdate(context.Background(), userID, "base1-4", domain.VariantNormal, domain.ConditionNearMint)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	mock.ExpectQuery("FOR UPDATE").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetForUpdate(context.Background(), uuid.New(), "base1-4", domain.VariantNormal, domain.ConditionNearMint)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	rowID := uuid.New()
	now := time.Now()
	want := domain.CollectionRow{
		ID: rowID, UserID: uuid.New(), CardID: "base1-4",
		Variant: domain.VariantNormal, Quantity: 5, Condition: domain.ConditionNearMint,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("UPDATE user_collections").
		WithArgs(rowID, 5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "card_id", "variant", "quantity", "condition", "created_at", "updated_at"}).
			AddRow(rowValues(want)...))

	got, err := repo.SetQuantity(context.Background(), rowID, 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	rowID := uuid.New()
	mock.ExpectExec("DELETE FROM user_collections").
		WithArgs(rowID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), rowID))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	mock.ExpectExec("DELETE FROM user_collections").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByUserAndCards(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	userID := uuid.New()
	mock.ExpectExec("DELETE FROM user_collections").
		WithArgs("base1-4", "base1-58", userID.String()).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))

	removed, err := repo.DeleteByUserAndCards(context.Background(), userID, []string{"base1-4", "base1-58"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByUserAndCards_NoIDsSkipsQuery(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := New(mock)

	removed, err := repo.DeleteByUserAndCards(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, removed)

	require.NoError(t, mock.ExpectationsWereMet())
}
