package collection

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

type rowRepoMock struct {
	ListByUserFunc           func(ctx context.Context, userID uuid.UUID) ([]domain.CollectionRow, error)
	ListByUserAndCardsFunc   func(ctx context.Context, userID uuid.UUID, cardIDs []string) ([]domain.CollectionRow, error)
	GetForUpdateFunc         func(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition) (domain.CollectionRow, error)
	UpsertFunc               func(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition, quantity int) (domain.CollectionRow, error)
	SetQuantityFunc          func(ctx context.Context, rowID uuid.UUID, quantity int) (domain.CollectionRow, error)
	DeleteFunc               func(ctx context.Context, rowID uuid.UUID) error
	DeleteByUserAndCardsFunc func(ctx context.Context, userID uuid.UUID, cardIDs []string) (int64, error)
}

func (m *rowRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CollectionRow, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *rowRepoMock) ListByUserAndCards(ctx context.Context, userID uuid.UUID, cardIDs []string) ([]domain.CollectionRow, error) {
	return m.ListByUserAndCardsFunc(ctx, userID, cardIDs)
}

func (m *rowRepoMock) GetForUpdate(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition) (domain.CollectionRow, error) {
	return m.GetForUpdateFunc(ctx, userID, cardID, variant, condition)
}

func (m *rowRepoMock) Upsert(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition, quantity int) (domain.CollectionRow, error) {
	return m.UpsertFunc(ctx, userID, cardID, variant, condition, quantity)
}

func (m *rowRepoMock) SetQuantity(ctx context.Context, rowID uuid.UUID, quantity int) (domain.CollectionRow, error) {
	return m.SetQuantityFunc(ctx, rowID, quantity)
}

func (m *rowRepoMock) Delete(ctx context.Context, rowID uuid.UUID) error {
	return m.DeleteFunc(ctx, rowID)
}

func (m *rowRepoMock) DeleteByUserAndCards(ctx context.Context, userID uuid.UUID, cardIDs []string) (int64, error) {
	return m.DeleteByUserAndCardsFunc(ctx, userID, cardIDs)
}

type catalogRepoMock struct {
	GetCardFunc          func(ctx context.Context, cardID string) (domain.Card, error)
	ListByIDsFunc        func(ctx context.Context, cardIDs []string) ([]domain.Card, error)
	ListCardIDsBySetFunc func(ctx context.Context, setID string) ([]string, error)
}

func (m *catalogRepoMock) GetCard(ctx context.Context, cardID string) (domain.Card, error) {
	return m.GetCardFunc(ctx, cardID)
}

func (m *catalogRepoMock) ListByIDs(ctx context.Context, cardIDs []string) ([]domain.Card, error) {
	return m.ListByIDsFunc(ctx, cardIDs)
}

func (m *catalogRepoMock) ListCardIDsBySet(ctx context.Context, setID string) ([]string, error) {
	return m.ListCardIDsBySetFunc(ctx, setID)
}

// txManagerMock runs the function directly; transactional behavior itself
// is covered by the postgres package tests.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestService(rows *rowRepoMock, catalog *catalogRepoMock) *Service {
	return NewService(discardLogger(), rows, catalog, txManagerMock{})
}
