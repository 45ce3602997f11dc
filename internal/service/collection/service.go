// Package collection implements the collection aggregation engine:
// folding persisted rows into per-card summaries, evaluating completion,
// valuing owned copies, and mutating ownership one variant at a time.
package collection

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type rowRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.CollectionRow, error)
	ListByUserAndCards(ctx context.Context, userID uuid.UUID, cardIDs []string) ([]domain.CollectionRow, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition) (domain.CollectionRow, error)
	Upsert(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant, condition domain.CardCondition, quantity int) (domain.CollectionRow, error)
	SetQuantity(ctx context.Context, rowID uuid.UUID, quantity int) (domain.CollectionRow, error)
	Delete(ctx context.Context, rowID uuid.UUID) error
	DeleteByUserAndCards(ctx context.Context, userID uuid.UUID, cardIDs []string) (int64, error)
}

type catalogRepo interface {
	GetCard(ctx context.Context, cardID string) (domain.Card, error)
	ListByIDs(ctx context.Context, cardIDs []string) ([]domain.Card, error)
	ListCardIDsBySet(ctx context.Context, setID string) ([]string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the collection business logic. Mutations for the same
// (user, card) pair are serialized through a keyed mutex so two rapid
// add/remove calls cannot interleave their read-modify-write cycles.
type Service struct {
	rows    rowRepo
	catalog catalogRepo
	tx      txManager
	log     *slog.Logger
	locks   *keyedMutex
}

// NewService creates a new collection service.
func NewService(log *slog.Logger, rows rowRepo, catalog catalogRepo, tx txManager) *Service {
	return &Service{
		rows:    rows,
		catalog: catalog,
		tx:      tx,
		log:     log.With("service", "collection"),
		locks:   newKeyedMutex(),
	}
}

func mutationKey(userID uuid.UUID, cardID string) string {
	return userID.String() + "|" + cardID
}
