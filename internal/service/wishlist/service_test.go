package wishlist

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/pkg/ctxutil"
)

type wishlistRepoMock struct {
	UpsertFunc     func(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error)
	DeleteFunc     func(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant) error
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error)
}

func (m *wishlistRepoMock) Upsert(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
	return m.UpsertFunc(ctx, item)
}

func (m *wishlistRepoMock) Delete(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant) error {
	return m.DeleteFunc(ctx, userID, cardID, variant)
}

func (m *wishlistRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error) {
	return m.ListByUserFunc(ctx, userID)
}

type catalogRepoMock struct {
	GetCardFunc   func(ctx context.Context, cardID string) (domain.Card, error)
	ListByIDsFunc func(ctx context.Context, cardIDs []string) ([]domain.Card, error)
}

func (m *catalogRepoMock) GetCard(ctx context.Context, cardID string) (domain.Card, error) {
	return m.GetCardFunc(ctx, cardID)
}

func (m *catalogRepoMock) ListByIDs(ctx context.Context, cardIDs []string) ([]domain.Card, error) {
	return m.ListByIDsFunc(ctx, cardIDs)
}

func knownCatalog() *catalogRepoMock {
	return &catalogRepoMock{
		GetCardFunc: func(_ context.Context, cardID string) (domain.Card, error) {
			return domain.Card{ID: cardID, Name: "Charizard"}, nil
		},
		ListByIDsFunc: func(_ context.Context, ids []string) ([]domain.Card, error) {
			cards := make([]domain.Card, len(ids))
			for i, id := range ids {
				cards[i] = domain.Card{ID: id, Name: "Card " + id}
			}
			return cards, nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func authedCtx() context.Context {
	return ctxutil.WithUserID(context.Background(), uuid.New())
}

func TestAdd_DefaultsVariantToNormal(t *testing.T) {
	t.Parallel()

	var got domain.WishlistItem
	repo := &wishlistRepoMock{
		UpsertFunc: func(_ context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
			got = item
			item.ID = uuid.New()
			item.CreatedAt = time.Now()
			return item, nil
		},
	}
	svc := NewService(discardLogger(), repo, knownCatalog())

	item, err := svc.Add(authedCtx(), AddInput{CardID: "base1-4"})
	require.NoError(t, err)

	assert.Equal(t, domain.VariantNormal, got.Variant)
	assert.Equal(t, "base1-4", item.CardID)
	assert.NotEqual(t, uuid.Nil, item.ID)
}

func TestAdd_UnknownCard(t *testing.T) {
	t.Parallel()

	catalog := &catalogRepoMock{
		GetCardFunc: func(_ context.Context, _ string) (domain.Card, error) {
			return domain.Card{}, domain.ErrNotFound
		},
	}
	svc := NewService(discardLogger(), &wishlistRepoMock{}, catalog)

	_, err := svc.Add(authedCtx(), AddInput{CardID: "ghost-1"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdd_Validation(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), &wishlistRepoMock{}, knownCatalog())

	_, err := svc.Add(authedCtx(), AddInput{})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Add(authedCtx(), AddInput{CardID: "base1-4", Variant: "shiny"})
	require.ErrorIs(t, err, domain.ErrValidation)

	longNote := strings.Repeat("x", maxNoteLength+1)
	_, err = svc.Add(authedCtx(), AddInput{CardID: "base1-4", Note: &longNote})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdd_TrimsNote(t *testing.T) {
	t.Parallel()

	var got domain.WishlistItem
	repo := &wishlistRepoMock{
		UpsertFunc: func(_ context.Context, item domain.WishlistItem) (domain.WishlistItem, error) {
			got = item
			return item, nil
		},
	}
	svc := NewService(discardLogger(), repo, knownCatalog())

	note := "  want the shadowless print  "
	_, err := svc.Add(authedCtx(), AddInput{CardID: "base1-4", Note: &note})
	require.NoError(t, err)
	require.NotNil(t, got.Note)
	assert.Equal(t, "want the shadowless print", *got.Note)

	blank := "   "
	_, err = svc.Add(authedCtx(), AddInput{CardID: "base1-4", Note: &blank})
	require.NoError(t, err)
	assert.Nil(t, got.Note)
}

func TestAdd_Unauthenticated(t *testing.T) {
	t.Parallel()

	svc := NewService(discardLogger(), &wishlistRepoMock{}, knownCatalog())

	_, err := svc.Add(context.Background(), AddInput{CardID: "base1-4"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	var deleted bool
	repo := &wishlistRepoMock{
		DeleteFunc: func(_ context.Context, _ uuid.UUID, cardID string, variant domain.CardVariant) error {
			deleted = true
			assert.Equal(t, "base1-4", cardID)
			assert.Equal(t, domain.VariantHolo, variant)
			return nil
		},
	}
	svc := NewService(discardLogger(), repo, knownCatalog())

	err := svc.Remove(authedCtx(), "base1-4", domain.VariantHolo)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestRemove_NotFound(t *testing.T) {
	t.Parallel()

	repo := &wishlistRepoMock{
		DeleteFunc: func(_ context.Context, _ uuid.UUID, _ string, _ domain.CardVariant) error {
			return domain.ErrNotFound
		},
	}
	svc := NewService(discardLogger(), repo, knownCatalog())

	err := svc.Remove(authedCtx(), "base1-4", domain.VariantNormal)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_JoinsCatalog(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := &wishlistRepoMock{
		ListByUserFunc: func(_ context.Context, gotID uuid.UUID) ([]domain.WishlistItem, error) {
			assert.Equal(t, userID, gotID)
			return []domain.WishlistItem{
				{CardID: "base1-4", Variant: domain.VariantHolo},
				{CardID: "base1-4", Variant: domain.VariantFirstEdition},
				{CardID: "base1-58", Variant: domain.VariantNormal},
			}, nil
		},
	}
	var requestedIDs []string
	catalog := knownCatalog()
	listByIDs := catalog.ListByIDsFunc
	catalog.ListByIDsFunc = func(ctx context.Context, ids []string) ([]domain.Card, error) {
		requestedIDs = ids
		return listByIDs(ctx, ids)
	}
	svc := NewService(discardLogger(), repo, catalog)

	entries, err := svc.List(ctxutil.WithUserID(context.Background(), userID))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// The same card is fetched once even when wished in two variants.
	assert.Equal(t, []string{"base1-4", "base1-58"}, requestedIDs)
	assert.Equal(t, "Card base1-4", entries[0].Card.Name)
	assert.Equal(t, "Card base1-4", entries[1].Card.Name)
	assert.Equal(t, "Card base1-58", entries[2].Card.Name)
}

func TestList_Empty(t *testing.T) {
	t.Parallel()

	repo := &wishlistRepoMock{
		ListByUserFunc: func(_ context.Context, _ uuid.UUID) ([]domain.WishlistItem, error) {
			return nil, nil
		},
	}
	svc := NewService(discardLogger(), repo, knownCatalog())

	entries, err := svc.List(authedCtx())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
