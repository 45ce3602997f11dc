// Package wishlist manages the cards a user wants to acquire.
package wishlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/pkg/ctxutil"
)

type wishlistRepo interface {
	Upsert(ctx context.Context, item domain.WishlistItem) (domain.WishlistItem, error)
	Delete(ctx context.Context, userID uuid.UUID, cardID string, variant domain.CardVariant) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.WishlistItem, error)
}

type catalogRepo interface {
	GetCard(ctx context.Context, cardID string) (domain.Card, error)
	ListByIDs(ctx context.Context, cardIDs []string) ([]domain.Card, error)
}

// Service implements wishlist management.
type Service struct {
	items   wishlistRepo
	catalog catalogRepo
	log     *slog.Logger
}

// NewService creates a new wishlist service.
func NewService(log *slog.Logger, items wishlistRepo, catalog catalogRepo) *Service {
	return &Service{
		items:   items,
		catalog: catalog,
		log:     log.With("service", "wishlist"),
	}
}

// AddInput contains the parameters for Add.
type AddInput struct {
	CardID  string
	Variant domain.CardVariant
	Note    *string
}

const maxNoteLength = 500

// Validate checks required fields and applies defaults.
func (in *AddInput) Validate() error {
	if in.CardID == "" {
		return domain.NewValidationError("card_id", "must not be empty")
	}
	if in.Variant == "" {
		in.Variant = domain.VariantNormal
	}
	if !in.Variant.IsValid() {
		return domain.NewValidationError("variant", fmt.Sprintf("unknown variant %q", in.Variant))
	}
	if in.Note != nil {
		trimmed := strings.TrimSpace(*in.Note)
		if len(trimmed) > maxNoteLength {
			return domain.NewValidationError("note", fmt.Sprintf("must be at most %d characters", maxNoteLength))
		}
		if trimmed == "" {
			in.Note = nil
		} else {
			in.Note = &trimmed
		}
	}
	return nil
}

// Add puts a card variant on the caller's wishlist. Adding the same
// (card, variant) again only updates the note.
func (s *Service) Add(ctx context.Context, input AddInput) (domain.WishlistItem, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.WishlistItem{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return domain.WishlistItem{}, err
	}

	if _, err := s.catalog.GetCard(ctx, input.CardID); err != nil {
		return domain.WishlistItem{}, fmt.Errorf("get card: %w", err)
	}

	item, err := s.items.Upsert(ctx, domain.WishlistItem{
		UserID:  userID,
		CardID:  input.CardID,
		Variant: input.Variant,
		Note:    input.Note,
	})
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("upsert wishlist item: %w", err)
	}

	s.log.InfoContext(ctx, "wishlist item added",
		slog.String("user_id", userID.String()),
		slog.String("card_id", input.CardID),
		slog.String("variant", input.Variant.String()),
	)

	return item, nil
}

// Remove takes a card variant off the caller's wishlist.
func (s *Service) Remove(ctx context.Context, cardID string, variant domain.CardVariant) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if cardID == "" {
		return domain.NewValidationError("card_id", "must not be empty")
	}
	if !variant.IsValid() {
		return domain.NewValidationError("variant", fmt.Sprintf("unknown variant %q", variant))
	}

	if err := s.items.Delete(ctx, userID, cardID, variant); err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	return nil
}

// Entry is a wishlist item joined with its catalog card.
type Entry struct {
	Item domain.WishlistItem
	Card domain.Card
}

// List returns the caller's wishlist with catalog data attached. Items
// whose card vanished from the catalog are kept with an empty card so the
// wishlist never silently shrinks.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	if len(items) == 0 {
		return []Entry{}, nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.CardID]; ok {
			continue
		}
		seen[it.CardID] = struct{}{}
		ids = append(ids, it.CardID)
	}

	cards, err := s.catalog.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	byID := make(map[string]domain.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = Entry{Item: it, Card: byID[it.CardID]}
	}
	return entries, nil
}
