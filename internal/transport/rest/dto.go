package rest

import (
	"time"

	"github.com/pokebinder/pokebinder-backend/internal/domain"
	"github.com/pokebinder/pokebinder-backend/internal/service/setpage"
	"github.com/pokebinder/pokebinder-backend/internal/service/wishlist"
)

type cardSummaryResponse struct {
	CardID        string         `json:"card_id"`
	Variants      map[string]int `json:"variants"`
	TotalQuantity int            `json:"total_quantity"`
	DateAdded     time.Time      `json:"date_added"`
	LastUpdated   time.Time      `json:"last_updated"`
}

func toCardSummaryResponse(s *domain.CardSummary) *cardSummaryResponse {
	if s == nil {
		return nil
	}
	variants := make(map[string]int, len(s.Variants))
	for v, n := range s.Variants {
		if n > 0 {
			variants[v.String()] = n
		}
	}
	return &cardSummaryResponse{
		CardID:        s.CardID,
		Variants:      variants,
		TotalQuantity: s.TotalQuantity,
		DateAdded:     s.DateAdded,
		LastUpdated:   s.LastUpdated,
	}
}

type setResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Series       string    `json:"series"`
	PrintedTotal int       `json:"printed_total"`
	ReleaseDate  time.Time `json:"release_date"`
}

func toSetResponse(s domain.Set) setResponse {
	return setResponse{
		ID:           s.ID,
		Name:         s.Name,
		Series:       s.Series,
		PrintedTotal: s.PrintedTotal,
		ReleaseDate:  s.ReleaseDate,
	}
}

type cardResponse struct {
	ID     string `json:"id"`
	SetID  string `json:"set_id"`
	Number string `json:"number"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

func toCardResponse(c domain.Card) cardResponse {
	return cardResponse{
		ID:     c.ID,
		SetID:  c.SetID,
		Number: c.Number,
		Name:   c.Name,
		Rarity: c.Rarity,
	}
}

type cardViewResponse struct {
	Card              cardResponse         `json:"card"`
	Summary           *cardSummaryResponse `json:"summary,omitempty"`
	AvailableVariants []string             `json:"available_variants"`
	Collected         bool                 `json:"collected"`
	Mastered          bool                 `json:"mastered"`
	HasDuplicates     bool                 `json:"has_duplicates"`
	DuplicateCount    int                  `json:"duplicate_count"`
	Value             float64              `json:"value"`
}

func toCardViewResponse(v setpage.CardView) cardViewResponse {
	available := make([]string, 0, len(v.Available))
	for _, variant := range domain.AllVariants() {
		if v.Available.Has(variant) {
			available = append(available, variant.String())
		}
	}
	return cardViewResponse{
		Card:              toCardResponse(v.Card),
		Summary:           toCardSummaryResponse(v.Summary),
		AvailableVariants: available,
		Collected:         v.Collected,
		Mastered:          v.Mastered,
		HasDuplicates:     v.HasDuplicates,
		DuplicateCount:    v.DuplicateCount,
		Value:             v.Value,
	}
}

type setPageResponse struct {
	Set             setResponse        `json:"set"`
	Mode            string             `json:"mode"`
	Cards           []cardViewResponse `json:"cards"`
	NeedCount       int                `json:"need_count"`
	HaveCount       int                `json:"have_count"`
	DuplicatesCount int                `json:"duplicates_count"`
	Progress        progressResponse   `json:"progress"`
}

type progressResponse struct {
	TotalCards      int     `json:"total_cards"`
	CollectedCount  int     `json:"collected_count"`
	MasteredCount   int     `json:"mastered_count"`
	TotalValue      float64 `json:"total_value"`
	MeanCardValue   float64 `json:"mean_card_value"`
	MedianCardValue float64 `json:"median_card_value"`
}

func toSetPageResponse(p setpage.Page) setPageResponse {
	cards := make([]cardViewResponse, len(p.Cards))
	for i, v := range p.Cards {
		cards[i] = toCardViewResponse(v)
	}
	return setPageResponse{
		Set:             toSetResponse(p.Set),
		Mode:            p.Mode.String(),
		Cards:           cards,
		NeedCount:       p.NeedCount,
		HaveCount:       p.HaveCount,
		DuplicatesCount: p.DuplicatesCount,
		Progress: progressResponse{
			TotalCards:      p.Progress.TotalCards,
			CollectedCount:  p.Progress.CollectedCount,
			MasteredCount:   p.Progress.MasteredCount,
			TotalValue:      p.Progress.TotalValue,
			MeanCardValue:   p.Progress.MeanCardValue,
			MedianCardValue: p.Progress.MedianCardValue,
		},
	}
}

type wishlistEntryResponse struct {
	CardID    string       `json:"card_id"`
	Variant   string       `json:"variant"`
	Note      *string      `json:"note,omitempty"`
	Card      cardResponse `json:"card"`
	CreatedAt time.Time    `json:"created_at"`
}

func toWishlistEntryResponse(e wishlist.Entry) wishlistEntryResponse {
	return wishlistEntryResponse{
		CardID:    e.Item.CardID,
		Variant:   e.Item.Variant.String(),
		Note:      e.Item.Note,
		Card:      toCardResponse(e.Card),
		CreatedAt: e.Item.CreatedAt,
	}
}

type settingsResponse struct {
	CollectionMode string `json:"collection_mode"`
	Currency       string `json:"currency"`
}

func toSettingsResponse(s domain.UserSettings) settingsResponse {
	return settingsResponse{
		CollectionMode: s.CollectionMode.String(),
		Currency:       s.Currency,
	}
}
