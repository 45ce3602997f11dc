// Package pricefeed implements the HTTP client for the external card
// price API. Prices are fetched per set and merged into the catalog.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/pokebinder/pokebinder-backend/internal/config"
	"github.com/pokebinder/pokebinder-backend/internal/domain"
)

// CardPrices is one card's price points as delivered by the feed.
type CardPrices struct {
	CardID    string
	Pricing   domain.CardPricing
	UpdatedAt time.Time
}

// Client fetches card prices from the external feed.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
}

// NewClient creates a price feed client. Transient failures and 5xx
// responses are retried with exponential backoff.
func NewClient(cfg config.PriceFeedConfig) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.RetryMax = cfg.RetryMax
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// feed wire format
type setPricesResponse struct {
	Cards []struct {
		ID        string    `json:"id"`
		UpdatedAt time.Time `json:"updated_at"`
		Prices    struct {
			AvgSell          *float64 `json:"avg_sell"`
			Low              *float64 `json:"low"`
			Trend            *float64 `json:"trend"`
			ReverseHoloSell  *float64 `json:"reverse_holo_sell"`
			ReverseHoloLow   *float64 `json:"reverse_holo_low"`
			ReverseHoloTrend *float64 `json:"reverse_holo_trend"`
		} `json:"prices"`
	} `json:"cards"`
}

// SetPrices fetches the current prices for every card of one set.
// Returns nil, nil when the feed does not know the set.
func (c *Client) SetPrices(ctx context.Context, setID string) ([]CardPrices, error) {
	endpoint := fmt.Sprintf("%s/sets/%s/prices", c.baseURL, url.PathEscape(setID))

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch set prices %s: %w", setID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch set prices %s: unexpected status %d", setID, resp.StatusCode)
	}

	var body setPricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode set prices %s: %w", setID, err)
	}

	out := make([]CardPrices, 0, len(body.Cards))
	for _, card := range body.Cards {
		out = append(out, CardPrices{
			CardID:    card.ID,
			UpdatedAt: card.UpdatedAt,
			Pricing: domain.CardPricing{
				AvgSellPrice:     card.Prices.AvgSell,
				LowPrice:         card.Prices.Low,
				TrendPrice:       card.Prices.Trend,
				ReverseHoloSell:  card.Prices.ReverseHoloSell,
				ReverseHoloLow:   card.Prices.ReverseHoloLow,
				ReverseHoloTrend: card.Prices.ReverseHoloTrend,
			},
		})
	}
	return out, nil
}
