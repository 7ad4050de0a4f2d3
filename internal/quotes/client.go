package quotes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Quote is a single price observation for a ticker.
type Quote struct {
	LastPrice     float64 `json:"last_price"`
	PreviousClose float64 `json:"previous_close"`
}

// Client fetches quotes from a Yahoo-style chart API.
// The base URL is configurable so tests can point it at a local server.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new quote client
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "quotes").Logger(),
	}
}

// FetchQuote fetches the current quote for a ticker.
// Returns an error on any transport, status, or parse failure; the caller
// decides how to degrade.
func (c *Client) FetchQuote(ticker string) (*Quote, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker))
	c.log.Debug().Str("url", reqURL).Msg("Fetching quote")

	resp, err := c.client.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned status %d", resp.StatusCode)
	}

	var result struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
					ChartPreviousClose float64 `json:"chartPreviousClose"`
				} `json:"meta"`
			} `json:"result"`
			Error *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("quote API error: %s", result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}

	meta := result.Chart.Result[0].Meta
	return &Quote{
		LastPrice:     meta.RegularMarketPrice,
		PreviousClose: meta.ChartPreviousClose,
	}, nil
}
