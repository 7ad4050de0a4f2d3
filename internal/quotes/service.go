package quotes

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ClientInterface defines the contract for the live quote source
type ClientInterface interface {
	FetchQuote(ticker string) (*Quote, error)
}

// cachedQuote is the structure stored in the cache
type cachedQuote struct {
	Price float64 `json:"price"`
}

// Service resolves tickers to current unit prices.
//
// Resolution order:
//  1. blank or "N/A" ticker -> 0, no lookup
//  2. fresh cache hit -> cached price
//  3. live last price; if zero, the most recent daily close
//  4. lookup failure -> stale cached price if any, else 0
//
// Resolve never fails: the worst outcome is a zero price, which downstream
// valuation treats as "no market data".
type Service struct {
	client    ClientInterface
	cacheRepo *CacheRepository
	ttl       time.Duration
	log       zerolog.Logger
}

// NewService creates a new quote resolution service.
// cacheRepo is optional - if nil, caching is disabled.
func NewService(client ClientInterface, cacheRepo *CacheRepository, log zerolog.Logger) *Service {
	return &Service{
		client:    client,
		cacheRepo: cacheRepo,
		ttl:       TTLQuote,
		log:       log.With().Str("service", "quotes").Logger(),
	}
}

// Resolve returns the current unit price for a ticker, or 0 when no price
// can be determined.
func (s *Service) Resolve(ticker string) float64 {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" || strings.EqualFold(ticker, "N/A") {
		return 0
	}

	// Check persistent cache for fresh data
	if s.cacheRepo != nil {
		data, err := s.cacheRepo.GetIfFresh(ticker)
		if err == nil && data != nil {
			var cached cachedQuote
			if err := json.Unmarshal(data, &cached); err == nil {
				s.log.Debug().
					Str("ticker", ticker).
					Float64("price", cached.Price).
					Msg("Cache hit")
				return cached.Price
			}
		}
	}

	quote, err := s.client.FetchQuote(ticker)
	if err != nil {
		// Lookup failed - stale cached price beats no price
		if stalePrice, ok := s.getStaleFromCache(ticker); ok {
			s.log.Warn().
				Err(err).
				Str("ticker", ticker).
				Float64("price", stalePrice).
				Msg("Quote lookup failed, using stale cached price")
			return stalePrice
		}
		s.log.Warn().
			Err(err).
			Str("ticker", ticker).
			Msg("Quote lookup failed, no cached price available")
		return 0
	}

	price := quote.LastPrice
	if price == 0 {
		price = quote.PreviousClose
	}
	if price < 0 {
		price = 0
	}

	// Cache persistently
	if s.cacheRepo != nil {
		if err := s.cacheRepo.Store(ticker, cachedQuote{Price: price}, s.ttl); err != nil {
			s.log.Warn().Err(err).Str("ticker", ticker).Msg("Failed to cache quote")
		}
	}

	s.log.Debug().
		Str("ticker", ticker).
		Float64("price", price).
		Msg("Resolved price")

	return price
}

// Refresh invalidates all cached prices so the next evaluation cycle
// re-issues live lookups.
func (s *Service) Refresh() error {
	if s.cacheRepo == nil {
		return nil
	}
	if err := s.cacheRepo.Clear(); err != nil {
		return err
	}
	s.log.Info().Msg("Quote cache cleared")
	return nil
}

// getStaleFromCache retrieves a cached price even if expired.
func (s *Service) getStaleFromCache(ticker string) (float64, bool) {
	if s.cacheRepo == nil {
		return 0, false
	}

	data, err := s.cacheRepo.Get(ticker)
	if err != nil || data == nil {
		return 0, false
	}

	var cached cachedQuote
	if err := json.Unmarshal(data, &cached); err != nil {
		return 0, false
	}

	return cached.Price, true
}
