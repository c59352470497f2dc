// backend/src/services/price_service.go
package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/brokerledger/backend/src/logger"
	"github.com/username/brokerledger/backend/src/reconcile"
	"golang.org/x/net/publicsuffix"
)

// NSE tickers on Yahoo Finance carry the ".NS" suffix.
const nseSuffix = ".NS"

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

type priceServiceImpl struct {
	httpClient    http.Client
	quoteCache    *cache.Cache
	isInitialized bool
	crumb         string
	mu            sync.Mutex
}

// NewPriceService creates the Yahoo Finance price service. The Yahoo session
// (cookies + crumb) is bootstrapped in the background so startup never blocks
// on the network.
func NewPriceService(cacheTTL time.Duration) PriceService {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		logger.L.Error("Failed to create cookie jar", "error", err)
	}

	client := http.Client{
		Jar:     jar,
		Timeout: 20 * time.Second,
	}

	s := &priceServiceImpl{
		httpClient: client,
		quoteCache: cache.New(cacheTTL, 2*cacheTTL),
	}

	go s.initializeYahooSession()

	return s
}

func (s *priceServiceImpl) initializeYahooSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isInitialized && s.crumb != "" {
		return
	}

	logger.L.Info("Initializing Yahoo Finance session and fetching Crumb...")
	const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	for _, url := range []string{"https://fc.yahoo.com", "https://finance.yahoo.com"} {
		req, _ := http.NewRequest("GET", url, nil)
		req.Header.Set("User-Agent", userAgent)
		if resp, err := s.httpClient.Do(req); err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	}

	req, _ := http.NewRequest("GET", "https://query1.finance.yahoo.com/v1/test/getcrumb", nil)
	req.Header.Set("User-Agent", userAgent)
	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.L.Error("Failed to fetch crumb", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err == nil && len(body) > 0 {
			s.crumb = string(body)
			s.isInitialized = true
			logger.L.Info("Yahoo Finance session initialized")
			return
		}
	}
	logger.L.Warn("Yahoo Finance session init did not yield a crumb", "status", resp.StatusCode)
}

// GetQuotes resolves each held symbol through the alias map, appends the NSE
// suffix, and fetches the last traded price. Failures surface as OK=false
// quotes with the attempted ticker, never as errors: a dashboard with stale
// or missing prices still renders.
func (s *priceServiceImpl) GetQuotes(symbols []string, aliases map[string]string) map[string]Quote {
	quotes := make(map[string]Quote, len(symbols))
	for _, symbol := range symbols {
		attempted := reconcile.ResolveAlias(aliases, symbol) + nseSuffix

		if cached, ok := s.quoteCache.Get(attempted); ok {
			q := cached.(Quote)
			q.Symbol = symbol
			quotes[symbol] = q
			continue
		}

		price, err := s.fetchQuote(attempted)
		q := Quote{Symbol: symbol, Attempted: attempted, Price: price, OK: err == nil}
		if err != nil {
			logger.L.Warn("Price lookup failed", "symbol", symbol, "attempted", attempted, "error", err)
		}
		s.quoteCache.SetDefault(attempted, q)
		quotes[symbol] = q
	}
	return quotes
}

func (s *priceServiceImpl) fetchQuote(ticker string) (float64, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?range=1d&interval=1d", ticker)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("yahoo chart returned status %d", resp.StatusCode)
	}

	var parsed yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decoding yahoo chart response: %w", err)
	}
	if len(parsed.Chart.Result) == 0 {
		return 0, fmt.Errorf("no chart result for %s", ticker)
	}
	price := parsed.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("no market price for %s", ticker)
	}
	return price, nil
}
