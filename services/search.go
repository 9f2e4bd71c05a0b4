package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kkws0615/STOCKup/observability"
)

// SearchService queries the Yahoo symbol-search endpoint for free-text
// ticker or company-name lookups. Timeouts are short; a slow search falls
// back to the resolver's next strategy layer, it never blocks the page.
type SearchService struct {
	httpClient *http.Client
	baseURL    string
}

// NewSearchService creates a SearchService against the public endpoint.
func NewSearchService() *SearchService {
	return &SearchService{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewSearchServiceWithBaseURL creates a SearchService against a custom
// endpoint, for tests.
func NewSearchServiceWithBaseURL(baseURL string) *SearchService {
	s := NewSearchService()
	s.baseURL = baseURL
	return s
}

// SearchResult is one ranked hit from the symbol-search collaborator.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// searchResponse is the wire shape of the search endpoint.
type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Search returns ranked symbol matches for a free-text query. Zero results
// is not an error.
func (s *SearchService) Search(ctx context.Context, query string) ([]SearchResult, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("search", "search")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI("search", "search")

	fetch := func() ([]SearchResult, error) {
		params := url.Values{}
		params.Set("q", query)
		params.Set("quotesCount", "10")
		params.Set("newsCount", "0")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			s.baseURL+"/v1/finance/search?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build search request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to search symbols: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
		}

		var decoded searchResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, fmt.Errorf("failed to decode search response: %w", err)
		}

		results := make([]SearchResult, 0, len(decoded.Quotes))
		for _, q := range decoded.Quotes {
			if q.QuoteType != "" && q.QuoteType != "EQUITY" && q.QuoteType != "ETF" {
				continue
			}
			name := q.ShortName
			if name == "" {
				name = q.LongName
			}
			results = append(results, SearchResult{
				Symbol:   q.Symbol,
				Name:     name,
				Exchange: q.Exchange,
			})
		}
		return results, nil
	}

	results, err := WithCircuitBreaker(ctx, BreakerSearch, fetch)
	if err != nil {
		metrics.RecordExternalAPIError("search", "search", "transport")
		return nil, err
	}

	return results, nil
}
