package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/kkws0615/STOCKup/models"
	"github.com/kkws0615/STOCKup/observability"
)

// userAgent is sent on every upstream request; the quote endpoints reject
// requests without a browser-like agent.
const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// HistoryService fetches daily close-price history from the Yahoo chart API.
// One call covers a whole batch of symbols; a bad symbol never aborts the
// others.
type HistoryService struct {
	httpClient *http.Client
	baseURL    string
}

// NewHistoryService creates a HistoryService against the public endpoint.
func NewHistoryService() *HistoryService {
	return &HistoryService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewHistoryServiceWithBaseURL creates a HistoryService against a custom
// endpoint, for tests.
func NewHistoryServiceWithBaseURL(baseURL string) *HistoryService {
	s := NewHistoryService()
	s.baseURL = baseURL
	return s
}

// sparkResponse is the wire shape of the batch spark endpoint.
type sparkResponse struct {
	Spark struct {
		Result []sparkResult `json:"result"`
	} `json:"spark"`
}

type sparkResult struct {
	Symbol   string       `json:"symbol"`
	Response []sparkChart `json:"response"`
}

type sparkChart struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// GetHistory returns a per-symbol close series covering the lookback window.
// Every requested symbol has an entry in the result: HistoryOK with data,
// or HistoryEmpty when the provider knows no series for it. A non-nil error
// means the batch call itself failed and no per-symbol data exists.
func (s *HistoryService) GetHistory(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
	if len(symbols) == 0 {
		return map[string]models.HistoryResult{}, nil
	}

	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)

	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest("history", "spark")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI("history", "spark")

	var decoded sparkResponse
	fetch := func() (struct{}, error) {
		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			params := url.Values{}
			params.Set("symbols", strings.Join(sorted, ","))
			params.Set("range", string(lookback))
			params.Set("interval", "1d")

			req, err := http.NewRequestWithContext(ctx, http.MethodGet,
				s.baseURL+"/v8/finance/spark?"+params.Encode(), nil)
			if err != nil {
				return fmt.Errorf("failed to build spark request: %w", err)
			}
			req.Header.Set("User-Agent", userAgent)

			resp, err := s.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("history endpoint returned status %d", resp.StatusCode)
			}

			decoded = sparkResponse{}
			if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
				return fmt.Errorf("failed to decode history: %w", err)
			}
			return nil
		})
		return struct{}{}, err
	}

	if _, err := WithCircuitBreaker(ctx, BreakerHistory, fetch); err != nil {
		metrics.RecordExternalAPIError("history", "spark", "transport")
		return nil, err
	}

	results := make(map[string]models.HistoryResult, len(sorted))
	for _, sym := range sorted {
		results[sym] = models.HistoryResult{Status: models.HistoryEmpty}
	}

	for _, r := range decoded.Spark.Result {
		closes := extractCloses(r)
		if len(closes) == 0 {
			continue
		}
		results[r.Symbol] = models.HistoryResult{Status: models.HistoryOK, Closes: closes}
	}

	return results, nil
}

// HasHistory verifies that a symbol has at least one daily close. Used by the
// resolver to validate numeric codes against a market segment.
func (s *HistoryService) HasHistory(ctx context.Context, symbol string) (bool, error) {
	results, err := s.GetHistory(ctx, []string{symbol}, models.Lookback1Mo)
	if err != nil {
		return false, err
	}
	return results[symbol].Status == models.HistoryOK, nil
}

// extractCloses flattens one spark result into a chronological close series,
// skipping null closes (suspended sessions).
func extractCloses(r sparkResult) []float64 {
	if len(r.Response) == 0 || len(r.Response[0].Indicators.Quote) == 0 {
		return nil
	}
	raw := r.Response[0].Indicators.Quote[0].Close
	closes := make([]float64, 0, len(raw))
	for _, c := range raw {
		if c != nil {
			closes = append(closes, *c)
		}
	}
	return closes
}
