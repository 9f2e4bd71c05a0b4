package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kkws0615/STOCKup/models"
	"github.com/kkws0615/STOCKup/watchlist"
)

// MockHistory implements services.HistoryProvider with function fields.
type MockHistory struct {
	GetHistoryFunc func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error)
	Calls          int
}

func (m *MockHistory) GetHistory(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
	m.Calls++
	return m.GetHistoryFunc(ctx, symbols, lookback)
}

func (m *MockHistory) HasHistory(ctx context.Context, symbol string) (bool, error) {
	return false, nil
}

// series builds a close series long enough to form both moving averages,
// flat at base with the last close nudged to shape the rating.
func series(base, last float64) []float64 {
	closes := make([]float64, 70)
	for i := range closes {
		closes[i] = base
	}
	closes[len(closes)-1] = last
	return closes
}

func okBatch(data map[string][]float64) map[string]models.HistoryResult {
	batch := make(map[string]models.HistoryResult, len(data))
	for symbol, closes := range data {
		status := models.HistoryOK
		if len(closes) == 0 {
			status = models.HistoryEmpty
		}
		batch[symbol] = models.HistoryResult{Status: status, Closes: closes}
	}
	return batch
}

func newTestAssembler(history *MockHistory) *Assembler {
	return NewAssembler(history, NewHistoryCache(), time.Minute, models.Lookback6Mo)
}

func addEntry(s *watchlist.Store, code string, seg models.Segment, name string) {
	s.Add(models.Entry{
		Instrument: models.Instrument{Code: code, Segment: seg},
		Name:       name,
	})
}

func TestAssembleEmptyWatchlist(t *testing.T) {
	history := &MockHistory{}
	assembler := newTestAssembler(history)

	result := assembler.Assemble(context.Background(), watchlist.NewStore())
	if len(result.Rows) != 0 || result.Notice != "" {
		t.Errorf("empty watchlist should assemble to nothing, got %+v", result)
	}
	if history.Calls != 0 {
		t.Error("empty watchlist must not hit the history service")
	}
}

func TestAssembleBuildsRows(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			return okBatch(map[string][]float64{
				// Last close 10% above both averages: strong buy.
				"2330.TW": series(600, 680),
			}), nil
		},
	}
	assembler := newTestAssembler(history)

	store := watchlist.NewStore()
	addEntry(store, "2330", models.SegmentTWSE, "台積電")

	result := assembler.Assemble(context.Background(), store)
	if len(result.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(result.Rows))
	}

	row := result.Rows[0]
	if row.Code != "2330" || row.Name != "台積電" {
		t.Errorf("row identity = %s/%s", row.Code, row.Name)
	}
	if row.RatingLabel != "強力買進" {
		t.Errorf("RatingLabel = %q, want 強力買進", row.RatingLabel)
	}
	if !row.Price.Equal(decimal.NewFromInt(680)) {
		t.Errorf("Price = %s, want 680", row.Price)
	}
	if row.ReferenceURL != "https://tw.stock.yahoo.com/quote/2330.TW" {
		t.Errorf("ReferenceURL = %q", row.ReferenceURL)
	}
	if len(row.TrendSlice) != models.MaxTrendPoints {
		t.Errorf("TrendSlice length = %d, want %d", len(row.TrendSlice), models.MaxTrendPoints)
	}
	if row.MA20Display == "—" {
		t.Error("MA20Display should carry the formed average")
	}
}

func TestAssemblePrunesEmptyHistory(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			return okBatch(map[string][]float64{
				"2330.TW": series(600, 610),
				"9999.TW": nil,
			}), nil
		},
	}
	assembler := newTestAssembler(history)

	store := watchlist.NewStore()
	addEntry(store, "2330", models.SegmentTWSE, "台積電")
	addEntry(store, "9999", models.SegmentTWSE, "已下市")

	result := assembler.Assemble(context.Background(), store)
	if len(result.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 after pruning", len(result.Rows))
	}
	if result.PrunedCount != 1 {
		t.Errorf("PrunedCount = %d, want 1", result.PrunedCount)
	}
	if result.Notice == "" {
		t.Error("pruning should surface a notice")
	}
	if store.Contains("9999.TW") {
		t.Error("pruned symbol should be removed from the store")
	}
	if !store.Contains("2330.TW") {
		t.Error("healthy symbol must survive the prune")
	}
}

func TestAssemblePruningIsIdempotent(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			data := make(map[string][]float64, len(symbols))
			for _, symbol := range symbols {
				if symbol == "9999.TW" {
					data[symbol] = nil
					continue
				}
				data[symbol] = series(600, 610)
			}
			return okBatch(data), nil
		},
	}
	assembler := newTestAssembler(history)

	store := watchlist.NewStore()
	addEntry(store, "2330", models.SegmentTWSE, "台積電")
	addEntry(store, "9999", models.SegmentTWSE, "已下市")

	first := assembler.Assemble(context.Background(), store)
	if first.PrunedCount != 1 {
		t.Fatalf("first cycle PrunedCount = %d, want 1", first.PrunedCount)
	}

	second := assembler.Assemble(context.Background(), store)
	if second.PrunedCount != 0 {
		t.Errorf("second cycle PrunedCount = %d, want 0", second.PrunedCount)
	}
	if second.Notice != "" {
		t.Errorf("second cycle should carry no prune notice, got %q", second.Notice)
	}
	if store.Len() != 1 {
		t.Errorf("store Len = %d, want 1", store.Len())
	}
}

func TestAssembleBatchFailureKeepsList(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			return nil, errors.New("upstream down")
		},
	}
	assembler := newTestAssembler(history)

	store := watchlist.NewStore()
	addEntry(store, "2330", models.SegmentTWSE, "台積電")

	result := assembler.Assemble(context.Background(), store)
	if len(result.Rows) != 0 {
		t.Errorf("failed batch should yield no rows, got %d", len(result.Rows))
	}
	if result.Notice == "" {
		t.Error("failed batch should surface a notice")
	}
	if store.Len() != 1 {
		t.Error("transport failure must never prune the watchlist")
	}
	// The pin survives a failed cycle and still applies to the next one.
	if got := store.ConsumePin(); got != "2330.TW" {
		t.Errorf("pin after failed cycle = %q, want 2330.TW", got)
	}
}

func TestAssemblePinToTopForOneCycle(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			return okBatch(map[string][]float64{
				"2330.TW": series(600, 680), // strong buy
				"2603.TW": series(200, 180), // avoid
			}), nil
		},
	}
	assembler := NewAssembler(history, NewHistoryCache(), 0, models.Lookback6Mo)

	store := watchlist.NewStore()
	addEntry(store, "2330", models.SegmentTWSE, "台積電")
	addEntry(store, "2603", models.SegmentTWSE, "長榮") // most recent add, pinned

	first := assembler.Assemble(context.Background(), store)
	if first.Rows[0].Code != "2603" {
		t.Errorf("pinned row should lead the first cycle, got %s", first.Rows[0].Code)
	}

	second := assembler.Assemble(context.Background(), store)
	if second.Rows[0].Code != "2330" {
		t.Errorf("order should revert to score after one cycle, got %s", second.Rows[0].Code)
	}
}

func TestAssembleSortsByScoreThenCode(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			return okBatch(map[string][]float64{
				"2603.TW": series(200, 180), // avoid, 10
				"2330.TW": series(600, 680), // strong buy, 90
				"2882.TW": series(50, 52),   // buy, 70
				"2881.TW": series(80, 83),   // buy, 70
			}), nil
		},
	}
	assembler := newTestAssembler(history)

	store := watchlist.NewStore()
	addEntry(store, "2603", models.SegmentTWSE, "長榮")
	addEntry(store, "2330", models.SegmentTWSE, "台積電")
	addEntry(store, "2882", models.SegmentTWSE, "國泰金")
	addEntry(store, "2881", models.SegmentTWSE, "富邦金")
	store.ConsumePin() // drop the add-time pin so the pure ordering shows

	result := assembler.Assemble(context.Background(), store)
	got := make([]string, len(result.Rows))
	for i, row := range result.Rows {
		got[i] = row.Code
	}
	want := []string{"2330", "2881", "2882", "2603"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAssembleUsesCacheWithinTTL(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			return okBatch(map[string][]float64{"2330.TW": series(600, 610)}), nil
		},
	}
	assembler := newTestAssembler(history)

	store := watchlist.NewStore()
	addEntry(store, "2330", models.SegmentTWSE, "台積電")

	assembler.Assemble(context.Background(), store)
	assembler.Assemble(context.Background(), store)
	if history.Calls != 1 {
		t.Errorf("history calls = %d, want 1 (second cycle served from cache)", history.Calls)
	}

	// Changing the identifier set changes the key and forces a fetch.
	addEntry(store, "2603", models.SegmentTWSE, "長榮")
	assembler.Assemble(context.Background(), store)
	if history.Calls != 2 {
		t.Errorf("history calls = %d, want 2 after the set changed", history.Calls)
	}
}

func TestAssembleRefetchesAfterTTL(t *testing.T) {
	history := &MockHistory{
		GetHistoryFunc: func(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error) {
			return okBatch(map[string][]float64{"2330.TW": series(600, 610)}), nil
		},
	}
	assembler := newTestAssembler(history)

	now := time.Now()
	assembler.now = func() time.Time { return now }

	store := watchlist.NewStore()
	addEntry(store, "2330", models.SegmentTWSE, "台積電")

	assembler.Assemble(context.Background(), store)
	assembler.now = func() time.Time { return now.Add(2 * time.Minute) }
	assembler.Assemble(context.Background(), store)

	if history.Calls != 2 {
		t.Errorf("history calls = %d, want 2 after TTL expiry", history.Calls)
	}
}

func TestCacheKeyIgnoresOrder(t *testing.T) {
	a := CacheKey([]string{"2330.TW", "2603.TW"}, models.Lookback6Mo)
	b := CacheKey([]string{"2603.TW", "2330.TW"}, models.Lookback6Mo)
	if a != b {
		t.Errorf("keys differ for the same set: %q vs %q", a, b)
	}
	c := CacheKey([]string{"2330.TW", "2603.TW"}, models.Lookback1Mo)
	if a == c {
		t.Error("different lookbacks must not share a key")
	}
}

func TestFilterStrongBuy(t *testing.T) {
	rows := []models.DisplayRow{
		{Code: "2330", RatingStyle: "rating-strong-buy"},
		{Code: "2603", RatingStyle: "rating-avoid"},
		{Code: "2454", RatingStyle: "rating-strong-buy"},
	}
	filtered := FilterStrongBuy(rows)
	if len(filtered) != 2 {
		t.Fatalf("got %d rows, want 2", len(filtered))
	}
	if filtered[0].Code != "2330" || filtered[1].Code != "2454" {
		t.Errorf("filtered order = %s,%s", filtered[0].Code, filtered[1].Code)
	}
}
