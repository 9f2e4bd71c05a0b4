// Package dashboard turns a watchlist into the ordered rows the presentation
// layer renders. Assembly is a full rebuild on every cycle: fetch the batch
// history, derive the figures, classify, prune dead entries, then sort.
package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kkws0615/STOCKup/analysis"
	"github.com/kkws0615/STOCKup/models"
	"github.com/kkws0615/STOCKup/observability"
	"github.com/kkws0615/STOCKup/rating"
	"github.com/kkws0615/STOCKup/services"
	"github.com/kkws0615/STOCKup/watchlist"
)

// Assembler builds display rows for a watchlist using batch history data.
type Assembler struct {
	history  services.HistoryProvider
	cache    *HistoryCache
	cacheTTL time.Duration
	lookback models.Lookback
	now      func() time.Time
}

// NewAssembler wires an assembler over a history provider. The cache TTL
// bounds how stale a reused batch may be; the lookback window is fixed per
// deployment so cache keys stay stable.
func NewAssembler(history services.HistoryProvider, cache *HistoryCache, cacheTTL time.Duration, lookback models.Lookback) *Assembler {
	return &Assembler{
		history:  history,
		cache:    cache,
		cacheTTL: cacheTTL,
		lookback: lookback,
		now:      time.Now,
	}
}

// Result is one assembled dashboard cycle.
type Result struct {
	Rows        []models.DisplayRow `json:"rows"`
	Notice      string              `json:"notice,omitempty"`
	PrunedCount int                 `json:"pruned_count,omitempty"`
}

// Assemble rebuilds the dashboard for one watchlist. Entries whose history
// came back empty are removed from the store before the rows are sorted, so
// a dead identifier disappears in the same cycle that discovers it. A batch
// transport failure keeps the list intact and surfaces as a notice, not an
// error.
func (a *Assembler) Assemble(ctx context.Context, store *watchlist.Store) Result {
	entries := store.Entries()
	if len(entries) == 0 {
		return Result{}
	}

	symbols := make([]string, len(entries))
	for i, e := range entries {
		symbols[i] = e.Instrument.Symbol()
	}

	batch, err := a.fetchBatch(ctx, symbols)
	if err != nil {
		observability.Error("batch history fetch failed", "error", err, "symbols", len(symbols))
		return Result{Notice: "暫時無法取得報價資料，請稍後重新整理"}
	}

	pinned := store.ConsumePin()

	rows := make([]models.DisplayRow, 0, len(entries))
	var pruneList []string
	for _, entry := range entries {
		symbol := entry.Instrument.Symbol()
		result := batch[symbol]

		switch result.Status {
		case models.HistoryEmpty:
			pruneList = append(pruneList, symbol)
			continue
		case models.HistoryFailed:
			// Per-symbol failure inside an otherwise good batch: keep the
			// entry and render it without data rather than pruning it.
			rows = append(rows, buildRow(entry, nil, symbol == pinned))
			continue
		}
		rows = append(rows, buildRow(entry, result.Closes, symbol == pinned))
	}

	var notice string
	if len(pruneList) > 0 {
		removed := store.RemoveAll(pruneList)
		observability.GetMetrics().RecordPrunedEntries(removed)
		observability.Info("pruned entries without history", "count", removed)
		notice = fmt.Sprintf("已自動移除 %d 檔查無報價資料的股票", removed)
	}

	sortRows(rows)
	return Result{Rows: rows, Notice: notice, PrunedCount: len(pruneList)}
}

// fetchBatch serves the batch from cache when fresh, fetching otherwise.
func (a *Assembler) fetchBatch(ctx context.Context, symbols []string) (map[string]models.HistoryResult, error) {
	key := CacheKey(symbols, a.lookback)
	now := a.now()

	if batch, fetchedAt, ok := a.cache.Get(key); ok && now.Sub(fetchedAt) <= a.cacheTTL {
		observability.GetMetrics().RecordCacheHit()
		return batch, nil
	}
	observability.GetMetrics().RecordCacheMiss()

	batch, err := a.history.GetHistory(ctx, symbols, a.lookback)
	if err != nil {
		return nil, err
	}
	a.cache.Put(key, batch, now)
	a.cache.DropOlderThan(now.Add(-a.cacheTTL))
	return batch, nil
}

// buildRow derives one display row from an entry and its close series.
func buildRow(entry models.Entry, closes []float64, pinned bool) models.DisplayRow {
	symbol := entry.Instrument.Symbol()

	in := rating.Inputs{Sector: rating.SectorFor(entry.Instrument.Code)}
	var price float64
	if len(closes) > 0 {
		price = closes[len(closes)-1]
		in.Price = price
		in.HasPrice = true
	}
	in.MA20, in.HasMA20 = analysis.MovingAverage(closes, 20)
	in.MA60, in.HasMA60 = analysis.MovingAverage(closes, 60)

	class := rating.Classify(in)
	observability.GetMetrics().RecordRating(class.StyleClass)

	ma20Display := "—"
	if in.HasMA20 {
		ma20Display = fmt.Sprintf("%.1f", in.MA20)
	}

	trend := analysis.TrendSlice(closes, models.MaxTrendPoints)
	trendCopy := make([]float64, len(trend))
	copy(trendCopy, trend)

	return models.DisplayRow{
		Code:          entry.Instrument.Code,
		Name:          entry.Name,
		ReferenceURL:  models.QuoteURL(symbol),
		Price:         decimal.NewFromFloat(price).Round(2),
		ChangePct:     analysis.ChangePct(closes),
		MA20Display:   ma20Display,
		RatingLabel:   class.Label,
		RatingStyle:   class.StyleClass,
		RationaleHTML: class.Rationale,
		TrendSlice:    trendCopy,
		Score:         class.Score,
		Priority:      class.Priority,
		Pinned:        pinned,
	}
}

// sortRows orders rows pinned first, then score descending, then priority
// descending, then code ascending as the stable tiebreak.
func sortRows(rows []models.DisplayRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.Code < b.Code
	})
}

// FilterStrongBuy keeps only the rows rated strong buy. Used by the
// dashboard's filter toggle.
func FilterStrongBuy(rows []models.DisplayRow) []models.DisplayRow {
	out := make([]models.DisplayRow, 0, len(rows))
	for _, row := range rows {
		if row.RatingStyle == rating.StyleStrongBuy {
			out = append(out, row)
		}
	}
	return out
}
