package models

// Lookback is the closed set of history windows the quote provider accepts.
type Lookback string

const (
	Lookback1Mo Lookback = "1mo"
	Lookback3Mo Lookback = "3mo"
	Lookback6Mo Lookback = "6mo"
)

// HistoryStatus tells a caller what happened for one symbol in a batch fetch.
// Callers branch on it explicitly instead of swallowing errors.
type HistoryStatus int

const (
	// HistoryOK means a non-empty close series was returned.
	HistoryOK HistoryStatus = iota
	// HistoryEmpty means the provider answered but knows no usable series
	// for the symbol (unknown or delisted).
	HistoryEmpty
	// HistoryFailed means the call itself failed (timeout, transport,
	// malformed payload).
	HistoryFailed
)

// HistoryResult is the per-symbol outcome of a history fetch. Closes is
// chronological, most-recent last, and only populated when Status is HistoryOK.
type HistoryResult struct {
	Status HistoryStatus
	Closes []float64
}
