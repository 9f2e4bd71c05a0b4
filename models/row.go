package models

import "github.com/shopspring/decimal"

// DisplayRow is the assembled unit handed to the presentation layer. It is
// fully derived and recreated on every render cycle.
type DisplayRow struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	ReferenceURL  string          `json:"reference_url"`
	Price         decimal.Decimal `json:"price"`
	ChangePct     float64         `json:"change_pct"`
	MA20Display   string          `json:"ma20_display"`
	RatingLabel   string          `json:"rating_label"`
	RatingStyle   string          `json:"rating_style_class"`
	RationaleHTML string          `json:"rationale_html"`
	TrendSlice    []float64       `json:"trend_slice"`

	// Sort keys, server-side only.
	Score    float64 `json:"-"`
	Priority int     `json:"-"`
	Pinned   bool    `json:"-"`
}

// MaxTrendPoints bounds the sparkline slice carried by a row.
const MaxTrendPoints = 30

// QuoteURL builds the external quote page link for a symbol.
func QuoteURL(symbol string) string {
	return "https://tw.stock.yahoo.com/quote/" + symbol
}
