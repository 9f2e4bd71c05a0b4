package models

import "strings"

// Segment is the market-segment suffix of a canonical symbol.
type Segment string

const (
	SegmentTWSE    Segment = ".TW"  // Taiwan Stock Exchange listing
	SegmentTPEx    Segment = ".TWO" // Taipei Exchange (OTC) listing
	SegmentForeign Segment = ""     // foreign symbol, used as returned
)

// Instrument identifies one listed equity. The bare code is never used as a
// key on its own; Symbol() is the canonical identifier everywhere.
type Instrument struct {
	Code    string  `json:"code"`
	Segment Segment `json:"segment"`
}

// Symbol returns the canonical identifier, e.g. "2330.TW".
func (i Instrument) Symbol() string {
	return i.Code + string(i.Segment)
}

// IsLocal reports whether the instrument trades on TWSE or TPEx.
func (i Instrument) IsLocal() bool {
	return i.Segment == SegmentTWSE || i.Segment == SegmentTPEx
}

// ParseSymbol splits a canonical identifier back into code and segment.
// Symbols without a recognized suffix are treated as foreign.
func ParseSymbol(symbol string) Instrument {
	for _, seg := range []Segment{SegmentTPEx, SegmentTWSE} {
		if strings.HasSuffix(symbol, string(seg)) {
			return Instrument{Code: strings.TrimSuffix(symbol, string(seg)), Segment: seg}
		}
	}
	return Instrument{Code: symbol, Segment: SegmentForeign}
}

// Entry is one watchlist member: a resolved instrument plus its display name.
// Entries are immutable; replace, don't edit.
type Entry struct {
	Instrument Instrument `json:"instrument"`
	Name       string     `json:"name"`
}
