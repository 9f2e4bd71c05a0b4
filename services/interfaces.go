package services

import (
	"context"

	"github.com/kkws0615/STOCKup/models"
)

// HistoryProvider is the quote-history collaborator as seen by the resolver
// and the dashboard assembler.
type HistoryProvider interface {
	GetHistory(ctx context.Context, symbols []string, lookback models.Lookback) (map[string]models.HistoryResult, error)
	HasHistory(ctx context.Context, symbol string) (bool, error)
}

// SymbolSearcher is the symbol-search collaborator as seen by the resolver.
type SymbolSearcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

var _ HistoryProvider = (*HistoryService)(nil)
var _ SymbolSearcher = (*SearchService)(nil)
