package main

import (
	"context"

	"github.com/kkws0615/STOCKup/dashboard"
	"github.com/kkws0615/STOCKup/models"
	"github.com/kkws0615/STOCKup/resolver"
	"github.com/kkws0615/STOCKup/watchlist"
)

// App struct
type App struct {
	resolver  *resolver.Resolver
	assembler *dashboard.Assembler
	sessions  *watchlist.Sessions
}

// NewApp creates a new App application struct
func NewApp(res *resolver.Resolver, assembler *dashboard.Assembler, sessions *watchlist.Sessions) *App {
	return &App{
		resolver:  res,
		assembler: assembler,
		sessions:  sessions,
	}
}

// AddToWatchlist resolves free-form user input to an instrument and adds it
// to the session's watchlist. A duplicate is reported as added=false, not an
// error; resolution errors pass through untouched so the handler can map them
// to user-facing messages.
func (a *App) AddToWatchlist(ctx context.Context, sessionID, query string) (entry models.Entry, added bool, err error) {
	entry, err = a.resolver.Resolve(ctx, query)
	if err != nil {
		return models.Entry{}, false, err
	}
	return entry, a.sessions.Store(sessionID).Add(entry), nil
}

// RemoveFromWatchlist drops a symbol from the session's watchlist and reports
// whether it was present.
func (a *App) RemoveFromWatchlist(sessionID, symbol string) bool {
	return a.sessions.Store(sessionID).Remove(symbol)
}

// Dashboard assembles the session's rows, optionally filtered to strong buys.
func (a *App) Dashboard(ctx context.Context, sessionID string, strongOnly bool) dashboard.Result {
	result := a.assembler.Assemble(ctx, a.sessions.Store(sessionID))
	if strongOnly {
		result.Rows = dashboard.FilterStrongBuy(result.Rows)
	}
	return result
}

// WatchlistLen returns the size of the session's list, for health reporting.
func (a *App) WatchlistLen(sessionID string) int {
	return a.sessions.Store(sessionID).Len()
}
