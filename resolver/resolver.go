// Package resolver turns free-text user input (a code or a company name)
// into a canonical, verified instrument identifier. Strategies run in a fixed
// order, first success wins; the order is a visible slice, not control flow.
package resolver

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/kkws0615/STOCKup/models"
	"github.com/kkws0615/STOCKup/observability"
	"github.com/kkws0615/STOCKup/services"
)

// Collaborator interfaces, shared with the services package.
type HistoryVerifier = services.HistoryProvider
type SymbolSearcher = services.SymbolSearcher

// Distinguished resolution failures. Handlers map them to user-facing
// messages via UserMessage.
var (
	ErrMalformed = errors.New("malformed input")
	ErrTooShort  = errors.New("code too short")
	ErrNotFound  = errors.New("code not found upstream")
	ErrNoMatch   = errors.New("no match for query")
	ErrUpstream  = errors.New("upstream unavailable")
)

// UserMessage maps a resolution failure to a short zh-TW message.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMalformed):
		return "輸入格式有誤，請輸入股票代號或公司名稱"
	case errors.Is(err, ErrTooShort):
		return "代號太短，台股代號至少 3 碼"
	case errors.Is(err, ErrNotFound):
		return "查無此代號，上市與上櫃都找不到"
	case errors.Is(err, ErrUpstream):
		return "連線失敗，請稍後再試"
	case errors.Is(err, ErrNoMatch):
		return "找不到符合的股票，請換個關鍵字"
	default:
		return "查詢失敗，請稍後再試"
	}
}

var (
	allDigitsRe       = regexp.MustCompile(`^[0-9]+$`)
	digitsThenAlphaRe = regexp.MustCompile(`^[0-9]+[A-Za-z]`)
)

// localExchanges maps the search collaborator's exchange tags to identifier
// suffixes.
var localExchanges = map[string]models.Segment{
	"TAI": models.SegmentTWSE,
	"TWO": models.SegmentTPEx,
}

// foreignExchanges are accepted as-is: the returned symbol is already
// canonical.
var foreignExchanges = map[string]bool{
	"NYQ": true, // NYSE
	"NMS": true, // Nasdaq Global Select
	"NGM": true, // Nasdaq Global Market
	"NCM": true, // Nasdaq Capital Market
	"ASE": true, // NYSE American
	"PCX": true, // NYSE Arca
}

// Resolver resolves user text through a layered strategy chain. It never
// mutates the watchlist; callers add the returned entry themselves.
type Resolver struct {
	history    HistoryVerifier
	search     SymbolSearcher
	names      map[string]string // display name -> bare code
	codeToName map[string]string
	strategies []strategy
}

// strategy is one resolution layer. ok means resolved; a non-nil err is a
// terminal failure; neither means fall through to the next layer.
type strategy struct {
	name    string
	resolve func(ctx context.Context, text string) (models.Entry, bool, error)
}

// NewResolver creates a Resolver with the built-in name dictionary.
func NewResolver(history HistoryVerifier, search SymbolSearcher) *Resolver {
	return NewResolverWithNames(history, search, DefaultNames())
}

// NewResolverWithNames creates a Resolver with an injected dictionary.
func NewResolverWithNames(history HistoryVerifier, search SymbolSearcher, names map[string]string) *Resolver {
	r := &Resolver{
		history:    history,
		search:     search,
		names:      names,
		codeToName: make(map[string]string, len(names)),
	}
	for name, code := range names {
		r.codeToName[code] = name
	}
	r.strategies = []strategy{
		{"exact", r.exactLocal},
		{"numeric", r.numericCode},
		{"search", r.remoteSearch},
		{"fuzzy", r.fuzzyLocal},
	}
	return r
}

// Resolve turns user text into a watchlist entry or a distinguished failure.
func (r *Resolver) Resolve(ctx context.Context, userText string) (models.Entry, error) {
	metrics := observability.GetMetrics()

	text := strings.TrimSpace(userText)
	if err := validate(text); err != nil {
		metrics.RecordResolution("validate", "rejected")
		return models.Entry{}, err
	}

	for _, s := range r.strategies {
		entry, ok, err := s.resolve(ctx, text)
		if err != nil {
			metrics.RecordResolution(s.name, "failed")
			return models.Entry{}, err
		}
		if ok {
			metrics.RecordResolution(s.name, "ok")
			observability.WithSymbol(entry.Instrument.Symbol()).Info("resolved ticker",
				"input", text, "layer", s.name)
			return entry, nil
		}
	}

	metrics.RecordResolution("fuzzy", "no_match")
	return models.Entry{}, ErrNoMatch
}

// validate rejects inputs that are never resolvable before any lookup runs.
func validate(text string) error {
	if text == "" {
		return ErrMalformed
	}
	if digitsThenAlphaRe.MatchString(text) {
		return ErrMalformed
	}
	if allDigitsRe.MatchString(text) && len(text) < 3 {
		return ErrTooShort
	}
	return nil
}

// exactLocal resolves an exact dictionary key to its code on the primary
// segment.
func (r *Resolver) exactLocal(_ context.Context, text string) (models.Entry, bool, error) {
	code, ok := r.names[text]
	if !ok {
		return models.Entry{}, false, nil
	}
	return models.Entry{
		Instrument: models.Instrument{Code: code, Segment: models.SegmentTWSE},
		Name:       text,
	}, true, nil
}

// numericCode verifies an all-digit code against the history collaborator,
// primary segment first, then secondary. A code that yields history on
// neither segment is a terminal failure; it is never treated as a name.
func (r *Resolver) numericCode(ctx context.Context, text string) (models.Entry, bool, error) {
	if !allDigitsRe.MatchString(text) {
		return models.Entry{}, false, nil
	}

	var verifyErrs []error
	for _, seg := range []models.Segment{models.SegmentTWSE, models.SegmentTPEx} {
		inst := models.Instrument{Code: text, Segment: seg}
		ok, err := r.history.HasHistory(ctx, inst.Symbol())
		if err != nil {
			observability.WithSymbol(inst.Symbol()).Warn("history verification failed", "error", err)
			verifyErrs = append(verifyErrs, err)
			continue
		}
		if ok {
			return models.Entry{Instrument: inst, Name: r.displayName(text)}, true, nil
		}
	}

	if len(verifyErrs) == 2 {
		return models.Entry{}, false, ErrUpstream
	}
	return models.Entry{}, false, ErrNotFound
}

// remoteSearch delegates to the symbol-search collaborator and accepts the
// first result on a known exchange. Transport failures fall through to the
// fuzzy layer.
func (r *Resolver) remoteSearch(ctx context.Context, text string) (models.Entry, bool, error) {
	results, err := r.search.Search(ctx, text)
	if err != nil {
		observability.Warn("symbol search unavailable, falling back", "query", text, "error", err)
		return models.Entry{}, false, nil
	}

	for _, res := range results {
		if seg, ok := localExchanges[res.Exchange]; ok {
			inst := models.Instrument{Code: models.ParseSymbol(res.Symbol).Code, Segment: seg}
			return models.Entry{Instrument: inst, Name: displayNameOr(res.Name, inst.Code)}, true, nil
		}
		if foreignExchanges[res.Exchange] {
			inst := models.Instrument{Code: res.Symbol, Segment: models.SegmentForeign}
			return models.Entry{Instrument: inst, Name: displayNameOr(res.Name, res.Symbol)}, true, nil
		}
	}

	return models.Entry{}, false, nil
}

// fuzzyLocal substring-matches the dictionary in both directions. Keys are
// sorted so the lowest-precedence layer is still deterministic.
func (r *Resolver) fuzzyLocal(_ context.Context, text string) (models.Entry, bool, error) {
	keys := make([]string, 0, len(r.names))
	for name := range r.names {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	for _, name := range keys {
		if strings.Contains(name, text) || strings.Contains(text, name) {
			return models.Entry{
				Instrument: models.Instrument{Code: r.names[name], Segment: models.SegmentTWSE},
				Name:       name,
			}, true, nil
		}
	}
	return models.Entry{}, false, nil
}

func (r *Resolver) displayName(code string) string {
	if name, ok := r.codeToName[code]; ok {
		return name
	}
	return code
}

func displayNameOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}
