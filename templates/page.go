// Package templates renders the dashboard HTML. Components implement
// templ.Component and are composed server-side; the only client-side logic is
// table sorting and the fetch calls behind the add and remove controls.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/kkws0615/STOCKup/models"
)

// Index renders the full dashboard page.
func Index(rows []models.DisplayRow, notice string, strongOnly bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if err := header(strongOnly).Render(ctx, w); err != nil {
			return err
		}
		if notice != "" {
			if _, err := fmt.Fprintf(w, `<div class="notice">%s</div>`, templ.EscapeString(notice)); err != nil {
				return err
			}
		}
		if err := Table(rows).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

// header renders the title bar, the add form and the filter toggle.
func header(strongOnly bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		toggleHref, toggleLabel := "/?filter=strong", "只看強力買進"
		if strongOnly {
			toggleHref, toggleLabel = "/", "顯示全部"
		}
		_, err := fmt.Fprintf(w, `<header>
<h1>台股觀察清單</h1>
<form id="add-form" autocomplete="off">
<input id="add-input" name="query" type="text" placeholder="輸入代號或名稱，如 2330、台積電" required>
<button type="submit">加入</button>
</form>
<a class="filter-toggle" href="%s">%s</a>
<div id="add-error" class="add-error" hidden></div>
</header>`, toggleHref, templ.EscapeString(toggleLabel))
		return err
	})
}

// Table renders the watchlist rows. Headers carry a data-key consumed by the
// sorting script; each row keeps its server-side position in data-index so a
// third click on a header restores the original order.
func Table(rows []models.DisplayRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(rows) == 0 {
			_, err := io.WriteString(w, `<p class="empty-state">清單是空的，先加入一檔股票吧。</p>`)
			return err
		}

		if _, err := io.WriteString(w, `<table id="watchlist">
<thead><tr>
<th data-key="code">代號</th>
<th>名稱</th>
<th data-key="price">股價</th>
<th data-key="change">漲跌幅</th>
<th data-key="ma20">20 日均線</th>
<th data-key="score">評級</th>
<th>走勢</th>
<th></th>
</tr></thead>
<tbody>`); err != nil {
			return err
		}
		for i, row := range rows {
			if err := tableRow(i, row).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func tableRow(index int, row models.DisplayRow) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		symbol := symbolOf(row)
		changeClass := "flat"
		if row.ChangePct > 0 {
			changeClass = "up"
		} else if row.ChangePct < 0 {
			changeClass = "down"
		}

		_, err := fmt.Fprintf(w, `<tr data-index="%d">
<td data-value="%s"><a href="%s" target="_blank" rel="noopener">%s</a></td>
<td>%s</td>
<td data-value="%s">%s</td>
<td data-value="%.2f" class="change-%s">%.2f%%</td>
<td data-value="%s">%s</td>
<td data-value="%.0f"><span class="rating %s" title="%s">%s</span></td>
<td>`,
			index,
			templ.EscapeString(row.Code), templ.EscapeString(row.ReferenceURL), templ.EscapeString(row.Code),
			templ.EscapeString(row.Name),
			row.Price.String(), row.Price.String(),
			row.ChangePct, changeClass, row.ChangePct,
			templ.EscapeString(row.MA20Display), templ.EscapeString(row.MA20Display),
			row.Score, templ.EscapeString(row.RatingStyle), templ.EscapeString(row.RationaleHTML), templ.EscapeString(row.RatingLabel))
		if err != nil {
			return err
		}
		if err := Sparkline(row.TrendSlice).Render(ctx, w); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `</td>
<td><button class="remove" data-symbol="%s" aria-label="移除">✕</button></td>
</tr>`, templ.EscapeString(symbol))
		return err
	})
}

// symbolOf rebuilds the canonical symbol from a row's reference URL suffix.
func symbolOf(row models.DisplayRow) string {
	const prefix = "https://tw.stock.yahoo.com/quote/"
	if len(row.ReferenceURL) > len(prefix) {
		return row.ReferenceURL[len(prefix):]
	}
	return row.Code
}
