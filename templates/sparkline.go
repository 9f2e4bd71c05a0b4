package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const (
	sparkWidth  = 120
	sparkHeight = 32
	sparkPad    = 2
)

// Sparkline renders a close-price series as an inline SVG polyline, scaled to
// the series min and max. Rising series draw green, falling ones red. Fewer
// than two points cannot form a line and render a placeholder dash.
func Sparkline(points []float64) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(points) < 2 {
			_, err := io.WriteString(w, `<span class="spark-empty">–</span>`)
			return err
		}

		min, max := points[0], points[0]
		for _, p := range points {
			if p < min {
				min = p
			}
			if p > max {
				max = p
			}
		}

		span := max - min
		if span == 0 {
			span = 1 // flat series draws a horizontal line mid-height
		}

		var coords strings.Builder
		step := float64(sparkWidth-2*sparkPad) / float64(len(points)-1)
		for i, p := range points {
			x := sparkPad + float64(i)*step
			y := sparkHeight - sparkPad - (p-min)/span*float64(sparkHeight-2*sparkPad)
			if i > 0 {
				coords.WriteByte(' ')
			}
			fmt.Fprintf(&coords, "%.1f,%.1f", x, y)
		}

		color := "#e4572e"
		if points[len(points)-1] >= points[0] {
			color = "#2e8b57"
		}

		_, err := fmt.Fprintf(w,
			`<svg class="sparkline" viewBox="0 0 %d %d" width="%d" height="%d" role="img"><polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/></svg>`,
			sparkWidth, sparkHeight, sparkWidth, sparkHeight, color, coords.String())
		return err
	})
}
