// Package rating turns a price point and its moving averages into a
// qualitative rating. The decision logic is an ordered rule table evaluated
// first-match-wins; the final rule is a catch-all, so every input combination
// maps to a defined classification.
package rating

import "fmt"

// Sort priorities, independent of the numeric score.
const (
	PriorityLowest  = 0
	PriorityNormal  = 1
	PriorityHighest = 2
)

// Style classes consumed by the presentation layer.
const (
	StyleNoData       = "rating-no-data"
	StyleShortBullish = "rating-short-bullish"
	StyleWatch        = "rating-watch"
	StyleStrongBuy    = "rating-strong-buy"
	StyleBuy          = "rating-buy"
	StyleSell         = "rating-sell"
	StyleAvoid        = "rating-avoid"
)

// biasThreshold is the 20-day bias (in percent) above which a trend counts as
// strong. Fixed, not configurable.
const biasThreshold = 5.0

// Inputs is everything Classify looks at. The Has flags make "unavailable"
// explicit; a zero value with its flag unset is never read.
type Inputs struct {
	Price    float64
	HasPrice bool
	MA20     float64
	HasMA20  bool
	MA60     float64
	HasMA60  bool
	Sector   string
}

// Classification is the derived rating for one instrument.
type Classification struct {
	Label      string  `json:"label"`
	StyleClass string  `json:"style_class"`
	Priority   int     `json:"priority"`
	Score      float64 `json:"score"`
	Rationale  string  `json:"rationale"`
}

// rule pairs a predicate with its outcome. Order in the rules slice is the
// precedence; conditions overlap deliberately.
type rule struct {
	name  string
	match func(in Inputs) bool
	build func(in Inputs) Classification
}

var rules = []rule{
	{
		name:  "no-data",
		match: func(in Inputs) bool { return !in.HasPrice },
		build: func(in Inputs) Classification {
			return Classification{
				Label:      "無資料",
				StyleClass: StyleNoData,
				Priority:   PriorityLowest,
				Score:      0,
				Rationale:  "目前無法取得股價資料",
			}
		},
	},
	{
		// Young series: the 60-day average has not formed yet.
		name:  "young-series",
		match: func(in Inputs) bool { return !in.HasMA60 || !in.HasMA20 },
		build: func(in Inputs) Classification {
			if in.HasMA20 && in.Price > in.MA20 {
				return Classification{
					Label:      "短線偏多",
					StyleClass: StyleShortBullish,
					Priority:   PriorityNormal,
					Score:      60,
					Rationale:  fmt.Sprintf("股價 %.1f 站上 20 日均線 %.1f，短線動能轉強", in.Price, in.MA20),
				}
			}
			rationale := "上市日數不足，20 日均線尚未形成，先行觀望"
			if in.HasMA20 {
				rationale = fmt.Sprintf("股價 %.1f 未站上 20 日均線 %.1f，均線資料不足先觀望", in.Price, in.MA20)
			}
			return Classification{
				Label:      "觀望",
				StyleClass: StyleWatch,
				Priority:   PriorityNormal,
				Score:      40,
				Rationale:  rationale,
			}
		},
	},
	{
		name: "strong-buy",
		match: func(in Inputs) bool {
			return in.Price > in.MA20 && in.Price > in.MA60 && bias20(in) > biasThreshold
		},
		build: func(in Inputs) Classification {
			return Classification{
				Label:      "強力買進",
				StyleClass: StyleStrongBuy,
				Priority:   PriorityHighest,
				Score:      90,
				Rationale: fmt.Sprintf("股價 %.1f 同時站上 20 日均線 %.1f 與 60 日均線 %.1f，正乖離 %.1f%% 強勢表態",
					in.Price, in.MA20, in.MA60, bias20(in)),
			}
		},
	},
	{
		name:  "buy",
		match: func(in Inputs) bool { return in.Price > in.MA20 && bias20(in) > 0 },
		build: func(in Inputs) Classification {
			return Classification{
				Label:      "買進",
				StyleClass: StyleBuy,
				Priority:   PriorityNormal,
				Score:      70,
				Rationale: fmt.Sprintf("股價 %.1f 站上 20 日均線 %.1f，乖離 %.1f%% 仍屬健康",
					in.Price, in.MA20, bias20(in)),
			}
		},
	},
	{
		name:  "avoid",
		match: func(in Inputs) bool { return in.Price < in.MA20 && in.Price < in.MA60 },
		build: func(in Inputs) Classification {
			return Classification{
				Label:      "避開",
				StyleClass: StyleAvoid,
				Priority:   PriorityLowest,
				Score:      10,
				Rationale: fmt.Sprintf("股價 %.1f 同時跌破 20 日均線 %.1f 與 60 日均線 %.1f，趨勢轉空",
					in.Price, in.MA20, in.MA60),
			}
		},
	},
	{
		name:  "sell",
		match: func(in Inputs) bool { return in.Price < in.MA20 },
		build: func(in Inputs) Classification {
			return Classification{
				Label:      "賣出",
				StyleClass: StyleSell,
				Priority:   PriorityNormal,
				Score:      30,
				Rationale: fmt.Sprintf("股價 %.1f 跌破 20 日均線 %.1f，留意短線轉弱",
					in.Price, in.MA20),
			}
		},
	},
	{
		// Catch-all: price between the averages with no clear bias.
		name:  "neutral",
		match: func(in Inputs) bool { return true },
		build: func(in Inputs) Classification {
			return Classification{
				Label:      "觀望",
				StyleClass: StyleWatch,
				Priority:   PriorityNormal,
				Score:      50,
				Rationale: fmt.Sprintf("股價 %.1f 於 20 日均線 %.1f 附近整理，方向未明",
					in.Price, in.MA20),
			}
		},
	},
}

// bias20 is the percentage deviation of the price from the 20-day average.
func bias20(in Inputs) float64 {
	if in.MA20 == 0 {
		return 0
	}
	return (in.Price - in.MA20) / in.MA20 * 100
}

// Classify walks the rule table and returns the first matching outcome with
// the sector clause appended to the technical rationale.
func Classify(in Inputs) Classification {
	for _, r := range rules {
		if !r.match(in) {
			continue
		}
		c := r.build(in)
		c.Rationale = c.Rationale + "；" + sectorClause(in.Sector, c.Score)
		return c
	}
	// Unreachable: the last rule always matches.
	panic("rating: rule table has no catch-all")
}

// sectorClause picks the bullish clause for constructive ratings and the
// bearish one otherwise.
func sectorClause(sector string, score float64) string {
	bullish, bearish := Commentary(sector)
	if score >= 60 {
		return bullish
	}
	return bearish
}
