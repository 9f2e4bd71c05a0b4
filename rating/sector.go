package rating

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sectors.yaml
var sectorsYAML []byte

type clausePair struct {
	Bullish string `yaml:"bullish"`
	Bearish string `yaml:"bearish"`
}

type commentaryTable struct {
	Default string                `yaml:"default"`
	Codes   map[string]string     `yaml:"codes"`
	Sectors map[string]clausePair `yaml:"sectors"`
}

var commentary commentaryTable

func init() {
	if err := yaml.Unmarshal(sectorsYAML, &commentary); err != nil {
		panic(fmt.Sprintf("rating: bad sectors.yaml: %v", err))
	}
	if _, ok := commentary.Sectors[commentary.Default]; !ok {
		panic("rating: sectors.yaml default sector has no clause pair")
	}
}

// SectorFor maps a bare instrument code to its sector tag, falling back to
// the default sector for unmapped codes.
func SectorFor(code string) string {
	if sector, ok := commentary.Codes[code]; ok {
		return sector
	}
	return commentary.Default
}

// Commentary returns the canned bullish and bearish clauses for a sector tag.
// Unknown tags use the default sector's pair.
func Commentary(sector string) (bullish, bearish string) {
	pair, ok := commentary.Sectors[sector]
	if !ok {
		pair = commentary.Sectors[commentary.Default]
	}
	return pair.Bullish, pair.Bearish
}
