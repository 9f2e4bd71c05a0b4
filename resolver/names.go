package resolver

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed names.yaml
var namesYAML []byte

// DefaultNames returns the built-in company-name dictionary (display name to
// bare code).
func DefaultNames() map[string]string {
	var names map[string]string
	if err := yaml.Unmarshal(namesYAML, &names); err != nil {
		panic(fmt.Sprintf("resolver: bad names.yaml: %v", err))
	}
	return names
}
