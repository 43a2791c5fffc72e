package extract

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yml
var defaultPatternsData []byte

// PatternTable pins the CSS-fallback strategy to an explicit, versioned set
// of selectors so fixtures can assert exact behavior. ListSelectors locate
// containers whose list items are collected; ItemSelectors are the last
// resort and match ingredient elements directly.
type PatternTable struct {
	Version       int      `yaml:"version"`
	ListSelectors []string `yaml:"list_selectors"`
	ItemSelectors []string `yaml:"item_selectors"`
}

func DefaultPatternTable() *PatternTable {
	table, err := parsePatternTable(defaultPatternsData)
	if err != nil {
		// The embedded table is validated by tests; this is unreachable.
		panic(fmt.Sprintf("embedded pattern table is invalid: %v", err))
	}
	return table
}

// LoadPatternTable reads a pattern table from a YAML file, allowing selector
// updates without a rebuild.
func LoadPatternTable(path string) (*PatternTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern table: %w", err)
	}
	return parsePatternTable(data)
}

func parsePatternTable(data []byte) (*PatternTable, error) {
	var table PatternTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse pattern table: %w", err)
	}

	if table.Version == 0 {
		return nil, fmt.Errorf("pattern table version is required")
	}
	if len(table.ListSelectors) == 0 && len(table.ItemSelectors) == 0 {
		return nil, fmt.Errorf("pattern table has no selectors")
	}

	return &table, nil
}
