package recipe

import (
	"fmt"
	"time"
)

// Extraction strategies in descending reliability order. Confidence ordinals
// mirror this order; they are carried for logging and never persisted.

type Strategy string

const (
	StrategyJSONLD    Strategy = "json_ld"
	StrategyMicrodata Strategy = "microdata"
	StrategyHeading   Strategy = "heading_html"
	StrategyCSS       Strategy = "css_fallback"
)

func (s Strategy) Confidence() int {
	switch s {
	case StrategyJSONLD:
		return 4
	case StrategyMicrodata:
		return 3
	case StrategyHeading:
		return 2
	case StrategyCSS:
		return 1
	default:
		return 0
	}
}

// RawIngredientLine is one ingredient candidate pulled from a page, tagged
// with the strategy that produced it. Consumed by normalization and discarded.
type RawIngredientLine struct {
	Text   string
	Source Strategy
}

// Ingredient is a structured ingredient record. Quantity and Unit are both
// present or both absent; a bare "to taste" item has neither. Unit keeps the
// verbatim (lowercased) string so units outside the conversion table, like
// "loaf", survive for display and exact-match merging.
type Ingredient struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
	Name     string   `json:"name"`
}

func (i Ingredient) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("ingredient name is empty")
	}
	if (i.Quantity == nil) != (i.Unit == "") {
		return fmt.Errorf("ingredient %q: quantity and unit must be present together", i.Name)
	}
	return nil
}

// Recipe is the cached resolution result for one dish. Immutable once
// written; refresh replaces the whole record.
type Recipe struct {
	DishName    string       `json:"dish_name"`
	Ingredients []Ingredient `json:"ingredients"`
	SourceURL   string       `json:"source_url"`
	RetrievedAt time.Time    `json:"retrieved_at"`
}

// ShoppingListEntry is one consolidated line of the final shopping list.
// Created and mutated only by the Consolidator.
type ShoppingListEntry struct {
	Ingredient         Ingredient `json:"ingredient"`
	ContributingDishes []string   `json:"contributing_dishes"`
}
