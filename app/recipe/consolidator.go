package recipe

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/lysyi3m/grocery-comb/app/unit"
)

// Consolidator merges ingredients from resolved recipes into one shopping
// list, deduplicating by canonical name and summing quantities when units are
// convertible. Pure and synchronous; invoked after all resolutions complete.
type Consolidator struct{}

func NewConsolidator() *Consolidator {
	return &Consolidator{}
}

// Run iterates ingredients in recipe order, then ingredient order, so output
// is deterministic for identical input order. Ties between compatible entries
// resolve to the first-seen one; output preserves first-seen-name order.
func (c *Consolidator) Run(recipes []Recipe) []ShoppingListEntry {
	entries := make([]ShoppingListEntry, 0)

	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			canonical := CanonicalName(ing.Name)
			if canonical == "" {
				slog.Warn("Skipping ingredient with empty canonical name", "dish", r.DishName, "name", ing.Name)
				continue
			}

			merged := false
			for i := range entries {
				if entries[i].Ingredient.Name != canonical {
					continue
				}
				if c.merge(&entries[i], ing, r.DishName) {
					merged = true
					break
				}
			}

			if !merged {
				entries = append(entries, newEntry(canonical, ing, r.DishName))
			}
		}
	}

	return entries
}

// merge folds an incoming ingredient into an existing entry. Returns false
// when the units cannot be reconciled; the caller then falls back to a new
// unmerged entry instead of propagating the conversion error.
func (c *Consolidator) merge(entry *ShoppingListEntry, ing Ingredient, dishName string) bool {
	entryUnit := strings.ToLower(entry.Ingredient.Unit)
	ingUnit := strings.ToLower(ing.Unit)

	switch {
	case entryUnit == "" && ingUnit == "":
		// Both unitless: mergeable by name alone. Quantity stays absent; a
		// bare item never assumes a default amount.
		entry.Ingredient.Quantity = nil

	case entryUnit == ingUnit:
		if entry.Ingredient.Quantity == nil || ing.Quantity == nil {
			entry.Ingredient.Quantity = nil
		} else {
			sum := *entry.Ingredient.Quantity + *ing.Quantity
			entry.Ingredient.Quantity = &sum
		}

	default:
		from, okFrom := unit.Parse(ingUnit)
		to, okTo := unit.Parse(entryUnit)
		if !okFrom || !okTo || !unit.AreCompatible(from, to) {
			return false
		}
		if entry.Ingredient.Quantity == nil || ing.Quantity == nil {
			entry.Ingredient.Quantity = nil
			break
		}
		converted, err := unit.Convert(*ing.Quantity, from, to)
		if err != nil {
			// Same dimension but no conversion path (count cross-tag).
			return false
		}
		sum := *entry.Ingredient.Quantity + converted
		entry.Ingredient.Quantity = &sum
	}

	if !slices.Contains(entry.ContributingDishes, dishName) {
		entry.ContributingDishes = append(entry.ContributingDishes, dishName)
	}

	return true
}

func newEntry(canonical string, ing Ingredient, dishName string) ShoppingListEntry {
	entry := ShoppingListEntry{
		Ingredient: Ingredient{
			Unit: strings.ToLower(ing.Unit),
			Name: canonical,
		},
		ContributingDishes: []string{dishName},
	}
	if ing.Quantity != nil {
		quantity := *ing.Quantity
		entry.Ingredient.Quantity = &quantity
	}
	return entry
}
