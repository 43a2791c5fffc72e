package recipe

import (
	"math"
	"testing"
	"time"
)

func qty(v float64) *float64 {
	return &v
}

func singleIngredientRecipe(dish string, ing Ingredient) Recipe {
	return Recipe{
		DishName:    dish,
		Ingredients: []Ingredient{ing},
		SourceURL:   "https://example.com/" + dish,
		RetrievedAt: time.Now().UTC(),
	}
}

func TestConsolidateCompatibleUnits(t *testing.T) {
	consolidator := NewConsolidator()

	result := consolidator.Run([]Recipe{
		singleIngredientRecipe("bread", Ingredient{Quantity: qty(500), Unit: "g", Name: "flour"}),
		singleIngredientRecipe("pizza", Ingredient{Quantity: qty(1), Unit: "kg", Name: "flour"}),
	})

	if len(result) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(result))
	}

	entry := result[0]
	if entry.Ingredient.Name != "flour" {
		t.Errorf("Expected name 'flour', got %q", entry.Ingredient.Name)
	}
	if entry.Ingredient.Unit != "g" {
		t.Errorf("Expected first-seen unit 'g', got %q", entry.Ingredient.Unit)
	}
	if entry.Ingredient.Quantity == nil || *entry.Ingredient.Quantity != 1500 {
		t.Errorf("Expected 1500 g, got %v", entry.Ingredient.Quantity)
	}
	if len(entry.ContributingDishes) != 2 {
		t.Errorf("Expected 2 contributing dishes, got %v", entry.ContributingDishes)
	}
}

func TestConsolidateIncompatibleUnits(t *testing.T) {
	consolidator := NewConsolidator()

	result := consolidator.Run([]Recipe{
		singleIngredientRecipe("cake", Ingredient{Quantity: qty(2), Unit: "cup", Name: "sugar"}),
		singleIngredientRecipe("tea", Ingredient{Quantity: qty(1), Unit: "piece", Name: "sugar"}),
	})

	if len(result) != 2 {
		t.Fatalf("Expected 2 distinct entries for incompatible units, got %d", len(result))
	}
	if result[0].Ingredient.Unit != "cup" || result[1].Ingredient.Unit != "piece" {
		t.Errorf("Expected first-seen order cup then piece, got %q then %q",
			result[0].Ingredient.Unit, result[1].Ingredient.Unit)
	}
}

func TestConsolidateCountCrossTagNotMerged(t *testing.T) {
	consolidator := NewConsolidator()

	// Same dimension (count) but no piece-to-clove conversion exists; the
	// conversion failure must yield a new entry, not an error.
	result := consolidator.Run([]Recipe{
		singleIngredientRecipe("a", Ingredient{Quantity: qty(2), Unit: "piece", Name: "garlic"}),
		singleIngredientRecipe("b", Ingredient{Quantity: qty(3), Unit: "clove", Name: "garlic"}),
	})

	if len(result) != 2 {
		t.Fatalf("Expected 2 entries for cross-tag count units, got %d", len(result))
	}
}

func TestConsolidatePluralizedAndCasedNames(t *testing.T) {
	consolidator := NewConsolidator()

	result := consolidator.Run([]Recipe{
		singleIngredientRecipe("salad", Ingredient{Quantity: qty(2), Unit: "piece", Name: "Tomatoes"}),
		singleIngredientRecipe("soup", Ingredient{Quantity: qty(3), Unit: "piece", Name: "tomato"}),
	})

	if len(result) != 1 {
		t.Fatalf("Expected pluralization-normalized merge into 1 entry, got %d", len(result))
	}
	if result[0].Ingredient.Name != "tomato" {
		t.Errorf("Expected canonical name 'tomato', got %q", result[0].Ingredient.Name)
	}
	if result[0].Ingredient.Quantity == nil || *result[0].Ingredient.Quantity != 5 {
		t.Errorf("Expected 5 pieces, got %v", result[0].Ingredient.Quantity)
	}
}

func TestConsolidateUnitlessItems(t *testing.T) {
	consolidator := NewConsolidator()

	result := consolidator.Run([]Recipe{
		singleIngredientRecipe("soup", Ingredient{Name: "salt"}),
		singleIngredientRecipe("stew", Ingredient{Name: "salt"}),
	})

	if len(result) != 1 {
		t.Fatalf("Expected unitless items to merge by name, got %d entries", len(result))
	}
	if result[0].Ingredient.Quantity != nil {
		t.Errorf("Expected absent quantity, got %v", *result[0].Ingredient.Quantity)
	}
	if len(result[0].ContributingDishes) != 2 {
		t.Errorf("Expected 2 contributing dishes, got %v", result[0].ContributingDishes)
	}
}

func TestConsolidateUnitlessDoesNotMergeWithUnited(t *testing.T) {
	consolidator := NewConsolidator()

	result := consolidator.Run([]Recipe{
		singleIngredientRecipe("cake", Ingredient{Quantity: qty(2), Unit: "cup", Name: "sugar"}),
		singleIngredientRecipe("tea", Ingredient{Name: "sugar"}),
	})

	if len(result) != 2 {
		t.Fatalf("Expected unitless sugar to stay separate from 2 cup sugar, got %d entries", len(result))
	}
}

func TestConsolidateOrderIndependentTotals(t *testing.T) {
	recipes := []Recipe{
		singleIngredientRecipe("a", Ingredient{Quantity: qty(500), Unit: "g", Name: "flour"}),
		singleIngredientRecipe("b", Ingredient{Quantity: qty(1), Unit: "kg", Name: "flour"}),
		singleIngredientRecipe("c", Ingredient{Quantity: qty(250), Unit: "g", Name: "flour"}),
	}
	reversed := []Recipe{recipes[2], recipes[1], recipes[0]}

	consolidator := NewConsolidator()

	totalInGrams := func(entries []ShoppingListEntry) float64 {
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}
		entry := entries[0]
		if entry.Ingredient.Quantity == nil {
			t.Fatal("Expected a quantity")
		}
		switch entry.Ingredient.Unit {
		case "g":
			return *entry.Ingredient.Quantity
		case "kg":
			return *entry.Ingredient.Quantity * 1000
		default:
			t.Fatalf("Unexpected unit %q", entry.Ingredient.Unit)
			return 0
		}
	}

	forward := totalInGrams(consolidator.Run(recipes))
	backward := totalInGrams(consolidator.Run(reversed))

	if math.Abs(forward-backward) > 1e-9 {
		t.Errorf("Expected permutation-independent total, got %f vs %f", forward, backward)
	}
	if forward != 1750 {
		t.Errorf("Expected 1750 g total, got %f", forward)
	}
}

func TestConsolidateEndToEndScenario(t *testing.T) {
	consolidator := NewConsolidator()

	result := consolidator.Run([]Recipe{
		{
			DishName: "tomato soup",
			Ingredients: []Ingredient{
				{Quantity: qty(2), Unit: "cup", Name: "tomato"},
				{Quantity: qty(1), Unit: "clove", Name: "garlic"},
			},
		},
		{
			DishName: "garlic bread",
			Ingredients: []Ingredient{
				{Quantity: qty(4), Unit: "clove", Name: "garlic"},
				{Quantity: qty(1), Unit: "loaf", Name: "bread"},
			},
		},
	})

	if len(result) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(result))
	}

	tomato, garlic, bread := result[0], result[1], result[2]

	if tomato.Ingredient.Name != "tomato" || *tomato.Ingredient.Quantity != 2 || tomato.Ingredient.Unit != "cup" {
		t.Errorf("Unexpected tomato entry: %+v", tomato.Ingredient)
	}
	if len(tomato.ContributingDishes) != 1 {
		t.Errorf("Expected tomato from 1 dish, got %v", tomato.ContributingDishes)
	}

	if garlic.Ingredient.Name != "garlic" || *garlic.Ingredient.Quantity != 5 || garlic.Ingredient.Unit != "clove" {
		t.Errorf("Unexpected garlic entry: %+v", garlic.Ingredient)
	}
	if len(garlic.ContributingDishes) != 2 {
		t.Errorf("Expected garlic from 2 dishes, got %v", garlic.ContributingDishes)
	}

	if bread.Ingredient.Name != "bread" || *bread.Ingredient.Quantity != 1 || bread.Ingredient.Unit != "loaf" {
		t.Errorf("Unexpected bread entry: %+v", bread.Ingredient)
	}
}

func TestConsolidateEmptyInput(t *testing.T) {
	consolidator := NewConsolidator()

	if result := consolidator.Run(nil); len(result) != 0 {
		t.Errorf("Expected empty list for no recipes, got %d entries", len(result))
	}
}
