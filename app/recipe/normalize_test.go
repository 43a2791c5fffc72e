package recipe

import (
	"testing"
)

func TestCanonicalName(t *testing.T) {
	cases := map[string]string{
		"Tomatoes":                "tomato",
		"  Fresh   Basil ":        "fresh basil",
		"eggs":                    "egg",
		"berries":                 "berry",
		"peaches":                 "peach",
		"jalapeño peppers":        "jalapeno pepper",
		"flour (all-purpose)":     "flour",
		"crème fraîche":           "creme fraiche",
		"garlic, minced":          "garlic minced",
		"swiss cheese":            "swiss cheese", // -ss is not a plural
		"Onion":                   "onion",
		"chicken breasts (2 lbs)": "chicken breast",
	}

	for input, expected := range cases {
		if got := CanonicalName(input); got != expected {
			t.Errorf("CanonicalName(%q): expected %q, got %q", input, expected, got)
		}
	}
}

func TestCanonicalNameEmpty(t *testing.T) {
	if got := CanonicalName("   "); got != "" {
		t.Errorf("Expected empty canonical name for whitespace input, got %q", got)
	}
	if got := CanonicalName("(optional)"); got != "" {
		t.Errorf("Expected empty canonical name for pure parenthetical, got %q", got)
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Tomato Soup":      "tomato soup",
		"  garlic   BREAD": "garlic bread",
		"pizza":            "pizza",
	}

	for input, expected := range cases {
		if got := NormalizeKey(input); got != expected {
			t.Errorf("NormalizeKey(%q): expected %q, got %q", input, expected, got)
		}
	}
}

func TestIngredientValidate(t *testing.T) {
	quantity := 2.0

	valid := []Ingredient{
		{Quantity: &quantity, Unit: "cup", Name: "sugar"},
		{Name: "salt"}, // "to taste" item: no quantity, no unit
	}
	for _, ing := range valid {
		if err := ing.Validate(); err != nil {
			t.Errorf("Expected %+v to be valid, got: %v", ing, err)
		}
	}

	invalid := []Ingredient{
		{},
		{Quantity: &quantity, Unit: "cup"},         // empty name
		{Quantity: &quantity, Name: "sugar"},       // quantity without unit
		{Unit: "cup", Name: "sugar"},               // unit without quantity
	}
	for _, ing := range invalid {
		if err := ing.Validate(); err == nil {
			t.Errorf("Expected %+v to be invalid", ing)
		}
	}
}

func TestStrategyConfidenceOrdering(t *testing.T) {
	ordered := []Strategy{StrategyCSS, StrategyHeading, StrategyMicrodata, StrategyJSONLD}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Confidence() <= ordered[i-1].Confidence() {
			t.Errorf("Expected %s to rank above %s", ordered[i], ordered[i-1])
		}
	}
}
