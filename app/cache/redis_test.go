package cache

import (
	"testing"
)

func TestRecipeKey(t *testing.T) {
	// Key generation does not require a Redis connection
	key := recipeKey("tomato soup")

	expectedKey := "recipe:tomato soup"
	if key != expectedKey {
		t.Errorf("Expected key %s, got %s", expectedKey, key)
	}

	// Same input should generate same key
	if recipeKey("tomato soup") != key {
		t.Error("Expected consistent key generation")
	}

	// Different inputs should generate different keys
	if recipeKey("pancakes") == key {
		t.Errorf("Expected different keys for different dishes, got %s", key)
	}
}
