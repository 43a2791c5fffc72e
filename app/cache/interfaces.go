package cache

import (
	"context"

	"github.com/lysyi3m/grocery-comb/app/recipe"
)

// RecipeCache is the key/value store contract for resolved recipes. Keys are
// normalized dish names; normalization is the caller's responsibility, not
// the store's. Get reports a miss as (nil, nil). Put is idempotent: a
// duplicate write for the same key is a benign no-op, never an error.
type RecipeCache interface {
	Get(ctx context.Context, key string) (*recipe.Recipe, error)
	Put(ctx context.Context, key string, r *recipe.Recipe) error
}
