package database

import (
	"context"
	"time"

	"github.com/lysyi3m/grocery-comb/app/recipe"
)

// RecipeStore is the persistent recipe cache contract used by the API and
// the refresh scheduler. The Get/Put subset matches cache.RecipeCache.
type RecipeStore interface {
	Get(ctx context.Context, key string) (*recipe.Recipe, error)
	Put(ctx context.Context, key string, r *recipe.Recipe) error

	GetStaleDishes(ctx context.Context, olderThan time.Time, limit int) ([]string, error)
	GetRecipeCount(ctx context.Context) (int, error)
}
