package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/grocery-comb/app/recipe"
)

type RecipeRepository struct {
	db *DB
}

var _ RecipeStore = (*RecipeRepository)(nil)

func NewRecipeRepository(db *DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Get returns the stored recipe for a normalized dish key, or nil when the
// dish has not been resolved yet.
func (r *RecipeRepository) Get(ctx context.Context, key string) (*recipe.Recipe, error) {
	query := `
		SELECT dish_name, ingredients, source_url, retrieved_at
		FROM recipes
		WHERE dish_name = ?`

	row := r.db.QueryRowContext(ctx, query, key)

	var rec recipe.Recipe
	var ingredients string
	var retrievedAt string

	err := row.Scan(&rec.DishName, &ingredients, &rec.SourceURL, &retrievedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(ingredients), &rec.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredients for %s: %w", key, err)
	}

	rec.RetrievedAt, err = time.Parse(time.RFC3339, retrievedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse retrieved_at for %s: %w", key, err)
	}

	return &rec, nil
}

// Put stores a resolved recipe under the normalized dish key, replacing any
// previous resolution for the same dish.
func (r *RecipeRepository) Put(ctx context.Context, key string, rec *recipe.Recipe) error {
	ingredients, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients for %s: %w", key, err)
	}

	query := `
		INSERT INTO recipes (dish_name, ingredients, source_url, retrieved_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (dish_name) DO UPDATE SET
			ingredients = excluded.ingredients,
			source_url = excluded.source_url,
			retrieved_at = excluded.retrieved_at`

	_, err = r.db.ExecContext(ctx, query, key, string(ingredients), rec.SourceURL, rec.RetrievedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to put recipe %s: %w", key, err)
	}

	return nil
}

// GetStaleDishes returns dish keys whose resolution is older than the cutoff,
// oldest first, for the refresh scheduler.
func (r *RecipeRepository) GetStaleDishes(ctx context.Context, olderThan time.Time, limit int) ([]string, error) {
	query := `
		SELECT dish_name
		FROM recipes
		WHERE retrieved_at < ?
		ORDER BY retrieved_at ASC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, olderThan.UTC().Format(time.RFC3339), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale dishes: %w", err)
	}
	defer rows.Close()

	var dishes []string
	for rows.Next() {
		var dish string
		if err := rows.Scan(&dish); err != nil {
			return nil, fmt.Errorf("failed to scan dish name: %w", err)
		}
		dishes = append(dishes, dish)
	}

	return dishes, rows.Err()
}

func (r *RecipeRepository) GetRecipeCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	return count, nil
}
