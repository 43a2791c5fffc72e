package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/grocery-comb/app/resolver"
)

type RefreshRecipeTask struct {
	Task
	resolver RecipeRefresher
}

func NewRefreshRecipeTask(dishName string, refresher RecipeRefresher) *RefreshRecipeTask {
	return &RefreshRecipeTask{
		Task:     NewTask(TaskTypeRefreshRecipe, dishName),
		resolver: refresher,
	}
}

func (t *RefreshRecipeTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	resolved, err := t.resolver.Refresh(ctx, t.DishName)
	if err != nil {
		// A dish that can no longer be resolved keeps its stale entry;
		// retrying will not help until the web changes.
		var unresolved *resolver.UnresolvedError
		if errors.As(err, &unresolved) {
			slog.Warn("Refresh found no ingredients, keeping stale recipe", "dish", t.DishName)
			return nil
		}
		return fmt.Errorf("failed to refresh recipe: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"dish", t.DishName,
		"duration", t.GetDuration(),
		"ingredients", len(resolved.Ingredients),
		"url", resolved.SourceURL)

	return nil
}
