package tasks

import (
	"context"

	"github.com/lysyi3m/grocery-comb/app/recipe"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background recipe refreshing.
// This interface provides task queue management and worker pool control.
// Example usage:
//
//	scheduler := NewScheduler(recipeRepo, resolver)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewRefreshRecipeTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// RecipeRefresher re-resolves a dish from the web, bypassing the cached
// entry. Satisfied by resolver.Resolver.
type RecipeRefresher interface {
	Refresh(ctx context.Context, dishName string) (*recipe.Recipe, error)
}
