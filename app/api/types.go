package api

import (
	"context"

	"github.com/lysyi3m/grocery-comb/app/price"
	"github.com/lysyi3m/grocery-comb/app/recipe"
	"github.com/lysyi3m/grocery-comb/app/resolver"
	"github.com/lysyi3m/grocery-comb/app/tasks"
)

type RecipeResolverInterface interface {
	Resolve(ctx context.Context, dishName string) (*recipe.Recipe, error)
}

var _ RecipeResolverInterface = (*resolver.Resolver)(nil)

type PriceLookupInterface interface {
	Run(ctx context.Context, itemName string, store string) (*price.Quote, error)
}

var _ PriceLookupInterface = (*price.Client)(nil)

// StatsInterface exposes cache counters for health and stats endpoints.
// Nil when the Redis backend is active; counters are then omitted.
type StatsInterface interface {
	GetRecipeCount(ctx context.Context) (int, error)
}

type Handler struct {
	resolver     RecipeResolverInterface
	consolidator *recipe.Consolidator
	prices       PriceLookupInterface
	stats        StatsInterface
	refresher    tasks.RecipeRefresher
	scheduler    tasks.TaskSchedulerInterface
}

type ShoppingListRequest struct {
	Dishes []string `json:"dishes" binding:"required"`
	Store  string   `json:"store"`
}

// ShoppingListItem is one consolidated line of the response. Price is only
// present when the request named a store and the lookup succeeded.
type ShoppingListItem struct {
	Name               string       `json:"name"`
	Quantity           *float64     `json:"quantity,omitempty"`
	Unit               string       `json:"unit,omitempty"`
	ContributingDishes []string     `json:"contributing_dishes"`
	Price              *price.Quote `json:"price,omitempty"`
}

// DishResolution reports the outcome per requested dish, in request order.
// Failed dishes are reported here, never silently dropped from the list.
type DishResolution struct {
	Dish      string `json:"dish"`
	Resolved  bool   `json:"resolved"`
	SourceURL string `json:"source_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

type ShoppingListResponse struct {
	Items  []ShoppingListItem `json:"items"`
	Dishes []DishResolution   `json:"dishes"`
}
