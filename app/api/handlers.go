package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/grocery-comb/app/recipe"
	"github.com/lysyi3m/grocery-comb/app/resolver"
	"github.com/lysyi3m/grocery-comb/app/tasks"
)

func NewHandler(recipeResolver RecipeResolverInterface, prices PriceLookupInterface,
	stats StatsInterface, refresher tasks.RecipeRefresher,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		resolver:     recipeResolver,
		consolidator: recipe.NewConsolidator(),
		prices:       prices,
		stats:        stats,
		refresher:    refresher,
		scheduler:    scheduler,
	}
}

// CreateShoppingList resolves every requested dish concurrently and returns
// the consolidated list plus a per-dish resolution report. A dish that cannot
// be resolved does not fail the request; it is marked in the report.
func (h *Handler) CreateShoppingList(c *gin.Context) {
	var req ShoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	dishes := make([]string, 0, len(req.Dishes))
	for _, dish := range req.Dishes {
		if strings.TrimSpace(dish) != "" {
			dishes = append(dishes, dish)
		}
	}
	if len(dishes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No dish names provided"})
		return
	}

	recipes := make([]*recipe.Recipe, len(dishes))
	resolveErrs := make([]error, len(dishes))

	var wg sync.WaitGroup
	for i, dish := range dishes {
		wg.Add(1)
		go func(i int, dish string) {
			defer wg.Done()
			recipes[i], resolveErrs[i] = h.resolver.Resolve(c.Request.Context(), dish)
		}(i, dish)
	}
	wg.Wait()

	resolutions := make([]DishResolution, len(dishes))
	resolved := make([]recipe.Recipe, 0, len(dishes))

	for i, dish := range dishes {
		resolution := DishResolution{Dish: dish}

		if resolveErrs[i] != nil {
			slog.Warn("Dish resolution failed", "dish", dish, "error", resolveErrs[i])
			resolution.Error = resolutionError(resolveErrs[i])
		} else {
			resolution.Resolved = true
			resolution.SourceURL = recipes[i].SourceURL
			resolved = append(resolved, *recipes[i])
		}

		resolutions[i] = resolution
	}

	entries := h.consolidator.Run(resolved)

	items := make([]ShoppingListItem, 0, len(entries))
	for _, entry := range entries {
		item := ShoppingListItem{
			Name:               entry.Ingredient.Name,
			Quantity:           entry.Ingredient.Quantity,
			Unit:               entry.Ingredient.Unit,
			ContributingDishes: entry.ContributingDishes,
		}

		if h.prices != nil && req.Store != "" {
			quote, err := h.prices.Run(c.Request.Context(), item.Name, req.Store)
			if err != nil {
				slog.Warn("Price lookup failed", "item", item.Name, "store", req.Store, "error", err)
			} else {
				item.Price = quote
			}
		}

		items = append(items, item)
	}

	c.JSON(http.StatusOK, ShoppingListResponse{Items: items, Dishes: resolutions})
}

func (h *Handler) GetRecipe(c *gin.Context) {
	dish := c.Param("dish")
	if dish == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing dish name parameter"})
		return
	}

	resolved, err := h.resolver.Resolve(c.Request.Context(), dish)
	if err != nil {
		var unresolved *resolver.UnresolvedError
		if errors.As(err, &unresolved) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Recipe resolution error", "dish", dish, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve recipe"})
		return
	}

	c.JSON(http.StatusOK, resolved)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if h.stats != nil {
		if count, err := h.stats.GetRecipeCount(c.Request.Context()); err == nil {
			health["cached_recipes"] = count
		}
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if h.stats != nil {
		count, err := h.stats.GetRecipeCount(c.Request.Context())
		if err != nil {
			slog.Error("Database error", "operation", "get_recipe_count", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		stats["cached_recipes"] = count
	}

	c.JSON(http.StatusOK, stats)
}

// APIRefreshRecipe enqueues a background re-resolution of a cached recipe.
func (h *Handler) APIRefreshRecipe(c *gin.Context) {
	dish := c.Param("dish")
	if dish == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing dish name parameter"})
		return
	}

	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Background refreshing is not enabled"})
		return
	}

	task := tasks.NewRefreshRecipeTask(dish, h.refresher)
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing refresh task", "dish", dish, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue refresh task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"message": "Refresh task enqueued successfully",
		"task": gin.H{
			"id":   task.ID,
			"type": task.Type,
		},
	})
}

func resolutionError(err error) string {
	var unresolved *resolver.UnresolvedError
	if errors.As(err, &unresolved) {
		return err.Error()
	}
	return "resolution failed"
}
