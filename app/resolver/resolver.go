package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lysyi3m/grocery-comb/app/cache"
	"github.com/lysyi3m/grocery-comb/app/recipe"
)

// ErrNoIngredientsFound marks a candidate page that yielded no usable
// ingredients; the resolver advances to the next candidate.
var ErrNoIngredientsFound = errors.New("no ingredients found on page")

// UnresolvedError is returned when every candidate page for a dish failed.
type UnresolvedError struct {
	Dish string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("could not find ingredients for dish %s", e.Dish)
}

type Searcher interface {
	Run(ctx context.Context, dishName string) ([]string, error)
}

type IngredientExtractor interface {
	Run(data []byte) ([]recipe.RawIngredientLine, error)
}

type IngredientNormalizer interface {
	Run(ctx context.Context, lines []recipe.RawIngredientLine) ([]recipe.Ingredient, error)
}

// Resolver turns a dish name into a structured recipe: cache lookup, web
// search, then candidate pages tried in order until one yields ingredients.
type Resolver struct {
	searcher   Searcher
	extractor  IngredientExtractor
	normalizer IngredientNormalizer
	cache      cache.RecipeCache
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewResolver(searcher Searcher, extractor IngredientExtractor, normalizer IngredientNormalizer, recipeCache cache.RecipeCache, httpClient *http.Client, userAgent string, timeout time.Duration) *Resolver {
	return &Resolver{
		searcher:   searcher,
		extractor:  extractor,
		normalizer: normalizer,
		cache:      recipeCache,
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Resolve returns the recipe for a dish, serving from cache when present.
func (r *Resolver) Resolve(ctx context.Context, dishName string) (*recipe.Recipe, error) {
	key := recipe.NormalizeKey(dishName)

	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache for %s: %w", key, err)
	}
	if cached != nil {
		slog.Debug("Cache hit", "dish", key)
		return cached, nil
	}

	return r.resolve(ctx, key)
}

// Refresh re-resolves a dish from the web, bypassing the cache read. The
// fresh result still overwrites the cached entry.
func (r *Resolver) Refresh(ctx context.Context, dishName string) (*recipe.Recipe, error) {
	return r.resolve(ctx, recipe.NormalizeKey(dishName))
}

func (r *Resolver) resolve(ctx context.Context, key string) (*recipe.Recipe, error) {
	candidates, err := r.searcher.Run(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %s: %w", key, err)
	}

	for _, url := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ingredients, err := r.resolveFromPage(ctx, url)
		if err != nil {
			slog.Debug("Candidate page rejected", "dish", key, "url", url, "error", err)
			continue
		}

		resolved := &recipe.Recipe{
			DishName:    key,
			Ingredients: ingredients,
			SourceURL:   url,
			RetrievedAt: time.Now().UTC(),
		}

		if err := r.cache.Put(ctx, key, resolved); err != nil {
			slog.Error("Failed to cache recipe", "dish", key, "error", err)
		}

		slog.Info("Recipe resolved", "dish", key, "url", url, "ingredients", len(ingredients))

		return resolved, nil
	}

	return nil, &UnresolvedError{Dish: key}
}

func (r *Resolver) resolveFromPage(ctx context.Context, url string) ([]recipe.Ingredient, error) {
	data, err := r.fetchPage(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	lines, err := r.extractor.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ingredient lines: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrNoIngredientsFound
	}

	ingredients, err := r.normalizer.Run(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize ingredient lines: %w", err)
	}
	if len(ingredients) == 0 {
		return nil, ErrNoIngredientsFound
	}

	return ingredients, nil
}

func (r *Resolver) fetchPage(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
