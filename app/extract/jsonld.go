package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractJSONLD locates embedded structured-data blocks declaring a Recipe
// type and returns its ingredient list verbatim. Handles top-level arrays,
// @graph nesting, and @type given as an array; unparsable blocks are skipped.
func extractJSONLD(doc *goquery.Document) []string {
	var lines []string

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &data); err != nil {
			return true
		}

		lines = findRecipeIngredients(data)
		return len(lines) == 0
	})

	return lines
}

func findRecipeIngredients(node interface{}) []string {
	switch v := node.(type) {
	case []interface{}:
		for _, item := range v {
			if lines := findRecipeIngredients(item); len(lines) > 0 {
				return lines
			}
		}

	case map[string]interface{}:
		if isRecipeType(v["@type"]) {
			if lines := ingredientStrings(v["recipeIngredient"]); len(lines) > 0 {
				return lines
			}
		}
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if lines := findRecipeIngredients(item); len(lines) > 0 {
					return lines
				}
			}
		}
	}

	return nil
}

func isRecipeType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func ingredientStrings(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		lines = append(lines, s)
	}
	return lines
}
