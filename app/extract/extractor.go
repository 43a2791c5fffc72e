package extract

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/lysyi3m/grocery-comb/app/recipe"
)

// Extractor pulls raw ingredient lines out of page markup by trying
// strategies in strictly descending reliability order and stopping at the
// first one that yields at least one line. Higher-confidence structured
// formats are trusted without cross-validation from weaker ones.
type Extractor struct {
	patterns *PatternTable
}

func NewExtractor(patterns *PatternTable) *Extractor {
	if patterns == nil {
		patterns = DefaultPatternTable()
	}
	return &Extractor{patterns: patterns}
}

// Run returns the raw lines produced by the winning strategy, in source
// order. A page with no recognizable structure yields an empty slice, not an
// error.
func (e *Extractor) Run(data []byte) ([]recipe.RawIngredientLine, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	strategies := []struct {
		source recipe.Strategy
		run    func(doc *goquery.Document) []string
	}{
		{recipe.StrategyJSONLD, extractJSONLD},
		{recipe.StrategyMicrodata, extractMicrodata},
		{recipe.StrategyHeading, extractHeading},
		{recipe.StrategyCSS, e.extractCSS},
	}

	for _, strategy := range strategies {
		texts := strategy.run(doc)
		if len(texts) == 0 {
			continue
		}

		slog.Debug("Ingredient lines extracted",
			"strategy", strategy.source,
			"confidence", strategy.source.Confidence(),
			"lines", len(texts))

		lines := make([]recipe.RawIngredientLine, 0, len(texts))
		for _, text := range texts {
			lines = append(lines, recipe.RawIngredientLine{Text: text, Source: strategy.source})
		}
		return lines, nil
	}

	return nil, nil
}
