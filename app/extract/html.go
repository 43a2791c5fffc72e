package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Language-tolerant keyword set for "ingredients" headings.
var ingredientHeadingPattern = regexp.MustCompile(
	`(?i)\b(ingredients?|ingr[ée]dients?|ingredientes?|ingredienti|zutaten|malzemeler)\b`)

// extractMicrodata collects the text of schema.org microdata elements marking
// recipe ingredients, scoped to the first Recipe itemtype on the page.
func extractMicrodata(doc *goquery.Document) []string {
	scope := doc.Find(`[itemtype*="schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return nil
	}

	var lines []string
	scope.Find(`[itemprop="recipeIngredient"]`).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return lines
}

// extractHeading finds a heading matching the ingredients keyword set and
// collects the items of the first list that follows it as a sibling, stopping
// at the next heading of equal or higher level. A single-item list is
// rejected as noise.
func extractHeading(doc *goquery.Document) []string {
	var lines []string

	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !ingredientHeadingPattern.MatchString(heading.Text()) {
			return true
		}

		level := headingLevel(goquery.NodeName(heading))

		for sibling := heading.Next(); sibling.Length() > 0; sibling = sibling.Next() {
			name := goquery.NodeName(sibling)

			if name == "ul" || name == "ol" {
				items := listItems(sibling)
				if len(items) > 1 {
					lines = items
				}
				break
			}

			if siblingLevel := headingLevel(name); siblingLevel > 0 && siblingLevel <= level {
				break
			}
		}

		return len(lines) == 0
	})

	return lines
}

// extractCSS scans the versioned pattern table: container selectors first,
// then direct item selectors, deduplicating adjacent lines that differ only
// in whitespace.
func (e *Extractor) extractCSS(doc *goquery.Document) []string {
	for _, selector := range e.patterns.ListSelectors {
		var lines []string
		doc.Find(selector).EachWithBreak(func(_ int, section *goquery.Selection) bool {
			items := listItems(section)
			if len(items) > 1 {
				lines = items
				return false
			}
			return true
		})
		if len(lines) > 0 {
			return lines
		}
	}

	for _, selector := range e.patterns.ItemSelectors {
		var lines []string
		last := ""
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			collapsed := strings.Join(strings.Fields(text), " ")
			if collapsed == "" || collapsed == last {
				return
			}
			lines = append(lines, text)
			last = collapsed
		})
		if len(lines) > 1 {
			return lines
		}
	}

	return nil
}

func listItems(s *goquery.Selection) []string {
	var items []string
	s.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

func headingLevel(nodeName string) int {
	if len(nodeName) == 2 && nodeName[0] == 'h' && nodeName[1] >= '1' && nodeName[1] <= '6' {
		return int(nodeName[1] - '0')
	}
	return 0
}
