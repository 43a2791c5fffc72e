package recipe

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CanonicalName folds an ingredient name into its merge key: lowercase,
// diacritics stripped, punctuation and parentheticals dropped, whitespace
// collapsed, tokens singularized.
func CanonicalName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = removeParenthetical(s)
	s = stripDiacritics(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(' ')
	}

	fields := strings.Fields(b.String())
	normalized := make([]string, 0, len(fields))
	for _, field := range fields {
		token := singularize(field)
		if token == "" {
			continue
		}
		normalized = append(normalized, token)
	}

	return strings.Join(normalized, " ")
}

// NormalizeKey builds the cache key for a dish name: case-folded with
// whitespace collapsed. Key normalization belongs to the resolver side of the
// cache contract, not the store.
func NormalizeKey(dishName string) string {
	return strings.Join(strings.Fields(strings.ToLower(dishName)), " ")
}

func removeParenthetical(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

func singularize(s string) string {
	switch {
	case strings.HasSuffix(s, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(s, "oes") && len(s) > 3:
		return s[:len(s)-2]
	case strings.HasSuffix(s, "ches") || strings.HasSuffix(s, "shes") ||
		strings.HasSuffix(s, "xes") || strings.HasSuffix(s, "zes") || strings.HasSuffix(s, "ses"):
		if len(s) > 4 {
			return s[:len(s)-2]
		}
		return s
	case strings.HasSuffix(s, "s") && !strings.HasSuffix(s, "ss") && len(s) > 2:
		return s[:len(s)-1]
	}
	return s
}
