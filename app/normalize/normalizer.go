package normalize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/lysyi3m/grocery-comb/app/recipe"
)

// ErrNormalizationUnavailable is returned when every configured extraction
// service endpoint failed; the resolver then advances to the next candidate.
var ErrNormalizationUnavailable = errors.New("structured extraction service unavailable")

type extractRequest struct {
	Lines []string `json:"lines"`
}

// extractedRecord is the untyped boundary with the extraction service. A nil
// entry means the service could not parse the corresponding line.
type extractedRecord struct {
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`
	Name     string   `json:"name"`
}

type extractResponse struct {
	Results []*extractedRecord `json:"results"`
}

// Normalizer converts raw ingredient lines into structured records through an
// external extraction service. Endpoints are tried in order on failure; the
// first is the primary, the rest are designated fallbacks.
type Normalizer struct {
	client    *resty.Client
	endpoints []string
}

func NewNormalizer(endpoints []string, timeout time.Duration) *Normalizer {
	return &Normalizer{
		client:    resty.New().SetTimeout(timeout),
		endpoints: endpoints,
	}
}

// Run normalizes a batch of raw lines. Lines producing invalid or empty
// records are dropped as soft failures; a partial result is still a success.
// Results align with input order.
func (n *Normalizer) Run(ctx context.Context, lines []recipe.RawIngredientLine) ([]recipe.Ingredient, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, line.Text)
	}

	var lastErr error
	for _, endpoint := range n.endpoints {
		response := &extractResponse{}
		res, err := n.client.R().
			SetContext(ctx).
			SetBody(extractRequest{Lines: texts}).
			SetResult(response).
			Post(endpoint)

		if err != nil {
			slog.Warn("Extraction service request failed", "endpoint", endpoint, "error", err)
			lastErr = err
			continue
		}
		if res.IsError() {
			slog.Warn("Extraction service returned error status", "endpoint", endpoint, "status", res.Status())
			lastErr = fmt.Errorf("extraction service status %s", res.Status())
			continue
		}

		return n.validate(lines, response.Results), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrNormalizationUnavailable, lastErr)
}

// validate enforces the ingredient invariant at the service boundary: the
// response is untyped and never trusted past this point.
func (n *Normalizer) validate(lines []recipe.RawIngredientLine, results []*extractedRecord) []recipe.Ingredient {
	ingredients := make([]recipe.Ingredient, 0, len(results))

	for i, record := range results {
		if i >= len(lines) {
			slog.Warn("Extraction service returned more records than lines", "extra", len(results)-len(lines))
			break
		}

		if record == nil {
			slog.Warn("Line produced no record", "line", lines[i].Text, "strategy", lines[i].Source)
			continue
		}

		ingredient := recipe.Ingredient{
			Quantity: record.Quantity,
			Unit:     strings.ToLower(strings.TrimSpace(record.Unit)),
			Name:     recipe.CanonicalName(record.Name),
		}

		if err := ingredient.Validate(); err != nil {
			slog.Warn("Dropping invalid record", "line", lines[i].Text, "error", err)
			continue
		}

		ingredients = append(ingredients, ingredient)
	}

	return ingredients
}
