package catalog

import (
	"context"
	"strings"

	"github.com/01moynul/storefront-golang/internal/latest"
	"github.com/01moynul/storefront-golang/internal/models"
)

// SuggestionLimit caps the number of search suggestions.
const SuggestionLimit = 5

// Searcher is the part of the catalog the Suggester needs.
type Searcher interface {
	Search(ctx context.Context, q string) ([]models.Product, error)
}

// Suggester serves live search suggestions. Each call supersedes the
// previous one: an in-flight lookup for an older term is cancelled and
// returns latest.ErrSuperseded.
type Suggester struct {
	searcher Searcher
	tracker  latest.Tracker
}

func NewSuggester(searcher Searcher) *Suggester {
	return &Suggester{searcher: searcher}
}

// Suggest returns up to five products matching term. A blank term yields
// no suggestions without calling the catalog.
func (s *Suggester) Suggest(ctx context.Context, term string) ([]models.Product, error) {
	return latest.Run(ctx, &s.tracker, func(ctx context.Context, _ uint64) ([]models.Product, error) {
		if strings.TrimSpace(term) == "" {
			return []models.Product{}, nil
		}
		products, err := s.searcher.Search(ctx, term)
		if err != nil {
			return nil, err
		}
		if len(products) > SuggestionLimit {
			products = products[:SuggestionLimit]
		}
		return products, nil
	}, nil)
}
