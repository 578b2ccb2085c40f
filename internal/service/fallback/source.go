// internal/service/fallback/source.go
package fallback

import (
	"context"
	"sort"

	"carmarket-service/internal/domain/catalog"
	xerrors "carmarket-service/internal/pkg/errors"
)

// Source serves catalog reads from a fixed in-memory dataset. It never
// mutates the dataset and never fails for connectivity reasons.
type Source struct {
	listings []catalog.ListingView
}

// NewSource loads the built-in dataset.
func NewSource() *Source {
	return NewSourceFrom(dataset)
}

// NewSourceFrom builds a source over a copy of listings.
func NewSourceFrom(listings []catalog.ListingView) *Source {
	own := make([]catalog.ListingView, len(listings))
	copy(own, listings)
	sort.Slice(own, func(i, j int) bool { return own[i].ID > own[j].ID })
	return &Source{listings: own}
}

func (s *Source) ListAll(ctx context.Context) ([]catalog.ListingView, error) {
	return s.collect(func(catalog.ListingView) bool { return true }), nil
}

// ListFiltered honours brand, price range and year range only. Any other
// criterion is ignored.
func (s *Source) ListFiltered(ctx context.Context, f catalog.Filter) ([]catalog.ListingView, error) {
	return s.collect(func(l catalog.ListingView) bool {
		if f.Brand != nil && l.BrandID != *f.Brand {
			return false
		}
		if f.PriceFrom != nil && l.Price < *f.PriceFrom {
			return false
		}
		if f.PriceTo != nil && l.Price > *f.PriceTo {
			return false
		}
		if f.YearFrom != nil && int64(l.ProdYear) < *f.YearFrom {
			return false
		}
		if f.YearTo != nil && int64(l.ProdYear) > *f.YearTo {
			return false
		}
		return true
	}), nil
}

func (s *Source) GetByID(ctx context.Context, id int64) (*catalog.ListingView, error) {
	for _, l := range s.listings {
		if l.ID == id && l.Active {
			out := l
			return &out, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (s *Source) collect(keep func(catalog.ListingView) bool) []catalog.ListingView {
	out := make([]catalog.ListingView, 0, len(s.listings))
	for _, l := range s.listings {
		if l.Active && keep(l) {
			out = append(out, l)
		}
	}
	return out
}
