// internal/domain/catalog/repository.go
package catalog

import "context"

// Repository reads the denormalized catalog and writes listing rows.
// Read methods only ever return active listings unless stated otherwise.
type Repository interface {
	ListAll(ctx context.Context) ([]ListingView, error)
	ListFiltered(ctx context.Context, f Filter) ([]ListingView, error)
	GetByID(ctx context.Context, id int64) (*ListingView, error)

	// GetAnyByID ignores the active flag (owner and admin views).
	GetAnyByID(ctx context.Context, id int64) (*ListingView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]ListingView, error)

	Create(ctx context.Context, l *Listing) (int64, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
	SetActiveForOwner(ctx context.Context, ownerID int64, active bool) (int64, error)
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
