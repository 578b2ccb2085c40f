// internal/domain/search/repository.go
package search

import "context"

type Repository interface {
	Create(ctx context.Context, s *SavedSearch) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]SavedSearch, error)
	// Delete removes the search only when it belongs to userID.
	Delete(ctx context.Context, userID, id int64) (bool, error)
}
