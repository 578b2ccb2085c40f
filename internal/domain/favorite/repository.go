// internal/domain/favorite/repository.go
package favorite

import "context"

type Repository interface {
	// Add returns a duplicate error when the pair already exists.
	Add(ctx context.Context, userID, carID int64) (*Favorite, error)
	Remove(ctx context.Context, userID, carID int64) (bool, error)
	// List returns the user's favorites, newest first.
	List(ctx context.Context, userID int64) ([]Entry, error)
}
