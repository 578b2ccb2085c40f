// internal/repository/sqldb/favorite_repo.go
package sqldb

import (
	"context"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/favorite"
)

type FavoriteRepository struct {
	db db.Executor
}

func NewFavoriteRepository(exec db.Executor) *FavoriteRepository {
	return &FavoriteRepository{db: exec}
}

// Add relies on UNIQUE(user_id, car_id); a repeat yields xerrors.ErrConflict.
func (r *FavoriteRepository) Add(ctx context.Context, userID, carID int64) (*favorite.Favorite, error) {
	id, err := r.db.Insert(ctx, `INSERT INTO favorites (user_id, car_id) VALUES (?, ?)`, "id", userID, carID)
	if err != nil {
		return nil, conflict(err, "favorite")
	}

	fav := &favorite.Favorite{ID: id, UserID: userID, CarID: carID}
	var created db.Time
	if err := r.db.QueryRow(ctx, `SELECT created_at FROM favorites WHERE id = ?`, id).Scan(&created); err != nil {
		return nil, fmt.Errorf("failed to read favorite: %w", err)
	}
	fav.CreatedAt = created.Time
	return fav, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, carID int64) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id = ? AND car_id = ?`, userID, carID)
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return n > 0, nil
}

// List joins the favorites with their active listings, newest favorite first.
func (r *FavoriteRepository) List(ctx context.Context, userID int64) ([]favorite.Entry, error) {
	query := `SELECT f.created_at, v.* FROM favorites f JOIN (` + listingViewSelect + ` WHERE ` + activeOnly + `) v
		ON v.idads = f.car_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	entries := make([]favorite.Entry, 0)
	for rows.Next() {
		var added db.Time
		v, err := scanListingView(rows, &added)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		entries = append(entries, favorite.Entry{AddedAt: added.Time, Listing: v})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return entries, nil
}
