// internal/domain/favorite/entity.go
package favorite

import (
	"time"

	"carmarket-service/internal/domain/catalog"
)

type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	CarID     int64     `json:"car_id" db:"car_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Entry is a favorite joined with the listing it points at.
type Entry struct {
	AddedAt time.Time           `json:"added_at"`
	Listing catalog.ListingView `json:"listing"`
}

// Request is the body (or query) of the favorites endpoints.
type Request struct {
	CarID int64 `json:"carId" form:"carId" binding:"required"`
}
