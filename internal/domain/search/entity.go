// internal/domain/search/entity.go
package search

import (
	"time"

	"carmarket-service/internal/domain/catalog"
)

type SavedSearch struct {
	ID          int64          `json:"id" db:"id"`
	UserID      int64          `json:"user_id" db:"user_id"`
	Name        string         `json:"name" db:"name"`
	Filters     catalog.Filter `json:"filters" db:"filters"`
	QueryString string         `json:"query_string" db:"query_string"`
	NotifyOnNew bool           `json:"notify_on_new" db:"notify_on_new"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// CreateRequest is the body of POST /user/saved-searches.
type CreateRequest struct {
	Name        string          `json:"name"`
	Filters     *catalog.Filter `json:"filters"`
	NotifyOnNew bool            `json:"notifyOnNew"`
}
