// internal/repository/sqldb/saved_search_repo.go
package sqldb

import (
	"context"
	"encoding/json"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/search"
)

type SavedSearchRepository struct {
	db db.Executor
}

func NewSavedSearchRepository(exec db.Executor) *SavedSearchRepository {
	return &SavedSearchRepository{db: exec}
}

// Create stores the filters as JSON text next to the rebuilt query string.
func (r *SavedSearchRepository) Create(ctx context.Context, s *search.SavedSearch) (int64, error) {
	filtersJSON, err := json.Marshal(s.Filters)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal filters: %w", err)
	}

	query := `
		INSERT INTO saved_searches (user_id, name, filters, query_string, notify_on_new)
		VALUES (?, ?, ?, ?, ?)`

	id, err := r.db.Insert(ctx, query, "id", s.UserID, s.Name, string(filtersJSON), s.QueryString, s.NotifyOnNew)
	if err != nil {
		return 0, fmt.Errorf("failed to create saved search: %w", err)
	}
	s.ID = id

	var created db.Time
	if err := r.db.QueryRow(ctx, `SELECT created_at FROM saved_searches WHERE id = ?`, id).Scan(&created); err != nil {
		return 0, fmt.Errorf("failed to read saved search: %w", err)
	}
	s.CreatedAt = created.Time
	return id, nil
}

// ListByUser returns the user's searches, newest first.
func (r *SavedSearchRepository) ListByUser(ctx context.Context, userID int64) ([]search.SavedSearch, error) {
	query := `
		SELECT id, user_id, name, filters, query_string, notify_on_new, created_at
		FROM saved_searches
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}
	defer rows.Close()

	out := make([]search.SavedSearch, 0)
	for rows.Next() {
		var s search.SavedSearch
		var filtersJSON string
		var created db.Time

		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &filtersJSON, &s.QueryString, &s.NotifyOnNew, &created); err != nil {
			return nil, fmt.Errorf("failed to scan saved search: %w", err)
		}
		if filtersJSON != "" {
			if err := json.Unmarshal([]byte(filtersJSON), &s.Filters); err != nil {
				return nil, fmt.Errorf("failed to unmarshal filters of search %d: %w", s.ID, err)
			}
		}
		s.CreatedAt = created.Time
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved searches: %w", err)
	}
	return out, nil
}

func (r *SavedSearchRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	n, err := r.db.Exec(ctx, `DELETE FROM saved_searches WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete saved search %d: %w", id, err)
	}
	return n > 0, nil
}
