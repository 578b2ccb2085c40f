package favorite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/catalog"
	"carmarket-service/internal/domain/favorite"
	xerrors "carmarket-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memFavorites struct {
	rows []favorite.Favorite
	down bool
}

func (m *memFavorites) Add(ctx context.Context, userID, carID int64) (*favorite.Favorite, error) {
	if m.down {
		return nil, fmt.Errorf("insert: %w", db.ErrConnection)
	}
	for _, r := range m.rows {
		if r.UserID == userID && r.CarID == carID {
			return nil, xerrors.ErrConflict
		}
	}
	f := favorite.Favorite{ID: int64(len(m.rows) + 1), UserID: userID, CarID: carID, CreatedAt: time.Now()}
	m.rows = append(m.rows, f)
	return &f, nil
}

func (m *memFavorites) Remove(ctx context.Context, userID, carID int64) (bool, error) {
	for i, r := range m.rows {
		if r.UserID == userID && r.CarID == carID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memFavorites) List(ctx context.Context, userID int64) ([]favorite.Entry, error) {
	out := []favorite.Entry{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, favorite.Entry{AddedAt: m.rows[i].CreatedAt, Listing: catalog.ListingView{ID: m.rows[i].CarID}})
		}
	}
	return out, nil
}

type listings map[int64]bool

func (l listings) GetByID(ctx context.Context, id int64) (*catalog.ListingView, error) {
	if !l[id] {
		return nil, xerrors.ErrNotFound
	}
	return &catalog.ListingView{ID: id, Active: true}, nil
}

func TestAddIsUnique(t *testing.T) {
	repo := &memFavorites{}
	svc := NewService(repo, listings{115220001: true}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 115220001)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 7, 115220001)
	assert.ErrorIs(t, err, xerrors.ErrConflict)
	assert.Len(t, repo.rows, 1)

	_, err = svc.Add(ctx, 7, 1)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestRemoveAndList(t *testing.T) {
	repo := &memFavorites{}
	svc := NewService(repo, listings{1: true, 2: true}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Add(ctx, 7, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 7, 2)
	require.NoError(t, err)

	entries, err := svc.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].Listing.ID)

	require.NoError(t, svc.Remove(ctx, 7, 1))
	assert.ErrorIs(t, svc.Remove(ctx, 7, 1), xerrors.ErrNotFound)
}

func TestAddUnavailable(t *testing.T) {
	svc := NewService(&memFavorites{down: true}, listings{1: true}, zap.NewNop())
	_, err := svc.Add(context.Background(), 7, 1)
	assert.ErrorIs(t, err, xerrors.ErrUnavailable)
}
