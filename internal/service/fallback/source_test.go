package fallback

import (
	"context"
	"testing"

	"carmarket-service/internal/domain/catalog"
	xerrors "carmarket-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int64) *int64 { return &v }

func TestListAllActiveAndOrdered(t *testing.T) {
	all, err := NewSource().ListAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, all)

	for i, l := range all {
		assert.True(t, l.Active, "listing %d", l.ID)
		if i > 0 {
			assert.Less(t, l.ID, all[i-1].ID)
		}
	}
	assert.Len(t, all, len(dataset)-1)
}

func TestListFilteredReducedPredicates(t *testing.T) {
	src := NewSource()
	ctx := context.Background()

	audi, err := src.ListFiltered(ctx, catalog.Filter{Brand: ptr(5)})
	require.NoError(t, err)
	assert.Len(t, audi, 2, "inactive A4 stays hidden")

	ranged, err := src.ListFiltered(ctx, catalog.Filter{PriceFrom: ptr(20000), PriceTo: ptr(28000), YearFrom: ptr(2017)})
	require.NoError(t, err)
	got := make([]int64, 0)
	for _, l := range ranged {
		got = append(got, l.ID)
	}
	assert.Equal(t, []int64{114406262, 114390118}, got)

	// unsupported criteria are ignored
	withBody, err := src.ListFiltered(ctx, catalog.Filter{Brand: ptr(5), BodyType: ptr(99), GearBox: ptr(99)})
	require.NoError(t, err)
	assert.Equal(t, audi, withBody)
}

func TestGetByID(t *testing.T) {
	src := NewSource()
	ctx := context.Background()

	l, err := src.GetByID(ctx, 114406262)
	require.NoError(t, err)
	assert.Equal(t, "Toyota", l.Brand)

	_, err = src.GetByID(ctx, 113952047)
	assert.ErrorIs(t, err, xerrors.ErrNotFound, "inactive")

	_, err = src.GetByID(ctx, 1)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestDatasetNeverMutated(t *testing.T) {
	src := NewSource()
	ctx := context.Background()

	first, err := src.ListAll(ctx)
	require.NoError(t, err)
	first[0].Price = 1

	l, err := src.GetByID(ctx, first[0].ID)
	require.NoError(t, err)
	l.Brand = "changed"

	again, err := src.ListAll(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, int64(1), again[0].Price)
	assert.NotEqual(t, "changed", again[0].Brand)
}
