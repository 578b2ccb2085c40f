package catalog

import (
	"net/url"
	"testing"

	xerrors "carmarket-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	q := url.Values{
		"brand":        {"5"},
		"priceFrom":    {"10000"},
		"priceTo":      {" 20000 "},
		"transmission": {"2"},
		"bodyType":     {""},
	}
	f, err := ParseFilter(q)
	require.NoError(t, err)

	require.NotNil(t, f.Brand)
	assert.Equal(t, int64(5), *f.Brand)
	assert.Equal(t, int64(20000), *f.PriceTo)
	require.NotNil(t, f.GearBox)
	assert.Equal(t, int64(2), *f.GearBox)
	assert.Nil(t, f.BodyType, "empty value is absent")
	assert.Nil(t, f.DriveType)
	assert.False(t, f.IsEmpty())
}

func TestParseFilterRejectsNonNumeric(t *testing.T) {
	_, err := ParseFilter(url.Values{"yearFrom": {"2019a"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "yearFrom")
}

func TestFilterEmpty(t *testing.T) {
	f, err := ParseFilter(url.Values{"unrelated": {"x"}})
	require.NoError(t, err)
	assert.True(t, f.IsEmpty())
	assert.Equal(t, "", f.QueryString())
}

func TestQueryStringRoundTrip(t *testing.T) {
	f, err := ParseFilter(url.Values{"brand": {"5"}, "yearFrom": {"2018"}, "driveType": {"1"}})
	require.NoError(t, err)

	qs := f.QueryString()
	assert.Equal(t, "brand=5&driveType=1&yearFrom=2018", qs)

	parsed, err := url.ParseQuery(qs)
	require.NoError(t, err)
	again, err := ParseFilter(parsed)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func completeRequest() *CreateListingRequest {
	i := func(v int64) *int64 { return &v }
	year := 2019
	vol := 2.0
	return &CreateListingRequest{
		Model: i(3), ProdYear: &year, EngVol: &vol, Price: i(15000), Mileage: i(44000),
		Owner: i(1), EngType: i(1), Body: i(2), GearBox: i(1), Transmission: i(2),
		Color: i(4), Made: i(5),
	}
}

func TestCreateRequestDefaults(t *testing.T) {
	req := completeRequest()
	require.NoError(t, req.Validate())

	l := req.ToListing()
	assert.True(t, l.Active)
	assert.False(t, l.New)
	assert.Equal(t, int64(5), l.Made)

	off := false
	req.Active = &off
	assert.False(t, req.ToListing().Active)
}

func TestCreateRequestMissingField(t *testing.T) {
	req := completeRequest()
	req.Color = nil
	err := req.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "color")
}
