package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/catalog"
	"carmarket-service/internal/middleware"
	xerrors "carmarket-service/internal/pkg/errors"
	"carmarket-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCatalog struct {
	lastCall   string
	lastFilter catalog.Filter
	down       bool
}

func (f *fakeCatalog) ListAll(ctx context.Context) ([]catalog.ListingView, error) {
	f.lastCall = "all"
	if f.down {
		return nil, fmt.Errorf("list: %w", xerrors.ErrUnavailable)
	}
	return []catalog.ListingView{{ID: 2}, {ID: 1}}, nil
}

func (f *fakeCatalog) ListFiltered(ctx context.Context, flt catalog.Filter) ([]catalog.ListingView, error) {
	f.lastCall = "filtered"
	f.lastFilter = flt
	return []catalog.ListingView{{ID: 2}}, nil
}

func (f *fakeCatalog) GetForViewer(ctx context.Context, id int64, viewer *auth.Viewer) (*catalog.ListingView, error) {
	if id == 3 && viewer.CanManage(7) {
		return &catalog.ListingView{ID: 3, Owner: 7}, nil
	}
	if id == 2 {
		return &catalog.ListingView{ID: 2, Active: true}, nil
	}
	return nil, xerrors.ErrNotFound
}

type fakeLifecycle struct {
	created  *catalog.CreateListingRequest
	active   map[int64]bool
	statuses []bool
}

func (f *fakeLifecycle) Create(ctx context.Context, actor *auth.Viewer, req *catalog.CreateListingRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}
	f.created = req
	return 115220002, nil
}

func (f *fakeLifecycle) SoftDelete(ctx context.Context, actor *auth.Viewer, id int64) (bool, error) {
	if !f.active[id] {
		return false, nil
	}
	f.active[id] = false
	return true, nil
}

func (f *fakeLifecycle) SetActive(ctx context.Context, actor *auth.Viewer, id int64, active bool) error {
	if !actor.CanManage(7) {
		return xerrors.ErrForbidden
	}
	f.statuses = append(f.statuses, active)
	return nil
}

func (f *fakeLifecycle) ListByOwner(ctx context.Context, ownerID int64) ([]catalog.ListingView, error) {
	return []catalog.ListingView{{ID: 3, Owner: ownerID}}, nil
}

type tokens map[string]*auth.Viewer

func (t tokens) ValidateToken(ctx context.Context, token string) (*auth.Viewer, error) {
	if v, ok := t[token]; ok {
		return v, nil
	}
	return nil, xerrors.ErrUnauthorized
}

func setup() (*gin.Engine, *fakeCatalog, *fakeLifecycle) {
	cat := &fakeCatalog{}
	life := &fakeLifecycle{active: map[int64]bool{3: true}}
	h := NewCatalogHandler(cat, life, zap.NewNop())
	m := middleware.NewAuthMiddleware(tokens{
		"owner":    {UserID: 7, AccountType: auth.AccountTypeUser},
		"stranger": {UserID: 8, AccountType: auth.AccountTypeUser},
	})

	r := gin.New()
	cars := r.Group("/cars")
	cars.GET("", m.OptionalAuth(), h.ListCars)
	cars.GET("/mine", m.Auth(), h.MyCars)
	cars.GET("/:id", m.OptionalAuth(), h.GetCar)
	cars.POST("", m.Auth(), h.CreateCar)
	cars.DELETE("/:id", m.Auth(), h.DeleteCar)
	cars.PATCH("/:id/status", m.Auth(), h.UpdateCarStatus)
	return r, cat, life
}

func call(r http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var res response.Response
	_ = json.Unmarshal(rec.Body.Bytes(), &res)
	return rec, res
}

func TestListCarsRouting(t *testing.T) {
	r, cat, _ := setup()

	rec, res := call(r, http.MethodGet, "/cars", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, res.Success)
	assert.Equal(t, "all", cat.lastCall)

	// empty values count as absent
	call(r, http.MethodGet, "/cars?brand=&priceFrom=", "", "")
	assert.Equal(t, "all", cat.lastCall)

	rec, _ = call(r, http.MethodGet, "/cars?brand=5&priceFrom=10000&priceTo=20000", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "filtered", cat.lastCall)
	require.NotNil(t, cat.lastFilter.Brand)
	assert.Equal(t, int64(5), *cat.lastFilter.Brand)
	assert.Equal(t, int64(20000), *cat.lastFilter.PriceTo)

	rec, res = call(r, http.MethodGet, "/cars?yearFrom=new", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, res.Error, "yearFrom must be an integer")
}

func TestListCarsUnavailable(t *testing.T) {
	r, cat, _ := setup()
	cat.down = true

	rec, _ := call(r, http.MethodGet, "/cars", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetCar(t *testing.T) {
	r, _, _ := setup()

	rec, _ := call(r, http.MethodGet, "/cars/2", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(r, http.MethodGet, "/cars/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// inactive listing: hidden from strangers, visible to the owner
	rec, _ = call(r, http.MethodGet, "/cars/3", "stranger", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = call(r, http.MethodGet, "/cars/3", "owner", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMyCarsRequiresAuth(t *testing.T) {
	r, _, _ := setup()

	rec, _ := call(r, http.MethodGet, "/cars/mine", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = call(r, http.MethodGet, "/cars/mine", "owner", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCar(t *testing.T) {
	r, _, life := setup()

	body := `{"model":50,"prodyear":2019,"engvol":2.0,"price":31000,"milage":54000,"owner":7,
		"engtype":1,"body":2,"gearbox":1,"transmission":3,"color":2,"made":5}`
	rec, res := call(r, http.MethodPost, "/cars", "owner", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]any{"id": float64(115220002)}, res.Data)
	require.NotNil(t, life.created)

	// rejected at binding, before the lifecycle is called
	life.created = nil
	rec, res = call(r, http.MethodPost, "/cars", "owner", `{"model":50}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, res.Error, "missing required field: prodyear")
	assert.Nil(t, life.created)

	// zero is a value, not a missing field
	rec, _ = call(r, http.MethodPost, "/cars", "owner", `{"model":50,"prodyear":2019,"engvol":0,"price":0,"milage":0,
		"owner":7,"engtype":1,"body":2,"gearbox":1,"transmission":3,"color":2,"made":0}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, life.created)
	assert.Equal(t, int64(0), *life.created.Price)

	rec, _ = call(r, http.MethodPost, "/cars", "owner", `{"model":"fifty"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteCarTwice(t *testing.T) {
	r, _, _ := setup()

	rec, _ := call(r, http.MethodDelete, "/cars/3", "owner", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(r, http.MethodDelete, "/cars/3", "owner", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCarStatus(t *testing.T) {
	r, _, life := setup()

	for _, body := range []string{`{}`, `{"active":"yes"}`, `{"active":1}`, `not json`} {
		rec, _ := call(r, http.MethodPatch, "/cars/3/status", "owner", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec, _ := call(r, http.MethodPatch, "/cars/3/status", "stranger", `{"active":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, life.statuses)

	rec, _ = call(r, http.MethodPatch, "/cars/3/status", "owner", `{"active":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []bool{false}, life.statuses)
}
