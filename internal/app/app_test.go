package app

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"carmarket-service/internal/config"
	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/catalog"
	"carmarket-service/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// switchableExec reports every statement as a connection failure while down.
type switchableExec struct {
	db.Executor
	down atomic.Bool
}

func (s *switchableExec) fail() error {
	return fmt.Errorf("dial tcp 10.0.0.5:5432: %w", db.ErrConnection)
}

func (s *switchableExec) Query(ctx context.Context, q string, args ...any) (db.Rows, error) {
	if s.down.Load() {
		return nil, s.fail()
	}
	return s.Executor.Query(ctx, q, args...)
}

func (s *switchableExec) QueryRow(ctx context.Context, q string, args ...any) db.Row {
	if s.down.Load() {
		return errRow{s.fail()}
	}
	return s.Executor.QueryRow(ctx, q, args...)
}

func (s *switchableExec) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	if s.down.Load() {
		return 0, s.fail()
	}
	return s.Executor.Exec(ctx, q, args...)
}

func (s *switchableExec) Insert(ctx context.Context, q, idColumn string, args ...any) (int64, error) {
	if s.down.Load() {
		return 0, s.fail()
	}
	return s.Executor.Insert(ctx, q, idColumn, args...)
}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type harness struct {
	t      *testing.T
	router *gin.Engine
	exec   *switchableExec
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	sqlite, err := db.Open(ctx, db.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "app.db"), MaxConns: 1})
	require.NoError(t, err)
	t.Cleanup(sqlite.Close)

	schema, err := os.ReadFile(filepath.Join("..", "repository", "sqldb", "testdata", "schema.sql"))
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(schema), ";\n") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := sqlite.Exec(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	manager := &jwt.Manager{
		Generator: jwt.NewGenerator(key, "carmarket", "carmarket-users", "test", time.Hour),
		Verifier:  jwt.NewVerifier(&key.PublicKey, "carmarket", "carmarket-users"),
	}

	exec := &switchableExec{Executor: sqlite}
	cfg := config.AppConfig{FallbackEnabled: true, CORSOrigins: []string{"*"}}
	handlers, authService := BuildHandlers(Deps{Exec: exec, JWT: manager, Config: cfg, Logger: zap.NewNop()})
	require.NoError(t, authService.EnsureAdminExists(ctx, "admin@carmarket.test", "admin-pass", "Admin"))

	return &harness{t: t, router: NewRouter(cfg, zap.NewNop(), handlers), exec: exec}
}

func (h *harness) do(method, path, token string, body any) (int, envelope) {
	h.t.Helper()
	var payload string
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		payload = string(raw)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env
}

func (h *harness) login(email, password string) string {
	h.t.Helper()
	code, env := h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(h.t, http.StatusOK, code, env.Error)
	var res struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(h.t, json.Unmarshal(env.Data, &res))
	return res.AccessToken
}

func (h *harness) signup(email string) string {
	h.t.Helper()
	code, env := h.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Seller", "email": email, "phone": "+380500000000", "password": "secret1",
	})
	require.Equal(h.t, http.StatusCreated, code, env.Error)
	return h.login(email, "secret1")
}

func (h *harness) post(token string, model, made, price int64) int64 {
	h.t.Helper()
	code, env := h.do(http.MethodPost, "/cars", token, map[string]any{
		"model": model, "prodyear": 2019, "engvol": 2.0, "price": price, "milage": 40000,
		"engtype": 1, "body": 2, "gearbox": 1, "transmission": 3, "color": 2, "made": made,
	})
	require.Equal(h.t, http.StatusCreated, code, env.Error)
	var res struct {
		ID int64 `json:"id"`
	}
	require.NoError(h.t, json.Unmarshal(env.Data, &res))
	return res.ID
}

func (h *harness) cars(path, token string) []catalog.ListingView {
	h.t.Helper()
	code, env := h.do(http.MethodGet, path, token, nil)
	require.Equal(h.t, http.StatusOK, code, env.Error)
	var cars []catalog.ListingView
	require.NoError(h.t, json.Unmarshal(env.Data, &cars))
	return cars
}

func TestCatalogEndToEnd(t *testing.T) {
	h := newHarness(t)
	seller := h.signup("seller@carmarket.test")
	stranger := h.signup("buyer@carmarket.test")

	h.post(seller, 50, 5, 9000)
	mid := h.post(seller, 51, 5, 15000)
	h.post(seller, 52, 5, 21000)
	h.post(seller, 10, 1, 15000)

	filtered := h.cars("/cars?brand=5&priceFrom=10000&priceTo=20000", "")
	require.Len(t, filtered, 1)
	assert.Equal(t, mid, filtered[0].ID)
	assert.Equal(t, "Audi", filtered[0].Brand)
	assert.Equal(t, "A8", filtered[0].ModelName)

	all := h.cars("/cars", "")
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i-1].ID, all[i].ID)
	}

	code, _ := h.do(http.MethodPatch, fmt.Sprintf("/cars/%d/status", mid), stranger, map[string]bool{"active": false})
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = h.do(http.MethodGet, fmt.Sprintf("/cars/%d", mid), "", nil)
	assert.Equal(t, http.StatusOK, code, "unauthorized toggle leaves the listing active")

	code, _ = h.do(http.MethodDelete, fmt.Sprintf("/cars/%d", mid), seller, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = h.do(http.MethodDelete, fmt.Sprintf("/cars/%d", mid), seller, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = h.do(http.MethodGet, fmt.Sprintf("/cars/%d", mid), "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = h.do(http.MethodGet, fmt.Sprintf("/cars/%d", mid), seller, nil)
	assert.Equal(t, http.StatusOK, code, "owner still sees the inactive listing")

	assert.Len(t, h.cars("/cars/mine", seller), 4)
	assert.Len(t, h.cars("/cars", ""), 3)
}

func TestFavoritesAndSearchesEndToEnd(t *testing.T) {
	h := newHarness(t)
	seller := h.signup("seller@carmarket.test")
	buyer := h.signup("buyer@carmarket.test")
	car := h.post(seller, 50, 5, 30000)

	code, _ := h.do(http.MethodPost, "/user/favorites", buyer, map[string]int64{"carId": car})
	assert.Equal(t, http.StatusCreated, code)
	code, _ = h.do(http.MethodPost, "/user/favorites", buyer, map[string]int64{"carId": car})
	assert.Equal(t, http.StatusConflict, code)

	code, env := h.do(http.MethodGet, "/user/favorites", buyer, nil)
	require.Equal(t, http.StatusOK, code)
	var favs []struct {
		Listing catalog.ListingView `json:"listing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &favs))
	require.Len(t, favs, 1)
	assert.Equal(t, car, favs[0].Listing.ID)

	code, env = h.do(http.MethodPost, "/user/saved-searches", buyer, map[string]any{
		"name": "Audi under 40k", "filters": map[string]int64{"brand": 5, "priceTo": 40000},
	})
	require.Equal(t, http.StatusCreated, code, env.Error)
	var saved struct {
		ID          int64  `json:"id"`
		QueryString string `json:"query_string"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	assert.Equal(t, "brand=5&priceTo=40000", saved.QueryString)

	code, _ = h.do(http.MethodDelete, fmt.Sprintf("/user/saved-searches/%d", saved.ID), seller, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = h.do(http.MethodDelete, fmt.Sprintf("/user/saved-searches/%d", saved.ID), buyer, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAdminEndToEnd(t *testing.T) {
	h := newHarness(t)
	seller := h.signup("seller@carmarket.test")
	h.post(seller, 50, 5, 30000)
	h.post(seller, 51, 5, 40000)
	admin := h.login("admin@carmarket.test", "admin-pass")

	code, _ := h.do(http.MethodGet, "/admin/users/search?email=seller", seller, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env := h.do(http.MethodGet, "/admin/users/search?email=SELLER", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var users []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 1)
	sellerID := users[0].ID

	code, env = h.do(http.MethodPatch, fmt.Sprintf("/admin/users/%d/cars-status", sellerID), admin, map[string]bool{"active": false})
	require.Equal(t, http.StatusOK, code, env.Error)
	var bulk catalog.BulkStatusResult
	require.NoError(t, json.Unmarshal(env.Data, &bulk))
	assert.Equal(t, int64(2), bulk.Affected)
	assert.Empty(t, h.cars("/cars", ""))

	code, _ = h.do(http.MethodPatch, fmt.Sprintf("/admin/users/%d/status", sellerID), admin, map[string]bool{"active": false})
	assert.Equal(t, http.StatusOK, code)
	code, env = h.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "seller@carmarket.test", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Contains(t, env.Error, "account is blocked")
}

func TestFallbackEndToEnd(t *testing.T) {
	h := newHarness(t)
	seller := h.signup("seller@carmarket.test")
	admin := h.login("admin@carmarket.test", "admin-pass")
	own := h.post(seller, 50, 5, 30000)

	h.exec.down.Store(true)
	fallback := h.cars("/cars", "")
	require.NotEmpty(t, fallback)
	assert.Equal(t, int64(115220001), fallback[0].ID)

	// writes never fall back
	code, _ := h.do(http.MethodPost, "/cars", seller, map[string]any{
		"model": 50, "prodyear": 2019, "engvol": 2.0, "price": 1, "milage": 1,
		"engtype": 1, "body": 1, "gearbox": 1, "transmission": 1, "color": 1, "made": 5,
	})
	assert.Equal(t, http.StatusServiceUnavailable, code)

	// the latch holds after the database comes back
	h.exec.down.Store(false)
	assert.Equal(t, int64(115220001), h.cars("/cars", "")[0].ID)

	code, env := h.do(http.MethodGet, "/admin/catalog/status", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"fallback_active":true,"fallback_enabled":true}`, string(env.Data))

	code, _ = h.do(http.MethodPost, "/admin/catalog/fallback/reset", admin, nil)
	require.Equal(t, http.StatusOK, code)
	back := h.cars("/cars", "")
	require.Len(t, back, 1)
	assert.Equal(t, own, back[0].ID)
}

func TestHealth(t *testing.T) {
	code, _ := newHarness(t).do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
}
