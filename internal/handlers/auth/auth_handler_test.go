package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carmarket-service/internal/domain/auth"
	"carmarket-service/internal/domain/user"
	"carmarket-service/internal/middleware"
	xerrors "carmarket-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdentity struct {
	loggedOut []string
	lastIP    string
}

func (f *fakeIdentity) Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
	if req.Email == "taken@example.com" {
		return nil, xerrors.ErrConflict
	}
	return &user.User{ID: 3, Email: req.Email, PasswordHash: "hash"}, nil
}

func (f *fakeIdentity) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	f.lastIP = req.IPAddress
	switch req.Password {
	case "blocked":
		return nil, xerrors.ErrForbidden
	case "secret1":
		return &auth.LoginResponse{AccessToken: "tok", TokenType: "Bearer"}, nil
	}
	return nil, xerrors.ErrUnauthorized
}

func (f *fakeIdentity) Logout(ctx context.Context, viewer *auth.Viewer) error {
	f.loggedOut = append(f.loggedOut, viewer.JTI)
	return nil
}

func (f *fakeIdentity) Me(ctx context.Context, viewer *auth.Viewer) (*user.User, error) {
	return &user.User{ID: viewer.UserID}, nil
}

type tokens map[string]*auth.Viewer

func (t tokens) ValidateToken(ctx context.Context, token string) (*auth.Viewer, error) {
	if v, ok := t[token]; ok {
		return v, nil
	}
	return nil, xerrors.ErrUnauthorized
}

func setup() (*gin.Engine, *fakeIdentity) {
	svc := &fakeIdentity{}
	h := NewAuthHandler(svc, zap.NewNop())
	m := middleware.NewAuthMiddleware(tokens{"tok": {UserID: 3, JTI: "j3"}})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", m.Auth(), h.Logout)
	r.GET("/auth/me", m.Auth(), h.GetMe)
	return r, svc
}

func post(r http.Handler, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	r, _ := setup()

	rec := post(r, "/auth/register", "", `{"name":"A","email":"a@example.com","phone":"1","password":"secret1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash")

	rec = post(r, "/auth/register", "", `{"name":"A","email":"taken@example.com","phone":"1","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = post(r, "/auth/register", "", `{"email":"a@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	r, svc := setup()

	assert.Equal(t, http.StatusOK, post(r, "/auth/login", "", `{"email":"a@example.com","password":"secret1"}`).Code)
	assert.NotEmpty(t, svc.lastIP)
	assert.Equal(t, http.StatusUnauthorized, post(r, "/auth/login", "", `{"email":"a@example.com","password":"nope"}`).Code)
	assert.Equal(t, http.StatusForbidden, post(r, "/auth/login", "", `{"email":"a@example.com","password":"blocked"}`).Code)
}

func TestLogoutAndMe(t *testing.T) {
	r, svc := setup()

	assert.Equal(t, http.StatusUnauthorized, post(r, "/auth/logout", "", "").Code)
	assert.Equal(t, http.StatusOK, post(r, "/auth/logout", "tok", "").Code)
	assert.Equal(t, []string{"j3"}, svc.loggedOut)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
