// internal/controller/auth_controller_test.go
package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/miloszfede/filmweb/internal/config"
	"github.com/miloszfede/filmweb/internal/controller"
	"github.com/miloszfede/filmweb/internal/model"
	"github.com/miloszfede/filmweb/internal/router"
	"github.com/miloszfede/filmweb/internal/service"
	"github.com/miloszfede/filmweb/pkg/jwtauth"
	"github.com/miloszfede/filmweb/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAuthService struct {
	registerUser  *model.User
	registerToken string
	registerErr   error
	loginUser     *model.User
	loginToken    string
	loginErr      error

	lastUsername string
}

func (f *fakeAuthService) Register(_ context.Context, username, _, _ string) (*model.User, string, error) {
	f.lastUsername = username
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	return f.registerUser, f.registerToken, nil
}

func (f *fakeAuthService) Login(_ context.Context, username, _ string) (*model.User, string, error) {
	f.lastUsername = username
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginUser, f.loginToken, nil
}

func testUser() *model.User {
	return &model.User{
		Model:    gorm.Model{ID: 42},
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func newAuthRouter(t *testing.T, svc service.AuthService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router.RegisterValidators()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{}
	cfg.App.Name = "test"
	blacklist := jwtauth.NewBlacklist(rdb, cfg)

	ctrl := controller.NewAuthController(svc, blacklist, logger.NewNop())

	engine := gin.New()
	engine.POST("/api/auth/register", ctrl.Register)
	engine.POST("/api/auth/login", ctrl.Login)
	return engine
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthController_Register(t *testing.T) {
	svc := &fakeAuthService{registerUser: testUser(), registerToken: "tok-123"}
	engine := newAuthRouter(t, svc)

	rec := postJSON(engine, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", svc.lastUsername)

	var body struct {
		Code int                     `json:"code"`
		Data controller.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, uint(42), body.Data.UserID)
	assert.Equal(t, "alice", body.Data.Username)
	assert.Equal(t, "alice@example.com", body.Data.Email)
	assert.Equal(t, "tok-123", body.Data.Token)
}

func TestAuthController_RegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{}`},
		{"short username", `{"username":"ab","email":"a@b.com","password":"secret1"}`},
		{"bad username characters", `{"username":"al ice!","email":"a@b.com","password":"secret1"}`},
		{"invalid email", `{"username":"alice","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"username":"alice","email":"a@b.com","password":"12345"}`},
		{"malformed json", `{"username":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{registerUser: testUser()}
			engine := newAuthRouter(t, svc)

			rec := postJSON(engine, "/api/auth/register", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.lastUsername, "service should not be called on invalid input")
		})
	}
}

func TestAuthController_RegisterDuplicate(t *testing.T) {
	svc := &fakeAuthService{registerErr: service.ErrAlreadyExists}
	engine := newAuthRouter(t, svc)

	rec := postJSON(engine, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already")
}

func TestAuthController_RegisterStoreError(t *testing.T) {
	svc := &fakeAuthService{registerErr: assert.AnError}
	engine := newAuthRouter(t, svc)

	rec := postJSON(engine, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestAuthController_Login(t *testing.T) {
	svc := &fakeAuthService{loginUser: testUser(), loginToken: "tok-456"}
	engine := newAuthRouter(t, svc)

	rec := postJSON(engine, "/api/auth/login", `{"username":"alice","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data controller.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tok-456", body.Data.Token)
	assert.Equal(t, uint(42), body.Data.UserID)
}

func TestAuthController_LoginErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"account locked", service.ErrAccountLocked, http.StatusTooManyRequests},
		{"store failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{loginErr: tt.err}
			engine := newAuthRouter(t, svc)

			rec := postJSON(engine, "/api/auth/login", `{"username":"alice","password":"wrong"}`)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestAuthController_LoginValidation(t *testing.T) {
	svc := &fakeAuthService{loginUser: testUser()}
	engine := newAuthRouter(t, svc)

	rec := postJSON(engine, "/api/auth/login", `{"username":"alice"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.lastUsername)
}
