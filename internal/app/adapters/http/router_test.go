package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotwitcher/internal/app/adapters/http/handlers"
	"gotwitcher/internal/app/adapters/http/middlewares"
	"gotwitcher/internal/app/infrastructure/config"
	"gotwitcher/pkg/logger"
)

type fakeSession struct {
	token string
}

func (f *fakeSession) SetToken(token string) { f.token = token }
func (f *fakeSession) Authorized() bool      { return f.token != "" }

func testManager(t *testing.T) *config.Manager {
	t.Helper()
	m, err := config.New(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	return m
}

func loginEngine(t *testing.T, session *fakeSession) (*gin.Engine, *handlers.Handlers) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h, err := handlers.New(logger.NopLogger{}, testManager(t), session)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middlewares.New().LocalOnly())
	engine.GET("/", h.ExtractHandler)
	engine.POST("/", h.TokenHandler)
	engine.GET("/success", h.SuccessHandler)
	return engine, h
}

func stateOf(t *testing.T, h *handlers.Handlers) string {
	t.Helper()
	u, err := url.Parse(h.AuthURL())
	require.NoError(t, err)
	return u.Query().Get("state")
}

func TestAuthURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h, err := handlers.New(logger.NopLogger{}, testManager(t), &fakeSession{})
	require.NoError(t, err)

	u, err := url.Parse(h.AuthURL())
	require.NoError(t, err)
	assert.Equal(t, "api.twitch.tv", u.Host)
	query := u.Query()
	assert.Equal(t, "token", query.Get("response_type"))
	assert.Equal(t, config.DefaultClientID, query.Get("client_id"))
	assert.Equal(t, "http://localhost:42420", query.Get("redirect_uri"))
	assert.Contains(t, query.Get("scope"), "chat_login")
	assert.NotEmpty(t, query.Get("state"))
}

func TestExtractPagePostsFragment(t *testing.T) {
	engine, _ := loginEngine(t, &fakeSession{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "window.location.hash")
	assert.Contains(t, w.Body.String(), "'/success'")
}

func TestTokenHandlerSetsToken(t *testing.T) {
	session := &fakeSession{}
	engine, h := loginEngine(t, session)

	target := "/?access_token=sometoken&scope=chat_login&state=" + url.QueryEscape(stateOf(t, h))
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.RemoteAddr = "127.0.0.1:12345"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sometoken", session.token)
	select {
	case <-h.TokenReceived():
	default:
		t.Error("TokenReceived should be closed after a valid token")
	}
}

func TestTokenHandlerRejectsWrongState(t *testing.T) {
	session := &fakeSession{}
	engine, _ := loginEngine(t, session)

	req := httptest.NewRequest(http.MethodPost, "/?access_token=sometoken&state=wrong", nil)
	req.RemoteAddr = "127.0.0.1:12345"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, session.token)
}

func TestLocalOnlyRejectsRemote(t *testing.T) {
	engine, _ := loginEngine(t, &fakeSession{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:4711"
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStatusHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session := &fakeSession{token: "sometoken"}
	h, err := handlers.New(logger.NopLogger{}, testManager(t), session)
	require.NoError(t, err)

	engine := gin.New()
	engine.GET("/status", h.StatusHandler)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `"authorized":true`), "body: %s", body)
}
