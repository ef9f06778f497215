package server_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"project-tracker/backend/internal/config"
	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/monitoring"
	"project-tracker/backend/internal/server"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedAuth accepts exactly one token.
type fixedAuth struct {
	token  string
	userID uuid.UUID
}

func (f fixedAuth) Register(context.Context, string, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (f fixedAuth) Login(context.Context, string, string) (string, error) {
	return f.token, nil
}

func (f fixedAuth) ParseToken(token string) (uuid.UUID, error) {
	if token != f.token {
		return uuid.Nil, errors.New("bad token")
	}
	return f.userID, nil
}

type emptyProjects struct{ services.ProjectService }

func (emptyProjects) List(_ context.Context, ownerID uuid.UUID, _ services.ListProjectsQuery) (*services.ProjectPage, error) {
	return &services.ProjectPage{Total: 1, Page: 1, PageSize: 10, Projects: []models.Project{{Title: "mine", UserID: ownerID}}}, nil
}

func TestServerStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := server.New(config.ServerConfig{ShutdownTimeout: time.Second}, router, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/ping", ln.Addr()))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRouterHealthAndCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := server.NewRouter(server.Dependencies{
		Metrics: monitoring.NewMetrics(),
		Logger:  zerolog.Nop(),
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterRequiresTokenOnProtectedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := fixedAuth{token: "good", userID: uuid.Must(uuid.NewV4())}
	router := server.NewRouter(server.Dependencies{
		Auth:     auth,
		Projects: emptyProjects{},
		Logger:   zerolog.Nop(),
	})

	for _, path := range []string{"/api/projects", "/api/tasks?projectId=x"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), auth.userID.String())
}
