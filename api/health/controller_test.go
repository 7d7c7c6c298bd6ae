package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fooddash/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(checks map[string]CheckFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.App.Version = "1.0.0"
	cfg.App.Env = "production"
	cfg.Database.Type = "sqlite"

	engine := gin.New()
	NewController(cfg, checks).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth_AllHealthy(t *testing.T) {
	engine := newEngine(map[string]CheckFunc{
		"database": func(ctx context.Context) error { return nil },
	})

	w := get(engine, "/api/v1/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "sqlite", resp.Backend)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "healthy", resp.Checks["database"].Status)
	assert.Nil(t, resp.System)

	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/health/ready").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/health/live").Code)
}

func TestHealth_FailingDependency(t *testing.T) {
	engine := newEngine(map[string]CheckFunc{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	})

	w := get(engine, "/api/v1/health")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "connection refused", resp.Checks["redis"].Message)
	assert.Equal(t, "healthy", resp.Checks["database"].Status)

	ready := get(engine, "/api/v1/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
	assert.Contains(t, ready.Body.String(), "redis not available")

	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/health/live").Code)
}

func TestHealth_NoChecks(t *testing.T) {
	engine := newEngine(nil)
	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/health").Code)
	assert.Equal(t, http.StatusOK, get(engine, "/api/v1/health/ready").Code)
}

func TestReadiness_ListsEveryFailingDependency(t *testing.T) {
	engine := newEngine(map[string]CheckFunc{
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
		"database": func(ctx context.Context) error { return errors.New("too many connections") },
	})

	w := get(engine, "/api/v1/health/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "database, redis not available", body["message"])
}
