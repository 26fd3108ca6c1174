package main

import (
	"bytes"
	"context"
	"database/sql"
	"database/sql/driver"
	"net/http"
	"net/http/httptest"
	"testing"

	"petshop-be/internal/config"
	"petshop-be/internal/logger"
	"petshop-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:      "8080",
		AppEnv:       "test",
		JWTSecret:    "test-secret",
		ShopName:     "Catzo Pet Shop",
		ShopTimezone: "Asia/Kolkata",
		StockPolicy:  config.StockPolicyStrict,
	}
}

func TestNewServer(t *testing.T) {
	t.Cleanup(logger.Replace(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	t.Run("Postgres repositories", func(t *testing.T) {
		// We use a mock driver so we don't need a real Postgres connection
		db, err := sql.Open("mock_driver_main", "")
		require.NoError(t, err)

		router, err := newServer(ctx, testConfig(), db)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(logger.RequestIDHeader))
	})

	t.Run("Demo store", func(t *testing.T) {
		cfg := testConfig()
		cfg.DemoMode = true
		cfg.DemoAdminEmail = "admin@catzo.in"
		cfg.DemoAdminPassword = "admin-secret"

		router, err := newServer(ctx, cfg, nil)
		require.NoError(t, err)

		query := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			return rr
		}

		rr := query(`{"query":"{ products(filter: {category: FISH}) { name } }"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Goldfish")

		rr = query(`{"query":"mutation { login(input: {email: \"admin@catzo.in\", password: \"admin-secret\"}) { profile { role } } }"}`)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"role":"ADMIN"`)
		assert.NotEmpty(t, rr.Result().Cookies())

		rr = query(`{"query":"{ cart { total } }"}`)
		assert.Contains(t, rr.Body.String(), `"code":"UNAUTHENTICATED"`)

		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "GraphQL Playground")
	})

	t.Run("No playground in production", func(t *testing.T) {
		cfg := testConfig()
		cfg.AppEnv = "production"
		cfg.DemoMode = true

		router, err := newServer(ctx, cfg, nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Unreachable catalog cache is skipped", func(t *testing.T) {
		cfg := testConfig()
		cfg.RedisURL = "redis://127.0.0.1:1/0"

		_, isCached := catalogRepository(ctx, cfg, nil).(*product.CachedRepository)
		assert.False(t, isCached)
	})

	t.Run("Unknown timezone", func(t *testing.T) {
		cfg := testConfig()
		cfg.ShopTimezone = "Mars/Olympus"

		_, err := newServer(ctx, cfg, nil)
		assert.Error(t, err)
	})
}

func TestStartServer_StopsOnCancel(t *testing.T) {
	t.Cleanup(logger.Replace(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := startServer(ctx, "127.0.0.1:0", http.NotFoundHandler())
	assert.NoError(t, err)
}

// --- Mock Driver for Testing ---
type mockDriver struct{}

func (m *mockDriver) Open(name string) (driver.Conn, error)         { return &mockConn{}, nil }
func (c *mockConn) Prepare(query string) (driver.Stmt, error)       { return &mockStmt{}, nil }
func (c *mockConn) Close() error                                    { return nil }
func (c *mockConn) Begin() (driver.Tx, error)                       { return nil, nil }
func (s *mockStmt) Close() error                                    { return nil }
func (s *mockStmt) NumInput() int                                   { return 0 }
func (s *mockStmt) Exec(args []driver.Value) (driver.Result, error) { return nil, nil }
func (s *mockStmt) Query(args []driver.Value) (driver.Rows, error)  { return nil, nil }

type mockConn struct{}
type mockStmt struct{}

func init() {
	sql.Register("mock_driver_main", &mockDriver{})
}

func TestRun(t *testing.T) {
	t.Cleanup(logger.Replace(zap.NewNop()))

	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(cfg *config.Config) *sql.DB {
		db, _ := sql.Open("mock_driver_main", "")
		return db
	}

	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	var served http.Handler
	startServerFunc = func(ctx context.Context, addr string, handler http.Handler) error {
		assert.Equal(t, ":8080", addr)
		served = handler
		return nil
	}

	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "user")
	t.Setenv("DB_PASSWORD", "pass")
	t.Setenv("DB_NAME", "db")
	t.Setenv("JWT_SECRET", "secret")

	assert.NoError(t, run())
	assert.NotNil(t, served)
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DEMO_MODE", "false")
	t.Setenv("APP_ENV", "test")

	assert.ErrorIs(t, run(), config.ErrMissingDBHost)
}
