package app_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fuzumoe/linktorch-search/configs"
	"github.com/fuzumoe/linktorch-search/internal/app"
	"github.com/fuzumoe/linktorch-search/internal/repository"
	"github.com/fuzumoe/linktorch-search/internal/service"
)

// Save original hook functions
var (
	origLoadConfig = app.LoadConfig
	origNewDB      = app.NewDB
	origMigrateDB  = app.MigrateDB
	origNewLogger  = app.NewLogger
	origReconcile  = app.Reconcile
)

// setupHooks replaces the hooks for a successful run.
func setupHooks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	app.LoadConfig = func() (*configs.Config, error) {
		return &configs.Config{
			DatabaseURL:           "dsn",
			JWTSecret:             "test-secret",
			ServerHost:            "localhost",
			ServerPort:            "8080",
			MaxConcurrentSearches: 1,
			SearchQueueSize:       1,
		}, nil
	}

	app.NewDB = func(dsn string) (*gorm.DB, error) {
		assert.Equal(t, "dsn", dsn)
		return &gorm.DB{}, nil
	}

	app.MigrateDB = func(m repository.Migrator) error {
		return nil
	}

	app.NewLogger = func(string, string) (*zap.Logger, error) {
		return zap.NewNop(), nil
	}

	app.Reconcile = func(service.SearchService) (int, int, error) {
		return 0, 0, nil
	}
}

// teardownHooks restores original hook functions.
func teardownHooks() {
	app.LoadConfig = origLoadConfig
	app.NewDB = origNewDB
	app.MigrateDB = origMigrateDB
	app.NewLogger = origNewLogger
	app.Reconcile = origReconcile
}

func TestRun(t *testing.T) {
	t.Run("Config Error", func(t *testing.T) {
		setupHooks(t)
		app.LoadConfig = func() (*configs.Config, error) {
			return nil, errors.New("fail load")
		}
		defer teardownHooks()

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config load error")
	})

	t.Run("Logger Error", func(t *testing.T) {
		setupHooks(t)
		app.NewLogger = func(string, string) (*zap.Logger, error) {
			return nil, errors.New("bad level")
		}
		defer teardownHooks()

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger init error")
	})

	t.Run("DB Error", func(t *testing.T) {
		setupHooks(t)
		app.NewDB = func(dsn string) (*gorm.DB, error) {
			return nil, errors.New("fail db")
		}
		defer teardownHooks()

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db init error")
	})

	t.Run("Migrate Error", func(t *testing.T) {
		setupHooks(t)
		app.MigrateDB = func(m repository.Migrator) error {
			return errors.New("fail migrate")
		}
		defer teardownHooks()

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "migration error")
	})

	t.Run("Recover Error", func(t *testing.T) {
		setupHooks(t)
		app.Reconcile = func(service.SearchService) (int, int, error) {
			return 0, 0, errors.New("fail list")
		}
		defer teardownHooks()

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "recover error")
	})

	t.Run("Server Closes Cleanly", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()

		// Pretend the listener ran and was closed without binding a port.
		patches := gomonkey.ApplyMethod((*http.Server)(nil), "ListenAndServe", func(_ *http.Server) error {
			return http.ErrServerClosed
		})
		defer patches.Reset()

		err := app.Run()
		require.NoError(t, err)
	})

	t.Run("Server Start Error", func(t *testing.T) {
		setupHooks(t)
		defer teardownHooks()

		patches := gomonkey.ApplyMethod((*http.Server)(nil), "ListenAndServe", func(_ *http.Server) error {
			return errors.New("server start failed")
		})
		defer patches.Reset()

		err := app.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server start failed")
	})
}
