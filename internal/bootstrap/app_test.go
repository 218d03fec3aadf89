package bootstrap

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/office_management_sample/internal/config"
	"github.com/locvowork/office_management_sample/internal/handler"
)

func TestRegisterRoutes(t *testing.T) {
	app := NewApp()
	app.RegisterRoutes(handler.NewOfficeHandler(nil))

	got := map[string]bool{}
	for _, r := range app.Echo.Routes() {
		got[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		http.MethodGet + " /departments",
		http.MethodGet + " /departments/:id",
		http.MethodDelete + " /departments/:id",
		http.MethodGet + " /employees",
		http.MethodGet + " /employees/:id",
		http.MethodDelete + " /employees/:id",
		http.MethodGet + " /businesses",
		http.MethodGet + " /summary",
		http.MethodGet + " /export/office.xlsx",
	} {
		assert.True(t, got[want], "route %s not registered", want)
	}
}

func TestDatabaseConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://office:secret@db:5432/office")
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	require.NoError(t, config.LoadEnvConfig())

	cfg := DatabaseConfig()
	assert.Equal(t, "postgres://office:secret@db:5432/office", cfg.URL)
	assert.Equal(t, 7, cfg.MaxOpenConns)
	assert.Equal(t, 90*time.Second, cfg.ConnMaxLifetime)
	assert.Equal(t, "disable", cfg.SSLMode)
}
