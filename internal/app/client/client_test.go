package client

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/apitest"
	"notekeeper/internal/app/client/config"
	"notekeeper/internal/app/client/session"
	"notekeeper/internal/app/client/transport"
	"notekeeper/internal/domain/note"
	"notekeeper/internal/infrastructure/storage/memory"
	"notekeeper/internal/infrastructure/storage/sqlite"
	"notekeeper/internal/utils/logger"
)

func newConfig(t *testing.T, api *apitest.Server, env map[string]string) *config.Config {
	t.Helper()

	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("API_BASE_URL", api.URL)
	t.Setenv("APP_ORIGIN", "https://notes.example.com")
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)
	return cfg
}

func newApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	app, err := New(cfg, logger.Discard())
	require.NoError(t, err)
	return app
}

func TestApp_GroceriesScenario(t *testing.T) {
	api := apitest.New(t)
	_, err := api.SeedUser("ana", "ana@example.com", "pw")
	require.NoError(t, err)

	app := newApp(t, newConfig(t, api, map[string]string{"CREDENTIAL_STORE": config.StoreMemory}))
	defer app.Shutdown()
	ctx := context.Background()

	assert.Equal(t, session.StateUnauthenticated, app.Initialize(ctx).State)

	u, err := app.Session().Login(ctx, "ana", "pw")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)
	assert.Equal(t, session.StateAuthenticated, app.Session().Session().State)

	n, err := app.Notes().Create(ctx, "Groceries", "milk, eggs")
	require.NoError(t, err)
	assert.False(t, n.IsPublic)

	res, err := app.Notes().SetVisibility(ctx, n.ID, true)
	require.NoError(t, err)
	assert.Equal(t, note.ShareLink("https://notes.example.com", n.ID), res.ShareLink)

	listed, err := app.Public().ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, n.ID, listed[0].ID)
	assert.Equal(t, "ana", listed[0].OwnerUsername)

	require.NoError(t, app.Notes().Delete(ctx, n.ID))

	_, err = app.Public().FetchShared(ctx, n.ID)
	assert.ErrorIs(t, err, note.ErrNotFound)
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	api := apitest.New(t)
	_, err := api.SeedUser("ana", "ana@example.com", "pw")
	require.NoError(t, err)

	cfg := newConfig(t, api, map[string]string{"CREDENTIAL_STORE": config.StoreSQLite})
	ctx := context.Background()

	first := newApp(t, cfg)
	_, isSQLite := first.storage.(*sqlite.Storage)
	require.True(t, isSQLite)

	first.Initialize(ctx)
	_, err = first.Session().Login(ctx, "ana", "pw")
	require.NoError(t, err)
	require.NoError(t, first.Shutdown())

	second := newApp(t, cfg)
	defer second.Shutdown()

	s := second.Initialize(ctx)
	require.Equal(t, session.StateAuthenticated, s.State)
	assert.Equal(t, "ana", s.User.Username)

	require.NoError(t, second.Session().Logout(ctx))

	third := newApp(t, cfg)
	defer third.Shutdown()
	assert.Equal(t, session.StateUnauthenticated, third.Initialize(ctx).State)
}

func TestApp_RejectionClearsPersistedSession(t *testing.T) {
	api := apitest.New(t)
	_, err := api.SeedUser("ana", "ana@example.com", "pw")
	require.NoError(t, err)

	cfg := newConfig(t, api, map[string]string{"CREDENTIAL_STORE": config.StoreFile})
	ctx := context.Background()

	app := newApp(t, cfg)
	app.Initialize(ctx)
	_, err = app.Session().Login(ctx, "ana", "pw")
	require.NoError(t, err)

	var redirected bool
	app.Session().Subscribe(func(s session.Session) {
		redirected = !s.IsAuthenticated()
	})

	api.RevokeAll()
	_, err = app.Notes().List(ctx)
	require.ErrorIs(t, err, transport.ErrUnauthorized)
	assert.True(t, redirected)
	require.NoError(t, app.Shutdown())

	restarted := newApp(t, cfg)
	defer restarted.Shutdown()
	assert.Equal(t, session.StateUnauthenticated, restarted.Initialize(ctx).State)
	assert.Equal(t, 1, api.Hits(http.MethodGet, "/auth/me"))
}

func TestApp_FallsBackToMemoryStorage(t *testing.T) {
	api := apitest.New(t)
	dir := t.TempDir()

	cfg := newConfig(t, api, map[string]string{
		"CREDENTIAL_STORE": config.StoreSQLite,
		"CREDENTIAL_PATH":  filepath.Join(dir, "missing", "nested", "credentials.db"),
	})

	app := newApp(t, cfg)
	defer app.Shutdown()

	_, isMemory := app.storage.(*memory.Storage)
	assert.True(t, isMemory)
}

func TestApp_StartWatchDisabledByDefault(t *testing.T) {
	api := apitest.New(t)
	app := newApp(t, newConfig(t, api, map[string]string{"CREDENTIAL_STORE": config.StoreMemory}))

	app.StartWatch(context.Background())
	assert.Nil(t, app.cancel)
	assert.NoError(t, app.Shutdown())
}

func TestApp_StartWatchStopsOnShutdown(t *testing.T) {
	api := apitest.New(t)
	app := newApp(t, newConfig(t, api, map[string]string{
		"CREDENTIAL_STORE":           config.StoreMemory,
		"SESSION_REVALIDATE_SECONDS": "1",
	}))

	app.StartWatch(context.Background())
	assert.NotNil(t, app.cancel)
	assert.NoError(t, app.Shutdown())
	assert.Nil(t, app.cancel)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(nil, logger.Discard())
	assert.Error(t, err)
}
