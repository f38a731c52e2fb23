package cmd

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"allowlist-sync/core/config"
	"allowlist-sync/core/container"
	containerMocks "allowlist-sync/core/container/mocks"
	"allowlist-sync/core/database"
	"allowlist-sync/core/resolver"
	"allowlist-sync/core/snapshot"
	"allowlist-sync/core/storage"
	storageMocks "allowlist-sync/core/storage/mocks"
	"allowlist-sync/feature/accesslist"
	"allowlist-sync/feature/proxyhost"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: database.Config{Source: database.SourceConfig, Driver: database.DriverSQLite, Name: ":memory:"},
		Resolver: resolver.Config{Servers: "127.0.0.1:53", TimeoutSeconds: 1},
		Snapshot: snapshot.Config{Backend: snapshot.BackendFile, Path: "/state/snapshot.json", Object: "snapshots/allowlist.json"},
		Storage:  storage.Config{Bucket: "allowlist-sync"},
		Proxy:    proxyhost.Config{Mode: proxyhost.ModeNone},
	}
}

func withRuntime(t *testing.T, rt container.Runtime) {
	t.Helper()
	orig := newRuntime
	newRuntime = func(cfg container.Config) (container.Runtime, error) { return rt, nil }
	t.Cleanup(func() { newRuntime = orig })
}

func TestOpenTarget_ContainerAbsent(t *testing.T) {
	rt := new(containerMocks.Runtime)
	rt.On("Exists", mock.Anything, "npm").Return(false, nil)
	withRuntime(t, rt)

	cfg := testConfig()
	cfg.Container.Name = "npm"
	cfg.Database.Source = database.SourceContainer

	_, err := openTarget(context.Background(), cfg, zap.NewNop())
	assert.ErrorIs(t, err, errContainerAbsent)
	rt.AssertNotCalled(t, "Env", mock.Anything, mock.Anything)
}

func TestOpenTarget_ContainerQueryFails(t *testing.T) {
	rt := new(containerMocks.Runtime)
	rt.On("Exists", mock.Anything, "npm").Return(false, errors.New("permission denied"))
	withRuntime(t, rt)

	cfg := testConfig()
	cfg.Container.Name = "npm"
	cfg.Database.Source = database.SourceContainer

	_, err := openTarget(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.NotErrorIs(t, err, errContainerAbsent)
}

func TestOpenTarget_MissingEnv(t *testing.T) {
	rt := new(containerMocks.Runtime)
	rt.On("Exists", mock.Anything, "npm").Return(true, nil)
	rt.On("Env", mock.Anything, "npm").Return(map[string]string{
		database.EnvHost: "db",
		database.EnvPort: "3306",
	}, nil)
	withRuntime(t, rt)

	cfg := testConfig()
	cfg.Container.Name = "npm"
	cfg.Database.Source = database.SourceContainer

	_, err := openTarget(context.Background(), cfg, zap.NewNop())

	var missing *database.MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{database.EnvName, database.EnvUser, database.EnvPassword}, missing.Missing)
}

func TestOpenTarget_ContainerSourceWithoutName(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Source = database.SourceContainer

	_, err := openTarget(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "container.name")
}

func TestOpenTarget_ConfigSource(t *testing.T) {
	tgt, err := openTarget(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer tgt.Close()

	assert.NotNil(t, tgt.db)
	assert.Nil(t, tgt.runtime)
}

func TestNewSnapshotStore(t *testing.T) {
	cfg := testConfig()

	store, err := newSnapshotStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &snapshot.FileStore{}, store)

	orig := newStorageClient
	newStorageClient = func(storage.Config) (storage.Client, error) { return new(storageMocks.Client), nil }
	t.Cleanup(func() { newStorageClient = orig })

	cfg.Snapshot.Backend = snapshot.BackendS3
	store, err = newSnapshotStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &snapshot.ObjectStore{}, store)

	cfg.Snapshot.Backend = "ftp"
	_, err = newSnapshotStore(cfg)
	assert.Error(t, err)
}

func TestNewService(t *testing.T) {
	origFs := hostFs
	hostFs = afero.NewMemMapFs()
	t.Cleanup(func() { hostFs = origFs })

	cfg := testConfig()
	tgt, err := openTarget(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer tgt.Close()

	svc, err := newService(cfg, tgt, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg.Proxy.Mode = proxyhost.ModeContainer
	_, err = newService(cfg, tgt, zap.NewNop())
	assert.Error(t, err)
}

func TestNewApp(t *testing.T) {
	cfg := testConfig()
	tgt, err := openTarget(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer tgt.Close()
	require.NoError(t, tgt.db.Exec("CREATE TABLE access_list_client (id INTEGER PRIMARY KEY, address VARCHAR(255))").Error)

	store := snapshot.NewFileStore(afero.NewMemMapFs(), "/snapshot.json")
	svc := accesslist.NewService(tgt.db, store, nil, nil, nil, zap.NewNop())
	require.NoError(t, svc.Prepare(context.Background()))

	app, err := newApp("s3cret", svc, zap.NewNop())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Ray-ID"))

	resp, err = app.Test(httptest.NewRequest("GET", "/accesslist/entries", nil))
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req := httptest.NewRequest("GET", "/accesslist/entries", nil)
	req.Header.Set("X-API-Key", "s3cret")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestConfirmDestructiveAction(t *testing.T) {
	assert.True(t, confirmDestructiveAction(strings.NewReader("yes\n")))
	assert.False(t, confirmDestructiveAction(strings.NewReader("no\n")))
	assert.False(t, confirmDestructiveAction(strings.NewReader("")))

	yesConfirm = true
	t.Cleanup(func() { yesConfirm = false })
	assert.True(t, confirmDestructiveAction(strings.NewReader("")))
}
