package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"allowlist-sync/core/config"
	"allowlist-sync/core/container"
	"allowlist-sync/core/database"
	"allowlist-sync/core/logger"
	"allowlist-sync/core/resolver"
	"allowlist-sync/core/snapshot"
	"allowlist-sync/core/storage"
	"allowlist-sync/feature/accesslist"
	"allowlist-sync/feature/proxyhost"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errContainerAbsent means the proxy manager is not installed on this host.
var errContainerAbsent = errors.New("container not found")

// Seams for tests.
var (
	newRuntime = func(cfg container.Config) (container.Runtime, error) {
		return container.NewDocker(cfg)
	}
	newStorageClient = storage.NewClient
	hostFs           = afero.NewOsFs()
)

// loadSettings loads the configuration from --config-dir and builds the logger.
func loadSettings() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// target is the proxy manager installation a command works on.
type target struct {
	runtime container.Runtime
	db      *gorm.DB
}

// openTarget checks for the proxy manager container, resolves the database
// credentials and connects. It returns errContainerAbsent when the container
// does not exist; nothing has been touched at that point.
func openTarget(ctx context.Context, cfg *config.Config, l *zap.Logger) (*target, error) {
	t := &target{}

	if cfg.Container.Name != "" {
		rt, err := newRuntime(cfg.Container)
		if err != nil {
			return nil, err
		}
		t.runtime = rt
	}

	dbCfg := cfg.Database
	if dbCfg.Source == database.SourceContainer {
		resolved, err := credentialsFromContainer(ctx, t.runtime, cfg)
		if err != nil {
			t.Close()
			return nil, err
		}
		dbCfg = resolved
	}

	l.Debug("Connecting to database",
		zap.String("driver", dbCfg.Driver),
		zap.String("host", dbCfg.Host),
		zap.Int("port", dbCfg.Port),
		zap.String("name", dbCfg.Name),
	)

	db, err := database.Connect(dbCfg)
	if err != nil {
		t.Close()
		return nil, err
	}
	t.db = db

	return t, nil
}

func credentialsFromContainer(ctx context.Context, rt container.Runtime, cfg *config.Config) (database.Config, error) {
	if rt == nil {
		return database.Config{}, fmt.Errorf("database.source=%s requires container.name", database.SourceContainer)
	}
	name := cfg.Container.Name

	exists, err := rt.Exists(ctx, name)
	if err != nil {
		return database.Config{}, fmt.Errorf("failed to query container %s: %w", name, err)
	}
	if !exists {
		return database.Config{}, errContainerAbsent
	}

	env, err := rt.Env(ctx, name)
	if err != nil {
		return database.Config{}, fmt.Errorf("failed to read environment of %s: %w", name, err)
	}

	return database.FromEnv(env, cfg.Database)
}

// Close releases the database and the container runtime.
func (t *target) Close() {
	if t.db != nil {
		_ = database.Close(t.db)
	}
	if c, ok := t.runtime.(io.Closer); ok {
		_ = c.Close()
	}
}

// newSnapshotStore returns the configured snapshot backend.
func newSnapshotStore(cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Snapshot.Backend {
	case snapshot.BackendFile, "":
		return snapshot.NewFileStore(hostFs, cfg.Snapshot.Path), nil
	case snapshot.BackendS3:
		client, err := newStorageClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return snapshot.NewObjectStore(client, cfg.Storage.Bucket, cfg.Snapshot.Object), nil
	default:
		return nil, fmt.Errorf("unsupported snapshot backend %q", cfg.Snapshot.Backend)
	}
}

// newService wires the reconciliation service for t.
func newService(cfg *config.Config, t *target, l *zap.Logger) (*accesslist.Service, error) {
	snapshots, err := newSnapshotStore(cfg)
	if err != nil {
		return nil, err
	}

	r, err := resolver.New(cfg.Resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}

	patcher, reloader, err := proxyhost.New(cfg.Proxy, t.runtime, cfg.Container.Name, hostFs, l)
	if err != nil {
		return nil, err
	}

	return accesslist.NewService(t.db, snapshots, r, patcher, reloader, l), nil
}
