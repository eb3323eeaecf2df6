package sqlstore_test

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/goliatone/go-assets/core"
	assetsmigrations "github.com/goliatone/go-assets/migrations"
	sqlstore "github.com/goliatone/go-assets/store/sql"
	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type testPersistenceConfig struct {
	driver string
	server string
}

func (c testPersistenceConfig) GetDebug() bool {
	return false
}

func (c testPersistenceConfig) GetDriver() string {
	return c.driver
}

func (c testPersistenceConfig) GetServer() string {
	return c.server
}

func (c testPersistenceConfig) GetPingTimeout() time.Duration {
	return time.Second
}

func (c testPersistenceConfig) GetOtelIdentifier() string {
	return "go-assets-tests"
}

func TestMigrationSmokeApplySQLite(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	for _, table := range []string{"asset_status_cache", "asset_activity"} {
		var tableName string
		if err := client.DB().NewRaw(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?",
			table,
		).Scan(context.Background(), &tableName); err != nil {
			t.Fatalf("query sqlite master for %s: %v", table, err)
		}
		if tableName != table {
			t.Fatalf("expected %s table, got %q", table, tableName)
		}
	}
}

func TestStatusCacheStore_UpsertGetAndDeleteStale(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	store, err := sqlstore.NewStatusCacheStore(client.DB())
	if err != nil {
		t.Fatalf("new status cache store: %v", err)
	}

	if _, found, err := store.Get(ctx, "Assets/scene.unity"); err != nil {
		t.Fatalf("get missing entry: %v", err)
	} else if found {
		t.Fatalf("expected miss for unknown path")
	}

	checkedAt := time.Now().UTC().Truncate(time.Second)
	if err := store.Upsert(ctx, core.StatusEntry{
		Path:      "Assets/scene.unity",
		Editable:  false,
		Reason:    "locked by another user",
		CheckedAt: checkedAt,
	}); err != nil {
		t.Fatalf("insert entry: %v", err)
	}

	entry, found, err := store.Get(ctx, "Assets/scene.unity")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if !found {
		t.Fatalf("expected entry after upsert")
	}
	if entry.Editable || entry.Reason != "locked by another user" {
		t.Fatalf("unexpected entry %+v", entry)
	}

	if err := store.Upsert(ctx, core.StatusEntry{
		Path:      "Assets/scene.unity",
		Editable:  true,
		CheckedAt: checkedAt.Add(time.Minute),
	}); err != nil {
		t.Fatalf("update entry: %v", err)
	}

	entry, found, err = store.Get(ctx, "Assets/scene.unity")
	if err != nil {
		t.Fatalf("get updated entry: %v", err)
	}
	if !found || !entry.Editable {
		t.Fatalf("expected updated editable entry, got found=%v entry=%+v", found, entry)
	}
	if entry.Reason != "" {
		t.Fatalf("expected reason cleared on update, got %q", entry.Reason)
	}

	if err := store.Upsert(ctx, core.StatusEntry{
		Path:      "Assets/old.prefab",
		Editable:  true,
		CheckedAt: checkedAt.Add(-48 * time.Hour),
	}); err != nil {
		t.Fatalf("insert stale entry: %v", err)
	}

	if err := store.DeleteStale(ctx, checkedAt.Add(-time.Hour)); err != nil {
		t.Fatalf("delete stale: %v", err)
	}
	if _, found, err := store.Get(ctx, "Assets/old.prefab"); err != nil {
		t.Fatalf("get pruned entry: %v", err)
	} else if found {
		t.Fatalf("expected stale entry removed")
	}
	if _, found, err := store.Get(ctx, "Assets/scene.unity"); err != nil {
		t.Fatalf("get fresh entry after prune: %v", err)
	} else if !found {
		t.Fatalf("expected fresh entry to survive prune")
	}
}

func TestActivityStore_RecordAndList(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	store, err := sqlstore.NewActivityStore(client.DB())
	if err != nil {
		t.Fatalf("new activity store: %v", err)
	}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []core.AssetActivityEntry{
		{
			Event:     "OnWillSaveAssets",
			Paths:     []string{"Assets/a.mat", "Assets/b.mat"},
			Outcome:   "saved=2",
			Status:    core.ActivityStatusSuccess,
			CreatedAt: base,
		},
		{
			Event:     "OnWillMoveAsset",
			Paths:     []string{"Assets/a.mat"},
			Outcome:   "failed_move",
			Status:    core.ActivityStatusFailure,
			Error:     "backend rejected move",
			CreatedAt: base.Add(time.Minute),
		},
		{
			Event:     "OnWillSaveAssets",
			Paths:     []string{"Assets/c.mat"},
			Outcome:   "saved=1",
			Status:    core.ActivityStatusSuccess,
			CreatedAt: base.Add(2 * time.Minute),
		},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("record %s: %v", entry.Event, err)
		}
	}

	page, err := store.List(ctx, core.AssetActivityFilter{})
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if page.Total != 3 || len(page.Items) != 3 {
		t.Fatalf("expected 3 entries, got total=%d items=%d", page.Total, len(page.Items))
	}
	if page.Items[0].Event != "OnWillMoveAsset" {
		t.Fatalf("expected newest-first ordering, got %q first", page.Items[0].Event)
	}
	if page.HasNext {
		t.Fatalf("expected no next page for full listing")
	}
	if len(page.Items[0].Paths) != 1 || page.Items[0].Paths[0] != "Assets/a.mat" {
		t.Fatalf("expected paths round-trip, got %v", page.Items[0].Paths)
	}

	saves, err := store.List(ctx, core.AssetActivityFilter{Event: "OnWillSaveAssets"})
	if err != nil {
		t.Fatalf("list saves: %v", err)
	}
	if saves.Total != 2 {
		t.Fatalf("expected 2 save entries, got %d", saves.Total)
	}

	failures, err := store.List(ctx, core.AssetActivityFilter{Status: core.ActivityStatusFailure})
	if err != nil {
		t.Fatalf("list failures: %v", err)
	}
	if failures.Total != 1 || failures.Items[0].Error != "backend rejected move" {
		t.Fatalf("unexpected failure listing %+v", failures)
	}

	paged, err := store.List(ctx, core.AssetActivityFilter{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if len(paged.Items) != 2 || !paged.HasNext || paged.NextCursor != "2" {
		t.Fatalf("unexpected first page %+v", paged)
	}
	second, err := store.List(ctx, core.AssetActivityFilter{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if len(second.Items) != 1 || second.HasNext {
		t.Fatalf("unexpected second page %+v", second)
	}

	from := base.Add(30 * time.Second)
	windowed, err := store.List(ctx, core.AssetActivityFilter{From: &from})
	if err != nil {
		t.Fatalf("list windowed: %v", err)
	}
	if windowed.Total != 2 {
		t.Fatalf("expected 2 entries after %s, got %d", from, windowed.Total)
	}
}

func TestActivityStore_RecordRequiresEvent(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	store, err := sqlstore.NewActivityStore(client.DB())
	if err != nil {
		t.Fatalf("new activity store: %v", err)
	}
	if err := store.Record(context.Background(), core.AssetActivityEntry{}); err == nil {
		t.Fatalf("expected error for entry without event")
	}
}

func TestActivityStore_Prune(t *testing.T) {
	ctx := context.Background()
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	store, err := sqlstore.NewActivityStore(client.DB())
	if err != nil {
		t.Fatalf("new activity store: %v", err)
	}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, core.AssetActivityEntry{
			Event:     "OnStatusUpdated",
			Status:    core.ActivityStatusSuccess,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("record entry %d: %v", i, err)
		}
	}

	deleted, err := store.Prune(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 pruned entries, got %d", deleted)
	}

	page, err := store.List(ctx, core.AssetActivityFilter{})
	if err != nil {
		t.Fatalf("list after prune: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", page.Total)
	}
}

func TestRepositoryFactory_BuildStores(t *testing.T) {
	client, cleanup := newSQLiteClient(t)
	defer cleanup()

	factory, err := sqlstore.NewRepositoryFactoryFromPersistence(client)
	if err != nil {
		t.Fatalf("factory from persistence: %v", err)
	}
	if factory.StatusCacheStore() == nil {
		t.Fatalf("expected status cache store")
	}
	if factory.ActivityStore() == nil {
		t.Fatalf("expected activity store")
	}
	if factory.DB() != client.DB() {
		t.Fatalf("expected factory to keep resolved bun db")
	}

	provider, err := factory.BuildStores(nil)
	if err != nil {
		t.Fatalf("rebuild stores: %v", err)
	}
	if provider.StatusCacheStore() != factory.StatusCacheStore() {
		t.Fatalf("expected idempotent store build")
	}

	fromDB, err := sqlstore.NewRepositoryFactoryFromDB(client.DB())
	if err != nil {
		t.Fatalf("factory from db: %v", err)
	}
	if fromDB.ActivityStore() == nil {
		t.Fatalf("expected activity store from db factory")
	}

	if _, err := sqlstore.NewRepositoryFactory().BuildStores("not a client"); err == nil {
		t.Fatalf("expected error for unsupported persistence client")
	}
	if _, err := sqlstore.NewRepositoryFactory().BuildStores(nil); err == nil {
		t.Fatalf("expected error for nil persistence client")
	}
}

func newSQLiteClient(t *testing.T) (*persistence.Client, func()) {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:assets-test-%d?mode=memory&cache=shared&_foreign_keys=on",
		time.Now().UnixNano(),
	)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := testPersistenceConfig{
		driver: "sqlite3",
		server: dsn,
	}
	client, err := persistence.New(cfg, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		t.Fatalf("new persistence client: %v", err)
	}

	ctx := context.Background()
	_, err = assetsmigrations.Register(ctx, func(_ context.Context, dialect string, _ string, fsys fs.FS) error {
		if dialect != assetsmigrations.DialectSQLite {
			return nil
		}
		client.RegisterSQLMigrations(fsys)
		return nil
	}, assetsmigrations.WithValidationTargets(assetsmigrations.DialectSQLite))
	if err != nil {
		_ = client.Close()
		t.Fatalf("register migrations: %v", err)
	}
	if err := client.Migrate(ctx); err != nil {
		_ = client.Close()
		t.Fatalf("migrate: %v", err)
	}

	return client, func() {
		_ = client.Close()
	}
}
