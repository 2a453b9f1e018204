package infrastructure

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-post-service/internal/config"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DB: config.DatabaseConfig{
			Driver:       "sqlite",
			SQLitePath:   filepath.Join(t.TempDir(), "test.db"),
			MaxOpenConns: 4,
			MaxIdleConns: 2,
			AutoMigrate:  true,
		},
		Logger: config.LoggerConfig{Level: "info", SlowQuerySeconds: 0.2},
	}
}

func TestNewDatabase_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	db, err := NewDatabase(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("posts"))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DB.Driver = "mysql"

	_, err := NewDatabase(cfg, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestDialectorFor_Postgres(t *testing.T) {
	d, err := dialectorFor(&config.DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
}

func TestCloseDatabase_Nil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, _ := strings.Cut(mr.Addr(), ":")
	cfg := &config.Config{Redis: config.RedisConfig{Host: host, Port: port, PoolSize: 2}}

	rdb, err := NewRedisClient(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}
