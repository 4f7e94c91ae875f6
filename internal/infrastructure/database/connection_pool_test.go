package database

import (
	"context"
	"testing"

	"logistics-http-service/internal/domain/models"
	"logistics-http-service/internal/infrastructure/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
)

func newMockPool(t *testing.T) (*ConnectionPool, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	// gorm.Open 和 ConfigurePool 各 ping 一次
	mock.ExpectPing()
	mock.ExpectPing()
	dialector := mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true})
	pool, err := OpenConnectionPool(dialector, &config.Config{DBMaxOpenConns: 7, DBMaxIdleConns: 3, DBLogLevel: "silent"})
	require.NoError(t, err)
	return pool, mock
}

func TestOpenConnectionPoolAppliesLimits(t *testing.T) {
	pool, mock := newMockPool(t)

	assert.Equal(t, "mysql", pool.Driver)
	stats, err := pool.Stats()
	require.NoError(t, err)
	assert.Equal(t, 7, stats["max_open_connections"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheckPingsDatabase(t *testing.T) {
	pool, mock := newMockPool(t)

	mock.ExpectPing()
	assert.NoError(t, pool.HealthCheck(context.Background()))

	mock.ExpectPing().WillReturnError(assert.AnError)
	assert.ErrorIs(t, pool.HealthCheck(context.Background()), assert.AnError)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMigrateDropRecreatesTables(t *testing.T) {
	pool, err := NewConnectionPool(&config.Config{
		DBDriver:       "sqlite",
		DBPath:         "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		DBMaxOpenConns: 1,
		DBLogLevel:     "silent",
	})
	require.NoError(t, err)
	defer pool.Close()

	db := pool.GetDB()
	require.NoError(t, Migrate(db, "auto"))
	require.NoError(t, db.Create(&models.Product{ProductType: "rice", Stock: 3, Price: 1.5}).Error)

	require.NoError(t, Migrate(db, "drop"))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.True(t, db.Migrator().HasTable(&models.OrderProduct{}))

	assert.Error(t, Migrate(db, "alter"))
}
