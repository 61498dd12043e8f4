package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/metrics"
	"example.com/backstage/services/campaign/internal/models"
)

func TestHooksRecordStoreMetrics(t *testing.T) {
	m := metrics.NewMetrics()
	db, err := Open(sqlite.Open("file::memory:"), config.DatabaseConfig{MaxOpenConns: 1}, m)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	role := models.UserRole{UserID: "user-1", Role: "admin"}
	require.NoError(t, db.Create(&role).Error)

	var found models.UserRole
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&found).Error)
	require.Equal(t, role.ID, found.ID)

	// not found is not counted as a store error
	err = db.Where("user_id = ?", "nobody").First(&models.UserRole{}).Error
	require.Error(t, err)

	require.GreaterOrEqual(t, m.Counter(metrics.StoreQueries), int64(3))
	require.Equal(t, int64(0), m.Counter(metrics.StoreErrors))
	require.Contains(t, m.GetTimers(), "store.create")
	require.Contains(t, m.GetErrorRates(), "store.query")
}

func TestConnectClosesWriteWhenReplicaFails(t *testing.T) {
	var opened []*gorm.DB
	openDB = func(_ gorm.Dialector, cfg config.DatabaseConfig, m *metrics.Metrics) (*gorm.DB, error) {
		if len(opened) == 1 {
			return nil, errors.New("replica unreachable")
		}
		db, err := open(sqlite.Open("file::memory:"), cfg, m)
		if err == nil {
			opened = append(opened, db)
		}
		return db, err
	}
	t.Cleanup(func() { openDB = open })

	dbs, err := Connect(config.DatabaseConfig{DSN: "primary", ReadOnlyDSN: "replica"}, nil)
	require.Error(t, err)
	require.Nil(t, dbs)
	require.Len(t, opened, 1)

	sqlDB, err := opened[0].DB()
	require.NoError(t, err)
	require.Error(t, sqlDB.Ping())
}

func TestConnectSharesHandleWithoutReplica(t *testing.T) {
	openDB = func(_ gorm.Dialector, cfg config.DatabaseConfig, m *metrics.Metrics) (*gorm.DB, error) {
		return open(sqlite.Open("file::memory:"), cfg, m)
	}
	t.Cleanup(func() { openDB = open })

	dbs, err := Connect(config.DatabaseConfig{DSN: "primary"}, nil)
	require.NoError(t, err)
	require.Same(t, dbs.Write, dbs.Read)
	require.NoError(t, dbs.Ping())
	require.NoError(t, dbs.Close())
}
