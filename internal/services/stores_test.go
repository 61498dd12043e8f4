package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"example.com/backstage/services/campaign/config"
	"example.com/backstage/services/campaign/internal/database"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), config.DatabaseConfig{MaxOpenConns: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSnapshotsReadTheirOwnWritesWithLaggingReplica(t *testing.T) {
	ctx := context.Background()
	primary := openSQLite(t)
	// never receives the primary's rows
	replica := openSQLite(t)

	svc := New(NewStores(primary, replica), Options{StoreTimeout: 5 * time.Second})

	m, err := svc.Team.Register(ctx, "admin-1", registration())
	require.NoError(t, err)

	members, err := svc.Team.All(ctx)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, m.ID, members[0].ID)

	in := deliveryInput()
	in.CelebID = &m.ID
	d, err := svc.Deliveries.Create(ctx, "admin-1", in)
	require.NoError(t, err)

	deliveries, err := svc.Deliveries.All(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	require.Equal(t, d.ID, deliveries[0].ID)
}
