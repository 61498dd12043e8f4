package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/models"
)

// SnapshotRepository provides access to captured progress snapshots
type SnapshotRepository struct {
	db         *gorm.DB
	readOnlyDB *gorm.DB
}

// NewSnapshotRepository creates a new repository
func NewSnapshotRepository(db *gorm.DB, readOnlyDB *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db, readOnlyDB: readOnlyDB}
}

// Create stores a snapshot
func (r *SnapshotRepository) Create(ctx context.Context, s *domain.ProgressSnapshot) error {
	row := snapshotToRow(*s)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "failed to create progress snapshot")
	}
	*s = snapshotFromRow(row)
	return nil
}

// ListSince returns snapshots captured at or after since, oldest first
func (r *SnapshotRepository) ListSince(ctx context.Context, since time.Time) ([]domain.ProgressSnapshot, error) {
	var rows []models.ProgressSnapshot
	err := r.readOnlyDB.WithContext(ctx).
		Where("captured_at >= ?", since).
		Order("captured_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "failed to list progress snapshots")
	}

	out := make([]domain.ProgressSnapshot, len(rows))
	for i, row := range rows {
		out[i] = snapshotFromRow(row)
	}
	return out, nil
}
