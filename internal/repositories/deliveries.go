package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/models"
)

// DeliveryRepository provides access to delivery rows
type DeliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new repository
func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// ListAll returns every delivery, most recently sent first
func (r *DeliveryRepository) ListAll(ctx context.Context) ([]domain.Delivery, error) {
	var rows []models.Delivery
	err := r.db.WithContext(ctx).Order("date_sent desc").Order("created_at desc").Find(&rows).Error
	if err != nil {
		return nil, translate(err, "failed to list deliveries")
	}

	out := make([]domain.Delivery, len(rows))
	for i, row := range rows {
		out[i] = deliveryFromRow(row)
	}
	return out, nil
}

// GetByID returns a single delivery
func (r *DeliveryRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
	var row models.Delivery
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return domain.Delivery{}, translate(err, "failed to get delivery")
	}
	return deliveryFromRow(row), nil
}

// Create inserts a delivery
func (r *DeliveryRepository) Create(ctx context.Context, d *domain.Delivery) error {
	row := deliveryToRow(*d)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "failed to create delivery")
	}
	*d = deliveryFromRow(row)
	return nil
}

// Update writes the given columns of a delivery
func (r *DeliveryRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) error {
	res := r.db.WithContext(ctx).Model(&models.Delivery{}).Where("id = ?", id).Updates(map[string]interface{}(fields))
	if res.Error != nil {
		return translate(res.Error, "failed to update delivery")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a delivery
func (r *DeliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Delivery{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete delivery")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
