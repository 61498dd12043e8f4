package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/models"
)

// PaymentRepository provides access to payment confirmation rows
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// ListAll returns every payment, most recently confirmed first
func (r *PaymentRepository) ListAll(ctx context.Context) ([]domain.PaymentConfirmation, error) {
	var rows []models.PaymentConfirmation
	err := r.db.WithContext(ctx).Order("confirmed_at desc").Find(&rows).Error
	if err != nil {
		return nil, translate(err, "failed to list payment confirmations")
	}

	out := make([]domain.PaymentConfirmation, len(rows))
	for i, row := range rows {
		out[i] = paymentFromRow(row)
	}
	return out, nil
}

// Create inserts a payment. The confirmation time is stamped by the store.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.PaymentConfirmation) error {
	row := paymentToRow(*p)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return translate(err, "failed to create payment confirmation")
	}
	*p = paymentFromRow(row)
	return nil
}

// Delete removes a payment
func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.PaymentConfirmation{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, "failed to delete payment confirmation")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
