package services

import (
	"context"
	"io"

	"example.com/backstage/services/campaign/internal/export"
)

// ExportService writes CSV exports of the current snapshots
type ExportService struct {
	members    *TeamService
	deliveries DeliverySource
	payments   PaymentSource
}

// NewExportService creates an export service
func NewExportService(members *TeamService, deliveries DeliverySource, payments PaymentSource) *ExportService {
	return &ExportService{members: members, deliveries: deliveries, payments: payments}
}

// Members writes the members matching term
func (s *ExportService) Members(ctx context.Context, w io.Writer, term string) error {
	members, err := s.members.List(ctx, term)
	if err != nil {
		return err
	}
	return export.WriteMembers(w, members)
}

// Deliveries writes every delivery
func (s *ExportService) Deliveries(ctx context.Context, w io.Writer) error {
	deliveries, err := s.deliveries.All(ctx)
	if err != nil {
		return err
	}
	return export.WriteDeliveries(w, deliveries)
}

// Payments writes every payment confirmation
func (s *ExportService) Payments(ctx context.Context, w io.Writer) error {
	payments, err := s.payments.All(ctx)
	if err != nil {
		return err
	}
	return export.WritePayments(w, payments)
}

