package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/metrics"
)

// MaxTrendMonths caps the trend window
const MaxTrendMonths = 24

// MemberSource provides the member snapshot
type MemberSource interface {
	All(ctx context.Context) ([]domain.TeamMember, error)
}

// DeliverySource provides the delivery snapshot
type DeliverySource interface {
	All(ctx context.Context) ([]domain.Delivery, error)
}

// PaymentSource provides the payment snapshot
type PaymentSource interface {
	All(ctx context.Context) ([]domain.PaymentConfirmation, error)
}

// ReportService computes dashboard and analytics views over the snapshots
type ReportService struct {
	base
	members    MemberSource
	deliveries DeliverySource
	payments   PaymentSource
	snapshots  SnapshotStore
	now        func() time.Time
}

// NewReportService creates a report service
func NewReportService(members MemberSource, deliveries DeliverySource, payments PaymentSource, snapshots SnapshotStore, opts Options) *ReportService {
	b := newBase(opts)
	return &ReportService{
		base:       b,
		members:    members,
		deliveries: deliveries,
		payments:   payments,
		snapshots:  snapshots,
		now:        time.Now,
	}
}

// Dashboard returns the landing page aggregates
func (s *ReportService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	defer s.segment(ctx, "ReportService.Dashboard")()

	members, err := s.members.All(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	deliveries, err := s.deliveries.All(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	payments, err := s.payments.All(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}

	s.opts.Metrics.SetGauge("campaign.members", int64(len(members)))
	return domain.BuildDashboard(members, deliveries, payments), nil
}

// Report returns the analytics view with a trend over the last months
func (s *ReportService) Report(ctx context.Context, months int) (domain.Report, error) {
	defer s.segment(ctx, "ReportService.Report")()

	if months <= 0 {
		months = domain.DefaultTrendMonths
	}
	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	members, err := s.members.All(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	snapshots, err := s.snapshots.ListSince(storeCtx, TrendWindowStart(s.now(), months))
	if err != nil {
		return domain.Report{}, err
	}

	return domain.BuildReport(members, snapshots, months), nil
}

// CaptureSnapshot stores the current aggregate summary as a trend point
func (s *ReportService) CaptureSnapshot(ctx context.Context, actor string) (domain.ProgressSnapshot, error) {
	defer s.segment(ctx, "ReportService.CaptureSnapshot")()

	members, err := s.members.All(ctx)
	if err != nil {
		return domain.ProgressSnapshot{}, err
	}

	snap := domain.CaptureSnapshot(members, s.now())

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	err = s.snapshots.Create(storeCtx, &snap)
	s.record(ctx, "report.capture", err)
	if err != nil {
		return domain.ProgressSnapshot{}, err
	}

	s.opts.Metrics.IncrementCounter(metrics.SnapshotsCaptured)
	log.Info().Str("snapshot_id", snap.ID.String()).Int("members", snap.Members).Msg("Progress snapshot captured")
	s.publish(ctx, messaging.SnapshotCaptured, snap.ID, actor, snap)
	return snap, nil
}

// TrendWindowStart returns the first instant of the oldest month in a window ending at now
func TrendWindowStart(now time.Time, months int) time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(months - 1), 0)
}
