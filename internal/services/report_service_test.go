package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/metrics"
)

type staticMembers []domain.TeamMember

func (s staticMembers) All(context.Context) ([]domain.TeamMember, error) { return s, nil }

type staticDeliveries []domain.Delivery

func (s staticDeliveries) All(context.Context) ([]domain.Delivery, error) { return s, nil }

type staticPayments []domain.PaymentConfirmation

func (s staticPayments) All(context.Context) ([]domain.PaymentConfirmation, error) { return s, nil }

func TestTrendWindowStart(t *testing.T) {
	now := time.Date(2024, time.March, 17, 15, 4, 0, 0, time.UTC)

	require.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), TrendWindowStart(now, 1))
	require.Equal(t, time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC), TrendWindowStart(now, 6))
}

func TestDashboardCountsEverySnapshot(t *testing.T) {
	members := staticMembers{storedMember(true, true), storedMember(true, false)}
	svc := NewReportService(members, staticDeliveries{{}, {}, {}}, staticPayments{{}}, new(MockSnapshotStore), testOptions(nil))

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, d.Summary.TotalMembers)
	require.Equal(t, 3, d.Summary.TotalCompleted)
	require.Equal(t, 4, d.Summary.TotalTarget)
	require.Equal(t, 1, d.Summary.TargetReached)
	require.Equal(t, 3, d.TotalDeliveries)
	require.Equal(t, 1, d.TotalPayments)
}

func TestReportClampsMonths(t *testing.T) {
	snaps := new(MockSnapshotStore)
	svc := NewReportService(staticMembers{}, staticDeliveries{}, staticPayments{}, snaps, testOptions(nil))
	now := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	snaps.On("ListSince", mock.Anything, TrendWindowStart(now, domain.DefaultTrendMonths)).Return([]domain.ProgressSnapshot{}, nil).Once()
	snaps.On("ListSince", mock.Anything, TrendWindowStart(now, MaxTrendMonths)).Return([]domain.ProgressSnapshot{}, nil).Once()

	_, err := svc.Report(context.Background(), 0)
	require.NoError(t, err)
	_, err = svc.Report(context.Background(), 100)
	require.NoError(t, err)
	snaps.AssertExpectations(t)
}

func TestCaptureSnapshotStoresSummary(t *testing.T) {
	snaps := new(MockSnapshotStore)
	pub := new(MockPublisher)
	opts := testOptions(pub)
	svc := NewReportService(staticMembers{storedMember(true, false)}, staticDeliveries{}, staticPayments{}, snaps, opts)
	now := time.Date(2024, time.March, 17, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	snaps.On("Create", mock.Anything, mock.AnythingOfType("*domain.ProgressSnapshot")).Return(nil).Once()
	pub.On("Publish", mock.Anything, eventOfType(messaging.SnapshotCaptured)).Return(nil).Once()

	snap, err := svc.CaptureSnapshot(context.Background(), "scheduler")
	require.NoError(t, err)
	require.Equal(t, 1, snap.Members)
	require.Equal(t, 1, snap.TotalCompleted)
	require.Equal(t, 2, snap.TotalTarget)
	require.Equal(t, now, snap.CapturedAt)
	require.Equal(t, int64(1), opts.Metrics.Counter(metrics.SnapshotsCaptured))
	snaps.AssertExpectations(t)
	pub.AssertExpectations(t)
}
