package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/metrics"
	"example.com/backstage/services/campaign/internal/repositories"
)

// Mock repositories for testing
type MockTeamMemberStore struct {
	mock.Mock
}

func (m *MockTeamMemberStore) ListAll(ctx context.Context) ([]domain.TeamMember, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockTeamMemberStore) GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TeamMember), args.Error(1)
}

func (m *MockTeamMemberStore) Create(ctx context.Context, member *domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamMemberStore) Update(ctx context.Context, id uuid.UUID, fields repositories.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockTeamMemberStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDeliveryStore struct {
	mock.Mock
}

func (m *MockDeliveryStore) ListAll(ctx context.Context) ([]domain.Delivery, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Delivery), args.Error(1)
}

func (m *MockDeliveryStore) GetByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Delivery), args.Error(1)
}

func (m *MockDeliveryStore) Create(ctx context.Context, d *domain.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryStore) Update(ctx context.Context, id uuid.UUID, fields repositories.Fields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockDeliveryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) ListAll(ctx context.Context) ([]domain.PaymentConfirmation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PaymentConfirmation), args.Error(1)
}

func (m *MockPaymentStore) Create(ctx context.Context, p *domain.PaymentConfirmation) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRoleStore struct {
	mock.Mock
}

func (m *MockRoleStore) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Role), args.Error(1)
}

func (m *MockRoleStore) SetRole(ctx context.Context, userID string, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Create(ctx context.Context, s *domain.ProgressSnapshot) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSnapshotStore) ListSince(ctx context.Context, since time.Time) ([]domain.ProgressSnapshot, error) {
	args := m.Called(ctx, since)
	return args.Get(0).([]domain.ProgressSnapshot), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev messaging.Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return nil
}

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchMembers(ctx context.Context, term string, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, term, limit)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(ev messaging.Event) bool { return ev.EventType == eventType })
}

func testOptions(pub messaging.Publisher) Options {
	return Options{
		StoreTimeout: time.Second,
		Publisher:    pub,
		Metrics:      metrics.NewMetrics(),
	}
}
