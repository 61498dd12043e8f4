package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"example.com/backstage/services/campaign/internal/cache"
	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/metrics"
	"example.com/backstage/services/campaign/internal/repositories"
	"example.com/backstage/services/campaign/internal/snapshot"
	"example.com/backstage/services/campaign/internal/tracing"
)

// DefaultStoreTimeout bounds a store call when none is configured
const DefaultStoreTimeout = 10 * time.Second

// TeamMemberStore persists advertisers
type TeamMemberStore interface {
	ListAll(ctx context.Context) ([]domain.TeamMember, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TeamMember, error)
	Create(ctx context.Context, m *domain.TeamMember) error
	Update(ctx context.Context, id uuid.UUID, fields repositories.Fields) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DeliveryStore persists deliveries
type DeliveryStore interface {
	ListAll(ctx context.Context) ([]domain.Delivery, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Delivery, error)
	Create(ctx context.Context, d *domain.Delivery) error
	Update(ctx context.Context, id uuid.UUID, fields repositories.Fields) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentStore persists payment confirmations
type PaymentStore interface {
	ListAll(ctx context.Context) ([]domain.PaymentConfirmation, error)
	Create(ctx context.Context, p *domain.PaymentConfirmation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleStore persists role assignments
type RoleStore interface {
	GetRole(ctx context.Context, userID string) (domain.Role, error)
	SetRole(ctx context.Context, userID string, role domain.Role) error
}

// SnapshotStore persists progress snapshots
type SnapshotStore interface {
	Create(ctx context.Context, s *domain.ProgressSnapshot) error
	ListSince(ctx context.Context, since time.Time) ([]domain.ProgressSnapshot, error)
}

// MemberSearcher finds member ids by free text
type MemberSearcher interface {
	SearchMembers(ctx context.Context, term string, limit int) ([]uuid.UUID, error)
}

// Stores groups the repositories used by the services
type Stores struct {
	Members    TeamMemberStore
	Deliveries DeliveryStore
	Payments   PaymentStore
	Roles      RoleStore
	Snapshots  SnapshotStore
}

// NewStores builds GORM repositories over the write and read handles.
// Collections served from snapshots always list from the primary.
func NewStores(db, readOnlyDB *gorm.DB) Stores {
	return Stores{
		Members:    repositories.NewTeamMemberRepository(db),
		Deliveries: repositories.NewDeliveryRepository(db),
		Payments:   repositories.NewPaymentRepository(db),
		Roles:      repositories.NewRoleRepository(db, readOnlyDB),
		Snapshots:  repositories.NewSnapshotRepository(db, readOnlyDB),
	}
}

// Options configure the services. Zero values fall back to no-op implementations.
type Options struct {
	StoreTimeout time.Duration
	CacheTTL     time.Duration
	Cache        snapshot.Cache
	Publisher    messaging.Publisher
	Searcher     MemberSearcher
	Tracer       tracing.Tracer
	Metrics      *metrics.Metrics
}

func (o Options) withDefaults() Options {
	if o.StoreTimeout <= 0 {
		o.StoreTimeout = DefaultStoreTimeout
	}
	if o.Publisher == nil {
		o.Publisher = messaging.NoopPublisher{}
	}
	if o.Tracer == nil {
		o.Tracer = tracing.Noop()
	}
	if o.Metrics == nil {
		o.Metrics = metrics.Default()
	}
	return o
}

// Services bundles every service over one set of snapshot collections
type Services struct {
	Team       *TeamService
	Deliveries *DeliveryService
	Payments   *PaymentService
	Roles      *RoleService
	Reports    *ReportService
	Exports    *ExportService
}

// New wires the services together
func New(stores Stores, opts Options) *Services {
	team := NewTeamService(stores.Members, opts.Searcher, opts)
	deliveries := NewDeliveryService(stores.Deliveries, team, opts)
	payments := NewPaymentService(stores.Payments, team, opts)

	return &Services{
		Team:       team,
		Deliveries: deliveries,
		Payments:   payments,
		Roles:      NewRoleService(stores.Roles, opts),
		Reports:    NewReportService(team, deliveries, payments, stores.Snapshots, opts),
		Exports:    NewExportService(team, deliveries, payments),
	}
}

// base carries the concerns shared by every service
type base struct {
	opts Options
}

func newBase(opts Options) base {
	return base{opts: opts.withDefaults()}
}

// storeCtx bounds a single store call
func (b base) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.opts.StoreTimeout)
}

func (b base) segment(ctx context.Context, name string) func() {
	return b.opts.Tracer.StartSegment(ctx, name)
}

// loader wraps a list call so every snapshot fetch is bounded
func loader[T any](b base, list func(ctx context.Context) ([]T, error)) snapshot.Loader[T] {
	return func(ctx context.Context) ([]T, error) {
		ctx, cancel := b.storeCtx(ctx)
		defer cancel()
		return list(ctx)
	}
}

func collection[T any](b base, name string, list func(ctx context.Context) ([]T, error)) *snapshot.Collection[T] {
	return snapshot.New[T](name, loader(b, list), snapshot.Options{
		Cache:    b.opts.Cache,
		CacheKey: cache.SnapshotKey(name),
		TTL:      b.opts.CacheTTL,
		Metrics:  b.opts.Metrics,
	})
}

// publish sends an event. Failures are logged and never returned.
func (b base) publish(ctx context.Context, eventType string, entityID uuid.UUID, actor string, payload interface{}) {
	ev, err := messaging.NewEvent(eventType, entityID, actor, payload)
	if err != nil {
		log.Error().Err(err).Str("eventType", eventType).Msg("Failed to build event")
		return
	}

	ctx, cancel := b.storeCtx(ctx)
	defer cancel()

	if err := b.opts.Publisher.Publish(ctx, ev); err != nil {
		b.opts.Metrics.IncrementCounter(metrics.EventsFailed)
		log.Warn().Err(err).Str("eventType", eventType).Str("entityId", entityID.String()).Msg("Failed to publish event")
		return
	}
	b.opts.Metrics.IncrementCounter(metrics.EventsPublished)
}

// record tracks the outcome of a service operation
func (b base) record(ctx context.Context, op string, err error) {
	b.opts.Metrics.RecordOutcome(op, err)
	if err != nil {
		b.opts.Tracer.RecordError(ctx, err)
	}
}
