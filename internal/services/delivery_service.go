package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/repositories"
	"example.com/backstage/services/campaign/internal/snapshot"
)

// MemberLookup resolves a member for name and phone snapshots
type MemberLookup interface {
	Get(ctx context.Context, id uuid.UUID) (domain.TeamMember, error)
}

// DeliveryService manages product shipments
type DeliveryService struct {
	base
	repo       DeliveryStore
	members    MemberLookup
	deliveries *snapshot.Collection[domain.Delivery]
}

// NewDeliveryService creates a delivery service
func NewDeliveryService(repo DeliveryStore, members MemberLookup, opts Options) *DeliveryService {
	b := newBase(opts)
	return &DeliveryService{
		base:       b,
		repo:       repo,
		members:    members,
		deliveries: collection(b, "deliveries", repo.ListAll),
	}
}

// All returns the delivery snapshot, most recently sent first
func (s *DeliveryService) All(ctx context.Context) ([]domain.Delivery, error) {
	return s.deliveries.Snapshot(ctx)
}

// Get returns one delivery from the snapshot
func (s *DeliveryService) Get(ctx context.Context, id uuid.UUID) (domain.Delivery, error) {
	deliveries, err := s.deliveries.Snapshot(ctx)
	if err != nil {
		return domain.Delivery{}, err
	}
	for _, d := range deliveries {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Delivery{}, repositories.ErrNotFound
}

// Create records a new delivery
func (s *DeliveryService) Create(ctx context.Context, actor string, in domain.DeliveryInput) (domain.Delivery, error) {
	defer s.segment(ctx, "DeliveryService.Create")()

	in, err := s.prefill(ctx, in)
	if err != nil {
		return domain.Delivery{}, err
	}
	delivery, err := domain.NewDelivery(actor, in)
	if err != nil {
		return domain.Delivery{}, err
	}

	err = s.deliveries.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()
		return s.repo.Create(ctx, &delivery)
	})
	s.record(ctx, "delivery.create", err)
	if err != nil {
		return domain.Delivery{}, err
	}

	s.publish(ctx, messaging.DeliveryCreated, delivery.ID, actor, delivery)
	return delivery, nil
}

// Update replaces every editable field of a delivery
func (s *DeliveryService) Update(ctx context.Context, actor string, id uuid.UUID, in domain.DeliveryInput) (domain.Delivery, error) {
	defer s.segment(ctx, "DeliveryService.Update")()

	in, err := s.prefill(ctx, in)
	if err != nil {
		return domain.Delivery{}, err
	}
	date, err := in.Validate()
	if err != nil {
		return domain.Delivery{}, err
	}

	var updated domain.Delivery
	err = s.deliveries.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()

		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		updated = current.WithEdit(in, date)
		return s.repo.Update(ctx, id, repositories.DeliveryFields(updated))
	})
	s.record(ctx, "delivery.update", err)
	if err != nil {
		return domain.Delivery{}, err
	}

	s.publish(ctx, messaging.DeliveryUpdated, id, actor, updated)
	return updated, nil
}

// Delete removes a delivery
func (s *DeliveryService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	defer s.segment(ctx, "DeliveryService.Delete")()

	err := s.deliveries.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()
		return s.repo.Delete(ctx, id)
	})
	s.record(ctx, "delivery.delete", err)
	if err != nil {
		return err
	}

	s.publish(ctx, messaging.DeliveryDeleted, id, actor, nil)
	return nil
}

// prefill copies the celebrity name from the referenced member when none was given
func (s *DeliveryService) prefill(ctx context.Context, in domain.DeliveryInput) (domain.DeliveryInput, error) {
	if in.CelebID == nil || strings.TrimSpace(in.CelebName) != "" || s.members == nil {
		return in, nil
	}

	m, err := s.members.Get(ctx, *in.CelebID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return in, domain.NewValidationError("celeb_id", "does not reference a team member")
		}
		return in, err
	}
	in.CelebName = m.Description
	return in, nil
}
