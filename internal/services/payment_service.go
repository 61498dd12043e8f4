package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/repositories"
	"example.com/backstage/services/campaign/internal/snapshot"
)

// PaymentService manages payment confirmations
type PaymentService struct {
	base
	repo     PaymentStore
	members  MemberLookup
	payments *snapshot.Collection[domain.PaymentConfirmation]
}

// NewPaymentService creates a payment service
func NewPaymentService(repo PaymentStore, members MemberLookup, opts Options) *PaymentService {
	b := newBase(opts)
	return &PaymentService{
		base:     b,
		repo:     repo,
		members:  members,
		payments: collection(b, "payment_confirmations", repo.ListAll),
	}
}

// All returns the payment snapshot, most recently confirmed first
func (s *PaymentService) All(ctx context.Context) ([]domain.PaymentConfirmation, error) {
	return s.payments.Snapshot(ctx)
}

// Confirm records a payment. Name, phone and salary default to the member's current values.
func (s *PaymentService) Confirm(ctx context.Context, actor string, in domain.PaymentInput) (domain.PaymentConfirmation, error) {
	defer s.segment(ctx, "PaymentService.Confirm")()

	if in.CelebrityID != uuid.Nil && s.members != nil {
		m, err := s.members.Get(ctx, in.CelebrityID)
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return domain.PaymentConfirmation{}, domain.NewValidationError("celebrity_id", "does not reference a team member")
		case err != nil:
			return domain.PaymentConfirmation{}, err
		}
		in = in.PrefillFrom(m)
	}

	payment, err := domain.NewPaymentConfirmation(actor, in)
	if err != nil {
		return domain.PaymentConfirmation{}, err
	}

	err = s.payments.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()
		return s.repo.Create(ctx, &payment)
	})
	s.record(ctx, "payment.confirm", err)
	if err != nil {
		return domain.PaymentConfirmation{}, err
	}

	log.Info().Str("payment_id", payment.ID.String()).Str("actor", actor).Msg("Payment confirmed")
	s.publish(ctx, messaging.PaymentConfirmed, payment.ID, actor, payment)
	return payment, nil
}

// Delete removes a payment confirmation
func (s *PaymentService) Delete(ctx context.Context, actor string, id uuid.UUID) error {
	defer s.segment(ctx, "PaymentService.Delete")()

	err := s.payments.Mutate(ctx, func(ctx context.Context) error {
		ctx, cancel := s.storeCtx(ctx)
		defer cancel()
		return s.repo.Delete(ctx, id)
	})
	s.record(ctx, "payment.delete", err)
	if err != nil {
		return err
	}

	s.publish(ctx, messaging.PaymentDeleted, id, actor, nil)
	return nil
}
