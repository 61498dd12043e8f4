package search

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/internal/domain"
	"example.com/backstage/services/campaign/internal/messaging"
)

// Indexer maintains advertiser documents
type Indexer interface {
	IndexMember(ctx context.Context, m domain.TeamMember) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
}

// Projector keeps the advertiser index in step with member events
type Projector struct {
	indexer Indexer
}

// NewProjector creates a projector writing to indexer
func NewProjector(indexer Indexer) *Projector {
	return &Projector{indexer: indexer}
}

// HandleEvent implements messaging.Handler. Events for other entities are ignored.
func (p *Projector) HandleEvent(ctx context.Context, ev messaging.Event) error {
	switch ev.EventType {
	case messaging.MemberRegistered, messaging.MemberUpdated,
		messaging.MemberProgressUpdated, messaging.MemberProgressReset:
		var m domain.TeamMember
		if err := ev.Decode(&m); err != nil {
			return err
		}
		return p.indexer.IndexMember(ctx, m)
	case messaging.MemberDeleted:
		return p.indexer.DeleteMember(ctx, ev.EntityID)
	default:
		log.Debug().Str("eventType", ev.EventType).Msg("Ignoring event")
		return nil
	}
}
