package messaging

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Event types published after successful mutations
const (
	MemberRegistered      = "campaign.member.registered"
	MemberUpdated         = "campaign.member.updated"
	MemberProgressUpdated = "campaign.member.progress_updated"
	MemberProgressReset   = "campaign.member.progress_reset"
	MemberDeleted         = "campaign.member.deleted"
	DeliveryCreated       = "campaign.delivery.created"
	DeliveryUpdated       = "campaign.delivery.updated"
	DeliveryDeleted       = "campaign.delivery.deleted"
	PaymentConfirmed      = "campaign.payment.confirmed"
	PaymentDeleted        = "campaign.payment.deleted"
	SnapshotCaptured      = "campaign.snapshot.captured"
)

// Event is the envelope sent over the bus
type Event struct {
	ID         uuid.UUID       `json:"id"`
	EventType  string          `json:"eventType"`
	EntityID   uuid.UUID       `json:"entityId"`
	ActorID    string          `json:"actorId,omitempty"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// NewEvent builds an event with payload encoded as its data
func NewEvent(eventType string, entityID uuid.UUID, actorID string, payload interface{}) (Event, error) {
	ev := Event{
		ID:         uuid.New(),
		EventType:  eventType,
		EntityID:   entityID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Event{}, errors.Wrap(err, "failed to marshal event payload")
		}
		ev.Data = data
	}
	return ev, nil
}

// Entity returns the entity segment of the event type, e.g. "member"
func (e Event) Entity() string {
	parts := strings.Split(e.EventType, ".")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

// Decode unmarshals the event data into dst
func (e Event) Decode(dst interface{}) error {
	if len(e.Data) == 0 {
		return errors.Errorf("event %s has no data", e.EventType)
	}
	return errors.Wrap(json.Unmarshal(e.Data, dst), "failed to unmarshal event data")
}
