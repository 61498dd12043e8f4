package messaging

import (
	"context"
	"encoding/json"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/config"
)

// Publisher sends domain events
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NewPublisher returns a Service Bus publisher when a connection string is configured, otherwise a no-op
func NewPublisher(cfg config.AzureConfig, source string) (Publisher, error) {
	if cfg.QueueConnStr == "" {
		log.Info().Msg("Azure Service Bus not configured, events will not be published")
		return NoopPublisher{}, nil
	}
	return NewServiceBusPublisher(cfg, source)
}

// NoopPublisher drops every event
type NoopPublisher struct{}

// Publish implements Publisher
func (NoopPublisher) Publish(ctx context.Context, ev Event) error {
	log.Debug().Str("eventType", ev.EventType).Msg("Dropping event, no bus configured")
	return nil
}

// Close implements Publisher
func (NoopPublisher) Close() error { return nil }

// ServiceBusPublisher sends events to an Azure Service Bus queue
type ServiceBusPublisher struct {
	client *azservicebus.Client
	sender *azservicebus.Sender
	source string
}

// NewServiceBusPublisher creates a sender for the configured queue
func NewServiceBusPublisher(cfg config.AzureConfig, source string) (*ServiceBusPublisher, error) {
	client, err := azservicebus.NewClientFromConnectionString(cfg.QueueConnStr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus client")
	}

	sender, err := client.NewSender(cfg.QueueName, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus sender")
	}

	return &ServiceBusPublisher{client: client, sender: sender, source: source}, nil
}

// Publish sends the event as a JSON message
func (p *ServiceBusPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "failed to marshal event")
	}

	id := ev.ID.String()
	contentType := "application/json"
	subject := ev.EventType
	msg := &azservicebus.Message{
		MessageID:   &id,
		ContentType: &contentType,
		Subject:     &subject,
		Body:        data,
		ApplicationProperties: map[string]interface{}{
			"source":    p.source,
			"eventType": ev.EventType,
		},
	}

	if err := p.sender.SendMessage(ctx, msg, nil); err != nil {
		return errors.Wrap(err, "failed to send event")
	}
	return nil
}

// Close closes the sender and client
func (p *ServiceBusPublisher) Close() error {
	if p.sender != nil {
		if err := p.sender.Close(context.Background()); err != nil {
			return err
		}
	}
	if p.client != nil {
		return p.client.Close(context.Background())
	}
	return nil
}
