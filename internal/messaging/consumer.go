package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/config"
)

// Handler processes a single event
type Handler interface {
	HandleEvent(ctx context.Context, ev Event) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx context.Context, ev Event) error

// HandleEvent implements Handler
func (f HandlerFunc) HandleEvent(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Dispatch decodes a message body and passes it to the handler
func Dispatch(ctx context.Context, body []byte, h Handler) error {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return errors.Wrap(err, "error unmarshalling message")
	}
	if ev.EventType == "" {
		return errors.New("message has no event type")
	}

	log.Debug().Str("eventType", ev.EventType).Str("entityId", ev.EntityID.String()).Msg("Processing event")
	return h.HandleEvent(ctx, ev)
}

// Consumer receives events from an Azure Service Bus queue
type Consumer struct {
	client    *azservicebus.Client
	queueName string
	batch     int
	retryWait time.Duration
}

// NewConsumer creates a consumer for the configured queue
func NewConsumer(cfg config.AzureConfig, worker config.WorkerConfig) (*Consumer, error) {
	if cfg.QueueConnStr == "" {
		return nil, errors.New("Azure Service Bus connection string is empty")
	}

	client, err := azservicebus.NewClientFromConnectionString(cfg.QueueConnStr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Service Bus client")
	}
	batch := worker.ConsumeBatch
	if batch <= 0 {
		batch = 10
	}
	wait := worker.ConsumeWait
	if wait <= 0 {
		wait = 5 * time.Second
	}

	return &Consumer{client: client, queueName: cfg.QueueName, batch: batch, retryWait: wait}, nil
}

// Run receives batches until ctx is cancelled. Failed messages are abandoned for redelivery.
func (c *Consumer) Run(ctx context.Context, h Handler) error {
	receiver, err := c.client.NewReceiverForQueue(c.queueName, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create Service Bus receiver")
	}
	defer func() {
		if err := receiver.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("Error closing receiver")
		}
	}()

	log.Info().Str("queue", c.queueName).Msg("Starting event consumer")

	for {
		messages, err := receiver.ReceiveMessages(ctx, c.batch, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Error().Err(err).Dur("retry_in", c.retryWait).Msg("Error receiving messages")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryWait):
			}
			continue
		}

		for _, message := range messages {
			if err := Dispatch(ctx, message.Body, h); err != nil {
				log.Error().Err(err).Str("messageId", message.MessageID).Msg("Error processing message")
				if err := receiver.AbandonMessage(context.Background(), message, nil); err != nil {
					log.Error().Err(err).Msg("Failed to abandon message")
				}
				continue
			}

			if err := receiver.CompleteMessage(context.Background(), message, nil); err != nil {
				log.Error().Err(err).Msg("Failed to complete message")
			}
		}
	}
}

// Close closes the client
func (c *Consumer) Close() error {
	return c.client.Close(context.Background())
}
