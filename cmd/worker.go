package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"example.com/backstage/services/campaign/internal/messaging"
	"example.com/backstage/services/campaign/internal/metrics"
	"example.com/backstage/services/campaign/internal/search"
)

// schedulerActor is recorded as the actor of scheduled snapshots
const schedulerActor = "scheduler"

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long: `Start the background worker that projects campaign events from Azure Service Bus
into the advertiser search index and captures progress snapshots for the trend report`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Set up signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a, err := newApp(cfg, "campaign-worker")
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error().Err(err).Msg("Error releasing resources")
		}
	}()

	g, ctx := errgroup.WithContext(ctx)

	switch {
	case cfg.Azure.QueueConnStr == "":
		log.Warn().Msg("No Service Bus connection configured, search projection disabled")
	case a.search == nil:
		log.Warn().Msg("Elasticsearch disabled, search projection disabled")
	default:
		consumer, err := messaging.NewConsumer(cfg.Azure, cfg.Worker)
		if err != nil {
			return err
		}
		defer func() {
			if err := consumer.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing Service Bus client")
			}
		}()

		handler := a.traced(search.NewProjector(a.search))
		g.Go(func() error {
			log.Info().Str("queue", cfg.Azure.QueueName).Str("index", a.search.Index()).Msg("Starting search projection")
			return consumer.Run(ctx, handler)
		})
	}

	g.Go(func() error {
		scheduler, err := gocron.NewScheduler()
		if err != nil {
			return err
		}

		_, err = scheduler.NewJob(
			gocron.DurationJob(cfg.Worker.SnapshotInterval),
			gocron.NewTask(func() {
				jobCtx, end := a.tracer.StartTransaction(ctx, "worker-capture-snapshot")
				defer end()
				if _, err := a.services.Reports.CaptureSnapshot(jobCtx, schedulerActor); err != nil {
					a.tracer.RecordError(jobCtx, err)
					log.Error().Err(err).Msg("Failed to capture progress snapshot")
				}
			}),
		)
		if err != nil {
			return err
		}

		log.Info().Dur("interval", cfg.Worker.SnapshotInterval).Msg("Starting progress snapshot scheduler")
		scheduler.Start()

		<-ctx.Done()
		return scheduler.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker error")
		return err
	}

	log.Info().Msg("Worker shutting down gracefully")
	return nil
}

// traced runs each consumed event in its own transaction and counts the outcome
func (a *app) traced(h messaging.Handler) messaging.Handler {
	return messaging.HandlerFunc(func(ctx context.Context, ev messaging.Event) error {
		ctx, end := a.tracer.StartTransaction(ctx, "worker-"+ev.EventType)
		defer end()
		a.tracer.AddAttribute(ctx, "entity", ev.Entity())
		a.tracer.AddAttribute(ctx, "entityId", ev.EntityID.String())

		err := h.HandleEvent(ctx, ev)
		a.metrics.RecordOutcome(metrics.EventsConsumed, err)
		if err != nil {
			a.tracer.RecordError(ctx, err)
			return err
		}
		a.metrics.IncrementCounter(metrics.EventsConsumed)
		return nil
	})
}
