package tracing

import (
	"context"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/backstage/services/campaign/config"
)

const shutdownTimeout = 5 * time.Second

// Tracer records transactions and segments. A disabled tracer is a no-op.
type Tracer interface {
	App() *newrelic.Application
	StartTransaction(ctx context.Context, name string) (context.Context, func())
	StartSegment(ctx context.Context, name string) func()
	RecordError(ctx context.Context, err error)
	AddAttribute(ctx context.Context, key string, value interface{})
	Close()
}

// NewRelicTracer implements Tracer using New Relic
type NewRelicTracer struct {
	app     *newrelic.Application
	enabled bool
}

// NewTracer creates a tracer, disabled when tracing is off or no license key is set
func NewTracer(cfg config.TracingConfig) (*NewRelicTracer, error) {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		log.Info().Msg("New Relic tracing disabled")
		return &NewRelicTracer{enabled: false}, nil
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(cfg.DistribTracing),
		newrelic.ConfigAppLogForwardingEnabled(cfg.LogEnabled),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize New Relic")
	}

	return &NewRelicTracer{app: app, enabled: true}, nil
}

// Noop returns a disabled tracer
func Noop() *NewRelicTracer {
	return &NewRelicTracer{enabled: false}
}

// App returns the underlying application, nil when disabled
func (t *NewRelicTracer) App() *newrelic.Application {
	if !t.enabled {
		return nil
	}
	return t.app
}

// StartTransaction starts a background transaction and attaches it to ctx
func (t *NewRelicTracer) StartTransaction(ctx context.Context, name string) (context.Context, func()) {
	if !t.enabled || t.app == nil {
		return ctx, func() {}
	}
	txn := t.app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn.End
}

// StartSegment starts a segment in the transaction carried by ctx
func (t *NewRelicTracer) StartSegment(ctx context.Context, name string) func() {
	txn := t.txn(ctx)
	if txn == nil {
		return func() {}
	}
	return txn.StartSegment(name).End
}

// RecordError records an error in the transaction carried by ctx
func (t *NewRelicTracer) RecordError(ctx context.Context, err error) {
	if txn := t.txn(ctx); txn != nil && err != nil {
		txn.NoticeError(err)
	}
}

// AddAttribute adds an attribute to the transaction carried by ctx
func (t *NewRelicTracer) AddAttribute(ctx context.Context, key string, value interface{}) {
	if txn := t.txn(ctx); txn != nil {
		txn.AddAttribute(key, value)
	}
}

// Close flushes pending data
func (t *NewRelicTracer) Close() {
	if !t.enabled || t.app == nil {
		return
	}
	t.app.Shutdown(shutdownTimeout)
	log.Info().Msg("New Relic tracer shutdown")
}

func (t *NewRelicTracer) txn(ctx context.Context) *newrelic.Transaction {
	if !t.enabled || ctx == nil {
		return nil
	}
	return newrelic.FromContext(ctx)
}
