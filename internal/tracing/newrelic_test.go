package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/backstage/services/campaign/config"
)

func TestDisabledTracerIsNoop(t *testing.T) {
	tr, err := NewTracer(config.TracingConfig{Enabled: true})
	require.NoError(t, err)
	require.Nil(t, tr.App())

	ctx, end := tr.StartTransaction(context.Background(), "job")
	require.NotNil(t, ctx)
	end()

	tr.StartSegment(ctx, "segment")()
	tr.RecordError(ctx, errors.New("ignored"))
	tr.AddAttribute(ctx, "key", "value")
	tr.Close()
}
