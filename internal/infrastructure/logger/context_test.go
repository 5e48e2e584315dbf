package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func contextWithValidSpan(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		l := zap.NewExample()
		ctx := WithContext(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))
	})

	t.Run("falls back to nop", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.NotPanics(t, func() { l.Info("ignored") })
	})

	t.Run("ignores wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), loggerKey, "not a logger")
		assert.NotNil(t, FromContext(ctx))
	})
}

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetDealerID(ctx))

	ctx = WithDealerID(WithRequestID(ctx, "req-1"), "dealer-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "dealer-1", GetDealerID(ctx))

	ctx = WithRequestID(ctx, "req-2")
	assert.Equal(t, "req-2", GetRequestID(ctx))
}

func TestWithTraceContext(t *testing.T) {
	t.Run("no span returns same logger", func(t *testing.T) {
		base := zap.NewNop()
		assert.Same(t, base, WithTraceContext(context.Background(), base))
	})

	t.Run("valid span adds ids", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		WithTraceContext(contextWithValidSpan(t), zap.New(core)).Info("traced")

		fields := recorded.All()[0].ContextMap()
		assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
		assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
	})
}

func TestL_EnrichesWithContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := WithContext(contextWithValidSpan(t), zap.New(core))
	ctx = WithRequestID(ctx, "req-42")
	ctx = WithDealerID(ctx, "7c1f0a52-8d7e-4c1b-9d57-3f0b6a1c2e11")

	L(ctx).Info("expense created", zap.String("expense_id", "e-1"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "7c1f0a52-8d7e-4c1b-9d57-3f0b6a1c2e11", fields["dealer_id"])
	assert.Equal(t, "e-1", fields["expense_id"])
	assert.Contains(t, fields, "trace_id")
}

func TestEnrich_EmptyContext(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	Enrich(context.Background(), zap.New(core)).Info("plain")

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Empty(t, logs[0].Context)
}

func TestEnrich_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		Enrich(WithRequestID(context.Background(), "r"), nil).Info("nop")
	})
}
