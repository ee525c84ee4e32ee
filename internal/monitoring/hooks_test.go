package monitoring

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsObservabilityHook(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	hook := NewMetricsObservabilityHook(collector)
	ctx := context.Background()
	metadata := map[string]any{"schema": "album", "count": 2}

	hook.OnProcessStart(ctx, "DumpMany", metadata)
	hook.OnProcessComplete(ctx, "DumpMany", 3*time.Millisecond, nil, metadata)
	hook.OnProcessStart(ctx, "Dump", metadata)
	hook.OnError(ctx, "Dump", errors.New("boom"), metadata)
	hook.OnProcessComplete(ctx, "Dump", time.Millisecond, errors.New("boom"), metadata)

	base := map[string]string{"operation": "DumpMany", "schema": "album"}
	assert.Equal(t, int64(1), collector.GetCounter("fieldx.process.started", base))
	assert.Equal(t, int64(2), collector.GetCounter("fieldx.records.dumped", base))
	assert.Equal(t, int64(1), collector.GetCounter("fieldx.process.succeeded",
		map[string]string{"operation": "DumpMany", "schema": "album", "status": "success"}))
	assert.Equal(t, []time.Duration{3 * time.Millisecond}, collector.GetTimings("fieldx.process.duration", base))

	assert.Equal(t, int64(1), collector.GetCounter("fieldx.process.failed",
		map[string]string{"operation": "Dump", "schema": "album", "status": "error"}))
	assert.Equal(t, int64(1), collector.GetCounter("fieldx.errors",
		map[string]string{"operation": "Dump", "error": "*errors.errorString"}))
}

func TestLoggingObservabilityHook(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	hook := NewLoggingObservabilityHook(logger)
	ctx := context.Background()
	metadata := map[string]any{"schema": "dog", "operation_id": "abc"}

	hook.OnProcessStart(ctx, "Dump", metadata)
	hook.OnProcessComplete(ctx, "Dump", time.Millisecond, nil, metadata)
	hook.OnProcessComplete(ctx, "Dump", time.Millisecond, errors.New("missing name"), metadata)

	out := buf.String()
	assert.Contains(t, out, "operation started")
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, "schema=dog")
	assert.Contains(t, out, "operation_id=abc")
	assert.Contains(t, out, `error="missing name"`)
}

func TestCompositeObservabilityHook(t *testing.T) {
	first := NewInMemoryMetricsCollector()
	second := NewInMemoryMetricsCollector()
	hook := NewCompositeObservabilityHook(NewMetricsObservabilityHook(first), NewMetricsObservabilityHook(second), &NoOpObservabilityHook{})

	hook.OnProcessStart(context.Background(), "Dump", map[string]any{"schema": "dog"})

	tags := map[string]string{"operation": "Dump", "schema": "dog"}
	assert.Equal(t, int64(1), first.GetCounter("fieldx.process.started", tags))
	assert.Equal(t, int64(1), second.GetCounter("fieldx.process.started", tags))
}
