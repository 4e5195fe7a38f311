package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/linguflow/linguflow/pkg/logging"
)

// RunFunc is the body a Decorator wraps: a scheduler run (or any
// equivalent unit of work) that produces a result or an error.
type RunFunc func(ctx context.Context) (interface{}, error)

// Decorator wraps a run with observability — tracing spans, metrics —
// without the caller needing to know which backend is in play. A
// Langfuse-backed implementation could sit behind this interface exactly
// as the Prometheus/OpenTelemetry-backed ProviderDecorator does, without
// pkg/invoker changing at all.
//
// A Decorator must never let a tracing or export failure reach the
// caller: fn's own result and error always win.
type Decorator interface {
	DecorateRun(ctx context.Context, interactionID, versionID string, fn RunFunc) (interface{}, error)
}

// ProviderDecorator wraps a run in an OpenTelemetry span and records
// interaction-execution metrics around it.
type ProviderDecorator struct {
	provider *Provider
	logger   *logging.Logger
}

// NewProviderDecorator builds a Decorator backed by provider. logger
// defaults to a fresh logging.Logger when nil.
func NewProviderDecorator(provider *Provider, logger *logging.Logger) *ProviderDecorator {
	if logger == nil {
		logger = logging.New(logging.DefaultConfig())
	}
	return &ProviderDecorator{provider: provider, logger: logger}
}

func (d *ProviderDecorator) DecorateRun(ctx context.Context, interactionID, versionID string, fn RunFunc) (interface{}, error) {
	spanCtx, span := d.startSpan(ctx, interactionID, versionID)

	startTime := time.Now()
	result, err := fn(spanCtx)
	duration := time.Since(startTime)

	d.finishSpan(span, err)
	d.recordMetrics(ctx, interactionID, duration, err == nil)

	return result, err
}

// startSpan opens a tracing span for the run, or returns ctx unchanged
// and a nil span if the provider has no tracer configured.
func (d *ProviderDecorator) startSpan(ctx context.Context, interactionID, versionID string) (context.Context, trace.Span) {
	var spanCtx context.Context
	var span trace.Span

	func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.WithField("panic", r).Warn("telemetry: failed to start span, continuing without tracing")
				spanCtx, span = ctx, nil
			}
		}()

		if d.provider == nil || d.provider.Tracer() == nil {
			spanCtx, span = ctx, nil
			return
		}
		spanCtx, span = d.provider.Tracer().Start(ctx, "interaction.run", trace.WithAttributes(
			attribute.String("interaction.id", interactionID),
			attribute.String("version.id", versionID),
		))
	}()

	return spanCtx, span
}

func (d *ProviderDecorator) finishSpan(span trace.Span, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Warn("telemetry: failed to end span")
		}
	}()

	if span == nil {
		return
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

func (d *ProviderDecorator) recordMetrics(ctx context.Context, interactionID string, duration time.Duration, success bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.WithField("panic", r).Warn("telemetry: failed to record interaction metrics")
		}
	}()

	if d.provider == nil {
		return
	}
	d.provider.RecordInteractionExecution(ctx, interactionID, duration, success, 0)
}
