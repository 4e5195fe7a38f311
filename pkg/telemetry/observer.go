package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/linguflow/linguflow/pkg/observer"
)

// RunObserver implements observer.Observer, turning the scheduler's Event
// stream into OpenTelemetry spans and metrics. Registering it on a
// scheduler's observer manager is an alternative to pkg/telemetry's
// Decorator for callers that already emit their own observer.Event
// stream and want span/metric recording alongside it rather than wrapping
// the run call itself.
type RunObserver struct {
	provider *Provider

	runSpans  map[string]trace.Span
	nodeSpans map[string]trace.Span
}

// NewRunObserver builds an observer.Observer backed by provider.
func NewRunObserver(provider *Provider) *RunObserver {
	return &RunObserver{
		provider:  provider,
		runSpans:  make(map[string]trace.Span),
		nodeSpans: make(map[string]trace.Span),
	}
}

func (o *RunObserver) OnEvent(ctx context.Context, event observer.Event) {
	switch event.Type {
	case observer.EventRunStart:
		o.handleRunStart(ctx, event)
	case observer.EventRunEnd:
		o.handleRunEnd(ctx, event)
	case observer.EventNodeStart:
		o.handleNodeStart(ctx, event)
	case observer.EventNodeSuccess:
		o.handleNodeEnd(ctx, event, true)
	case observer.EventNodeFailure:
		o.handleNodeEnd(ctx, event, false)
	}
}

func (o *RunObserver) handleRunStart(ctx context.Context, event observer.Event) {
	if o.provider == nil || o.provider.Tracer() == nil {
		return
	}
	_, span := o.provider.Tracer().Start(ctx, "interaction.run",
		trace.WithAttributes(
			attribute.String("interaction.id", event.InteractionID),
			attribute.String("version.id", event.VersionID),
		),
	)
	o.runSpans[event.InteractionID] = span
}

func (o *RunObserver) handleRunEnd(ctx context.Context, event observer.Event) {
	success := event.Status == observer.StatusSuccess
	o.provider.RecordInteractionExecution(ctx, event.InteractionID, event.ElapsedTime, success, 0)

	span, ok := o.runSpans[event.InteractionID]
	if !ok {
		return
	}
	if event.Error != nil {
		span.RecordError(event.Error)
		span.SetStatus(codes.Error, event.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
	delete(o.runSpans, event.InteractionID)
}

func (o *RunObserver) handleNodeStart(ctx context.Context, event observer.Event) {
	if o.provider == nil || o.provider.Tracer() == nil {
		return
	}
	spanCtx := ctx
	if runSpan, ok := o.runSpans[event.InteractionID]; ok {
		spanCtx = trace.ContextWithSpan(ctx, runSpan)
	}
	_, span := o.provider.Tracer().Start(spanCtx, "node.execute",
		trace.WithAttributes(
			attribute.String("node.id", event.NodeID),
			attribute.String("node.type", event.NodeType),
			attribute.String("interaction.id", event.InteractionID),
		),
	)
	o.nodeSpans[nodeKey(event)] = span
}

func (o *RunObserver) handleNodeEnd(ctx context.Context, event observer.Event, success bool) {
	o.provider.RecordNodeExecution(ctx, event.NodeID, event.NodeType, event.ElapsedTime, success)

	key := nodeKey(event)
	span, ok := o.nodeSpans[key]
	if !ok {
		return
	}
	if event.Error != nil {
		span.RecordError(event.Error)
		span.SetStatus(codes.Error, event.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
	delete(o.nodeSpans, key)
}

// nodeKey scopes a node span to its run, since node IDs repeat across
// concurrent interactions.
func nodeKey(event observer.Event) string {
	return event.InteractionID + "/" + event.NodeID
}
