// Package trace records navigation commands as OpenTelemetry spans.
//
// Engine wraps another engine.Engine; each forwarded command becomes one span
// named "navigation.<command>" carrying the component id and layout kind.
// Results and errors pass through unchanged.
package trace

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"navfacade/internal/engine"
	"navfacade/internal/layout"
)

const instrumentationName = "navfacade/navigation"

// Attribute keys set on navigation spans.
const (
	AttrComponentID = attribute.Key("navigation.component.id")
	AttrLayoutKind  = attribute.Key("navigation.layout.kind")
	AttrLayoutName  = attribute.Key("navigation.layout.name")
	AttrChildren    = attribute.Key("navigation.children")
	AttrResult      = attribute.Key("navigation.result")
)

// Engine decorates an engine with tracing.
type Engine struct {
	next   engine.Engine
	tracer oteltrace.Tracer
}

var _ engine.Engine = (*Engine)(nil)

// Wrap returns next decorated with spans from tracer.
func Wrap(next engine.Engine, tracer oteltrace.Tracer) *Engine {
	return &Engine{next: next, tracer: tracer}
}

func (e *Engine) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return e.tracer.Start(ctx, "navigation."+op, oteltrace.WithAttributes(attrs...))
}

// finish records the outcome on span and ends it.
func finish(span oteltrace.Span, result string, err error) {
	if result != "" {
		span.SetAttributes(AttrResult.String(result))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func layoutAttrs(l layout.Layout) []attribute.KeyValue {
	attrs := []attribute.KeyValue{AttrLayoutKind.String(l.Kind())}
	switch {
	case l.Component != nil:
		attrs = append(attrs, AttrLayoutName.String(l.Component.Name))
	case l.ExternalComponent != nil:
		attrs = append(attrs, AttrLayoutName.String(l.ExternalComponent.Name.String()))
	case l.Stack != nil:
		attrs = append(attrs, AttrChildren.Int(len(l.Stack.Children)))
	case l.Sheet != nil:
		attrs = append(attrs, AttrChildren.Int(len(l.Sheet.Children)))
	}
	return attrs
}

func (e *Engine) Push(ctx context.Context, componentID string, l layout.Layout) (string, error) {
	ctx, span := e.start(ctx, "push", append(layoutAttrs(l), AttrComponentID.String(componentID))...)
	id, err := e.next.Push(ctx, componentID, l)
	finish(span, id, err)
	return id, err
}

func (e *Engine) Pop(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	ctx, span := e.start(ctx, "pop", AttrComponentID.String(componentID))
	id, err := e.next.Pop(ctx, componentID, mergeOptions)
	finish(span, id, err)
	return id, err
}

func (e *Engine) PopTo(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	ctx, span := e.start(ctx, "popTo", AttrComponentID.String(componentID))
	id, err := e.next.PopTo(ctx, componentID, mergeOptions)
	finish(span, id, err)
	return id, err
}

func (e *Engine) PopToRoot(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	ctx, span := e.start(ctx, "popToRoot", AttrComponentID.String(componentID))
	id, err := e.next.PopToRoot(ctx, componentID, mergeOptions)
	finish(span, id, err)
	return id, err
}

func (e *Engine) SetStackRoot(ctx context.Context, componentID string, children []layout.Layout) (string, error) {
	ctx, span := e.start(ctx, "setStackRoot", AttrComponentID.String(componentID), AttrChildren.Int(len(children)))
	id, err := e.next.SetStackRoot(ctx, componentID, children)
	finish(span, id, err)
	return id, err
}

func (e *Engine) ShowModal(ctx context.Context, l layout.Layout) (string, error) {
	ctx, span := e.start(ctx, "showModal", layoutAttrs(l)...)
	id, err := e.next.ShowModal(ctx, l)
	finish(span, id, err)
	return id, err
}

func (e *Engine) DismissModal(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	ctx, span := e.start(ctx, "dismissModal", AttrComponentID.String(componentID))
	id, err := e.next.DismissModal(ctx, componentID, mergeOptions)
	finish(span, id, err)
	return id, err
}

func (e *Engine) DismissAllModals(ctx context.Context, mergeOptions layout.Options) (string, error) {
	ctx, span := e.start(ctx, "dismissAllModals")
	id, err := e.next.DismissAllModals(ctx, mergeOptions)
	finish(span, id, err)
	return id, err
}

func (e *Engine) ShowOverlay(ctx context.Context, l layout.Layout) (string, error) {
	ctx, span := e.start(ctx, "showOverlay", layoutAttrs(l)...)
	id, err := e.next.ShowOverlay(ctx, l)
	finish(span, id, err)
	return id, err
}

func (e *Engine) DismissOverlay(ctx context.Context, componentID string) (string, error) {
	ctx, span := e.start(ctx, "dismissOverlay", AttrComponentID.String(componentID))
	id, err := e.next.DismissOverlay(ctx, componentID)
	finish(span, id, err)
	return id, err
}

func (e *Engine) DismissAllOverlays(ctx context.Context) (string, error) {
	ctx, span := e.start(ctx, "dismissAllOverlays")
	id, err := e.next.DismissAllOverlays(ctx)
	finish(span, id, err)
	return id, err
}

func (e *Engine) SetRoot(ctx context.Context, root layout.Root) (string, error) {
	ctx, span := e.start(ctx, "setRoot", layoutAttrs(root.Root)...)
	id, err := e.next.SetRoot(ctx, root)
	finish(span, id, err)
	return id, err
}

func (e *Engine) MergeOptions(componentID string, opts layout.Options) error {
	_, span := e.start(context.Background(), "mergeOptions", AttrComponentID.String(componentID))
	err := e.next.MergeOptions(componentID, opts)
	finish(span, "", err)
	return err
}

func (e *Engine) UpdateProps(componentID string, props any) error {
	_, span := e.start(context.Background(), "updateProps", AttrComponentID.String(componentID))
	err := e.next.UpdateProps(componentID, props)
	finish(span, "", err)
	return err
}

func (e *Engine) SetDefaultOptions(opts layout.Options) {
	_, span := e.start(context.Background(), "setDefaultOptions")
	e.next.SetDefaultOptions(opts)
	finish(span, "", nil)
}

func (e *Engine) SetupSheetContentNodes(componentID string, headerNode, contentNode, footerNode *int) error {
	_, span := e.start(context.Background(), "setupSheetContentNodes", AttrComponentID.String(componentID))
	err := e.next.SetupSheetContentNodes(componentID, headerNode, contentNode, footerNode)
	finish(span, "", err)
	return err
}

// Events is not traced.
func (e *Engine) Events() engine.Events {
	return e.next.Events()
}

func (e *Engine) Constants(ctx context.Context) (engine.Constants, error) {
	ctx, span := e.start(ctx, "constants")
	c, err := e.next.Constants(ctx)
	finish(span, "", err)
	return c, err
}

func (e *Engine) TouchablePreview() engine.Previewer {
	return e.next.TouchablePreview()
}
