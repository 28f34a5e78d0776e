package logging

import (
	"context"

	"go.uber.org/zap"

	"navfacade/internal/engine"
	"navfacade/internal/layout"
)

// Engine logs each command at debug level and engine errors at warn level.
type Engine struct {
	next   engine.Engine
	logger *zap.Logger
}

var _ engine.Engine = (*Engine)(nil)

// Wrap returns next decorated with logging.
func Wrap(next engine.Engine, logger *zap.Logger) *Engine {
	return &Engine{next: next, logger: logger.Named("navigation")}
}

func (e *Engine) log(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op))
	if err != nil {
		e.logger.Warn("navigation command failed", append(fields, zap.Error(err))...)
		return
	}
	e.logger.Debug("navigation command", fields...)
}

func layoutFields(l layout.Layout) []zap.Field {
	fields := []zap.Field{zap.String("layout", l.Kind())}
	if l.Component != nil {
		fields = append(fields, zap.String("name", l.Component.Name))
	}
	return fields
}

func (e *Engine) Push(ctx context.Context, componentID string, l layout.Layout) (string, error) {
	id, err := e.next.Push(ctx, componentID, l)
	e.log("push", err, append(layoutFields(l), zap.String("componentId", componentID))...)
	return id, err
}

func (e *Engine) Pop(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	id, err := e.next.Pop(ctx, componentID, mergeOptions)
	e.log("pop", err, zap.String("componentId", componentID))
	return id, err
}

func (e *Engine) PopTo(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	id, err := e.next.PopTo(ctx, componentID, mergeOptions)
	e.log("popTo", err, zap.String("componentId", componentID))
	return id, err
}

func (e *Engine) PopToRoot(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	id, err := e.next.PopToRoot(ctx, componentID, mergeOptions)
	e.log("popToRoot", err, zap.String("componentId", componentID))
	return id, err
}

func (e *Engine) SetStackRoot(ctx context.Context, componentID string, children []layout.Layout) (string, error) {
	id, err := e.next.SetStackRoot(ctx, componentID, children)
	e.log("setStackRoot", err, zap.String("componentId", componentID), zap.Int("children", len(children)))
	return id, err
}

func (e *Engine) ShowModal(ctx context.Context, l layout.Layout) (string, error) {
	id, err := e.next.ShowModal(ctx, l)
	e.log("showModal", err, layoutFields(l)...)
	return id, err
}

func (e *Engine) DismissModal(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	id, err := e.next.DismissModal(ctx, componentID, mergeOptions)
	e.log("dismissModal", err, zap.String("componentId", componentID))
	return id, err
}

func (e *Engine) DismissAllModals(ctx context.Context, mergeOptions layout.Options) (string, error) {
	id, err := e.next.DismissAllModals(ctx, mergeOptions)
	e.log("dismissAllModals", err)
	return id, err
}

func (e *Engine) ShowOverlay(ctx context.Context, l layout.Layout) (string, error) {
	id, err := e.next.ShowOverlay(ctx, l)
	e.log("showOverlay", err, layoutFields(l)...)
	return id, err
}

func (e *Engine) DismissOverlay(ctx context.Context, componentID string) (string, error) {
	id, err := e.next.DismissOverlay(ctx, componentID)
	e.log("dismissOverlay", err, zap.String("componentId", componentID))
	return id, err
}

func (e *Engine) DismissAllOverlays(ctx context.Context) (string, error) {
	id, err := e.next.DismissAllOverlays(ctx)
	e.log("dismissAllOverlays", err)
	return id, err
}

func (e *Engine) SetRoot(ctx context.Context, root layout.Root) (string, error) {
	id, err := e.next.SetRoot(ctx, root)
	e.log("setRoot", err, layoutFields(root.Root)...)
	return id, err
}

func (e *Engine) MergeOptions(componentID string, opts layout.Options) error {
	err := e.next.MergeOptions(componentID, opts)
	e.log("mergeOptions", err, zap.String("componentId", componentID), zap.Any("options", opts))
	return err
}

func (e *Engine) UpdateProps(componentID string, props any) error {
	err := e.next.UpdateProps(componentID, props)
	e.log("updateProps", err, zap.String("componentId", componentID))
	return err
}

func (e *Engine) SetDefaultOptions(opts layout.Options) {
	e.next.SetDefaultOptions(opts)
	e.log("setDefaultOptions", nil, zap.Any("options", opts))
}

func (e *Engine) SetupSheetContentNodes(componentID string, headerNode, contentNode, footerNode *int) error {
	err := e.next.SetupSheetContentNodes(componentID, headerNode, contentNode, footerNode)
	e.log("setupSheetContentNodes", err, zap.String("componentId", componentID))
	return err
}

func (e *Engine) Events() engine.Events {
	return e.next.Events()
}

func (e *Engine) Constants(ctx context.Context) (engine.Constants, error) {
	c, err := e.next.Constants(ctx)
	if err != nil {
		e.log("constants", err)
	}
	return c, err
}

func (e *Engine) TouchablePreview() engine.Previewer {
	return e.next.TouchablePreview()
}
