// Package navigation is the facade screens use to navigate. Each operation
// accepts the shorthand argument forms (a handle or a bare id, a screen name or
// a built layout), resolves them, and forwards the canonical call to the
// engine. Results and errors come back from the engine untouched.
//
// A Navigator holds no state besides its engine and is safe for concurrent use
// whenever the engine is.
package navigation

import (
	"context"

	"navfacade/internal/engine"
	"navfacade/internal/layout"
	"navfacade/internal/screenid"
)

// Navigator forwards navigation commands to an engine.
type Navigator struct {
	engine engine.Engine
}

// New returns a Navigator bound to e.
func New(e engine.Engine) *Navigator {
	return &Navigator{engine: e}
}

// Engine returns the engine the navigator forwards to.
func (n *Navigator) Engine() engine.Engine {
	return n.engine
}

// Push pushes screen onto the stack containing self. A bare screen name is
// built into a component carrying opts; a built layout is pushed as-is.
func (n *Navigator) Push(ctx context.Context, self screenid.SelfOrID, screen layout.ScreenOrLayout, opts layout.Options) (string, error) {
	return n.engine.Push(ctx, screenid.Resolve(self), layout.Build(screen, opts, nil))
}

// PushExternalComponent pushes a component rendered outside this process.
func (n *Navigator) PushExternalComponent(ctx context.Context, self screenid.Handle, name layout.ExternalName, passProps any) (string, error) {
	return n.engine.Push(ctx, screenid.Resolve(screenid.Of(self)), layout.External(name, passProps))
}

// Pop pops self off its stack.
func (n *Navigator) Pop(ctx context.Context, self screenid.SelfOrID, mergeOptions layout.Options) (string, error) {
	return n.engine.Pop(ctx, screenid.Resolve(self), mergeOptions)
}

// PopTo pops every screen above componentID.
func (n *Navigator) PopTo(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	return n.engine.PopTo(ctx, componentID, mergeOptions)
}

// PopToRoot pops the stack containing self down to its first child.
func (n *Navigator) PopToRoot(ctx context.Context, self screenid.Handle) (string, error) {
	return n.engine.PopToRoot(ctx, screenid.Resolve(screenid.Of(self)), nil)
}

// SetStackRoot replaces the children of the stack containing self.
func (n *Navigator) SetStackRoot(ctx context.Context, self screenid.SelfOrID, children ...layout.Layout) (string, error) {
	return n.engine.SetStackRoot(ctx, screenid.Resolve(self), children)
}

// ShowModal presents screen modally. A bare screen name is wrapped in a
// single-child stack.
func (n *Navigator) ShowModal(ctx context.Context, screen layout.ScreenOrLayout, opts layout.Options) (string, error) {
	if name, ok := screen.Name(); ok {
		return n.engine.ShowModal(ctx, layout.StackOf(layout.NewComponent(name, opts, nil)))
	}
	return n.engine.ShowModal(ctx, layout.Build(screen, nil, nil))
}

// ShowSheet presents screen as a bottom sheet. A bare screen name is wrapped
// in a sheet.
func (n *Navigator) ShowSheet(ctx context.Context, screen layout.ScreenOrLayout, opts layout.Options) (string, error) {
	if name, ok := screen.Name(); ok {
		return n.engine.ShowModal(ctx, layout.Sheet(name, opts))
	}
	return n.engine.ShowModal(ctx, layout.Build(screen, nil, nil))
}

// DismissModal dismisses the modal containing self.
func (n *Navigator) DismissModal(ctx context.Context, self screenid.SelfOrID, mergeOptions layout.Options) (string, error) {
	return n.engine.DismissModal(ctx, screenid.Resolve(self), mergeOptions)
}

// DismissSheet is DismissModal; sheets are presented as modals.
func (n *Navigator) DismissSheet(ctx context.Context, self screenid.SelfOrID, mergeOptions layout.Options) (string, error) {
	return n.DismissModal(ctx, self, mergeOptions)
}

// DismissAllModals dismisses every modal, leaving the root in place.
func (n *Navigator) DismissAllModals(ctx context.Context) (string, error) {
	return n.engine.DismissAllModals(ctx, nil)
}

// ShowOverlay presents screen above everything else. A bare name is built
// into a component carrying opts and passProps.
func (n *Navigator) ShowOverlay(ctx context.Context, screen layout.ScreenOrLayout, opts layout.Options, passProps any) (string, error) {
	return n.engine.ShowOverlay(ctx, layout.Build(screen, opts, passProps))
}

// DismissOverlay dismisses the overlay with componentID.
func (n *Navigator) DismissOverlay(ctx context.Context, componentID string) (string, error) {
	return n.engine.DismissOverlay(ctx, componentID)
}

// DismissAllOverlays dismisses every overlay.
func (n *Navigator) DismissAllOverlays(ctx context.Context) (string, error) {
	return n.engine.DismissAllOverlays(ctx)
}

// MergeOptions merges opts into the options of self.
func (n *Navigator) MergeOptions(self screenid.SelfOrID, opts layout.Options) error {
	return n.engine.MergeOptions(screenid.Resolve(self), opts)
}

// SetupSheetContentNodes forwards the sheet node ids positionally.
func (n *Navigator) SetupSheetContentNodes(componentID string, headerNode, contentNode, footerNode *int) error {
	return n.engine.SetupSheetContentNodes(componentID, headerNode, contentNode, footerNode)
}

// SetRoot replaces the whole tree with root.
func (n *Navigator) SetRoot(ctx context.Context, root layout.Root) (string, error) {
	return n.engine.SetRoot(ctx, root)
}

// SetRootFromLayout wraps screen in a root and sets it.
func (n *Navigator) SetRootFromLayout(ctx context.Context, screen layout.ScreenOrLayout) (string, error) {
	return n.engine.SetRoot(ctx, layout.BuildRoot(layout.AsLayout(screen)))
}

// SetRootFrom accepts either form. Use layout.DecodeRoot to build v from
// untyped data.
func (n *Navigator) SetRootFrom(ctx context.Context, v layout.RootOrLayout) (string, error) {
	return n.engine.SetRoot(ctx, layout.BuildRoot(v))
}

// UpdateProps sends new props to the screen with componentID.
func (n *Navigator) UpdateProps(componentID string, props any) error {
	return n.engine.UpdateProps(componentID, props)
}

// SetDefaultOptions sets the options applied to screens mounted afterwards.
func (n *Navigator) SetDefaultOptions(opts layout.Options) {
	n.engine.SetDefaultOptions(opts)
}

// Events returns the engine's event subscription capability.
func (n *Navigator) Events() engine.Events {
	return n.engine.Events()
}

// Constants returns the engine's layout constants.
func (n *Navigator) Constants(ctx context.Context) (engine.Constants, error) {
	return n.engine.Constants(ctx)
}

// TouchablePreview returns the engine's preview capability.
func (n *Navigator) TouchablePreview() engine.Previewer {
	return n.engine.TouchablePreview()
}
