// Package engine defines the capability surface of the navigation engine:
// the runtime that owns the screen tree, its transitions and rendering.
//
// Everything outside this package talks to an engine only through Engine.
// Errors (unknown component ids, an engine that is not ready, malformed
// layouts) originate in the engine implementation.
package engine

import (
	"context"

	"navfacade/internal/layout"
)

// Engine is the full set of navigation primitives.
//
// Transition commands take a context and return the engine's completion value,
// typically the id of the component the command acted on.
type Engine interface {
	Push(ctx context.Context, componentID string, l layout.Layout) (string, error)
	Pop(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error)
	PopTo(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error)
	PopToRoot(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error)
	SetStackRoot(ctx context.Context, componentID string, children []layout.Layout) (string, error)

	ShowModal(ctx context.Context, l layout.Layout) (string, error)
	DismissModal(ctx context.Context, componentID string, mergeOptions layout.Options) (string, error)
	DismissAllModals(ctx context.Context, mergeOptions layout.Options) (string, error)

	ShowOverlay(ctx context.Context, l layout.Layout) (string, error)
	DismissOverlay(ctx context.Context, componentID string) (string, error)
	DismissAllOverlays(ctx context.Context) (string, error)

	SetRoot(ctx context.Context, root layout.Root) (string, error)

	MergeOptions(componentID string, opts layout.Options) error
	UpdateProps(componentID string, props any) error
	SetDefaultOptions(opts layout.Options)
	// SetupSheetContentNodes registers the renderer nodes making up a sheet.
	// Any node may be nil.
	SetupSheetContentNodes(componentID string, headerNode, contentNode, footerNode *int) error

	Events() Events
	Constants(ctx context.Context) (Constants, error)
	TouchablePreview() Previewer
}

// Constants are layout measurements reported by the engine.
type Constants struct {
	StatusBarHeight  int `json:"statusBarHeight"`
	TopBarHeight     int `json:"topBarHeight"`
	BottomTabsHeight int `json:"bottomTabsHeight"`
	Width            int `json:"width"`
	Height           int `json:"height"`
}

// Preview is a rendered snapshot of a mounted component.
type Preview struct {
	ComponentID string
	Content     string
}

// Previewer renders previews keyed by component id.
type Previewer interface {
	Preview(componentID string) (Preview, error)
}
