// Package layout describes the structures the navigation engine renders and
// builds them from the shorthand forms accepted by navigation calls.
//
// A Layout sets exactly one of its variant fields. Marshalled to JSON it
// produces the engine wire shapes:
//
//	{"component": {"name": ..., "options": ..., "passProps": ...}}
//	{"stack": {"children": [...]}}
//	{"sheet": {"children": [...]}}
//	{"externalComponent": {"name": ..., "passProps": ...}}
//	{"root": <layout>}
//
// Options are opaque. Nothing in this package reads an option key; the engine
// owns that contract.
package layout

// Options is a pass-through configuration bag (styling, animations, status bar
// and so on). A nil Options is left out of the wire shape; an empty one is
// sent as {}.
type Options map[string]any

// Layout is a tagged description of a renderable unit.
type Layout struct {
	Component         *Component         `json:"component,omitempty"`
	Stack             *Stack             `json:"stack,omitempty"`
	Sheet             *SheetLayout       `json:"sheet,omitempty"`
	ExternalComponent *ExternalComponent `json:"externalComponent,omitempty"`
}

// Component is a named screen registered with the engine.
type Component struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Options   Options `json:"options,omitzero"`
	PassProps any     `json:"passProps,omitempty"`
}

// Stack is an ordered sequence of child layouts; the last child is on top.
type Stack struct {
	ID       string   `json:"id,omitempty"`
	Children []Layout `json:"children"`
	Options  Options  `json:"options,omitzero"`
}

// SheetLayout is a bottom-sheet container around a single child.
type SheetLayout struct {
	ID       string   `json:"id,omitempty"`
	Children []Layout `json:"children"`
	Options  Options  `json:"options,omitzero"`
}

// ExternalComponent is a screen rendered outside this process's renderer.
type ExternalComponent struct {
	ID        string       `json:"id,omitempty"`
	Name      ExternalName `json:"name"`
	PassProps any          `json:"passProps,omitempty"`
}

// Kind values returned by Layout.Kind.
const (
	KindComponent         = "component"
	KindStack             = "stack"
	KindSheet             = "sheet"
	KindExternalComponent = "externalComponent"
	KindEmpty             = "empty"
)

// Kind names the variant that is set.
func (l Layout) Kind() string {
	switch {
	case l.Component != nil:
		return KindComponent
	case l.Stack != nil:
		return KindStack
	case l.Sheet != nil:
		return KindSheet
	case l.ExternalComponent != nil:
		return KindExternalComponent
	default:
		return KindEmpty
	}
}

// IsZero reports whether no variant is set.
func (l Layout) IsZero() bool {
	return l.Kind() == KindEmpty
}

// NewComponent builds a component layout.
func NewComponent(name string, opts Options, passProps any) Layout {
	return Layout{Component: &Component{Name: name, Options: opts, PassProps: passProps}}
}

// StackOf wraps children in a stack. Children are not validated.
func StackOf(children ...Layout) Layout {
	if children == nil {
		children = []Layout{}
	}
	return Layout{Stack: &Stack{Children: children}}
}

// SheetOf wraps a single child in a sheet.
func SheetOf(child Layout) Layout {
	return Layout{Sheet: &SheetLayout{Children: []Layout{child}}}
}

// Sheet builds a sheet around the named screen.
func Sheet(name string, opts Options) Layout {
	return SheetOf(NewComponent(name, opts, nil))
}

// External builds an externalComponent layout.
func External(name ExternalName, passProps any) Layout {
	return Layout{ExternalComponent: &ExternalComponent{Name: name, PassProps: passProps}}
}
