package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"navfacade/internal/engine"
	"navfacade/internal/layout"
)

var (
	ErrNoRoot             = errors.New("no root has been set")
	ErrUnknownComponent   = errors.New("unknown component")
	ErrUnregisteredScreen = errors.New("screen is not registered")
	ErrEmptyLayout        = errors.New("layout has no variant set")
	ErrUnsupportedLayout  = errors.New("layout is not supported here")
	ErrNotInStack         = errors.New("component is not in a stack")
	ErrNotInSheet         = errors.New("component is not in a sheet")
	ErrNothingToPop       = errors.New("stack has a single child")
	ErrDuplicateID        = errors.New("component id is already mounted")
)

// Container kinds.
const (
	containerComponent = "component"
	containerStack     = "stack"
	containerSheet     = "sheet"
)

// container is a mounted stack, sheet or single component.
type container struct {
	ID    string
	Kind  string
	Views ViewStack
	// sheet content nodes registered by SetupSheetContentNodes
	Header, Content, Footer *int
}

func (c *container) top() *Screen {
	return c.Views.Peek()
}

// Engine is an in-process navigation engine rendered with Bubble Tea.
// Safe for concurrent use.
type Engine struct {
	mu             sync.Mutex
	registry       *Registry
	root           *container
	modals         []*container
	overlays       OverlayStack
	defaultOptions layout.Options
	width, height  int
	onChange       func() // Callback when the tree changes

	events *engine.Broadcaster
}

var _ engine.Engine = (*Engine)(nil)

// NewEngine creates an engine that mounts screens from registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry: registry,
		width:    80,
		height:   24,
		events:   engine.NewBroadcaster(),
	}
}

// Attach makes the engine re-render p after every change.
func (e *Engine) Attach(p *tea.Program) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = func() { go p.Send(treeChangedMsg{}) }
}

// Resize records the drawable size reported by the terminal.
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = width, height
}

// commit releases the lock, then emits the queued events and notifies the
// attached program. Every mutating command ends with it.
func (e *Engine) commit(command, componentID string, evs []engine.Event) {
	onChange := e.onChange
	e.mu.Unlock()
	for _, ev := range evs {
		e.events.Emit(ev)
	}
	e.events.Emit(engine.Event{Type: engine.EventCommandCompleted, CommandName: command, ComponentID: componentID})
	if onChange != nil {
		onChange()
	}
}

func appeared(s *Screen) engine.Event {
	return engine.Event{Type: engine.EventComponentDidAppear, ComponentID: s.ID, ComponentName: s.Name}
}

func disappeared(s *Screen) engine.Event {
	return engine.Event{Type: engine.EventComponentDidDisappear, ComponentID: s.ID, ComponentName: s.Name}
}

// visibleTop returns the screen currently on top of the root or modal layers.
// Must be called with e.mu held.
func (e *Engine) visibleTop() *Screen {
	if n := len(e.modals); n > 0 {
		return e.modals[n-1].top()
	}
	if e.root != nil {
		return e.root.top()
	}
	return nil
}

// transition appends appear/disappear events when the visible top changed.
func transition(evs []engine.Event, before, after *Screen) []engine.Event {
	if before == after {
		return evs
	}
	if before != nil {
		evs = append(evs, disappeared(before))
	}
	if after != nil {
		evs = append(evs, appeared(after))
	}
	return evs
}

// mountScreen creates a screen for a component or external component.
// Must be called with e.mu held.
func (e *Engine) mountScreen(l layout.Layout) (*Screen, error) {
	var (
		s        *Screen
		external bool
	)
	switch {
	case l.Component != nil:
		c := l.Component
		s = &Screen{ID: c.ID, Name: c.Name, Options: mergeOptions(e.defaultOptions, c.Options), Props: c.PassProps}
	case l.ExternalComponent != nil:
		c := l.ExternalComponent
		external = true
		s = &Screen{ID: c.ID, Name: c.Name.String(), External: true, Options: mergeOptions(e.defaultOptions, nil), Props: c.PassProps}
	case l.IsZero():
		return nil, ErrEmptyLayout
	default:
		return nil, fmt.Errorf("%w: %s is not a screen", ErrUnsupportedLayout, l.Kind())
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	} else if e.findScreen(s.ID) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, s.ID)
	}

	factory, ok := e.registry.lookup(s.Name, external)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredScreen, s.Name)
	}
	s.View = factory(s)
	return s, nil
}

// mount builds a container for l. Must be called with e.mu held.
func (e *Engine) mount(l layout.Layout) (*container, error) {
	switch {
	case l.Stack != nil:
		c := &container{ID: l.Stack.ID, Kind: containerStack}
		if err := e.mountChildren(c, l.Stack.Children); err != nil {
			return nil, err
		}
		return c, nil
	case l.Sheet != nil:
		if len(l.Sheet.Children) != 1 {
			return nil, fmt.Errorf("%w: sheet needs exactly one child, got %d", ErrUnsupportedLayout, len(l.Sheet.Children))
		}
		c := &container{ID: l.Sheet.ID, Kind: containerSheet}
		if err := e.mountChildren(c, l.Sheet.Children); err != nil {
			return nil, err
		}
		return c, nil
	default:
		s, err := e.mountScreen(l)
		if err != nil {
			return nil, err
		}
		c := &container{ID: s.ID, Kind: containerComponent}
		c.Views.Push(s)
		return c, nil
	}
}

// mountChildren mounts children into c, which is not yet attached, so ids are
// also checked against its earlier children.
func (e *Engine) mountChildren(c *container, children []layout.Layout) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	for i, child := range children {
		s, err := e.mountScreen(child)
		if err != nil {
			return fmt.Errorf("%s child %d: %w", c.Kind, i, err)
		}
		if c.Views.IndexOf(s.ID) >= 0 {
			return fmt.Errorf("%s child %d: %w: %q", c.Kind, i, ErrDuplicateID, s.ID)
		}
		c.Views.Push(s)
	}
	return nil
}

// containers returns root and modals, bottom first. Must be called with e.mu held.
func (e *Engine) containers() []*container {
	out := make([]*container, 0, len(e.modals)+1)
	if e.root != nil {
		out = append(out, e.root)
	}
	return append(out, e.modals...)
}

// findContainer returns the container holding the screen with id, or whose own
// id is id.
func (e *Engine) findContainer(id string) *container {
	for _, c := range e.containers() {
		if c.ID == id || c.Views.IndexOf(id) >= 0 {
			return c
		}
	}
	return nil
}

func (e *Engine) findScreen(id string) *Screen {
	for _, c := range e.containers() {
		if i := c.Views.IndexOf(id); i >= 0 {
			return c.Views.Stack[i]
		}
	}
	for _, o := range e.overlays.Stack {
		if o.Screen.ID == id {
			return o.Screen
		}
	}
	return nil
}

// stackOf returns the stack container holding id.
func (e *Engine) stackOf(id string) (*container, error) {
	if e.root == nil {
		return nil, ErrNoRoot
	}
	c := e.findContainer(id)
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, id)
	}
	if c.Kind != containerStack {
		return nil, fmt.Errorf("%w: %q", ErrNotInStack, id)
	}
	return c, nil
}

func (e *Engine) Push(ctx context.Context, componentID string, l layout.Layout) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	c, err := e.stackOf(componentID)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	s, err := e.mountScreen(l)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	before := e.visibleTop()
	c.Views.Push(s)
	evs := transition(nil, before, e.visibleTop())
	e.commit("push", s.ID, evs)
	return s.ID, nil
}

func (e *Engine) Pop(ctx context.Context, componentID string, mergeOpts layout.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	c, err := e.stackOf(componentID)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	if c.Views.Len() < 2 {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: %q", ErrNothingToPop, componentID)
	}
	before := e.visibleTop()
	popped := c.Views.Pop()
	popped.Options = mergeOptions(popped.Options, mergeOpts)
	evs := transition(nil, before, e.visibleTop())
	e.commit("pop", popped.ID, evs)
	return popped.ID, nil
}

func (e *Engine) PopTo(ctx context.Context, componentID string, mergeOpts layout.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	c, err := e.stackOf(componentID)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	idx := c.Views.IndexOf(componentID)
	if idx < 0 {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: %q", ErrUnknownComponent, componentID)
	}
	return e.truncate(c, idx, "popTo", mergeOpts), nil
}

func (e *Engine) PopToRoot(ctx context.Context, componentID string, mergeOpts layout.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	c, err := e.stackOf(componentID)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	return e.truncate(c, 0, "popToRoot", mergeOpts), nil
}

// truncate pops everything above idx and commits. Called with e.mu held.
func (e *Engine) truncate(c *container, idx int, command string, mergeOpts layout.Options) string {
	before := e.visibleTop()
	for _, s := range c.Views.TruncateAbove(idx) {
		s.Options = mergeOptions(s.Options, mergeOpts)
	}
	id := c.Views.Stack[idx].ID
	evs := transition(nil, before, e.visibleTop())
	e.commit(command, id, evs)
	return id
}

func (e *Engine) SetStackRoot(ctx context.Context, componentID string, children []layout.Layout) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	c, err := e.stackOf(componentID)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	if len(children) == 0 {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: setStackRoot needs at least one child", ErrUnsupportedLayout)
	}
	// Mount into a scratch container so a failure leaves the stack untouched.
	// Explicit ids of the screens being replaced cannot be reused.
	scratch := &container{ID: c.ID, Kind: containerStack}
	if err := e.mountChildren(scratch, children); err != nil {
		e.mu.Unlock()
		return "", err
	}
	before := e.visibleTop()
	c.Views = scratch.Views
	evs := transition(nil, before, e.visibleTop())
	e.commit("setStackRoot", componentID, evs)
	return componentID, nil
}

func (e *Engine) ShowModal(ctx context.Context, l layout.Layout) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	if e.root == nil {
		e.mu.Unlock()
		return "", ErrNoRoot
	}
	c, err := e.mount(l)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	before := e.visibleTop()
	e.modals = append(e.modals, c)
	evs := transition(nil, before, e.visibleTop())
	var id string
	if top := c.top(); top != nil {
		id = top.ID
	}
	e.commit("showModal", id, evs)
	return id, nil
}

func (e *Engine) DismissModal(ctx context.Context, componentID string, mergeOpts layout.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	idx := -1
	for i, m := range e.modals {
		if m.ID == componentID || m.Views.IndexOf(componentID) >= 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: no modal contains %q", ErrUnknownComponent, componentID)
	}
	before := e.visibleTop()
	m := e.modals[idx]
	e.modals = append(e.modals[:idx], e.modals[idx+1:]...)
	for _, s := range m.Views.Stack {
		s.Options = mergeOptions(s.Options, mergeOpts)
	}
	evs := transition(nil, before, e.visibleTop())
	evs = append(evs, engine.Event{Type: engine.EventModalDismissed, ComponentID: componentID})
	e.commit("dismissModal", componentID, evs)
	return componentID, nil
}

func (e *Engine) DismissAllModals(ctx context.Context, mergeOpts layout.Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	before := e.visibleTop()
	dismissed := e.modals
	e.modals = nil
	evs := transition(nil, before, e.visibleTop())
	for _, m := range dismissed {
		for _, s := range m.Views.Stack {
			s.Options = mergeOptions(s.Options, mergeOpts)
		}
		evs = append(evs, engine.Event{Type: engine.EventModalDismissed, ComponentID: m.ID})
	}
	e.commit("dismissAllModals", "", evs)
	return "", nil
}

func (e *Engine) ShowOverlay(ctx context.Context, l layout.Layout) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	s, err := e.mountScreen(l)
	if err != nil {
		e.mu.Unlock()
		return "", err
	}
	e.overlays.Push(Overlay{Screen: s, Dismiss: "esc"})
	e.commit("showOverlay", s.ID, []engine.Event{appeared(s)})
	return s.ID, nil
}

func (e *Engine) DismissOverlay(ctx context.Context, componentID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	o, ok := e.overlays.Remove(componentID)
	if !ok {
		e.mu.Unlock()
		return "", fmt.Errorf("%w: no overlay %q", ErrUnknownComponent, componentID)
	}
	e.commit("dismissOverlay", componentID, []engine.Event{disappeared(o.Screen)})
	return componentID, nil
}

func (e *Engine) DismissAllOverlays(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	var evs []engine.Event
	for _, o := range e.overlays.Clear() {
		evs = append(evs, disappeared(o.Screen))
	}
	e.commit("dismissAllOverlays", "", evs)
	return "", nil
}

// SetRoot replaces the root and dismisses all modals. Overlays stay.
func (e *Engine) SetRoot(ctx context.Context, root layout.Root) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	// Detach the old tree first so its ids may be reused by the new root.
	oldRoot, oldModals := e.root, e.modals
	before := e.visibleTop()
	e.root, e.modals = nil, nil
	c, err := e.mount(root.Root)
	if err != nil {
		e.root, e.modals = oldRoot, oldModals
		e.mu.Unlock()
		return "", err
	}
	e.root = c
	evs := transition(nil, before, e.visibleTop())
	var id string
	if top := c.top(); top != nil {
		id = top.ID
	}
	e.commit("setRoot", id, evs)
	return id, nil
}

func (e *Engine) MergeOptions(componentID string, opts layout.Options) error {
	e.mu.Lock()
	s := e.findScreen(componentID)
	if s == nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownComponent, componentID)
	}
	s.Options = mergeOptions(s.Options, opts)
	e.commit("mergeOptions", componentID, nil)
	return nil
}

// UpdateProps merges map props into the screen's props, replacing them
// otherwise, and notifies views implementing PropsReceiver.
func (e *Engine) UpdateProps(componentID string, props any) error {
	e.mu.Lock()
	s := e.findScreen(componentID)
	if s == nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownComponent, componentID)
	}
	old, oldOK := s.Props.(map[string]any)
	next, nextOK := props.(map[string]any)
	if oldOK && nextOK {
		merged := make(map[string]any, len(old)+len(next))
		for k, v := range old {
			merged[k] = v
		}
		for k, v := range next {
			merged[k] = v
		}
		s.Props = merged
	} else {
		s.Props = props
	}
	if r, ok := s.View.(PropsReceiver); ok {
		r.SetProps(s.Props)
	}
	e.commit("updateProps", componentID, nil)
	return nil
}

// SetDefaultOptions applies to screens mounted afterwards.
func (e *Engine) SetDefaultOptions(opts layout.Options) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.defaultOptions = opts
}

func (e *Engine) SetupSheetContentNodes(componentID string, headerNode, contentNode, footerNode *int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	c := e.findContainer(componentID)
	if c == nil {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, componentID)
	}
	if c.Kind != containerSheet {
		return fmt.Errorf("%w: %q", ErrNotInSheet, componentID)
	}
	c.Header, c.Content, c.Footer = headerNode, contentNode, footerNode
	return nil
}

func (e *Engine) Events() engine.Events {
	return e.events
}

// Constants reports one title line and the current terminal size.
func (e *Engine) Constants(ctx context.Context) (engine.Constants, error) {
	if err := ctx.Err(); err != nil {
		return engine.Constants{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return engine.Constants{TopBarHeight: 1, Width: e.width, Height: e.height}, nil
}

func (e *Engine) TouchablePreview() engine.Previewer {
	return previewer{e: e}
}

type previewer struct {
	e *Engine
}

func (p previewer) Preview(componentID string) (engine.Preview, error) {
	p.e.mu.Lock()
	defer p.e.mu.Unlock()
	s := p.e.findScreen(componentID)
	if s == nil {
		return engine.Preview{}, fmt.Errorf("%w: %q", ErrUnknownComponent, componentID)
	}
	return engine.Preview{ComponentID: s.ID, Content: s.View.View()}, nil
}

// mergeOptions deep-merges overlay into base, returning a new map. Nested maps
// merge key by key; any other value replaces.
func mergeOptions(base, overlay layout.Options) layout.Options {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	return layout.Options(mergeMaps(base, overlay))
}

func mergeMaps(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		if bm, ok := out[k].(map[string]any); ok {
			if om, ok := v.(map[string]any); ok {
				out[k] = mergeMaps(bm, om)
				continue
			}
		}
		out[k] = v
	}
	return out
}
