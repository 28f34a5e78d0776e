// Package recorder provides an in-memory engine that records every canonical
// call it receives. It backs facade tests and the `plan` command, which prints
// the calls a navigation script would make without rendering anything.
package recorder

import (
	"context"
	"sync"

	"navfacade/internal/engine"
	"navfacade/internal/layout"
)

// Call is one recorded engine invocation. Args holds the arguments in the
// order the engine received them.
type Call struct {
	Op   string `json:"op"`
	Args []any  `json:"args"`
}

// Engine records calls. Transition commands return the component id they were
// given (or the id configured with ReturnID) unless an error is configured
// with FailWith.
type Engine struct {
	mu        sync.Mutex
	calls     []Call
	returnIDs map[string]string
	failures  map[string]error
	constants engine.Constants

	events *engine.Broadcaster
}

var _ engine.Engine = (*Engine)(nil)

// New returns an empty recorder.
func New() *Engine {
	return &Engine{
		returnIDs: make(map[string]string),
		failures:  make(map[string]error),
		constants: engine.Constants{StatusBarHeight: 1, TopBarHeight: 1, Width: 80, Height: 24},
		events:    engine.NewBroadcaster(),
	}
}

// ReturnID makes op return id instead of the default result.
func (e *Engine) ReturnID(op, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.returnIDs[op] = id
}

// FailWith makes op return err.
func (e *Engine) FailWith(op string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[op] = err
}

// Calls returns a copy of the recorded calls.
func (e *Engine) Calls() []Call {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Call, len(e.calls))
	copy(out, e.calls)
	return out
}

// Last returns the most recent call, or false if nothing was recorded.
func (e *Engine) Last() (Call, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.calls) == 0 {
		return Call{}, false
	}
	return e.calls[len(e.calls)-1], true
}

// Reset clears recorded calls.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = nil
}

// Broadcaster exposes the event source so tests can emit events.
func (e *Engine) Broadcaster() *engine.Broadcaster {
	return e.events
}

func (e *Engine) record(op, defaultID string, args ...any) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, Call{Op: op, Args: args})
	if err, ok := e.failures[op]; ok {
		return "", err
	}
	if id, ok := e.returnIDs[op]; ok {
		return id, nil
	}
	return defaultID, nil
}

func (e *Engine) Push(_ context.Context, componentID string, l layout.Layout) (string, error) {
	return e.record("push", componentID, componentID, l)
}

func (e *Engine) Pop(_ context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	return e.record("pop", componentID, componentID, mergeOptions)
}

func (e *Engine) PopTo(_ context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	return e.record("popTo", componentID, componentID, mergeOptions)
}

func (e *Engine) PopToRoot(_ context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	return e.record("popToRoot", componentID, componentID, mergeOptions)
}

func (e *Engine) SetStackRoot(_ context.Context, componentID string, children []layout.Layout) (string, error) {
	return e.record("setStackRoot", componentID, componentID, children)
}

func (e *Engine) ShowModal(_ context.Context, l layout.Layout) (string, error) {
	return e.record("showModal", "", l)
}

func (e *Engine) DismissModal(_ context.Context, componentID string, mergeOptions layout.Options) (string, error) {
	return e.record("dismissModal", componentID, componentID, mergeOptions)
}

func (e *Engine) DismissAllModals(_ context.Context, mergeOptions layout.Options) (string, error) {
	return e.record("dismissAllModals", "", mergeOptions)
}

func (e *Engine) ShowOverlay(_ context.Context, l layout.Layout) (string, error) {
	return e.record("showOverlay", "", l)
}

func (e *Engine) DismissOverlay(_ context.Context, componentID string) (string, error) {
	return e.record("dismissOverlay", componentID, componentID)
}

func (e *Engine) DismissAllOverlays(_ context.Context) (string, error) {
	return e.record("dismissAllOverlays", "")
}

func (e *Engine) SetRoot(_ context.Context, root layout.Root) (string, error) {
	return e.record("setRoot", "", root)
}

func (e *Engine) MergeOptions(componentID string, opts layout.Options) error {
	_, err := e.record("mergeOptions", componentID, componentID, opts)
	return err
}

func (e *Engine) UpdateProps(componentID string, props any) error {
	_, err := e.record("updateProps", componentID, componentID, props)
	return err
}

func (e *Engine) SetDefaultOptions(opts layout.Options) {
	_, _ = e.record("setDefaultOptions", "", opts)
}

func (e *Engine) SetupSheetContentNodes(componentID string, headerNode, contentNode, footerNode *int) error {
	_, err := e.record("setupSheetContentNodes", componentID, componentID, headerNode, contentNode, footerNode)
	return err
}

func (e *Engine) Events() engine.Events {
	return e.events
}

func (e *Engine) Constants(_ context.Context) (engine.Constants, error) {
	if _, err := e.record("constants", ""); err != nil {
		return engine.Constants{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.constants, nil
}

func (e *Engine) TouchablePreview() engine.Previewer {
	return previewer{e: e}
}

type previewer struct {
	e *Engine
}

func (p previewer) Preview(componentID string) (engine.Preview, error) {
	if _, err := p.e.record("preview", componentID, componentID); err != nil {
		return engine.Preview{}, err
	}
	return engine.Preview{ComponentID: componentID}, nil
}
