package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"navfacade/internal/layout"
	"navfacade/internal/navigation"
	"navfacade/internal/screenid"
)

// Runner plays scripts against a Navigator. Not safe for concurrent Run calls.
type Runner struct {
	nav    *navigation.Navigator
	logger *zap.Logger
	vars   map[string]string

	// Delay is slept between steps so an interactive engine can be watched.
	Delay time.Duration
}

// NewRunner creates a runner. A nil logger disables step logging.
func NewRunner(nav *navigation.Navigator, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		nav:    nav,
		logger: logger.Named("script"),
		vars:   make(map[string]string),
	}
}

// Var returns an id saved by a step's save field.
func (r *Runner) Var(name string) (string, bool) {
	id, ok := r.vars[name]
	return id, ok
}

// Run executes the steps in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	r.logger.Info("running script", zap.String("name", s.Name), zap.Int("steps", len(s.Steps)))
	for i, st := range s.Steps {
		if i > 0 && r.Delay > 0 {
			if err := sleep(ctx, r.Delay); err != nil {
				return err
			}
		}
		id, err := r.exec(ctx, st)
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
		if st.Save != "" {
			r.vars[st.Save] = id
		}
		r.logger.Debug("step done", zap.Int("step", i), zap.String("op", st.Op), zap.String("result", id))
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (r *Runner) exec(ctx context.Context, st Step) (string, error) {
	nav := r.nav
	switch st.Op {
	case OpSetRoot:
		if st.Root == nil {
			return "", fmt.Errorf("%w: root", ErrMissingArg)
		}
		root, err := layout.DecodeRoot(st.Root)
		if err != nil {
			return "", err
		}
		return nav.SetRootFrom(ctx, root)

	case OpPush:
		self, err := r.self(st)
		if err != nil {
			return "", err
		}
		screen, err := r.screen(st)
		if err != nil {
			return "", err
		}
		return nav.Push(ctx, self, screen, st.Options)

	case OpPushExternalComponent:
		h, err := r.handle(st)
		if err != nil {
			return "", err
		}
		name, err := externalName(st.Name)
		if err != nil {
			return "", err
		}
		return nav.PushExternalComponent(ctx, h, name, st.PassProps)

	case OpPop:
		self, err := r.self(st)
		if err != nil {
			return "", err
		}
		return nav.Pop(ctx, self, st.Options)

	case OpPopTo:
		id, err := r.rawID(st)
		if err != nil {
			return "", err
		}
		return nav.PopTo(ctx, id, st.Options)

	case OpPopToRoot:
		h, err := r.handle(st)
		if err != nil {
			return "", err
		}
		return nav.PopToRoot(ctx, h)

	case OpSetStackRoot:
		self, err := r.self(st)
		if err != nil {
			return "", err
		}
		children := make([]layout.Layout, 0, len(st.Layouts))
		for i, v := range st.Layouts {
			s, err := layout.FromAny(v)
			if err != nil {
				return "", fmt.Errorf("layouts[%d]: %w", i, err)
			}
			children = append(children, layout.Build(s, nil, nil))
		}
		return nav.SetStackRoot(ctx, self, children...)

	case OpShowModal, OpShowSheet:
		screen, err := r.screen(st)
		if err != nil {
			return "", err
		}
		if st.Op == OpShowSheet {
			return nav.ShowSheet(ctx, screen, st.Options)
		}
		return nav.ShowModal(ctx, screen, st.Options)

	case OpDismissModal, OpDismissSheet:
		self, err := r.self(st)
		if err != nil {
			return "", err
		}
		if st.Op == OpDismissSheet {
			return nav.DismissSheet(ctx, self, st.Options)
		}
		return nav.DismissModal(ctx, self, st.Options)

	case OpDismissAllModals:
		return nav.DismissAllModals(ctx)

	case OpShowOverlay:
		screen, err := r.screen(st)
		if err != nil {
			return "", err
		}
		return nav.ShowOverlay(ctx, screen, st.Options, st.PassProps)

	case OpDismissOverlay:
		id, err := r.rawID(st)
		if err != nil {
			return "", err
		}
		return nav.DismissOverlay(ctx, id)

	case OpDismissAllOverlays:
		return nav.DismissAllOverlays(ctx)

	case OpMergeOptions:
		self, err := r.self(st)
		if err != nil {
			return "", err
		}
		return screenid.Resolve(self), nav.MergeOptions(self, st.Options)

	case OpUpdateProps:
		id, err := r.rawID(st)
		if err != nil {
			return "", err
		}
		return id, nav.UpdateProps(id, st.PassProps)

	case OpSetDefaultOptions:
		nav.SetDefaultOptions(st.Options)
		return "", nil

	case OpSetupSheetContentNodes:
		id, err := r.rawID(st)
		if err != nil {
			return "", err
		}
		return id, nav.SetupSheetContentNodes(id, st.Header, st.Content, st.Footer)

	case OpWait:
		return "", sleep(ctx, st.Duration)

	default:
		return "", fmt.Errorf("%w %q", ErrUnknownOp, st.Op)
	}
}

// expand replaces a "$name" reference with a saved id.
func (r *Runner) expand(s string) (string, error) {
	if !strings.HasPrefix(s, "$") {
		return s, nil
	}
	id, ok := r.vars[s[1:]]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownVar, s)
	}
	return id, nil
}

// self resolves the step's self field, falling back to id. A "$name"
// reference is expanded whether it is the bare self or its props.componentId.
func (r *Runner) self(st Step) (screenid.SelfOrID, error) {
	switch v := st.Self.(type) {
	case nil:
		if st.ID == "" {
			return screenid.SelfOrID{}, fmt.Errorf("%w: self", ErrMissingArg)
		}
		id, err := r.expand(st.ID)
		return screenid.ID(id), err
	case string:
		id, err := r.expand(v)
		return screenid.ID(id), err
	default:
		id, err := r.expand(screenid.Resolve(screenid.FromAny(v)))
		return screenid.ID(id), err
	}
}

// handle is self as a screen handle, for operations that only take one.
func (r *Runner) handle(st Step) (screenid.Handle, error) {
	self, err := r.self(st)
	if err != nil {
		return nil, err
	}
	return screenid.NewSelf(screenid.Resolve(self)), nil
}

// rawID resolves id, falling back to self.
func (r *Runner) rawID(st Step) (string, error) {
	if st.ID != "" {
		return r.expand(st.ID)
	}
	self, err := r.self(st)
	if err != nil {
		return "", fmt.Errorf("%w: id", ErrMissingArg)
	}
	return screenid.Resolve(self), nil
}

func (r *Runner) screen(st Step) (layout.ScreenOrLayout, error) {
	if st.Screen == nil {
		return layout.ScreenOrLayout{}, fmt.Errorf("%w: screen", ErrMissingArg)
	}
	return layout.FromAny(st.Screen)
}
