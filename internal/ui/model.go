package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// treeChangedMsg is sent to the program after the engine mutates the tree.
type treeChangedMsg struct{}

// ErrorMsg reports a failed navigation command triggered from the keyboard.
type ErrorMsg struct {
	Err error
}

type keyMap struct {
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model renders an Engine. Use AsTeaModel to run it.
type Model struct {
	Engine *Engine
	Err    error // last keyboard navigation error, shown in the status line

	keys keyMap
	help help.Model
}

// NewModel creates the root model for e.
func NewModel(e *Engine) *Model {
	return &Model{
		Engine: e,
		keys:   defaultKeyMap(),
		help:   newHelpModel(),
	}
}

// Ensure Model can be used as tea.Model via adapter.
var _ tea.Model = (*modelAdapter)(nil)

// modelAdapter wraps Model to implement tea.Model.
type modelAdapter struct {
	*Model
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *Model) AsTeaModel() tea.Model {
	return &modelAdapter{Model: m}
}

// Init implements tea.Model.
func (a *modelAdapter) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *modelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.Engine.Resize(msg.Width, msg.Height)
		a.help.Width = msg.Width
		return a, nil
	case treeChangedMsg:
		return a, nil
	case ErrorMsg:
		a.Err = msg.Err
		return a, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Back):
			a.Err = nil
			return a, a.back(msg.String())
		}
	}

	return a, a.updateFocused(msg)
}

// Focus reports the layer that receives keys.
func (m *Model) Focus() Layer {
	m.Engine.mu.Lock()
	defer m.Engine.mu.Unlock()
	switch {
	case m.Engine.overlays.Len() > 0:
		return LayerOverlay
	case len(m.Engine.modals) > 0:
		return LayerModal
	default:
		return LayerRoot
	}
}

// updateFocused forwards msg to the view of the screen receiving keys. The
// view is updated and replaced with e.mu held, like SetProps and Preview.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	e := m.Engine
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.visibleTop()
	if o, ok := e.overlays.Peek(); ok {
		s = o.Screen
	}
	if s == nil || s.View == nil {
		return nil
	}
	var cmd tea.Cmd
	s.View, cmd = s.View.Update(msg)
	return cmd
}

// back runs the navigation command matching the focused layer: dismiss the
// top overlay, pop or dismiss the top modal, or pop the root stack.
func (m *Model) back(keyStr string) tea.Cmd {
	ctx := context.Background()
	e := m.Engine

	e.mu.Lock()
	var run func() error
	if o, ok := e.overlays.Peek(); ok {
		if !o.IsDismissKey(keyStr) {
			e.mu.Unlock()
			return nil
		}
		id := o.Screen.ID
		run = func() error { _, err := e.DismissOverlay(ctx, id); return err }
	} else if n := len(e.modals); n > 0 {
		top := e.modals[n-1]
		if top.Kind == containerStack && top.Views.Len() > 1 {
			id := top.top().ID
			run = func() error { _, err := e.Pop(ctx, id, nil); return err }
		} else {
			run = func() error { _, err := e.DismissModal(ctx, top.ID, nil); return err }
		}
	} else if e.root != nil && e.root.Kind == containerStack && e.root.Views.Len() > 1 {
		id := e.root.top().ID
		run = func() error { _, err := e.Pop(ctx, id, nil); return err }
	}
	e.mu.Unlock()

	if run == nil {
		return nil
	}
	if err := run(); err != nil {
		return func() tea.Msg { return ErrorMsg{Err: err} }
	}
	return nil
}

// View implements tea.Model.
func (a *modelAdapter) View() string {
	return a.Render()
}

// Render draws the tree: root, then the top modal, then overlays, then help.
func (m *Model) Render() string {
	e := m.Engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.root == nil {
		return Styles.Empty.Render("waiting for setRoot…") + "\n" + m.help.View(m.keys)
	}

	parts := []string{m.renderContainer(e.root)}
	if n := len(e.modals); n > 0 {
		top := e.modals[n-1]
		box := Styles.Modal
		if top.Kind == containerSheet {
			box = Styles.Sheet
		}
		parts = append(parts, box.Render(m.renderContainer(top)))
	}
	for _, o := range e.overlays.Stack {
		parts = append(parts, Styles.Overlay.Render(renderScreen(o.Screen)))
	}
	if m.Err != nil {
		parts = append(parts, Styles.Overlay.Render(m.Err.Error()))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderContainer draws a breadcrumb of the stack and its top screen.
func (m *Model) renderContainer(c *container) string {
	top := c.top()
	if top == nil {
		return Styles.Empty.Render("(empty " + c.Kind + ")")
	}
	var b strings.Builder
	if c.Views.Len() > 1 {
		titles := make([]string, 0, c.Views.Len())
		for _, s := range c.Views.Stack {
			titles = append(titles, s.Title())
		}
		b.WriteString(Styles.Status.Render(strings.Join(titles, " › ")))
		b.WriteString("\n")
	}
	b.WriteString(renderScreen(top))
	return b.String()
}

func renderScreen(s *Screen) string {
	body := ""
	if s.View != nil {
		body = s.View.View()
	}
	return Styles.Title.Render(s.Title()) + "\n" + body
}
