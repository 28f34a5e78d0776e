package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"navfacade/internal/jsonutil"
	"navfacade/internal/layout"
)

// Screen is a mounted component.
type Screen struct {
	ID       string
	Name     string
	External bool
	Options  layout.Options
	Props    any
	View     View
}

// Title returns options.topBar.title.text, falling back to the screen name.
func (s *Screen) Title() string {
	if t, ok := jsonutil.Lookup(s.Options, "topBar.title.text"); ok {
		if text, ok := t.(string); ok && text != "" {
			return text
		}
	}
	return s.Name
}

// Factory creates the view for a newly mounted screen. It must not call back
// into the engine.
type Factory func(s *Screen) View

// Registry maps component names to view factories. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	screens  map[string]Factory
	external map[string]Factory
	fallback Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		screens:  make(map[string]Factory),
		external: make(map[string]Factory),
	}
}

// Register adds a component factory.
func (r *Registry) Register(name string, f Factory) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens[name] = f
	return r
}

// RegisterExternal adds a factory for an external component, keyed by its
// name or numeric id.
func (r *Registry) RegisterExternal(name layout.ExternalName, f Factory) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.external[name.String()] = f
	return r
}

// SetFallback sets the factory used for unregistered names. Without one,
// mounting an unregistered name fails.
func (r *Registry) SetFallback(f Factory) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = f
	return r
}

func (r *Registry) lookup(name string, external bool) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := r.screens
	if external {
		m = r.external
	}
	if f, ok := m[name]; ok {
		return f, true
	}
	if r.fallback != nil {
		return r.fallback, true
	}
	return nil, false
}

// PropsView renders a screen's title and props. It is the default fallback
// factory used by the demo.
type PropsView struct {
	screen *Screen
}

// Ensure PropsView implements View.
var _ View = (*PropsView)(nil)

// NewPropsView is a Factory.
func NewPropsView(s *Screen) View {
	return &PropsView{screen: s}
}

// Init implements View.
func (v *PropsView) Init() tea.Cmd { return nil }

// Update implements View.
func (v *PropsView) Update(tea.Msg) (View, tea.Cmd) { return v, nil }

// SetProps implements PropsReceiver. The screen's props are already updated
// by the engine; the view renders from the screen directly.
func (v *PropsView) SetProps(any) {}

// View implements View.
func (v *PropsView) View() string {
	var b strings.Builder
	kind := "component"
	if v.screen.External {
		kind = "external component"
	}
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("%s %s (%s)", kind, v.screen.Name, v.screen.ID)))
	b.WriteString("\n")
	if v.screen.Props == nil {
		b.WriteString(Styles.Empty.Render("no props"))
		return b.String()
	}
	data, err := json.MarshalIndent(v.screen.Props, "", "  ")
	if err != nil {
		b.WriteString(Styles.Empty.Render(fmt.Sprintf("props: %v", v.screen.Props)))
		return b.String()
	}
	b.WriteString(Styles.Normal.Render(string(data)))
	return b.String()
}
