package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Each mounted screen is backed by one View. The engine calls Update, View
// and SetProps with its lock held, so they must not call back into the engine;
// return a tea.Cmd instead.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// PropsReceiver is implemented by views that react to UpdateProps.
type PropsReceiver interface {
	SetProps(props any)
}
