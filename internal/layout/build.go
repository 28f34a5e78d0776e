package layout

import (
	"fmt"

	"navfacade/internal/jsonutil"
)

// ScreenOrLayout is either a bare screen name or an already built Layout.
type ScreenOrLayout struct {
	name   string
	layout *Layout
}

// Screen refers to a registered screen by name.
func Screen(name string) ScreenOrLayout {
	return ScreenOrLayout{name: name}
}

// Of uses l as-is.
func Of(l Layout) ScreenOrLayout {
	return ScreenOrLayout{layout: &l}
}

// Name returns the screen name when s is the bare-name form.
func (s ScreenOrLayout) Name() (string, bool) {
	if s.layout != nil {
		return "", false
	}
	return s.name, true
}

// Layout returns the layout when s is the built form.
func (s ScreenOrLayout) Layout() (Layout, bool) {
	if s.layout == nil {
		return Layout{}, false
	}
	return *s.layout, true
}

// Build resolves s into a Layout. A name becomes a component carrying opts and
// passProps; a built layout is returned unchanged and opts and passProps are
// ignored.
func Build(s ScreenOrLayout, opts Options, passProps any) Layout {
	if l, ok := s.Layout(); ok {
		return l
	}
	return NewComponent(s.name, opts, passProps)
}

// FromAny decodes loosely typed data: a string is a screen name, anything else
// must convert into a Layout.
func FromAny(v any) (ScreenOrLayout, error) {
	switch val := v.(type) {
	case string:
		return Screen(val), nil
	case ScreenOrLayout:
		return val, nil
	case Layout:
		return Of(val), nil
	case nil:
		return ScreenOrLayout{}, fmt.Errorf("layout: missing screen or layout")
	}
	var l Layout
	if err := jsonutil.Convert(v, &l, "layout"); err != nil {
		return ScreenOrLayout{}, err
	}
	return Of(l), nil
}
