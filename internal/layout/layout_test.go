package layout

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestWireShapes(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{
			name: "component without options",
			v:    NewComponent("Details", nil, nil),
			want: `{"component":{"name":"Details"}}`,
		},
		{
			name: "component with options and props",
			v:    NewComponent("Details", Options{"topBar": map[string]any{"visible": false}}, map[string]any{"id": 7}),
			want: `{"component":{"name":"Details","options":{"topBar":{"visible":false}},"passProps":{"id":7}}}`,
		},
		{
			name: "component with empty options keeps them",
			v:    NewComponent("Details", Options{}, nil),
			want: `{"component":{"name":"Details","options":{}}}`,
		},
		{
			name: "stack with empty options keeps them",
			v:    Layout{Stack: &Stack{Children: []Layout{}, Options: Options{}}},
			want: `{"stack":{"children":[],"options":{}}}`,
		},
		{
			name: "stack",
			v:    StackOf(NewComponent("Login", nil, nil)),
			want: `{"stack":{"children":[{"component":{"name":"Login"}}]}}`,
		},
		{
			name: "empty stack keeps children array",
			v:    StackOf(),
			want: `{"stack":{"children":[]}}`,
		},
		{
			name: "sheet",
			v:    Sheet("Picker", Options{"sheet": "half"}),
			want: `{"sheet":{"children":[{"component":{"name":"Picker","options":{"sheet":"half"}}}]}}`,
		},
		{
			name: "external by name",
			v:    External(ExternalByName("NativeMap"), map[string]any{"zoom": 3}),
			want: `{"externalComponent":{"name":"NativeMap","passProps":{"zoom":3}}}`,
		},
		{
			name: "external by id",
			v:    External(ExternalByID(12), nil),
			want: `{"externalComponent":{"name":12}}`,
		},
		{
			name: "root",
			v:    Root{Root: NewComponent("ScreenA", nil, nil)},
			want: `{"root":{"component":{"name":"ScreenA"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, mustJSON(t, tt.v))
		})
	}
}

func TestLayoutRoundTripsExternalName(t *testing.T) {
	var l Layout
	require.NoError(t, json.Unmarshal([]byte(`{"externalComponent":{"name":5}}`), &l))
	id, ok := l.ExternalComponent.Name.Numeric()
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)

	require.NoError(t, json.Unmarshal([]byte(`{"externalComponent":{"name":"Map"}}`), &l))
	assert.Equal(t, "Map", l.ExternalComponent.Name.String())

	assert.Error(t, json.Unmarshal([]byte(`{"externalComponent":{"name":true}}`), &l))
}

func TestKind(t *testing.T) {
	assert.Equal(t, KindComponent, NewComponent("A", nil, nil).Kind())
	assert.Equal(t, KindStack, StackOf().Kind())
	assert.Equal(t, KindSheet, Sheet("A", nil).Kind())
	assert.Equal(t, KindExternalComponent, External(ExternalByID(1), nil).Kind())
	assert.Equal(t, KindEmpty, Layout{}.Kind())
	assert.True(t, Layout{}.IsZero())
}

func TestBuild_ScreenName(t *testing.T) {
	opts := Options{"animations": map[string]any{"push": map[string]any{"enabled": false}}}
	for _, name := range []string{"", "Details", "Home"} {
		got := Build(Screen(name), opts, nil)
		want := Layout{Component: &Component{Name: name, Options: opts}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Build(%q) mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestBuild_LayoutIsReturnedUnchanged(t *testing.T) {
	built := []Layout{
		StackOf(NewComponent("A", nil, nil), NewComponent("B", Options{"x": 1}, nil)),
		Sheet("Picker", nil),
		External(ExternalByName("Map"), nil),
		NewComponent("Details", Options{"a": 1}, "props"),
	}
	for _, l := range built {
		got := Build(Of(l), Options{"ignored": true}, map[string]any{"ignored": true})
		if diff := cmp.Diff(l, got, cmp.AllowUnexported(ExternalName{})); diff != "" {
			t.Errorf("Build(Of(%s)) mismatch (-want +got):\n%s", l.Kind(), diff)
		}
	}
}

func TestScreenOrLayoutAccessors(t *testing.T) {
	name, ok := Screen("Home").Name()
	assert.True(t, ok)
	assert.Equal(t, "Home", name)
	_, ok = Screen("Home").Layout()
	assert.False(t, ok)

	l, ok := Of(StackOf()).Layout()
	assert.True(t, ok)
	assert.Equal(t, KindStack, l.Kind())
	_, ok = Of(StackOf()).Name()
	assert.False(t, ok)
}

func TestFromAny(t *testing.T) {
	s, err := FromAny("Home")
	require.NoError(t, err)
	name, ok := s.Name()
	assert.True(t, ok)
	assert.Equal(t, "Home", name)

	s, err = FromAny(map[string]any{
		"stack": map[string]any{
			"children": []any{map[string]any{"component": map[string]any{"name": "A"}}},
		},
	})
	require.NoError(t, err)
	l, ok := s.Layout()
	require.True(t, ok)
	require.NotNil(t, l.Stack)
	assert.Equal(t, "A", l.Stack.Children[0].Component.Name)

	_, err = FromAny(nil)
	assert.Error(t, err)

	_, err = FromAny(map[string]any{"component": "not an object"})
	assert.Error(t, err)
}

func TestBuildRoot(t *testing.T) {
	x := StackOf(NewComponent("Home", nil, nil))
	assert.Equal(t, Root{Root: x}, BuildRoot(AsRoot(Root{Root: x})))

	got := BuildRoot(AsLayout(Screen("ScreenA")))
	assert.JSONEq(t, `{"root":{"component":{"name":"ScreenA"}}}`, mustJSON(t, got))
	assert.Equal(t, Root{Root: Layout{Component: &Component{Name: "ScreenA"}}}, got)

	got = BuildRoot(AsLayout(Of(x)))
	assert.Equal(t, Root{Root: x}, got)
}

func TestDecodeRoot(t *testing.T) {
	t.Run("string is wrapped", func(t *testing.T) {
		v, err := DecodeRoot("ScreenA")
		require.NoError(t, err)
		assert.JSONEq(t, `{"root":{"component":{"name":"ScreenA"}}}`, mustJSON(t, BuildRoot(v)))
	})

	t.Run("truthy root is used verbatim", func(t *testing.T) {
		doc := map[string]any{"root": map[string]any{"stack": map[string]any{"children": []any{}}}}
		v, err := DecodeRoot(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"root":{"stack":{"children":[]}}}`, mustJSON(t, BuildRoot(v)))
	})

	t.Run("layout without root is wrapped", func(t *testing.T) {
		doc := map[string]any{"component": map[string]any{"name": "Home"}}
		v, err := DecodeRoot(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"root":{"component":{"name":"Home"}}}`, mustJSON(t, BuildRoot(v)))
	})

	t.Run("falsy root is wrapped", func(t *testing.T) {
		doc := map[string]any{"component": map[string]any{"name": "Home"}, "root": nil}
		v, err := DecodeRoot(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"root":{"component":{"name":"Home"}}}`, mustJSON(t, BuildRoot(v)))
	})

	t.Run("layout with unrelated root key is misclassified", func(t *testing.T) {
		doc := map[string]any{
			"stack": map[string]any{"children": []any{}},
			"root":  map[string]any{"component": map[string]any{"name": "Other"}},
		}
		v, err := DecodeRoot(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"root":{"component":{"name":"Other"}}}`, mustJSON(t, BuildRoot(v)))
	})

	t.Run("typed root", func(t *testing.T) {
		r := Root{Root: NewComponent("A", nil, nil)}
		v, err := DecodeRoot(r)
		require.NoError(t, err)
		assert.Equal(t, r, BuildRoot(v))
	})
}
