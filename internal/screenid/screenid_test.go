package screenid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type custom struct{ id string }

func (c *custom) ComponentID() string { return c.id }

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   SelfOrID
		want string
	}{
		{"bare id", ID("Home"), "Home"},
		{"empty id", ID(""), ""},
		{"self handle", Of(NewSelf("Details")), "Details"},
		{"custom handle", Of(&custom{id: "Settings"}), "Settings"},
		{"zero value", SelfOrID{}, ""},
		{"nil handle", Of(nil), ""},
		{"typed nil handle", Of((*custom)(nil)), ""},
		{"typed nil self", Of((*Self)(nil)), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

func TestResolveAny_Strings(t *testing.T) {
	for _, s := range []string{"", "Home", "Component12", "props.componentId"} {
		assert.Equal(t, s, ResolveAny(s))
	}
}

func TestResolveAny_Handles(t *testing.T) {
	decoded := map[string]any{"props": map[string]any{"componentId": "Home"}}
	assert.Equal(t, "Home", ResolveAny(decoded))
	assert.Equal(t, "Details", ResolveAny(NewSelf("Details")))
	assert.Equal(t, "Settings", ResolveAny(&custom{id: "Settings"}))
	assert.Equal(t, "", ResolveAny((*custom)(nil)))
}

func TestResolveAny_FallsBackToInput(t *testing.T) {
	noID := map[string]any{"props": map[string]any{"title": "x"}}
	noProps := map[string]any{"componentId": "Home"}

	assert.Equal(t, noID, ResolveAny(noID))
	assert.Equal(t, noProps, ResolveAny(noProps))
	assert.Equal(t, 42, ResolveAny(42))
	assert.Nil(t, ResolveAny(nil))
}

func TestFromAny(t *testing.T) {
	assert.Equal(t, "Home", Resolve(FromAny("Home")))
	assert.Equal(t, "Home", Resolve(FromAny(map[string]any{"props": map[string]any{"componentId": "Home"}})))
	assert.Equal(t, "42", Resolve(FromAny(42)))
	assert.Equal(t, "", Resolve(FromAny(nil)))
}
